package redisaction_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/actionproxy/core/action"
	"github.com/dmitrymomot/actionproxy/integration/redisaction"
)

var testCategory = action.DefineCategory("redisaction-test")

type Invoice struct {
	Number string `json:"number"`
	Amount int    `json:"amount"`
}

func (Invoice) Label() string { return "outbox" }

type Unencodable struct {
	Ch chan int
}

// fakeRedis records RPUSH calls.
type fakeRedis struct {
	mu     sync.Mutex
	pushed map[string][]string
	err    error
}

func (f *fakeRedis) RPush(ctx context.Context, key string, values ...any) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return redis.NewIntResult(0, f.err)
	}
	if f.pushed == nil {
		f.pushed = make(map[string][]string)
	}
	for _, v := range values {
		f.pushed[key] = append(f.pushed[key], string(v.([]byte)))
	}
	return redis.NewIntResult(int64(len(f.pushed[key])), nil)
}

type outcome struct {
	success int
	err     error
}

func (o *outcome) callback() action.Callback {
	return action.CallbackFuncs{
		Success: func(*action.Holder) { o.success++ },
		Fail:    func(_ *action.Holder, err error) { o.err = err },
	}
}

func TestHandlerSend(t *testing.T) {
	t.Parallel()

	t.Run("appends entry to list", func(t *testing.T) {
		t.Parallel()

		fake := &fakeRedis{}
		h := redisaction.New(testCategory, fake, redisaction.WithKey("jobs:outbox"))
		assert.Equal(t, "jobs:outbox", h.Key())
		assert.Equal(t, testCategory, h.Category())

		holder := action.NewHolder(Invoice{Number: "INV-1", Amount: 42})
		var o outcome
		require.NoError(t, h.Send(context.Background(), holder, o.callback()))
		assert.Equal(t, 1, o.success)
		require.NoError(t, o.err)

		require.Len(t, fake.pushed["jobs:outbox"], 1)

		var entry redisaction.Entry
		require.NoError(t, json.Unmarshal([]byte(fake.pushed["jobs:outbox"][0]), &entry))
		assert.Equal(t, holder.ID, entry.ID)
		assert.Equal(t, "Invoice", entry.Name)
		assert.Equal(t, "redisaction-test", entry.Category)
		assert.Equal(t, "outbox", entry.Label)

		var payload Invoice
		require.NoError(t, json.Unmarshal(entry.Payload, &payload))
		assert.Equal(t, Invoice{Number: "INV-1", Amount: 42}, payload)
	})

	t.Run("reports publish failure", func(t *testing.T) {
		t.Parallel()

		connErr := errors.New("connection refused")
		h := redisaction.New(testCategory, &fakeRedis{err: connErr})

		var o outcome
		require.NoError(t, h.Send(context.Background(), action.NewHolder(Invoice{}), o.callback()))
		assert.Equal(t, 0, o.success)
		assert.ErrorIs(t, o.err, redisaction.ErrPublishFailed)
		assert.ErrorIs(t, o.err, connErr)
	})

	t.Run("reports encode failure", func(t *testing.T) {
		t.Parallel()

		fake := &fakeRedis{}
		h := redisaction.New(testCategory, fake)

		var o outcome
		require.NoError(t, h.Send(context.Background(), action.NewHolder(Unencodable{Ch: make(chan int)}), o.callback()))
		assert.ErrorIs(t, o.err, redisaction.ErrEncodeFailed)
		assert.Empty(t, fake.pushed)
	})

	t.Run("default key and installed sink", func(t *testing.T) {
		t.Parallel()

		fake := &fakeRedis{}
		h := redisaction.New(testCategory, fake)

		var o outcome
		h.SetCallback(o.callback())
		require.NoError(t, h.Send(context.Background(), action.NewHolder(Invoice{}), nil))

		assert.Equal(t, 1, o.success)
		assert.Len(t, fake.pushed["actions"], 1)
		assert.NotPanics(t, func() { h.Cancel(action.NewHolder(Invoice{})) })
	})
}

func TestConnect(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty url", func(t *testing.T) {
		t.Parallel()

		_, err := redisaction.Connect(context.Background(), redisaction.Config{})
		assert.ErrorIs(t, err, redisaction.ErrEmptyConnectionURL)
	})

	t.Run("rejects unsupported scheme", func(t *testing.T) {
		t.Parallel()

		_, err := redisaction.Connect(context.Background(), redisaction.Config{ConnectionURL: "http://localhost:6379"})
		assert.ErrorIs(t, err, redisaction.ErrFailedToParseRedisConnString)
	})
}

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", f.err)
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	assert.NoError(t, redisaction.Healthcheck(fakePinger{})(context.Background()))

	err := redisaction.Healthcheck(fakePinger{err: errors.New("down")})(context.Background())
	assert.ErrorIs(t, err, redisaction.ErrHealthcheckFailed)
}
