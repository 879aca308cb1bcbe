package proxy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/actionproxy/core/proxy"
)

func TestRules(t *testing.T) {
	t.Parallel()

	a := LabeledPing{label: "a"}
	b := LabeledPing{label: "b"}

	t.Run("label", func(t *testing.T) {
		t.Parallel()

		assert.True(t, proxy.Label("a").Matches(a))
		assert.False(t, proxy.Label("a").Matches(b))
		assert.True(t, proxy.Label("x", "b").Matches(b))
		assert.False(t, proxy.Label().Matches(a))
	})

	t.Run("label copies its input", func(t *testing.T) {
		t.Parallel()

		labels := []string{"a"}
		rule := proxy.Label(labels...)
		labels[0] = "z"
		assert.True(t, rule.Matches(a))
	})

	t.Run("match all and not", func(t *testing.T) {
		t.Parallel()

		assert.True(t, proxy.MatchAll().Matches(a))
		assert.False(t, proxy.Not(proxy.MatchAll()).Matches(a))
		assert.True(t, proxy.Not(proxy.Label("a")).Matches(b))
	})

	t.Run("rule func", func(t *testing.T) {
		t.Parallel()

		rule := proxy.RuleFunc(func(a proxy.LabeledAction) bool { return len(a.Label()) == 1 })
		assert.True(t, rule.Matches(a))
		assert.False(t, rule.Matches(LabeledPing{label: "long"}))
	})
}
