// Package redisaction provides a leaf action.Handler that hands actions to
// out-of-process workers through a Redis list, plus connection helpers.
//
// Every action is wrapped in an Entry and appended with RPUSH:
//
//	{"id":"...","name":"Invoice","category":"jobs","label":"outbox","created_at":"...","payload":{...}}
//
// Usage:
//
//	client, err := redisaction.Connect(ctx, redisaction.Config{
//	    ConnectionURL: "redis://localhost:6379/0",
//	    RetryAttempts: 3,
//	    RetryInterval: time.Second,
//	})
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	outbox := redisaction.New(Jobs, client, redisaction.WithKey("jobs:outbox"))
//
// Connect validates the URL scheme (redis:// or rediss://), retries PING
// with a growing interval and respects context cancellation. Healthcheck
// returns a probe suitable for readiness endpoints.
package redisaction
