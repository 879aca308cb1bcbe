// Package health provides HTTP handlers for process health probes.
//
// Handlers:
//   - Liveness: process is running (no dependency checks)
//   - Readiness: all dependency checks pass
//   - NoContent: returns 204 for minimal overhead
//
// Usage:
//
//	mux := http.NewServeMux()
//	mux.HandleFunc("GET /health/live", health.Liveness)
//	mux.Handle("GET /health/ready", health.Readiness(log,
//		redisaction.Healthcheck(client),
//	))
//	mux.HandleFunc("GET /ping", health.NoContent)
//
// Dependency checks follow the func(context.Context) error signature:
//
//	func checkRedis(ctx context.Context) error {
//		return client.Ping(ctx).Err()
//	}
package health
