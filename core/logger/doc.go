// Package logger provides structured logging utilities built on Go's standard slog package.
//
// # Basic Usage
//
//	import "github.com/dmitrymomot/actionproxy/core/logger"
//
//	// Development: text format, debug level, stdout
//	log := logger.New(logger.WithDevelopment("proxysample"))
//
//	// Production: JSON format, info level
//	log := logger.New(
//		logger.WithProduction("proxysample"),
//		logger.WithOutput(os.Stderr),
//	)
//
// Libraries in this module accept a *slog.Logger through options and default
// to Discard() so that importing them never produces output on its own.
//
// # Attribute Helpers
//
// Helpers return an empty slog.Attr for zero inputs, so they can be passed
// unconditionally:
//
//	log.Error("action failed",
//		logger.ActionID(h.ID),
//		logger.Action(h.Name()),
//		logger.Category("http"),
//		logger.Error(err),
//	)
//
//	log.Debug("route selected",
//		logger.Label("github"),
//		logger.Route(0),
//	)
package logger
