// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments (development vs production)
// and reads request ids from Fiber contexts.
//
// # Context Awareness
//
// The logger is designed to be context-aware, specifically regarding RayIDs (Request IDs).
// The WithRayID helper extracts the RayID from a Fiber context and attaches it to the
// log entry, ensuring that all logs related to a specific request can be correlated.
//
// # Engine Events
//
// The reconciliation and validation engines report events through Func, a plain
// (level, component, message) callback. Zap adapts a *zap.Logger into a Func and
// Journal records events for the execution log section of a run report:
//
//	journal := logger.NewJournal()
//	events := logger.Tee(logger.Zap(log), journal.Log)
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: json (default) or console with coloured levels; anything else is rejected
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Server started")
//
//	// In a request handler:
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
