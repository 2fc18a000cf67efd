// Package logger provides a structured logging facility based on Zap.
//
// Every component of the bucket manager receives a *zap.Logger through its
// constructor; there is no package-level logger besides the one installed
// with zap.ReplaceGlobals by the start command.
//
// # Context Awareness
//
// Requests served by the admin API carry a RayID (request id). WithRayID
// extracts it from the Fiber context and attaches it to the log entry so that
// pool allocation, bucket creation and their compensating actions can be
// correlated with the request that triggered them.
//
// # Configuration
//
//   - Level: debug, info, warn, error
//   - Format: json (production) or console (development)
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	log.Info("Server started")
//
//	l := logger.WithRayID(log, c)
//	l.Error("Bucket creation failed", zap.Error(err))
package logger
