// Package logger provides the structured JSON logger used across the exporter.
//
// Logger wraps a zap logger. Every method takes a message, an optional
// error and optional field maps:
//
//	log := logger.NewLoggerClient(logger.Config{
//		Level:       "info",
//		ServiceName: "sim-exporter",
//	})
//
//	log.Info("exporter started", nil, map[string]interface{}{
//		"addr": "0.0.0.0:19565",
//	})
//	log.Error("bind failed", err, nil)
//
// Entries are written to stderr with ISO8601 timestamps and carry the pid
// and service name.
//
// Packages that log declare their own narrow Logger interface with the
// methods they call, and *Logger satisfies all of them.
//
// FX Module Integration:
//
//	app := fx.New(
//		fx.Supply(logger.Config{Level: "debug"}),
//		logger.FXModule,
//	)
//
// The module flushes buffered entries when the application stops.
package logger
