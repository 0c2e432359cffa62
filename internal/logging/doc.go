// Package logging provides structured logging for archiveflow.
//
// This package wraps Go's log/slog to write JSON-formatted records, one per
// line, so a run can be inspected after the fact with any JSON tooling.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("/path/to/logs", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.Info("run started", "steps", 10)
//
// # Context Propagation
//
// Child loggers carry persistent attributes:
//
//	runLogger := logger.WithRun("6f1c...", "normal")
//	runLogger.WithStep(3, "lock-decision").Info("evaluating decision")
//
// Output:
//
//	{"time":"...","level":"INFO","msg":"evaluating decision","run_id":"6f1c...","run_kind":"normal","step":3,"step_id":"lock-decision"}
//
// # Mirroring
//
// [NewLoggerWithMirror] fans records out to a second, text-formatted writer
// (typically stderr during `archiveflow play --verbose`).
//
// # Testing
//
// Use [NopLogger] to discard all output.
package logging
