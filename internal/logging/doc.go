// Package logging provides structured logging for the history search TUI.
//
// This package wraps Go's log/slog to provide JSON-formatted logs with
// context propagation support for debugging and post-hoc analysis. It is
// designed to help troubleshoot a search session's storage and engine
// calls by providing structured, filterable logs that can be analyzed
// after the fact. With a log directory configured, output goes to a file
// there; with none (the default), logs go to stderr. Rotation and
// compression failures are also reported on stderr.
//
// # Features
//
//   - JSON-formatted structured logging via slog
//   - Configurable log levels (DEBUG, INFO, WARN, ERROR)
//   - Context propagation (session ID, instance ID, phase)
//   - Log rotation with configurable size limits
//   - Optional gzip compression for rotated logs
//
// # Thread Safety
//
// All types in this package are safe for concurrent use. The [Logger] type
// uses Go's slog internally which is designed for concurrent access. The
// [RotatingWriter] type uses a mutex to protect file operations during
// rotation. Child loggers created via With* methods share the underlying
// writer safely.
//
// # Basic Usage
//
// Create a logger for a session directory:
//
//	logger, err := logging.NewLogger("/path/to/session", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	// Log messages at various levels
//	logger.Debug("detailed info", "key", "value")
//	logger.Info("operation completed", "duration_ms", 150)
//	logger.Warn("potential issue", "threshold", 100)
//	logger.Error("operation failed", "error", err.Error())
//
// # Context Propagation
//
// Create child loggers with persistent context attributes:
//
//	// Add session context
//	sessionLogger := logger.WithSession("session-abc123")
//
//	// Add instance context
//	instanceLogger := sessionLogger.WithInstance("shell-42")
//
//	// Add phase context
//	phaseLogger := instanceLogger.WithPhase("requery")
//
//	// All logs from phaseLogger will include session_id, instance_id, and phase
//	phaseLogger.Info("query resolved", "mode", "fuzzy", "matches", 12)
//
// Output:
//
//	{"time":"...","level":"INFO","msg":"query resolved","session_id":"session-abc123","instance_id":"shell-42","phase":"requery","mode":"fuzzy","matches":12}
//
// # Log Rotation
//
// For long-running sessions, use log rotation to prevent unbounded growth.
// histsearch wires this up from the logging section of its config file
// (see cmd/histsearch):
//
//	config := logging.RotationConfig{
//	    MaxSizeMB:  10,    // Rotate when file exceeds 10MB
//	    MaxBackups: 3,     // Keep 3 backup files
//	    Compress:   true,  // Gzip compress rotated files
//	}
//
//	logger, err := logging.NewLoggerWithRotation("/path/to/session", "INFO", config)
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
// Rotated files are named: debug.log.1, debug.log.2, etc., where .1 is the
// most recent backup. When compression is enabled, rotated files become
// debug.log.1.gz, etc.
//
// # Testing
//
// For testing, use [NopLogger] to discard all log output:
//
//	func TestSomething(t *testing.T) {
//	    logger := logging.NopLogger()
//	    // Use logger in tests without creating files
//	}
//
// # Log Levels
//
// The package defines four log levels:
//
//   - [LevelDebug]: Detailed information for debugging
//   - [LevelInfo]: General operational information (default)
//   - [LevelWarn]: Warning conditions that may need attention
//   - [LevelError]: Error conditions that affect functionality
//
// Use [ValidLevels] to get the list of valid level strings, and [ParseLevel]
// to normalize user-provided level strings.
//
// # Configuration
//
// The logging system is configured via histsearch's config file
// (internal/config.LoggingConfig); an empty dir disables the file and
// logs go to stderr instead:
//
//	logging:
//	  dir: ~/.local/state/histsearch/log
//	  level: warn
//	  max_size_mb: 10
//	  max_backups: 3
//	  compress: false
package logging
