// Package logging provides structured logging utilities for shipctl components.
//
// # Overview
//
// This package wraps the standard library slog package with shipctl-specific
// defaults and conventions for consistent logging across all components. It
// supports environment-based log level configuration, module/version context
// injection, and automatic source location tracking for debug logs.
//
// # Features
//
//   - Structured JSON logging to stderr
//   - Environment-based log level configuration (LOG_LEVEL)
//   - Automatic module and version context
//   - Source location tracking for debug logs
//   - Flexible log level parsing
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: Detailed diagnostic information with source location
//   - INFO: General informational messages (default)
//   - WARN/WARNING: Warning messages for potentially problematic situations
//   - ERROR: Error messages for failures requiring attention
//
// # Usage
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("shipctl", "v1.0.0")
//
//	    // Use slog as normal
//	    slog.Info("deploying application", "app", appName)
//	    slog.Debug("detailed state", "data", complexObject)
//	    slog.Error("operation failed", "error", err)
//	}
//
// Creating a custom logger:
//
//	logger := logging.NewStructuredLogger("shipctl", "v1.0.0", "debug")
//	logger.Info("cluster started", "context", "minikube")
//
// Setting explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("shipctl", "v1.0.0", "warn")
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls logging verbosity:
//
//	LOG_LEVEL=debug shipctl deploy --repo https://github.com/org/app
//
// If LOG_LEVEL is not set, defaults to INFO level.
//
// # Output Format
//
// All logs are written to stderr in JSON format:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "image pushed",
//	    "module": "shipctl",
//	    "version": "v1.0.0",
//	    "image": "user/demo:v1"
//	}
//
// Logs go to stderr so the deploy result on stdout stays parseable.
package logging
