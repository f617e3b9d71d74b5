// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeCommandFailed,
//	    "failed to start local cluster",
//	    runErr,
//	    map[string]interface{}{
//	        "command": "minikube start",
//	        "context": contextName,
//	    },
//	)
package errors
