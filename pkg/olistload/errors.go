package olistload

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	err := orchestrator.Run(ctx)
//	if errors.Is(err, olistload.ErrConnectionFailed) {
//	    // the store was unreachable before any table was processed
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrConnectionFailed indicates the store connection failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrSchemaSetup indicates target schema creation failed before any load.
	ErrSchemaSetup = errors.New("schema setup failed")

	// ErrSourceFileNotFound indicates an expected source file is absent.
	// Per-table condition: recorded as a failed load, never fatal to the run.
	ErrSourceFileNotFound = errors.New("source file not found")

	// ErrMalformedSource indicates a source file could not be parsed as
	// tabular data. Per-table condition.
	ErrMalformedSource = errors.New("malformed source file")

	// ErrColumnMissing indicates a declared column is structurally absent
	// from the source. Per-table condition.
	ErrColumnMissing = errors.New("declared column missing from source")

	// ErrUnknownSource indicates a file name has no registry entry.
	// Expected in directory scans; a lookup miss in the load path is a
	// programming error in the registry itself.
	ErrUnknownSource = errors.New("unknown source file")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrSchemaSetup):
		return ExitSchemaError
	}

	// Check for common connection error patterns
	errStr := err.Error()
	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}
