package olistload

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Run completed (individual table failures allowed)
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration or parameters
	ExitConnectionError = 11 // Failed to connect to the store
	ExitSchemaError     = 12 // Schema bootstrap failed before any load
)

const (
	// DefaultBatchSize bounds the number of rows in a single write request.
	DefaultBatchSize = 5000

	// DefaultSampleSize is how many values the inferencer examines per
	// column when checking coercibility. The exploratory analysis path
	// uses an unbounded sample instead.
	DefaultSampleSize = 100

	// DefaultConnectTimeout bounds a single connection attempt.
	DefaultConnectTimeout = 10 * time.Second

	// DefaultRunTimeout is the catastrophic-failure protection timeout
	// for a whole load run.
	DefaultRunTimeout = 30 * time.Minute

	// MaxErrorPreviewLength is the maximum number of characters shown
	// when logging a failed quality-report query. Prevents a wall of
	// SQL in the console.
	MaxErrorPreviewLength = 80

	// MaxSampleValues is how many sample values a column profile keeps.
	MaxSampleValues = 3
)

// Target schema namespaces. Only SchemaRawData is populated by the loader;
// staging and analytics exist for downstream modeling.
const (
	SchemaRawData   = "raw_data"
	SchemaStaging   = "staging"
	SchemaAnalytics = "analytics"
)

// SchemaNames lists all namespaces created during schema bootstrap.
func SchemaNames() []string {
	return []string{SchemaRawData, SchemaStaging, SchemaAnalytics}
}
