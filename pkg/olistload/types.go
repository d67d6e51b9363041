package olistload

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DType is the declared logical type of a column in a TableConfig.
type DType string

const (
	DTypeString   DType = "string"
	DTypeInt      DType = "int"
	DTypeFloat    DType = "float"
	DTypeDatetime DType = "datetime"
)

// IsValid returns true if the DType is one of the four declared types.
func (d DType) IsValid() bool {
	switch d {
	case DTypeString, DTypeInt, DTypeFloat, DTypeDatetime:
		return true
	default:
		return false
	}
}

// InferredType is the best-guess logical type produced by the type inferencer.
// It is coarser than DType: integers and floats both classify as numeric.
type InferredType string

const (
	InferredString   InferredType = "string"
	InferredNumeric  InferredType = "numeric"
	InferredDatetime InferredType = "datetime"
)

// TableConfig describes how one source CSV file maps onto a target table.
// Instances are static data owned by the schema registry; they are never
// mutated after construction.
type TableConfig struct {
	// SourceFile is the CSV file name this config applies to,
	// e.g. "olist_orders_dataset.csv".
	SourceFile string

	// TableName is the target table name, e.g. "orders".
	TableName string

	// Schema is the target schema name, e.g. "raw_data".
	Schema string

	// ColumnTypes maps column names to their declared logical type.
	// Columns present in the source but absent here pass through uncoerced.
	ColumnTypes map[string]DType

	// TemporalColumns are columns parsed as timestamps at read time
	// using the strict date grammar. Every entry must be declared as
	// DTypeDatetime in ColumnTypes.
	TemporalColumns []string

	// PrimaryKey is the single-column key, or "" when uniqueness is
	// composite or undefined. Documented intent only, not enforced.
	PrimaryKey string

	// Indexes are the columns to index after a successful write,
	// in declaration order.
	Indexes []string
}

// IsTemporal reports whether the named column is parsed at read time.
func (c *TableConfig) IsTemporal(column string) bool {
	for _, t := range c.TemporalColumns {
		if t == column {
			return true
		}
	}
	return false
}

// Validate checks internal consistency of the config.
// It returns a multi-error if multiple validation failures occur.
func (c *TableConfig) Validate() error {
	var errs []error

	if c.SourceFile == "" {
		errs = append(errs, fmt.Errorf("SourceFile is required: %w", ErrInvalidConfig))
	}
	if c.TableName == "" {
		errs = append(errs, fmt.Errorf("TableName is required: %w", ErrInvalidConfig))
	}
	if c.Schema == "" {
		errs = append(errs, fmt.Errorf("Schema is required: %w", ErrInvalidConfig))
	}

	for col, dtype := range c.ColumnTypes {
		if !dtype.IsValid() {
			errs = append(errs, fmt.Errorf("column %q has unknown type %q: %w", col, dtype, ErrInvalidConfig))
		}
	}

	// Temporal columns must be declared and declared as datetime.
	for _, col := range c.TemporalColumns {
		dtype, ok := c.ColumnTypes[col]
		if !ok {
			errs = append(errs, fmt.Errorf("temporal column %q is not declared in ColumnTypes: %w", col, ErrInvalidConfig))
			continue
		}
		if dtype != DTypeDatetime {
			errs = append(errs, fmt.Errorf("temporal column %q is declared as %q, expected %q: %w", col, dtype, DTypeDatetime, ErrInvalidConfig))
		}
	}

	return errors.Join(errs...)
}

// ColumnProfile summarizes a single column of a scanned file.
// Produced once by the inferencer and never mutated afterwards.
type ColumnProfile struct {
	// DType is the raw storage type the column arrived with
	// ("text" for CSV columns).
	DType string `json:"dtype"`

	NonNullCount int `json:"non_null_count"`
	NullCount    int `json:"null_count"`
	UniqueCount  int `json:"unique_count"`

	// SampleValues holds up to three non-null values in file order.
	SampleValues []string `json:"sample_values"`

	// SuggestedType is the inferred logical type.
	SuggestedType InferredType `json:"suggested_type"`
}

// FileProfile is the per-file entry of an analysis report. Exactly one of
// the profile fields or Error is populated: unreadable files carry only
// the error string.
type FileProfile struct {
	FileName     string                   `json:"file_name,omitempty"`
	TotalRows    int                      `json:"total_rows"`
	TotalColumns int                      `json:"total_columns"`
	Columns      map[string]ColumnProfile `json:"columns,omitempty"`

	// Checksum is the SHA-256 of the raw file content, for comparing
	// artifacts across runs.
	Checksum string `json:"checksum,omitempty"`

	Error string `json:"error,omitempty"`
}

// AnalysisReport is the serialized artifact of an exploratory directory scan.
type AnalysisReport struct {
	RunID       uuid.UUID              `json:"run_id"`
	GeneratedAt time.Time              `json:"generated_at"`
	DataDir     string                 `json:"data_dir"`
	Files       map[string]FileProfile `json:"files"`
}

// LoadStatus is the terminal outcome of a single table load.
type LoadStatus string

const (
	LoadSucceeded LoadStatus = "succeeded"
	LoadFailed    LoadStatus = "failed"
)

// LoadResult records the outcome of one table load attempt.
// Created once per attempt and never mutated afterwards.
type LoadResult struct {
	TableName  string
	SourceFile string
	Status     LoadStatus

	// RowCount is the number of rows written. Valid only when
	// Status is LoadSucceeded.
	RowCount int64

	// FailureReason describes why the load failed. Empty on success.
	FailureReason string
}

// LoadSummary aggregates the per-table results of a whole run.
type LoadSummary struct {
	Results []LoadResult
}

// SucceededTables returns the target table names of successful loads,
// in processing order.
func (s *LoadSummary) SucceededTables() []string {
	var tables []string
	for _, r := range s.Results {
		if r.Status == LoadSucceeded {
			tables = append(tables, r.TableName)
		}
	}
	return tables
}

// FailedFiles returns the source file names of failed loads,
// in processing order.
func (s *LoadSummary) FailedFiles() []string {
	var files []string
	for _, r := range s.Results {
		if r.Status == LoadFailed {
			files = append(files, r.SourceFile)
		}
	}
	return files
}

// AnyLoaded reports whether at least one table loaded successfully.
func (s *LoadSummary) AnyLoaded() bool {
	for _, r := range s.Results {
		if r.Status == LoadSucceeded {
			return true
		}
	}
	return false
}

// LoadConfig contains all parameters needed for a load run.
type LoadConfig struct {
	// DataDir is the directory containing the source CSV files.
	DataDir string

	// ConnectionString is the PostgreSQL connection URI for the target store.
	ConnectionString string

	// BatchSize bounds the number of rows in a single write request.
	// Zero means DefaultBatchSize.
	BatchSize int

	// Timeout is the catastrophic-failure protection timeout for the run.
	Timeout time.Duration

	// Verbose enables detailed logging.
	Verbose bool
}

// Validate checks if the LoadConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *LoadConfig) Validate() error {
	var errs []error

	if c.DataDir == "" {
		errs = append(errs, fmt.Errorf("DataDir is required: %w", ErrInvalidConfig))
	}
	if c.ConnectionString == "" {
		errs = append(errs, fmt.Errorf("ConnectionString is required: %w", ErrInvalidConfig))
	}
	if c.BatchSize < 0 {
		errs = append(errs, fmt.Errorf("BatchSize cannot be negative: %w", ErrInvalidConfig))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// AnalyzeConfig contains all parameters needed for an exploratory scan.
type AnalyzeConfig struct {
	// DataDir is the directory to scan for CSV files.
	DataDir string

	// OutputPath is where the JSON artifact is written.
	// Empty means print to stdout only.
	OutputPath string

	// SampleSize bounds how many values the inferencer examines per column.
	// Zero means unbounded (the exploratory default).
	SampleSize int

	// Verbose enables detailed logging.
	Verbose bool
}

// Validate checks if the AnalyzeConfig has all required fields.
func (c *AnalyzeConfig) Validate() error {
	var errs []error

	if c.DataDir == "" {
		errs = append(errs, fmt.Errorf("DataDir is required: %w", ErrInvalidConfig))
	}
	if c.SampleSize < 0 {
		errs = append(errs, fmt.Errorf("SampleSize cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// ConnectionConfig represents resolved connection parameters.
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string

	// AppName is reported to the server as application_name.
	AppName string

	// ConnectTimeout bounds a single connection attempt.
	ConnectTimeout time.Duration
}
