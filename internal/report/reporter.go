// Package report runs the fixed data-quality battery against a loaded
// store and renders the results for the terminal. Every metric is
// independent: one failing query is reported in place and never stops
// the rest of the battery.
package report

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/olistdata/olistload/pkg/olistload"
)

// MetricResult is the outcome of a single check: a formatted value, or
// the truncated error that prevented one.
type MetricResult struct {
	Name  string
	Value string
	Err   string
}

// CategoryResult groups metric results under their category heading.
type CategoryResult struct {
	Name    string
	Metrics []MetricResult
}

// Reporter executes the quality battery.
// Stateless apart from the injected logger; safe for sequential reuse.
type Reporter struct {
	logger olistload.Logger
}

// NewReporter creates a Reporter. Panics on a nil logger.
func NewReporter(logger olistload.Logger) *Reporter {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Reporter{logger: logger}
}

// Run executes every metric of the battery in order. It always returns
// a result for every metric; query failures surface as truncated error
// strings on the individual metric.
func (r *Reporter) Run(ctx context.Context, conn olistload.DBConnection) []CategoryResult {
	battery := Battery()
	results := make([]CategoryResult, 0, len(battery))

	for _, category := range battery {
		cr := CategoryResult{Name: category.Name}
		for _, metric := range category.Metrics {
			cr.Metrics = append(cr.Metrics, r.runMetric(ctx, conn, metric))
		}
		results = append(results, cr)
	}

	return results
}

func (r *Reporter) runMetric(ctx context.Context, conn olistload.DBConnection, metric Metric) MetricResult {
	var value any
	err := conn.QueryRow(ctx, metric.Query).Scan(&value)
	if err != nil {
		preview := truncateError(err)
		r.logger.Warn("%s: %s", metric.Name, preview)
		return MetricResult{Name: metric.Name, Err: preview}
	}
	return MetricResult{Name: metric.Name, Value: formatValue(value)}
}

// truncateError bounds an error message so one pathological failure
// cannot flood the report.
func truncateError(err error) string {
	msg := err.Error()
	if len(msg) > olistload.MaxErrorPreviewLength {
		msg = msg[:olistload.MaxErrorPreviewLength]
	}
	return msg
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "No data"
	case int64:
		return fmt.Sprintf("%d", v)
	case float64:
		return fmt.Sprintf("%.2f", v)
	case string:
		return v
	case time.Time:
		return v.Format("2006-01-02")
	case pgtype.Numeric:
		return formatNumeric(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// formatNumeric renders a pgtype.Numeric (what ROUND(...)::numeric scans
// into through an any destination) without scientific notation.
func formatNumeric(n pgtype.Numeric) string {
	if !n.Valid || n.Int == nil {
		return "No data"
	}
	f := new(big.Float).SetInt(n.Int)
	if n.Exp != 0 {
		scale := new(big.Float).SetFloat64(1)
		ten := big.NewFloat(10)
		steps := n.Exp
		if steps < 0 {
			steps = -steps
		}
		for i := int32(0); i < steps; i++ {
			scale.Mul(scale, ten)
		}
		if n.Exp < 0 {
			f.Quo(f, scale)
		} else {
			f.Mul(f, scale)
		}
	}
	return f.Text('f', 2)
}
