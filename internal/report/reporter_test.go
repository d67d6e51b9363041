package report

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/olistdata/olistload/internal/logging"
	"github.com/olistdata/olistload/pkg/olistload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeConn answers every QueryRow with a canned value, except queries
// containing a failing fragment.
type fakeConn struct {
	value       any
	failFragment string
	failErr      error
	queries      []string
}

func (f *fakeConn) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (f *fakeConn) QueryRow(_ context.Context, sql string, _ ...any) olistload.Row {
	f.queries = append(f.queries, sql)
	if f.failFragment != "" && strings.Contains(sql, f.failFragment) {
		return &fakeRow{err: f.failErr}
	}
	return &fakeRow{value: f.value}
}

func (f *fakeConn) Acquire(context.Context) (olistload.PooledConnection, error) {
	return nil, errors.New("not supported")
}

type fakeRow struct {
	value any
	err   error
}

func (r *fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if p, ok := dest[0].(*any); ok {
		*p = r.value
	}
	return nil
}

var _ olistload.DBConnection = (*fakeConn)(nil)

func TestRun_CoversWholeBattery(t *testing.T) {
	conn := &fakeConn{value: int64(99441)}
	results := NewReporter(logging.NewNullLogger()).Run(context.Background(), conn)

	battery := Battery()
	require.Len(t, results, len(battery))

	total := 0
	for i, category := range results {
		assert.Equal(t, battery[i].Name, category.Name)
		assert.Len(t, category.Metrics, len(battery[i].Metrics))
		total += len(category.Metrics)
	}
	assert.Equal(t, total, len(conn.queries), "one query per metric")
}

func TestRun_MetricFailureIsIsolated(t *testing.T) {
	conn := &fakeConn{
		value:        int64(7),
		failFragment: "raw_data.order_reviews",
		failErr:      errors.New(strings.Repeat("relation does not exist ", 20)),
	}

	results := NewReporter(logging.NewNullLogger()).Run(context.Background(), conn)

	var failed, succeeded int
	for _, category := range results {
		for _, metric := range category.Metrics {
			if metric.Err != "" {
				failed++
				assert.LessOrEqual(t, len(metric.Err), olistload.MaxErrorPreviewLength)
				assert.Empty(t, metric.Value)
			} else {
				succeeded++
				assert.NotEmpty(t, metric.Value)
			}
		}
	}
	assert.NotZero(t, failed, "review metrics should fail")
	assert.NotZero(t, succeeded, "remaining metrics keep running")
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "No data", formatValue(nil))
	assert.Equal(t, "99441", formatValue(int64(99441)))
	assert.Equal(t, "154.10", formatValue(154.1))
	assert.Equal(t, "SP (41746 orders)", formatValue("SP (41746 orders)"))
	assert.Equal(t, "2016-09-04", formatValue(time.Date(2016, 9, 4, 21, 15, 19, 0, time.UTC)))
}

func TestFormatNumeric(t *testing.T) {
	n := pgtype.Numeric{Int: big.NewInt(1600849850), Exp: -2, Valid: true}
	assert.Equal(t, "16008498.50", formatValue(n))

	assert.Equal(t, "No data", formatValue(pgtype.Numeric{}))
}

func TestRender(t *testing.T) {
	results := []CategoryResult{
		{
			Name: "Key Metrics",
			Metrics: []MetricResult{
				{Name: "Total Orders", Value: "99441"},
				{Name: "Orders with Reviews", Err: "relation missing"},
			},
		},
	}

	out := Render(results)
	assert.Contains(t, out, "Data Quality Report")
	assert.Contains(t, out, "Key Metrics")
	assert.Contains(t, out, "Total Orders")
	assert.Contains(t, out, "99441")
	assert.Contains(t, out, "error: relation missing")
}

func TestNewReporter_PanicsOnNilLogger(t *testing.T) {
	assert.Panics(t, func() { NewReporter(nil) })
}
