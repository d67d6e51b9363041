package loader

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/olistdata/olistload/internal/db"
	"github.com/olistdata/olistload/internal/files/filesystem"
	"github.com/olistdata/olistload/internal/logging"
	"github.com/olistdata/olistload/internal/schema"
	"github.com/olistdata/olistload/internal/store"
	"github.com/olistdata/olistload/internal/testinfra"
	"github.com/olistdata/olistload/pkg/olistload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeFixtures generates one minimal CSV per registry entry, with every
// declared column populated by a value of its declared type.
func writeFixtures(t *testing.T, dir string, registry schema.Registry) {
	t.Helper()

	for _, sourceFile := range registry.SourceFiles() {
		cfg := registry[sourceFile]

		columns := make([]string, 0, len(cfg.ColumnTypes))
		for col := range cfg.ColumnTypes {
			columns = append(columns, col)
		}
		sort.Strings(columns)

		row := make([]string, len(columns))
		for i, col := range columns {
			switch cfg.ColumnTypes[col] {
			case olistload.DTypeInt:
				row[i] = "1"
			case olistload.DTypeFloat:
				row[i] = "1.5"
			case olistload.DTypeDatetime:
				row[i] = "2017-10-02 10:56:33"
			default:
				row[i] = "x"
			}
		}

		content := strings.Join(columns, ",") + "\n" + strings.Join(row, ",") + "\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, sourceFile), []byte(content), 0o644))
	}
}

func TestRun_EndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pg, err := testinfra.StartPostgres(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(context.Background()) })

	pool, err := pgxpool.New(ctx, pg.ConnString)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	conn := db.NewPoolAdapter(pool)
	registry := schema.Default()

	dataDir := t.TempDir()
	writeFixtures(t, dataDir, registry)

	o := New(filesystem.NewOSFileSystem(), registry, store.New(), logging.NewNullLogger())
	loadCfg := olistload.LoadConfig{DataDir: dataDir, ConnectionString: pg.ConnString, BatchSize: 2}

	summary, err := o.Run(ctx, conn, loadCfg)
	require.NoError(t, err)
	require.Empty(t, summary.FailedFiles())
	assert.Len(t, summary.SucceededTables(), len(registry))

	var count int64
	require.NoError(t, conn.QueryRow(ctx, "SELECT COUNT(*) FROM raw_data.orders").Scan(&count))
	assert.Equal(t, int64(1), count)

	// Typed columns survive the round trip.
	var status string
	var purchased time.Time
	require.NoError(t, conn.QueryRow(ctx,
		"SELECT order_status, order_purchase_timestamp FROM raw_data.orders").Scan(&status, &purchased))
	assert.Equal(t, "x", status)
	assert.Equal(t, time.Date(2017, 10, 2, 10, 56, 33, 0, time.UTC), purchased.UTC())

	var indexCount int
	require.NoError(t, conn.QueryRow(ctx,
		"SELECT COUNT(*) FROM pg_indexes WHERE schemaname = 'raw_data' AND indexname = 'idx_orders_customer_id'").Scan(&indexCount))
	assert.Equal(t, 1, indexCount)

	var viewCount int
	require.NoError(t, conn.QueryRow(ctx,
		"SELECT COUNT(*) FROM information_schema.views WHERE table_schema = 'raw_data'").Scan(&viewCount))
	assert.Equal(t, 3, viewCount)

	// A second run replaces everything cleanly.
	summary, err = o.Run(ctx, conn, loadCfg)
	require.NoError(t, err)
	require.Empty(t, summary.FailedFiles())

	require.NoError(t, conn.QueryRow(ctx, "SELECT COUNT(*) FROM raw_data.orders").Scan(&count))
	assert.Equal(t, int64(1), count, "replace semantics never accumulate rows")
}
