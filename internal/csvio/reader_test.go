package csvio

import (
	"errors"
	"io/fs"
	"testing"
	"time"

	"github.com/olistdata/olistload/internal/files/filesystem"
	"github.com/olistdata/olistload/pkg/olistload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ordersCSV = `order_id,order_status,order_purchase_timestamp
a1,delivered,2017-10-02 10:56:33
b2,shipped,2018-08-29
c3,canceled,
`

func newFS(path, content string) *filesystem.MemoryFileSystem {
	mfs := filesystem.NewMemoryFileSystem()
	mfs.AddFile(path, []byte(content))
	return mfs
}

func TestRead_BasicTable(t *testing.T) {
	mfs := newFS("data/orders.csv", ordersCSV)

	table, err := Read(mfs, "data/orders.csv", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"order_id", "order_status", "order_purchase_timestamp"}, table.Header)
	assert.Equal(t, 3, table.RowCount)
	assert.True(t, table.HasColumn("order_status"))
	assert.False(t, table.HasColumn("order_total"))

	status, ok := table.Column("order_status")
	require.True(t, ok)
	assert.Equal(t, []string{"delivered", "shipped", "canceled"}, status)
}

func TestRead_TemporalFastPath(t *testing.T) {
	mfs := newFS("data/orders.csv", ordersCSV)

	table, err := Read(mfs, "data/orders.csv", []string{"order_purchase_timestamp"})
	require.NoError(t, err)

	parsed, ok := table.TemporalColumn("order_purchase_timestamp")
	require.True(t, ok)
	require.Len(t, parsed, 3)

	assert.Equal(t, time.Date(2017, 10, 2, 10, 56, 33, 0, time.UTC), parsed[0])
	assert.Equal(t, time.Date(2018, 8, 29, 0, 0, 0, 0, time.UTC), parsed[1])
	assert.Nil(t, parsed[2], "empty cell parses to nil")
}

func TestRead_TemporalUnparseableBecomesNil(t *testing.T) {
	mfs := newFS("data/orders.csv", "order_id,order_purchase_timestamp\na1,02/10/2017\n")

	table, err := Read(mfs, "data/orders.csv", []string{"order_purchase_timestamp"})
	require.NoError(t, err)

	parsed, ok := table.TemporalColumn("order_purchase_timestamp")
	require.True(t, ok)
	assert.Nil(t, parsed[0])
}

func TestRead_TemporalColumnAbsentIsIgnored(t *testing.T) {
	mfs := newFS("data/orders.csv", "order_id\na1\n")

	table, err := Read(mfs, "data/orders.csv", []string{"order_purchase_timestamp"})
	require.NoError(t, err)

	_, ok := table.TemporalColumn("order_purchase_timestamp")
	assert.False(t, ok)
}

func TestRead_RaggedRowIsMalformed(t *testing.T) {
	mfs := newFS("data/bad.csv", "a,b\n1,2\n3\n")

	_, err := Read(mfs, "data/bad.csv", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, olistload.ErrMalformedSource))
}

func TestRead_BadQuotingIsMalformed(t *testing.T) {
	mfs := newFS("data/bad.csv", "a,b\n\"unterminated,2\n")

	_, err := Read(mfs, "data/bad.csv", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, olistload.ErrMalformedSource))
}

func TestRead_EmptyFileIsMalformed(t *testing.T) {
	mfs := newFS("data/empty.csv", "")

	_, err := Read(mfs, "data/empty.csv", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, olistload.ErrMalformedSource))
}

func TestRead_HeaderOnly(t *testing.T) {
	mfs := newFS("data/hdr.csv", "order_id,order_status\n")

	table, err := Read(mfs, "data/hdr.csv", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, table.RowCount)
}

func TestRead_MissingFile(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem()

	_, err := Read(mfs, "data/nope.csv", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}
