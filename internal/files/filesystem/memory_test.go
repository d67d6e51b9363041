package filesystem

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFileSystem_ReadFile(t *testing.T) {
	mfs := NewMemoryFileSystem()
	mfs.AddFile("data/raw/orders.csv", []byte("order_id\n1\n"))

	content, err := mfs.ReadFile("data/raw/orders.csv")
	require.NoError(t, err)
	assert.Equal(t, "order_id\n1\n", string(content))

	_, err = mfs.ReadFile("data/raw/missing.csv")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestMemoryFileSystem_ReadDir(t *testing.T) {
	mfs := NewMemoryFileSystem()
	mfs.AddFile("data/raw/b.csv", []byte("b"))
	mfs.AddFile("data/raw/a.csv", []byte("aa"))
	mfs.AddFile("data/raw/nested/c.csv", []byte("c"))

	infos, err := mfs.ReadDir("data/raw")
	require.NoError(t, err)
	require.Len(t, infos, 3)

	// Sorted by name; nested appears as a directory entry.
	assert.Equal(t, "a.csv", infos[0].Name())
	assert.Equal(t, int64(2), infos[0].Size())
	assert.Equal(t, "b.csv", infos[1].Name())
	assert.Equal(t, "nested", infos[2].Name())
	assert.True(t, infos[2].IsDir())

	_, err = mfs.ReadDir("data/other")
	assert.Error(t, err)
}

func TestMemoryFileSystem_Stat(t *testing.T) {
	mfs := NewMemoryFileSystem()
	mfs.AddFile("data/raw/a.csv", []byte("aa"))

	info, err := mfs.Stat("data/raw/a.csv")
	require.NoError(t, err)
	assert.Equal(t, "a.csv", info.Name())
	assert.False(t, info.IsDir())

	dirInfo, err := mfs.Stat("data/raw")
	require.NoError(t, err)
	assert.True(t, dirInfo.IsDir())

	_, err = mfs.Stat("data/raw/b.csv")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}
