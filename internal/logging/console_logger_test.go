package logging

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureStderr runs fn and returns everything it wrote to stderr.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()

	orig := os.Stderr
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w
	defer func() { os.Stderr = orig }()

	fn()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestConsoleLogger_Levels(t *testing.T) {
	out := captureStderr(t, func() {
		l := NewConsoleLogger(false)
		l.Info("loading %s", "orders")
		l.Warn("row count mismatch")
		l.Error("connection lost")
	})

	assert.Contains(t, out, "loading orders\n")
	assert.Contains(t, out, "[WARN] row count mismatch\n")
	assert.Contains(t, out, "[ERROR] connection lost\n")
}

func TestConsoleLogger_VerboseGate(t *testing.T) {
	quiet := captureStderr(t, func() {
		NewConsoleLogger(false).Verbose("hidden")
	})
	assert.Empty(t, quiet)

	loud := captureStderr(t, func() {
		NewConsoleLogger(true).Verbose("shown")
	})
	assert.Equal(t, "[VERBOSE] shown\n", loud)
}

func TestConsoleLogger_NoArgsWithPercent(t *testing.T) {
	// Messages without args must not be re-interpreted as format strings.
	out := captureStderr(t, func() {
		NewConsoleLogger(false).Info("progress 100%")
	})
	assert.Equal(t, "progress 100%\n", out)
}

func TestNullLogger_Discards(t *testing.T) {
	out := captureStderr(t, func() {
		l := NewNullLogger()
		l.Verbose("a")
		l.Info("b")
		l.Warn("c")
		l.Error("d")
	})
	assert.Empty(t, out)
}
