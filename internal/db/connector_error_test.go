package db

import (
	"errors"
	"testing"

	"github.com/olistdata/olistload/pkg/olistload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapConnectionError_Guidance(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		contains string
	}{
		{"refused", "dial tcp 127.0.0.1:5433: connection refused", "pg_isready"},
		{"unknown host", "lookup dbhost: no such host", "cannot resolve host"},
		{"bad password", "FATAL: password authentication failed for user", "$DB_PASSWORD"},
		{"missing database", `FATAL: database "olist_analytics" does not exist`, "createdb"},
		{"timeout", "dial tcp: i/o timeout", "connection timed out"},
		{"unclassified", "something odd", "failed to connect to database"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := errors.New(tt.raw)
			wrapped := wrapConnectionError(raw, "127.0.0.1", 5433, "olist_analytics")

			require.Error(t, wrapped)
			assert.Contains(t, wrapped.Error(), tt.contains)
			assert.True(t, errors.Is(wrapped, raw), "original error stays unwrappable")
		})
	}
}

func TestWrapConnectionError_MapsToConnectionExitCode(t *testing.T) {
	wrapped := wrapConnectionError(errors.New("connection refused"), "127.0.0.1", 5433, "db")
	assert.Equal(t, olistload.ExitConnectionError, olistload.ExitCodeForError(wrapped))
}

func TestNewConnector_ReturnsStandardConnector(t *testing.T) {
	c := NewConnector(&olistload.ConnectionConfig{Host: "127.0.0.1", Port: 5433})
	_, ok := c.(*StandardConnector)
	assert.True(t, ok)
}
