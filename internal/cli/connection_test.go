package cli

import (
	"testing"

	"github.com/olistdata/olistload/internal/config"
	"github.com/olistdata/olistload/pkg/olistload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearConnEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{envHost, envPort, envDatabase, envUser, envPassword, "PGPASSWORD"} {
		t.Setenv(key, "")
	}
}

func TestResolveConnection_Defaults(t *testing.T) {
	clearConnEnv(t)

	conn, err := resolveConnection(&connFlagValues{}, nil, false)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", conn.Host)
	assert.Equal(t, 5433, conn.Port)
	assert.Equal(t, "olist_analytics", conn.Database)
	assert.Equal(t, "olist_user", conn.Username)
	assert.Empty(t, conn.Password)
	assert.Equal(t, "prefer", conn.SSLMode)
	assert.Equal(t, "olistload", conn.AppName)
	assert.Equal(t, olistload.DefaultConnectTimeout, conn.ConnectTimeout)
}

func TestResolveConnection_EnvOverridesDefaults(t *testing.T) {
	clearConnEnv(t)
	t.Setenv(envHost, "db.internal")
	t.Setenv(envPort, "5432")
	t.Setenv(envDatabase, "analytics")
	t.Setenv(envUser, "svc")
	t.Setenv(envPassword, "secret")

	conn, err := resolveConnection(&connFlagValues{}, nil, false)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", conn.Host)
	assert.Equal(t, 5432, conn.Port)
	assert.Equal(t, "analytics", conn.Database)
	assert.Equal(t, "svc", conn.Username)
	assert.Equal(t, "secret", conn.Password)
}

func TestResolveConnection_FlagsBeatEnvAndYAML(t *testing.T) {
	clearConnEnv(t)
	t.Setenv(envHost, "env-host")

	projectCfg := &config.ProjectConfig{
		Connection: config.ConnectionConfig{Host: "yaml-host", Port: 6000, Database: "yaml-db"},
	}
	flags := &connFlagValues{host: "flag-host", port: 7000}

	conn, err := resolveConnection(flags, projectCfg, false)
	require.NoError(t, err)

	assert.Equal(t, "flag-host", conn.Host)
	assert.Equal(t, 7000, conn.Port)
	assert.Equal(t, "yaml-db", conn.Database, "yaml fills values no flag or env sets")
}

func TestResolveConnection_YAMLBeatsDefaults(t *testing.T) {
	clearConnEnv(t)

	projectCfg := &config.ProjectConfig{
		Connection: config.ConnectionConfig{Host: "yaml-host", Port: 6000},
	}

	conn, err := resolveConnection(&connFlagValues{}, projectCfg, false)
	require.NoError(t, err)

	assert.Equal(t, "yaml-host", conn.Host)
	assert.Equal(t, 6000, conn.Port)
	assert.Equal(t, "olist_analytics", conn.Database)
}

func TestResolveConnection_InvalidPortEnv(t *testing.T) {
	clearConnEnv(t)
	t.Setenv(envPort, "not-a-port")

	_, err := resolveConnection(&connFlagValues{}, nil, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, olistload.ErrInvalidConfig)
}

func TestResolvePassword_PGPASSWORDFallback(t *testing.T) {
	clearConnEnv(t)
	t.Setenv("PGPASSWORD", "fallback")

	assert.Equal(t, "fallback", resolvePassword())

	t.Setenv(envPassword, "primary")
	assert.Equal(t, "primary", resolvePassword())
}
