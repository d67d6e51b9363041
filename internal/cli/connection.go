package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/olistdata/olistload/internal/config"
	"github.com/olistdata/olistload/pkg/olistload"
)

// Environment variable names understood by the connection resolver.
// They match the docker-compose setup that ships the analytics store.
const (
	envHost     = "DB_HOST"
	envPort     = "DB_PORT"
	envDatabase = "DB_NAME"
	envUser     = "DB_USER"
	envPassword = "DB_PASSWORD"
)

// Connection defaults for the local analytics container.
const (
	defaultHost     = "127.0.0.1"
	defaultPort     = 5433
	defaultDatabase = "olist_analytics"
	defaultUser     = "olist_user"
	defaultSSLMode  = "prefer"
)

// connFlagValues holds the granular connection flags shared by the
// commands that touch the store.
type connFlagValues struct {
	host     string
	port     int
	username string
	database string
	sslMode  string
}

// resolveConnection merges connection parameters with flag > environment >
// olistload.yaml > default precedence. The password is never read from
// flags or YAML; only $DB_PASSWORD (or $PGPASSWORD) supplies it.
func resolveConnection(flags *connFlagValues, projectCfg *config.ProjectConfig, verbose bool) (*olistload.ConnectionConfig, error) {
	var yamlConn config.ConnectionConfig
	if projectCfg != nil {
		yamlConn = projectCfg.Connection
	}

	port, err := resolvePort(flags.port, yamlConn.Port)
	if err != nil {
		return nil, err
	}

	conn := &olistload.ConnectionConfig{
		Host:           resolveString(flags.host, os.Getenv(envHost), yamlConn.Host, defaultHost),
		Port:           port,
		Database:       resolveString(flags.database, os.Getenv(envDatabase), yamlConn.Database, defaultDatabase),
		Username:       resolveString(flags.username, os.Getenv(envUser), yamlConn.Username, defaultUser),
		Password:       resolvePassword(),
		SSLMode:        resolveString(flags.sslMode, "", yamlConn.SSLMode, defaultSSLMode),
		AppName:        "olistload",
		ConnectTimeout: olistload.DefaultConnectTimeout,
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "[VERBOSE] Connection resolved:\n")
		fmt.Fprintf(os.Stderr, "  Host: %s\n", conn.Host)
		fmt.Fprintf(os.Stderr, "  Port: %d\n", conn.Port)
		fmt.Fprintf(os.Stderr, "  User: %s\n", conn.Username)
		fmt.Fprintf(os.Stderr, "  Database: %s\n", conn.Database)
		fmt.Fprintf(os.Stderr, "  SSL Mode: %s\n", conn.SSLMode)
	}

	return conn, nil
}

// resolveString returns the first non-empty value in precedence order.
func resolveString(flag, env, yaml, fallback string) string {
	switch {
	case flag != "":
		return flag
	case env != "":
		return env
	case yaml != "":
		return yaml
	default:
		return fallback
	}
}

func resolvePort(flag, yaml int) (int, error) {
	if flag != 0 {
		return flag, nil
	}
	if env := os.Getenv(envPort); env != "" {
		port, err := strconv.Atoi(env)
		if err != nil {
			return 0, fmt.Errorf("invalid $%s %q: %w", envPort, env, olistload.ErrInvalidConfig)
		}
		return port, nil
	}
	if yaml != 0 {
		return yaml, nil
	}
	return defaultPort, nil
}

func resolvePassword() string {
	if password := os.Getenv(envPassword); password != "" {
		return password
	}
	return os.Getenv("PGPASSWORD")
}
