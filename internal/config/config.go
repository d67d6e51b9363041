package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// ConnectionConfig holds the store connection parameters of a project file.
// The password is never read from YAML; it comes from the environment.
type ConnectionConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

// ProjectConfig is the content of olistload.yaml.
type ProjectConfig struct {
	Connection ConnectionConfig `yaml:"connection"`

	// DataDir is the directory holding the source CSV extracts.
	DataDir string `yaml:"data_dir"`

	// ReportPath is where the analysis artifact is written.
	ReportPath string `yaml:"report_path"`

	// BatchSize overrides the default write batch size when positive.
	BatchSize int `yaml:"batch_size"`

	// Timeout is the run timeout as a Go duration string, e.g. "30m".
	Timeout string `yaml:"timeout"`
}

const ConfigFileName = "olistload.yaml"

// Load reads olistload.yaml from the given directory.
func Load(dir string) (*ProjectConfig, error) {
	configPath := filepath.Join(dir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
