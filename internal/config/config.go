// Package config loads the optional tsqlx.yaml project file kept in the script path.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/tsqlx/internal/files/filesystem"
	"github.com/vvka-141/tsqlx/pkg/tsqlx"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

type ConnectionConfig struct {
	Server                 string `yaml:"server"`
	Database               string `yaml:"database"`
	Username               string `yaml:"username,omitempty"`
	AuthMethod             string `yaml:"auth_method,omitempty"`
	Encrypt                string `yaml:"encrypt,omitempty"`
	TrustServerCertificate bool   `yaml:"trust_server_certificate,omitempty"`
	AppName                string `yaml:"app_name,omitempty"`
	AzureTenantID          string `yaml:"azure_tenant_id,omitempty"`
	AzureClientID          string `yaml:"azure_client_id,omitempty"`
	GoogleInstance         string `yaml:"google_instance,omitempty"`
}

type ProjectConfig struct {
	Connection ConnectionConfig `yaml:"connection"`
	Timeout    string           `yaml:"timeout"`
}

const ConfigFileName = "tsqlx.yaml"

// Load reads <scriptPath>/tsqlx.yaml through fsys.
func Load(fsys filesystem.FileSystemProvider, scriptPath string) (*ProjectConfig, error) {
	configPath := filepath.Join(scriptPath, ConfigFileName)
	data, err := fsys.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %v: %w", configPath, err, tsqlx.ErrInvalidConfig)
	}
	return &cfg, nil
}

// ConnectTimeout parses Timeout. An empty value yields zero.
func (c *ProjectConfig) ConnectTimeout() (time.Duration, error) {
	if strings.TrimSpace(c.Timeout) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid timeout %q in %s: %w", c.Timeout, ConfigFileName, tsqlx.ErrInvalidConfig)
	}
	return d, nil
}
