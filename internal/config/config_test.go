package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/tsqlx/internal/files/filesystem"
	"github.com/vvka-141/tsqlx/pkg/tsqlx"
)

func TestLoad_AllFields(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/scripts")
	mfs.AddFile(ConfigFileName, `connection:
  server: db01\SQL2019
  database: Sales
  username: deployer
  auth_method: sql
  encrypt: strict
  trust_server_certificate: true
  app_name: nightly-refresh
  azure_tenant_id: tenant-1
  azure_client_id: client-1
  google_instance: proj:region:inst

timeout: 45s
`)

	cfg, err := Load(mfs, "/scripts")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, `db01\SQL2019`, cfg.Connection.Server)
	assert.Equal(t, "Sales", cfg.Connection.Database)
	assert.Equal(t, "deployer", cfg.Connection.Username)
	assert.Equal(t, "sql", cfg.Connection.AuthMethod)
	assert.Equal(t, "strict", cfg.Connection.Encrypt)
	assert.True(t, cfg.Connection.TrustServerCertificate)
	assert.Equal(t, "nightly-refresh", cfg.Connection.AppName)
	assert.Equal(t, "tenant-1", cfg.Connection.AzureTenantID)
	assert.Equal(t, "client-1", cfg.Connection.AzureClientID)
	assert.Equal(t, "proj:region:inst", cfg.Connection.GoogleInstance)

	timeout, err := cfg.ConnectTimeout()
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, timeout)
}

func TestLoad_MinimalYAML(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/scripts")
	mfs.AddFile(ConfigFileName, "connection:\n  database: Sales\n")

	cfg, err := Load(mfs, "/scripts")
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Connection.Server)
	assert.Equal(t, "Sales", cfg.Connection.Database)

	timeout, err := cfg.ConnectTimeout()
	require.NoError(t, err)
	assert.Zero(t, timeout)
}

func TestLoad_FileNotFound(t *testing.T) {
	cfg, err := Load(filesystem.NewMemoryFileSystem("/scripts"), "/scripts")
	assert.True(t, errors.Is(err, ErrConfigNotFound), "expected ErrConfigNotFound, got: %v", err)
	assert.Nil(t, cfg)
}

func TestLoad_FromDisk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("connection:\n  server: localhost\n"), 0644))

	cfg, err := Load(filesystem.NewOSFileSystem(), dir)
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Connection.Server)

	_, err = Load(filesystem.NewOSFileSystem(), t.TempDir())
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoad_InvalidYAML(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/scripts")
	mfs.AddFile(ConfigFileName, "{{invalid")

	cfg, err := Load(mfs, "/scripts")
	assert.ErrorIs(t, err, tsqlx.ErrInvalidConfig)
	assert.Nil(t, cfg)
}

func TestLoad_EmptyFile(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/scripts")
	mfs.AddFile(ConfigFileName, "")

	cfg, err := Load(mfs, "/scripts")
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, ProjectConfig{}, *cfg)
}

func TestProjectConfig_ConnectTimeout_Invalid(t *testing.T) {
	for _, v := range []string{"soon", "-5s"} {
		cfg := ProjectConfig{Timeout: v}
		_, err := cfg.ConnectTimeout()
		assert.ErrorIs(t, err, tsqlx.ErrInvalidConfig, v)
	}
}
