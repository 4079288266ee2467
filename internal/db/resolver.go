package db

import (
	"fmt"
	"os"
	"time"

	"github.com/vvka-141/tsqlx/internal/config"
	"github.com/vvka-141/tsqlx/pkg/tsqlx"
)

// ConnFlags represents connection parameters from CLI flags.
//
// Note: Password is NOT included as a CLI flag for security reasons.
// Use $TSQLX_PASSWORD or the interactive prompt instead.
type ConnFlags struct {
	Server                 string
	Database               string
	Username               string
	AuthMethod             string
	Encrypt                string
	TrustServerCertificate bool
	AppName                string
	ConnectTimeout         time.Duration
	GoogleInstance         string
}

// AzureFlags represents Azure Entra ID CLI flags.
// These override the corresponding AZURE_* environment variables.
// Note: Client secret is NOT included as a CLI flag for security reasons.
// Use AZURE_CLIENT_SECRET environment variable instead.
type AzureFlags struct {
	Enabled  bool   // --azure
	TenantID string // Overrides AZURE_TENANT_ID
	ClientID string // Overrides AZURE_CLIENT_ID
}

// IsEmpty returns true if no Azure flags were provided.
func (a *AzureFlags) IsEmpty() bool {
	return a == nil || (!a.Enabled && a.TenantID == "" && a.ClientID == "")
}

// EnvVars holds the environment variables that feed connection settings.
type EnvVars struct {
	TSQLX_SERVER   string
	TSQLX_DATABASE string
	TSQLX_USER     string
	TSQLX_PASSWORD string

	// Azure SDK standard names
	AZURE_TENANT_ID     string
	AZURE_CLIENT_ID     string
	AZURE_CLIENT_SECRET string
}

// LoadFromEnvironment reads EnvVars from the process environment.
func LoadFromEnvironment() *EnvVars {
	return &EnvVars{
		TSQLX_SERVER:        os.Getenv("TSQLX_SERVER"),
		TSQLX_DATABASE:      os.Getenv("TSQLX_DATABASE"),
		TSQLX_USER:          os.Getenv("TSQLX_USER"),
		TSQLX_PASSWORD:      os.Getenv("TSQLX_PASSWORD"),
		AZURE_TENANT_ID:     os.Getenv("AZURE_TENANT_ID"),
		AZURE_CLIENT_ID:     os.Getenv("AZURE_CLIENT_ID"),
		AZURE_CLIENT_SECRET: os.Getenv("AZURE_CLIENT_SECRET"),
	}
}

// ResolveConnectionParams resolves connection parameters with the precedence
// flag > environment > tsqlx.yaml > default for every field.
//
// The auth method is chosen explicitly (flag, then tsqlx.yaml) or inferred:
// --azure or Azure flags select Entra ID, a Google instance selects Cloud SQL,
// a user name selects a SQL login, and integrated security is the default.
//
// The server name is parsed into Host, Instance and Port. A blank server is
// left blank; RefreshConfig.Validate reports it.
func ResolveConnectionParams(
	flags *ConnFlags,
	azureFlags *AzureFlags,
	envVars *EnvVars,
	projectConfig *config.ProjectConfig,
) (*tsqlx.ConnectionConfig, error) {
	if flags == nil {
		flags = &ConnFlags{}
	}
	if azureFlags == nil {
		azureFlags = &AzureFlags{}
	}
	if envVars == nil {
		envVars = &EnvVars{}
	}

	var pc config.ConnectionConfig
	var pcTimeout time.Duration
	if projectConfig != nil {
		pc = projectConfig.Connection
		var err error
		if pcTimeout, err = projectConfig.ConnectTimeout(); err != nil {
			return nil, err
		}
	}

	cfg := &tsqlx.ConnectionConfig{
		Server:                 firstNonEmpty(flags.Server, envVars.TSQLX_SERVER, pc.Server),
		Database:               firstNonEmpty(flags.Database, envVars.TSQLX_DATABASE, pc.Database),
		Username:               firstNonEmpty(flags.Username, envVars.TSQLX_USER, pc.Username),
		Password:               envVars.TSQLX_PASSWORD,
		Encrypt:                firstNonEmpty(flags.Encrypt, pc.Encrypt),
		TrustServerCertificate: flags.TrustServerCertificate || pc.TrustServerCertificate,
		AppName:                firstNonEmpty(flags.AppName, pc.AppName, tsqlx.DefaultAppName),
		GoogleInstance:         firstNonEmpty(flags.GoogleInstance, pc.GoogleInstance),
		ConnectTimeout:         tsqlx.DefaultConnectTimeout,
	}

	switch {
	case flags.ConnectTimeout > 0:
		cfg.ConnectTimeout = flags.ConnectTimeout
	case pcTimeout > 0:
		cfg.ConnectTimeout = pcTimeout
	}

	if cfg.Server != "" {
		host, instance, port, err := ParseServer(cfg.Server)
		if err != nil {
			return nil, err
		}
		cfg.Host, cfg.Instance, cfg.Port = host, instance, port
	}

	method, err := resolveAuthMethod(firstNonEmpty(flags.AuthMethod, pc.AuthMethod), cfg, azureFlags)
	if err != nil {
		return nil, err
	}
	cfg.AuthMethod = method

	if method == tsqlx.AuthMethodAzureEntraID {
		applyAzureAuth(cfg, azureFlags, envVars, pc)
	}
	if method == tsqlx.AuthMethodIntegrated && cfg.Username != "" {
		return nil, fmt.Errorf("integrated security does not take a user name (%q): %w", cfg.Username, tsqlx.ErrInvalidConfig)
	}

	return cfg, nil
}

func resolveAuthMethod(explicit string, cfg *tsqlx.ConnectionConfig, azureFlags *AzureFlags) (tsqlx.AuthMethod, error) {
	if explicit != "" {
		return tsqlx.ParseAuthMethod(explicit)
	}
	switch {
	case !azureFlags.IsEmpty():
		return tsqlx.AuthMethodAzureEntraID, nil
	case cfg.GoogleInstance != "":
		return tsqlx.AuthMethodGoogleCloudSQL, nil
	case cfg.Username != "":
		return tsqlx.AuthMethodSQL, nil
	default:
		return tsqlx.AuthMethodIntegrated, nil
	}
}

// applyAzureAuth attaches Azure Entra ID credentials to the config.
// CLI flags take precedence over environment variables, which take precedence over tsqlx.yaml.
func applyAzureAuth(cfg *tsqlx.ConnectionConfig, flags *AzureFlags, env *EnvVars, pc config.ConnectionConfig) {
	cfg.AzureTenantID = firstNonEmpty(flags.TenantID, env.AZURE_TENANT_ID, pc.AzureTenantID)
	cfg.AzureClientID = firstNonEmpty(flags.ClientID, env.AZURE_CLIENT_ID, pc.AzureClientID)

	// Client secret only comes from env var (no flag for security)
	cfg.AzureClientSecret = env.AZURE_CLIENT_SECRET
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
