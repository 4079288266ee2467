package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	mssql "github.com/microsoft/go-mssqldb"
	"github.com/pkg/errors"

	"github.com/vvka-141/tsqlx/pkg/tsqlx"
)

// DefaultMaxConns keeps a refresh on a single server session.
const DefaultMaxConns = 1

// DefaultMaxConnIdleTime keeps the session open during long extractions.
const DefaultMaxConnIdleTime = 30 * time.Minute

func configurePool(db *sql.DB) {
	db.SetMaxOpenConns(DefaultMaxConns)
	db.SetMaxIdleConns(DefaultMaxConns)
	db.SetConnMaxIdleTime(DefaultMaxConnIdleTime)
}

// StandardConnector implements the Connector interface for integrated
// security and SQL Server logins.
type StandardConnector struct {
	config *tsqlx.ConnectionConfig
}

// NewStandardConnector creates a new StandardConnector with the given configuration.
func NewStandardConnector(config *tsqlx.ConnectionConfig) *StandardConnector {
	return &StandardConnector{config: config}
}

// Connect opens a single-connection pool and verifies it with a ping.
// Connection failures are not retried.
func (c *StandardConnector) Connect(ctx context.Context) (*sql.DB, error) {
	connector, err := mssql.NewConnector(BuildConnectionString(c.config))
	if err != nil {
		return nil, errors.Wrapf(tsqlx.ErrInvalidConfig, "invalid connection settings: %v", err)
	}
	return openAndPing(ctx, connector, c.config)
}

// openAndPing wraps a driver connector in a configured pool and pings the server.
// The pool is closed again when the ping fails.
func openAndPing(ctx context.Context, connector driver.Connector, config *tsqlx.ConnectionConfig) (*sql.DB, error) {
	db := sql.OpenDB(connector)
	configurePool(db)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.WithStack(wrapConnectionError(err, config))
	}
	return db, nil
}

// NewConnector is a factory function that creates the appropriate Connector
// based on the ConnectionConfig's AuthMethod.
func NewConnector(config *tsqlx.ConnectionConfig) (tsqlx.Connector, error) {
	switch config.AuthMethod {
	case tsqlx.AuthMethodIntegrated, tsqlx.AuthMethodSQL:
		return NewStandardConnector(config), nil
	case tsqlx.AuthMethodAzureEntraID:
		return newAzureConnector(config)
	case tsqlx.AuthMethodGoogleCloudSQL:
		return newGoogleConnector(config)
	default:
		return nil, fmt.Errorf("unsupported auth method %v: %w", config.AuthMethod, tsqlx.ErrUnsupportedAuthMethod)
	}
}

// wrapConnectionError wraps raw driver connection errors with actionable guidance.
func wrapConnectionError(err error, config *tsqlx.ConnectionConfig) error {
	errStr := strings.ToLower(err.Error())
	server := config.Server
	if server == "" {
		server = config.Host
	}

	switch {
	case strings.Contains(errStr, "cannot open database"):
		return fmt.Errorf(`cannot open database "%s" on %s

Possible causes:
  - Database name is misspelled
  - Database is offline or being restored
  - Login has no user mapped in the database

Original error: %v: %w`, config.Database, server, err, tsqlx.ErrDatabaseNotFound)

	case strings.Contains(errStr, "login failed") || strings.Contains(errStr, "login error"):
		return fmt.Errorf(`login failed on %s

Possible causes:
  - Wrong password (check $TSQLX_PASSWORD)
  - Wrong username, or the login is disabled
  - Server only allows Windows authentication

Original error: %v: %w`, server, err, tsqlx.ErrConnectionFailed)

	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		return fmt.Errorf(`connection refused to %s

Possible causes:
  - SQL Server is not running or TCP/IP is disabled
  - Wrong host or port
  - Firewall blocking the connection

Original error: %v: %w`, server, err, tsqlx.ErrConnectionFailed)

	case strings.Contains(errStr, "no such host") || strings.Contains(errStr, "no host"):
		return fmt.Errorf(`cannot resolve host "%s"

Possible causes:
  - Hostname is misspelled
  - DNS is not configured or reachable
  - Network connection issue

Original error: %v: %w`, config.Host, err, tsqlx.ErrConnectionFailed)

	case strings.Contains(errStr, "browser"):
		return fmt.Errorf(`cannot locate instance "%s"

Possible causes:
  - SQL Server Browser service is stopped (UDP 1434)
  - Instance name is misspelled
  - Use host,port instead of host\instance

Original error: %v: %w`, server, err, tsqlx.ErrConnectionFailed)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		return fmt.Errorf(`connection timed out to %s

Possible causes:
  - Server is overloaded or unresponsive
  - Firewall silently dropping packets
  - Wrong host/port (server not listening)

Original error: %v: %w`, server, err, tsqlx.ErrConnectionFailed)

	case strings.Contains(errStr, "tls") || strings.Contains(errStr, "certificate") || strings.Contains(errStr, "x509"):
		return fmt.Errorf(`TLS handshake with %s failed

Possible causes:
  - Server certificate is self-signed (try --trust-server-certificate)
  - Encryption mode mismatch (check --encrypt)

Original error: %v: %w`, server, err, tsqlx.ErrConnectionFailed)

	default:
		return fmt.Errorf("failed to connect to %s: %v: %w", server, err, tsqlx.ErrConnectionFailed)
	}
}

// newGoogleConnector creates a GoogleCloudSQLConnector for a Cloud SQL for SQL Server instance.
func newGoogleConnector(config *tsqlx.ConnectionConfig) (tsqlx.Connector, error) {
	if config.GoogleInstance == "" {
		return nil, fmt.Errorf("Google Cloud SQL requires --google-instance (project:region:instance): %w", tsqlx.ErrInvalidConfig)
	}
	if config.Username == "" {
		return nil, fmt.Errorf("Google Cloud SQL requires a SQL login (--user): %w", tsqlx.ErrInvalidConfig)
	}
	return NewGoogleCloudSQLConnector(config), nil
}

// newAzureConnector creates a token-based connector with the Azure Entra ID token provider.
// If explicit credentials (tenant, client, secret) are provided, uses Service Principal auth.
// Otherwise, falls back to DefaultAzureCredential chain.
func newAzureConnector(config *tsqlx.ConnectionConfig) (tsqlx.Connector, error) {
	var tokenProvider TokenProvider
	var err error

	if config.AzureTenantID != "" && config.AzureClientID != "" && config.AzureClientSecret != "" {
		tokenProvider, err = NewAzureServicePrincipalProvider(
			config.AzureTenantID,
			config.AzureClientID,
			config.AzureClientSecret,
		)
		if err != nil {
			return nil, errors.Wrap(err, "failed to create Azure Service Principal provider")
		}
	} else {
		tokenProvider, err = NewAzureDefaultCredentialProvider()
		if err != nil {
			return nil, errors.Wrap(err, "failed to create Azure Default Credential provider")
		}
	}

	return NewTokenConnector(config, tokenProvider, "Azure"), nil
}
