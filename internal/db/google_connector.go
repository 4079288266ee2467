package db

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"

	cloudsqlmssql "cloud.google.com/go/cloudsqlconn/sqlserver/mssql"
	"github.com/pkg/errors"

	"github.com/vvka-141/tsqlx/pkg/tsqlx"
)

var googleDriverSeq int64

// GoogleCloudSQLConnector implements the Connector interface for Cloud SQL
// for SQL Server through the Cloud SQL Go Connector, which handles TLS and
// instance discovery. Authentication is a SQL login.
//
// Implements io.Closer: call Close() after the pool is closed to release
// the Cloud SQL dialer.
type GoogleCloudSQLConnector struct {
	config  *tsqlx.ConnectionConfig
	cleanup func() error
}

// NewGoogleCloudSQLConnector creates a connector for the instance in
// config.GoogleInstance (project:region:instance).
func NewGoogleCloudSQLConnector(config *tsqlx.ConnectionConfig) *GoogleCloudSQLConnector {
	return &GoogleCloudSQLConnector{config: config}
}

// Connect registers a Cloud SQL driver for this connector and opens a pool through it.
func (c *GoogleCloudSQLConnector) Connect(ctx context.Context) (*sql.DB, error) {
	// database/sql cannot unregister drivers, so every registration gets a fresh name
	driverName := fmt.Sprintf("cloudsql-sqlserver-%d", atomic.AddInt64(&googleDriverSeq, 1))
	cleanup, err := cloudsqlmssql.RegisterDriver(driverName)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create Cloud SQL dialer")
	}

	cfg := *c.config
	cfg.Host, cfg.Instance, cfg.Port = "localhost", "", 0
	db, err := sql.Open(driverName, BuildConnectionString(&cfg))
	if err != nil {
		cleanup()
		return nil, errors.Wrapf(tsqlx.ErrInvalidConfig, "invalid connection settings: %v", err)
	}
	configurePool(db)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		cleanup()
		return nil, errors.WithStack(wrapConnectionError(err, c.config))
	}

	c.cleanup = cleanup
	return db, nil
}

// Close releases the Cloud SQL dialer resources.
// Must be called after the connection pool returned by Connect() is closed.
func (c *GoogleCloudSQLConnector) Close() error {
	if c.cleanup == nil {
		return nil
	}
	err := c.cleanup()
	c.cleanup = nil
	return err
}
