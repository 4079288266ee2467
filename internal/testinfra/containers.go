package testinfra

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strconv"
	"time"

	_ "github.com/microsoft/go-mssqldb"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mssql"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/vvka-141/tsqlx/pkg/tsqlx"
)

const (
	SQLServerImage    = "mcr.microsoft.com/mssql/server:2022-latest"
	SQLServerUser     = "sa"
	SQLServerPassword = "Tsqlx-Test-Passw0rd"
)

type SQLServerContainer struct {
	*mssql.MSSQLServerContainer
	ConnString string
	Host       string
	Port       int
}

// StartSQLServer starts a SQL Server container and waits until it accepts logins.
func StartSQLServer(ctx context.Context) (*SQLServerContainer, error) {
	ctr, err := mssql.Run(ctx,
		SQLServerImage,
		mssql.WithAcceptEULA(),
		mssql.WithPassword(SQLServerPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("Recovery is complete.").
				WithStartupTimeout(120*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start sql server: %w", err)
	}

	connStr, err := ctr.ConnectionString(ctx, "encrypt=disable")
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get connection string: %w", err)
	}

	u, err := url.Parse(connStr)
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("parse connection string: %w", err)
	}
	port, err := strconv.Atoi(u.Port())
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("parse mapped port: %w", err)
	}

	return &SQLServerContainer{MSSQLServerContainer: ctr, ConnString: connStr, Host: u.Hostname(), Port: port}, nil
}

// ConnectionConfig returns a SQL login config for database on this container.
func (c *SQLServerContainer) ConnectionConfig(database string) *tsqlx.ConnectionConfig {
	return &tsqlx.ConnectionConfig{
		Server:     fmt.Sprintf("%s,%d", c.Host, c.Port),
		Host:       c.Host,
		Port:       c.Port,
		Database:   database,
		Username:   SQLServerUser,
		Password:   SQLServerPassword,
		AuthMethod: tsqlx.AuthMethodSQL,
		Encrypt:    "disable",
		AppName:    tsqlx.DefaultAppName,
	}
}

// Exec runs each batch in database; an empty database means master.
func (c *SQLServerContainer) Exec(ctx context.Context, database string, batches ...string) error {
	u, err := url.Parse(c.ConnString)
	if err != nil {
		return err
	}
	if database != "" {
		q := u.Query()
		q.Set("database", database)
		u.RawQuery = q.Encode()
	}

	db, err := sql.Open("sqlserver", u.String())
	if err != nil {
		return err
	}
	defer db.Close()
	for _, b := range batches {
		if _, err := db.ExecContext(ctx, b); err != nil {
			return fmt.Errorf("exec %q: %w", b, err)
		}
	}
	return nil
}
