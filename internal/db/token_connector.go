package db

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	mssql "github.com/microsoft/go-mssqldb"
	"github.com/pkg/errors"

	"github.com/vvka-141/tsqlx/pkg/tsqlx"
)

// TokenConnector implements the Connector interface for servers that accept
// short-lived OAuth access tokens (Azure SQL with Entra ID). The token is
// passed to the driver in the login packet instead of a password.
type TokenConnector struct {
	config        *tsqlx.ConnectionConfig
	tokenProvider TokenProvider
	providerName  string
	warnings      io.Writer
}

// NewTokenConnector creates a connector that uses a TokenProvider for authentication.
// providerName is used in error/warning messages (e.g., "Azure").
func NewTokenConnector(config *tsqlx.ConnectionConfig, tokenProvider TokenProvider, providerName string) *TokenConnector {
	return &TokenConnector{
		config:        config,
		tokenProvider: tokenProvider,
		providerName:  providerName,
		warnings:      os.Stderr,
	}
}

func (c *TokenConnector) Connect(ctx context.Context) (*sql.DB, error) {
	// Fail fast on credential problems before the driver dials
	_, expiresOn, err := c.tokenProvider.GetToken(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to acquire %s token from %s", c.providerName, c.tokenProvider)
	}
	if time.Until(expiresOn) < 5*time.Minute {
		fmt.Fprintf(c.warnings, "Warning: %s token expires in %v\n", c.providerName, time.Until(expiresOn).Round(time.Second))
	}

	// Token auth must not send a user name
	configWithoutUser := *c.config
	configWithoutUser.Username = ""
	configWithoutUser.Password = ""

	connector, err := mssql.NewAccessTokenConnector(BuildConnectionString(&configWithoutUser), func() (string, error) {
		// Reconnects happen outside of Connect, so the token is fetched without its context
		token, _, err := c.tokenProvider.GetToken(context.Background())
		return token, err
	})
	if err != nil {
		return nil, errors.Wrapf(tsqlx.ErrInvalidConfig, "invalid connection settings: %v", err)
	}

	return openAndPing(ctx, connector, c.config)
}
