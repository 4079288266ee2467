package tsqlx

import (
	"context"
	"database/sql"
)

// Connector is a unified interface for establishing database connections.
// Different implementations handle various authentication methods
// (integrated security, SQL logins, cloud identities).
type Connector interface {
	// Connect opens a database handle limited to a single connection.
	// The returned handle should be closed by the caller when done.
	Connect(ctx context.Context) (*sql.DB, error)
}
