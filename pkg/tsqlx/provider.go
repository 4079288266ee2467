package tsqlx

import (
	"context"
	"fmt"
	"io"
)

// Provider returns the scriptable user objects of one database.
// System objects and CLR-implemented routines are never returned.
type Provider interface {
	GetTables(ctx context.Context) ([]SchemaObject, error)
	GetViews(ctx context.Context) ([]SchemaObject, error)
	GetStoredProcedures(ctx context.Context) ([]SchemaObject, error)
	GetUserDefinedFunctions(ctx context.Context) ([]SchemaObject, error)
}

// ProviderSession is a Provider bound to an open connection.
// Close releases the connection and must be called exactly once.
type ProviderSession interface {
	Provider
	io.Closer

	// Database returns the catalog spelling of the bound database name.
	Database() string
}

// SessionOpener acquires a ProviderSession for the database named in config.
type SessionOpener interface {
	Open(ctx context.Context, config *ConnectionConfig) (ProviderSession, error)
}

// Fetch returns the objects of the given set from p.
func (s ObjectSet) Fetch(ctx context.Context, p Provider) ([]SchemaObject, error) {
	switch s.Kind {
	case KindTable:
		return p.GetTables(ctx)
	case KindView:
		return p.GetViews(ctx)
	case KindProcedure:
		return p.GetStoredProcedures(ctx)
	case KindScalarFunction, KindTableFunction:
		return p.GetUserDefinedFunctions(ctx)
	default:
		return nil, fmt.Errorf("no provider operation for kind %v: %w", s.Kind, ErrInvalidConfig)
	}
}
