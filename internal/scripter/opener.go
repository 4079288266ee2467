package scripter

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/vvka-141/tsqlx/internal/db"
	"github.com/vvka-141/tsqlx/pkg/tsqlx"
)

// Opener implements tsqlx.SessionOpener on top of the connector factory.
type Opener struct {
	newConnector func(*tsqlx.ConnectionConfig) (tsqlx.Connector, error)
}

// NewOpener creates an Opener that builds connectors with db.NewConnector.
func NewOpener() *Opener {
	return &Opener{newConnector: db.NewConnector}
}

// Open connects, pins one connection, verifies the database exists and
// returns a Scripter bound to it. Nothing stays open when Open fails.
func (o *Opener) Open(ctx context.Context, config *tsqlx.ConnectionConfig) (tsqlx.ProviderSession, error) {
	connector, err := o.newConnector(config)
	if err != nil {
		return nil, err
	}
	connectorCloser, _ := connector.(io.Closer)

	pool, err := connector.Connect(ctx)
	if err != nil {
		closeQuietly(connectorCloser)
		return nil, err
	}

	conn, err := pool.Conn(ctx)
	if err != nil {
		pool.Close()
		closeQuietly(connectorCloser)
		return nil, errors.Wrapf(tsqlx.ErrConnectionFailed, "while acquiring a connection: %v", err)
	}

	s := NewScripter(conn, config.Database, conn, pool, connectorCloser)
	name, err := lookupDatabase(ctx, conn, config.Database)
	if err != nil {
		s.Close()
		return nil, err
	}
	s.database = name
	return s, nil
}

// lookupDatabase returns the catalog spelling of database, matched ignoring case.
func lookupDatabase(ctx context.Context, q queryer, database string) (string, error) {
	var name string
	err := q.QueryRowContext(ctx, queryDatabaseName, database).Scan(&name)
	if err == sql.ErrNoRows {
		return "", errors.WithStack(fmt.Errorf("database %q does not exist on the server: %w", database, tsqlx.ErrDatabaseNotFound))
	}
	if err != nil {
		return "", errors.Wrap(err, "while looking up the database")
	}
	return name, nil
}

func closeQuietly(c io.Closer) {
	if c != nil {
		c.Close()
	}
}

var _ tsqlx.SessionOpener = (*Opener)(nil)
