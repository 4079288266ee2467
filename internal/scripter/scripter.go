package scripter

import (
	"context"
	"database/sql"
	"io"

	"github.com/pkg/errors"

	"github.com/vvka-141/tsqlx/pkg/tsqlx"
)

// queryer is the subset of *sql.Conn used by the loaders.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Scripter implements tsqlx.ProviderSession on one pinned server connection.
type Scripter struct {
	conn     queryer
	closers  []io.Closer
	database string
}

// NewScripter creates a Scripter that queries through conn. The closers are
// closed in order by Close; pass the *sql.Conn, its *sql.DB and any
// connector resources.
func NewScripter(conn queryer, database string, closers ...io.Closer) *Scripter {
	return &Scripter{conn: conn, database: database, closers: closers}
}

// Database returns the catalog name of the scripted database.
func (s *Scripter) Database() string {
	return s.database
}

func (s *Scripter) GetStoredProcedures(ctx context.Context) ([]tsqlx.SchemaObject, error) {
	return s.getModules(ctx, queryProcedures, "stored procedures")
}

func (s *Scripter) GetViews(ctx context.Context) ([]tsqlx.SchemaObject, error) {
	return s.getModules(ctx, queryViews, "views")
}

func (s *Scripter) GetUserDefinedFunctions(ctx context.Context) ([]tsqlx.SchemaObject, error) {
	return s.getModules(ctx, queryFunctions, "functions")
}

func (s *Scripter) GetTables(ctx context.Context) ([]tsqlx.SchemaObject, error) {
	tables, err := loadTables(ctx, s.conn)
	if err != nil {
		return nil, errors.Wrap(err, "while scripting tables")
	}

	out := make([]tsqlx.SchemaObject, 0, len(tables))
	for _, t := range tables {
		out = append(out, tsqlx.SchemaObject{
			Schema:     t.Schema,
			Name:       t.Name,
			Definition: renderTable(t),
			Kind:       tsqlx.KindTable,
		})
	}
	return out, nil
}

func (s *Scripter) getModules(ctx context.Context, query, what string) ([]tsqlx.SchemaObject, error) {
	modules, err := loadModules(ctx, s.conn, query)
	if err != nil {
		return nil, errors.Wrapf(err, "while scripting %s", what)
	}
	perms, err := loadPermissions(ctx, s.conn)
	if err != nil {
		return nil, errors.Wrapf(err, "while scripting %s", what)
	}

	out := make([]tsqlx.SchemaObject, 0, len(modules))
	for _, m := range modules {
		kind, inline, err := kindOf(m.Type)
		if err != nil {
			return nil, errors.Wrapf(err, "while scripting %s.%s", m.Schema, m.Name)
		}
		out = append(out, tsqlx.SchemaObject{
			Schema:     m.Schema,
			Name:       m.Name,
			Definition: renderModule(m, perms[m.ObjectID]),
			Kind:       kind,
			Inline:     inline,
		})
	}
	return out, nil
}

// Close releases the connection, the pool and connector resources.
// The first error is returned; every closer is attempted.
func (s *Scripter) Close() error {
	var first error
	for _, c := range s.closers {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil && first == nil {
			first = errors.Wrap(err, "while closing the connection")
		}
	}
	s.closers = nil
	return first
}

var _ tsqlx.ProviderSession = (*Scripter)(nil)
