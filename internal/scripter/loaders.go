package scripter

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"
)

func loadModules(ctx context.Context, q queryer, query string) ([]moduleEntry, error) {
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "while running query")
	}
	defer rows.Close()

	var out []moduleEntry
	for rows.Next() {
		var m moduleEntry
		if err := rows.Scan(&m.ObjectID, &m.Schema, &m.Name, &m.Type, &m.Definition, &m.UsesAnsiNulls, &m.UsesQuotedIdentifier); err != nil {
			return nil, errors.Wrap(err, "while scanning result")
		}
		m.Type = strings.TrimSpace(m.Type)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "while iterating results")
	}
	return out, nil
}

// loadPermissions returns object permissions keyed by object_id.
func loadPermissions(ctx context.Context, q queryer) (map[int][]permissionEntry, error) {
	rows, err := q.QueryContext(ctx, queryObjectPermissions)
	if err != nil {
		return nil, errors.Wrap(err, "while running permissions query")
	}
	defer rows.Close()

	out := map[int][]permissionEntry{}
	for rows.Next() {
		var id int
		var p permissionEntry
		if err := rows.Scan(&id, &p.State, &p.Permission, &p.Grantee); err != nil {
			return nil, errors.Wrap(err, "while scanning permissions")
		}
		p.State = strings.TrimSpace(p.State)
		out[id] = append(out[id], p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "while iterating permissions")
	}
	return out, nil
}

// loadTables loads every user table with its dependent objects.
func loadTables(ctx context.Context, q queryer) ([]*tableEntry, error) {
	rows, err := q.QueryContext(ctx, queryTables)
	if err != nil {
		return nil, errors.Wrap(err, "while running tables query")
	}
	var tables []*tableEntry
	byID := map[int]*tableEntry{}
	for rows.Next() {
		t := &tableEntry{}
		if err := rows.Scan(&t.ObjectID, &t.Schema, &t.Name, &t.UsesAnsiNulls); err != nil {
			rows.Close()
			return nil, errors.Wrap(err, "while scanning tables")
		}
		tables = append(tables, t)
		byID[t.ObjectID] = t
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "while iterating tables")
	}

	loaders := []struct {
		what string
		load func(context.Context, queryer, map[int]*tableEntry) error
	}{
		{"columns", loadColumns},
		{"default constraints", loadDefaults},
		{"indexes", loadIndexes},
		{"check constraints", loadChecks},
		{"foreign keys", loadForeignKeys},
		{"triggers", loadTriggers},
	}
	for _, l := range loaders {
		if err := l.load(ctx, q, byID); err != nil {
			return nil, errors.Wrapf(err, "while loading %s", l.what)
		}
	}

	perms, err := loadPermissions(ctx, q)
	if err != nil {
		return nil, err
	}
	for _, t := range tables {
		t.Permissions = perms[t.ObjectID]
	}
	return tables, nil
}

// scanEach runs query and calls fn for every row.
func scanEach(ctx context.Context, q queryer, query string, fn func(*sql.Rows) error) error {
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return errors.Wrap(err, "while running query")
	}
	defer rows.Close()
	for rows.Next() {
		if err := fn(rows); err != nil {
			return errors.Wrap(err, "while scanning result")
		}
	}
	return errors.Wrap(rows.Err(), "while iterating results")
}

func loadColumns(ctx context.Context, q queryer, tables map[int]*tableEntry) error {
	return scanEach(ctx, q, queryColumns, func(rows *sql.Rows) error {
		var id int
		var c columnEntry
		var seed, increment sql.NullInt64
		var computed sql.NullString
		if err := rows.Scan(&id, &c.Name, &c.TypeName, &c.TypeSchema, &c.IsUserDefined,
			&c.MaxLength, &c.Precision, &c.Scale, &c.IsNullable,
			&c.IsIdentity, &seed, &increment, &computed, &c.IsPersisted); err != nil {
			return err
		}
		c.Seed, c.Increment, c.Computed = seed.Int64, increment.Int64, computed.String
		if t, ok := tables[id]; ok {
			t.Columns = append(t.Columns, c)
		}
		return nil
	})
}

func loadDefaults(ctx context.Context, q queryer, tables map[int]*tableEntry) error {
	return scanEach(ctx, q, queryDefaultConstraints, func(rows *sql.Rows) error {
		var id int
		var d defaultEntry
		if err := rows.Scan(&id, &d.Name, &d.Column, &d.Definition); err != nil {
			return err
		}
		if t, ok := tables[id]; ok {
			t.Defaults = append(t.Defaults, d)
		}
		return nil
	})
}

// loadIndexes groups consecutive index column rows into indexes.
func loadIndexes(ctx context.Context, q queryer, tables map[int]*tableEntry) error {
	var current *indexEntry
	var currentTable, currentIndex int
	flush := func() {
		if current != nil {
			if t, ok := tables[currentTable]; ok {
				t.Indexes = append(t.Indexes, *current)
			}
		}
		current = nil
	}

	err := scanEach(ctx, q, queryIndexColumns, func(rows *sql.Rows) error {
		var id, indexID int
		var idx indexEntry
		var col indexColumn
		if err := rows.Scan(&id, &indexID, &idx.Name, &idx.IsPrimaryKey, &idx.IsUniqueConstraint, &idx.IsUnique,
			&idx.TypeDesc, &idx.Filter, &col.Name, &col.Descending, &col.Included); err != nil {
			return err
		}
		if current == nil || id != currentTable || indexID != currentIndex {
			flush()
			current, currentTable, currentIndex = &idx, id, indexID
		}
		current.Columns = append(current.Columns, col)
		return nil
	})
	if err != nil {
		return err
	}
	flush()
	return nil
}

func loadChecks(ctx context.Context, q queryer, tables map[int]*tableEntry) error {
	return scanEach(ctx, q, queryCheckConstraints, func(rows *sql.Rows) error {
		var id int
		var c checkEntry
		if err := rows.Scan(&id, &c.Name, &c.Definition, &c.NotTrusted, &c.IsDisabled); err != nil {
			return err
		}
		if t, ok := tables[id]; ok {
			t.Checks = append(t.Checks, c)
		}
		return nil
	})
}

// loadForeignKeys groups consecutive column pair rows into foreign keys.
func loadForeignKeys(ctx context.Context, q queryer, tables map[int]*tableEntry) error {
	var current *foreignKeyEntry
	var currentTable, currentFK int
	flush := func() {
		if current != nil {
			if t, ok := tables[currentTable]; ok {
				t.ForeignKeys = append(t.ForeignKeys, *current)
			}
		}
		current = nil
	}

	err := scanEach(ctx, q, queryForeignKeys, func(rows *sql.Rows) error {
		var id, fkID int
		var fk foreignKeyEntry
		var col, refCol string
		if err := rows.Scan(&id, &fkID, &fk.Name, &fk.RefSchema, &fk.RefTable, &col, &refCol,
			&fk.DeleteAction, &fk.UpdateAction, &fk.NotTrusted, &fk.IsDisabled); err != nil {
			return err
		}
		if current == nil || id != currentTable || fkID != currentFK {
			flush()
			current, currentTable, currentFK = &fk, id, fkID
		}
		current.Columns = append(current.Columns, col)
		current.RefColumns = append(current.RefColumns, refCol)
		return nil
	})
	if err != nil {
		return err
	}
	flush()
	return nil
}

func loadTriggers(ctx context.Context, q queryer, tables map[int]*tableEntry) error {
	return scanEach(ctx, q, queryTriggers, func(rows *sql.Rows) error {
		var id int
		var tr triggerEntry
		if err := rows.Scan(&id, &tr.Definition, &tr.UsesAnsiNulls, &tr.UsesQuotedIdentifier); err != nil {
			return err
		}
		if t, ok := tables[id]; ok {
			t.Triggers = append(t.Triggers, tr)
		}
		return nil
	})
}
