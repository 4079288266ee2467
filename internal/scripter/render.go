package scripter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vvka-141/tsqlx/pkg/tsqlx"
)

// moduleEntry is one sys.sql_modules backed object.
type moduleEntry struct {
	ObjectID             int
	Schema               string
	Name                 string
	Type                 string
	Definition           string
	UsesAnsiNulls        bool
	UsesQuotedIdentifier bool
}

// permissionEntry is one object-level GRANT or DENY.
type permissionEntry struct {
	State      string // G, D or W (grant with grant option)
	Permission string
	Grantee    string
}

type columnEntry struct {
	Name          string
	TypeName      string
	TypeSchema    string
	IsUserDefined bool
	MaxLength     int
	Precision     int
	Scale         int
	IsNullable    bool
	IsIdentity    bool
	Seed          int64
	Increment     int64
	Computed      string
	IsPersisted   bool
}

type defaultEntry struct {
	Name       string
	Column     string
	Definition string
}

type indexColumn struct {
	Name       string
	Descending bool
	Included   bool
}

type indexEntry struct {
	Name               string
	IsPrimaryKey       bool
	IsUniqueConstraint bool
	IsUnique           bool
	TypeDesc           string // CLUSTERED or NONCLUSTERED
	Filter             string
	Columns            []indexColumn
}

func (i *indexEntry) isConstraint() bool {
	return i.IsPrimaryKey || i.IsUniqueConstraint
}

type checkEntry struct {
	Name       string
	Definition string
	NotTrusted bool
	IsDisabled bool
}

type foreignKeyEntry struct {
	Name         string
	RefSchema    string
	RefTable     string
	Columns      []string
	RefColumns   []string
	DeleteAction string
	UpdateAction string
	NotTrusted   bool
	IsDisabled   bool
}

type triggerEntry struct {
	Definition           string
	UsesAnsiNulls        bool
	UsesQuotedIdentifier bool
}

// tableEntry collects everything scripted for one user table.
type tableEntry struct {
	ObjectID      int
	Schema        string
	Name          string
	UsesAnsiNulls bool
	Columns       []columnEntry
	Defaults      []defaultEntry
	Indexes       []indexEntry
	Checks        []checkEntry
	ForeignKeys   []foreignKeyEntry
	Triggers      []triggerEntry
	Permissions   []permissionEntry
}

// quoteName brackets an identifier the way QUOTENAME does.
func quoteName(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}

func qualified(schema, name string) string {
	return quoteName(schema) + "." + quoteName(name)
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}

// kindOf maps a sys.objects type code to an ObjectKind.
func kindOf(typeCode string) (kind tsqlx.ObjectKind, inline bool, err error) {
	switch strings.TrimSpace(typeCode) {
	case "U":
		return tsqlx.KindTable, false, nil
	case "V":
		return tsqlx.KindView, false, nil
	case "P":
		return tsqlx.KindProcedure, false, nil
	case "FN":
		return tsqlx.KindScalarFunction, false, nil
	case "IF":
		return tsqlx.KindTableFunction, true, nil
	case "TF":
		return tsqlx.KindTableFunction, false, nil
	default:
		return 0, false, fmt.Errorf("unexpected object type %q", typeCode)
	}
}

// renderPermissions renders GRANT/DENY statements, one per line.
func renderPermissions(schema, name string, perms []permissionEntry) []string {
	var lines []string
	target := qualified(schema, name)
	for _, p := range perms {
		switch p.State {
		case "D":
			lines = append(lines, fmt.Sprintf("DENY %s ON %s TO %s", p.Permission, target, quoteName(p.Grantee)))
		case "W":
			lines = append(lines, fmt.Sprintf("GRANT %s ON %s TO %s WITH GRANT OPTION", p.Permission, target, quoteName(p.Grantee)))
		default:
			lines = append(lines, fmt.Sprintf("GRANT %s ON %s TO %s", p.Permission, target, quoteName(p.Grantee)))
		}
	}
	return lines
}

// renderModule produces the raw script of a procedure, view or function:
// session settings, the stored definition and its permissions.
//
// CREATE/ALTER of a module must start its batch, so a batch separator follows
// session settings that the normalizer keeps (the OFF ones). Permissions other
// than GRANT EXECUTE, which the normalizer separates itself, are given their
// own batch so they are not read as part of the module body.
func renderModule(m moduleEntry, perms []permissionEntry) string {
	lines := []string{
		"SET ANSI_NULLS " + onOff(m.UsesAnsiNulls),
		"SET QUOTED_IDENTIFIER " + onOff(m.UsesQuotedIdentifier),
	}
	if !m.UsesAnsiNulls || !m.UsesQuotedIdentifier {
		lines = append(lines, tsqlx.BatchSeparator)
	}
	lines = append(lines, strings.TrimRight(m.Definition, "\r\n"))
	for i, line := range renderPermissions(m.Schema, m.Name, perms) {
		if !isGrantExecute(perms[i]) {
			lines = append(lines, tsqlx.BatchSeparator)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n") + "\n"
}

func isGrantExecute(p permissionEntry) bool {
	return p.State != "D" && p.Permission == "EXECUTE"
}

// renderType renders a column data type, e.g. [nvarchar](50) or [decimal](18, 2).
func renderType(c columnEntry) string {
	if c.IsUserDefined {
		return qualified(c.TypeSchema, c.TypeName)
	}
	base := quoteName(c.TypeName)
	switch strings.ToLower(c.TypeName) {
	case "char", "varchar", "binary", "varbinary":
		return base + "(" + lengthOf(c.MaxLength, 1) + ")"
	case "nchar", "nvarchar":
		return base + "(" + lengthOf(c.MaxLength, 2) + ")"
	case "decimal", "numeric":
		return fmt.Sprintf("%s(%d, %d)", base, c.Precision, c.Scale)
	case "datetime2", "time", "datetimeoffset":
		return fmt.Sprintf("%s(%d)", base, c.Scale)
	default:
		return base
	}
}

func lengthOf(maxLength, bytesPerChar int) string {
	if maxLength < 0 {
		return "max"
	}
	return strconv.Itoa(maxLength / bytesPerChar)
}

func renderColumn(c columnEntry) string {
	if c.Computed != "" {
		line := "\t" + quoteName(c.Name) + " AS " + c.Computed
		if c.IsPersisted {
			line += " PERSISTED"
		}
		return line
	}
	line := "\t" + quoteName(c.Name) + " " + renderType(c)
	if c.IsIdentity {
		line += fmt.Sprintf(" IDENTITY(%d,%d)", c.Seed, c.Increment)
	}
	if c.IsNullable {
		return line + " NULL"
	}
	return line + " NOT NULL"
}

func renderIndexColumns(cols []indexColumn, included bool) []string {
	var out []string
	for _, c := range cols {
		if c.Included != included {
			continue
		}
		if included {
			out = append(out, quoteName(c.Name))
		} else if c.Descending {
			out = append(out, quoteName(c.Name)+" DESC")
		} else {
			out = append(out, quoteName(c.Name)+" ASC")
		}
	}
	return out
}

// renderTable produces the CREATE TABLE script with every dependent
// constraint, index, trigger and permission of the table.
func renderTable(t *tableEntry) string {
	target := qualified(t.Schema, t.Name)
	var b strings.Builder

	fmt.Fprintf(&b, "SET ANSI_NULLS %s\n", onOff(t.UsesAnsiNulls))
	b.WriteString("SET QUOTED_IDENTIFIER ON\n")
	fmt.Fprintf(&b, "CREATE TABLE %s(\n", target)

	parts := make([]string, 0, len(t.Columns)+1)
	for _, c := range t.Columns {
		parts = append(parts, renderColumn(c))
	}
	for _, idx := range t.Indexes {
		if !idx.isConstraint() {
			continue
		}
		kind := "UNIQUE"
		if idx.IsPrimaryKey {
			kind = "PRIMARY KEY"
		}
		parts = append(parts, fmt.Sprintf(" CONSTRAINT %s %s %s \n(\n\t%s\n)",
			quoteName(idx.Name), kind, idx.TypeDesc, strings.Join(renderIndexColumns(idx.Columns, false), ",\n\t")))
	}
	b.WriteString(strings.Join(parts, ",\n"))
	b.WriteString("\n)\n")

	for _, idx := range t.Indexes {
		if idx.isConstraint() {
			continue
		}
		unique := ""
		if idx.IsUnique {
			unique = "UNIQUE "
		}
		fmt.Fprintf(&b, "CREATE %s%s INDEX %s ON %s\n(\n\t%s\n)",
			unique, idx.TypeDesc, quoteName(idx.Name), target, strings.Join(renderIndexColumns(idx.Columns, false), ",\n\t"))
		if inc := renderIndexColumns(idx.Columns, true); len(inc) > 0 {
			fmt.Fprintf(&b, "\nINCLUDE(%s)", strings.Join(inc, ", "))
		}
		if idx.Filter != "" {
			fmt.Fprintf(&b, "\nWHERE %s", idx.Filter)
		}
		b.WriteString("\n")
	}

	for _, d := range t.Defaults {
		fmt.Fprintf(&b, "ALTER TABLE %s ADD  CONSTRAINT %s  DEFAULT %s FOR %s\n",
			target, quoteName(d.Name), d.Definition, quoteName(d.Column))
	}

	for _, fk := range t.ForeignKeys {
		fmt.Fprintf(&b, "ALTER TABLE %s  WITH %s ADD  CONSTRAINT %s FOREIGN KEY(%s)\nREFERENCES %s (%s)",
			target, checkMode(fk.NotTrusted), quoteName(fk.Name), quoteList(fk.Columns),
			qualified(fk.RefSchema, fk.RefTable), quoteList(fk.RefColumns))
		if action := referentialAction(fk.UpdateAction); action != "" {
			b.WriteString("\nON UPDATE " + action)
		}
		if action := referentialAction(fk.DeleteAction); action != "" {
			b.WriteString("\nON DELETE " + action)
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "ALTER TABLE %s %s CONSTRAINT %s\n", target, enableMode(fk.IsDisabled), quoteName(fk.Name))
	}

	for _, ck := range t.Checks {
		fmt.Fprintf(&b, "ALTER TABLE %s  WITH %s ADD  CONSTRAINT %s CHECK  %s\n",
			target, checkMode(ck.NotTrusted), quoteName(ck.Name), ck.Definition)
		fmt.Fprintf(&b, "ALTER TABLE %s %s CONSTRAINT %s\n", target, enableMode(ck.IsDisabled), quoteName(ck.Name))
	}

	// CREATE TRIGGER must be alone in its batch
	for _, tr := range t.Triggers {
		b.WriteString(tsqlx.BatchSeparator + "\n")
		fmt.Fprintf(&b, "SET ANSI_NULLS %s\n", onOff(tr.UsesAnsiNulls))
		fmt.Fprintf(&b, "SET QUOTED_IDENTIFIER %s\n", onOff(tr.UsesQuotedIdentifier))
		if !tr.UsesAnsiNulls || !tr.UsesQuotedIdentifier {
			b.WriteString(tsqlx.BatchSeparator + "\n")
		}
		b.WriteString(strings.TrimRight(tr.Definition, "\r\n"))
		b.WriteString("\n")
	}

	perms := renderPermissions(t.Schema, t.Name, t.Permissions)
	if len(t.Triggers) > 0 && len(perms) > 0 {
		b.WriteString(tsqlx.BatchSeparator + "\n")
	}
	for _, line := range perms {
		b.WriteString(line + "\n")
	}

	return b.String()
}

func quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quoteName(n)
	}
	return strings.Join(quoted, ", ")
}

func checkMode(notTrusted bool) string {
	if notTrusted {
		return "NOCHECK"
	}
	return "CHECK"
}

func enableMode(disabled bool) string {
	if disabled {
		return "NOCHECK"
	}
	return "CHECK"
}

// referentialAction turns NO_ACTION/CASCADE/SET_NULL/SET_DEFAULT into T-SQL.
// NO_ACTION is the default and renders as nothing.
func referentialAction(desc string) string {
	if desc == "" || desc == "NO_ACTION" {
		return ""
	}
	return strings.ReplaceAll(desc, "_", " ")
}
