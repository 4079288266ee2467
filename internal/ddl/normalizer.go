package ddl

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/vvka-141/tsqlx/pkg/tsqlx"
)

// Session settings emitted by the provider that must not be replayed.
var droppedLines = map[string]bool{
	"SET ANSI_NULLS ON":        true,
	"SET QUOTED_IDENTIFIER ON": true,
}

var (
	// createPattern matches "create <function|proc|view>" anywhere on a line.
	// Group 1 is the CREATE keyword.
	createPattern = regexp.MustCompile(`(?i)(create)\s+(function|proc|view)`)

	grantExecutePrefix = "GRANT EXECUTE ON "
)

// Normalize turns the raw provider DDL of obj into an idempotent script for
// the given database.
func Normalize(database string, obj tsqlx.SchemaObject) string {
	header := Header(database, obj)
	body := strings.Join(normalizeLines(SplitLines(obj.Definition)), "\n")
	return header + body
}

// Header returns the create-stub block for obj, or "" for tables.
func Header(database string, obj tsqlx.SchemaObject) string {
	if obj.Kind == tsqlx.KindTable {
		return ""
	}

	name := obj.QualifiedName()
	var b strings.Builder
	fmt.Fprintf(&b, "use %s\n", database)
	b.WriteString(tsqlx.BatchSeparator + "\n")
	fmt.Fprintf(&b, "if objectproperty(object_id('%s'), 'Is%s') is null begin\n", name, obj.Kind)
	if stub := stubStatement(obj); stub != "" {
		fmt.Fprintf(&b, "\texec('%s')\n", stub)
	}
	b.WriteString("end\n")
	b.WriteString(tsqlx.BatchSeparator + "\n")
	return b.String()
}

// stubStatement returns the placeholder definition created when the object is missing.
func stubStatement(obj tsqlx.SchemaObject) string {
	name := obj.QualifiedName()
	switch obj.Kind {
	case tsqlx.KindProcedure:
		return fmt.Sprintf("create proc %s as", name)
	case tsqlx.KindScalarFunction:
		return fmt.Sprintf("create function %s() returns int as begin return null end", name)
	case tsqlx.KindView:
		return fmt.Sprintf("create view %s as select 1 as z", name)
	case tsqlx.KindTableFunction:
		// ALTER FUNCTION cannot switch between inline and multi-statement bodies
		if obj.Inline {
			return fmt.Sprintf("create function %s() returns table as return select 1 as z", name)
		}
		return fmt.Sprintf("create function %s() returns @t table (z int) as begin return end", name)
	default:
		return ""
	}
}

// SplitLines splits s on CRLF, CR and LF line endings.
func SplitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

func normalizeLines(lines []string) []string {
	result := make([]string, 0, len(lines)+2)
	for _, line := range lines {
		switch {
		case droppedLines[line]:
			continue
		case createPattern.MatchString(line):
			result = append(result, createToAlter(line))
		case hasPrefixFold(line, grantExecutePrefix):
			// grants run in their own batch
			result = append(result, tsqlx.BatchSeparator, line)
		default:
			result = append(result, line)
		}
	}

	if n := len(result); n > 0 && result[n-1] == "" {
		result = append(result[:n-1], tsqlx.BatchSeparator, "")
	} else {
		result = append(result, tsqlx.BatchSeparator, "")
	}
	return result
}

// createToAlter replaces the first matched CREATE keyword with "alter",
// leaving the rest of the line untouched.
func createToAlter(line string) string {
	m := createPattern.FindStringSubmatchIndex(line)
	if m == nil {
		return line
	}
	return line[:m[2]] + "alter" + line[m[3]:]
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
