package ddl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/tsqlx/pkg/tsqlx"
)

func proc(def string) tsqlx.SchemaObject {
	return tsqlx.SchemaObject{Schema: "dbo", Name: "MyProc", Definition: def, Kind: tsqlx.KindProcedure}
}

func TestNormalize_ProcedureExample(t *testing.T) {
	out := Normalize("Sales", proc("create   proc [dbo].[MyProc]\nas\nselect 1\n"))

	expected := "use Sales\n" +
		"go\n" +
		"if objectproperty(object_id('dbo.MyProc'), 'IsProcedure') is null begin\n" +
		"\texec('create proc dbo.MyProc as')\n" +
		"end\n" +
		"go\n" +
		"alter   proc [dbo].[MyProc]\n" +
		"as\n" +
		"select 1\n" +
		"go\n"
	assert.Equal(t, expected, out)
}

func TestNormalize_HeaderStartsWithUse(t *testing.T) {
	kinds := []tsqlx.ObjectKind{tsqlx.KindProcedure, tsqlx.KindView, tsqlx.KindScalarFunction, tsqlx.KindTableFunction}
	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			obj := tsqlx.SchemaObject{Schema: "rpt", Name: "Thing", Kind: kind, Definition: "create view rpt.Thing as select 2"}
			lines := strings.Split(Normalize("Warehouse", obj), "\n")
			require.GreaterOrEqual(t, len(lines), 2)
			assert.Equal(t, "use Warehouse", lines[0])
			assert.Equal(t, "go", lines[1])
			assert.Equal(t, "if objectproperty(object_id('rpt.Thing'), 'Is"+kind.String()+"') is null begin", lines[2])
		})
	}
}

func TestNormalize_Stubs(t *testing.T) {
	tests := []struct {
		name string
		obj  tsqlx.SchemaObject
		stub string
	}{
		{"procedure", tsqlx.SchemaObject{Schema: "dbo", Name: "p", Kind: tsqlx.KindProcedure},
			"\texec('create proc dbo.p as')"},
		{"scalar function", tsqlx.SchemaObject{Schema: "dbo", Name: "f", Kind: tsqlx.KindScalarFunction},
			"\texec('create function dbo.f() returns int as begin return null end')"},
		{"view", tsqlx.SchemaObject{Schema: "dbo", Name: "v", Kind: tsqlx.KindView},
			"\texec('create view dbo.v as select 1 as z')"},
		{"inline table function", tsqlx.SchemaObject{Schema: "dbo", Name: "itf", Kind: tsqlx.KindTableFunction, Inline: true},
			"\texec('create function dbo.itf() returns table as return select 1 as z')"},
		{"multi-statement table function", tsqlx.SchemaObject{Schema: "dbo", Name: "tf", Kind: tsqlx.KindTableFunction},
			"\texec('create function dbo.tf() returns @t table (z int) as begin return end')"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := Header("db", tt.obj)
			assert.Contains(t, header, tt.stub+"\nend\ngo\n")
		})
	}
}

func TestNormalize_TableHasNoHeader(t *testing.T) {
	obj := tsqlx.SchemaObject{
		Schema:     "dbo",
		Name:       "Orders",
		Kind:       tsqlx.KindTable,
		Definition: "CREATE TABLE [dbo].[Orders](\n\t[Id] [int] NOT NULL\n)",
	}
	out := Normalize("Sales", obj)
	assert.Equal(t, "CREATE TABLE [dbo].[Orders](\n\t[Id] [int] NOT NULL\n)\ngo\n", out)
	assert.NotContains(t, out, "use Sales")
	assert.NotContains(t, out, "objectproperty")
	assert.Empty(t, Header("Sales", obj))
}

func TestNormalize_DropsSessionSettings(t *testing.T) {
	def := "SET ANSI_NULLS ON\r\nSET QUOTED_IDENTIFIER ON\r\nCREATE VIEW dbo.v AS SELECT 1 AS a\r\n"
	out := Normalize("db", tsqlx.SchemaObject{Schema: "dbo", Name: "v", Kind: tsqlx.KindView, Definition: def})

	for _, line := range strings.Split(out, "\n") {
		assert.NotEqual(t, "SET ANSI_NULLS ON", line)
		assert.NotEqual(t, "SET QUOTED_IDENTIFIER ON", line)
	}
	assert.Contains(t, out, "alter VIEW dbo.v AS SELECT 1 AS a\n")
}

func TestNormalize_KeepsSessionSettingsThatAreNotExactMatches(t *testing.T) {
	def := "SET ANSI_NULLS OFF\n  SET QUOTED_IDENTIFIER ON\nset ansi_nulls on"
	out := Normalize("db", tsqlx.SchemaObject{Kind: tsqlx.KindTable, Definition: def})
	assert.Equal(t, "SET ANSI_NULLS OFF\n  SET QUOTED_IDENTIFIER ON\nset ansi_nulls on\ngo\n", out)
}

func TestNormalize_CreateToAlter(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"CREATE PROCEDURE dbo.p", "alter PROCEDURE dbo.p"},
		{"create proc dbo.p", "alter proc dbo.p"},
		{"Create\tFunction dbo.f()", "alter\tFunction dbo.f()"},
		{"  create view dbo.v as select 'create view' as x", "  alter view dbo.v as select 'create view' as x"},
		{"CREATE TABLE dbo.t (id int)", "CREATE TABLE dbo.t (id int)"},
		{"createview", "createview"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			out := Normalize("db", tsqlx.SchemaObject{Kind: tsqlx.KindTable, Definition: tt.in})
			assert.Equal(t, tt.want+"\ngo\n", out)
		})
	}
}

func TestNormalize_GrantExecuteGetsOwnBatch(t *testing.T) {
	def := strings.Join([]string{
		"CREATE PROCEDURE dbo.p AS SELECT 1",
		"GRANT EXECUTE ON [dbo].[p] TO [app]",
		"grant execute on [dbo].[p] TO [report]",
		"GRANT SELECT ON [dbo].[t] TO [app]",
	}, "\n")
	out := Normalize("db", tsqlx.SchemaObject{Schema: "dbo", Name: "p", Kind: tsqlx.KindProcedure, Definition: def})

	body := strings.SplitN(out, "end\ngo\n", 2)[1]
	assert.Equal(t, strings.Join([]string{
		"alter PROCEDURE dbo.p AS SELECT 1",
		"go",
		"GRANT EXECUTE ON [dbo].[p] TO [app]",
		"go",
		"grant execute on [dbo].[p] TO [report]",
		"GRANT SELECT ON [dbo].[t] TO [app]",
		"go",
		"",
	}, "\n"), body)
}

func TestNormalize_Ending(t *testing.T) {
	tests := []struct {
		name string
		def  string
		want string
	}{
		{"no trailing newline", "select 1", "select 1\ngo\n"},
		{"trailing newline", "select 1\n", "select 1\ngo\n"},
		{"trailing CRLF", "select 1\r\n", "select 1\ngo\n"},
		{"two trailing newlines", "select 1\n\n", "select 1\n\ngo\n"},
		{"empty", "", "go\n"},
		{"only dropped lines", "SET ANSI_NULLS ON", "go\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Normalize("db", tsqlx.SchemaObject{Kind: tsqlx.KindTable, Definition: tt.def})
			assert.Equal(t, tt.want, out)
			assert.True(t, strings.HasSuffix(out, "\ngo\n") || out == "go\n")
		})
	}
}

func TestNormalize_IsDeterministic(t *testing.T) {
	obj := proc("CREATE PROCEDURE dbo.MyProc\r\nAS\rSELECT 1\nGRANT EXECUTE ON [dbo].[MyProc] TO [app]")
	assert.Equal(t, Normalize("db", obj), Normalize("db", obj))
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c", "d"}, SplitLines("a\r\nb\rc\nd"))
	assert.Equal(t, []string{""}, SplitLines(""))
}
