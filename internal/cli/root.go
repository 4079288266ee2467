package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const usageHint = "Try `tsqlx --help' for more information."

const rootLong = `tsqlx scripts the tables, views, stored procedures and functions of one
SQL Server database into a folder tree:

  <scriptpath>/<database>/Create Scripts/Tables/<schema>.<name>.sql
  <scriptpath>/<database>/Create Scripts/Views/...
  <scriptpath>/<database>/Create Scripts/Stored Procedures/...
  <scriptpath>/<database>/Create Scripts/Functions/...

Procedure, view and function scripts are rewritten so they can be re-run:
a stub is created when the object is missing, then ALTER applies the real
definition. Objects whose name starts with "_" have their script deleted.
Scripts that no longer match an object are listed, never deleted.

Connection settings are read with the precedence
  flag > environment (TSQLX_SERVER, TSQLX_DATABASE, TSQLX_USER) > tsqlx.yaml
The password is never a flag: set $TSQLX_PASSWORD or answer the prompt.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or arguments
  11 - Server or database connection failed
  12 - Script file or directory I/O failed`

// NewRootCommand builds the tsqlx command tree.
func NewRootCommand() *cobra.Command {
	flags := &refreshFlagValues{}
	cmd := &cobra.Command{
		Use:   "tsqlx",
		Short: "Script SQL Server schema objects into re-runnable .sql files",
		Long:  rootLong,
		Example: `  tsqlx --server=db01 --db=Sales --scriptpath=./db
  tsqlx -s "db01\SQLEXPRESS" -d Sales -p ./db -U deploy
  tsqlx -s myserver.database.windows.net -d Sales -p ./db --azure`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRefresh(cmd, flags)
		},
	}
	flags.register(cmd)
	cmd.AddCommand(newVersionCommand())
	return cmd
}

// Execute runs the root command and reports a failure on stderr.
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}
	err := NewRootCommand().Execute()
	if err != nil {
		ReportError(os.Stderr, err)
	}
	return err
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// ReportError prints the message, a separator, the stack trace and a usage hint.
func ReportError(w io.Writer, err error) {
	var st stackTracer
	if !errors.As(err, &st) {
		err = errors.WithStack(err)
	}
	fmt.Fprintf(w, "tsqlx: %s\n", err)
	fmt.Fprintln(w, "-----")
	fmt.Fprintf(w, "%+v\n", err)
	fmt.Fprintln(w, usageHint)
}
