package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vvka-141/tsqlx/internal/cli"
	"github.com/vvka-141/tsqlx/pkg/tsqlx"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(tsqlx.ExitPanic)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(tsqlx.ExitCodeForError(err))
	}
}
