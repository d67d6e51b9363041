package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/olistdata/olistload/internal/cli"
	"github.com/olistdata/olistload/pkg/olistload"
)

func main() {
	// Recover from panics to ensure graceful exits with stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(olistload.ExitPanic)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(olistload.ExitCodeForError(err))
	}
}
