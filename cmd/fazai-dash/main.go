// Command fazai-dash is a full-screen terminal dashboard for the FazAI service.
package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/fazai/fazai-dash/terminal"
)

func main() {
	// Panic Recovery: the session's own restore may not have run
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)

			fmt.Fprintf(os.Stderr, "\n\x1b[31mFAZAI-DASH CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(exitFailure)
		}
	}()

	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
