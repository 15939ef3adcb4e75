package cli

import (
	"fmt"
	"io"
	"os"
)

// Exit codes. Fixture generation deliberately collapses every failure into
// a single non-zero code: callers distinguish failure kinds from the
// diagnostic on stderr, not from the exit status.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// Main runs the full command line and returns the process exit code.
func Main(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "testgen: %v\n", err)
		return ExitFailure
	}
	return ExitSuccess
}

// Run is the os-level entrypoint used by cmd/testgen.
func Run() int {
	return Main(os.Args[1:], os.Stdout, os.Stderr)
}
