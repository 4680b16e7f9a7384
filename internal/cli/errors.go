package cli

import (
	"errors"
	"fmt"
)

// Process exit codes. 0 is normal or interrupted, 1 any unclassified error.
const (
	ExitMissingDependency = 2 // closed debug port, app not found
	ExitNoTarget          = 3 // no suitable page target
	ExitAttachFailed      = 4 // target refused the attach
)

// ExitError carries a process exit code through kong's Run chain so main can
// map distinct failures to distinct codes.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode resolves the process exit code for an error returned by Run.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var xe *ExitError
	if errors.As(err, &xe) {
		return xe.Code
	}
	return 1
}

// PrintError surfaces errors that reached main without passing through
// outputError, so a failed run is never silent. Errors wrapped in ExitError
// were already emitted by the command and are skipped.
func PrintError(globals *Globals, err error) {
	if err == nil {
		return
	}
	var xe *ExitError
	if errors.As(err, &xe) {
		return
	}
	if globals != nil && globals.Format == "ndjson" {
		fmt.Fprintf(globals.Stdout, `{"type":"error","code":"ERROR","message":%q}`+"\n", err.Error())
		return
	}
	if globals != nil {
		fmt.Fprintf(globals.Stderr, "Error: %s\n", err)
	}
}

// outputError normalizes error emission across commands, respecting ndjson
// vs text formats, and wraps the failure with its exit code.
func outputError(globals *Globals, exitCode int, tag, message string) error {
	if globals != nil && globals.Format == "ndjson" {
		fmt.Fprintf(globals.Stdout, `{"type":"error","code":%q,"message":%q}`+"\n", tag, message)
	} else if globals != nil {
		fmt.Fprintf(globals.Stderr, "Error [%s]: %s\n", tag, message)
	}
	return &ExitError{Code: exitCode, Err: errors.New(message)}
}
