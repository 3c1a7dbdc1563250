// Package main provides the CLI entrypoint for entity-display.
//
// entity-display manages where the fields of an entity bundle render:
//   - lists the layouts found in a directory of HCL definitions
//   - reconciles a display record after a layout switch or field change
//   - projects a flat render tree into the regions of the record's layout
//   - validates a record against layouts and the field catalog
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// exitError carries a non-zero exit code without an extra message.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string {
	return e.msg
}

func main() {
	if err := run(context.Background(), os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.msg)
			os.Exit(exitErr.code)
		}

		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// run builds the command tree and executes it with args.
func run(ctx context.Context, outW, errW io.Writer, args []string) error {
	root := newRootCmd(outW, errW)
	root.SetArgs(args)

	return root.ExecuteContext(ctx)
}
