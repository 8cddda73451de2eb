package main

import (
	"errors"
	"io"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code: 0 when every input
// conforms, 1 on nonconformance, 2 on any other error. Errors other than
// nonconformance are logged here and nowhere else.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errNonconforming):
		return 1
	}
	newLogger(stderr, false).Error("command failed", "err", err)
	return 2
}
