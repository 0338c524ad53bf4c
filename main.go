package main

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/fang"
)

func main() {
	os.Exit(execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the CLI through fang and returns the process exit status.
func execute(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	if argv == nil {
		argv = []string{}
	}
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(argv)
	err := fang.Execute(
		ctx,
		cmd,
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
		fang.WithErrorHandler(handleError),
	)
	return exitCode(err)
}

// handleError keeps quiet for exit errors that carry no message: the duplicate
// report has already been written to stdout by then.
func handleError(w io.Writer, styles fang.Styles, err error) {
	var exitErr *exitError
	if errors.As(err, &exitErr) && exitErr.err == nil {
		return
	}
	fang.DefaultErrorHandler(w, styles, err)
}
