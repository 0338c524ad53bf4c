package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/pflag"
)

// Process exit statuses.
const (
	exitOK         = 0
	exitDuplicates = 1
	exitFatal      = 2
)

// exitError carries the status the process should exit with. A nil err means
// the diagnostic was already written.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit status %d", e.code)
}

func (e *exitError) Unwrap() error {
	return e.err
}

func fatal(err error) error {
	return &exitError{code: exitFatal, err: err}
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	return exitFatal
}

type cliApp struct {
	stdout     io.Writer
	stderr     io.Writer
	configPath string
}

func run(argv []string, stdout, stderr io.Writer) error {
	if argv == nil {
		// cobra falls back to os.Args on nil
		argv = []string{}
	}
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(argv)
	return cmd.Execute()
}

// check reports outputs written by more than one doc and fails with
// exitDuplicates when there are any.
func (app *cliApp) check(ctx context.Context, flags *pflag.FlagSet) error {
	reg, err := app.scan(ctx, flags)
	if err != nil {
		return fatal(err)
	}
	dups := reg.duplicates()
	if len(dups) == 0 {
		return nil
	}
	if err := writeDuplicateReport(app.stdout, dups); err != nil {
		return fatal(err)
	}
	return &exitError{code: exitDuplicates}
}

// listOutputs prints the whole registry.
func (app *cliApp) listOutputs(ctx context.Context, flags *pflag.FlagSet) error {
	reg, err := app.scan(ctx, flags)
	if err != nil {
		return fatal(err)
	}
	if err := writeRegistry(app.stdout, reg.entries()); err != nil {
		return fatal(err)
	}
	return nil
}

// scan builds the output registry from the configured docs.
func (app *cliApp) scan(ctx context.Context, flags *pflag.FlagSet) (*registry, error) {
	s, err := loadSettings(flags, app.configPath)
	if err != nil {
		return nil, err
	}
	logger := newLogger(app.stderr, s.Verbose)

	paths, err := expandDocs(s.Docs, s.Exclude)
	if err != nil {
		return nil, err
	}
	logger.Debug("matched docs", "glob", s.Docs, "count", len(paths))

	docs, err := loadDocs(ctx, paths, logger)
	if err != nil {
		return nil, err
	}
	nameSources(docs, globRoot(s.Docs))
	ex, err := newExtractor(s, logger)
	if err != nil {
		return nil, err
	}
	reg := newRegistry()
	for _, doc := range docs {
		pairs := ex.extract(doc)
		logger.Debug("extracted outputs", "path", doc.path, "count", len(pairs))
		reg.addAll(pairs)
	}
	logger.Debug("registry built", "outputs", reg.size(), "mode", s.Mode)
	return reg, nil
}
