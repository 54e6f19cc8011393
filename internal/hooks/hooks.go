// Package hooks invokes an external command after each task mutation.
package hooks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
)

// Options configures a hook invocation.
type Options struct {
	Command     string
	Event       string
	Index       int
	Status      string
	Description string
	DataFile    string
	WorkDir     string
	Stdout      io.Writer
	Stderr      io.Writer
}

// Result captures the outcome of a hook invocation.
type Result struct {
	Ran      bool
	Command  []string
	ExitCode int
}

// Invoke runs the hook command as
//
//	<command> <event> <index> <status> <description>
//
// with ARENTA_DATA set to the task file. An empty command does nothing.
func Invoke(ctx context.Context, opts Options) (Result, error) {
	if opts.Command == "" {
		return Result{}, nil
	}
	if opts.Event == "" {
		return Result{}, fmt.Errorf("hook event is empty")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	args := []string{opts.Event, strconv.Itoa(opts.Index), opts.Status, opts.Description}
	cmd := exec.CommandContext(ctx, opts.Command, args...)
	if opts.WorkDir != "" {
		cmd.Dir = opts.WorkDir
	}
	cmd.Env = append(os.Environ(), "ARENTA_DATA="+opts.DataFile, "ARENTA_EVENT="+opts.Event)
	cmd.Stdout = writerOr(opts.Stdout, os.Stdout)
	cmd.Stderr = writerOr(opts.Stderr, os.Stderr)

	err := cmd.Run()
	result := Result{
		Ran:      true,
		Command:  cmd.Args,
		ExitCode: exitCodeFromError(err),
	}
	if err != nil {
		return result, fmt.Errorf("hook command failed: %w", err)
	}
	return result, nil
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w == nil {
		return fallback
	}
	return w
}

func exitCodeFromError(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
