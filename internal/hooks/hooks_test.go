// Package hooks provides tests for external post-mutation hook invocation.
package hooks

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("hook scripts are POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "hook.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestInvoke tests the Invoke function with various scenarios.
func TestInvoke(t *testing.T) {
	t.Run("empty command returns success without running", func(t *testing.T) {
		result, err := Invoke(context.Background(), Options{Event: "start"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Ran {
			t.Error("expected Ran to be false")
		}
	})

	t.Run("empty event returns error", func(t *testing.T) {
		result, err := Invoke(context.Background(), Options{Command: "true"})
		if err == nil {
			t.Fatal("expected error for empty event, got nil")
		}
		if result.Ran {
			t.Error("expected Ran to be false")
		}
	})
}

// TestInvokeArguments checks the arguments and environment seen by the hook.
func TestInvokeArguments(t *testing.T) {
	script := writeScript(t, `printf '%s|%s|%s|%s|%s\n' "$1" "$2" "$3" "$4" "$ARENTA_DATA"`)

	var stdout bytes.Buffer
	result, err := Invoke(context.Background(), Options{
		Command:     script,
		Event:       "complete",
		Index:       3,
		Status:      "complete",
		Description: "write report",
		DataFile:    "/tmp/tasks.json",
		Stdout:      &stdout,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !result.Ran {
		t.Error("expected Ran to be true")
	}
	if result.ExitCode != 0 {
		t.Errorf("expected ExitCode 0, got %d", result.ExitCode)
	}
	want := "complete|3|complete|write report|/tmp/tasks.json\n"
	if stdout.String() != want {
		t.Errorf("hook saw %q, want %q", stdout.String(), want)
	}
}

// TestInvokeHookFailure tests a hook that returns non-zero exit code.
func TestInvokeHookFailure(t *testing.T) {
	script := writeScript(t, "exit 42")

	result, err := Invoke(context.Background(), Options{Command: script, Event: "start"})
	if err == nil {
		t.Fatal("expected error for failed hook, got nil")
	}
	if !result.Ran {
		t.Error("expected Ran to be true")
	}
	if result.ExitCode != 42 {
		t.Errorf("expected ExitCode 42, got %d", result.ExitCode)
	}
}

// TestInvokeWithWorkDir tests hook invocation with a custom working directory.
func TestInvokeWithWorkDir(t *testing.T) {
	workDir := t.TempDir()
	script := writeScript(t, "pwd")

	var stdout bytes.Buffer
	if _, err := Invoke(context.Background(), Options{
		Command: script,
		Event:   "new",
		WorkDir: workDir,
		Stdout:  &stdout,
	}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	got, _ := filepath.EvalSymlinks(strings.TrimSpace(stdout.String()))
	want, _ := filepath.EvalSymlinks(workDir)
	if got != want {
		t.Errorf("hook ran in %q, want %q", got, want)
	}
}

// TestInvokeWithContextCancellation tests hook invocation with context cancellation.
func TestInvokeWithContextCancellation(t *testing.T) {
	script := writeScript(t, "sleep 10")

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	result, err := Invoke(ctx, Options{Command: script, Event: "start"})
	if err == nil {
		t.Fatal("expected error for cancelled hook, got nil")
	}
	if !result.Ran {
		t.Error("expected Ran to be true")
	}
	if time.Since(start) > 5*time.Second {
		t.Error("hook was not stopped by context cancellation")
	}
}

func TestInvokeMissingCommand(t *testing.T) {
	result, err := Invoke(context.Background(), Options{
		Command: filepath.Join(t.TempDir(), "does-not-exist"),
		Event:   "start",
	})
	if err == nil {
		t.Fatal("expected error for missing command")
	}
	if result.ExitCode != -1 {
		t.Errorf("expected ExitCode -1, got %d", result.ExitCode)
	}
}
