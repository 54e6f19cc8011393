package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/nibzard/arenta-go/internal/arentadir"
	"github.com/nibzard/arenta-go/internal/lock"
	"github.com/nibzard/arenta-go/internal/logging"
	"github.com/nibzard/arenta-go/internal/store"
	"github.com/nibzard/arenta-go/internal/task"
)

// doctorCommand checks the config, the task file, the lock, and the
// journal directory.
func (a *app) doctorCommand(args []string) error {
	fs := a.subFlags("doctor")
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := noArgs(fs); err != nil {
		return err
	}

	w := a.out
	fmt.Fprintln(w, "arenta doctor")
	fmt.Fprintln(w, "=============")
	fmt.Fprintln(w)

	allOK := true

	// Check config
	fmt.Fprintln(w, "Config:")
	if err := a.cfg.Validate(); err != nil {
		fmt.Fprintf(w, "  ❌ %v\n", err)
		allOK = false
	} else {
		fmt.Fprintln(w, "  ✅ OK")
	}
	if a.cfg.UserFile != "" {
		fmt.Fprintf(w, "  User file: %s\n", a.cfg.UserFile)
	}
	if a.cfg.ProjectFile != "" {
		fmt.Fprintf(w, "  Project file: %s\n", a.cfg.ProjectFile)
	}
	if *verbose {
		fmt.Fprintf(w, "  State directory: %s\n", arentadir.DirPath(arentadir.Home()))
		fmt.Fprintf(w, "  Schema validation: %v\n", a.cfg.ValidateSchema)
		if a.cfg.HookCommand != "" {
			fmt.Fprintf(w, "  Hook: %s\n", a.cfg.HookCommand)
		}
	}
	fmt.Fprintln(w)

	// Check task file
	fmt.Fprintf(w, "Task file: %s\n", a.cfg.DataFile)
	if !a.checkTaskFile(*verbose) {
		allOK = false
	}
	fmt.Fprintln(w)

	// Check lock
	fmt.Fprintf(w, "Lock file: %s\n", a.cfg.LockFile)
	if lock.Held(a.cfg.LockFile) {
		if pid, ok := lock.Owner(a.cfg.LockFile); ok {
			fmt.Fprintf(w, "  ⚠️  Held by pid %d (remove it if no session is running)\n", pid)
		} else {
			fmt.Fprintln(w, "  ⚠️  Held (remove it if no session is running)")
		}
	} else {
		fmt.Fprintln(w, "  ✅ Free")
	}
	fmt.Fprintln(w)

	// Check journal directory
	fmt.Fprintf(w, "Journal directory: %s\n", a.cfg.LogDir)
	if info, err := os.Stat(a.cfg.LogDir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(w, "  ⚠️  Not found (will be created on the first session)")
		} else {
			fmt.Fprintf(w, "  ❌ Error: %v\n", err)
			allOK = false
		}
	} else if !info.IsDir() {
		fmt.Fprintln(w, "  ❌ Error: path is not a directory")
		allOK = false
	} else {
		sessions, err := logging.Sessions(a.cfg.LogDir)
		if err != nil {
			fmt.Fprintf(w, "  ❌ Error: %v\n", err)
			allOK = false
		} else {
			fmt.Fprintf(w, "  ✅ OK (%d sessions)\n", len(sessions))
		}
	}
	fmt.Fprintln(w)

	// Overall status
	if allOK {
		fmt.Fprintln(w, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(w, "⚠️  Some checks failed. arenta may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}

func (a *app) checkTaskFile(verbose bool) bool {
	w := a.out
	info, err := os.Stat(a.cfg.DataFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(w, "  ⚠️  Not found (will be created on the first change)")
			return true
		}
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		return false
	}
	if info.IsDir() {
		fmt.Fprintln(w, "  ❌ Error: path is a directory")
		return false
	}

	data, err := os.ReadFile(a.cfg.DataFile)
	if err != nil {
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		return false
	}
	if errs := store.ValidateSchema(data); len(errs) > 0 {
		fmt.Fprintln(w, "  ❌ Schema validation failed:")
		for _, e := range errs {
			fmt.Fprintf(w, "     - %v\n", e)
		}
		return false
	}
	st, err := store.Decode(data, store.LoadOptions{SkipSchema: true})
	if err != nil {
		fmt.Fprintf(w, "  ❌ Load error: %v\n", err)
		return false
	}
	fmt.Fprintln(w, "  ✅ Valid")

	now := a.now()
	st.Refresh(now)
	counts := make(map[task.Status]int)
	deleted := 0
	for _, t := range st.Tasks() {
		if t.Deleted {
			deleted++
			continue
		}
		counts[t.Status()]++
	}
	fmt.Fprintf(w, "  Tasks: %d", st.Len())
	for _, s := range task.Statuses() {
		fmt.Fprintf(w, "  %s: %d", s, counts[s])
	}
	fmt.Fprintf(w, "  deleted: %d\n", deleted)

	if verbose {
		for _, e := range st.Entries() {
			if e.Task.Deleted {
				fmt.Fprintf(w, "    - [%d] (deleted)\n", e.Index)
				continue
			}
			fmt.Fprintf(w, "    - [%d] %s: %s\n", e.Index, e.Task.Status(), e.Task.Description)
		}
	}
	return true
}
