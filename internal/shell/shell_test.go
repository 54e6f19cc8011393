package shell

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/nibzard/arenta-go/internal/command"
	"github.com/nibzard/arenta-go/internal/logging"
	"github.com/nibzard/arenta-go/internal/store"
	"github.com/nibzard/arenta-go/internal/task"
	"github.com/nibzard/arenta-go/internal/ui"
)

var zone = time.FixedZone("CEST", 2*60*60)

func at(day, hour, min int) time.Time {
	return time.Date(2026, 10, day, hour, min, 0, 0, zone)
}

// esc in a script stands for the user abandoning the prompt.
const esc = "<esc>"

type script struct {
	answers []string
	labels  []string
}

func (s *script) Prompt(_ context.Context, label, _ string) (string, error) {
	s.labels = append(s.labels, label)
	if len(s.answers) == 0 {
		return "", io.EOF
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	if answer == esc {
		return "", ui.ErrInterrupted
	}
	return answer, nil
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

type harness struct {
	shell  *Shell
	script *script
	clock  *clock
	out    *bytes.Buffer
	errOut *bytes.Buffer
	path   string
}

func newHarness(t *testing.T, st *store.Store, answers ...string) *harness {
	t.Helper()
	h := &harness{
		script: &script{answers: answers},
		clock:  &clock{t: at(16, 10, 0)},
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
		path:   filepath.Join(t.TempDir(), "tasks.json"),
	}
	h.shell = New(Options{
		Prompter: h.script,
		Out:      h.out,
		Err:      h.errOut,
		Store:    st,
		DataFile: h.path,
		Now:      h.clock.now,
		Location: zone,
	})
	return h
}

func (h *harness) exec(t *testing.T, cmd command.Command) {
	t.Helper()
	quit, err := h.shell.Execute(context.Background(), cmd)
	if err != nil {
		t.Fatalf("Execute(%v) error = %v", cmd.Kind, err)
	}
	if quit {
		t.Fatalf("Execute(%v) ended the session", cmd.Kind)
	}
}

func (h *harness) saved(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Load(h.path, store.LoadOptions{})
	if err != nil {
		t.Fatalf("load saved file: %v", err)
	}
	return st
}

func mustPlanned(t *testing.T, desc string, start, end, now time.Time) *task.Task {
	t.Helper()
	tk, err := task.NewPlanned(desc, start, end, now)
	if err != nil {
		t.Fatal(err)
	}
	return tk
}

func TestRun(t *testing.T) {
	t.Run("ends on end of input", func(t *testing.T) {
		h := newHarness(t, nil)
		if err := h.shell.Run(context.Background()); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if len(h.script.labels) != 1 || h.script.labels[0] != PromptLabel {
			t.Errorf("labels = %q", h.script.labels)
		}
	})

	t.Run("session", func(t *testing.T) {
		h := newHarness(t, nil,
			"n", "write report", "",
			"s 9",
			"d 1",
			"q",
			"never read",
		)
		if err := h.shell.Run(context.Background()); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if !strings.Contains(h.out.String(), "task 0 created") {
			t.Errorf("out = %q", h.out.String())
		}
		if !strings.Contains(h.out.String(), command.Usage) {
			t.Error("invalid command should print usage")
		}
		if h.errOut.String() != "index out of range\n" {
			t.Errorf("errOut = %q", h.errOut.String())
		}
		if len(h.script.answers) != 1 {
			t.Error("q should end the session")
		}
		if h.saved(t).Len() != 1 {
			t.Error("new task was not saved")
		}
	})

	t.Run("interrupt at prompt ends session", func(t *testing.T) {
		h := newHarness(t, nil, esc, "n")
		if err := h.shell.Run(context.Background()); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if len(h.script.answers) != 1 {
			t.Error("session continued after interrupt")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		h := newHarness(t, nil, "ls")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := h.shell.Run(ctx); !errors.Is(err, context.Canceled) {
			t.Fatalf("Run() error = %v, want context.Canceled", err)
		}
	})
}

func TestNewTask(t *testing.T) {
	tests := []struct {
		name    string
		answers []string
		check   func(t *testing.T, tk *task.Task)
		output  []string
	}{
		{
			name:    "immediate",
			answers: []string{"write report", ""},
			check: func(t *testing.T, tk *task.Task) {
				if tk.ActualStart == nil || !tk.ActualStart.Equal(at(16, 10, 0)) {
					t.Errorf("ActualStart = %v", tk.ActualStart)
				}
				if tk.Status() != task.StatusOngoing {
					t.Errorf("Status = %s", tk.Status())
				}
			},
		},
		{
			name:    "backlog",
			answers: []string{"read paper", "n", "y"},
			check: func(t *testing.T, tk *task.Task) {
				if len(tk.Timestamps()) != 0 || tk.Status() != task.StatusBacklog {
					t.Errorf("task = %+v", tk)
				}
			},
		},
		{
			name:    "planned",
			answers: []string{"standup", "no", "", "2026-10-17", "09:30", "15"},
			check: func(t *testing.T, tk *task.Task) {
				if !tk.PlannedStart.Equal(at(17, 9, 30)) || !tk.PlannedComplete.Equal(at(17, 9, 45)) {
					t.Errorf("planned = %v .. %v", tk.PlannedStart, tk.PlannedComplete)
				}
				if tk.Status() != task.StatusPlanned {
					t.Errorf("Status = %s", tk.Status())
				}
			},
		},
		{
			name:    "planned today with retries",
			answers: []string{"", "  ", "review", "maybe", "n", "n", "16/10", "", "9h", "09:05", "-3", "thirty", "30"},
			check: func(t *testing.T, tk *task.Task) {
				if tk.Description != "review" {
					t.Errorf("Description = %q", tk.Description)
				}
				if !tk.PlannedStart.Equal(at(16, 9, 5)) || !tk.PlannedComplete.Equal(at(16, 9, 35)) {
					t.Errorf("planned = %v .. %v", tk.PlannedStart, tk.PlannedComplete)
				}
				if tk.Status() != task.StatusOverdue {
					t.Errorf("Status = %s", tk.Status())
				}
			},
			output: []string{
				"please type a description.",
				"please answer y or n.",
				"please type a valid date",
				"please type a valid time",
				"please type a non-negative number",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, nil, tt.answers...)
			h.exec(t, command.Command{Kind: command.New})

			if len(h.script.answers) != 0 {
				t.Fatalf("unused answers %q", h.script.answers)
			}
			tk, err := h.shell.Store().Get(0)
			if err != nil {
				t.Fatal(err)
			}
			tt.check(t, tk)
			for _, want := range append(tt.output, "task 0 created") {
				if !strings.Contains(h.out.String(), want) {
					t.Errorf("output missing %q:\n%s", want, h.out.String())
				}
			}
			if h.saved(t).Len() != 1 {
				t.Error("task was not saved")
			}
		})
	}
}

func TestNewTaskCancelled(t *testing.T) {
	h := newHarness(t, nil, "write report", "n", esc)
	h.exec(t, command.Command{Kind: command.New})
	if h.shell.Store().Len() != 0 {
		t.Error("cancelled task was added")
	}
	if !strings.Contains(h.out.String(), "cancelled") {
		t.Errorf("out = %q", h.out.String())
	}
	if _, err := os.Stat(h.path); !errors.Is(err, os.ErrNotExist) {
		t.Error("nothing should be saved")
	}
}

func TestNewTaskEndOfInputEndsSession(t *testing.T) {
	h := newHarness(t, nil, "write report")
	quit, err := h.shell.Execute(context.Background(), command.Command{Kind: command.New})
	if err != nil || !quit {
		t.Fatalf("Execute() = %v, %v; want quit", quit, err)
	}
}

func TestIndexOutOfRange(t *testing.T) {
	for _, kind := range []command.Kind{command.Start, command.Complete, command.Edit, command.Delete} {
		t.Run(kind.String(), func(t *testing.T) {
			h := newHarness(t, store.New(task.NewBacklog("only")))
			h.exec(t, command.Command{Kind: kind, Index: 1})
			if h.errOut.String() != "index out of range\n" {
				t.Errorf("errOut = %q", h.errOut.String())
			}
			if len(h.script.labels) != 0 {
				t.Error("no prompt expected for a bad index")
			}
			if _, err := os.Stat(h.path); !errors.Is(err, os.ErrNotExist) {
				t.Error("nothing should be saved")
			}
		})
	}
}

func TestStartCompleteDelete(t *testing.T) {
	now := at(16, 10, 0)
	h := newHarness(t, store.New(mustPlanned(t, "standup", at(16, 11, 0), at(16, 11, 30), now)))

	h.exec(t, command.Command{Kind: command.Start, Index: 0})
	h.clock.t = now.Add(30 * time.Minute)
	h.exec(t, command.Command{Kind: command.Complete, Index: 0})

	saved, err := h.saved(t).Get(0)
	if err != nil {
		t.Fatal(err)
	}
	if !saved.ActualStart.Equal(now) || !saved.ActualComplete.Equal(now.Add(30*time.Minute)) {
		t.Errorf("saved actual = %v .. %v", saved.ActualStart, saved.ActualComplete)
	}

	h.exec(t, command.Command{Kind: command.Delete, Index: 0})
	if !h.saved(t).Tasks()[0].Deleted {
		t.Error("deletion was not saved")
	}
	h.exec(t, command.Command{Kind: command.Start, Index: 0})

	want := "task 0 started\ntask 0 complete\ntask 0 removed\n"
	if h.out.String() != want {
		t.Errorf("out = %q, want %q", h.out.String(), want)
	}
	if !strings.Contains(h.errOut.String(), "task is deleted") {
		t.Errorf("errOut = %q", h.errOut.String())
	}
}

func TestCompleteBeforeStartIsRejected(t *testing.T) {
	tk := &task.Task{Description: "future", ActualStart: ptr(at(16, 12, 0))}
	h := newHarness(t, store.New(tk))
	h.exec(t, command.Command{Kind: command.Complete, Index: 0})

	if tk.ActualComplete != nil {
		t.Error("task was completed before its start")
	}
	if !strings.Contains(h.errOut.String(), task.ErrActualOrder.Error()) {
		t.Errorf("errOut = %q", h.errOut.String())
	}
}

func TestStartAfterCompleteIsRejected(t *testing.T) {
	h := newHarness(t, store.New(task.NewImmediate("x", at(16, 9, 0))))
	h.exec(t, command.Command{Kind: command.Complete, Index: 0})
	h.clock.t = at(16, 11, 0)
	h.exec(t, command.Command{Kind: command.Start, Index: 0})

	if !strings.Contains(h.errOut.String(), task.ErrActualOrder.Error()) {
		t.Errorf("errOut = %q", h.errOut.String())
	}
	if h.out.String() != "task 0 complete\n" {
		t.Errorf("out = %q", h.out.String())
	}
	saved, err := h.saved(t).Get(0)
	if err != nil {
		t.Fatal(err)
	}
	if !saved.ActualStart.Equal(at(16, 9, 0)) {
		t.Errorf("saved actual start = %v", saved.ActualStart)
	}
}

func ptr(t time.Time) *time.Time {
	return &t
}

func TestEdit(t *testing.T) {
	now := at(16, 10, 0)
	fresh := func() *store.Store {
		return store.New(mustPlanned(t, "standup", at(16, 11, 0), at(16, 11, 30), now))
	}

	t.Run("updates description and one timestamp", func(t *testing.T) {
		h := newHarness(t, fresh(),
			"retro",
			"n",                   // planned start
			"y", "n", "", "12:00", // planned complete, date kept
			"y", "y",              // actual start reset
			"",                    // actual complete
		)
		h.exec(t, command.Command{Kind: command.Edit, Index: 0})

		tk, _ := h.shell.Store().Get(0)
		if tk.Description != "retro" {
			t.Errorf("Description = %q", tk.Description)
		}
		if !tk.PlannedComplete.Equal(at(16, 12, 0)) {
			t.Errorf("PlannedComplete = %v", tk.PlannedComplete)
		}
		if tk.ActualStart != nil {
			t.Errorf("ActualStart = %v", tk.ActualStart)
		}
		if !strings.Contains(h.out.String(), "task 0 updated") {
			t.Errorf("out = %q", h.out.String())
		}
		if saved, _ := h.saved(t).Get(0); saved.Description != "retro" {
			t.Error("edit was not saved")
		}
		wantLabels := []string{
			"description:",
			"update planned start?",
			"update planned complete?", "reset planned complete?",
			"planned complete date:", "planned complete time:",
			"update actual start?", "reset actual start?",
			"update actual complete?",
		}
		if strings.Join(h.script.labels, "|") != strings.Join(wantLabels, "|") {
			t.Errorf("labels = %q", h.script.labels)
		}
	})

	t.Run("sets a missing timestamp and recomputes status", func(t *testing.T) {
		h := newHarness(t, fresh(), "", "n", "n", "y", "n", "2026-10-16", "09:50", "n")
		h.exec(t, command.Command{Kind: command.Edit, Index: 0})
		tk, _ := h.shell.Store().Get(0)
		if tk.Status() != task.StatusOngoing {
			t.Errorf("Status = %s, want ongoing", tk.Status())
		}
		if tk.Description != "standup" {
			t.Errorf("empty answer should keep description, got %q", tk.Description)
		}
	})

	invalid := []struct {
		name    string
		answers []string
		err     error
	}{
		{"complete before start", []string{"", "n", "y", "n", "", "08:00", "n", "n"}, task.ErrPlannedOrder},
		{"unpaired schedule", []string{"", "y", "y", "n", "n", "n"}, task.ErrPlannedPair},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, fresh(), tt.answers...)
			before, _ := h.shell.Store().Get(0)
			h.exec(t, command.Command{Kind: command.Edit, Index: 0})

			after, _ := h.shell.Store().Get(0)
			if after != before || !after.PlannedComplete.Equal(at(16, 11, 30)) || after.PlannedStart == nil {
				t.Error("invalid edit was committed")
			}
			if !strings.Contains(h.errOut.String(), tt.err.Error()) {
				t.Errorf("errOut = %q, want %q", h.errOut.String(), tt.err)
			}
			if _, err := os.Stat(h.path); !errors.Is(err, os.ErrNotExist) {
				t.Error("nothing should be saved")
			}
		})
	}

	t.Run("cancel keeps task", func(t *testing.T) {
		h := newHarness(t, fresh(), "renamed", "y", esc)
		h.exec(t, command.Command{Kind: command.Edit, Index: 0})
		tk, _ := h.shell.Store().Get(0)
		if tk.Description != "standup" {
			t.Errorf("Description = %q after cancel", tk.Description)
		}
		if !strings.Contains(h.out.String(), "cancelled") {
			t.Errorf("out = %q", h.out.String())
		}
	})
}

// listFixture holds a planned, an overdue, a backlog, a task completed
// yesterday, and a deleted task, as seen at 10:00.
func listFixture(t *testing.T) *store.Store {
	now := at(16, 10, 0)
	deleted := mustPlanned(t, "dropped", at(16, 14, 0), at(16, 15, 0), now)
	deleted.Deleted = true
	return store.New(
		mustPlanned(t, "review", at(16, 11, 0), at(16, 11, 30), now),
		mustPlanned(t, "standup", at(16, 9, 0), at(16, 9, 30), now),
		task.NewBacklog("read"),
		&task.Task{Description: "gym", ActualStart: ptr(at(15, 9, 0)), ActualComplete: ptr(at(15, 10, 0))},
		deleted,
	)
}

func TestList(t *testing.T) {
	tests := []struct {
		name string
		cmd  command.Command
		want string
	}{
		{
			name: "today",
			cmd:  command.Command{Kind: command.List, Mode: command.ListToday},
			want: "  1  overdue   standup  (60 minutes overdue)\n" +
				"  0  planned   review  (planned to start in 60 minutes)\n" +
				"  4  (deleted)\n" +
				"  2  backlog   read  (in backlog)\n",
		},
		{
			name: "recent days",
			cmd:  command.Command{Kind: command.List, Mode: command.ListRecent, Days: 1},
			want: "  1  overdue   standup  (60 minutes overdue)\n" +
				"  0  planned   review  (planned to start in 60 minutes)\n" +
				"  4  (deleted)\n" +
				"  3  complete  gym  (complete 1440 minutes ago)\n" +
				"  2  backlog   read  (in backlog)\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, listFixture(t))
			h.exec(t, tt.cmd)
			if h.out.String() != tt.want {
				t.Errorf("out =\n%s\nwant\n%s", h.out.String(), tt.want)
			}
		})
	}

	t.Run("timeline", func(t *testing.T) {
		h := newHarness(t, listFixture(t))
		h.exec(t, command.Command{Kind: command.List, Mode: command.ListTimeline})
		out := h.out.String()
		for _, want := range []string{
			"Fri 2026-10-16\n",
			"\n     b----  |    a----\n",
			"a  [0] review\n",
			"b  [1] standup\n",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("timeline missing %q:\n%s", want, out)
			}
		}
		if strings.Contains(out, "dropped") || strings.Contains(out, "read") {
			t.Errorf("timeline shows deleted or backlog tasks:\n%s", out)
		}
	})

	t.Run("timeline verbose adds list", func(t *testing.T) {
		h := newHarness(t, listFixture(t))
		h.exec(t, command.Command{Kind: command.List, Mode: command.ListTimeline, Verbose: true})
		if !strings.Contains(h.out.String(), "planned start:    2026-10-16 09:00") {
			t.Errorf("out:\n%s", h.out.String())
		}
	})

	t.Run("timeline capacity", func(t *testing.T) {
		now := at(16, 10, 0)
		st := store.New()
		for range 27 {
			st.Add(mustPlanned(t, "x", at(16, 11, 0), at(16, 11, 10), now))
		}
		h := newHarness(t, st)
		h.exec(t, command.Command{Kind: command.List, Mode: command.ListTimeline})
		if !strings.Contains(h.errOut.String(), "too many tasks") {
			t.Errorf("errOut = %q", h.errOut.String())
		}
	})
}

func TestSortAndPurge(t *testing.T) {
	h := newHarness(t, listFixture(t))

	h.exec(t, command.Command{Kind: command.Sort})
	var order []string
	for _, tk := range h.saved(t).Tasks() {
		order = append(order, tk.Description)
	}
	if got := strings.Join(order, ","); got != "standup,review,dropped,gym,read" {
		t.Errorf("sorted order = %s", got)
	}

	h.exec(t, command.Command{Kind: command.Purge})
	if h.saved(t).Len() != 4 {
		t.Errorf("purged store has %d tasks, want 4", h.saved(t).Len())
	}
	h.exec(t, command.Command{Kind: command.Purge})

	want := "tasks sorted\n1 deleted tasks purged\n0 deleted tasks purged\n"
	if h.out.String() != want {
		t.Errorf("out = %q, want %q", h.out.String(), want)
	}
}

func TestHelpAndQuit(t *testing.T) {
	h := newHarness(t, nil)
	h.exec(t, command.Command{Kind: command.Help})
	if h.out.String() != command.Usage {
		t.Errorf("help = %q", h.out.String())
	}
	quit, err := h.shell.Execute(context.Background(), command.Command{Kind: command.Quit})
	if err != nil || !quit {
		t.Errorf("quit = %v, %v", quit, err)
	}
}

func TestCommitJournalsAndRunsHook(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("hook scripts are POSIX shell")
	}
	dir := t.TempDir()
	hook := filepath.Join(dir, "hook.sh")
	if err := os.WriteFile(hook, []byte("#!/bin/sh\necho \"hook $1 $2 $3 $4\"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	journal, err := logging.OpenJournal(filepath.Join(dir, "logs"), at(16, 10, 0))
	if err != nil {
		t.Fatal(err)
	}

	h := newHarness(t, store.New(task.NewBacklog("read")))
	h.shell.journal = journal
	h.shell.hook = hook

	h.exec(t, command.Command{Kind: command.Start, Index: 0})
	if err := journal.Close(); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(h.out.String(), "hook start 0 ongoing read\n") {
		t.Errorf("out = %q", h.out.String())
	}
	data, err := os.ReadFile(journal.Path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &rec); err != nil {
		t.Fatalf("journal line is not JSON: %v", err)
	}
	if rec["event"] != "start" || rec["description"] != "read" || rec["status"] != "ongoing" {
		t.Errorf("journal entry = %v", rec)
	}
}

func TestHookFailureIsNotFatal(t *testing.T) {
	h := newHarness(t, store.New(task.NewBacklog("read")))
	h.shell.hook = filepath.Join(t.TempDir(), "missing-hook")
	h.exec(t, command.Command{Kind: command.Delete, Index: 0})
	if !strings.Contains(h.out.String(), "task 0 removed") {
		t.Errorf("out = %q", h.out.String())
	}
	if !h.saved(t).Tasks()[0].Deleted {
		t.Error("change was not saved")
	}
}
