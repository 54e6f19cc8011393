// Package shell runs the interactive command loop: it reads commands,
// applies them to the task store, renders listings, and persists every
// change.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/arenta-go/internal/command"
	"github.com/nibzard/arenta-go/internal/hooks"
	"github.com/nibzard/arenta-go/internal/logging"
	"github.com/nibzard/arenta-go/internal/store"
	"github.com/nibzard/arenta-go/internal/task"
	"github.com/nibzard/arenta-go/internal/timeline"
	"github.com/nibzard/arenta-go/internal/ui"
)

// PromptLabel is shown before each command.
const PromptLabel = "arenta>"

// Options configures a Shell. Zero values fall back to stdout, stderr,
// time.Now, time.Local, and an empty store.
type Options struct {
	Prompter    ui.Prompter
	Out         io.Writer
	Err         io.Writer
	Painter     *ui.Painter
	Logger      *log.Logger
	Journal     *logging.Journal
	Store       *store.Store
	DataFile    string // empty disables saving
	HookCommand string
	Now         func() time.Time
	Location    *time.Location // for dates typed at prompts
}

// Shell applies commands to one task store.
type Shell struct {
	prompter ui.Prompter
	out      io.Writer
	errOut   io.Writer
	painter  *ui.Painter
	logger   *log.Logger
	journal  *logging.Journal
	store    *store.Store
	dataFile string
	hook     string
	now      func() time.Time
	loc      *time.Location
}

// New creates a shell from opts.
func New(opts Options) *Shell {
	s := &Shell{
		prompter: opts.Prompter,
		out:      opts.Out,
		errOut:   opts.Err,
		painter:  opts.Painter,
		logger:   opts.Logger,
		journal:  opts.Journal,
		store:    opts.Store,
		dataFile: opts.DataFile,
		hook:     opts.HookCommand,
		now:      opts.Now,
		loc:      opts.Location,
	}
	if s.out == nil {
		s.out = os.Stdout
	}
	if s.errOut == nil {
		s.errOut = os.Stderr
	}
	if s.painter == nil {
		s.painter = ui.NewPainter(s.out, false)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	if s.store == nil {
		s.store = store.New()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	return s
}

// Store returns the store the shell mutates.
func (s *Shell) Store() *store.Store {
	return s.store
}

// Run prompts for commands until quit, end of input, or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	if s.prompter == nil {
		return fmt.Errorf("shell has no prompter")
	}
	s.journal.Note("session start", "tasks", s.store.Len())
	defer s.journal.Note("session end", "tasks", s.store.Len())

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := s.prompter.Prompt(ctx, PromptLabel, "")
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, ui.ErrInterrupted) {
				return nil
			}
			return fmt.Errorf("read command: %w", err)
		}

		cmd, err := command.Parse(line)
		if err != nil {
			s.logger.Debug("rejected command", "line", line, "err", err)
			fmt.Fprint(s.out, command.Usage)
			continue
		}

		quit, err := s.Execute(ctx, cmd)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// Execute applies one command. It reports whether the session should end.
// Errors about the command itself are printed and do not end the session;
// the returned error is for failures the session cannot continue past.
func (s *Shell) Execute(ctx context.Context, cmd command.Command) (bool, error) {
	s.logger.Debug("command", "kind", cmd.Kind, "index", cmd.Index)

	var err error
	switch cmd.Kind {
	case command.Empty:
	case command.Quit:
		return true, nil
	case command.Help:
		fmt.Fprint(s.out, command.Usage)
	case command.New:
		err = s.newTask(ctx)
	case command.Start:
		err = s.start(ctx, cmd.Index)
	case command.Complete:
		err = s.complete(ctx, cmd.Index)
	case command.Edit:
		err = s.edit(ctx, cmd.Index)
	case command.Delete:
		err = s.delete(ctx, cmd.Index)
	case command.Purge:
		s.purge(ctx)
	case command.Sort:
		s.sort(ctx)
	case command.List:
		s.list(cmd)
	default:
		fmt.Fprint(s.out, command.Usage)
	}
	return s.settle(err)
}

// settle sorts a command error into printed, cancelled, or session ending.
func (s *Shell) settle(err error) (bool, error) {
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, io.EOF):
		return true, nil
	case errors.Is(err, ui.ErrInterrupted):
		fmt.Fprintln(s.out, "cancelled")
		return false, nil
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return true, err
	case errors.Is(err, store.ErrIndexOutOfRange):
		fmt.Fprintln(s.errOut, "index out of range")
		return false, nil
	default:
		fmt.Fprintf(s.errOut, "error: %v\n", err)
		return false, nil
	}
}

func (s *Shell) start(ctx context.Context, i int) error {
	t, err := s.store.Start(i, s.now())
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "task %d started\n", i)
	s.commit(ctx, "start", i, t)
	return nil
}

func (s *Shell) complete(ctx context.Context, i int) error {
	t, err := s.store.Complete(i, s.now())
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "task %d complete\n", i)
	s.commit(ctx, "complete", i, t)
	return nil
}

func (s *Shell) delete(ctx context.Context, i int) error {
	t, err := s.store.Delete(i)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "task %d removed\n", i)
	s.commit(ctx, "delete", i, t)
	return nil
}

func (s *Shell) purge(ctx context.Context) {
	n := s.store.Purge()
	fmt.Fprintf(s.out, "%d deleted tasks purged\n", n)
	if n > 0 {
		s.commit(ctx, "purge", -1, nil)
	}
}

func (s *Shell) sort(ctx context.Context) {
	s.store.Sort(s.now())
	fmt.Fprintln(s.out, "tasks sorted")
	s.commit(ctx, "sort", -1, nil)
}

func (s *Shell) list(cmd command.Command) {
	now := s.now()
	var f task.Filter
	switch cmd.Mode {
	case command.ListRecent:
		f = task.RecentFilter(now, cmd.Days)
	case command.ListTimeline:
		f = task.TimelineFilter(now)
	default:
		f = task.TodayFilter(now)
	}
	f.Verbose = cmd.Verbose

	if cmd.Mode == command.ListTimeline {
		entries := s.store.Visible(now, f)
		if err := ui.WriteTimeline(s.out, s.painter, entries, now, now); err != nil {
			if errors.Is(err, timeline.ErrCapacity) {
				fmt.Fprintf(s.errOut, "error: %v\n", err)
				return
			}
			s.logger.Error("render timeline", "err", err)
			return
		}
		if !f.Verbose {
			return
		}
	}
	if err := ui.WriteList(s.out, s.painter, s.store.Ranked(now, f), now, f.Verbose); err != nil {
		s.logger.Error("render list", "err", err)
	}
}

// commit persists the store after a mutation, journals it, and runs the
// hook. t is nil for changes that touch the whole collection. Failures
// are logged; the in-memory change stands.
func (s *Shell) commit(ctx context.Context, event string, index int, t *task.Task) {
	if s.dataFile != "" {
		if err := s.store.Save(s.dataFile); err != nil {
			s.logger.Error("save task file", "path", s.dataFile, "err", err)
		}
	}

	entry := logging.Entry{Event: event, Index: index}
	if t != nil {
		entry.Status = string(t.Status())
		entry.Description = t.Description
	}
	s.journal.Record(entry)

	res, err := hooks.Invoke(ctx, hooks.Options{
		Command:     s.hook,
		Event:       event,
		Index:       index,
		Status:      entry.Status,
		Description: entry.Description,
		DataFile:    s.dataFile,
		Stdout:      s.out,
		Stderr:      s.errOut,
	})
	if err != nil {
		s.logger.Warn("hook failed", "event", event, "exit", res.ExitCode, "err", err)
	}
}
