package shell

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/nibzard/arenta-go/internal/task"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

func (s *Shell) newTask(ctx context.Context) error {
	description, err := s.askDescription(ctx)
	if err != nil {
		return err
	}

	var t *task.Task
	immediate, err := s.confirm(ctx, "start immediately?", true)
	if err != nil {
		return err
	}
	if immediate {
		t = task.NewImmediate(description, s.now())
	} else {
		backlog, err := s.confirm(ctx, "add to backlog?", false)
		if err != nil {
			return err
		}
		if backlog {
			t = task.NewBacklog(description)
		} else {
			start, err := s.askDateTime(ctx, "planned start", s.now())
			if err != nil {
				return err
			}
			minutes, err := s.askMinutes(ctx)
			if err != nil {
				return err
			}
			complete := start.Add(time.Duration(minutes) * time.Minute)
			if t, err = task.NewPlanned(description, start, complete, s.now()); err != nil {
				return err
			}
		}
	}

	i := s.store.Add(t)
	fmt.Fprintf(s.out, "task %d created\n", i)
	s.commit(ctx, "new", i, t)
	return nil
}

func (s *Shell) edit(ctx context.Context, i int) error {
	t, err := s.store.Edit(i, s.now(), func(t *task.Task) error {
		description, err := s.ask(ctx, "description:", t.Description)
		if err != nil {
			return err
		}
		if description = strings.TrimSpace(description); description != "" {
			t.Description = description
		}

		fields := []struct {
			hint string
			ts   **time.Time
		}{
			{"planned start", &t.PlannedStart},
			{"planned complete", &t.PlannedComplete},
			{"actual start", &t.ActualStart},
			{"actual complete", &t.ActualComplete},
		}
		for _, f := range fields {
			if err := s.editTimestamp(ctx, f.hint, f.ts); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "task %d updated\n", i)
	s.commit(ctx, "edit", i, t)
	return nil
}

// editTimestamp asks whether to change *ts, then whether to clear it, and
// otherwise reads a new value.
func (s *Shell) editTimestamp(ctx context.Context, hint string, ts **time.Time) error {
	update, err := s.confirm(ctx, fmt.Sprintf("update %s?", hint), false)
	if err != nil || !update {
		return err
	}
	reset, err := s.confirm(ctx, fmt.Sprintf("reset %s?", hint), false)
	if err != nil {
		return err
	}
	if reset {
		*ts = nil
		return nil
	}
	def := s.now()
	if *ts != nil {
		def = (*ts).In(s.loc)
	}
	v, err := s.askDateTime(ctx, hint, def)
	if err != nil {
		return err
	}
	*ts = &v
	return nil
}

func (s *Shell) ask(ctx context.Context, label, placeholder string) (string, error) {
	return s.prompter.Prompt(ctx, label, placeholder)
}

func (s *Shell) askDescription(ctx context.Context) (string, error) {
	for {
		answer, err := s.ask(ctx, "description:", "")
		if err != nil {
			return "", err
		}
		if answer = strings.TrimSpace(answer); answer != "" {
			return answer, nil
		}
		fmt.Fprintln(s.out, "please type a description.")
	}
}

// confirm asks a yes/no question. An empty answer takes def.
func (s *Shell) confirm(ctx context.Context, label string, def bool) (bool, error) {
	placeholder := "No"
	if def {
		placeholder = "Yes"
	}
	for {
		answer, err := s.ask(ctx, label, placeholder)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(s.out, "please answer y or n.")
	}
}

// askDateTime reads a date (empty keeps the date of def) and a time of
// day, and combines them in the shell's location.
func (s *Shell) askDateTime(ctx context.Context, hint string, def time.Time) (time.Time, error) {
	def = def.In(s.loc)
	var date time.Time
	for {
		answer, err := s.ask(ctx, hint+" date:", def.Format(dateLayout))
		if err != nil {
			return time.Time{}, err
		}
		answer = strings.TrimSpace(answer)
		if answer == "" {
			date = def
			break
		}
		if date, err = time.ParseInLocation(dateLayout, answer, s.loc); err == nil {
			break
		}
		fmt.Fprintln(s.out, "please type a valid date (YYYY-MM-DD).")
	}

	for {
		answer, err := s.ask(ctx, hint+" time:", "HH:MM")
		if err != nil {
			return time.Time{}, err
		}
		clock, err := time.Parse(clockLayout, strings.TrimSpace(answer))
		if err == nil {
			y, m, d := date.Date()
			return time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, s.loc), nil
		}
		fmt.Fprintln(s.out, "please type a valid time (HH:MM).")
	}
}

func (s *Shell) askMinutes(ctx context.Context) (int, error) {
	for {
		answer, err := s.ask(ctx, "planned time to take (in minutes):", "")
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(answer))
		if err == nil && n >= 0 {
			return n, nil
		}
		fmt.Fprintln(s.out, "please type a non-negative number of minutes.")
	}
}
