// Package command parses the lines typed at the interactive prompt.
package command

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Kind identifies a shell command.
type Kind int

const (
	Empty Kind = iota
	Quit
	Help
	New
	Start
	Complete
	Edit
	Delete
	Purge
	Sort
	List
)

var kindNames = map[Kind]string{
	Empty:    "empty",
	Quit:     "quit",
	Help:     "help",
	New:      "new",
	Start:    "start",
	Complete: "complete",
	Edit:     "edit",
	Delete:   "delete",
	Purge:    "purge",
	Sort:     "sort",
	List:     "ls",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ListMode selects what ls shows.
type ListMode int

const (
	// ListToday lists today's tasks and the backlog.
	ListToday ListMode = iota
	// ListRecent lists the tasks of the last Days days and the backlog.
	ListRecent
	// ListTimeline draws today's tasks as a timeline.
	ListTimeline
)

// Command is one parsed prompt line.
type Command struct {
	Kind    Kind
	Index   int      // Start, Complete, Edit, Delete
	Mode    ListMode // List
	Days    int      // List with ListRecent
	Verbose bool     // List
}

// ErrInvalid reports a line that is not a command.
var ErrInvalid = errors.New("invalid command")

var indexed = map[string]Kind{
	"s":        Start,
	"start":    Start,
	"c":        Complete,
	"complete": Complete,
	"e":        Edit,
	"edit":     Edit,
	"delete":   Delete,
}

var bare = map[string]Kind{
	"q":     Quit,
	"quit":  Quit,
	"h":     Help,
	"help":  Help,
	"n":     New,
	"new":   New,
	"sort":  Sort,
	"purge": Purge,
}

// Parse parses a prompt line. Blank lines parse as Empty.
func Parse(line string) (Command, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return Command{Kind: Empty}, nil
	}

	name, rest := args[0], args[1:]
	if kind, ok := bare[name]; ok {
		if len(rest) > 0 {
			return Command{}, fmt.Errorf("%w: %s takes no arguments", ErrInvalid, name)
		}
		return Command{Kind: kind}, nil
	}
	if kind, ok := indexed[name]; ok {
		if len(rest) != 1 {
			return Command{}, fmt.Errorf("%w: %s needs exactly one index", ErrInvalid, name)
		}
		index, err := parseCount(rest[0])
		if err != nil {
			return Command{}, fmt.Errorf("%w: %s: bad index %q", ErrInvalid, name, rest[0])
		}
		return Command{Kind: kind, Index: index}, nil
	}
	if name == "ls" {
		return parseList(rest)
	}
	return Command{}, fmt.Errorf("%w: %q", ErrInvalid, name)
}

func parseList(args []string) (Command, error) {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	timeline := fs.Bool("t", false, "timeline")
	days := fs.String("d", "", "days")
	verbose := fs.Bool("v", false, "verbose")
	if err := fs.Parse(args); err != nil {
		return Command{}, fmt.Errorf("%w: ls: %v", ErrInvalid, err)
	}
	if fs.NArg() > 0 {
		return Command{}, fmt.Errorf("%w: ls: unexpected argument %q", ErrInvalid, fs.Arg(0))
	}

	cmd := Command{Kind: List, Mode: ListToday, Verbose: *verbose}
	if *days != "" {
		n, err := parseCount(*days)
		if err != nil {
			return Command{}, fmt.Errorf("%w: ls: bad day count %q", ErrInvalid, *days)
		}
		cmd.Mode, cmd.Days = ListRecent, n
	}
	if *timeline {
		if cmd.Mode == ListRecent {
			return Command{}, fmt.Errorf("%w: ls: -t and -d cannot be combined", ErrInvalid)
		}
		cmd.Mode = ListTimeline
	}
	return cmd, nil
}

// parseCount accepts unsigned decimal integers only.
func parseCount(s string) (int, error) {
	if s == "" || strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) >= 0 {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(s)
}

// Usage is the command summary printed for help and after invalid input.
const Usage = `commands:
  q / quit              quit arenta
  h / help              show this message
  n / new               create a new task
  s / start <index>     start task
  c / complete <index>  complete task
  e / edit <index>      edit task
  delete <index>        delete task
  purge                 drop deleted tasks and renumber
  ls [-v]               list today's tasks and the backlog
  ls -d <n> [-v]        list tasks of recent <n> days
  ls -t [-v]            list today's tasks with timeline
  sort                  sort all the tasks
`
