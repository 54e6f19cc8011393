// Package cmd implements the CLI command structure for arenta.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/arenta-go/internal/command"
	"github.com/nibzard/arenta-go/internal/config"
	"github.com/nibzard/arenta-go/internal/lock"
	"github.com/nibzard/arenta-go/internal/logging"
	"github.com/nibzard/arenta-go/internal/shell"
	"github.com/nibzard/arenta-go/internal/store"
	"github.com/nibzard/arenta-go/internal/task"
	"github.com/nibzard/arenta-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// app carries the loaded configuration and the process streams into the
// subcommands.
type app struct {
	cfg     *config.Config
	sources map[string]config.ConfigSource
	in      io.Reader
	out     io.Writer
	errOut  io.Writer
	now     func() time.Time
	logger  *log.Logger
}

// Run executes the arenta CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdin, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("arenta", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.Usage = func() {
		printUsage(fs, errOut)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, out)
		return nil
	}

	a := &app{
		cfg:     cws.Config,
		sources: cws.Sources,
		in:      in,
		out:     out,
		errOut:  errOut,
		now:     time.Now,
		logger:  logging.NewConsoleFromConfig(errOut, cws.Config.LogLevel, cws.Config.LogFormat),
	}
	if *showVersion {
		return a.versionCommand()
	}

	// Determine the subcommand
	// If no args or first arg is a flag, use "shell" as default
	subcommand := "shell"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		if !strings.HasPrefix(remainingArgs[0], "-") {
			subcommand = remainingArgs[0]
			remainingArgs = remainingArgs[1:]
		}
	}

	// Execute the subcommand
	switch subcommand {
	case "shell":
		return a.shellCommand(ctx, remainingArgs)
	case "ls":
		return a.lsCommand(remainingArgs)
	case "tui":
		return a.tuiCommand(ctx, remainingArgs)
	case "doctor":
		return a.doctorCommand(remainingArgs)
	case "export":
		return a.exportCommand(remainingArgs)
	case "tail":
		return a.tailCommand(ctx, remainingArgs)
	case "config":
		return a.configCommand(cws, remainingArgs)
	case "version":
		return a.versionCommand()
	case "help":
		printUsage(fs, out)
		return nil
	default:
		fmt.Fprintf(errOut, "Unknown command: %s\n", subcommand)
		printUsage(fs, errOut)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// subFlags returns a flag set for a subcommand that reports to the app's
// error stream.
func (a *app) subFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("arenta "+name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

func noArgs(fs *flag.FlagSet) error {
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return nil
}

func (a *app) loadOptions() store.LoadOptions {
	return store.LoadOptions{SkipSchema: !a.cfg.ValidateSchema}
}

func (a *app) loadStore() (*store.Store, error) {
	st, err := store.Load(a.cfg.DataFile, a.loadOptions())
	if err != nil {
		return nil, fmt.Errorf("loading task file: %w", err)
	}
	return st, nil
}

func (a *app) painter() *ui.Painter {
	return ui.NewPainter(a.out, ui.ColorEnabled(a.cfg.Color, a.out))
}

// prompter reads from a terminal when both streams are one and falls back
// to plain line reading otherwise.
func (a *app) prompter() ui.Prompter {
	in, inOK := a.in.(*os.File)
	out, outOK := a.out.(*os.File)
	if inOK && outOK {
		return ui.NewPrompter(in, out)
	}
	return ui.NewPlainPrompter(a.in, a.out)
}

// shellCommand runs the interactive session.
func (a *app) shellCommand(ctx context.Context, args []string) error {
	fs := a.subFlags("shell")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := noArgs(fs); err != nil {
		return err
	}

	l, err := lock.Acquire(a.cfg.LockFile)
	if err != nil {
		if errors.Is(err, lock.ErrLocked) {
			fmt.Fprintln(a.errOut, "lock file has been acquired by another process now")
		}
		return err
	}
	defer func() {
		if err := l.Release(); err != nil {
			a.logger.Warn("release lock", "err", err)
		}
	}()

	st, err := a.loadStore()
	if err != nil {
		return err
	}
	a.logger.Debug("loaded task file", "path", a.cfg.DataFile, "tasks", st.Len())

	journal, err := logging.OpenJournal(a.cfg.LogDir, a.now())
	if err != nil {
		// Non-fatal: the session works without a journal
		a.logger.Warn("journal disabled", "err", err)
	}
	defer journal.Close()

	sh := shell.New(shell.Options{
		Prompter:    a.prompter(),
		Out:         a.out,
		Err:         a.errOut,
		Painter:     a.painter(),
		Logger:      a.logger,
		Journal:     journal,
		Store:       st,
		DataFile:    a.cfg.DataFile,
		HookCommand: a.cfg.HookCommand,
		Now:         a.now,
	})
	return sh.Run(ctx)
}

// lsCommand prints one listing without starting a session.
func (a *app) lsCommand(args []string) error {
	fs := a.subFlags("ls")
	showTimeline := fs.Bool("t", false, "Draw the timeline")
	days := fs.Int("d", -1, "List tasks of the recent N days")
	verbose := fs.Bool("v", false, "Show timestamps")
	dateArg := fs.String("date", "", "Date to show (YYYY-MM-DD, default today)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := noArgs(fs); err != nil {
		return err
	}
	if *showTimeline && *days >= 0 {
		return fmt.Errorf("-t and -d cannot be combined")
	}
	if *days >= 0 && *dateArg != "" {
		return fmt.Errorf("-d and -date cannot be combined")
	}

	now := a.now()
	date := now
	if *dateArg != "" {
		d, err := time.ParseInLocation("2006-01-02", *dateArg, now.Location())
		if err != nil {
			return fmt.Errorf("invalid -date %q: expected YYYY-MM-DD", *dateArg)
		}
		date = d
	}

	st, err := a.loadStore()
	if err != nil {
		return err
	}

	var f task.Filter
	switch {
	case *showTimeline:
		f = task.TimelineFilter(date)
	case *days >= 0:
		f = task.RecentFilter(now, *days)
	case task.SameDate(date, now):
		f = task.TodayFilter(now)
	default:
		f = task.TimelineFilter(date)
	}
	f.Verbose = *verbose

	p := a.painter()
	if *showTimeline {
		if err := ui.WriteTimeline(a.out, p, st.Visible(now, f), date, now); err != nil {
			return err
		}
		if !f.Verbose {
			return nil
		}
	}
	return ui.WriteList(a.out, p, st.Ranked(now, f), now, f.Verbose)
}

// tuiCommand launches the live dashboard.
func (a *app) tuiCommand(ctx context.Context, args []string) error {
	fs := a.subFlags("tui")
	interval := fs.Duration("interval", time.Second, "Refresh interval")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := noArgs(fs); err != nil {
		return err
	}
	if *interval <= 0 {
		return fmt.Errorf("-interval must be positive")
	}

	return ui.RunDashboard(ctx, ui.DashboardOptions{
		DataFile: a.cfg.DataFile,
		Load:     a.loadOptions(),
		Color:    a.cfg.Color,
		Interval: *interval,
		Now:      a.now,
	})
}

// exportCommand writes the task collection as JSON or YAML.
func (a *app) exportCommand(args []string) error {
	fs := a.subFlags("export")
	formatArg := fs.String("format", "json", "Output format (json|yaml)")
	output := fs.String("o", "", "Write to file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := noArgs(fs); err != nil {
		return err
	}

	format, err := store.ParseFormat(*formatArg)
	if err != nil {
		return err
	}
	st, err := a.loadStore()
	if err != nil {
		return err
	}

	if *output == "" {
		return st.Export(a.out, format)
	}
	file, err := os.Create(*output)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	if err := st.Export(file, format); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}
	fmt.Fprintf(a.errOut, "Exported %d tasks to %s\n", st.Len(), *output)
	return nil
}

// tailCommand prints the latest session journal.
func (a *app) tailCommand(ctx context.Context, args []string) error {
	fs := a.subFlags("tail")
	follow := fs.Bool("f", false, "Follow the journal (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the journal (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := noArgs(fs); err != nil {
		return err
	}

	path, err := logging.FindLatest(a.cfg.LogDir)
	if err != nil {
		return fmt.Errorf("finding latest journal: %w", err)
	}
	if path == "" {
		fmt.Fprintln(a.out, "No journal files found.")
		return nil
	}

	fmt.Fprintf(a.errOut, "Tailing: %s\n", path)
	if *follow {
		fmt.Fprintln(a.errOut, "(Ctrl+C to stop)")
	}
	return logging.Tail(ctx, a.out, path, *n, *follow)
}

// configCommand prints the effective configuration and where each value
// came from.
func (a *app) configCommand(cws *config.ConfigWithSources, args []string) error {
	fs := a.subFlags("config")
	example := fs.Bool("example", false, "Print an example config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := noArgs(fs); err != nil {
		return err
	}
	if *example {
		fmt.Fprint(a.out, config.ExampleConfig())
		return nil
	}

	if file := cws.ConfigFile(); file != "" {
		fmt.Fprintf(a.out, "# config file: %s\n", file)
	}
	for _, field := range config.Fields() {
		fmt.Fprintf(a.out, "%-16s = %-40q # %s\n", field, cws.Config.Value(field), cws.Sources[field])
	}
	return nil
}

func (a *app) versionCommand() error {
	fmt.Fprintf(a.out, "arenta %s\n", Version)
	return nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "arenta - A daily task management tool with minimal overhead")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  arenta [options] [command] [command options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  shell         Interactive session (default command)")
	fmt.Fprintln(w, "  ls            Print tasks once and exit")
	fmt.Fprintln(w, "  tui           Live dashboard of the task file")
	fmt.Fprintln(w, "  doctor        Check config, task file, lock, and journal directory")
	fmt.Fprintln(w, "  export        Write all tasks as JSON or YAML")
	fmt.Fprintln(w, "  tail          Print the latest session journal")
	fmt.Fprintln(w, "  config        Show the effective configuration")
	fmt.Fprintln(w, "  version       Show version information")
	fmt.Fprintln(w, "  help          Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls Options (use with 'ls' command):")
	fmt.Fprintln(w, "  -t            Draw the timeline")
	fmt.Fprintln(w, "  -d int        List tasks of the recent N days")
	fmt.Fprintln(w, "  -v            Show timestamps")
	fmt.Fprintln(w, "  -date string  Date to show (YYYY-MM-DD, default today)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export Options (use with 'export' command):")
	fmt.Fprintln(w, "  -format string  Output format (json|yaml) (default \"json\")")
	fmt.Fprintln(w, "  -o string       Write to file instead of stdout")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tail Options (use with 'tail' command):")
	fmt.Fprintln(w, "  -f, --follow  Follow the journal (like tail -f)")
	fmt.Fprintln(w, "  -n int        Number of lines to show (0 = all)")
	fmt.Fprintln(w)
	fmt.Fprint(w, "Session "+command.Usage)
}
