package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/sambeau/sauce/config"
	serrors "github.com/sambeau/sauce/pkg/sauce/errors"
	"github.com/sambeau/sauce/pkg/sauce/help"
	"github.com/sambeau/sauce/pkg/sauce/repl"
)

// Version is set at build time via -ldflags
var Version = "0.1.0-dev"

// errReported is returned when the failure has already been written to
// stderr.
var errReported = errors.New("command failed")

func main() {
	ctx := context.Background()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr, os.Getenv); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}

// commands collects repeated -e flags.
type commands []string

func (c *commands) String() string     { return strings.Join(*c, "; ") }
func (c *commands) Set(v string) error { *c = append(*c, v); return nil }

// options are the flags shared by the shell and watch.
type options struct {
	configPath string
	logLevel   string
	format     string
	output     string
	readOnly   bool
	recursive  bool
}

func (o *options) register(flags *flag.FlagSet) {
	flags.StringVar(&o.configPath, "config", "", "Path to config file")
	flags.StringVar(&o.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&o.format, "format", "", "Document format: json, yaml, auto")
	flags.StringVar(&o.output, "output", "", "Result format: json, yaml")
	flags.BoolVar(&o.readOnly, "readonly", false, "Deny writes to the document")
	flags.BoolVar(&o.recursive, "recursive", false, "Wrap nested arrays into objects")
}

// load reads the config and applies the flag overrides.
func (o *options) load(getenv func(string) string) (*config.Config, error) {
	cfg, err := config.Load(o.configPath, getenv)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	if o.format != "" {
		cfg.Shell.Format = o.format
	}
	if o.output != "" {
		cfg.Shell.Output = o.output
	}
	if o.readOnly {
		cfg.Shell.ReadOnly = true
	}
	if o.recursive {
		cfg.Shell.Recursive = true
	}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// run is the main entry point, designed for testability (Mat Ryer pattern)
func run(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) error {
	if len(args) > 0 {
		switch args[0] {
		case "watch":
			return runWatch(ctx, args[1:], stdout, stderr, getenv)
		case "describe":
			return describeCommand(args[1:], stdout, stderr)
		}
	}

	flags := flag.NewFlagSet("sauce", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		opts        options
		exec        commands
		showVersion = flags.Bool("version", false, "Show version")
		showHelp    = flags.Bool("help", false, "Show help")
	)
	opts.register(flags)
	flags.Var(&exec, "e", "Execute a shell command (repeatable)")

	if err := flags.Parse(args); err != nil {
		return err
	}

	if *showHelp {
		printUsage(stdout)
		return nil
	}
	if *showVersion {
		fmt.Fprintf(stdout, "sauce version %s\n", Version)
		return nil
	}
	if flags.NArg() > 1 {
		return fmt.Errorf("unexpected arguments: %v", flags.Args()[1:])
	}

	cfg, err := opts.load(getenv)
	if err != nil {
		return err
	}
	logger := newLogger(stderr, cfg.Logging)

	doc, err := openDocument(flags.Arg(0), cfg.Shell)
	if err != nil {
		return err
	}
	logger.Debug("document loaded", "file", flags.Arg(0), "readonly", cfg.Shell.ReadOnly)

	session := repl.NewSession(doc, cfg.Shell.Output)

	if len(exec) > 0 {
		return execLines(session, exec, stdout, stderr, cfg.Logging.Format)
	}

	if !isatty.IsTerminal(os.Stdin.Fd()) {
		var lines []string
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("reading commands: %w", err)
		}
		return execLines(session, lines, stdout, stderr, cfg.Logging.Format)
	}

	repl.Start(stdout, session, repl.Options{
		Prompt:      cfg.Shell.Prompt,
		HistoryFile: config.ExpandHome(cfg.Shell.History),
		Version:     Version,
	})
	return nil
}

// execLines runs shell lines in order and stops at the first failure.
func execLines(session *repl.Session, lines []string, stdout, stderr io.Writer, logFormat string) error {
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out, err := session.Exec(line)
		if err != nil {
			reportError(stderr, err, logFormat)
			return errReported
		}
		if out != "" {
			fmt.Fprintln(stdout, out)
		}
	}
	return nil
}

// reportError writes err as JSON when logs are JSON, as text otherwise.
func reportError(w io.Writer, err error, logFormat string) {
	var se *serrors.SauceError
	if logFormat == "json" && errors.As(err, &se) {
		if b, jerr := se.ToJSON(); jerr == nil {
			fmt.Fprintln(w, string(b))
			return
		}
	}
	repl.PrintError(w, err)
}

func runWatch(ctx context.Context, args []string, stdout, stderr io.Writer, getenv func(string) string) error {
	flags := flag.NewFlagSet("sauce watch", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var opts options
	opts.register(flags)

	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return fmt.Errorf("watch needs exactly one file")
	}

	cfg, err := opts.load(getenv)
	if err != nil {
		return err
	}
	logger := newLogger(stderr, cfg.Logging)

	w, err := NewWatcher(flags.Arg(0), cfg.Shell, logger)
	if err != nil {
		return err
	}
	w.OnChange = func(keys []string) {
		fmt.Fprintln(stdout, strings.Join(keys, " "))
	}

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return w.Run(ctx)
}

// describeCommand prints help for a type, the type list, or the error catalog.
func describeCommand(args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("sauce describe", flag.ContinueOnError)
	flags.SetOutput(stderr)
	jsonOut := flags.Bool("json", false, "Output as JSON")

	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return fmt.Errorf("usage: sauce describe [--json] <topic>")
	}

	result, err := help.DescribeTopic(flags.Arg(0))
	if err != nil {
		return err
	}

	if *jsonOut {
		data, err := help.FormatJSON(result)
		if err != nil {
			return fmt.Errorf("formatting JSON: %w", err)
		}
		fmt.Fprintln(stdout, string(data))
		return nil
	}
	fmt.Fprint(stdout, help.FormatText(result))
	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, `sauce - explore JSON and YAML documents as ordered containers

Usage:
  sauce [options] [file]
  sauce watch [options] file
  sauce describe [--json] <topic>

Options:
  --config PATH     Path to config file (default: auto-detect)
  --log-level LVL   Log level: debug, info, warn, error
  --format FMT      Document format: json, yaml, auto
  --output FMT      Result format: json, yaml
  --readonly        Deny writes to the document
  --recursive       Wrap nested arrays into objects
  -e COMMAND        Execute a shell command instead of starting the shell
  --version         Show version
  --help            Show this help

Reading Commands:
  With -e, each command runs in order. Without -e, commands are read from
  stdin when it is not a terminal; otherwise the interactive shell starts.

Describe Topics:
  vector, object, string, immutable, aware   Methods of a type
  types                                      All container types
  errors, RANGE-0001                         The error catalog or one code

Config Resolution:
  1. --config flag
  2. SAUCE_CONFIG environment variable
  3. ./sauce.yaml
  4. ~/.config/sauce/sauce.yaml

Examples:
  sauce data.json                        Explore data.json interactively
  sauce -e 'keys' data.yaml              Print the top-level keys
  sauce -e ':cd items' -e count a.json   Count the entries under items
  sauce watch settings.yaml              Print the keys that change on save
  sauce describe vector                  List the methods of a vector

`)
}
