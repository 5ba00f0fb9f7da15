// Package main is the entry point for the datefield command.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/dshills/datefield/internal/app"
	"github.com/dshills/datefield/internal/widget"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// isTerminal reports whether stdin is interactive.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type cliOptions struct {
	app         app.Options
	typed       string
	typeSet     bool
	showVersion bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "datefield %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	interactive := !opts.typeSet && isTerminal()
	if interactive {
		// The terminal belongs to the field; log to a file or nowhere.
		opts.app.LogOutput = io.Discard
	} else {
		opts.app.LogOutput = stderr
	}

	application, err := app.New(opts.app)
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}
	defer application.Shutdown()

	if interactive {
		return runInteractive(application, stdout, stderr)
	}

	typed := opts.typed
	if !opts.typeSet {
		data, err := io.ReadAll(stdin)
		if err != nil {
			fmt.Fprintf(stderr, "Error: reading input: %v\n", err)
			return 1
		}
		typed = strings.ReplaceAll(strings.TrimRight(string(data), "\r\n"), "\n", "")
	}
	application.Type(typed)
	return printResult(stdout, application.Result())
}

func runInteractive(application *app.Application, stdout, stderr io.Writer) int {
	screen, err := widget.NewTerminal()
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to create terminal: %v\n", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := application.RunInteractive(ctx, screen)
	switch {
	case errors.Is(err, app.ErrCancelled), errors.Is(err, context.Canceled):
		return 1
	case err != nil:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if !res.HasDate {
		return 1
	}
	fmt.Fprintln(stdout, res.Date.Format(time.DateOnly))
	return 0
}

// printResult writes the text and ISO date separated by a tab. Without a
// date it prints "-" and returns 1.
func printResult(w io.Writer, res app.Result) int {
	if !res.HasDate {
		fmt.Fprintf(w, "%s\t-\n", res.Text)
		return 1
	}
	fmt.Fprintf(w, "%s\t%s\n", res.Text, res.Date.Format(time.DateOnly))
	return 0
}

func parseFlags(args []string, stderr io.Writer) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("datefield", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.app.ConfigPath, "config", "", "Path to configuration file")
	fs.StringVar(&opts.app.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.app.Locale, "locale", "", "Locale such as de-DE (default: detected)")
	fs.StringVar(&opts.app.Pattern, "pattern", "", "Date pattern such as dd.MM.yyyy")
	fs.StringVar(&opts.app.MacroFile, "macros", "", "Macro definition file")
	fs.StringVar(&opts.app.Script, "script", "", "Lua macro script")
	fs.StringVar(&opts.app.Date, "date", "", "Initial date (YYYY-MM-DD)")
	fs.StringVar(&opts.app.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&opts.typed, "type", "", "Type TEXT into the field and print the result")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")
	fs.BoolVar(&opts.showVersion, "v", false, "Show version information (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "datefield - locale aware date entry\n\n")
		fmt.Fprintf(stderr, "Usage: datefield [options]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  datefield                         Edit a date in the terminal\n")
		fmt.Fprintf(stderr, "  datefield -locale de -type 010100 Print 01.01.2000 and 2000-01-01\n")
		fmt.Fprintf(stderr, "  echo + | datefield                Print tomorrow\n")
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "type" {
			opts.typeSet = true
		}
	})
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "Error: unexpected arguments: %s\n", strings.Join(fs.Args(), " "))
		fs.Usage()
		return opts, fmt.Errorf("unexpected arguments")
	}
	return opts, nil
}
