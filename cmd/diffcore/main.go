// Command diffcore parses git output: unified diffs, porcelain status, log,
// tag, stash, remote and blame listings.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/fwojciec/diffcore"
	"github.com/fwojciec/diffcore/chroma"
	"github.com/fwojciec/diffcore/fs"
	"github.com/fwojciec/diffcore/gitdiff"
	"github.com/fwojciec/diffcore/render"
	"github.com/fwojciec/diffcore/toml"
	"github.com/fwojciec/diffcore/unidiff"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

const usage = `Usage: diffcore [flags] <command> [command flags] [files...]

Reads stdin when no files are given.

Commands:
  show      render parsed diffs
  json      write file diffs as JSON Lines
  patch     write parsed diffs back out as git patches
  hunk      print one hunk as a standalone patch (-file PATH -index N [-reverse])
  apply     apply one hunk to a file (-file PATH -index N -source FILE [-reverse])
  status    parse git status --porcelain -z output (-lines for newline output)
  log       parse git log output produced with the diffcore log format
  tags      parse tag listings
  stashes   parse stash listings
  remotes   parse git remote -v output
  blame     parse git blame --porcelain output
  config    print the effective configuration

Flags:
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, colorable.NewColorable(os.Stderr))
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("diffcore", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprint(stderr, usage)
		flags.PrintDefaults()
	}
	var (
		configPath  = flags.String("config", fs.DefaultConfigPath(), "config file")
		color       = flags.String("color", "", "color output: auto, always or never")
		lineNumbers = flags.Bool("line-numbers", true, "show line number gutters")
		syntax      = flags.Bool("syntax", true, "syntax highlight content")
		tabWidth    = flags.Int("tab-width", 0, "tab stop interval")
		parserName  = flags.String("parser", "unidiff", "diff parser: unidiff or gitdiff")
		verbose     = flags.Bool("v", false, "debug logging")
	)
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := toml.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "diffcore: %v\n", err)
		return 1
	}
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "color":
			cfg.Color = *color
		case "line-numbers":
			cfg.LineNumbers = *lineNumbers
		case "syntax":
			cfg.Syntax = *syntax
		case "tab-width":
			cfg.TabWidth = *tabWidth
		case "v":
			if *verbose {
				cfg.LogLevel = "debug"
			}
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "diffcore: %v\n", err)
		return 2
	}

	logger := newLogger(stderr, cfg)

	if flags.NArg() == 0 {
		flags.Usage()
		return 2
	}
	command, rest := flags.Arg(0), flags.Args()[1:]

	app := &App{
		Input:  stdin,
		Stdout: stdout,
		Logger: logger,
	}
	switch *parserName {
	case "unidiff":
		app.Parser = unidiff.NewParser()
	case "gitdiff":
		app.Parser = gitdiff.NewParser()
	default:
		logger.Error("unknown parser", "parser", *parserName)
		return 2
	}

	err = dispatch(ctx, app, cfg, command, rest, stdout)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, flag.ErrHelp):
		return 0
	case errors.Is(err, errUsage):
		logger.Error("invalid usage", "err", err)
		return 2
	case errors.Is(err, ErrNoChanges):
		logger.Info("nothing to do", "err", err)
		return 1
	default:
		logger.Error("command failed", "command", command, "err", err)
		return 1
	}
}

var errUsage = errors.New("usage")

func dispatch(ctx context.Context, app *App, cfg diffcore.Config, command string, args []string, stdout io.Writer) error {
	sub := flag.NewFlagSet(command, flag.ContinueOnError)
	sub.SetOutput(io.Discard)
	var (
		file    = sub.String("file", "", "file path within the diff")
		index   = sub.Int("index", 0, "zero-based hunk index")
		reverse = sub.Bool("reverse", false, "reverse the hunk")
		source  = sub.String("source", "", "file to apply the hunk to")
		lines   = sub.Bool("lines", false, "newline-separated status output")
	)
	if err := sub.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	app.Files = sub.Args()

	switch command {
	case "show":
		profile, err := render.ProfileFor(cfg.Color, stdout)
		if err != nil {
			return err
		}
		opts := []render.Option{
			render.WithColorProfile(profile),
			render.WithLineNumbers(cfg.LineNumbers),
			render.WithTabWidth(cfg.TabWidth),
		}
		if cfg.Syntax && profile != termenv.Ascii {
			opts = append(opts, render.WithHighlighter(chroma.NewTokenizer(), chroma.NewDetector()))
		}
		app.Renderer = render.NewRenderer(stdout, opts...)
		return app.Show(ctx)
	case "json":
		return app.JSON(ctx)
	case "patch":
		return app.Patch(ctx)
	case "hunk":
		if *file == "" {
			return fmt.Errorf("%w: hunk requires -file", errUsage)
		}
		return app.Hunk(ctx, *file, *index, *reverse)
	case "apply":
		if *file == "" || *source == "" {
			return fmt.Errorf("%w: apply requires -file and -source", errUsage)
		}
		return app.Apply(ctx, *file, *index, *source, *reverse)
	case "status":
		return app.Status(ctx, *lines)
	case "log":
		return app.Log(ctx)
	case "tags":
		return app.Tags(ctx)
	case "stashes":
		return app.Stashes(ctx)
	case "remotes":
		return app.Remotes(ctx)
	case "blame":
		return app.Blame(ctx)
	case "config":
		return toml.WriteConfig(stdout, cfg)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, command)
	}
}

func newLogger(w io.Writer, cfg diffcore.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	noColor := !isTerminal(w)
	switch cfg.Color {
	case diffcore.ColorAlways:
		noColor = false
	case diffcore.ColorNever:
		noColor = true
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
