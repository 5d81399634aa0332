package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"text/tabwriter"
	"time"

	"github.com/fwojciec/diffcore"
	"github.com/fwojciec/diffcore/gitdiff"
	"github.com/fwojciec/diffcore/gitlog"
	"github.com/fwojciec/diffcore/jsonl"
	"github.com/fwojciec/diffcore/porcelain"
	"github.com/fwojciec/diffcore/unidiff"
	"golang.org/x/sync/errgroup"
)

// Errors returned by App commands.
var (
	ErrNoChanges    = errors.New("no changes in input")
	ErrFileNotFound = errors.New("file not found in diff")
	ErrHunkIndex    = errors.New("hunk index out of range")

	errNoInput = errors.New("no input")
)

// App runs diffcore commands over stdin or a list of files.
type App struct {
	Input    io.Reader // Used when Files is empty
	Files    []string
	Parser   diffcore.DiffParser
	Renderer diffcore.Renderer
	Stdout   io.Writer
	Logger   *slog.Logger
}

// Diff parses every input and concatenates the file diffs in argument
// order. Returns ErrNoChanges when no input contains a file diff.
func (a *App) Diff(ctx context.Context) (*diffcore.Diff, error) {
	parts := make([][]diffcore.FileDiff, max(len(a.Files), 1))
	err := a.forEachInput(ctx, func(i int, name string, r io.Reader) error {
		diff, err := a.parser().Parse(r)
		if err != nil {
			return err
		}
		a.logger().Debug("parsed diff", "input", name, "files", len(diff.Files))
		parts[i] = diff.Files
		return nil
	})
	if err != nil {
		return nil, err
	}

	diff := &diffcore.Diff{Files: []diffcore.FileDiff{}}
	for _, files := range parts {
		diff.Files = append(diff.Files, files...)
	}
	if len(diff.Files) == 0 {
		return nil, ErrNoChanges
	}
	return diff, nil
}

// Show renders the parsed diff.
func (a *App) Show(ctx context.Context) error {
	diff, err := a.Diff(ctx)
	if err != nil {
		return err
	}
	return a.Renderer.Render(a.Stdout, diff)
}

// JSON writes the parsed diff as JSON Lines.
func (a *App) JSON(ctx context.Context) error {
	diff, err := a.Diff(ctx)
	if err != nil {
		return err
	}
	return jsonl.NewWriter(a.Stdout).WriteDiff(diff)
}

// Hunk writes the standalone patch for the index-th hunk of path, reversed
// when reverse is set.
func (a *App) Hunk(ctx context.Context, path string, index int, reverse bool) error {
	target, h, err := a.findHunk(ctx, path, index)
	if err != nil {
		return err
	}
	if reverse {
		h = unidiff.Reverse(h)
	}
	_, err = io.WriteString(a.Stdout, unidiff.HunkPatch(target, h))
	return err
}

// findHunk locates a hunk by file path (new or old) and zero-based index.
// It returns the file's current path, which the patch must name.
func (a *App) findHunk(ctx context.Context, path string, index int) (string, diffcore.Hunk, error) {
	diff, err := a.Diff(ctx)
	if err != nil {
		return "", diffcore.Hunk{}, err
	}
	for _, f := range diff.Files {
		if f.Path != path && (f.OldPath == nil || *f.OldPath != path) {
			continue
		}
		if index < 0 || index >= len(f.Hunks) {
			return "", diffcore.Hunk{}, fmt.Errorf("%w: %s has %d hunks, got %d", ErrHunkIndex, f.Path, len(f.Hunks), index)
		}
		return f.Path, f.Hunks[index], nil
	}
	return "", diffcore.Hunk{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
}

// Patch writes every parsed file diff back out as a git patch.
func (a *App) Patch(ctx context.Context) error {
	diff, err := a.Diff(ctx)
	if err != nil {
		return err
	}
	for _, f := range diff.Files {
		if _, err := io.WriteString(a.Stdout, unidiff.FilePatch(f)); err != nil {
			return err
		}
	}
	return nil
}

// Apply applies the index-th hunk of path to the contents of source and
// writes the result.
func (a *App) Apply(ctx context.Context, path string, index int, source string, reverse bool) error {
	target, h, err := a.findHunk(ctx, path, index)
	if err != nil {
		return err
	}
	src, err := os.ReadFile(source)
	if err != nil {
		return err
	}
	out, err := gitdiff.ApplyHunk(src, target, h, reverse)
	if err != nil {
		return err
	}
	_, err = a.Stdout.Write(out)
	return err
}

// Status parses porcelain status output, NUL-separated unless lines is set.
func (a *App) Status(ctx context.Context, lines bool) error {
	parts := make([][]diffcore.FileStatus, max(len(a.Files), 1))
	err := a.forEachInput(ctx, func(i int, _ string, r io.Reader) error {
		if !lines {
			entries, err := porcelain.ParseReader(r)
			parts[i] = entries
			return err
		}
		raw, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		parts[i] = porcelain.ParseLines(string(raw))
		return nil
	})
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.Stdout, 0, 4, 2, ' ', 0)
	for _, entries := range parts {
		for _, s := range entries {
			path := s.Path
			if s.OldPath != nil {
				path = *s.OldPath + " -> " + s.Path
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", s.Staging(), changeName(s.IndexChange), changeName(s.WorkTreeChange), path)
		}
	}
	return tw.Flush()
}

// Log parses log output produced with gitlog.LogFormat.
func (a *App) Log(ctx context.Context) error {
	inputs, err := a.readInputs(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.Stdout, 0, 4, 2, ' ', 0)
	for _, raw := range inputs {
		commits, err := gitlog.ParseLog(string(raw))
		if err != nil {
			return err
		}
		for _, c := range commits {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.ShortHash, c.Date.Format(time.DateOnly), c.Author, c.Subject)
		}
	}
	return tw.Flush()
}

// Tags parses tag listings produced with gitlog.TagFormat.
func (a *App) Tags(ctx context.Context) error {
	inputs, err := a.readInputs(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.Stdout, 0, 4, 2, ' ', 0)
	for _, raw := range inputs {
		tags, err := gitlog.ParseTags(string(raw))
		if err != nil {
			return err
		}
		for _, t := range tags {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.Name, shortHash(t.Hash), t.Date.Format(time.DateOnly), t.Subject)
		}
	}
	return tw.Flush()
}

// Stashes parses stash listings produced with gitlog.StashFormat.
func (a *App) Stashes(ctx context.Context) error {
	inputs, err := a.readInputs(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.Stdout, 0, 4, 2, ' ', 0)
	for _, raw := range inputs {
		stashes, err := gitlog.ParseStashes(string(raw))
		if err != nil {
			return err
		}
		for _, s := range stashes {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Ref, s.Branch, s.Message)
		}
	}
	return tw.Flush()
}

// Remotes parses git remote -v output.
func (a *App) Remotes(ctx context.Context) error {
	inputs, err := a.readInputs(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.Stdout, 0, 4, 2, ' ', 0)
	for _, raw := range inputs {
		for _, r := range gitlog.ParseRemotes(string(raw)) {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Name, r.FetchURL, r.PushURL)
		}
	}
	return tw.Flush()
}

// Blame parses git blame porcelain output.
func (a *App) Blame(ctx context.Context) error {
	inputs, err := a.readInputs(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.Stdout, 0, 4, 1, ' ', 0)
	for _, raw := range inputs {
		lines, err := gitlog.ParseBlame(string(raw))
		if err != nil {
			return err
		}
		for _, l := range lines {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d)\t%s\n", shortHash(l.Hash), l.Author, l.AuthorTime.Format(time.DateOnly), l.FinalLine, l.Content)
		}
	}
	return tw.Flush()
}

func (a *App) readInputs(ctx context.Context) ([][]byte, error) {
	inputs := make([][]byte, max(len(a.Files), 1))
	err := a.forEachInput(ctx, func(i int, _ string, r io.Reader) error {
		b, err := io.ReadAll(r)
		inputs[i] = b
		return err
	})
	return inputs, err
}

// forEachInput calls fn for stdin, or concurrently for every file.
func (a *App) forEachInput(ctx context.Context, fn func(i int, name string, r io.Reader) error) error {
	if len(a.Files) == 0 {
		if a.Input == nil {
			return errNoInput
		}
		return fn(0, "stdin", a.Input)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range a.Files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()
			a.logger().Debug("reading input", "path", path)
			if err := fn(i, path, f); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (a *App) parser() diffcore.DiffParser {
	if a.Parser == nil {
		return unidiff.NewParser()
	}
	return a.Parser
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

func changeName(ct *diffcore.ChangeType) string {
	if ct == nil {
		return "-"
	}
	return ct.String()
}

func shortHash(h string) string {
	if len(h) > 8 {
		return h[:8]
	}
	return h
}
