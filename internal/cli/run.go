package cli

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/mv/qmlhook/internal/format"
	"github.com/mv/qmlhook/internal/gitindex"
	"github.com/mv/qmlhook/internal/locate"
	"github.com/mv/qmlhook/internal/output"
	"github.com/mv/qmlhook/internal/scheduler"
	"github.com/mv/qmlhook/internal/walker"
	"github.com/mv/qmlhook/internal/watch"
)

// NewLogger builds the stderr diagnostic logger for a run.
func NewLogger(verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level: level,
	})
}

// Run executes the parallel formatting pass over the configured files.
// Returns the process exit code: 0 when every file is clean, 1 for
// anything else, a missing formatter included.
func Run(ctx context.Context, cfg Config) int {
	logger := NewLogger(cfg.Verbose)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "err", err)
		return 1
	}

	// Discovery happens before the file list is even built; a host
	// without the formatter fails fast no matter what was passed.
	bin, ok := resolveFormatter(cfg, logger)
	if !ok {
		return 1
	}

	files, err := collectFiles(ctx, cfg, logger)
	if err != nil {
		logger.Error("collecting files", "err", err)
		return 1
	}
	if len(files) == 0 {
		logger.Debug("no QML files to process")
		return 0
	}

	inv := format.NewInvoker(bin, format.Options{
		UseSpaces: cfg.UseSpaces,
		CheckOnly: cfg.Check,
		InPlace:   cfg.InPlace,
		TabSize:   cfg.TabSize,
	})
	sched := scheduler.New(cfg.Workers, inv)
	logger.Debug("formatting", "files", len(files), "workers", sched.Workers())

	resultCh := sched.Run(ctx, scheduler.Feed(files))

	var tally output.Tally
	ow := output.NewOrderedWriter(os.Stdout, newFormatter(cfg), cfg.Verbose)
	ow.WriteOrdered(resultCh, tally.Observe)
	if tally.Total > 1 {
		ow.WriteSummary(tally)
	}

	if tally.Clean() {
		return 0
	}
	return 1
}

// RunFix executes the sequential change-detection pass: each file is
// reformatted in place, one at a time, and compared before and after.
// The first error halts the run. Returns 1 when any file changed or
// failed, 0 when everything was already formatted.
func RunFix(ctx context.Context, cfg Config) int {
	logger := NewLogger(cfg.Verbose)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "err", err)
		return 1
	}

	bin, ok := resolveFormatter(cfg, logger)
	if !ok {
		return 1
	}

	files, err := collectFiles(ctx, cfg, logger)
	if err != nil {
		logger.Error("collecting files", "err", err)
		return 1
	}
	if len(files) == 0 {
		logger.Debug("no QML files to process")
		return 0
	}

	fixer := format.NewFixer(bin)
	ow := output.NewOrderedWriter(os.Stdout, newFormatter(cfg), cfg.Verbose)

	var tally output.Tally
	for _, path := range files {
		res := fixer.Fix(ctx, path)
		tally.Observe(res)
		ow.WriteResult(res)
		if res.Status == format.StatusError {
			logger.Error("halting after error", "path", res.Path)
			return 1
		}
	}
	if tally.Total > 1 {
		ow.WriteSummary(tally)
	}

	if tally.Clean() {
		return 0
	}
	return 1
}

// RunWatch reformats QML files in the configured trees as they change,
// until ctx is canceled. Returns 1 only on setup failure.
func RunWatch(ctx context.Context, cfg Config) int {
	logger := NewLogger(cfg.Verbose)
	if !cfg.Verbose {
		logger.SetLevel(log.InfoLevel)
	}

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "err", err)
		return 1
	}

	bin, ok := resolveFormatter(cfg, logger)
	if !ok {
		return 1
	}

	roots := cfg.Paths
	if len(roots) == 0 {
		roots = []string{"."}
	}

	excludes, err := walker.CompileExcludes(cfg.Excludes)
	if err != nil {
		logger.Error("invalid exclude", "err", err)
		return 1
	}
	defer excludes.Close()

	watcher, err := watch.New(cfg.Debounce)
	if err != nil {
		logger.Error("creating watcher", "err", err)
		return 1
	}
	defer watcher.Close()

	for _, root := range roots {
		if err := watcher.Add(root); err != nil {
			logger.Error("watching", "path", root, "err", err)
			return 1
		}
	}

	go func() {
		<-ctx.Done()
		watcher.Close()
	}()

	fixer := format.NewFixer(bin)
	logger.Info("watching for QML changes", "paths", strings.Join(roots, ", "))

	for ev := range watcher.Events() {
		if ev.Err != nil {
			logger.Warn("watch error", "err", ev.Err)
			continue
		}
		if excludes.Match(ev.Path) {
			logger.Debug("excluded", "path", ev.Path)
			continue
		}

		res := fixer.Fix(ctx, ev.Path)
		switch res.Status {
		case format.StatusChanged:
			logger.Info("reformatted", "path", res.Path)
		case format.StatusOK:
			logger.Debug("already formatted", "path", res.Path)
		case format.StatusError:
			logger.Warn("format failed", "path", res.Path, "err", res.Detail)
		}
	}
	return 0
}

// resolveFormatter returns the formatter executable for this run,
// either the configured override or the first PATH candidate.
func resolveFormatter(cfg Config, logger *log.Logger) (string, bool) {
	if cfg.FormatterPath != "" {
		return cfg.FormatterPath, true
	}
	bin, ok := locate.Formatter()
	if !ok {
		logger.Error("no qmlformat executable found on PATH",
			"tried", strings.Join(locate.Candidates(), ", "))
		return "", false
	}
	logger.Debug("using formatter", "path", bin)
	return bin, true
}

// collectFiles resolves the configured file set: positional paths or the
// staged index, stat-filtered, walked when recursive, minus excludes.
func collectFiles(ctx context.Context, cfg Config, logger *log.Logger) ([]string, error) {
	excludes, err := walker.CompileExcludes(cfg.Excludes)
	if err != nil {
		return nil, err
	}
	defer excludes.Close()

	if cfg.Staged {
		return stagedFiles(ctx, excludes, logger)
	}

	fileCh, errCh := walker.Walk(cfg.Paths, walker.WalkOptions{
		Recursive: cfg.Recursive,
		NoIgnore:  cfg.NoIgnore,
		Hidden:    cfg.Hidden,
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for err := range errCh {
			var walkErr *walker.WalkError
			if errors.As(err, &walkErr) && errors.Is(err, walker.ErrIsDirectory) {
				logger.Warn("skipping directory, use --recursive to descend", "path", walkErr.Path)
				continue
			}
			logger.Warn("walk error", "err", err)
		}
	}()

	var files []string
	for entry := range fileCh {
		if excludes.Match(entry.Path) {
			logger.Debug("excluded", "path", entry.Path)
			continue
		}
		files = append(files, entry.Path)
	}
	<-done
	return files, nil
}

// stagedFiles lists the staged QML files. Excludes match the repo-root
// relative names git reports, the same paths pre-commit configs are
// written against, while the formatter gets absolute paths so the hook
// works from any subdirectory. Files staged but since deleted from the
// worktree are dropped.
func stagedFiles(ctx context.Context, excludes *walker.ExcludeSet, logger *log.Logger) ([]string, error) {
	staged, err := gitindex.StagedQML(ctx, "")
	if err != nil {
		return nil, err
	}
	logger.Debug("staged QML files", "count", len(staged))

	var files []string
	for _, sf := range staged {
		if excludes.Match(sf.Rel) {
			logger.Debug("excluded", "path", sf.Rel)
			continue
		}
		info, err := os.Stat(sf.Abs)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, sf.Abs)
	}
	return files, nil
}

func newFormatter(cfg Config) output.Formatter {
	if cfg.JSONOutput {
		return output.NewJSONFormatter()
	}
	return output.NewTextFormatter(output.StylesFor(cfg.Color))
}
