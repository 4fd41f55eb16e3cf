// Package cli orchestrates a search run on behalf of the root command:
// banner, engine invocation, progress presentation, and the final report.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/stackvity/stack-searcher/internal/cli/hooks"
	"github.com/stackvity/stack-searcher/internal/cli/ui"
	"github.com/stackvity/stack-searcher/pkg/searcher"
)

// Run executes one search described by opts and renders the outcome. The
// root-not-a-directory and forced-shutdown conditions are reported on the
// error channel but do not fail the process; the (possibly empty) match list
// is always printed.
func Run(ctx context.Context, opts searcher.Options, logger *slog.Logger) error {
	out := opts.StatusOut
	if out == nil {
		out = os.Stdout
		opts.StatusOut = out
	}
	errOut := opts.ErrOut
	if errOut == nil {
		errOut = os.Stderr
		opts.ErrOut = errOut
	}

	if opts.TuiEnabled && opts.OutputFormat == searcher.OutputFormatText {
		return runWithTUI(ctx, opts, logger, out, errOut)
	}

	// Keep machine-readable output clean: banner and engine status lines move
	// to the error stream when the report itself goes to stdout as JSON/YAML.
	statusOut := out
	if opts.OutputFormat != searcher.OutputFormatText {
		statusOut = errOut
		opts.StatusOut = errOut
	}

	absRoot, absErr := filepath.Abs(opts.RootPath)
	if absErr != nil {
		absRoot = opts.RootPath
	}
	fmt.Fprintln(statusOut, "Starting search")
	fmt.Fprintf(statusOut, "Root: %s\n", absRoot)
	fmt.Fprintf(statusOut, "Keyword: '%s' (case-insensitive=%t)\n", opts.Term, opts.CaseInsensitive)
	fmt.Fprintf(statusOut, "Threads: %d\n", opts.Concurrency)

	if opts.EventHooks == nil {
		barEnabled := !opts.Verbose && term.IsTerminal(int(os.Stderr.Fd()))
		opts.EventHooks = hooks.NewCLIHooks(logger, nil, barEnabled)
	}

	report, err := searcher.Search(ctx, opts)
	if err != nil && !reportSearchError(errOut, opts, err) {
		return err
	}
	return printReport(out, &opts, report)
}

// runWithTUI drives the search behind a bubbletea program. The core's status
// lines are silenced; the TUI renders progress from hook messages instead.
func runWithTUI(ctx context.Context, opts searcher.Options, logger *slog.Logger, out, errOut io.Writer) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(ui.NewModel(opts.Term, cancel), tea.WithOutput(os.Stderr))
	opts.StatusOut = io.Discard
	opts.ErrOut = io.Discard
	opts.EventHooks = hooks.NewCLIHooks(logger, program, false)

	type outcome struct {
		report searcher.Report
		err    error
	}
	resultCh := make(chan outcome, 1)
	go func() {
		report, err := searcher.Search(runCtx, opts)
		resultCh <- outcome{report, err}
		// The RunCompleteMsg sent from inside Search quits the program; a
		// pre-run failure never sends it, so quit explicitly.
		if err != nil {
			program.Quit()
		}
	}()

	if _, err := program.Run(); err != nil {
		cancel()
		<-resultCh
		return fmt.Errorf("terminal UI failed: %w", err)
	}

	result := <-resultCh
	if result.err != nil && !reportSearchError(errOut, opts, result.err) {
		return result.err
	}
	return printReport(out, &opts, result.report)
}

// reportSearchError prints the graceful-degrade conditions and reports
// whether the error was one of them.
func reportSearchError(errOut io.Writer, opts searcher.Options, err error) bool {
	switch {
	case errors.Is(err, searcher.ErrNotDirectory):
		fmt.Fprintf(errOut, "Provided root is not a directory: %s\n", opts.RootPath)
		return true
	case errors.Is(err, searcher.ErrShutdownTimeout):
		fmt.Fprintln(errOut, "Worker pool did not terminate in time; forced shutdown issued")
		return true
	}
	return false
}

func printReport(out io.Writer, opts *searcher.Options, report searcher.Report) error {
	switch opts.OutputFormat {
	case searcher.OutputFormatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshalling report: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	case searcher.OutputFormatYAML:
		data, err := yaml.Marshal(report)
		if err != nil {
			return fmt.Errorf("marshalling report: %w", err)
		}
		fmt.Fprint(out, string(data))
		return nil
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Search completed in %d ms\n", int64(report.Summary.DurationSeconds*1000))
	fmt.Fprintf(out, "Total matches: %d\n", report.Summary.MatchCount)
	fmt.Fprintln(out)

	limit := opts.MaxDisplayResults
	if limit <= 0 {
		limit = searcher.DefaultMaxDisplayResults
	}
	for i, match := range report.Matches {
		if i >= limit {
			break
		}
		fmt.Fprintln(out, match.String())
	}
	if len(report.Matches) > limit {
		fmt.Fprintln(out, "(truncated output; use the report programmatically for full data)")
	}
	return nil
}
