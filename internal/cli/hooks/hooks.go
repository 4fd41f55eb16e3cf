// Package hooks bridges searcher lifecycle events to the CLI's presentation
// layer: the bubbletea TUI when one is running, otherwise an optional
// progress bar on stderr.
package hooks

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/schollz/progressbar/v3"

	"github.com/stackvity/stack-searcher/pkg/searcher"
)

// TUIProgram is the part of a bubbletea program the hooks need.
type TUIProgram interface {
	Send(msg tea.Msg)
}

// ScanStartedMsg signals that enumeration finished and scanning begins.
type ScanStartedMsg struct{ Total int }

// FileScannedMsg signals that one file's scan task completed.
type FileScannedMsg struct {
	Path             string
	Matches          int
	Completed, Total int64
}

// RunCompleteMsg carries the final report.
type RunCompleteMsg struct{ Report searcher.Report }

// CLIHooks implements searcher.Hooks. All methods are safe for concurrent
// use; the progress bar is guarded by a mutex, bubbletea's Send is already
// safe.
type CLIHooks struct {
	logger     *slog.Logger
	program    TUIProgram
	barEnabled bool

	mu  sync.Mutex
	bar *progressbar.ProgressBar
}

// NewCLIHooks creates hooks that feed program when non-nil, or a stderr
// progress bar when barEnabled is set. With neither, events are only logged.
func NewCLIHooks(logger *slog.Logger, program TUIProgram, barEnabled bool) *CLIHooks {
	return &CLIHooks{
		logger:     logger,
		program:    program,
		barEnabled: barEnabled,
	}
}

// OnScanStarted implements searcher.Hooks.
func (h *CLIHooks) OnScanStarted(total int) error {
	if h.program != nil {
		h.program.Send(ScanStartedMsg{Total: total})
		return nil
	}
	if h.barEnabled {
		h.mu.Lock()
		h.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("scanning"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		h.mu.Unlock()
	}
	return nil
}

// OnFileScanned implements searcher.Hooks.
func (h *CLIHooks) OnFileScanned(path string, matches int, completed, total int64) error {
	if h.program != nil {
		h.program.Send(FileScannedMsg{Path: path, Matches: matches, Completed: completed, Total: total})
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.bar != nil {
		_ = h.bar.Add(1)
	}
	return nil
}

// OnRunComplete implements searcher.Hooks.
func (h *CLIHooks) OnRunComplete(report searcher.Report) error {
	if h.program != nil {
		h.program.Send(RunCompleteMsg{Report: report})
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.bar != nil {
		_ = h.bar.Close()
		h.bar = nil
		// Keep the next prompt off the progress bar line.
		_, _ = fmt.Fprintln(os.Stderr)
	}
	return nil
}
