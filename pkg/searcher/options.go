package searcher

import (
	"io"
	"log/slog"
	"time"

	"github.com/stackvity/stack-searcher/pkg/searcher/encoding"
)

// Hooks defines callbacks for search lifecycle events. Implementations MUST
// be thread-safe: OnFileScanned is invoked concurrently from every worker.
type Hooks interface {
	// OnScanStarted fires once enumeration has completed, before the first
	// task is dispatched.
	OnScanStarted(totalFiles int) error

	// OnFileScanned fires when one file's scan task finishes, successfully or
	// not. completed is the post-increment completion count.
	OnFileScanned(path string, matches int, completed, total int64) error

	// OnRunComplete fires once with the final, ordered report.
	OnRunComplete(report Report) error
}

// NoOpHooks is the default, do-nothing Hooks implementation.
type NoOpHooks struct{}

// OnScanStarted implements Hooks. It performs no action.
func (h *NoOpHooks) OnScanStarted(totalFiles int) error { return nil }

// OnFileScanned implements Hooks. It performs no action.
func (h *NoOpHooks) OnFileScanned(path string, matches int, completed, total int64) error {
	return nil
}

// OnRunComplete implements Hooks. It performs no action.
func (h *NoOpHooks) OnRunComplete(report Report) error { return nil }

// Options holds all configuration for a single Search run. The value is
// treated as immutable for the duration of the run; nothing persists between
// invocations.
type Options struct {
	// --- Search inputs ---
	RootPath        string `mapstructure:"rootPath"`        // Required: directory to search beneath
	Term            string `mapstructure:"term"`            // Substring to look for; empty matches every line
	CaseInsensitive bool   `mapstructure:"caseInsensitive"` // Lowercase both sides before comparing

	// --- Performance ---
	Concurrency int `mapstructure:"threads"` // Worker count; values below 1 are coerced to 1

	// --- File handling ---
	LargeFileThresholdMiB int64    `mapstructure:"largeFileThresholdMiB"` // Silent-skip threshold in MiB (0 = default 200)
	LargeFileThreshold    int64    `mapstructure:"-"`                     // Derived threshold in bytes
	DefaultEncoding       string   `mapstructure:"defaultEncoding"`       // Fallback charset for the decoder ("" = UTF-8)
	IgnorePatterns        []string `mapstructure:"ignore"`                // Globs pruned during enumeration

	// --- Reporting & presentation ---
	ProgressInterval  int          `mapstructure:"progressInterval"` // Status line every Nth completion (0 = default 50)
	OutputFormat      OutputFormat `mapstructure:"outputFormat"`     // Final report format ("text", "json", "yaml")
	MaxDisplayResults int          `mapstructure:"maxResults"`       // CLI display cap before truncation notice
	Verbose           bool         `mapstructure:"verbose"`          // Debug logging
	TuiEnabled        bool         `mapstructure:"-"`                // Hint for the CLI to run the TUI

	// --- Shutdown ---
	ShutdownGracePeriod time.Duration `mapstructure:"-"` // Join bound before forced shutdown (0 = default 60s)

	// --- Injected dependencies ---
	EventHooks Hooks                `mapstructure:"-"` // Optional: lifecycle callbacks (NoOpHooks if nil)
	Logger     slog.Handler         `mapstructure:"-"` // Optional: logging backend (discard if nil)
	StatusOut  io.Writer            `mapstructure:"-"` // Status lines; defaults to os.Stdout
	ErrOut     io.Writer            `mapstructure:"-"` // Diagnostics, kept distinct from results; defaults to os.Stderr
	Enumerator Enumerator           `mapstructure:"-"` // Optional: file enumeration (WalkDir-based if nil)
	Decoder    encoding.TextDecoder `mapstructure:"-"` // Optional: text decoding (charset-detecting if nil)
}
