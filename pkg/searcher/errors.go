package searcher

import "errors"

// Exported error variables. Callers can classify failures returned by Search,
// NewEngine, or configuration loading using errors.Is. Per-file read failures
// never surface here; they are recorded as ScanError entries in the report.
var (
	// ErrConfigValidation indicates the assembled Options failed validation
	// before the search could start.
	ErrConfigValidation = errors.New("invalid search configuration")

	// ErrNotDirectory indicates the configured root path is not a directory.
	// Search returns an empty report alongside this error; nothing is scanned.
	ErrNotDirectory = errors.New("root path is not a directory")

	// ErrEnumeration indicates the directory walk failed before completing.
	// The search proceeds over whatever was enumerated up to that point and
	// the condition is recorded in the report, not returned from Run.
	ErrEnumeration = errors.New("directory enumeration failed")

	// ErrReadFailed indicates an I/O failure while reading a file that had
	// already passed the skip pre-checks. It is recorded per file.
	ErrReadFailed = errors.New("failed to read file")

	// ErrShutdownTimeout indicates the worker pool did not drain within the
	// shutdown grace period and a forced shutdown was issued. Results
	// appended before the timeout remain valid and are still returned.
	ErrShutdownTimeout = errors.New("worker pool shutdown timed out")
)
