package searcher

import "time"

// Default values applied by NewEngine when the corresponding Options fields
// are zero. The CLI exposes most of these as flags.
const (
	// DefaultLargeFileThresholdMiB is the file size above which a file is
	// silently skipped rather than scanned.
	DefaultLargeFileThresholdMiB int64 = 200

	// DefaultProgressInterval is the number of completed files between two
	// "Files scanned" status lines.
	DefaultProgressInterval = 50

	// DefaultShutdownGracePeriod bounds how long the dispatcher waits for the
	// worker pool to drain before issuing a forced shutdown.
	DefaultShutdownGracePeriod = 60 * time.Second

	// DefaultMaxDisplayResults caps how many match lines the CLI prints
	// before emitting a truncation notice.
	DefaultMaxDisplayResults = 200

	// DefaultConcurrency means "pick for me": the CLI resolves it to the host
	// parallelism, the engine coerces anything below one to a single worker.
	DefaultConcurrency = 0
)

// DefaultOutputFormat is the report format used when none is configured.
const DefaultOutputFormat = OutputFormatText
