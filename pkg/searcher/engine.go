package searcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Engine owns one search run: eager enumeration, a fixed-size worker pool,
// thread-safe result accumulation, progress reporting, and the final
// deterministic ordering pass.
type Engine struct {
	opts       *Options
	logger     *slog.Logger
	hooks      Hooks
	console    *console
	enumerator Enumerator
	scanner    *lineScanner
	sink       *resultSink

	concurrency int
	gracePeriod time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	forced atomic.Bool
}

// NewEngine validates opts, fills in defaults, and prepares a run. It fails
// with an error wrapping ErrNotDirectory when the root path does not name a
// directory; everything else about a run degrades gracefully instead of
// failing up front.
func NewEngine(ctx context.Context, opts Options) (*Engine, error) {
	if opts.Logger == nil {
		opts.Logger = slog.NewTextHandler(io.Discard, nil)
	}
	if opts.EventHooks == nil {
		opts.EventHooks = &NoOpHooks{}
	}
	if opts.StatusOut == nil {
		opts.StatusOut = os.Stdout
	}
	if opts.ErrOut == nil {
		opts.ErrOut = os.Stderr
	}
	if opts.LargeFileThresholdMiB <= 0 {
		opts.LargeFileThresholdMiB = DefaultLargeFileThresholdMiB
	}
	if opts.LargeFileThreshold <= 0 {
		opts.LargeFileThreshold = opts.LargeFileThresholdMiB * 1024 * 1024
	}
	if opts.ProgressInterval <= 0 {
		opts.ProgressInterval = DefaultProgressInterval
	}
	if opts.ShutdownGracePeriod <= 0 {
		opts.ShutdownGracePeriod = DefaultShutdownGracePeriod
	}

	logger := slog.New(opts.Logger).With(slog.String("component", "engine"))

	info, statErr := os.Stat(opts.RootPath)
	if statErr != nil || !info.IsDir() {
		logger.Error("Root path is not a directory", slog.String("path", opts.RootPath))
		return nil, fmt.Errorf("%w: %q", ErrNotDirectory, opts.RootPath)
	}

	// Never zero workers, never a rejected invocation.
	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	enumerator := opts.Enumerator
	if enumerator == nil {
		enumerator = newWalkEnumerator(opts.IgnorePatterns, opts.Logger)
	}

	engineCtx, cancel := context.WithCancel(ctx)
	return &Engine{
		opts:        &opts,
		logger:      logger,
		hooks:       opts.EventHooks,
		console:     newConsole(opts.StatusOut, opts.ErrOut),
		enumerator:  enumerator,
		scanner:     newLineScanner(&opts, opts.Logger),
		sink:        newResultSink(),
		concurrency: concurrency,
		gracePeriod: opts.ShutdownGracePeriod,
		ctx:         engineCtx,
		cancel:      cancel,
	}, nil
}

// Run executes the search and returns the ordered report.
//
// The file list is gathered in full before the first task is dispatched. One
// task is submitted per file; each task scans, appends to the sink, and
// records its completion. Run blocks on the pool join; if the join exceeds
// the grace period a forced shutdown is issued: in-flight tasks are
// abandoned, results already appended stay valid, and the returned error
// wraps ErrShutdownTimeout.
func (e *Engine) Run() (Report, error) {
	start := time.Now()
	defer e.cancel()

	e.logger.Info("Starting search",
		slog.String("root", e.opts.RootPath),
		slog.String("term", e.opts.Term),
		slog.Bool("caseInsensitive", e.opts.CaseInsensitive),
		slog.Int("workers", e.concurrency))

	files, enumErr := e.enumerator.Enumerate(e.ctx, e.opts.RootPath)
	if enumErr != nil {
		// The walk failure is reported and the run continues with the
		// partial list; it is never fatal.
		e.console.errorf("Directory walk failed: %v", enumErr)
		e.logger.Error("Directory walk failed", slog.String("error", enumErr.Error()))
		e.sink.appendError(ScanError{
			Path:  e.opts.RootPath,
			Cause: fmt.Errorf("%w: %w", ErrEnumeration, enumErr).Error(),
		})
	}
	total := len(files)
	e.console.statusf("Files to scan: %d", total)
	if hookErr := e.hooks.OnScanStarted(total); hookErr != nil {
		e.logger.Warn("OnScanStarted hook returned an error", slog.String("error", hookErr.Error()))
	}

	tracker := newProgressTracker(total, e.opts.ProgressInterval, e.console)

	// The pool is created in full before any task is submitted.
	work := make(chan string, e.concurrency)
	var wg sync.WaitGroup
	for i := 0; i < e.concurrency; i++ {
		wg.Add(1)
		go e.worker(&wg, i, work, tracker)
	}

feed:
	for _, filePath := range files {
		select {
		case work <- filePath:
		case <-e.ctx.Done():
			break feed
		}
	}
	close(work)

	e.join(&wg)

	matches, scanErrs := e.sink.drain()
	SortMatches(matches)

	report := Report{
		Summary: ReportSummary{
			RootPath:        e.opts.RootPath,
			Term:            e.opts.Term,
			CaseInsensitive: e.opts.CaseInsensitive,
			Concurrency:     e.concurrency,
			TotalFiles:      total,
			ScannedFiles:    int(tracker.count()),
			MatchCount:      len(matches),
			ErrorCount:      len(scanErrs),
			ForcedShutdown:  e.forced.Load(),
			DurationSeconds: time.Since(start).Seconds(),
			Timestamp:       time.Now().UTC(),
		},
		Matches: matches,
		Errors:  scanErrs,
	}

	e.logger.Info("Search finished",
		slog.Duration("duration", time.Since(start)),
		slog.Int("files", total),
		slog.Int("matches", len(matches)),
		slog.Int("errors", len(scanErrs)),
		slog.Bool("forcedShutdown", report.Summary.ForcedShutdown))

	if hookErr := e.hooks.OnRunComplete(report); hookErr != nil {
		e.logger.Warn("OnRunComplete hook returned an error", slog.String("error", hookErr.Error()))
	}

	if report.Summary.ForcedShutdown {
		return report, fmt.Errorf("%w after %s", ErrShutdownTimeout, e.gracePeriod)
	}
	return report, nil
}

// join waits for every worker to finish, bounded by the grace period. On
// timeout the engine context is cancelled so abandoned workers exit at their
// next file boundary; the sink keeps whatever they appended before that.
func (e *Engine) join(wg *sync.WaitGroup) {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	timer := time.NewTimer(e.gracePeriod)
	defer timer.Stop()
	select {
	case <-done:
	case <-timer.C:
		e.forced.Store(true)
		e.console.errorf("Worker pool did not terminate within %s; forcing shutdown", e.gracePeriod)
		e.logger.Error("Forcing worker pool shutdown", slog.Duration("gracePeriod", e.gracePeriod))
		e.cancel()
	}
}

// worker pulls file paths until the channel closes or the run is cancelled.
func (e *Engine) worker(wg *sync.WaitGroup, workerID int, work <-chan string, tracker *progressTracker) {
	defer wg.Done()
	logger := e.logger.With(slog.Int("workerID", workerID))
	logger.Debug("Worker started")
	for {
		select {
		case filePath, ok := <-work:
			if !ok {
				logger.Debug("Worker shutting down (channel closed)")
				return
			}
			e.scanOne(logger, filePath, tracker)
		case <-e.ctx.Done():
			logger.Debug("Worker shutting down (context cancelled)")
			return
		}
	}
}

// scanOne runs one file's scan task inside its own failure boundary. An error
// or panic is recorded against the file and never terminates sibling tasks or
// the pool. Completion is counted regardless of outcome.
func (e *Engine) scanOne(logger *slog.Logger, filePath string, tracker *progressTracker) {
	matched := 0
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Panic recovered in scan task",
				slog.String("path", filePath), slog.Any("panicValue", r))
			e.sink.appendError(ScanError{Path: filePath, Cause: fmt.Sprintf("panic: %v", r)})
		}
		completed := tracker.recordCompletion()
		if hookErr := e.hooks.OnFileScanned(filePath, matched, completed, tracker.total); hookErr != nil {
			logger.Warn("OnFileScanned hook returned an error", slog.String("error", hookErr.Error()))
		}
	}()

	matches, err := e.scanner.scan(filePath)
	if err != nil {
		e.console.errorf("Failed reading: %s: %v", filePath, err)
		logger.Warn("File read failed", slog.String("path", filePath), slog.String("error", err.Error()))
		e.sink.appendError(ScanError{Path: filePath, Cause: err.Error()})
	}
	if len(matches) > 0 {
		e.sink.appendMatches(matches)
		matched = len(matches)
	}
}
