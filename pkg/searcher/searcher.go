// Package searcher implements a concurrent, keyword-based text search over
// all regular files beneath a root directory.
//
// The package is built around a small pipeline: an Enumerator collects the
// complete file list up front, a fixed-size worker pool scans one file per
// task, matches accumulate in an internally synchronized sink, and a final
// single-threaded sort produces a stable (path, line) ordering regardless of
// how the parallel scans interleaved. Progress is tracked with a lock-free
// counter; only the console emission of status lines is serialized.
package searcher

import "context"

// Search runs a complete search described by opts and returns the ordered
// report. A root path that is not a directory yields an empty report together
// with an error wrapping ErrNotDirectory; the caller decides whether that is
// fatal. A forced pool shutdown is reported via ErrShutdownTimeout while the
// results collected before the timeout remain in the report.
func Search(ctx context.Context, opts Options) (Report, error) {
	engine, err := NewEngine(ctx, opts)
	if err != nil {
		return Report{Summary: ReportSummary{RootPath: opts.RootPath, Term: opts.Term}}, err
	}
	return engine.Run()
}
