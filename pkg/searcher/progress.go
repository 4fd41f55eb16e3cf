package searcher

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
)

// console serializes writes of status and diagnostic lines. Terminal output
// interleaving is undefined without a gate, so every emission path shares this
// mutex. The gate guards printing only; counters stay lock-free.
type console struct {
	mu  sync.Mutex
	out io.Writer
	err io.Writer
}

func newConsole(out, err io.Writer) *console {
	if out == nil {
		out = io.Discard
	}
	if err == nil {
		err = io.Discard
	}
	return &console{out: out, err: err}
}

// statusf writes one status line to the result-adjacent output stream.
func (c *console) statusf(format string, args ...any) {
	c.mu.Lock()
	fmt.Fprintf(c.out, format+"\n", args...)
	c.mu.Unlock()
}

// errorf writes one diagnostic line to the error stream, kept distinct from
// result output.
func (c *console) errorf(format string, args ...any) {
	c.mu.Lock()
	fmt.Fprintf(c.err, format+"\n", args...)
	c.mu.Unlock()
}

// progressTracker counts completed scan tasks. The increment is an atomic
// add; every interval-th completion emits a single "Files scanned" status
// line. The decision is taken on the value returned by the increment, never
// on a re-read of the counter, so each multiple is reported exactly once even
// under full worker concurrency.
type progressTracker struct {
	completed atomic.Int64
	total     int64
	interval  int64
	console   *console
}

func newProgressTracker(total, interval int, console *console) *progressTracker {
	return &progressTracker{
		total:    int64(total),
		interval: int64(interval),
		console:  console,
	}
}

// recordCompletion registers one finished file and returns the post-increment
// completed count.
func (p *progressTracker) recordCompletion() int64 {
	completed := p.completed.Add(1)
	if p.interval > 0 && completed%p.interval == 0 {
		p.console.statusf("Files scanned: %d/%d", completed, p.total)
	}
	return completed
}

// count returns the number of completions recorded so far. It is monotonic
// and never exceeds total under a correct dispatcher.
func (p *progressTracker) count() int64 {
	return p.completed.Load()
}
