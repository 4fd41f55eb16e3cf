package searcher

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncBuffer lets the test read what the console wrote without racing the
// workers that are still writing.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestProgressTrackerCountsEveryCompletion(t *testing.T) {
	tracker := newProgressTracker(500, 50, newConsole(nil, nil))

	const workers = 16
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500/workers; i++ {
				tracker.recordCompletion()
			}
		}()
	}
	wg.Wait()

	// 16 workers * 31 completions each is 496; top up sequentially.
	for tracker.count() < 500 {
		tracker.recordCompletion()
	}
	assert.EqualValues(t, 500, tracker.count())
}

func TestProgressTrackerReportsEachMultipleExactlyOnce(t *testing.T) {
	out := &syncBuffer{}
	console := newConsole(out, nil)
	tracker := newProgressTracker(250, 50, console)

	var wg sync.WaitGroup
	for w := 0; w < 10; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				tracker.recordCompletion()
			}
		}()
	}
	wg.Wait()

	output := out.String()
	for _, multiple := range []int{50, 100, 150, 200, 250} {
		line := fmt.Sprintf("Files scanned: %d/250", multiple)
		assert.Equal(t, 1, strings.Count(output, line), "multiple %d reported exactly once", multiple)
	}

	lines := strings.Split(strings.TrimSpace(output), "\n")
	require.Len(t, lines, 5, "no extra or interleaved report lines")
	for _, line := range lines {
		assert.Regexp(t, `^Files scanned: \d+/250$`, line, "lines never interleave character-by-character")
	}
}

func TestProgressTrackerNoReportBelowInterval(t *testing.T) {
	out := &syncBuffer{}
	tracker := newProgressTracker(10, 50, newConsole(out, nil))
	for i := 0; i < 10; i++ {
		tracker.recordCompletion()
	}
	assert.Empty(t, out.String(), "fewer completions than the interval emit nothing")
	assert.EqualValues(t, 10, tracker.count())
}

func TestConsoleSerializesMixedStreams(t *testing.T) {
	out := &syncBuffer{}
	console := newConsole(out, out)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				console.statusf("status %d", i)
			} else {
				console.errorf("error %d", i)
			}
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 50)
	for _, line := range lines {
		assert.Regexp(t, `^(status|error) \d+$`, line)
	}
}
