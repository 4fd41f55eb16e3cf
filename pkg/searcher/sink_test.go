package searcher

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultSinkConcurrentAppend(t *testing.T) {
	sink := newResultSink()

	const workers = 32
	const perWorker = 100
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				sink.appendMatches([]Match{{
					Path: fmt.Sprintf("file-%d.txt", w),
					Line: i + 1,
					Text: "hit",
				}})
			}
		}(w)
	}
	wg.Wait()

	matches, errs := sink.drain()
	assert.Len(t, matches, workers*perWorker, "no appends may be lost")
	assert.Empty(t, errs)
}

func TestResultSinkKeepsDuplicates(t *testing.T) {
	sink := newResultSink()
	record := Match{Path: "a.txt", Line: 1, Text: "same"}
	sink.appendMatches([]Match{record})
	sink.appendMatches([]Match{record})

	matches, _ := sink.drain()
	assert.Len(t, matches, 2, "identical records from two appends stay two entries")
}

func TestResultSinkConcurrentErrors(t *testing.T) {
	sink := newResultSink()

	var wg sync.WaitGroup
	for w := 0; w < 16; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			sink.appendError(ScanError{Path: fmt.Sprintf("f%d", w), Cause: "read failed"})
		}(w)
	}
	wg.Wait()

	_, errs := sink.drain()
	assert.Len(t, errs, 16)
}
