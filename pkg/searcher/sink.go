package searcher

import "sync"

// resultSink is the append-only collection point for concurrent scan tasks.
// Appends from any number of workers are safe without caller-side locking;
// nothing is reordered or deduplicated. drain is called exactly once, after
// the pool has been joined, and returns the complete unordered multiset.
type resultSink struct {
	mu      sync.Mutex
	matches []Match
	errors  []ScanError
}

func newResultSink() *resultSink {
	return &resultSink{
		matches: make([]Match, 0, 256),
		errors:  make([]ScanError, 0, 16),
	}
}

func (s *resultSink) appendMatches(matches []Match) {
	s.mu.Lock()
	s.matches = append(s.matches, matches...)
	s.mu.Unlock()
}

func (s *resultSink) appendError(scanErr ScanError) {
	s.mu.Lock()
	s.errors = append(s.errors, scanErr)
	s.mu.Unlock()
}

// drain returns copies of the accumulated matches and errors. Taking the lock
// here guards against abandoned workers still appending after a forced
// shutdown; entries appended before the drain remain valid.
func (s *resultSink) drain() ([]Match, []ScanError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	matches := make([]Match, len(s.matches))
	copy(matches, s.matches)
	errs := make([]ScanError, len(s.errors))
	copy(errs, s.errors)
	return matches, errs
}
