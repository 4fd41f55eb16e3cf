package searcher

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/stackvity/stack-searcher/pkg/searcher/encoding"
)

// lineScanner scans a single file for lines containing the search term.
// Instances are shared by all workers and hold no per-file state, so scan may
// be called concurrently.
type lineScanner struct {
	term            string // already lowercased when caseInsensitive
	caseInsensitive bool
	sizeThreshold   int64
	decoder         encoding.TextDecoder
	logger          *slog.Logger
}

func newLineScanner(opts *Options, handler slog.Handler) *lineScanner {
	term := opts.Term
	if opts.CaseInsensitive {
		term = strings.ToLower(term)
	}
	decoder := opts.Decoder
	if decoder == nil {
		decoder = encoding.NewCharsetDecoder(opts.DefaultEncoding)
	}
	return &lineScanner{
		term:            term,
		caseInsensitive: opts.CaseInsensitive,
		sizeThreshold:   opts.LargeFileThreshold,
		decoder:         decoder,
		logger:          slog.New(handler).With(slog.String("component", "scanner")),
	}
}

// scan returns the matches found in the file at path.
//
// Two silent skip predicates run before any reading, in order: a file that
// cannot be opened is skipped, then a file whose size exceeds the threshold
// is skipped. Both produce zero matches and a nil error; they are policy, not
// failures, and a stat failure inside the pre-check is swallowed the same
// way. Only an I/O error after the pre-checks is returned, and then together
// with the matches gathered before it.
func (s *lineScanner) scan(path string) ([]Match, error) {
	file, err := os.Open(path)
	if err != nil {
		s.logger.Debug("Skipping unreadable file", slog.String("path", path), slog.String("reason", string(SkipReasonUnreadable)))
		return nil, nil
	}
	defer file.Close()

	if info, statErr := file.Stat(); statErr == nil && info.Size() > s.sizeThreshold {
		s.logger.Debug("Skipping oversized file",
			slog.String("path", path),
			slog.Int64("sizeBytes", info.Size()),
			slog.String("reason", string(SkipReasonTooLarge)))
		return nil, nil
	}

	reader := bufio.NewReaderSize(s.decoder.Reader(file), 64*1024)
	var matches []Match
	lineNo := 0
	for {
		line, readErr := reader.ReadString('\n')
		if len(line) > 0 {
			lineNo++
			text := strings.TrimSuffix(line, "\n")
			text = strings.TrimSuffix(text, "\r")
			if s.matchesLine(text) {
				matches = append(matches, Match{Path: path, Line: lineNo, Text: text})
			}
		}
		if readErr == io.EOF {
			return matches, nil
		}
		if readErr != nil {
			return matches, fmt.Errorf("%w: %s: %w", ErrReadFailed, path, readErr)
		}
	}
}

// matchesLine applies plain substring containment. In case-insensitive mode
// the line is lowercased and compared against the already-lowercased term. An
// empty term matches every line.
func (s *lineScanner) matchesLine(line string) bool {
	if s.caseInsensitive {
		return strings.Contains(strings.ToLower(line), s.term)
	}
	return strings.Contains(line, s.term)
}
