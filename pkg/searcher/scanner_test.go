package searcher

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardHandler() slog.Handler {
	return slog.NewTextHandler(io.Discard, nil)
}

func newTestScanner(t *testing.T, term string, caseInsensitive bool) *lineScanner {
	t.Helper()
	opts := &Options{
		Term:               term,
		CaseInsensitive:    caseInsensitive,
		LargeFileThreshold: DefaultLargeFileThresholdMiB * 1024 * 1024,
	}
	return newLineScanner(opts, discardHandler())
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestScanCaseSensitive(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "a.txt", "hello\nTODO fix\ntodo lower\nworld\n")

	matches, err := newTestScanner(t, "TODO", false).scan(path)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, Match{Path: path, Line: 2, Text: "TODO fix"}, matches[0])
}

func TestScanCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "a.txt", "TODO upper\nToDo mixed\ntodo lower\nnothing here\n")

	matches, err := newTestScanner(t, "todo", true).scan(path)
	require.NoError(t, err)
	require.Len(t, matches, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{matches[0].Line, matches[1].Line, matches[2].Line})
}

func TestScanEmptyTermMatchesEveryLine(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "a.txt", "one\ntwo\nthree\n")

	// The empty string is a substring of every line, including blank ones.
	matches, err := newTestScanner(t, "", false).scan(path)
	require.NoError(t, err)
	assert.Len(t, matches, 3)
}

func TestScanLineNumbersAndTerminators(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "a.txt", "x\r\nhit\r\nno final newline hit")

	matches, err := newTestScanner(t, "hit", false).scan(path)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, 2, matches[0].Line, "line numbering is 1-based")
	assert.Equal(t, "hit", matches[0].Text, "CRLF terminators are stripped")
	assert.Equal(t, 3, matches[1].Line, "a last line without terminator still counts")
}

func TestScanPreservesOriginalLineText(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "a.txt", "   indented HIT trailing   \n")

	matches, err := newTestScanner(t, "hit", true).scan(path)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "   indented HIT trailing   ", matches[0].Text,
		"matching runs on the normalized copy, the record keeps the original")
}

func TestScanOversizedFileIsSkippedSilently(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "big.txt", "hit hit hit\n")

	scanner := newTestScanner(t, "hit", false)
	scanner.sizeThreshold = 4 // file is larger than this

	matches, err := scanner.scan(path)
	assert.NoError(t, err, "a skip is policy, not a failure")
	assert.Empty(t, matches, "an oversized file contributes zero matches")
}

func TestScanUnreadableFileIsSkippedSilently(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced for root")
	}
	dir := t.TempDir()
	path := writeTestFile(t, dir, "locked.txt", "hit\n")
	require.NoError(t, os.Chmod(path, 0o000))
	t.Cleanup(func() { _ = os.Chmod(path, 0o644) })

	matches, err := newTestScanner(t, "hit", false).scan(path)
	assert.NoError(t, err)
	assert.Empty(t, matches)
}

func TestScanMissingFileIsSkippedSilently(t *testing.T) {
	matches, err := newTestScanner(t, "hit", false).scan(filepath.Join(t.TempDir(), "gone.txt"))
	assert.NoError(t, err, "the readability pre-check treats a vanished file as a skip")
	assert.Empty(t, matches)
}
