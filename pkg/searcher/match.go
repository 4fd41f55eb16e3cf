package searcher

import (
	"fmt"
	"sort"
	"strings"
)

// Match is one matching line: the file it was found in, its 1-based line
// number, and the raw, untrimmed line text. Values are created once by a scan
// task and never mutated afterwards.
type Match struct {
	Path string `json:"path" yaml:"path"`
	Line int    `json:"line" yaml:"line"`
	Text string `json:"text" yaml:"text"`
}

// String renders the match in the presentation format
// "<path>:<line>: <trimmed text>". Whitespace is trimmed for display only;
// Text keeps the original line.
func (m Match) String() string {
	return fmt.Sprintf("%s:%d: %s", m.Path, m.Line, strings.TrimSpace(m.Text))
}

// SortMatches orders matches by file path (lexicographic over the full path
// string) and then by line number ascending. The sort is stable, so records
// that are equal on both keys keep their insertion order. Applying it to an
// already sorted slice is a no-op.
func SortMatches(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Path != matches[j].Path {
			return matches[i].Path < matches[j].Path
		}
		return matches[i].Line < matches[j].Line
	})
}
