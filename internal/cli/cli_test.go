package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/stackvity/stack-searcher/internal/cli"
	"github.com/stackvity/stack-searcher/pkg/searcher"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// createTestTree writes the given relative-path -> content map under a fresh
// temp directory and returns its root.
func createTestTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func baseOpts(root, term string, out, errOut io.Writer) searcher.Options {
	return searcher.Options{
		RootPath:          root,
		Term:              term,
		Concurrency:       2,
		OutputFormat:      searcher.OutputFormatText,
		MaxDisplayResults: searcher.DefaultMaxDisplayResults,
		StatusOut:         out,
		ErrOut:            errOut,
		EventHooks:        &searcher.NoOpHooks{},
	}
}

func TestRunPrintsBannerAndMatches(t *testing.T) {
	root := createTestTree(t, map[string]string{
		"a.txt": "TODO first\nnothing\nTODO second\n",
		"b.txt": "also TODO here\n",
	})
	var out, errOut bytes.Buffer
	opts := baseOpts(root, "TODO", &out, &errOut)

	require.NoError(t, cli.Run(context.Background(), opts, discardLogger()))

	text := out.String()
	assert.Contains(t, text, "Starting search")
	assert.Contains(t, text, "Keyword: 'TODO' (case-insensitive=false)")
	assert.Contains(t, text, "Threads: 2")
	assert.Contains(t, text, "Files to scan: 2")
	assert.Contains(t, text, "Total matches: 3")
	assert.Contains(t, text, filepath.Join(root, "a.txt")+":1: TODO first")
	assert.Contains(t, text, filepath.Join(root, "a.txt")+":3: TODO second")
	assert.Contains(t, text, filepath.Join(root, "b.txt")+":1: also TODO here")

	// Path ordering holds in the rendered output too.
	aIdx := strings.Index(text, filepath.Join(root, "a.txt")+":1:")
	bIdx := strings.Index(text, filepath.Join(root, "b.txt")+":1:")
	assert.Less(t, aIdx, bIdx)
}

func TestRunTruncatesTextOutput(t *testing.T) {
	root := createTestTree(t, map[string]string{
		"many.txt": strings.Repeat("hit line\n", 5),
	})
	var out, errOut bytes.Buffer
	opts := baseOpts(root, "hit", &out, &errOut)
	opts.MaxDisplayResults = 2

	require.NoError(t, cli.Run(context.Background(), opts, discardLogger()))

	text := out.String()
	assert.Contains(t, text, "Total matches: 5")
	assert.Equal(t, 2, strings.Count(text, "hit line"))
	assert.Contains(t, text, "(truncated output")
}

func TestRunJSONOutputIsClean(t *testing.T) {
	root := createTestTree(t, map[string]string{
		"a.txt": "needle\n",
	})
	var out, errOut bytes.Buffer
	opts := baseOpts(root, "needle", &out, &errOut)
	opts.OutputFormat = searcher.OutputFormatJSON

	require.NoError(t, cli.Run(context.Background(), opts, discardLogger()))

	// Stdout carries nothing but the report; chatter moved to stderr.
	var report searcher.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, 1, report.Summary.MatchCount)
	assert.Len(t, report.Matches, 1)
	assert.Equal(t, "needle", report.Summary.Term)

	assert.Contains(t, errOut.String(), "Starting search")
	assert.Contains(t, errOut.String(), "Files to scan: 1")
}

func TestRunYAMLOutput(t *testing.T) {
	root := createTestTree(t, map[string]string{
		"a.txt": "needle\n",
	})
	var out, errOut bytes.Buffer
	opts := baseOpts(root, "needle", &out, &errOut)
	opts.OutputFormat = searcher.OutputFormatYAML

	require.NoError(t, cli.Run(context.Background(), opts, discardLogger()))

	var report searcher.Report
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, 1, report.Summary.MatchCount)
	require.Len(t, report.Matches, 1)
	assert.Equal(t, 1, report.Matches[0].Line)
}

func TestRunRootNotDirectoryIsNonFatal(t *testing.T) {
	root := createTestTree(t, map[string]string{"plain.txt": "x\n"})
	var out, errOut bytes.Buffer
	opts := baseOpts(filepath.Join(root, "plain.txt"), "x", &out, &errOut)

	require.NoError(t, cli.Run(context.Background(), opts, discardLogger()))

	assert.Contains(t, errOut.String(), "Provided root is not a directory")
	assert.Contains(t, out.String(), "Total matches: 0")
}
