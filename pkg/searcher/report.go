package searcher

import (
	"fmt"
	"time"
)

// Report is the complete result of one search run. Matches is sorted by
// (path, line); Errors lists per-file failures that did not stop the run.
type Report struct {
	Summary ReportSummary `json:"summary" yaml:"summary"`
	Matches []Match       `json:"matches" yaml:"matches"`
	Errors  []ScanError   `json:"errors" yaml:"errors"`
}

// ReportSummary carries the aggregated statistics of a run.
type ReportSummary struct {
	RootPath        string    `json:"rootPath" yaml:"rootPath"`
	Term            string    `json:"term" yaml:"term"`
	CaseInsensitive bool      `json:"caseInsensitive" yaml:"caseInsensitive"`
	Concurrency     int       `json:"concurrency" yaml:"concurrency"`
	TotalFiles      int       `json:"totalFiles" yaml:"totalFiles"`
	ScannedFiles    int       `json:"scannedFiles" yaml:"scannedFiles"`
	MatchCount      int       `json:"matchCount" yaml:"matchCount"`
	ErrorCount      int       `json:"errorCount" yaml:"errorCount"`
	ForcedShutdown  bool      `json:"forcedShutdown" yaml:"forcedShutdown"`
	DurationSeconds float64   `json:"durationSeconds" yaml:"durationSeconds"`
	Timestamp       time.Time `json:"timestamp" yaml:"timestamp"`
}

// ScanError describes a single file whose read failed after passing the skip
// pre-checks. It never invalidates other files' outcomes and never appears in
// Matches.
type ScanError struct {
	Path  string `json:"path" yaml:"path"`
	Cause string `json:"error" yaml:"error"`
}

func (e ScanError) String() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Cause)
}
