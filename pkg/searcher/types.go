package searcher

// OutputFormat defines the format for the final report printed by the CLI.
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// SkipReason names the policy under which a file was excluded from scanning.
// A skip is intentional and silent; it is never surfaced as an error.
type SkipReason string

const (
	SkipReasonUnreadable SkipReason = "unreadable"
	SkipReasonTooLarge   SkipReason = "too_large"
	SkipReasonIgnored    SkipReason = "ignored"
	SkipReasonSymlink    SkipReason = "symlink"
)
