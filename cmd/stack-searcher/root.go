package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/stackvity/stack-searcher/internal/cli"
	"github.com/stackvity/stack-searcher/internal/cli/config"
	"github.com/stackvity/stack-searcher/pkg/searcher"
	"golang.org/x/term"
)

var (
	// These are set during build time using -ldflags
	version = "dev"
	commit  = "none"
	date    = "unknown"

	cfgFile string
	verbose bool
	noTui   bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "stack-searcher <root-directory> <keyword> [threads]",
	Short: "Searches text files beneath a directory for a keyword.",
	Long: `stack-searcher recursively scans every regular file beneath a root
directory and reports each line containing the given keyword, using a pool
of parallel workers.

It features:
  - Parallel scanning with a configurable worker count.
  - Deterministic output ordering regardless of concurrency.
  - Silent skipping of unreadable and oversized files.
  - Text, JSON, and YAML report formats.
  - An interactive Terminal UI (TUI) for monitoring progress.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	Args:    cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Create a context that listens for interrupt signals.
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		opts, logger, err := config.LoadAndValidate(cfgFile, verbose, cmd.Flags(), args)
		if err != nil {
			// LoadAndValidate already logged the specific problem; returning
			// the error lets cobra print it and exit non-zero.
			return err
		}

		// The TUI only makes sense when a human is watching and the final
		// report goes to the terminal as text.
		opts.TuiEnabled = !noTui && !verbose &&
			opts.OutputFormat == searcher.OutputFormatText &&
			term.IsTerminal(int(os.Stdout.Fd()))

		return cli.Run(ctx, opts, logger)
	},
}

// Execute runs the root command. Cobra prints any returned error and the
// process exits non-zero.
func Execute() {
	rootCmd.SetVersionTemplate(`{{.Use}} version {{.Version}}` + "\n")
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Configuration file path (default is search standard locations like ., $HOME/.config/stack-searcher/)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose (debug) logging output (disables TUI)")

	rootCmd.Flags().BoolVar(&noTui, "no-tui", false, "Disable interactive Terminal UI even if in a TTY")

	// Flag names align with the Viper keys bound in internal/cli/config.
	rootCmd.Flags().IntP("threads", "t", searcher.DefaultConcurrency, "Number of parallel scan workers (0 for auto-detect CPU cores)")
	rootCmd.Flags().BoolP("case-insensitive", "c", false, "Match the keyword ignoring case")
	rootCmd.Flags().StringArray("ignore", []string{}, "Glob patterns for files/directories to skip (can be specified multiple times)")
	rootCmd.Flags().Int64("large-file-threshold", searcher.DefaultLargeFileThresholdMiB, "Skip files larger than this many MiB")
	rootCmd.Flags().String("default-encoding", "", "Fallback text encoding for files without a detectable one (e.g. \"windows-1252\")")
	rootCmd.Flags().Int("progress-interval", searcher.DefaultProgressInterval, "Print a progress line every N scanned files (0 disables)")
	rootCmd.Flags().String("output-format", string(searcher.DefaultOutputFormat), `Final report format ("text", "json", "yaml")`)
	rootCmd.Flags().Int("max-results", searcher.DefaultMaxDisplayResults, "Maximum match lines printed in text output (full data stays in the report)")
}
