// Package config assembles a searcher.Options value from defaults, an
// optional YAML config file, STACKSEARCHER_* environment variables, and
// command-line flags, in that precedence order.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/stackvity/stack-searcher/pkg/searcher"
)

const (
	// EnvPrefix is the prefix for environment variable overrides, e.g.
	// STACKSEARCHER_THREADS=8.
	EnvPrefix = "STACKSEARCHER"

	// DefaultConfigName is the config file base name searched in the working
	// directory and $HOME/.config/stack-searcher/.
	DefaultConfigName = "stack-searcher"
)

// LoadAndValidate merges all configuration sources, applies the positional
// arguments (<root-directory> <keyword> [threads]), validates the result, and
// builds the application logger.
func LoadAndValidate(cfgFile string, verbose bool, flags *pflag.FlagSet, args []string) (searcher.Options, *slog.Logger, error) {
	var opts searcher.Options

	logLevel := slog.LevelWarn
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})
	logger := slog.New(handler)

	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return opts, logger, fmt.Errorf("resolving home directory: %w", err)
		}
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(home + "/.config/" + DefaultConfigName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && cfgFile == "" {
			logger.Debug("No configuration file found, using defaults/env/flags")
		} else {
			return opts, logger, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		logger.Debug("Using configuration file", slog.String("path", v.ConfigFileUsed()))
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return opts, logger, err
		}
	}

	if err := v.Unmarshal(&opts); err != nil {
		return opts, logger, fmt.Errorf("unmarshalling configuration: %w", err)
	}

	// Positional arguments take precedence over everything else.
	if len(args) > 0 {
		opts.RootPath = args[0]
	}
	if len(args) > 1 {
		opts.Term = args[1]
	}
	if len(args) > 2 {
		threads, err := strconv.Atoi(args[2])
		if err != nil {
			return opts, logger, fmt.Errorf("%w: invalid thread count %q: %w", searcher.ErrConfigValidation, args[2], err)
		}
		opts.Concurrency = threads
	}

	// Host parallelism is the CLI default; the engine only coerces the
	// never-zero-workers floor.
	if opts.Concurrency == 0 {
		opts.Concurrency = runtime.NumCPU()
	}

	switch opts.OutputFormat {
	case "", searcher.OutputFormatText:
		opts.OutputFormat = searcher.OutputFormatText
	case searcher.OutputFormatJSON, searcher.OutputFormatYAML:
	default:
		return opts, logger, fmt.Errorf("%w: invalid output format %q (want text, json, or yaml)", searcher.ErrConfigValidation, opts.OutputFormat)
	}

	if opts.MaxDisplayResults <= 0 {
		opts.MaxDisplayResults = searcher.DefaultMaxDisplayResults
	}

	opts.Verbose = verbose
	opts.Logger = handler
	return opts, logger, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("threads", searcher.DefaultConcurrency)
	v.SetDefault("caseInsensitive", false)
	v.SetDefault("largeFileThresholdMiB", searcher.DefaultLargeFileThresholdMiB)
	v.SetDefault("defaultEncoding", "")
	v.SetDefault("ignore", []string{})
	v.SetDefault("progressInterval", searcher.DefaultProgressInterval)
	v.SetDefault("outputFormat", string(searcher.DefaultOutputFormat))
	v.SetDefault("maxResults", searcher.DefaultMaxDisplayResults)
}

// bindFlags maps flag names onto viper keys; flags win over env and file.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	bindings := map[string]string{
		"threads":               "threads",
		"caseInsensitive":       "case-insensitive",
		"largeFileThresholdMiB": "large-file-threshold",
		"defaultEncoding":       "default-encoding",
		"ignore":                "ignore",
		"progressInterval":      "progress-interval",
		"outputFormat":          "output-format",
		"maxResults":            "max-results",
	}
	for key, flagName := range bindings {
		flag := flags.Lookup(flagName)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("binding flag %q: %w", flagName, err)
		}
	}
	return nil
}
