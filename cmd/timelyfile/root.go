// Package main provides the timelyfile CLI application.
package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/timely-toolkit/timelyfile/pkg/config"
	"github.com/timely-toolkit/timelyfile/pkg/observability"
	"github.com/timely-toolkit/timelyfile/pkg/timely"
	"github.com/timely-toolkit/timelyfile/pkg/version"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "timelyfile",
	Short: "Time-gated file content cache",
	Long: `timelyfile reads files through an in-memory cache that is refreshed
only after a minimum interval has passed since the last successful read.

It is meant for pseudo-files under /proc and /sys that are polled far more
often than their content changes. Files can be named on the command line by
path or by the name given to them in the config file.`,
	Version:           version.FullString(),
	SilenceUsage:      true,
	PersistentPreRunE: loadRuntime,
}

// rootFlags holds the persistent flags
type rootFlags struct {
	config    string
	logLevel  string
	logFormat string
}

// fileFlags overrides per-file settings for commands that read a file
type fileFlags struct {
	hint      int
	threshold time.Duration
}

var (
	rootOpts rootFlags

	appConfig *config.Config
	appLog    observability.Logger
)

// Execute adds all child commands to the root command and runs it.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootOpts.config, "config", "c", "", "config file (default: ./.timelyfile.yaml, then $HOME/.config/timelyfile/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&rootOpts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&rootOpts.logFormat, "log-format", "", "log format: text, json")
}

// loadRuntime loads configuration and builds the logger before any subcommand runs.
func loadRuntime(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewLoader().WithPath(rootOpts.config).Load()
	if err != nil {
		return err
	}
	if rootOpts.logLevel != "" {
		cfg.Global.LogLevel = rootOpts.logLevel
	}
	if rootOpts.logFormat != "" {
		cfg.Global.LogFormat = rootOpts.logFormat
	}
	if errs := config.NewValidator().ValidateGlobal(&cfg.Global); len(errs) > 0 {
		return errs
	}

	appConfig = cfg
	appLog = observability.NewLoggerWithOptions(observability.Options{
		Level:  cfg.Global.LogLevel,
		Format: cfg.Global.LogFormat,
		Output: cmd.ErrOrStderr(),
	})
	return nil
}

// addFileFlags registers the per-file override flags on cmd.
func addFileFlags(cmd *cobra.Command, opts *fileFlags) {
	cmd.Flags().IntVar(&opts.hint, "hint", 0, "initial buffer size in bytes (default from config)")
	cmd.Flags().DurationVar(&opts.threshold, "threshold", 0, "minimum interval between refreshes (default from config)")
}

// resolveTarget turns a configured file name or a path into a file entry,
// applying config defaults and then any flag set on cmd.
func resolveTarget(cmd *cobra.Command, target string, opts fileFlags) config.FileConfig {
	entry, ok := appConfig.File(target)
	if !ok {
		entry = config.FileConfig{Name: target, Path: target}
	}
	if cmd.Flags().Changed("hint") {
		entry.SizeHint = opts.hint
	}
	if cmd.Flags().Changed("threshold") {
		entry.Threshold = config.Every(opts.threshold)
	}
	resolved := *appConfig
	resolved.Files = []config.FileConfig{entry}
	return resolved.Resolved()[0]
}

// openTarget builds a cached File for target.
func openTarget(cmd *cobra.Command, target string, opts fileFlags, log observability.Logger) (*timely.File, error) {
	entry := resolveTarget(cmd, target, opts)
	return timely.New(entry.Path, entry.SizeHint, entry.ThresholdValue(), timely.WithLogger(log))
}
