// Package main provides the timelyfile CLI application.
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/timely-toolkit/timelyfile/pkg/fdio"
	"github.com/timely-toolkit/timelyfile/pkg/observability"
	"golang.org/x/term"
)

// pollCmd represents the poll command
var pollCmd = &cobra.Command{
	Use:   "poll <path|name>",
	Short: "Poll a file and show when the cache refreshes",
	Long: `Call refresh on a cached file at a fixed interval.

Each tick prints the number of cached bytes and whether the file was read
or served from the cache. Reads only happen once the threshold has elapsed
since the last successful read; failed reads keep serving the last content.`,
	Args: cobra.ExactArgs(1),
	RunE: runPoll,
}

// pollFlags holds the flags for the poll command
type pollFlags struct {
	fileFlags
	interval    time.Duration
	count       int
	showContent bool
}

var pollOpts pollFlags

var stateColors = map[string]*color.Color{
	"read":  color.New(color.FgGreen),
	"stale": color.New(color.FgYellow, color.Bold),
}

func init() {
	rootCmd.AddCommand(pollCmd)
	addFileFlags(pollCmd, &pollOpts.fileFlags)
	pollCmd.Flags().DurationVarP(&pollOpts.interval, "interval", "i", 250*time.Millisecond, "time between polls")
	pollCmd.Flags().IntVarP(&pollOpts.count, "count", "n", 5, "number of polls (0 polls until interrupted)")
	pollCmd.Flags().BoolVar(&pollOpts.showContent, "show-content", false, "print the content after each poll")
}

func runPoll(cmd *cobra.Command, args []string) error {
	if pollOpts.interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", pollOpts.interval)
	}

	runID := uuid.New().String()
	log := appLog.With(observability.String("run_id", runID))

	f, err := openTarget(cmd, args[0], pollOpts.fileFlags, log)
	if err != nil {
		return err
	}
	defer f.Close()

	log.Info("polling",
		observability.String("path", f.Path()),
		observability.Duration("threshold", f.Threshold()),
		observability.Duration("interval", pollOpts.interval))

	out := cmd.OutOrStdout()
	ticker := time.NewTicker(pollOpts.interval)
	defer ticker.Stop()

	for i := 1; pollOpts.count == 0 || i <= pollOpts.count; i++ {
		before := f.Stats()
		content := f.Refresh()
		after := f.Stats()

		state := "cached"
		switch {
		case after.Refreshes > before.Refreshes:
			state = "read"
		case after.Failures > before.Failures:
			state = "stale"
		}
		fmt.Fprintf(out, "%d\t%s\t%d bytes\n", i, stateLabel(out, state), len(content))
		if pollOpts.showContent && content != nil {
			if err := fdio.WriteExactly(out, content); err != nil {
				return err
			}
		}

		if pollOpts.count != 0 && i == pollOpts.count {
			break
		}
		select {
		case <-cmd.Context().Done():
			return nil
		case <-ticker.C:
		}
	}

	stats := f.Stats()
	log.Info("poll finished",
		observability.Int("refreshes", stats.Refreshes),
		observability.Int("failures", stats.Failures),
		observability.Int("skipped", stats.Skipped),
		observability.Int("overflows", stats.Overflows))
	return nil
}

// stateLabel colors state when out is a terminal.
func stateLabel(out io.Writer, state string) string {
	f, ok := out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return state
	}
	if c, ok := stateColors[state]; ok {
		return c.Sprint(state)
	}
	return state
}
