// Package main provides the timelyfile CLI application.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/timely-toolkit/timelyfile/pkg/config"
	"github.com/timely-toolkit/timelyfile/pkg/timely"
)

// snapshotCmd represents the snapshot command
var snapshotCmd = &cobra.Command{
	Use:   "snapshot [name...]",
	Short: "Read every configured file once",
	Long: `Read the files listed in the config file concurrently and print the
size of each. Names restrict the snapshot to those entries. Files that cannot
be read are reported as unavailable and make the command fail.`,
	RunE: runSnapshot,
}

// snapshotFlags holds the flags for the snapshot command
type snapshotFlags struct {
	workers int
}

var snapshotOpts snapshotFlags

func init() {
	rootCmd.AddCommand(snapshotCmd)
	snapshotCmd.Flags().IntVarP(&snapshotOpts.workers, "workers", "w", 4, "maximum concurrent reads")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	entries, err := selectEntries(appConfig.Resolved(), args)
	if err != nil {
		return err
	}

	set, err := timely.NewSet(entries, timely.WithLogger(appLog))
	if err != nil {
		return err
	}
	defer set.Close()

	content, err := set.RefreshConcurrent(cmd.Context(), snapshotOpts.workers)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	unavailable := 0
	for _, name := range set.Names() {
		c, ok := content[name]
		if !ok || c == nil {
			unavailable++
			fmt.Fprintf(out, "%s\tunavailable\n", name)
			continue
		}
		fmt.Fprintf(out, "%s\t%d bytes\n", name, len(c))
	}
	if unavailable > 0 {
		return fmt.Errorf("%d of %d files unavailable", unavailable, set.Len())
	}
	return nil
}

// selectEntries keeps the named entries, or all of them when names is empty.
func selectEntries(entries []config.FileConfig, names []string) ([]config.FileConfig, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("no files configured")
	}
	if len(names) == 0 {
		return entries, nil
	}

	byName := make(map[string]config.FileConfig, len(entries))
	for _, e := range entries {
		byName[e.Name] = e
	}
	selected := make([]config.FileConfig, 0, len(names))
	for _, name := range names {
		e, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("no configured file named %q", name)
		}
		selected = append(selected, e)
	}
	return selected, nil
}
