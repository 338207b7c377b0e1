// Package main provides the timelyfile CLI application.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/timely-toolkit/timelyfile/pkg/fdio"
)

// catCmd represents the cat command
var catCmd = &cobra.Command{
	Use:   "cat <path|name>",
	Short: "Print a file through the cache",
	Long: `Read a file once through a cache entry and print its content.

The read follows the same path as a cached refresh: the file is read in
chunks of the size hint and the buffer grows until the whole file fits.`,
	Args: cobra.ExactArgs(1),
	RunE: runCat,
}

var catOpts fileFlags

func init() {
	rootCmd.AddCommand(catCmd)
	addFileFlags(catCmd, &catOpts)
}

func runCat(cmd *cobra.Command, args []string) error {
	f, err := openTarget(cmd, args[0], catOpts, appLog)
	if err != nil {
		return err
	}
	defer f.Close()

	content := f.Refresh()
	if content == nil {
		return fmt.Errorf("no content available for %s", f.Path())
	}
	return fdio.WriteExactly(cmd.OutOrStdout(), content)
}
