// Package main provides the timelyfile CLI application.
package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/timely-toolkit/timelyfile/pkg/scan"
)

// fieldsCmd represents the fields command
var fieldsCmd = &cobra.Command{
	Use:   "fields <path|name>",
	Short: "Split cached content into whitespace-delimited tokens",
	Long: `Read a file through the cache and print its tokens, one per line,
prefixed with the line and token index. Use --line to restrict output to a
single line, as when picking the "cpu" row out of /proc/stat.`,
	Args: cobra.ExactArgs(1),
	RunE: runFields,
}

// fieldsFlags holds the flags for the fields command
type fieldsFlags struct {
	fileFlags
	line int
}

var fieldsOpts fieldsFlags

func init() {
	rootCmd.AddCommand(fieldsCmd)
	addFileFlags(fieldsCmd, &fieldsOpts.fileFlags)
	fieldsCmd.Flags().IntVarP(&fieldsOpts.line, "line", "l", -1, "only print tokens of this line (zero based)")
}

func runFields(cmd *cobra.Command, args []string) error {
	f, err := openTarget(cmd, args[0], fieldsOpts.fileFlags, appLog)
	if err != nil {
		return err
	}
	defer f.Close()

	if f.Refresh() == nil {
		return fmt.Errorf("no content available for %s", f.Path())
	}
	// the terminated view lets the scanners stop at the NUL byte
	content := f.Terminated()
	out := cmd.OutOrStdout()

	if fieldsOpts.line >= 0 {
		line, ok := scan.Line(content, fieldsOpts.line)
		if !ok {
			return fmt.Errorf("%s has no line %d", f.Path(), fieldsOpts.line)
		}
		printTokens(out, fieldsOpts.line, line)
		return nil
	}

	for n := 0; ; n++ {
		line, ok := scan.Line(content, n)
		if !ok {
			return nil
		}
		printTokens(out, n, line)
	}
}

func printTokens(out io.Writer, lineNo int, line []byte) {
	for i, pos := 0, 0; ; i++ {
		tok, next := scan.NextToken(line, pos)
		if tok == nil {
			return
		}
		fmt.Fprintf(out, "%d:%d\t%s\n", lineNo, i, tok)
		pos = next
	}
}
