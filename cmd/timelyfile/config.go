// Package main provides the timelyfile CLI application.
package main

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/timely-toolkit/timelyfile/pkg/config"
	"github.com/timely-toolkit/timelyfile/pkg/fdio"
	"gopkg.in/yaml.v3"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after defaults, the config file and
TIMELYFILE_* environment overrides have been applied. File entries are shown
with their defaults filled in. Active environment overrides are listed as
trailing comments.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		effective := *appConfig
		effective.Files = appConfig.Resolved()

		data, err := yaml.Marshal(&effective)
		if err != nil {
			return err
		}

		buf := bytes.NewBuffer(data)
		env := config.GetEnvConfig()
		keys := make([]string, 0, len(env))
		for k := range env {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(buf, "# %s=%s\n", k, env[k])
		}
		return fdio.WriteExactly(cmd.OutOrStdout(), buf.Bytes())
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
