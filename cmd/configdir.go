package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configDirCmd = &cobra.Command{
	Use:   "config-dir",
	Short: "Print the config directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintf(cmd.OutOrStdout(), "Config dir at: %s\n", cfgDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configDirCmd)
}
