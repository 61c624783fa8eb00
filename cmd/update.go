package cmd

import (
	"fmt"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

const repoSlug = "s0up4200/qbtctl"

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update qbtctl",
	Long:  `Update qbtctl to the latest release.`,
	Args:  cobra.NoArgs,

	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := semver.ParseTolerant(version); err != nil {
			return fmt.Errorf("cannot update a development build (version %q)", version)
		}

		release, err := selfupdate.UpdateSelf(cmd.Context(), version, selfupdate.ParseSlug(repoSlug))
		if err != nil {
			return fmt.Errorf("could not update binary: %w", err)
		}

		if release.Equal(version) {
			fmt.Fprintf(cmd.OutOrStdout(), "Already up to date: %s\n", version)
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Successfully updated to version: %s\n", release.Version())
		return nil
	},
}

func init() {
	updateCmd.SetUsageTemplate(`Usage:
  {{.CommandPath}}
  
Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}
`)

	rootCmd.AddCommand(updateCmd)
}
