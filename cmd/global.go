package cmd

import (
	"github.com/spf13/cobra"
)

var altSpeedToggle bool

var globalCmd = &cobra.Command{
	Use:   "global",
	Short: "Application wide commands for the active session",
}

var globalShutdownCmd = &cobra.Command{
	Use:   "shutdown",
	Short: "Shut down qBittorrent",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dispatcher.Shutdown(cmd.Context())
	},
}

var globalVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the qBittorrent version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dispatcher.Version(cmd.Context())
	},
}

var globalLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Print the qBittorrent main log",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dispatcher.Log(cmd.Context())
	},
}

var globalAltSpeedCmd = &cobra.Command{
	Use:   "alt-speed",
	Short: "Show or toggle the alternative speed limits",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dispatcher.AltSpeed(cmd.Context(), altSpeedToggle)
	},
}

func init() {
	globalAltSpeedCmd.Flags().BoolVarP(&altSpeedToggle, "toggle", "t", false, "toggle the alternative speed limits")

	globalCmd.AddCommand(globalShutdownCmd, globalVersionCmd, globalLogCmd, globalAltSpeedCmd)
	rootCmd.AddCommand(globalCmd)
}
