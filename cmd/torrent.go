package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/s0up4200/qbtctl/dispatch"
	"github.com/s0up4200/qbtctl/filter"
	"github.com/s0up4200/qbtctl/qbittorrent"
)

var (
	listSort     string
	listReverse  bool
	listLimit    int
	listInterval int
	listFilter   string
	listVerbose  bool

	addPaused bool

	deleteFiles bool
	deleteYes   bool
)

var torrentCmd = &cobra.Command{
	Use:   "torrent",
	Short: "Manage torrents of the active session",
}

var torrentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List torrents",
	Long: `List the torrents of the active session.

With --interval the list is fetched again every interval until interrupted.
--filter takes an expression evaluated for each torrent, for example:

  qbtctl torrent list --filter 'Complete and Ratio >= 2'
  qbtctl torrent list --filter 'State == "StalledDL" and daysSince(Added) > 7'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sortBy := cfg.List.DefaultSort
		if cmd.Flags().Changed("sort") {
			sortBy = listSort
		}

		var f *filter.Filter
		if listFilter != "" {
			var err error
			if f, err = filter.Compile(listFilter); err != nil {
				return fmt.Errorf("%w: %w", dispatch.ErrInvalidInput, err)
			}
			logger.Debug().Str("filter", f.String()).Msg("Filtering torrents")
		}

		return dispatcher.List(cmd.Context(), dispatch.ListRequest{
			Options: qbittorrent.ListOptions{
				Sort:    sortBy,
				Reverse: listReverse,
				Limit:   listLimit,
			},
			Interval: time.Duration(listInterval) * time.Millisecond,
			Filter:   f,
			Verbose:  listVerbose,
		})
	},
}

var torrentContentCmd = &cobra.Command{
	Use:   "content <hash>",
	Short: "List the files of a torrent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return dispatcher.Content(cmd.Context(), args[0])
	},
}

var torrentAddCmd = &cobra.Command{
	Use:   "add <url-or-path>",
	Short: "Add a torrent from a url, magnet link or .torrent file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return dispatcher.Add(cmd.Context(), args[0], addPaused)
	},
}

var torrentDeleteCmd = &cobra.Command{
	Use:   "delete <hash>...",
	Short: "Delete torrents",
	Long: `Delete one or more torrents. A confirmation is asked for unless --yes is given;
the default answer is no.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dispatcher.Delete(cmd.Context(), dispatch.DeleteRequest{
			Hashes:      args,
			DeleteFiles: deleteFiles,
			Confirmed:   deleteYes,
		})
	},
}

var torrentPauseCmd = &cobra.Command{
	Use:   "pause <hash>",
	Short: "Pause a torrent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return dispatcher.Pause(cmd.Context(), args[0])
	},
}

var torrentResumeCmd = &cobra.Command{
	Use:   "resume <hash>",
	Short: "Resume a torrent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return dispatcher.Resume(cmd.Context(), args[0])
	},
}

var torrentRecheckCmd = &cobra.Command{
	Use:   "recheck <hash>",
	Short: "Recheck the data of a torrent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return dispatcher.Recheck(cmd.Context(), args[0])
	},
}

var torrentReannounceCmd = &cobra.Command{
	Use:   "reannounce <hash>",
	Short: "Reannounce a torrent to its trackers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return dispatcher.Reannounce(cmd.Context(), args[0])
	},
}

func init() {
	torrentListCmd.Flags().StringVarP(&listSort, "sort", "s", "", "sort by one of: "+strings.Join(qbittorrent.SortFields, ", ")+" (default from settings)")
	torrentListCmd.Flags().BoolVarP(&listReverse, "reverse", "r", false, "reverse the sort order")
	torrentListCmd.Flags().IntVarP(&listLimit, "limit", "l", 0, "show at most this many torrents")
	torrentListCmd.Flags().IntVarP(&listInterval, "interval", "i", 0, "refresh every interval milliseconds")
	torrentListCmd.Flags().StringVarP(&listFilter, "filter", "f", "", "filter expression")
	torrentListCmd.Flags().BoolVarP(&listVerbose, "verbose", "v", false, "show the long state description")

	torrentAddCmd.Flags().BoolVar(&addPaused, "pause", false, "add the torrent paused")

	torrentDeleteCmd.Flags().BoolVar(&deleteFiles, "delete-files", false, "also delete the downloaded files")
	torrentDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip the confirmation prompt")

	torrentCmd.AddCommand(
		torrentListCmd,
		torrentContentCmd,
		torrentAddCmd,
		torrentDeleteCmd,
		torrentPauseCmd,
		torrentResumeCmd,
		torrentRecheckCmd,
		torrentReannounceCmd,
	)
	rootCmd.AddCommand(torrentCmd)
}
