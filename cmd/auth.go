package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/s0up4200/qbtctl/dispatch"
)

var (
	authPassword   string
	authNoActivate bool
	showSecrets    bool
	checkSessions  bool
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage stored sessions",
}

var authAddCmd = &cobra.Command{
	Use:   "add <url> <username>",
	Short: "Log in to a qBittorrent instance and store the session",
	Long: `Log in to a qBittorrent Web UI and store the session cookie.

The new session becomes the active one unless --no-activate is given and
another session is already active. The password is prompted for when
--password is not set.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		password := authPassword
		if !cmd.Flags().Changed("password") {
			var err error
			if password, err = readPassword(cmd, args[1]); err != nil {
				return err
			}
		}

		return dispatcher.AuthAdd(cmd.Context(), dispatch.AuthAddRequest{
			URL:      args[0],
			Username: args[1],
			Password: password,
			Activate: !authNoActivate,
		})
	},
}

var authRemoveCmd = &cobra.Command{
	Use:   "remove <url>",
	Short: "Forget a stored session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return dispatcher.AuthRemove(args[0])
	},
}

var authActivateCmd = &cobra.Command{
	Use:     "activate <url>",
	Aliases: []string{"set-default"},
	Short:   "Select the session used by torrent and global commands",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return dispatcher.AuthActivate(args[0])
	},
}

var authListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored sessions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dispatcher.AuthList(cmd.Context(), dispatch.AuthListRequest{
			ShowSecrets: showSecrets,
			Check:       checkSessions,
		})
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout <url>",
	Short: "Log out of a qBittorrent instance and forget the session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return dispatcher.AuthLogout(cmd.Context(), args[0])
	},
}

func init() {
	authAddCmd.Flags().StringVarP(&authPassword, "password", "p", "", "password (prompted for when omitted)")
	authAddCmd.Flags().BoolVar(&authNoActivate, "no-activate", false, "keep the current active session")
	authListCmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "print stored tokens instead of redacting them")
	authListCmd.Flags().BoolVar(&checkSessions, "check", false, "check whether each stored session is still accepted")

	authCmd.AddCommand(authAddCmd, authRemoveCmd, authActivateCmd, authListCmd, authLogoutCmd)
	rootCmd.AddCommand(authCmd)
}

// readPassword prompts without echo on a terminal and reads one line otherwise.
func readPassword(cmd *cobra.Command, username string) (string, error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Please provide the password for user %s: ", username)

	fd := os.Stdin.Fd()
	if isatty.IsTerminal(fd) {
		b, err := term.ReadPassword(int(fd))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
