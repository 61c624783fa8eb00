package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/qbtctl/config"
	"github.com/s0up4200/qbtctl/dispatch"
	"github.com/s0up4200/qbtctl/qbittorrent"
	"github.com/s0up4200/qbtctl/session"
)

var (
	version   = "dev"
	buildTime = "unknown"

	cfgDir     string
	cfg        *config.Config
	logger     = zerolog.Nop()
	logFile    io.Closer
	store      *session.Store
	dispatcher *dispatch.Dispatcher
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "qbtctl",
	Short: "Control qBittorrent instances from the command line",
	Long: `qbtctl manages authenticated sessions for one or more qBittorrent Web UI
instances and sends commands to the active one: list, add, pause, resume,
delete, recheck and reannounce torrents, and query or change global settings.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initializeApp,
}

// SetVersion sets the version reported by the binary and used for updates.
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = fmt.Sprintf("%s (built %s)", v, bt)
}

// Execute runs the command line, persists the credential store on every
// exit path and exits with the command's exit code.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	os.Exit(finish(err))
}

// finish flushes the store and reports err. A malformed credentials file is
// never loaded, so it is never overwritten.
func finish(err error) int {
	code := dispatch.ExitCode(err)

	if store != nil {
		if ferr := store.Flush(); ferr != nil {
			logger.Error().Err(ferr).Str("path", store.Path()).Msg("Failed to save credentials")
			fmt.Fprintf(os.Stderr, "failed to save credentials: %v\n", ferr)
			code = 1
		}
	}

	if err != nil {
		if dispatch.IsFatal(err) {
			logger.Debug().Err(err).Msg("Session rejected by server")
		}
		fmt.Fprintln(os.Stderr, dispatch.Describe(err))
	}

	if logFile != nil {
		logFile.Close()
	}
	return code
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgDir, "config-dir", "", "config directory (default is $"+config.DirEnv+" or the user config dir)")
}

// initializeApp loads settings and credentials and builds the dispatcher.
func initializeApp(cmd *cobra.Command, args []string) error {
	dir, err := config.ResolveDir(cfgDir)
	if err != nil {
		return err
	}
	cfgDir = dir

	cfg, err = config.Load(dir)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	// Setup logger
	logger, logFile = setupLogger(cfg.Logging, dir)
	logger.Debug().Str("dir", dir).Str("version", version).Msg("Configuration loaded")

	store, err = session.Open(config.CredentialsPath(dir), logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	dispatcher = dispatch.New(store, connector(), authenticator(), out,
		dispatch.WithLogger(logger),
		dispatch.WithPrompter(dispatch.NewLinePrompter(cmd.InOrStdin(), out)),
		dispatch.WithClearScreen(isatty.IsTerminal(os.Stdout.Fd())),
	)

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig, dir string) (zerolog.Logger, io.Closer) {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	var out io.Writer = os.Stderr
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
			NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
		}
	}

	if !cfg.File {
		return zerolog.New(out).With().Timestamp().Logger(), nil
	}

	rotating := &lumberjack.Logger{
		Filename:   config.LogPath(dir),
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}
	return zerolog.New(zerolog.MultiLevelWriter(out, rotating)).With().Timestamp().Logger(), rotating
}

func clientOptions() []qbittorrent.Option {
	opts := []qbittorrent.Option{
		qbittorrent.WithTimeout(cfg.HTTP.Timeout),
		qbittorrent.WithMaxRetries(cfg.HTTP.MaxRetries),
		qbittorrent.WithRetryDelay(cfg.HTTP.RetryWaitMin, cfg.HTTP.RetryWaitMax),
		qbittorrent.WithUserAgent("qbtctl/" + version),
		qbittorrent.WithRateLimit(cfg.HTTP.RateLimit),
	}
	if cfg.HTTP.InsecureSkipVerify {
		opts = append(opts, qbittorrent.WithInsecureSkipVerify())
	}
	return opts
}

func connector() dispatch.Connector {
	return func(sess session.Session) dispatch.API {
		return qbittorrent.NewClient(sess, logger, clientOptions()...)
	}
}

func authenticator() dispatch.Authenticator {
	return func(ctx context.Context, endpoint session.Endpoint, username, password string) (*session.Session, error) {
		return qbittorrent.Authenticate(ctx, endpoint, username, password, logger, clientOptions()...)
	}
}
