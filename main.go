package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/marcus-crane/showscout/config"
)

var (
	apiURL  string
	envFile string

	cfg      config.Config
	closeLog = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "showscout",
	Short: "Search TVMaze for shows and browse their episodes by season",
	Long: `showscout looks up TV shows on TVMaze. It can serve a small web interface
with show cards and per-season episode tables, or print the same information
to the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(envFile)
		if err != nil {
			return err
		}
		if apiURL != "" {
			loaded.TVMaze.APIURL = strings.TrimRight(apiURL, "/")
		}
		cfg = loaded

		logger, closeFn := newLogger(cfg, cmd.ErrOrStderr())
		slog.SetDefault(logger)
		closeLog = closeFn
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLog()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Override the TVMaze API host")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to an optional dotenv file")

	rootCmd.AddCommand(serveCmd, searchCmd, episodesCmd, migrateCmd)
}

// newLogger writes to stderr and, when a log file is configured, to a rotating
// file as well. The returned func closes the file.
func newLogger(cfg config.Config, stderr io.Writer) (*slog.Logger, func() error) {
	out := stderr
	closeFn := func() error { return nil }
	if cfg.Showscout.LogFile != "" {
		fileWriter := &lumberjack.Logger{
			Filename:   cfg.Showscout.LogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		out = io.MultiWriter(stderr, fileWriter)
		closeFn = fileWriter.Close
	}
	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: cfg.GetLogLevel()})
	return slog.New(handler), closeFn
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
