package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/r3labs/sse/v2"
	"github.com/spf13/cobra"

	"github.com/marcus-crane/showscout/config"
	"github.com/marcus-crane/showscout/db"
	"github.com/marcus-crane/showscout/events"
	"github.com/marcus-crane/showscout/history"
	"github.com/marcus-crane/showscout/routes"
	"github.com/marcus-crane/showscout/tvmaze"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web interface",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context(), cfg)
	},
}

func serve(ctx context.Context, cfg config.Config) error {
	opts := routes.Options{
		Finder:         tvmaze.NewClient(cfg.TVMaze.APIURL, cfg.RequestTimeout()),
		AllowedOrigins: cfg.Origins(),
	}

	var sseServer *sse.Server
	if cfg.History.Enabled {
		database, err := db.OpenAndMigrate(cfg.History.DbPath)
		if err != nil {
			return err
		}
		defer database.Close()

		sseServer = events.New(history.Stream)
		store := history.NewStore(database, sseServer)

		scheduler, err := SetupInBackground(cfg, store)
		if err != nil {
			return fmt.Errorf("failed to set up background jobs: %w", err)
		}
		scheduler.Start()
		defer scheduler.Shutdown()

		opts.History = store
		opts.Events = sseServer
		slog.Info("Lookup history is enabled", slog.String("db_path", cfg.History.DbPath))
	} else {
		slog.Info("Lookup history is disabled")
	}

	server := &http.Server{
		Addr:              cfg.Showscout.ListenAddr,
		Handler:           routes.Register(mux.NewRouter(), opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		slog.Info("Showscout is running", slog.String("addr", cfg.Showscout.ListenAddr))
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("Gracefully shutting down...")
	// Event streams never finish on their own so they are closed first
	if sseServer != nil {
		sseServer.Close()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down cleanly: %w", err)
	}
	slog.Info("Showscout has successfully shut down")
	return nil
}
