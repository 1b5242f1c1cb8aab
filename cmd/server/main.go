// Package main is the entry point for the matching API server.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/sparkmatch/spark-api/internal/config"
	"github.com/sparkmatch/spark-api/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server failed to start: %v\n", err)
		os.Exit(1)
	}
}

// run loads configuration, wires the application together and serves HTTP
// until a shutdown signal arrives. Separated from main so initialization
// failures surface as ordinary errors.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("starting server",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	db, err := setupAppDatabase(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			log.Error("failed to close database connection", slog.String("error", cerr.Error()))
		}
	}()

	if err := runMigrations(db, log); err != nil {
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app, err := newApplication(cfg, db, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.shutdown()

	return startHTTPServer(cfg, app.router, log)
}
