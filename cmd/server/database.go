package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	// Registers the pgx driver under the name "pgx" for database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/sparkmatch/spark-api/internal/config"
)

const (
	dbMaxOpenConns    = 10
	dbMaxIdleConns    = 5
	dbConnMaxLifetime = 5 * time.Minute
	dbPingTimeout     = 5 * time.Second
)

// setupAppDatabase opens the PostgreSQL connection pool and verifies
// connectivity before the rest of the application is wired on top of it.
func setupAppDatabase(cfg *config.Config, log *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(dbMaxOpenConns)
	db.SetMaxIdleConns(dbMaxIdleConns)
	db.SetConnMaxLifetime(dbConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), dbPingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		if cerr := db.Close(); cerr != nil {
			log.Error("failed to close database after ping failure", slog.String("error", cerr.Error()))
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("database connection established",
		slog.Int("max_open_conns", dbMaxOpenConns),
		slog.Int("max_idle_conns", dbMaxIdleConns))

	return db, nil
}
