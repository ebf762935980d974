package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/zombor/workout-csv/internal/app"
	"github.com/zombor/workout-csv/internal/mcp"
	"github.com/zombor/workout-csv/internal/workout"
)

func main() {
	if app.WantsVersion(os.Args[1:]) {
		fmt.Println(app.Version)
		os.Exit(0)
	}

	// stdout carries the MCP protocol
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(log)

	fs := ff.NewFlagSet("workout-mcp")
	var (
		dbPath      = fs.StringLong("db", "workout-csv.db", "Database file path")
		storagePath = fs.StringLong("storage", "./screenshots", "Storage directory path")
		_           = fs.BoolLong("version", "Show version information")
	)
	cfg := app.RegisterFlags(fs)

	if err := app.Parse(fs, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *dbPath, *storagePath, log); err != nil {
		log.Error("workout-mcp failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *app.Config, dbPath, storagePath string, log *slog.Logger) error {
	catalog, err := cfg.LoadCatalog()
	if err != nil {
		return err
	}

	db, err := workout.NewBoltDB(dbPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer db.Close()

	store, err := workout.NewLocalStorage(storagePath)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	recognizer, err := cfg.NewRecognizer(context.Background())
	if err != nil {
		return err
	}
	defer recognizer.Close()

	service := workout.NewService(db, recognizer, store, catalog)
	return mcp.ServeStdio(mcp.New(service, app.Version, log))
}
