package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/zombor/workout-csv/internal/app"
	"github.com/zombor/workout-csv/internal/scanning"
	"github.com/zombor/workout-csv/internal/workout"
)

func main() {
	// Check for version flag before parsing other flags
	if app.WantsVersion(os.Args[1:]) {
		fmt.Println(app.Version)
		os.Exit(0)
	}

	fs := ff.NewFlagSet("workout-csv")
	var (
		port        = fs.IntLong("port", 8080, "HTTP server port")
		dbPath      = fs.StringLong("db", "workout-csv.db", "Database file path")
		storagePath = fs.StringLong("storage", "./screenshots", "Storage directory path")
		textOnly    = fs.BoolLong("text-only", "Disable screenshot recognition and accept pasted text only")
		authUser    = fs.StringLong("auth-user", "", "Basic auth username (optional)")
		authPass    = fs.StringLong("auth-pass", "", "Basic auth password (optional)")
		_           = fs.BoolLong("version", "Show version information")
	)
	cfg := app.RegisterFlags(fs)

	if err := app.Parse(fs, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	catalog, err := cfg.LoadCatalog()
	if err != nil {
		slog.Error("Failed to load catalog", "error", err)
		os.Exit(1)
	}

	// Initialize database
	slog.Info("Initializing database...")
	db, err := workout.NewBoltDB(*dbPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var recognizer scanning.Recognizer
	if *textOnly {
		slog.Info("Screenshot recognition disabled")
	} else {
		recognizer, err = cfg.NewRecognizer(ctx)
		if err != nil {
			slog.Error("Failed to initialize recognizer", "error", err)
			os.Exit(1)
		}
		defer recognizer.Close()
	}

	// Initialize storage
	slog.Info("Initializing storage...")
	store, err := workout.NewLocalStorage(*storagePath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}

	service := workout.NewService(db, recognizer, store, catalog)
	basicAuth := workout.BasicAuth{
		Username: *authUser,
		Password: *authPass,
	}
	server := workout.NewServer(service, basicAuth, slog.Default())

	addr := fmt.Sprintf(":%d", *port)
	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr), "version", app.Version)
	if *authUser != "" || *authPass != "" {
		slog.Info("Basic auth enabled", "user", *authUser)
	}

	if err := server.Start(ctx, addr); err != nil {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
	slog.Info("Shutting down...")
}
