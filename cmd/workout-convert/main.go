package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/zombor/workout-csv/internal/app"
	"github.com/zombor/workout-csv/internal/export"
	"github.com/zombor/workout-csv/internal/parsing"
	"github.com/zombor/workout-csv/internal/scanning"
	"github.com/zombor/workout-csv/internal/workout"
)

func main() {
	if app.WantsVersion(os.Args[1:]) {
		fmt.Println(app.Version)
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, func(cfg *app.Config) (scanning.Recognizer, error) {
		return cfg.NewRecognizer(ctx)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// recognizerFactory builds the engine lazily so text input never needs one
type recognizerFactory func(*app.Config) (scanning.Recognizer, error)

var errUsage = errors.New("usage: workout-convert [flags] <screenshot|transcript.txt|->")

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer, newRecognizer recognizerFactory) error {
	fs := ff.NewFlagSet("workout-convert")
	var (
		format   = fs.StringLong("format", "csv", "Output format: 'csv', 'fit' or 'json'")
		out      = fs.StringLong("out", "", "Output file (default stdout)")
		textMode = fs.BoolLong("text", "Treat the input as an already-recognized transcript")
		_        = fs.BoolLong("version", "Show version information")
	)
	cfg := app.RegisterFlags(fs)

	if err := app.Parse(fs, args); err != nil {
		return fmt.Errorf("%w\n%s", err, ffhelp.Flags(fs))
	}

	rest := fs.GetArgs()
	if len(rest) != 1 {
		return errUsage
	}
	input := rest[0]

	data, err := readInput(input, stdin)
	if err != nil {
		return err
	}

	catalog, err := cfg.LoadCatalog()
	if err != nil {
		return err
	}

	text := string(data)
	if !*textMode && !isTranscript(input) {
		recognizer, err := newRecognizer(cfg)
		if err != nil {
			return err
		}
		defer recognizer.Close()

		text, err = recognizer.Recognize(ctx, data, workout.ContentTypeFor(input))
		if err != nil {
			return err
		}
	}

	now := time.Now()
	result := parsing.Parse(text, catalog, now)
	for _, w := range result.Warnings {
		slog.Warn("Workout conversion warning", "input", input, "warning", string(w))
	}

	encoded, err := encode(*format, result, now)
	if err != nil {
		return err
	}

	if *out == "" {
		_, err = stdout.Write(encoded)
		return err
	}
	if err := os.WriteFile(*out, encoded, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", *out, err)
	}
	slog.Info("Wrote workout", "path", *out, "exercises", len(result.Exercises), "date", result.Date)
	return nil
}

func readInput(input string, stdin io.Reader) ([]byte, error) {
	if input == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return data, nil
}

// isTranscript reports whether input names text rather than an image.
// Stdin is always text.
func isTranscript(input string) bool {
	if input == "-" {
		return true
	}
	switch strings.ToLower(filepath.Ext(input)) {
	case ".txt", ".text", ".md":
		return true
	}
	return false
}

func encode(format string, result *parsing.Result, now time.Time) ([]byte, error) {
	switch format {
	case "csv":
		return export.CSV(export.ResultRows(result))
	case "fit":
		return export.EncodeFIT(result.Exercises, export.StartTime(result.Date, now))
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encoding json: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("invalid format %q: valid values are csv, fit or json", format)
	}
}
