package mcp

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zombor/workout-csv/internal/export"
	"github.com/zombor/workout-csv/internal/parsing"
	"github.com/zombor/workout-csv/internal/workout"
)

// maxImageSize bounds screenshots read from disk
const maxImageSize = 20 << 20

// --- Tool definitions ---

var toolConvertWorkoutText = mcp.NewTool("convert_workout_text",
	mcp.WithDescription("Convert a workout transcript (lines like 'A1. DB Bench Press', '3 sets x 10 reps', '@ 25 lbs') into structured exercises and CSV. Returns the parsed workout and the CSV text."),
	mcp.WithString("text", mcp.Required(), mcp.Description("Recognized workout text, one visual line per line")),
	mcp.WithBoolean("save", mcp.Description("Store the workout in history. Defaults to false.")),
)

var toolConvertWorkoutImage = mcp.NewTool("convert_workout_image",
	mcp.WithDescription("Recognize a workout screenshot on disk, convert it and store it in history. Returns the workout and the CSV text."),
	mcp.WithString("path", mcp.Required(), mcp.Description("Path to a PNG, JPEG, GIF, WebP, BMP, HEIC or PDF file")),
)

var toolListWorkouts = mcp.NewTool("list_workouts",
	mcp.WithDescription("List stored workouts, newest first, with date, summary and exercise count."),
)

var toolGetWorkoutCSV = mcp.NewTool("get_workout_csv",
	mcp.WithDescription("Return the CSV export of a stored workout."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Workout ID from list_workouts")),
)

// conversion is the tool payload for a converted workout
type conversion struct {
	ID        string                   `json:"id,omitempty"`
	Date      string                   `json:"date"`
	Summary   string                   `json:"summary"`
	Equipment parsing.EquipmentSet     `json:"equipment_used"`
	Exercises []parsing.ExerciseRecord `json:"exercises"`
	Warnings  []parsing.Warning        `json:"warnings,omitempty"`
	CSV       string                   `json:"csv"`
}

// workoutSummary is one entry of list_workouts
type workoutSummary struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Summary   string `json:"summary"`
	Exercises int    `json:"exercises"`
	Source    string `json:"source"`
	CreatedAt string `json:"created_at"`
}

func workoutConversion(w *workout.Workout) (conversion, error) {
	csvData, err := export.CSV(w.Rows())
	if err != nil {
		return conversion{}, err
	}
	return conversion{
		ID:        w.ID,
		Date:      w.Date,
		Summary:   w.Summary,
		Equipment: w.Equipment,
		Exercises: w.Exercises,
		Warnings:  w.Warnings,
		CSV:       string(csvData),
	}, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// --- Tool handlers ---

func (h *handlers) convertWorkoutText(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text := req.GetString("text", "")
	if text == "" {
		return mcp.NewToolResultError("text is required"), nil
	}

	if req.GetBool("save", false) {
		w, err := h.svc.ProcessText(text)
		if err != nil {
			h.log.Error("mcp convert_workout_text", "error", err)
			return mcp.NewToolResultError("conversion failed: " + err.Error()), nil
		}
		out, err := workoutConversion(w)
		if err != nil {
			return mcp.NewToolResultError("csv export failed: " + err.Error()), nil
		}
		return jsonResult(out)
	}

	result := h.svc.Convert(text)
	csvData, err := export.CSV(export.ResultRows(result))
	if err != nil {
		return mcp.NewToolResultError("csv export failed: " + err.Error()), nil
	}
	return jsonResult(conversion{
		Date:      result.Date,
		Summary:   result.Summary,
		Equipment: result.Equipment,
		Exercises: result.Exercises,
		Warnings:  result.Warnings,
		CSV:       string(csvData),
	})
}

func (h *handlers) convertWorkoutImage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := req.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultError("path is required"), nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return mcp.NewToolResultError("cannot read image: " + err.Error()), nil
	}
	if info.Size() > maxImageSize {
		return mcp.NewToolResultError("image is too large"), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return mcp.NewToolResultError("cannot read image: " + err.Error()), nil
	}

	w, err := h.svc.ProcessScreenshot(ctx, filepath.Base(path), data, workout.ContentTypeFor(path))
	if err != nil {
		h.log.Error("mcp convert_workout_image", "path", path, "error", err)
		return mcp.NewToolResultError("conversion failed: " + err.Error()), nil
	}

	out, err := workoutConversion(w)
	if err != nil {
		return mcp.NewToolResultError("csv export failed: " + err.Error()), nil
	}
	return jsonResult(out)
}

func (h *handlers) listWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workouts, err := h.svc.ListWorkouts()
	if err != nil {
		h.log.Error("mcp list_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	summaries := make([]workoutSummary, 0, len(workouts))
	for _, w := range workouts {
		summaries = append(summaries, workoutSummary{
			ID:        w.ID,
			Date:      w.Date,
			Summary:   w.Summary,
			Exercises: len(w.Exercises),
			Source:    string(w.Source),
			CreatedAt: w.CreatedAt.Format(time.RFC3339),
		})
	}
	return jsonResult(summaries)
}

func (h *handlers) getWorkoutCSV(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return mcp.NewToolResultError("id is required"), nil
	}

	data, _, err := h.svc.ExportCSV(id)
	if err != nil {
		return mcp.NewToolResultError("export failed: " + err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
