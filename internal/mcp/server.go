package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/zombor/workout-csv/internal/parsing"
	"github.com/zombor/workout-csv/internal/workout"
)

// Service is the subset of the workout service exposed as tools
type Service interface {
	Convert(text string) *parsing.Result
	ProcessText(text string) (*workout.Workout, error)
	ProcessScreenshot(ctx context.Context, filename string, data []byte, contentType string) (*workout.Workout, error)
	ListWorkouts() ([]*workout.Workout, error)
	ExportCSV(id string) ([]byte, string, error)
}

// New creates an MCP server with all tools registered
func New(svc Service, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("workout-csv", version,
		server.WithToolCapabilities(false),
		server.WithInstructions("Converts coaching-app workout screenshots and transcripts into CSV rows with one exercise per row. Use convert_workout_text for text you already have and convert_workout_image for a screenshot on disk."),
	)

	h := &handlers{svc: svc, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolConvertWorkoutText, Handler: h.convertWorkoutText},
		server.ServerTool{Tool: toolConvertWorkoutImage, Handler: h.convertWorkoutImage},
		server.ServerTool{Tool: toolListWorkouts, Handler: h.listWorkouts},
		server.ServerTool{Tool: toolGetWorkoutCSV, Handler: h.getWorkoutCSV},
	)

	return s
}

// handlers holds dependencies for MCP tool handlers
type handlers struct {
	svc Service
	log *slog.Logger
}

// ServeStdio runs the server over stdin/stdout until the client disconnects
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
