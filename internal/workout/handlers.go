package workout

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/zombor/workout-csv/internal/scanning"
)

// maxUploadSize bounds multipart uploads; phone screenshots are rarely above a few MB
const maxUploadSize = int64(20 << 20)

// maxTextSize bounds pasted transcripts
const maxTextSize = int64(1 << 20)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	var recErr *scanning.RecognitionError
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNoFile):
		return http.StatusNotFound
	case errors.As(err, &recErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrNoRecognizer):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrEmptyText):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeAttachment(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}

// ContentTypeFor guesses a MIME type from the upload's file extension
func ContentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".bmp":
		return "image/bmp"
	case ".pdf":
		return "application/pdf"
	case ".heic":
		return "image/heic"
	case ".heif":
		return "image/heif"
	default:
		return "application/octet-stream"
	}
}

// handleIndex serves the HTML interface
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

// handleListWorkouts returns all workouts, newest first
func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	workouts, err := s.service.ListWorkouts()
	if err != nil {
		s.log.Error("Error listing workouts", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, workouts)
}

// handleUploadWorkout recognizes and converts an uploaded screenshot
func (s *Server) handleUploadWorkout(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.log.Error("Error parsing multipart form", "error", err)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "File is too large. Maximum size is 20MB.")
			return
		}
		writeError(w, http.StatusBadRequest, "Error parsing form")
		return
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		s.log.Error("Error getting file from form", "error", err)
		writeError(w, http.StatusBadRequest, "No file was selected. Please choose a screenshot to upload.")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		s.log.Error("Error reading file data", "error", err, "filename", header.Filename)
		writeError(w, http.StatusInternalServerError, "Error reading file. Please try again.")
		return
	}

	contentType := strings.ToLower(strings.TrimSpace(header.Header.Get("Content-Type")))
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = ContentTypeFor(header.Filename)
	}

	workout, err := s.service.ProcessScreenshot(r.Context(), header.Filename, data, contentType)
	if err != nil {
		s.log.Error("Error processing screenshot", "filename", header.Filename, "error", err)
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, workout)
}

// handleConvertText converts a pasted transcript.
// Accepts JSON {"text": "..."} or a plain text body.
func (s *Server) handleConvertText(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxTextSize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	text := string(body)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		text = req.Text
	}

	workout, err := s.service.ProcessText(text)
	if err != nil {
		s.log.Error("Error converting text", "error", err)
		writeError(w, statusFor(err), err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, workout)
}

// handleGetWorkout returns a single workout
func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	workout, err := s.service.GetWorkout(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusFor(err), "Workout not found")
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

// handleDeleteWorkout deletes a workout and its screenshot
func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteWorkout(chi.URLParam(r, "id")); err != nil {
		status := statusFor(err)
		if status == http.StatusNotFound {
			writeError(w, status, "Workout not found")
			return
		}
		s.log.Error("Error deleting workout", "error", err)
		writeError(w, status, "Error deleting workout")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGetWorkoutFile returns the original screenshot
func (s *Server) handleGetWorkoutFile(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := s.service.GetWorkoutFile(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "File not found")
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Write(data)
}

// handleExportCSV downloads a workout as CSV
func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	data, filename, err := s.service.ExportCSV(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeAttachment(w, "text/csv; charset=utf-8", filename, data)
}

// handleExportFIT downloads a workout as a FIT activity
func (s *Server) handleExportFIT(w http.ResponseWriter, r *http.Request) {
	data, filename, err := s.service.ExportFIT(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeAttachment(w, "application/vnd.ant.fit", filename, data)
}

// handleListBatches returns all batches, newest first
func (s *Server) handleListBatches(w http.ResponseWriter, r *http.Request) {
	batches, err := s.service.ListBatches()
	if err != nil {
		s.log.Error("Error listing batches", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, batches)
}

// handleCreateBatch saves a multi-workout export
func (s *Server) handleCreateBatch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WorkoutIDs []string `json:"workout_ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	batch, err := s.service.CreateBatch(req.WorkoutIDs)
	if err != nil {
		s.log.Error("Error creating batch", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, batch)
}

// handleGetBatch returns a batch with its workouts
func (s *Server) handleGetBatch(w http.ResponseWriter, r *http.Request) {
	batch, workouts, err := s.service.GetBatchWithWorkouts(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusFor(err), "Batch not found")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		*Batch
		Workouts []*Workout `json:"workouts"`
	}{batch, workouts})
}

// handleExportBatchCSV downloads every workout of a batch as one CSV
func (s *Server) handleExportBatchCSV(w http.ResponseWriter, r *http.Request) {
	data, filename, err := s.service.ExportBatchCSV(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeAttachment(w, "text/csv; charset=utf-8", filename, data)
}
