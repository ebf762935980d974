package workout

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zombor/workout-csv/internal/export"
	"github.com/zombor/workout-csv/internal/parsing"
	"github.com/zombor/workout-csv/internal/scanning"
)

var (
	// ErrEmptyText is returned when a transcript has no visible characters
	ErrEmptyText = errors.New("workout text is empty")
	// ErrNoRecognizer is returned for screenshots when no engine is configured
	ErrNoRecognizer = errors.New("no recognizer configured")
	// ErrNoFile is returned when a workout was created from pasted text
	ErrNoFile = errors.New("workout has no screenshot")
)

// IDGenerator generates unique IDs for workouts and batches
type IDGenerator interface {
	Generate() string
}

// TimeSource provides the current time
type TimeSource interface {
	Now() time.Time
}

type uuidGenerator struct{}

func (g *uuidGenerator) Generate() string {
	return uuid.NewString()
}

type defaultTimeSource struct{}

func (t *defaultTimeSource) Now() time.Time {
	return time.Now()
}

// Service converts screenshots and text into stored workouts and exports
type Service struct {
	db          DB
	recognizer  scanning.Recognizer
	storage     Storage
	catalog     *parsing.Catalog
	idGenerator IDGenerator
	timeSource  TimeSource
}

// NewService creates a new Service with UUID IDs and the wall clock.
// A nil catalog uses the built-in one; a nil recognizer limits the service to text.
func NewService(db DB, recognizer scanning.Recognizer, storage Storage, catalog *parsing.Catalog) *Service {
	return NewServiceWithDeps(db, recognizer, storage, catalog, &uuidGenerator{}, &defaultTimeSource{})
}

// NewServiceWithDeps creates a new Service with custom dependencies for testing
func NewServiceWithDeps(db DB, recognizer scanning.Recognizer, storage Storage, catalog *parsing.Catalog, idGen IDGenerator, timeSrc TimeSource) *Service {
	if catalog == nil {
		catalog = parsing.DefaultCatalog()
	}
	return &Service{
		db:          db,
		recognizer:  recognizer,
		storage:     storage,
		catalog:     catalog,
		idGenerator: idGen,
		timeSource:  timeSrc,
	}
}

var (
	unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9\s\-_]`)
	repeatedSpace       = regexp.MustCompile(`\s+`)
)

// sanitizeFilename strips special characters and truncates long phone-generated names
func sanitizeFilename(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))

	base = unsafeFilenameChars.ReplaceAllString(base, "")
	base = repeatedSpace.ReplaceAllString(base, " ")
	base = strings.TrimSpace(base)

	if len(base) > 50 {
		base = base[:50]
	}
	if base == "" {
		base = "screenshot"
	}
	return base + ext
}

// ProcessScreenshot stores a screenshot, recognizes its text and converts it.
// A recognition failure removes the stored file and nothing is saved.
func (s *Service) ProcessScreenshot(ctx context.Context, filename string, data []byte, contentType string) (*Workout, error) {
	if s.recognizer == nil {
		return nil, ErrNoRecognizer
	}

	id := s.idGenerator.Generate()
	now := s.timeSource.Now()

	savedPath, err := s.storage.Save(fmt.Sprintf("%s_%s", id, sanitizeFilename(filename)), data)
	if err != nil {
		return nil, fmt.Errorf("saving file: %w", err)
	}

	text, err := s.recognizer.Recognize(ctx, data, contentType)
	if err != nil {
		slog.Error("Failed to recognize workout",
			"filename", filename,
			"content_type", contentType,
			"file_size", len(data),
			"engine", s.recognizer.Name(),
			"error", err,
		)
		s.removeFile(savedPath)
		return nil, fmt.Errorf("recognizing workout: %w", err)
	}

	workout := s.convert(id, text, now)
	workout.Source = SourceScreenshot
	workout.Engine = s.recognizer.Name()
	workout.Filename = savedPath
	workout.ContentType = contentType

	if err := s.db.SaveWorkout(workout); err != nil {
		s.removeFile(savedPath)
		return nil, fmt.Errorf("saving workout to database: %w", err)
	}

	slog.Info("Converted workout",
		"id", workout.ID,
		"engine", workout.Engine,
		"exercises", len(workout.Exercises),
		"date", workout.Date,
	)
	return workout, nil
}

// ProcessText converts an already-recognized transcript
func (s *Service) ProcessText(text string) (*Workout, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	workout := s.convert(s.idGenerator.Generate(), text, s.timeSource.Now())
	workout.Source = SourceText

	if err := s.db.SaveWorkout(workout); err != nil {
		return nil, fmt.Errorf("saving workout to database: %w", err)
	}
	return workout, nil
}

// Convert parses text with the service catalog without saving anything
func (s *Service) Convert(text string) *parsing.Result {
	return parsing.Parse(text, s.catalog, s.timeSource.Now())
}

func (s *Service) convert(id, text string, now time.Time) *Workout {
	result := parsing.Parse(text, s.catalog, now)
	for _, w := range result.Warnings {
		slog.Warn("Workout conversion warning", "id", id, "warning", string(w))
	}
	return &Workout{
		ID:         id,
		Date:       result.Date,
		Summary:    result.Summary,
		Equipment:  result.Equipment,
		Exercises:  result.Exercises,
		Warnings:   result.Warnings,
		Transcript: text,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (s *Service) removeFile(path string) {
	if err := s.storage.Delete(path); err != nil {
		slog.Warn("Failed to delete file", "filename", path, "error", err)
	}
}

// GetWorkout retrieves a workout by ID
func (s *Service) GetWorkout(id string) (*Workout, error) {
	workout, err := s.db.GetWorkout(id)
	if err != nil {
		return nil, fmt.Errorf("getting workout: %w", err)
	}
	return workout, nil
}

// ListWorkouts returns all workouts, newest first
func (s *Service) ListWorkouts() ([]*Workout, error) {
	workouts, err := s.db.ListWorkouts()
	if err != nil {
		return nil, fmt.Errorf("listing workouts: %w", err)
	}
	slices.SortStableFunc(workouts, func(a, b *Workout) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), strings.Compare(a.ID, b.ID))
	})
	return workouts, nil
}

// DeleteWorkout removes a workout and its screenshot
func (s *Service) DeleteWorkout(id string) error {
	workout, err := s.db.GetWorkout(id)
	if err != nil {
		return fmt.Errorf("getting workout for deletion: %w", err)
	}

	if workout.Filename != "" {
		// log and continue with database deletion
		s.removeFile(workout.Filename)
	}

	if err := s.db.DeleteWorkout(id); err != nil {
		return fmt.Errorf("deleting workout from database: %w", err)
	}
	return nil
}

// GetWorkoutFile retrieves the original screenshot for a workout
func (s *Service) GetWorkoutFile(id string) ([]byte, string, error) {
	workout, err := s.db.GetWorkout(id)
	if err != nil {
		return nil, "", fmt.Errorf("getting workout: %w", err)
	}
	if workout.Filename == "" {
		return nil, "", ErrNoFile
	}

	data, err := s.storage.Get(workout.Filename)
	if err != nil {
		return nil, "", fmt.Errorf("getting workout file: %w", err)
	}
	return data, workout.ContentType, nil
}

// ExportCSV renders a workout as CSV and suggests a file name
func (s *Service) ExportCSV(id string) ([]byte, string, error) {
	workout, err := s.GetWorkout(id)
	if err != nil {
		return nil, "", err
	}

	data, err := export.CSV(workout.Rows())
	if err != nil {
		return nil, "", fmt.Errorf("exporting workout %s: %w", id, err)
	}
	return data, export.Filename(workout.Date, "csv"), nil
}

// ExportFIT renders a workout as a FIT strength activity
func (s *Service) ExportFIT(id string) ([]byte, string, error) {
	workout, err := s.GetWorkout(id)
	if err != nil {
		return nil, "", err
	}

	start := export.StartTime(workout.Date, workout.CreatedAt)
	data, err := export.EncodeFIT(workout.Exercises, start)
	if err != nil {
		return nil, "", fmt.Errorf("exporting workout %s: %w", id, err)
	}
	return data, export.Filename(workout.Date, "fit"), nil
}

// CreateBatch saves a multi-workout export. Duplicate IDs are collapsed.
func (s *Service) CreateBatch(workoutIDs []string) (*Batch, error) {
	if len(workoutIDs) == 0 {
		return nil, fmt.Errorf("at least one workout is required")
	}

	now := s.timeSource.Now()
	ids := make([]string, 0, len(workoutIDs))
	var exerciseCount int
	for _, workoutID := range workoutIDs {
		if slices.Contains(ids, workoutID) {
			continue
		}
		workout, err := s.db.GetWorkout(workoutID)
		if err != nil {
			return nil, fmt.Errorf("getting workout %s: %w", workoutID, err)
		}
		ids = append(ids, workoutID)
		exerciseCount += len(workout.Exercises)
	}

	batch := &Batch{
		ID:            s.idGenerator.Generate(),
		WorkoutIDs:    ids,
		ExerciseCount: exerciseCount,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.db.SaveBatch(batch); err != nil {
		return nil, fmt.Errorf("saving batch: %w", err)
	}
	return batch, nil
}

// GetBatchWithWorkouts retrieves a batch with its member workouts in batch order.
// Workouts deleted since the batch was created are skipped.
func (s *Service) GetBatchWithWorkouts(id string) (*Batch, []*Workout, error) {
	batch, err := s.db.GetBatch(id)
	if err != nil {
		return nil, nil, fmt.Errorf("getting batch: %w", err)
	}

	workouts := make([]*Workout, 0, len(batch.WorkoutIDs))
	for _, workoutID := range batch.WorkoutIDs {
		workout, err := s.db.GetWorkout(workoutID)
		if errors.Is(err, ErrNotFound) {
			slog.Warn("Batch references a deleted workout", "batch", id, "workout", workoutID)
			continue
		}
		if err != nil {
			return nil, nil, fmt.Errorf("getting workout %s: %w", workoutID, err)
		}
		workouts = append(workouts, workout)
	}
	return batch, workouts, nil
}

// ListBatches returns all batches, newest first
func (s *Service) ListBatches() ([]*Batch, error) {
	batches, err := s.db.ListBatches()
	if err != nil {
		return nil, fmt.Errorf("listing batches: %w", err)
	}
	slices.SortStableFunc(batches, func(a, b *Batch) int {
		return cmp.Or(b.CreatedAt.Compare(a.CreatedAt), strings.Compare(a.ID, b.ID))
	})
	return batches, nil
}

// ExportBatchCSV renders every workout of a batch into one CSV, in batch order
func (s *Service) ExportBatchCSV(id string) ([]byte, string, error) {
	batch, workouts, err := s.GetBatchWithWorkouts(id)
	if err != nil {
		return nil, "", err
	}

	rows := make([]export.Row, 0, batch.ExerciseCount)
	for _, workout := range workouts {
		rows = append(rows, workout.Rows()...)
	}

	data, err := export.CSV(rows)
	if err != nil {
		return nil, "", fmt.Errorf("exporting batch %s: %w", id, err)
	}
	return data, fmt.Sprintf("workouts_%s.csv", batch.CreatedAt.Format("2006-01-02")), nil
}
