package workout

import (
	"time"

	"github.com/zombor/workout-csv/internal/export"
	"github.com/zombor/workout-csv/internal/parsing"
)

// Source records how a workout entered the system
type Source string

const (
	SourceScreenshot Source = "screenshot"
	SourceText       Source = "text"
)

// Workout is one converted screenshot or pasted transcript
type Workout struct {
	ID          string                   `json:"id"`
	Date        string                   `json:"date"`
	Summary     string                   `json:"summary"`
	Equipment   parsing.EquipmentSet     `json:"equipment_used"`
	Exercises   []parsing.ExerciseRecord `json:"exercises"`
	Warnings    []parsing.Warning        `json:"warnings,omitempty"`
	Source      Source                   `json:"source"`
	Engine      string                   `json:"engine,omitempty"` // recognizer that produced the transcript
	Transcript  string                   `json:"transcript"`
	Filename    string                   `json:"filename,omitempty"`
	ContentType string                   `json:"content_type,omitempty"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// Rows flattens the workout into export rows
func (w *Workout) Rows() []export.Row {
	return export.ToRows(w.Summary, w.Equipment, w.Exercises, w.Date)
}

// Batch is a saved export of several workouts
type Batch struct {
	ID            string    `json:"id"`
	WorkoutIDs    []string  `json:"workout_ids"`
	ExerciseCount int       `json:"exercise_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
