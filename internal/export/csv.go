package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/zombor/workout-csv/internal/parsing"
)

// Header is the fixed column order of exported rows
var Header = []string{
	"Summary",
	"Total Equipment",
	"Exercise",
	"Equipment",
	"Weight",
	"Sets",
	"Reps",
	"Notes",
	"Muscle Group",
	"Demo",
	"Date",
}

// Row is one exercise with the workout-wide fields repeated alongside it
type Row struct {
	Summary        string `json:"summary"`
	TotalEquipment string `json:"total_equipment"`
	Exercise       string `json:"exercise"`
	Equipment      string `json:"equipment"`
	Weight         string `json:"weight"`
	Sets           string `json:"sets"`
	Reps           string `json:"reps"`
	Notes          string `json:"notes"`
	MuscleGroup    string `json:"muscle_group"`
	Demo           string `json:"demo"`
	Date           string `json:"date"`
}

// fields returns the row values in Header order
func (r Row) fields() []string {
	return []string{
		r.Summary,
		r.TotalEquipment,
		r.Exercise,
		r.Equipment,
		r.Weight,
		r.Sets,
		r.Reps,
		r.Notes,
		r.MuscleGroup,
		r.Demo,
		r.Date,
	}
}

// ToRows flattens a parsed workout into one row per exercise.
// No exercises means no rows, which still exports as a header-only file.
func ToRows(summary string, equipment parsing.EquipmentSet, records []parsing.ExerciseRecord, date string) []Row {
	total := equipment.String()
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, Row{
			Summary:        summary,
			TotalEquipment: total,
			Exercise:       rec.Name,
			Equipment:      rec.Equipment,
			Weight:         rec.Weight,
			Sets:           rec.Sets,
			Reps:           rec.Reps,
			Notes:          rec.Notes,
			MuscleGroup:    rec.MuscleGroup,
			Demo:           rec.DemoLink,
			Date:           date,
		})
	}
	return rows
}

// ResultRows flattens a parse result
func ResultRows(result *parsing.Result) []Row {
	return ToRows(result.Summary, result.Equipment, result.Exercises, result.Date)
}

// WriteCSV writes the header followed by one line per row
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for i, row := range rows {
		if err := cw.Write(row.fields()); err != nil {
			return fmt.Errorf("writing csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}

// CSV renders rows as CSV bytes
func CSV(rows []Row) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Filename suggests a file name for an export of the workout on date.
// "Apr 7, 2026" becomes "workout_Apr_7_2026.csv".
func Filename(date, ext string) string {
	token := strings.ReplaceAll(date, ", ", "_")
	token = strings.ReplaceAll(token, " ", "_")
	token = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', ',', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, token)
	return fmt.Sprintf("workout_%s.%s", token, ext)
}
