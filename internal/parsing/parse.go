package parsing

import "time"

// Warning is advisory output from Parse. Warnings never stop export.
type Warning string

// WarningNoExercises is reported when no exercise-start lines were found
const WarningNoExercises Warning = "Could not parse exercises. The text might be unclear or the format unexpected."

// Result is everything recovered from one block of recognized text
type Result struct {
	Date      string           `json:"date"`
	Summary   string           `json:"summary"`
	Equipment EquipmentSet     `json:"equipment_used"`
	Exercises []ExerciseRecord `json:"exercises"`
	Warnings  []Warning        `json:"warnings,omitempty"`
}

// Parse runs date extraction, exercise assembly and enrichment over text.
// It never fails; an empty result carries WarningNoExercises.
func Parse(text string, catalog *Catalog, now time.Time) *Result {
	if catalog == nil {
		catalog = DefaultCatalog()
	}

	date := ExtractDate(text, now)
	records, equipment := Assemble(text, catalog)
	enriched, summary := Enrich(records, catalog)

	result := &Result{
		Date:      date,
		Summary:   summary,
		Equipment: equipment,
		Exercises: enriched,
	}
	if len(enriched) == 0 {
		result.Warnings = append(result.Warnings, WarningNoExercises)
	}
	return result
}
