package parsing

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	generalWorkout   = "General Workout"
	maxSummaryLength = 50
)

// Enrich returns a copy of records with muscle group and demo link filled in,
// plus a one-line summary of the workout.
// It depends only on exercise names, so enriching twice changes nothing.
func Enrich(records []ExerciseRecord, catalog *Catalog) ([]ExerciseRecord, string) {
	if catalog == nil {
		catalog = DefaultCatalog()
	}

	enriched := make([]ExerciseRecord, len(records))
	for i, rec := range records {
		rec.MuscleGroup = catalog.muscleGroup(rec.Name)
		rec.DemoLink = catalog.demoLink(rec.Name)
		enriched[i] = rec
	}

	return enriched, catalog.summarize(records)
}

// lookupKey simplifies an exercise name to its muscle table key:
// the title-cased text before the first "-".
func lookupKey(name string) string {
	base, _, _ := strings.Cut(name, "-")
	return cases.Title(language.Und).String(strings.TrimSpace(base))
}

func (c *Catalog) muscleGroup(name string) string {
	if group, ok := c.MuscleGroups[lookupKey(name)]; ok {
		return group
	}
	return UnknownMuscle
}

// demoLink builds a search URL for the exercise. Nothing is fetched.
func (c *Catalog) demoLink(name string) string {
	query := strings.ReplaceAll(name, " ", "+")
	return strings.Replace(c.DemoURL, "%s", query, 1)
}

// summarize labels the workout by the keyword groups found in exercise names
func (c *Catalog) summarize(records []ExerciseRecord) string {
	var labels []string
	for _, rule := range c.Summary {
		for _, rec := range records {
			if rule.matches(rec.Name) {
				labels = append(labels, rule.Name)
				break
			}
		}
	}
	if len(labels) == 0 {
		return generalWorkout
	}
	return truncate(strings.Join(labels, ", "), maxSummaryLength)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
