package parsing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Weight units after normalization
const (
	UnitPounds    = "lbs"
	UnitKilograms = "kg"
)

var (
	// A1. Exercise Name / B12 Exercise Name
	exerciseStartPattern = regexp.MustCompile(`^[A-Z]\d+\.?\s+(.+)$`)

	// 3 sets x 10 reps / 3x10 / 4 sets 8 reps. A separator is required so a
	// single number is never split in two.
	setsRepsPattern = regexp.MustCompile(`(?i)\b(\d+)\s*(?:sets?\s*x?|x)\s*(\d+)(?:\s*reps?\b)?`)

	// @ 25 lbs / @22.5kg / @ 135 / @ 25lbsx2. The numeric group only admits
	// valid decimals; whatever follows the unit is ignored.
	weightPattern = regexp.MustCompile(`(?i)@\s*(\d+(?:\.\d+)?)\s*(lbs?|kgs?)?`)

	bodyweightPattern = regexp.MustCompile(`(?i)\b(?:BW|Bodyweight)\b`)
)

type lineKind int

const (
	lineBlank lineKind = iota
	lineExerciseStart
	lineContinuation
)

// classifiedLine is the side-effect-free reading of a single line of text
type classifiedLine struct {
	kind lineKind
	text string

	// set for lineExerciseStart
	name string

	// set for lineContinuation when the pattern matched
	sets, reps string
	load       *Load
	bodyweight bool
}

// structured reports whether any sub-field pattern matched the line
func (c classifiedLine) structured() bool {
	return c.sets != "" || c.load != nil || c.bodyweight
}

// classifyLine decides whether a line starts an exercise or continues one and
// extracts the sub-fields of continuation lines.
func classifyLine(line string) classifiedLine {
	text := strings.TrimSpace(line)
	if text == "" {
		return classifiedLine{kind: lineBlank}
	}

	if m := exerciseStartPattern.FindStringSubmatch(text); m != nil {
		if name := strings.TrimSpace(m[1]); name != "" {
			return classifiedLine{kind: lineExerciseStart, text: text, name: name}
		}
	}

	c := classifiedLine{kind: lineContinuation, text: text}

	if m := setsRepsPattern.FindStringSubmatch(text); m != nil {
		c.sets, c.reps = m[1], m[2]
	}

	if m := weightPattern.FindStringSubmatch(text); m != nil {
		c.load = parseLoad(m[1], m[2])
	} else if bodyweightPattern.MatchString(text) {
		c.bodyweight = true
	}

	return c
}

// parseLoad builds a Load from the captured number and unit.
// weightPattern only captures valid decimals, so a parse failure is a bug.
func parseLoad(number, unit string) *Load {
	value, err := strconv.ParseFloat(number, 64)
	if err != nil {
		panic(fmt.Sprintf("weight pattern captured non-decimal %q: %v", number, err))
	}
	return &Load{Value: value, Unit: normalizeUnit(unit)}
}

func normalizeUnit(unit string) string {
	if strings.HasPrefix(strings.ToLower(unit), "kg") {
		return UnitKilograms
	}
	return UnitPounds
}

// formatWeight renders a load for display.
// Dumbbell loads are written per hand, so the combined total is shown first.
func formatWeight(load Load) string {
	if load.PerHand {
		return fmt.Sprintf("%s%s total, %s%s dumbbells in each hand",
			formatNumber(load.Total()), load.Unit, formatNumber(load.Value), load.Unit)
	}
	return fmt.Sprintf("%s %s", formatNumber(load.Value), load.Unit)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
