package parsing

import "strings"

type assemblerState int

const (
	noCurrentExercise assemblerState = iota
	accumulatingExercise
)

// assembler folds classified lines into exercise records.
// Exercise-start lines and end of input are the only transitions.
type assembler struct {
	catalog   *Catalog
	state     assemblerState
	current   ExerciseRecord
	records   []ExerciseRecord
	equipment EquipmentSet
}

// Assemble parses recognized text into exercise records in order of
// appearance, along with the set of equipment assigned to them.
// Text without any exercise-start line yields an empty, non-nil slice.
func Assemble(text string, catalog *Catalog) ([]ExerciseRecord, EquipmentSet) {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	a := &assembler{
		catalog: catalog,
		records: make([]ExerciseRecord, 0),
	}
	for _, line := range strings.Split(text, "\n") {
		a.feed(classifyLine(line))
	}
	a.finish()
	return a.records, a.equipment
}

func (a *assembler) feed(line classifiedLine) {
	switch line.kind {
	case lineBlank:
		return
	case lineExerciseStart:
		a.finish()
		a.start(line.name)
	case lineContinuation:
		if a.state == accumulatingExercise {
			a.merge(line)
		}
	}
}

func (a *assembler) start(name string) {
	a.current = newExerciseRecord(name)
	a.current.Equipment = a.catalog.classifyEquipment(name)
	if a.current.Equipment != UnknownEquipment {
		a.equipment.Add(a.current.Equipment)
	}
	a.state = accumulatingExercise
}

// merge applies a continuation line to the current exercise
func (a *assembler) merge(line classifiedLine) {
	if !line.structured() {
		a.current.Notes += line.text + " "
		return
	}
	if line.sets != "" {
		a.current.Sets = line.sets
		a.current.Reps = line.reps
	}
	switch {
	case line.load != nil:
		load := *line.load
		load.PerHand = a.current.Equipment == Dumbbells
		a.current.Load = &load
		a.current.Weight = formatWeight(load)
	case line.bodyweight:
		a.current.Load = nil
		a.current.Weight = Bodyweight
	}
}

// finish moves the current exercise, if any, to the output
func (a *assembler) finish() {
	if a.state != accumulatingExercise {
		return
	}
	a.current.Notes = strings.TrimSpace(a.current.Notes)
	a.records = append(a.records, a.current)
	a.current = ExerciseRecord{}
	a.state = noCurrentExercise
}
