package parsing

import (
	"encoding/json"
	"strings"
)

// Default field values for anything a workout screenshot did not provide.
const (
	NotAvailable     = "N/A"
	UnknownEquipment = "Unknown"
	UnknownMuscle    = "Unknown"
	UnknownDate      = "Unknown Date"
	Bodyweight       = "Bodyweight"
	Dumbbells        = "Dumbbells"
)

// ExerciseRecord is one exercise block recovered from recognized text
type ExerciseRecord struct {
	Name        string `json:"name"`
	Equipment   string `json:"equipment"`
	Weight      string `json:"weight"`
	Sets        string `json:"sets"`
	Reps        string `json:"reps"`
	Notes       string `json:"notes"`
	MuscleGroup string `json:"muscle_group"`
	DemoLink    string `json:"demo_link"`
	Load        *Load  `json:"load,omitempty"` // Structured form of Weight when a load was matched
}

// Load is the numeric load matched on a weight line.
// Value is the load as written, which is per hand for dumbbells.
type Load struct {
	Value   float64 `json:"value"`
	Unit    string  `json:"unit"`
	PerHand bool    `json:"per_hand"`
}

// Total returns the combined load, counting both hands for dumbbells
func (l Load) Total() float64 {
	if l.PerHand {
		return l.Value * 2
	}
	return l.Value
}

// Kilograms returns the combined load converted to kilograms
func (l Load) Kilograms() float64 {
	if l.Unit == UnitKilograms {
		return l.Total()
	}
	return l.Total() * kilogramsPerPound
}

const kilogramsPerPound = 0.45359237

func newExerciseRecord(name string) ExerciseRecord {
	return ExerciseRecord{
		Name:        name,
		Equipment:   UnknownEquipment,
		Weight:      NotAvailable,
		Sets:        NotAvailable,
		Reps:        NotAvailable,
		MuscleGroup: UnknownMuscle,
	}
}

// EquipmentSet is the set of equipment seen across a workout.
// Values keep the order in which they were first added.
type EquipmentSet struct {
	items []string
}

// NewEquipmentSet creates a set holding the given values
func NewEquipmentSet(values ...string) EquipmentSet {
	var s EquipmentSet
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add inserts a value if it is not already present
func (s *EquipmentSet) Add(value string) {
	if value == "" || s.Contains(value) {
		return
	}
	s.items = append(s.items, value)
}

// Contains reports whether value is in the set
func (s EquipmentSet) Contains(value string) bool {
	for _, item := range s.items {
		if item == value {
			return true
		}
	}
	return false
}

// Len returns the number of distinct values
func (s EquipmentSet) Len() int {
	return len(s.items)
}

// Values returns a copy of the values in insertion order
func (s EquipmentSet) Values() []string {
	values := make([]string, len(s.items))
	copy(values, s.items)
	return values
}

// String joins the values with ", ", or returns "None" for an empty set
func (s EquipmentSet) String() string {
	if len(s.items) == 0 {
		return "None"
	}
	return strings.Join(s.items, ", ")
}

// MarshalJSON encodes the set as an array
func (s EquipmentSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

// UnmarshalJSON decodes an array, dropping duplicates
func (s *EquipmentSet) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*s = NewEquipmentSet(values...)
	return nil
}
