package export

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/muktihari/fit/encoder"
	"github.com/muktihari/fit/profile/mesgdef"
	"github.com/muktihari/fit/profile/typedef"
	"github.com/muktihari/fit/proto"

	"github.com/zombor/workout-csv/internal/parsing"
)

const (
	// setSpacing separates consecutive set timestamps so they stay ordered
	setSpacing = time.Minute

	maxSetsPerExercise = 50
)

// categoryKeywords maps lowercase name fragments to FIT exercise categories.
// More specific fragments come first.
var categoryKeywords = []struct {
	keyword  string
	category typedef.ExerciseCategory
}{
	{"bench", typedef.ExerciseCategoryBenchPress},
	{"deadlift", typedef.ExerciseCategoryDeadlift},
	{"squat", typedef.ExerciseCategorySquat},
	{"leg press", typedef.ExerciseCategorySquat},
	{"lunge", typedef.ExerciseCategoryLunge},
	{"push up", typedef.ExerciseCategoryPushUp},
	{"pushup", typedef.ExerciseCategoryPushUp},
	{"pull up", typedef.ExerciseCategoryPullUp},
	{"pullup", typedef.ExerciseCategoryPullUp},
	{"chin up", typedef.ExerciseCategoryPullUp},
	{"pull down", typedef.ExerciseCategoryPullUp},
	{"row", typedef.ExerciseCategoryRow},
	{"curl", typedef.ExerciseCategoryCurl},
	{"calf", typedef.ExerciseCategoryCalfRaise},
	{"plank", typedef.ExerciseCategoryPlank},
	{"press", typedef.ExerciseCategoryShoulderPress},
}

// ExerciseCategory maps an exercise name to a FIT exercise category
func ExerciseCategory(name string) typedef.ExerciseCategory {
	lower := strings.ToLower(name)
	for _, ck := range categoryKeywords {
		if strings.Contains(lower, ck.keyword) {
			return ck.category
		}
	}
	return typedef.ExerciseCategoryUnknown
}

// StartTime returns the workout date at midnight UTC, or fallback when the
// date is unknown or not a calendar date.
func StartTime(date string, fallback time.Time) time.Time {
	t, err := parsing.ParseDate(date)
	if err != nil {
		return fallback
	}
	return t
}

// EncodeFIT creates a strength-training FIT activity from parsed exercises.
// Each exercise contributes one Set message per performed set.
func EncodeFIT(exercises []parsing.ExerciseRecord, start time.Time) ([]byte, error) {
	fit := &proto.FIT{
		Messages: []proto.Message{},
	}

	fileID := mesgdef.NewFileId(nil).
		SetType(typedef.FileActivity).
		SetManufacturer(typedef.ManufacturerDevelopment).
		SetProduct(1).
		SetTimeCreated(start)
	fit.Messages = append(fit.Messages, fileID.ToMesg(nil))

	setTime := start
	var index int
	for _, ex := range exercises {
		category := ExerciseCategory(ex.Name)
		count := setCount(ex.Sets)
		reps, hasReps := parseCount(ex.Reps)

		for i := 0; i < count; i++ {
			setMsg := mesgdef.NewSet(nil).
				SetTimestamp(setTime).
				SetStartTime(setTime).
				SetCategory([]typedef.ExerciseCategory{category}).
				SetSetType(typedef.SetTypeActive).
				SetMessageIndex(typedef.MessageIndex(index))
			if hasReps {
				setMsg.SetRepetitions(uint16(reps))
			}
			if ex.Load != nil {
				setMsg.SetWeightScaled(ex.Load.Kilograms())
			}
			fit.Messages = append(fit.Messages, setMsg.ToMesg(nil))

			setTime = setTime.Add(setSpacing)
			index++
		}
	}

	elapsed := uint32(setTime.Sub(start).Milliseconds())

	lapMsg := mesgdef.NewLap(nil).
		SetTimestamp(setTime).
		SetStartTime(start).
		SetSport(typedef.SportTraining).
		SetMessageIndex(0).
		SetTotalElapsedTime(elapsed).
		SetTotalTimerTime(elapsed)
	fit.Messages = append(fit.Messages, lapMsg.ToMesg(nil))

	sessionMsg := mesgdef.NewSession(nil).
		SetTimestamp(setTime).
		SetStartTime(start).
		SetSport(typedef.SportTraining).
		SetTotalElapsedTime(elapsed).
		SetTotalTimerTime(elapsed)
	fit.Messages = append(fit.Messages, sessionMsg.ToMesg(nil))

	activityMsg := mesgdef.NewActivity(nil).
		SetTimestamp(setTime).
		SetType(typedef.ActivityManual).
		SetNumSessions(1)
	fit.Messages = append(fit.Messages, activityMsg.ToMesg(nil))

	var buf bytes.Buffer
	enc := encoder.New(&buf)
	if err := enc.Encode(fit); err != nil {
		return nil, fmt.Errorf("encoding FIT file: %w", err)
	}
	return buf.Bytes(), nil
}

// setCount returns the number of sets to record, at least one
func setCount(sets string) int {
	n, ok := parseCount(sets)
	if !ok {
		return 1
	}
	return min(n, maxSetsPerExercise)
}

func parseCount(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 || n > 0xFFFF {
		return 0, false
	}
	return n, true
}
