package parsing

import (
	"fmt"
	"regexp"
	"time"
)

// Apr 7 / Apr 7th / Apr 7, 2025. The day may carry an ordinal suffix, which
// is dropped; "Sep 2024" is not a day.
var datePattern = regexp.MustCompile(`\b((?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+\d{1,2})(?:st|nd|rd|th)?\b(?:,\s+(\d{4}))?`)

// DateLayout is the layout of a year-complete extracted date
const DateLayout = "Jan 2, 2006"

// ExtractDate returns the first date-like substring in text such as
// "Apr 7" or "Apr 7, 2025" as "Jan 2, 2006". A match without a year gets the
// year of now. Returns "Unknown Date" if nothing matches.
func ExtractDate(text string, now time.Time) string {
	m := datePattern.FindStringSubmatch(text)
	if m == nil {
		return UnknownDate
	}
	if m[2] == "" {
		return fmt.Sprintf("%s, %d", m[1], now.Year())
	}
	return fmt.Sprintf("%s, %s", m[1], m[2])
}

// ParseDate converts an extracted date back into a time.
// It fails for "Unknown Date" and for dates that are not on the calendar.
func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing workout date %q: %w", date, err)
	}
	return t, nil
}
