package holidays

import "time"

// LastOccurrence selects the last matching weekday of the month
const LastOccurrence = -1

// FloatingRule describes a holiday observed on the Nth (or last) given
// weekday of a month.
type FloatingRule struct {
	Weekday    time.Weekday
	Occurrence int // 1-5, or LastOccurrence
}

var defaultFixed = []string{
	"01-01", // New Year's Day
	"06-19", // Juneteenth
	"07-04", // Independence Day
	"11-11", // Veterans Day
	"12-25", // Christmas Day
}

var defaultFloating = map[time.Month]FloatingRule{
	time.January:   {Weekday: time.Monday, Occurrence: 3},              // Martin Luther King Jr. Day
	time.February:  {Weekday: time.Monday, Occurrence: 3},              // Presidents Day
	time.May:       {Weekday: time.Monday, Occurrence: LastOccurrence}, // Memorial Day
	time.September: {Weekday: time.Monday, Occurrence: 1},              // Labor Day
	time.October:   {Weekday: time.Monday, Occurrence: 2},              // Columbus Day
	time.November:  {Weekday: time.Thursday, Occurrence: 4},            // Thanksgiving Day
}

var fixedNames = map[string]string{
	"01-01": "New Year's Day",
	"06-19": "Juneteenth",
	"07-04": "Independence Day",
	"11-11": "Veterans Day",
	"12-25": "Christmas Day",
}

var floatingNames = map[time.Month]string{
	time.January:   "Martin Luther King Jr. Day",
	time.February:  "Presidents Day",
	time.May:       "Memorial Day",
	time.September: "Labor Day",
	time.October:   "Columbus Day",
	time.November:  "Thanksgiving Day",
}

// DefaultFixedDateHolidays returns a copy of the built-in MM-DD holidays
func DefaultFixedDateHolidays() []string {
	out := make([]string, len(defaultFixed))
	copy(out, defaultFixed)
	return out
}

// DefaultFloatingDateHolidays returns a copy of the built-in floating
// rules keyed by MM.
func DefaultFloatingDateHolidays() map[string]FloatingRule {
	out := make(map[string]FloatingRule, len(defaultFloating))
	for month, rule := range defaultFloating {
		out[monthKey(month)] = rule
	}
	return out
}
