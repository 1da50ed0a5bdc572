// Package holidays decides whether a date is a bank holiday under a
// configurable set of fixed (MM-DD) and floating (Nth weekday of month)
// rules.
package holidays

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"time"

	"github.com/bankingdays/bankingdays/pkg/dateutil"
	"go.uber.org/zap"
)

var (
	fixedDatePattern = regexp.MustCompile(`^\d{2}-\d{2}$`)
	monthKeyPattern  = regexp.MustCompile(`^\d{2}$`)
)

// Configuration is the caller-supplied partial override of the defaults.
// Fixed dates are appended to the defaults; a floating rule replaces the
// default rule for its month.
type Configuration struct {
	FixedDateHolidays    []string
	FloatingDateHolidays map[string]FloatingRule // key: "MM"

	// ExactDatesOnly disables observing Saturday fixed holidays on the
	// preceding Friday and Sunday ones on the following Monday.
	ExactDatesOnly bool
}

// Observance is a single holiday date within a year
type Observance struct {
	Date time.Time
	Name string
}

// Registry holds merged holiday rules. It is never mutated after
// NewRegistry returns and may be shared between goroutines.
type Registry struct {
	fixed     map[string]struct{}
	fixedList []string
	floating  map[time.Month]FloatingRule
	observed  bool
	logger    *zap.Logger
}

// Option configures a Registry
type Option func(*Registry)

// WithLogger sets the logger used during construction
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry validates cfg and merges it into the built-in defaults.
// Any malformed entry fails the whole construction with a
// *ConfigurationError.
func NewRegistry(cfg Configuration, opts ...Option) (*Registry, error) {
	r := &Registry{
		fixed:    make(map[string]struct{}, len(defaultFixed)+len(cfg.FixedDateHolidays)),
		floating: make(map[time.Month]FloatingRule, len(defaultFloating)+len(cfg.FloatingDateHolidays)),
		observed: !cfg.ExactDatesOnly,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, value := range cfg.FixedDateHolidays {
		if err := validateFixedDate(value); err != nil {
			return nil, &ConfigurationError{
				Field: "fixed_date_holidays",
				Value: value,
				Err:   err,
			}
		}
	}

	overrides := make(map[time.Month]FloatingRule, len(cfg.FloatingDateHolidays))
	for key, rule := range cfg.FloatingDateHolidays {
		month, err := parseMonthKey(key)
		if err == nil {
			err = validateFloatingRule(rule)
		}
		if err != nil {
			return nil, &ConfigurationError{
				Field: "floating_date_holidays",
				Key:   key,
				Value: fmt.Sprintf("[%d, %d]", int(rule.Weekday), rule.Occurrence),
				Err:   err,
			}
		}
		overrides[month] = rule
	}

	r.fixedList = append(DefaultFixedDateHolidays(), cfg.FixedDateHolidays...)
	for _, md := range r.fixedList {
		r.fixed[md] = struct{}{}
	}

	for month, rule := range defaultFloating {
		r.floating[month] = rule
	}
	for month, rule := range overrides {
		r.floating[month] = rule
	}

	r.logger.Debug("Holiday registry built",
		zap.Int("fixed_dates", len(r.fixed)),
		zap.Int("floating_rules", len(r.floating)),
		zap.Int("floating_overrides", len(overrides)),
		zap.Bool("observe_weekend_substitutes", r.observed))

	return r, nil
}

// IsHoliday reports whether date is a fixed or floating holiday. A fixed
// holiday falling on Saturday is also reported on the Friday before it,
// and one falling on Sunday on the Monday after it, unless the registry
// was built with ExactDatesOnly.
func (r *Registry) IsHoliday(date time.Time) bool {
	return r.isFixedHoliday(date) || r.isFloatingHoliday(date)
}

// HolidayName returns the holiday name for date, or false when date is
// not a holiday. Caller-supplied rules are reported as "Holiday".
func (r *Registry) HolidayName(date time.Time) (string, bool) {
	if md := dateutil.MonthDay(date); r.hasFixed(md) {
		return fixedName(md), true
	}

	if r.observed {
		var adjacent time.Time
		switch date.Weekday() {
		case time.Friday:
			adjacent = date.AddDate(0, 0, 1)
		case time.Monday:
			adjacent = date.AddDate(0, 0, -1)
		}
		if !adjacent.IsZero() {
			if md := dateutil.MonthDay(adjacent); r.hasFixed(md) {
				return fixedName(md) + " (observed)", true
			}
		}
	}

	if r.isFloatingHoliday(date) {
		month := date.Month()
		if def, ok := defaultFloating[month]; ok && def == r.floating[month] {
			return floatingNames[month], true
		}
		return "Holiday", true
	}

	return "", false
}

// HolidaysInYear lists every date in year for which IsHoliday is true
func (r *Registry) HolidaysInYear(year int) []Observance {
	var out []Observance
	for date := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC); date.Year() == year; date = date.AddDate(0, 0, 1) {
		if name, ok := r.HolidayName(date); ok {
			out = append(out, Observance{Date: date, Name: name})
		}
	}
	return out
}

// FixedDates returns the merged MM-DD list, sorted, duplicates included
func (r *Registry) FixedDates() []string {
	out := make([]string, len(r.fixedList))
	copy(out, r.fixedList)
	sort.Strings(out)
	return out
}

// FloatingRules returns a copy of the merged floating rules keyed by MM
func (r *Registry) FloatingRules() map[string]FloatingRule {
	out := make(map[string]FloatingRule, len(r.floating))
	for month, rule := range r.floating {
		out[monthKey(month)] = rule
	}
	return out
}

// ObservesWeekendSubstitutes reports whether Friday/Monday substitution is on
func (r *Registry) ObservesWeekendSubstitutes() bool {
	return r.observed
}

func (r *Registry) hasFixed(md string) bool {
	_, ok := r.fixed[md]
	return ok
}

func (r *Registry) isFixedHoliday(date time.Time) bool {
	if r.hasFixed(dateutil.MonthDay(date)) {
		return true
	}
	if !r.observed {
		return false
	}

	switch date.Weekday() {
	case time.Friday:
		return r.hasFixed(dateutil.MonthDay(date.AddDate(0, 0, 1)))
	case time.Monday:
		return r.hasFixed(dateutil.MonthDay(date.AddDate(0, 0, -1)))
	}
	return false
}

func (r *Registry) isFloatingHoliday(date time.Time) bool {
	rule, ok := r.floating[date.Month()]
	if !ok || date.Weekday() != rule.Weekday {
		return false
	}

	day := date.Day()
	if rule.Occurrence == LastOccurrence {
		// no later occurrence of this weekday left in the month
		return day+7 > dateutil.DaysInMonth(date)
	}
	return (day+6)/7 == rule.Occurrence
}

func validateFixedDate(value string) error {
	if !fixedDatePattern.MatchString(value) {
		return ErrInvalidFixedDate
	}

	month, _ := strconv.Atoi(value[:2])
	day, _ := strconv.Atoi(value[3:])
	if month < 1 || month > 12 {
		return fmt.Errorf("%w: month %02d out of range", ErrInvalidFixedDate, month)
	}

	// 2023 is not a leap year, so 02-29 is rejected
	days := time.Date(2023, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day < 1 || day > days {
		return fmt.Errorf("%w: day %02d out of range for month %02d", ErrInvalidFixedDate, day, month)
	}
	return nil
}

func parseMonthKey(key string) (time.Month, error) {
	if !monthKeyPattern.MatchString(key) {
		return 0, fmt.Errorf("%w: month key must be in the format MM", ErrInvalidFloatingRule)
	}
	month, _ := strconv.Atoi(key)
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("%w: month %s out of range", ErrInvalidFloatingRule, key)
	}
	return time.Month(month), nil
}

func validateFloatingRule(rule FloatingRule) error {
	if rule.Weekday < time.Sunday || rule.Weekday > time.Saturday {
		return fmt.Errorf("%w: weekday %d out of range 0-6", ErrInvalidFloatingRule, int(rule.Weekday))
	}
	if rule.Occurrence != LastOccurrence && (rule.Occurrence < 1 || rule.Occurrence > 5) {
		return fmt.Errorf("%w: occurrence %d must be 1-5 or -1", ErrInvalidFloatingRule, rule.Occurrence)
	}
	return nil
}

func fixedName(md string) string {
	if name, ok := fixedNames[md]; ok {
		return name
	}
	return "Holiday"
}

func monthKey(month time.Month) string {
	return fmt.Sprintf("%02d", int(month))
}
