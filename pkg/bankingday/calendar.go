// Package bankingday classifies dates as banking days and steps across
// them, using a holidays.Registry for holiday lookups.
package bankingday

import (
	"time"

	"github.com/bankingdays/bankingdays/pkg/dateutil"
	"github.com/bankingdays/bankingdays/pkg/holidays"
	"go.uber.org/zap"
)

// DayType represents the type of day
type DayType int

const (
	DayTypeBankingDay DayType = iota + 1
	DayTypeWeekend
	DayTypeHoliday
)

func (t DayType) String() string {
	switch t {
	case DayTypeBankingDay:
		return "banking-day"
	case DayTypeWeekend:
		return "weekend"
	case DayTypeHoliday:
		return "holiday"
	}
	return "unknown"
}

// MarshalText renders the day type by name in encoded reports
func (t DayType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// DayInfo represents information about a specific day
type DayInfo struct {
	Date         time.Time
	Type         DayType
	IsBankingDay bool
	Note         string
}

// MonthInfo represents calendar information for a month
type MonthInfo struct {
	Year        int
	Month       time.Month
	BankingDays int
	Weekends    int
	Holidays    int // holidays on weekdays only
	Days        []DayInfo
}

// Calendar answers banking-day questions for a fixed Registry. It holds
// no mutable state and is safe for concurrent use.
type Calendar struct {
	registry *holidays.Registry
	logger   *zap.Logger
}

// Option configures a Calendar
type Option func(*Calendar)

// WithLogger sets the logger used for stepping diagnostics
func WithLogger(logger *zap.Logger) Option {
	return func(c *Calendar) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a Calendar backed by registry
func New(registry *holidays.Registry, opts ...Option) *Calendar {
	c := &Calendar{
		registry: registry,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Registry returns the holiday registry backing the calendar
func (c *Calendar) Registry() *holidays.Registry {
	return c.registry
}

// IsBankingDay reports whether date is neither a weekend day nor a holiday
func (c *Calendar) IsBankingDay(date time.Time) bool {
	return dateutil.IsWeekday(date) && !c.registry.IsHoliday(date)
}

// IsBankingHoliday reports whether date is a bank holiday
func (c *Calendar) IsBankingHoliday(date time.Time) bool {
	return c.registry.IsHoliday(date)
}

// GetDayInfo returns detailed info for a specific day
func (c *Calendar) GetDayInfo(date time.Time) DayInfo {
	info := DayInfo{Date: date}

	name, holiday := c.registry.HolidayName(date)
	switch {
	case dateutil.IsWeekend(date):
		info.Type = DayTypeWeekend
	case holiday:
		info.Type = DayTypeHoliday
	default:
		info.Type = DayTypeBankingDay
		info.IsBankingDay = true
	}
	if holiday {
		info.Note = name
	}
	return info
}

// GetMonthInfo returns calendar info for the entire month
func (c *Calendar) GetMonthInfo(year int, month time.Month) *MonthInfo {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := dateutil.DaysInMonth(first)

	monthInfo := &MonthInfo{
		Year:  year,
		Month: month,
		Days:  make([]DayInfo, 0, daysInMonth),
	}

	for day := 1; day <= daysInMonth; day++ {
		info := c.GetDayInfo(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
		switch info.Type {
		case DayTypeBankingDay:
			monthInfo.BankingDays++
		case DayTypeWeekend:
			monthInfo.Weekends++
		case DayTypeHoliday:
			monthInfo.Holidays++
		}
		monthInfo.Days = append(monthInfo.Days, info)
	}

	return monthInfo
}
