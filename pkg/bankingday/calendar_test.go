package bankingday

import (
	"testing"
	"time"

	"github.com/bankingdays/bankingdays/pkg/holidays"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func newDefaultCalendar(t *testing.T) *Calendar {
	t.Helper()
	reg, err := holidays.NewRegistry(holidays.Configuration{})
	require.NoError(t, err)
	return New(reg, WithLogger(zap.NewNop()))
}

func TestCalendar_IsBankingDay(t *testing.T) {
	cal := newDefaultCalendar(t)

	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"New Year's Day Monday", date(2024, 1, 1), false},
		{"Saturday", date(2024, 1, 6), false},
		{"Sunday", date(2024, 1, 7), false},
		{"Ordinary Tuesday", date(2024, 1, 2), true},
		{"Memorial Day 2024", date(2024, 5, 27), false},
		{"Memorial Day 2025", date(2025, 5, 26), false},
		{"Memorial Day 2026", date(2026, 5, 25), false},
		{"Memorial Day 2027", date(2027, 5, 31), false},
		{"Memorial Day 2038", date(2038, 5, 31), false},
		{"Observed Independence Day 2026", date(2026, 7, 3), false},
		{"Day after Christmas 2023", date(2023, 12, 26), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cal.IsBankingDay(tt.date), tt.date.Format("2006-01-02 Mon"))
		})
	}
}

func TestCalendar_IsBankingHoliday(t *testing.T) {
	cal := newDefaultCalendar(t)

	assert.True(t, cal.IsBankingHoliday(date(2038, 5, 31)))
	assert.True(t, cal.IsBankingHoliday(date(2024, 1, 1)))
	assert.False(t, cal.IsBankingHoliday(date(2024, 1, 6)), "a weekend is not a holiday")
	assert.False(t, cal.IsBankingHoliday(date(2024, 1, 2)))
}

func TestCalendar_ClassificationProperties(t *testing.T) {
	cal := newDefaultCalendar(t)
	reg := cal.Registry()

	for d := date(2023, 1, 1); d.Before(date(2027, 1, 1)); d = d.AddDate(0, 0, 1) {
		weekend := d.Weekday() == time.Saturday || d.Weekday() == time.Sunday
		if weekend {
			assert.False(t, cal.IsBankingDay(d), d.Format("2006-01-02"))
		}
		assert.Equal(t, !(weekend || reg.IsHoliday(d)), cal.IsBankingDay(d), d.Format("2006-01-02"))
	}
}

func TestCalendar_GetDayInfo(t *testing.T) {
	cal := newDefaultCalendar(t)

	tests := []struct {
		date     time.Time
		wantType DayType
		wantNote string
	}{
		{date(2024, 1, 1), DayTypeHoliday, "New Year's Day"},
		{date(2024, 1, 2), DayTypeBankingDay, ""},
		{date(2024, 1, 6), DayTypeWeekend, ""},
		{date(2026, 7, 3), DayTypeHoliday, "Independence Day (observed)"},
		{date(2026, 7, 4), DayTypeWeekend, "Independence Day"},
	}

	for _, tt := range tests {
		info := cal.GetDayInfo(tt.date)
		assert.Equal(t, tt.wantType, info.Type, tt.date.Format("2006-01-02"))
		assert.Equal(t, tt.wantNote, info.Note, tt.date.Format("2006-01-02"))
		assert.Equal(t, tt.wantType == DayTypeBankingDay, info.IsBankingDay)
	}
}

func TestCalendar_GetMonthInfo(t *testing.T) {
	cal := newDefaultCalendar(t)

	tests := []struct {
		name         string
		year         int
		month        time.Month
		wantDays     int
		wantBanking  int
		wantWeekends int
		wantHolidays int
	}{
		// New Year's Day and MLK Day
		{"January 2024", 2024, time.January, 31, 21, 8, 2},
		// leap February with Presidents Day
		{"February 2024", 2024, time.February, 29, 20, 8, 1},
		// observed Friday July 3; the 4th itself is a weekend day
		{"July 2026", 2026, time.July, 31, 22, 8, 1},
		{"March 2024", 2024, time.March, 31, 21, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			monthInfo := cal.GetMonthInfo(tt.year, tt.month)

			assert.Len(t, monthInfo.Days, tt.wantDays)
			assert.Equal(t, tt.wantBanking, monthInfo.BankingDays, "BankingDays")
			assert.Equal(t, tt.wantWeekends, monthInfo.Weekends, "Weekends")
			assert.Equal(t, tt.wantHolidays, monthInfo.Holidays, "Holidays")
		})
	}
}

func TestDayType_String(t *testing.T) {
	assert.Equal(t, "banking-day", DayTypeBankingDay.String())
	assert.Equal(t, "weekend", DayTypeWeekend.String())
	assert.Equal(t, "holiday", DayTypeHoliday.String())
	assert.Equal(t, "unknown", DayType(0).String())
}
