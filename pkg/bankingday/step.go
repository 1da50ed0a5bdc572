package bankingday

import (
	"time"

	"go.uber.org/zap"
)

// AddBankingDays returns the date n banking days away from date.
//
// The walk moves one calendar day at a time in the direction of n and
// counts only the days it lands on that are banking days; date itself is
// never counted. n == 0 returns date unchanged, and negative n walks
// backwards.
//
// Cost is linear in the number of calendar days crossed. Holidays are not
// evenly spaced, so there is no closed-form shortcut.
func (c *Calendar) AddBankingDays(date time.Time, n int) time.Time {
	step, count := direction(n)
	return c.walk(date, step, count, n)
}

// SubtractBankingDays returns the date n banking days before date
func (c *Calendar) SubtractBankingDays(date time.Time, n int) time.Time {
	step, count := direction(n)
	return c.walk(date, -step, count, n)
}

// direction splits n into a unit step and an unsigned count, so that
// math.MinInt keeps its magnitude.
func direction(n int) (int, uint) {
	if n < 0 {
		return -1, uint(-(n + 1)) + 1
	}
	return 1, uint(n)
}

func (c *Calendar) walk(date time.Time, step int, count uint, n int) time.Time {
	if count == 0 {
		return date
	}

	day := date
	crossed := 0
	for count > 0 {
		day = day.AddDate(0, 0, step)
		crossed++
		if c.IsBankingDay(day) {
			count--
		}
	}

	if ce := c.logger.Check(zap.DebugLevel, "Stepped banking days"); ce != nil {
		ce.Write(
			zap.String("from", date.Format("2006-01-02")),
			zap.String("to", day.Format("2006-01-02")),
			zap.Int("banking_days", n),
			zap.Int("direction", step),
			zap.Int("calendar_days", crossed))
	}

	return day
}

// NextBankingDay returns the first banking day after date
func (c *Calendar) NextBankingDay(date time.Time) time.Time {
	return c.AddBankingDays(date, 1)
}

// PreviousBankingDay returns the last banking day before date
func (c *Calendar) PreviousBankingDay(date time.Time) time.Time {
	return c.AddBankingDays(date, -1)
}
