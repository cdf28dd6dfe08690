package workcalendar

import (
	"errors"
	"time"
)

var ErrEndBeforeStart = errors.New("end date before start date")

// Calendar answers whether a given day is a public holiday. Implementations
// must be side-effect free; the duration computation below is pure so the
// authoritative value and any advisory preview can never drift.
type Calendar interface {
	IsHoliday(day time.Time) bool
}

// NoHolidays is the zero calendar: weekends are the only non-working days.
type NoHolidays struct{}

func (NoHolidays) IsHoliday(time.Time) bool { return false }

// Workdays counts the working days between start and end inclusive,
// excluding Saturdays, Sundays and calendar holidays. Time-of-day and
// timezone components of the inputs are ignored.
func Workdays(start, end time.Time, cal Calendar) (int, error) {
	s := truncate(start)
	e := truncate(end)
	if e.Before(s) {
		return 0, ErrEndBeforeStart
	}
	if cal == nil {
		cal = NoHolidays{}
	}

	days := 0
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}
		if cal.IsHoliday(d) {
			continue
		}
		days++
	}
	return days, nil
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
