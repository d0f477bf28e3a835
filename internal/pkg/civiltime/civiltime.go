// Package civiltime resolves civil wall-clock values (dates, times of day,
// IANA timezones) to absolute instants and back. Everything here is pure;
// callers thread the reference instant through explicitly so the whole engine
// runs against fixed clocks in tests.
package civiltime

import (
	"fmt"
	"math"
	"time"
)

// Date is a civil calendar date with no time of day or zone attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// DateOf extracts the civil date of an instant in the given timezone.
func DateOf(t time.Time, loc *time.Location) Date {
	local := t.In(loc)
	return Date{Year: local.Year(), Month: local.Month(), Day: local.Day()}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// AddDays performs calendar arithmetic anchored at noon UTC so a DST shift
// can never roll the result into the wrong day.
func (d Date) AddDays(n int) Date {
	t := time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Weekday returns the day of week with Sunday=0 .. Saturday=6.
func (d Date) Weekday() int {
	t := time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC)
	return int(t.Weekday())
}

// Before reports whether d falls before o.
func (d Date) Before(o Date) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// After reports whether d falls after o.
func (d Date) After(o Date) bool {
	return o.Before(d)
}

// MonthKey returns the "YYYY-MM" key used to scope incidents and invoices.
func (d Date) MonthKey() string {
	return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
}

// TimeOfDay is a wall-clock time with no date or zone attached.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS" (seconds are dropped).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		t, err = time.Parse("15:04:05", s)
		if err != nil {
			return TimeOfDay{}, fmt.Errorf("invalid time of day %q: %w", s, err)
		}
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Minutes returns the time of day as minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// After reports whether t is a later wall-clock time than o.
func (t TimeOfDay) After(o TimeOfDay) bool {
	return t.Minutes() > o.Minutes()
}

// LoadLocation resolves an IANA timezone name. An unresolvable name is a
// configuration error on the schedule row that carries it; callers skip the
// row rather than failing the whole computation.
func LoadLocation(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unresolvable timezone %q: %w", name, err)
	}
	return loc, nil
}

// ToInstant resolves a civil (date, time of day, timezone) triple to an
// absolute instant, using the zone's offset rules at that civil time.
func ToInstant(d Date, tod TimeOfDay, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, tod.Hour, tod.Minute, 0, 0, loc)
}

// Parts is the decomposition of an instant in a timezone.
type Parts struct {
	Date      Date
	Weekday   int // Sunday=0 .. Saturday=6
	UTCOffset int // seconds east of UTC
}

// PartsOf decomposes an instant in the given timezone.
func PartsOf(t time.Time, loc *time.Location) Parts {
	local := t.In(loc)
	_, offset := local.Zone()
	return Parts{
		Date:    Date{Year: local.Year(), Month: local.Month(), Day: local.Day()},
		Weekday: int(local.Weekday()),
		UTCOffset: offset,
	}
}

// DayStart returns the first instant of the civil day in the given timezone.
func DayStart(d Date, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// NextDayStart returns the first instant of the following civil day. Used as
// the exclusive upper bound when clipping intervals to a single day.
func NextDayStart(d Date, loc *time.Location) time.Time {
	n := d.AddDays(1)
	return time.Date(n.Year, n.Month, n.Day, 0, 0, 0, 0, loc)
}

// NormalizeDayOfWeek maps a stored day-of-week value to the canonical
// Sunday=0 .. Saturday=6 encoding. Legacy rows written with the ISO-8601
// encoding (Monday=1 .. Sunday=7) agree with the canonical form on 1..6 and
// differ only at Sunday, so 7 is accepted as Sunday. Anything else is a
// configuration error.
func NormalizeDayOfWeek(d int) (int, error) {
	if d < 0 || d > 7 {
		return 0, fmt.Errorf("day_of_week %d out of range", d)
	}
	return d % 7, nil
}

// RoundedMinutes converts a duration to whole minutes, rounding half away
// from zero. Payroll-grade, not audit-grade: rounding happens at every chunk
// boundary.
func RoundedMinutes(d time.Duration) int {
	return int(math.Round(d.Minutes()))
}
