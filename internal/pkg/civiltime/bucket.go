package civiltime

import (
	"fmt"
	"time"
)

// Granularity selects how aggregation buckets are keyed.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// ParseGranularity validates a requested granularity string.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case GranularityDay, GranularityWeek, GranularityMonth:
		return Granularity(s), nil
	}
	return "", fmt.Errorf("invalid granularity %q", s)
}

// BucketKey maps a civil date to its bucket identifier:
// day -> "YYYY-MM-DD", week -> ISO-8601 "YYYY-Www", month -> "YYYY-MM".
// ISO weeks start on Monday; week 1 contains the ISO year's first Thursday,
// so the ISO year at the edges can differ from the calendar year.
func BucketKey(d Date, g Granularity) string {
	switch g {
	case GranularityWeek:
		year, week := time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC).ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case GranularityMonth:
		return d.MonthKey()
	default:
		return d.String()
	}
}
