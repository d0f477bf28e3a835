package attendance

import (
	"time"

	"github.com/workdeskhq/workdesk-backend/internal/domain/presence"
	"github.com/workdeskhq/workdesk-backend/internal/domain/schedule"
	"github.com/workdeskhq/workdesk-backend/internal/pkg/civiltime"
)

// bucketTotals accumulates one worker's minutes for one bucket key. Minutes
// round at every chunk boundary, which is payroll-grade, not audit-grade.
type bucketTotals struct {
	Worked   int
	Break    int
	Bathroom int
	Expected int
}

// observedTotals is the observed pass of the aggregator: it replays one
// worker's events into status intervals, clips them to the report range,
// splits every chunk at local midnight so no chunk spans two calendar days,
// and attributes each chunk's minutes to its day's bucket.
//
// Events should start two days before the range so the replay enters the
// range with the correct state; only overlap with [rangeStart, until) counts.
func observedTotals(workerID string, events []presence.Event, rangeStart, until time.Time, loc *time.Location, g civiltime.Granularity, acc map[string]*bucketTotals) {
	for _, iv := range replayIntervals(workerID, events, until) {
		if !iv.IsOnline {
			continue
		}

		start, end := iv.Start, iv.End
		if start.Before(rangeStart) {
			start = rangeStart
		}
		if end.After(until) {
			end = until
		}
		if !end.After(start) {
			continue
		}

		for _, chunk := range splitAtMidnights(start, end, loc) {
			day := civiltime.DateOf(chunk.start, loc)
			totals := bucketFor(acc, civiltime.BucketKey(day, g))

			minutes := civiltime.RoundedMinutes(chunk.end.Sub(chunk.start))
			switch iv.Status {
			case presence.StatusWorking:
				totals.Worked += minutes
			case presence.StatusBreak:
				totals.Break += minutes
			case presence.StatusBathroom:
				totals.Bathroom += minutes
			}
		}
	}
}

// expectedTotals is the expected pass: for every calendar day in range it
// anchors the worker's schedule rows at that day and the day before, then
// intersects each occurrence with the single day's window. An overnight shift
// thus contributes its first half to the start day's bucket and its second
// half to the next day's, matching day-local payroll reporting.
func expectedTotals(schedules []schedule.ShiftSchedule, from, to civiltime.Date, loc *time.Location, g civiltime.Granularity, acc map[string]*bucketTotals) {
	for day := from; !day.After(to); day = day.AddDays(1) {
		dayStart := civiltime.DayStart(day, loc)
		dayEnd := civiltime.NextDayStart(day, loc)

		for _, s := range schedules {
			for _, anchor := range []civiltime.Date{day, day.AddDays(-1)} {
				occ, ok := occurrenceOn(s, anchor)
				if !ok {
					continue
				}

				start, end := occ.Start, occ.End
				if start.Before(dayStart) {
					start = dayStart
				}
				if end.After(dayEnd) {
					end = dayEnd
				}
				if !end.After(start) {
					continue
				}

				totals := bucketFor(acc, civiltime.BucketKey(day, g))
				totals.Expected += civiltime.RoundedMinutes(end.Sub(start))
			}
		}
	}
}

func bucketFor(acc map[string]*bucketTotals, key string) *bucketTotals {
	if acc[key] == nil {
		acc[key] = &bucketTotals{}
	}
	return acc[key]
}

type timeSpan struct {
	start, end time.Time
}

// splitAtMidnights cuts [start, end) at every local-midnight boundary. The
// chunk lengths always sum to the original interval length; no minute is
// lost or double-counted at a boundary.
func splitAtMidnights(start, end time.Time, loc *time.Location) []timeSpan {
	var spans []timeSpan
	cur := start
	for cur.Before(end) {
		day := civiltime.DateOf(cur, loc)
		next := civiltime.NextDayStart(day, loc)
		if next.After(end) {
			next = end
		}
		spans = append(spans, timeSpan{start: cur, end: next})
		cur = next
	}
	return spans
}
