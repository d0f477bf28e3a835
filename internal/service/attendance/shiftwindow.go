package attendance

import (
	"log/slog"
	"time"

	"github.com/workdeskhq/workdesk-backend/internal/domain/schedule"
	"github.com/workdeskhq/workdesk-backend/internal/pkg/civiltime"
)

// resolveOccurrences instantiates every schedule row as a concrete occurrence
// around the reference instant. The civil day is taken in the reporting
// timezone; each occurrence's instants are resolved in the schedule's own
// timezone.
//
// Both today's and yesterday's weekday rows are considered. Without the
// yesterday anchor, an overnight shift that started before midnight and is
// still running would be invisible to "who is active now" queries.
//
// A row with a bad timezone is skipped, never fatal.
func resolveOccurrences(schedules []schedule.ShiftSchedule, at time.Time, reportLoc *time.Location) []schedule.Occurrence {
	parts := civiltime.PartsOf(at, reportLoc)
	today := parts.Date
	yesterday := today.AddDays(-1)

	var occs []schedule.Occurrence
	for _, s := range schedules {
		var baseDate civiltime.Date
		switch s.DayOfWeek {
		case today.Weekday():
			baseDate = today
		case yesterday.Weekday():
			baseDate = yesterday
		default:
			continue
		}

		occ, ok := occurrenceOn(s, baseDate)
		if ok {
			occs = append(occs, occ)
		}
	}
	return occs
}

// occurrenceOn anchors one schedule row at a concrete civil date. Returns
// false when the row's weekday does not match the date or its timezone cannot
// be resolved.
func occurrenceOn(s schedule.ShiftSchedule, baseDate civiltime.Date) (schedule.Occurrence, bool) {
	if s.DayOfWeek != baseDate.Weekday() {
		return schedule.Occurrence{}, false
	}

	loc, err := civiltime.LoadLocation(s.Timezone)
	if err != nil {
		slog.Warn("skipping schedule with unresolvable timezone",
			"schedule_id", s.ID, "timezone", s.Timezone, "error", err)
		return schedule.Occurrence{}, false
	}

	endDate := baseDate
	if s.IsOvernight() {
		endDate = baseDate.AddDays(1)
	}

	return schedule.Occurrence{
		ScheduleID: s.ID,
		WorkerID:   s.WorkerID,
		Start:      civiltime.ToInstant(baseDate, s.StartTime, loc),
		End:        civiltime.ToInstant(endDate, s.EndTime, loc),
		Timezone:   s.Timezone,
		Date:       baseDate,
	}, true
}

// isActiveNow reports whether the instant falls inside the occurrence.
// Both boundaries are inclusive: a worker clocking at the exact edge is
// in-shift. The closed interval matches long-standing behavior; do not
// change it without product sign-off.
func isActiveNow(occ schedule.Occurrence, at time.Time) bool {
	return !at.Before(occ.Start) && !at.After(occ.End)
}

// isWithinEdgeGrace reports whether the instant falls inside the occurrence
// widened by the named grace window on both ends. Event ingestion uses this
// to attach a schedule to events arriving slightly before or after a shift.
func isWithinEdgeGrace(occ schedule.Occurrence, at time.Time, grace time.Duration) bool {
	return !at.Before(occ.Start.Add(-grace)) && !at.After(occ.End.Add(grace))
}
