package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/workdeskhq/workdesk-backend/internal/domain/attendance"
	"github.com/workdeskhq/workdesk-backend/internal/domain/incident"
	"github.com/workdeskhq/workdesk-backend/internal/domain/schedule"
)

// RunChecks implements attendance.AttendanceService. It sweeps the shift
// occurrences around now (yesterday-anchored overnight occurrences included,
// so a night shift that just ended is still checked) and creates late and
// absence incidents where their conditions hold.
//
// Idempotency is enforced by the store's unique index over the incident
// tuple, so concurrent sweeps cannot duplicate; a lost insert race is a
// silent no-op.
func (s *AttendanceServiceImpl) RunChecks(ctx context.Context, now time.Time) (attendance.RunChecksResponse, error) {
	var res attendance.RunChecksResponse

	schedules, err := s.ShiftScheduleRepository.ListActive(ctx)
	if err != nil {
		return res, err
	}

	grace := time.Duration(s.cfg.LateGraceMinutes) * time.Minute

	for _, occ := range resolveOccurrences(schedules, now, s.reportLoc) {
		// Qualifying contact is any online or heartbeat event inside the
		// occurrence window, boundaries included.
		firstSeen, err := s.EventRepository.FirstContactBetween(ctx, occ.WorkerID, occ.Start, occ.End)
		if err != nil {
			return res, err
		}

		lateThreshold := occ.Start.Add(grace)
		if !now.Before(lateThreshold) && (firstSeen == nil || firstSeen.At.After(lateThreshold)) {
			created, err := s.IncidentRepository.CreateIfAbsent(ctx, s.lateIncident(occ))
			if err != nil {
				return res, err
			}
			if created {
				res.Created.Late++
			}
		}

		if now.After(occ.End) && firstSeen == nil {
			created, err := s.IncidentRepository.CreateIfAbsent(ctx, s.absenceIncident(occ))
			if err != nil {
				return res, err
			}
			if created {
				res.Created.Absence++
			}
		}
	}

	return res, nil
}

func (s *AttendanceServiceImpl) lateIncident(occ schedule.Occurrence) incident.Incident {
	return incident.Incident{
		WorkerID:   occ.WorkerID,
		MonthKey:   occ.Date.MonthKey(),
		Kind:       incident.KindAttendance,
		Type:       incident.TypeLate,
		ScheduleID: occ.ScheduleID,
		Date:       occ.Date.String(),
		Amount:     s.cfg.LateAmount,
		Reason:     fmt.Sprintf("no contact within %d minutes of shift start", s.cfg.LateGraceMinutes),
		Status:     incident.StatusUnjustified,
	}
}

func (s *AttendanceServiceImpl) absenceIncident(occ schedule.Occurrence) incident.Incident {
	return incident.Incident{
		WorkerID:   occ.WorkerID,
		MonthKey:   occ.Date.MonthKey(),
		Kind:       incident.KindAttendance,
		Type:       incident.TypeAbsence,
		ScheduleID: occ.ScheduleID,
		Date:       occ.Date.String(),
		Amount:     s.cfg.AbsenceAmount,
		Reason:     "no presence during scheduled shift",
		Status:     incident.StatusUnjustified,
	}
}
