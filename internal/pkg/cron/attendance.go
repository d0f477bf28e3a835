package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/workdeskhq/workdesk-backend/internal/domain/attendance"
)

type AttendanceJobs struct {
	attendanceSvc attendance.AttendanceService
}

func NewAttendanceJobs(attendanceSvc attendance.AttendanceService) *AttendanceJobs {
	return &AttendanceJobs{attendanceSvc: attendanceSvc}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("attendance_checks", 5*time.Minute, j.RunAttendanceChecks)
}

// RunAttendanceChecks sweeps today's shift occurrences for lateness and
// absence. The sweep is idempotent; running it every few minutes only ever
// adds incidents the moment their conditions first hold.
func (j *AttendanceJobs) RunAttendanceChecks(ctx context.Context) error {
	res, err := j.attendanceSvc.RunChecks(ctx, time.Now())
	if err != nil {
		return err
	}

	if res.Created.Late > 0 || res.Created.Absence > 0 {
		slog.Info("Cron: attendance checks created incidents",
			"late", res.Created.Late,
			"absence", res.Created.Absence)
	}
	return nil
}
