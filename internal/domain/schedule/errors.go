package schedule

import "errors"

var (
	ErrScheduleNotFound  = errors.New("shift schedule not found")
	ErrInvalidDayOfWeek  = errors.New("day_of_week must be between 0 (Sunday) and 6 (Saturday)")
	ErrInvalidTimeOfDay  = errors.New("start and end must be HH:MM times of day")
	ErrInvalidTimezone   = errors.New("timezone must be a valid IANA name")
	ErrWorkerRequired    = errors.New("worker_id is required")
)
