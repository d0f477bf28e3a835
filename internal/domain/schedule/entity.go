package schedule

import (
	"time"

	"github.com/workdeskhq/workdesk-backend/internal/pkg/civiltime"
)

// ShiftSchedule is one recurring weekly shift row. DayOfWeek is always the
// canonical Sunday=0 .. Saturday=6 encoding; repositories normalize legacy
// values on read. A shift whose end time is less than or equal to its start
// time is an overnight shift and ends on the calendar day after its start.
type ShiftSchedule struct {
	ID        string
	WorkerID  string
	DayOfWeek int
	StartTime civiltime.TimeOfDay
	EndTime   civiltime.TimeOfDay
	Timezone  string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time

	// DTO
	WorkerName *string
}

// IsOvernight reports whether the shift crosses midnight.
func (s ShiftSchedule) IsOvernight() bool {
	return !s.EndTime.After(s.StartTime)
}

// Occurrence is one concrete calendar instantiation of a schedule row,
// resolved to absolute instants. Derived on demand, never persisted.
type Occurrence struct {
	ScheduleID string
	WorkerID   string
	Start      time.Time
	End        time.Time
	Timezone   string
	// Date is the civil date of the occurrence's start in its own timezone;
	// incidents are keyed by it.
	Date civiltime.Date
}
