package incident

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind of every incident this engine creates.
const KindAttendance = "attendance"

// Incident sub-types.
const (
	TypeLate    = "late"
	TypeAbsence = "absence"
)

// Initial status; justification flows are handled elsewhere.
const StatusUnjustified = "unjustified"

// Incident is a persisted attendance incident. At most one row exists per
// (worker, month, kind, type, schedule, date) tuple; the store enforces this
// with a unique index so concurrent detector runs cannot duplicate.
type Incident struct {
	ID         string
	WorkerID   string
	MonthKey   string
	Kind       string
	Type       string
	ScheduleID string
	Date       string // YYYY-MM-DD, civil date of the shift occurrence
	Amount     decimal.Decimal
	Reason     string
	Status     string
	CreatedAt  time.Time

	// DTO
	WorkerName *string
}
