package attendance

import (
	"time"

	"github.com/workdeskhq/workdesk-backend/internal/domain/presence"
	"github.com/workdeskhq/workdesk-backend/internal/pkg/civiltime"
	"github.com/workdeskhq/workdesk-backend/internal/pkg/validator"
)

// ExpectedNowItem is one shift occurrence active at the reference instant,
// joined with the worker it belongs to.
type ExpectedNowItem struct {
	ScheduleID string    `json:"schedule_id"`
	WorkerID   string    `json:"worker_id"`
	WorkerName string    `json:"worker_name"`
	Role       string    `json:"role"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Timezone   string    `json:"timezone"`
}

// EventMeta carries the wire annotations of a presence event.
type EventMeta struct {
	Action string `json:"action,omitempty"`
	Phase  string `json:"phase,omitempty"`
}

// RecordEventRequest ingests one presence event. At is optional; when zero
// the server's reference instant is used.
type RecordEventRequest struct {
	WorkerID  string    `json:"worker_id"`
	EventType string    `json:"event_type"`
	Meta      EventMeta `json:"meta"`
	At        time.Time `json:"at,omitempty"`
}

func (r RecordEventRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.WorkerID) {
		errs = append(errs, validator.ValidationError{Field: "worker_id", Message: "is required"})
	}
	if _, err := presence.DecodeKind(r.EventType, r.Meta.Action, r.Meta.Phase); err != nil {
		errs = append(errs, validator.ValidationError{Field: "event_type", Message: "unknown event type/meta combination"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// StateResponse is the API shape of a derived presence state.
type StateResponse struct {
	WorkerID      string    `json:"worker_id"`
	IsOnline      bool      `json:"is_online"`
	Status        string    `json:"status"`
	EffectiveFrom time.Time `json:"effective_from"`
}

// RecordEventResponse reports ingestion of one event. Events are always
// accepted, in or out of shift; ResolvedScheduleID says which occurrence (if
// any) was active at the event instant. CacheUpdated is false when the
// presence cache could not be refreshed; the event log is still authoritative.
type RecordEventResponse struct {
	Accepted           bool          `json:"accepted"`
	ResolvedScheduleID *string       `json:"resolved_schedule_id"`
	State              StateResponse `json:"resulting_state"`
	CacheUpdated       bool          `json:"cache_updated"`
}

// PresenceItem is one worker's live presence for dashboards. RealOnline
// requires a fresh heartbeat on top of the persisted online flag, because a
// closed browser emits no explicit offline event.
type PresenceItem struct {
	WorkerID      string     `json:"worker_id"`
	WorkerName    string     `json:"worker_name"`
	Status        string     `json:"status"`
	IsOnline      bool       `json:"is_online"`
	RealOnline    bool       `json:"real_online"`
	LastHeartbeat *time.Time `json:"last_heartbeat,omitempty"`
}

// ReportRequest selects an aggregation run. WorkerIDs empty means everyone.
type ReportRequest struct {
	WorkerIDs   []string
	From        civiltime.Date
	To          civiltime.Date
	Granularity civiltime.Granularity
}

// BucketResponse is one aggregation bucket: observed worked/break/bathroom
// minutes plus expected minutes, for one worker and one bucket key.
type BucketResponse struct {
	WorkerID        string `json:"worker_id"`
	WorkerName      string `json:"worker_name"`
	BucketKey       string `json:"bucket_key"`
	WorkedMinutes   int    `json:"worked_minutes"`
	BreakMinutes    int    `json:"break_minutes"`
	BathroomMinutes int    `json:"bathroom_minutes"`
	ExpectedMinutes int    `json:"expected_minutes"`
}

// RunChecksResponse reports how many incidents a detector sweep created.
type RunChecksResponse struct {
	Created struct {
		Late    int `json:"late"`
		Absence int `json:"absence"`
	} `json:"created"`
}
