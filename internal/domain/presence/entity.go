package presence

import "time"

// Status is a worker's derived presence status.
type Status string

const (
	StatusWorking  Status = "working"
	StatusBreak    Status = "break"
	StatusBathroom Status = "bathroom"
	StatusOffline  Status = "offline"
)

// Event is one append-only presence event. Kind is the decoded semantic
// intent; the wire triple it was decoded from is persisted alongside so the
// log stays replayable by older consumers.
type Event struct {
	ID         string
	WorkerID   string
	Kind       EventKind
	At         time.Time
	ScheduleID *string
	CreatedAt  time.Time
}

// State is a worker's derived presence state at a point in time. Recomputed
// by replaying the event log; the cached copy is a projection, never the
// source of truth.
type State struct {
	WorkerID      string
	IsOnline      bool
	Status        Status
	EffectiveFrom time.Time
}

// InitialState is the state of a worker with no recorded events.
func InitialState(workerID string) State {
	return State{WorkerID: workerID, IsOnline: false, Status: StatusOffline}
}
