package incident

import "context"

type ListFilter struct {
	WorkerID *string
	MonthKey *string
	Type     *string
}

// IncidentRepository defines data access for attendance incidents.
type IncidentRepository interface {
	// CreateIfAbsent inserts the incident unless the idempotency tuple
	// (worker, month, kind, type, schedule, date) already exists. Returns
	// false when the row was already there; a conflict is a no-op, not an
	// error.
	CreateIfAbsent(ctx context.Context, inc Incident) (bool, error)

	List(ctx context.Context, filter ListFilter) ([]Incident, error)
}
