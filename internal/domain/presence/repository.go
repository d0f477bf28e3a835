package presence

import (
	"context"
	"time"
)

// EventRepository defines data access for the append-only presence event
// log. Events are never updated or deleted; replay order is enforced by the
// queries (at ASC, then insertion order), never assumed.
type EventRepository interface {
	// Append writes one event and returns it with id and created_at set.
	Append(ctx context.Context, e Event) (Event, error)

	// ListByWorkerBetween returns a worker's events with at in [from, to),
	// ordered by at ascending, ties broken by insertion order.
	ListByWorkerBetween(ctx context.Context, workerID string, from, to time.Time) ([]Event, error)

	// ListByWorkersBetween is ListByWorkerBetween over several workers,
	// grouped by worker id. An empty workerIDs slice means all workers.
	ListByWorkersBetween(ctx context.Context, workerIDs []string, from, to time.Time) (map[string][]Event, error)

	// FirstContactBetween returns the earliest qualifying (online or
	// heartbeat) event with at in [from, to], or nil when there is none.
	FirstContactBetween(ctx context.Context, workerID string, from, to time.Time) (*Event, error)

	// LastEventsUpTo returns each listed worker's latest events in
	// (until-lookback, until], newest-last per worker, for live state replay.
	LastEventsUpTo(ctx context.Context, workerIDs []string, until time.Time, lookback time.Duration) (map[string][]Event, error)
}
