package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/workdeskhq/workdesk-backend/internal/domain/presence"
	"github.com/workdeskhq/workdesk-backend/internal/pkg/database"
)

type presenceEventRepository struct {
	db *database.DB
}

// The log is append-only; there is no update or delete path, and every read
// orders by (at, created_at, id) so simultaneous timestamps replay in
// insertion order.
const presenceEventOrder = ` ORDER BY at ASC, created_at ASC, id ASC`

func scanPresenceEvent(row pgx.Row) (presence.Event, error) {
	var (
		e                       presence.Event
		eventType, action, phase string
	)
	err := row.Scan(&e.ID, &e.WorkerID, &eventType, &action, &phase, &e.At, &e.ScheduleID, &e.CreatedAt)
	if err != nil {
		return presence.Event{}, err
	}

	kind, err := presence.DecodeKind(eventType, action, phase)
	if err != nil {
		return presence.Event{}, fmt.Errorf("event %s: %w", e.ID, err)
	}
	e.Kind = kind
	return e, nil
}

// Append implements presence.EventRepository.
func (r *presenceEventRepository) Append(ctx context.Context, e presence.Event) (presence.Event, error) {
	q := GetQuerier(ctx, r.db)

	eventType, action, phase := e.Kind.Wire()

	query := `
		INSERT INTO presence_events (worker_id, event_type, meta_action, meta_phase, at, schedule_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := q.QueryRow(ctx, query, e.WorkerID, eventType, action, phase, e.At, e.ScheduleID).
		Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return presence.Event{}, fmt.Errorf("failed to append presence event: %w", err)
	}

	return e, nil
}

// ListByWorkerBetween implements presence.EventRepository.
func (r *presenceEventRepository) ListByWorkerBetween(ctx context.Context, workerID string, from, to time.Time) ([]presence.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, worker_id, event_type, meta_action, meta_phase, at, schedule_id, created_at
		FROM presence_events
		WHERE worker_id = $1 AND at >= $2 AND at < $3` + presenceEventOrder

	rows, err := q.Query(ctx, query, workerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query presence events: %w", err)
	}
	defer rows.Close()

	var events []presence.Event
	for rows.Next() {
		e, err := scanPresenceEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan presence event: %w", err)
		}
		events = append(events, e)
	}

	return events, nil
}

// ListByWorkersBetween implements presence.EventRepository.
func (r *presenceEventRepository) ListByWorkersBetween(ctx context.Context, workerIDs []string, from, to time.Time) (map[string][]presence.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, worker_id, event_type, meta_action, meta_phase, at, schedule_id, created_at
		FROM presence_events
		WHERE at >= $1 AND at < $2`
	args := []interface{}{from, to}
	if len(workerIDs) > 0 {
		query += ` AND worker_id = ANY($3)`
		args = append(args, workerIDs)
	}
	query += presenceEventOrder

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query presence events: %w", err)
	}
	defer rows.Close()

	grouped := make(map[string][]presence.Event)
	for rows.Next() {
		e, err := scanPresenceEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan presence event: %w", err)
		}
		grouped[e.WorkerID] = append(grouped[e.WorkerID], e)
	}

	return grouped, nil
}

// FirstContactBetween implements presence.EventRepository.
func (r *presenceEventRepository) FirstContactBetween(ctx context.Context, workerID string, from, to time.Time) (*presence.Event, error) {
	q := GetQuerier(ctx, r.db)

	// Any online or heartbeat event counts as contact; an offline event never
	// does. Both window edges are inclusive.
	query := `
		SELECT id, worker_id, event_type, meta_action, meta_phase, at, schedule_id, created_at
		FROM presence_events
		WHERE worker_id = $1 AND at >= $2 AND at <= $3
		  AND event_type IN ('online', 'heartbeat')` + presenceEventOrder + `
		LIMIT 1`

	e, err := scanPresenceEvent(q.QueryRow(ctx, query, workerID, from, to))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query first contact: %w", err)
	}

	return &e, nil
}

// LastEventsUpTo implements presence.EventRepository.
func (r *presenceEventRepository) LastEventsUpTo(ctx context.Context, workerIDs []string, until time.Time, lookback time.Duration) (map[string][]presence.Event, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, worker_id, event_type, meta_action, meta_phase, at, schedule_id, created_at
		FROM presence_events
		WHERE at > $1 AND at <= $2`
	args := []interface{}{until.Add(-lookback), until}
	if len(workerIDs) > 0 {
		query += ` AND worker_id = ANY($3)`
		args = append(args, workerIDs)
	}
	query += presenceEventOrder

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent presence events: %w", err)
	}
	defer rows.Close()

	grouped := make(map[string][]presence.Event)
	for rows.Next() {
		e, err := scanPresenceEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan presence event: %w", err)
		}
		grouped[e.WorkerID] = append(grouped[e.WorkerID], e)
	}

	return grouped, nil
}

func NewPresenceEventRepository(db *database.DB) presence.EventRepository {
	return &presenceEventRepository{db: db}
}
