package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/workdeskhq/workdesk-backend/internal/domain/incident"
	"github.com/workdeskhq/workdesk-backend/internal/pkg/database"
)

type incidentRepository struct {
	db *database.DB
}

// CreateIfAbsent implements incident.IncidentRepository.
//
// The insert races with concurrent detector runs; the unique index on the
// idempotency tuple plus ON CONFLICT DO NOTHING makes the loser a silent
// no-op instead of a duplicate or an error.
func (r *incidentRepository) CreateIfAbsent(ctx context.Context, inc incident.Incident) (bool, error) {
	q := GetQuerier(ctx, r.db)

	if inc.ID == "" {
		inc.ID = uuid.New().String()
	}

	query := `
		INSERT INTO incidents (id, worker_id, month_key, kind, type, schedule_id, date, amount, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (worker_id, month_key, kind, type, schedule_id, date) DO NOTHING`

	tag, err := q.Exec(ctx, query,
		inc.ID, inc.WorkerID, inc.MonthKey, inc.Kind, inc.Type, inc.ScheduleID, inc.Date,
		inc.Amount, inc.Reason, inc.Status,
	)
	if err != nil {
		return false, fmt.Errorf("failed to create incident: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// List implements incident.IncidentRepository.
func (r *incidentRepository) List(ctx context.Context, filter incident.ListFilter) ([]incident.Incident, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT i.id, i.worker_id, i.month_key, i.kind, i.type, i.schedule_id, i.date,
		       i.amount, i.reason, i.status, i.created_at, w.full_name AS worker_name
		FROM incidents i
		JOIN workers w ON w.id = i.worker_id
		WHERE 1=1`
	args := []interface{}{}
	argNum := 1

	if filter.WorkerID != nil {
		query += fmt.Sprintf(` AND i.worker_id = $%d`, argNum)
		args = append(args, *filter.WorkerID)
		argNum++
	}
	if filter.MonthKey != nil {
		query += fmt.Sprintf(` AND i.month_key = $%d`, argNum)
		args = append(args, *filter.MonthKey)
		argNum++
	}
	if filter.Type != nil {
		query += fmt.Sprintf(` AND i.type = $%d`, argNum)
		args = append(args, *filter.Type)
		argNum++
	}

	query += ` ORDER BY i.date DESC, w.full_name ASC, i.created_at DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query incidents: %w", err)
	}
	defer rows.Close()

	var incidents []incident.Incident
	for rows.Next() {
		var inc incident.Incident
		err := rows.Scan(
			&inc.ID, &inc.WorkerID, &inc.MonthKey, &inc.Kind, &inc.Type, &inc.ScheduleID,
			&inc.Date, &inc.Amount, &inc.Reason, &inc.Status, &inc.CreatedAt, &inc.WorkerName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident: %w", err)
		}
		incidents = append(incidents, inc)
	}

	return incidents, nil
}

func NewIncidentRepository(db *database.DB) incident.IncidentRepository {
	return &incidentRepository{db: db}
}
