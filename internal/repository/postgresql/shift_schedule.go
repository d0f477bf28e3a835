package postgresql

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/workdeskhq/workdesk-backend/internal/domain/schedule"
	"github.com/workdeskhq/workdesk-backend/internal/pkg/civiltime"
	"github.com/workdeskhq/workdesk-backend/internal/pkg/database"
)

type shiftScheduleRepository struct {
	db *database.DB
}

// scheduleRow is the raw shape scanned from the store. Times come back as
// HH24:MI strings and day_of_week may carry the legacy ISO Sunday value;
// toSchedule normalizes both.
type scheduleRow struct {
	id         string
	workerID   string
	dayOfWeek  int
	startTime  string
	endTime    string
	timezone   string
	active     bool
	createdAt  time.Time
	updatedAt  time.Time
	workerName *string
}

func (r *shiftScheduleRepository) scanRows(rows pgx.Rows) ([]schedule.ShiftSchedule, error) {
	var schedules []schedule.ShiftSchedule
	for rows.Next() {
		var row scheduleRow
		err := rows.Scan(
			&row.id, &row.workerID, &row.dayOfWeek, &row.startTime, &row.endTime,
			&row.timezone, &row.active, &row.createdAt, &row.updatedAt, &row.workerName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift schedule: %w", err)
		}

		s, err := toSchedule(row)
		if err != nil {
			// A malformed row is a configuration error on that row only; the
			// engine skips it rather than failing the whole read.
			slog.Warn("skipping malformed shift schedule row", "schedule_id", row.id, "error", err)
			continue
		}
		schedules = append(schedules, s)
	}
	return schedules, nil
}

func toSchedule(row scheduleRow) (schedule.ShiftSchedule, error) {
	dow, err := civiltime.NormalizeDayOfWeek(row.dayOfWeek)
	if err != nil {
		return schedule.ShiftSchedule{}, err
	}
	start, err := civiltime.ParseTimeOfDay(row.startTime)
	if err != nil {
		return schedule.ShiftSchedule{}, fmt.Errorf("invalid start_time: %w", err)
	}
	end, err := civiltime.ParseTimeOfDay(row.endTime)
	if err != nil {
		return schedule.ShiftSchedule{}, fmt.Errorf("invalid end_time: %w", err)
	}
	if _, err := civiltime.LoadLocation(row.timezone); err != nil {
		return schedule.ShiftSchedule{}, err
	}

	return schedule.ShiftSchedule{
		ID:         row.id,
		WorkerID:   row.workerID,
		DayOfWeek:  dow,
		StartTime:  start,
		EndTime:    end,
		Timezone:   row.timezone,
		Active:     row.active,
		CreatedAt:  row.createdAt,
		UpdatedAt:  row.updatedAt,
		WorkerName: row.workerName,
	}, nil
}

const scheduleSelect = `
	SELECT ss.id, ss.worker_id, ss.day_of_week,
	       to_char(ss.start_time, 'HH24:MI') AS start_time,
	       to_char(ss.end_time, 'HH24:MI') AS end_time,
	       ss.timezone, ss.active, ss.created_at, ss.updated_at,
	       w.full_name AS worker_name
	FROM shift_schedules ss
	JOIN workers w ON w.id = ss.worker_id`

// Create implements schedule.ShiftScheduleRepository.
func (r *shiftScheduleRepository) Create(ctx context.Context, s schedule.ShiftSchedule) (schedule.ShiftSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shift_schedules (worker_id, day_of_week, start_time, end_time, timezone, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`

	err := q.QueryRow(ctx, query,
		s.WorkerID, s.DayOfWeek, s.StartTime.String(), s.EndTime.String(), s.Timezone, s.Active,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return schedule.ShiftSchedule{}, fmt.Errorf("failed to create shift schedule: %w", err)
	}

	return s, nil
}

// GetByID implements schedule.ShiftScheduleRepository.
func (r *shiftScheduleRepository) GetByID(ctx context.Context, id string) (schedule.ShiftSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := scheduleSelect + ` WHERE ss.id = $1`

	var row scheduleRow
	err := q.QueryRow(ctx, query, id).Scan(
		&row.id, &row.workerID, &row.dayOfWeek, &row.startTime, &row.endTime,
		&row.timezone, &row.active, &row.createdAt, &row.updatedAt, &row.workerName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return schedule.ShiftSchedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.ShiftSchedule{}, fmt.Errorf("failed to get shift schedule: %w", err)
	}

	s, err := toSchedule(row)
	if err != nil {
		return schedule.ShiftSchedule{}, fmt.Errorf("malformed shift schedule %s: %w", row.id, err)
	}
	return s, nil
}

// Update implements schedule.ShiftScheduleRepository.
func (r *shiftScheduleRepository) Update(ctx context.Context, s schedule.ShiftSchedule) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shift_schedules
		SET worker_id = $2, day_of_week = $3, start_time = $4, end_time = $5,
		    timezone = $6, active = $7, updated_at = NOW()
		WHERE id = $1`

	tag, err := q.Exec(ctx, query,
		s.ID, s.WorkerID, s.DayOfWeek, s.StartTime.String(), s.EndTime.String(), s.Timezone, s.Active,
	)
	if err != nil {
		return fmt.Errorf("failed to update shift schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrScheduleNotFound
	}

	return nil
}

// Delete implements schedule.ShiftScheduleRepository.
func (r *shiftScheduleRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM shift_schedules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shift schedule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrScheduleNotFound
	}

	return nil
}

// ListActive implements schedule.ShiftScheduleRepository.
func (r *shiftScheduleRepository) ListActive(ctx context.Context) ([]schedule.ShiftSchedule, error) {
	return r.ListActiveByWorkers(ctx, nil)
}

// ListActiveByWorker implements schedule.ShiftScheduleRepository.
func (r *shiftScheduleRepository) ListActiveByWorker(ctx context.Context, workerID string) ([]schedule.ShiftSchedule, error) {
	return r.ListActiveByWorkers(ctx, []string{workerID})
}

// ListActiveByWorkers implements schedule.ShiftScheduleRepository.
func (r *shiftScheduleRepository) ListActiveByWorkers(ctx context.Context, workerIDs []string) ([]schedule.ShiftSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := scheduleSelect + ` WHERE ss.active = true AND w.active = true`
	args := []interface{}{}
	if len(workerIDs) > 0 {
		query += ` AND ss.worker_id = ANY($1)`
		args = append(args, workerIDs)
	}
	query += ` ORDER BY w.full_name ASC, ss.day_of_week ASC, ss.start_time ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift schedules: %w", err)
	}
	defer rows.Close()

	return r.scanRows(rows)
}

// List implements schedule.ShiftScheduleRepository.
func (r *shiftScheduleRepository) List(ctx context.Context, workerID *string) ([]schedule.ShiftSchedule, error) {
	q := GetQuerier(ctx, r.db)

	query := scheduleSelect
	args := []interface{}{}
	if workerID != nil {
		query += ` WHERE ss.worker_id = $1`
		args = append(args, *workerID)
	}
	query += ` ORDER BY w.full_name ASC, ss.day_of_week ASC, ss.start_time ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shift schedules: %w", err)
	}
	defer rows.Close()

	return r.scanRows(rows)
}

func NewShiftScheduleRepository(db *database.DB) schedule.ShiftScheduleRepository {
	return &shiftScheduleRepository{db: db}
}
