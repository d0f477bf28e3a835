package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/workdeskhq/workdesk-backend/internal/domain/worker"
	"github.com/workdeskhq/workdesk-backend/internal/pkg/database"
)

type workerRepository struct {
	db *database.DB
}

const workerColumns = `
	id, full_name, email, role, timezone, password_hash, active, created_at, updated_at`

func scanWorker(row pgx.Row) (worker.Worker, error) {
	var w worker.Worker
	err := row.Scan(
		&w.ID, &w.FullName, &w.Email, &w.Role, &w.Timezone,
		&w.PasswordHash, &w.Active, &w.CreatedAt, &w.UpdatedAt,
	)
	return w, err
}

// GetByID implements worker.WorkerRepository.
func (r *workerRepository) GetByID(ctx context.Context, id string) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + workerColumns + ` FROM workers WHERE id = $1`

	w, err := scanWorker(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker by ID: %w", err)
	}
	return w, nil
}

// GetByEmail implements worker.WorkerRepository.
func (r *workerRepository) GetByEmail(ctx context.Context, email string) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + workerColumns + ` FROM workers WHERE LOWER(email) = LOWER($1)`

	w, err := scanWorker(q.QueryRow(ctx, query, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker by email: %w", err)
	}
	return w, nil
}

// ListActive implements worker.WorkerRepository.
func (r *workerRepository) ListActive(ctx context.Context) ([]worker.Worker, error) {
	return r.ListActiveByIDs(ctx, nil)
}

// ListActiveByIDs implements worker.WorkerRepository.
func (r *workerRepository) ListActiveByIDs(ctx context.Context, ids []string) ([]worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT` + workerColumns + ` FROM workers WHERE active = true`
	args := []interface{}{}
	if len(ids) > 0 {
		query += ` AND id = ANY($1)`
		args = append(args, ids)
	}
	query += ` ORDER BY full_name ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query workers: %w", err)
	}
	defer rows.Close()

	var workers []worker.Worker
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, w)
	}

	return workers, nil
}

func NewWorkerRepository(db *database.DB) worker.WorkerRepository {
	return &workerRepository{db: db}
}
