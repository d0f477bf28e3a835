package worker

import "context"

// WorkerRepository defines data access for worker identity records.
type WorkerRepository interface {
	GetByID(ctx context.Context, id string) (Worker, error)
	GetByEmail(ctx context.Context, email string) (Worker, error)
	// ListActive returns all active workers ordered by full name.
	ListActive(ctx context.Context) ([]Worker, error)
	// ListActiveByIDs returns the active subset of ids, ordered by full name.
	// An empty ids slice means all active workers.
	ListActiveByIDs(ctx context.Context, ids []string) ([]Worker, error)
}
