package schedule

import "context"

// ShiftScheduleRepository defines data access for shift-schedule rows. The
// engine only ever consumes active rows; administration reads everything.
type ShiftScheduleRepository interface {
	Create(ctx context.Context, s ShiftSchedule) (ShiftSchedule, error)
	GetByID(ctx context.Context, id string) (ShiftSchedule, error)
	Update(ctx context.Context, s ShiftSchedule) error
	Delete(ctx context.Context, id string) error

	// ListActive returns all active rows, joined with worker names.
	ListActive(ctx context.Context) ([]ShiftSchedule, error)
	// ListActiveByWorker returns a single worker's active rows.
	ListActiveByWorker(ctx context.Context, workerID string) ([]ShiftSchedule, error)
	// ListActiveByWorkers returns active rows for the given workers; an empty
	// slice means all workers.
	ListActiveByWorkers(ctx context.Context, workerIDs []string) ([]ShiftSchedule, error)
	// List returns all rows for administration, active or not.
	List(ctx context.Context, workerID *string) ([]ShiftSchedule, error)
}
