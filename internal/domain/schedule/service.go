package schedule

import "context"

// ScheduleService defines administration of shift-schedule rows. The
// attendance engine reads rows through the repository; this service is the
// write path used by supervisors.
type ScheduleService interface {
	Create(ctx context.Context, req CreateScheduleRequest) (ScheduleResponse, error)
	Update(ctx context.Context, req UpdateScheduleRequest) (ScheduleResponse, error)
	Get(ctx context.Context, id string) (ScheduleResponse, error)
	List(ctx context.Context, workerID *string) ([]ScheduleResponse, error)
	Delete(ctx context.Context, id string) error
}
