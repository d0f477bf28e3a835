package worker

import "context"

// WorkerService reads the worker directory for the panel. Provisioning and
// deactivation are handled by an external HR tool, not this API.
type WorkerService interface {
	Get(ctx context.Context, id string) (WorkerResponse, error)
	ListActive(ctx context.Context) ([]WorkerResponse, error)
}
