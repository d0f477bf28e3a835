package worker

import (
	"context"

	"github.com/workdeskhq/workdesk-backend/internal/domain/worker"
)

type WorkerServiceImpl struct {
	worker.WorkerRepository
}

func NewWorkerService(workerRepo worker.WorkerRepository) worker.WorkerService {
	return &WorkerServiceImpl{WorkerRepository: workerRepo}
}

// Get implements worker.WorkerService.
func (s *WorkerServiceImpl) Get(ctx context.Context, id string) (worker.WorkerResponse, error) {
	w, err := s.WorkerRepository.GetByID(ctx, id)
	if err != nil {
		return worker.WorkerResponse{}, err
	}
	return worker.ToResponse(w), nil
}

// ListActive implements worker.WorkerService.
func (s *WorkerServiceImpl) ListActive(ctx context.Context) ([]worker.WorkerResponse, error) {
	workers, err := s.WorkerRepository.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]worker.WorkerResponse, 0, len(workers))
	for _, w := range workers {
		out = append(out, worker.ToResponse(w))
	}
	return out, nil
}
