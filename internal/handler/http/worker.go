package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/workdeskhq/workdesk-backend/internal/domain/auth"
	"github.com/workdeskhq/workdesk-backend/internal/domain/worker"
	"github.com/workdeskhq/workdesk-backend/internal/handler/http/middleware"
	"github.com/workdeskhq/workdesk-backend/internal/handler/http/response"
)

type WorkerHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
}

type WorkerHandlerImpl struct {
	workerService worker.WorkerService
}

func NewWorkerHandler(workerService worker.WorkerService) WorkerHandler {
	return &WorkerHandlerImpl{workerService: workerService}
}

// List implements WorkerHandler.
func (h *WorkerHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	workers, err := h.workerService.ListActive(r.Context())
	if err != nil {
		slog.Error("List workers service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, workers)
}

// Get implements WorkerHandler.
func (h *WorkerHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	wk, err := h.workerService.Get(r.Context(), id)
	if err != nil {
		slog.Error("Get worker service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, wk)
}

// Me implements WorkerHandler.
func (h *WorkerHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	workerID, ok := middleware.WorkerID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	wk, err := h.workerService.Get(r.Context(), workerID)
	if err != nil {
		slog.Error("Me service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, wk)
}
