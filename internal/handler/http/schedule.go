package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/workdeskhq/workdesk-backend/internal/domain/schedule"
	"github.com/workdeskhq/workdesk-backend/internal/handler/http/response"
)

type ScheduleHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type ScheduleHandlerImpl struct {
	scheduleService schedule.ScheduleService
}

func NewScheduleHandler(scheduleService schedule.ScheduleService) ScheduleHandler {
	return &ScheduleHandlerImpl{scheduleService: scheduleService}
}

// Create implements ScheduleHandler.
func (h *ScheduleHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq schedule.CreateScheduleRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create schedule decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Validate DTO
	if err := createReq.Validate(); err != nil {
		slog.Error("Create schedule validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Call service
	created, err := h.scheduleService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("Create schedule service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Shift schedule created", "schedule_id", created.ID, "worker_id", created.WorkerID)
	response.Created(w, "Shift schedule created successfully", created)
}

// Get implements ScheduleHandler.
func (h *ScheduleHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s, err := h.scheduleService.Get(r.Context(), id)
	if err != nil {
		slog.Error("Get schedule service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, s)
}

// Update implements ScheduleHandler.
func (h *ScheduleHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var updateReq schedule.UpdateScheduleRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("Update schedule decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "id")

	// Validate DTO
	if err := updateReq.Validate(); err != nil {
		slog.Error("Update schedule validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Call service
	updated, err := h.scheduleService.Update(r.Context(), updateReq)
	if err != nil {
		slog.Error("Update schedule service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Shift schedule updated", "schedule_id", updated.ID)
	response.SuccessWithMessage(w, "Shift schedule updated successfully", updated)
}

// Delete implements ScheduleHandler.
func (h *ScheduleHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.scheduleService.Delete(r.Context(), id); err != nil {
		slog.Error("Delete schedule service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Shift schedule deleted", "schedule_id", id)
	response.SuccessWithMessage(w, "Shift schedule deleted successfully", nil)
}

// List implements ScheduleHandler.
func (h *ScheduleHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var workerID *string
	if v := r.URL.Query().Get("worker_id"); v != "" {
		workerID = &v
	}

	schedules, err := h.scheduleService.List(r.Context(), workerID)
	if err != nil {
		slog.Error("List schedules service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, schedules)
}
