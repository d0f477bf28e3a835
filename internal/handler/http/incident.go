package http

import (
	"log/slog"
	"net/http"

	"github.com/workdeskhq/workdesk-backend/internal/domain/incident"
	"github.com/workdeskhq/workdesk-backend/internal/handler/http/response"
)

type IncidentHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type IncidentHandlerImpl struct {
	incidentService incident.IncidentService
}

func NewIncidentHandler(incidentService incident.IncidentService) IncidentHandler {
	return &IncidentHandlerImpl{incidentService: incidentService}
}

// List implements IncidentHandler.
func (h *IncidentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var filter incident.ListFilter
	if v := q.Get("worker_id"); v != "" {
		filter.WorkerID = &v
	}
	if v := q.Get("month"); v != "" {
		filter.MonthKey = &v
	}
	if v := q.Get("type"); v != "" {
		filter.Type = &v
	}

	incidents, err := h.incidentService.List(r.Context(), filter)
	if err != nil {
		slog.Error("List incidents service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, incidents)
}
