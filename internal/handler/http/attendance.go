package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/workdeskhq/workdesk-backend/internal/domain/attendance"
	"github.com/workdeskhq/workdesk-backend/internal/domain/auth"
	attendanceService "github.com/workdeskhq/workdesk-backend/internal/service/attendance"
	"github.com/workdeskhq/workdesk-backend/internal/service/report"

	"github.com/workdeskhq/workdesk-backend/internal/handler/http/middleware"
	"github.com/workdeskhq/workdesk-backend/internal/handler/http/response"
	"github.com/workdeskhq/workdesk-backend/internal/pkg/civiltime"
	"github.com/workdeskhq/workdesk-backend/internal/pkg/jwt"
	"github.com/workdeskhq/workdesk-backend/internal/pkg/sse"
)

type AttendanceHandler interface {
	ExpectedNow(w http.ResponseWriter, r *http.Request)
	RecordEvent(w http.ResponseWriter, r *http.Request)
	CurrentPresence(w http.ResponseWriter, r *http.Request)
	LiveToken(w http.ResponseWriter, r *http.Request)
	Live(w http.ResponseWriter, r *http.Request)
	Report(w http.ResponseWriter, r *http.Request)
	ReportExport(w http.ResponseWriter, r *http.Request)
	RunChecks(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceSvc attendance.AttendanceService
	exportSvc     report.ExportService
	jwtService    jwt.Service
	hub           *sse.Hub
}

func NewAttendanceHandler(attendanceSvc attendance.AttendanceService, exportSvc report.ExportService, jwtService jwt.Service, hub *sse.Hub) AttendanceHandler {
	return &AttendanceHandlerImpl{
		attendanceSvc: attendanceSvc,
		exportSvc:     exportSvc,
		jwtService:    jwtService,
		hub:           hub,
	}
}

type sseTokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

// ExpectedNow implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ExpectedNow(w http.ResponseWriter, r *http.Request) {
	items, err := h.attendanceSvc.ExpectedNow(r.Context(), time.Now())
	if err != nil {
		slog.Error("ExpectedNow service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, items)
}

// RecordEvent implements AttendanceHandler.
func (h *AttendanceHandlerImpl) RecordEvent(w http.ResponseWriter, r *http.Request) {
	var eventReq attendance.RecordEventRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&eventReq); err != nil {
		slog.Error("Record event decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Agents can only report their own presence; supervisors may backfill
	// for anyone.
	workerID, ok := middleware.WorkerID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}
	if eventReq.WorkerID == "" {
		eventReq.WorkerID = workerID
	}
	if eventReq.WorkerID != workerID && !isSupervisor(r) {
		response.Forbidden(w, "Cannot record presence events for another worker")
		return
	}

	// Validate DTO
	if err := eventReq.Validate(); err != nil {
		slog.Error("Record event validate error", "error", err)
		response.HandleError(w, err)
		return
	}

	// Call service
	result, err := h.attendanceSvc.RecordEvent(r.Context(), eventReq, time.Now())
	if err != nil {
		slog.Error("Record event service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Presence event recorded", result)
}

// CurrentPresence implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CurrentPresence(w http.ResponseWriter, r *http.Request) {
	items, err := h.attendanceSvc.CurrentPresence(r.Context(), time.Now())
	if err != nil {
		slog.Error("CurrentPresence service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, items)
}

// LiveToken implements AttendanceHandler. SSE connections cannot carry an
// Authorization header, so the board exchanges its access token for a
// short-lived query-string token first.
func (h *AttendanceHandlerImpl) LiveToken(w http.ResponseWriter, r *http.Request) {
	workerID, ok := middleware.WorkerID(r)
	if !ok {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	token, expiresIn, err := h.jwtService.GenerateSSEToken(workerID)
	if err != nil {
		slog.Error("LiveToken generate error", "error", err)
		response.InternalServerError(w, "Failed to generate SSE token")
		return
	}

	response.Success(w, sseTokenResponse{Token: token, ExpiresIn: expiresIn})
}

// Live implements AttendanceHandler. It streams presence updates over SSE to
// the supervisor board.
func (h *AttendanceHandlerImpl) Live(w http.ResponseWriter, r *http.Request) {
	// Get token from query parameter (SSE doesn't support custom headers)
	tokenStr := r.URL.Query().Get("token")
	if tokenStr == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}

	// Validate SSE token
	workerID, err := h.jwtService.ValidateSSEToken(tokenStr)
	if err != nil {
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	// Check if streaming is supported
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	// Subscribe to presence updates
	events, cleanup := h.hub.Subscribe(attendanceService.PresenceTopic)
	defer cleanup()

	// Send initial connection event
	fmt.Fprintf(w, "event: connected\ndata: {\"status\":\"connected\",\"worker_id\":\"%s\"}\n\n", workerID)
	flusher.Flush()

	// Stream events
	keepalive := time.NewTicker(30 * time.Second)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(event.Data)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Event, data)
			flusher.Flush()

		case <-keepalive.C:
			// Send keepalive ping
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

// reportRequestFromQuery parses the shared query parameters of the report
// endpoints.
func reportRequestFromQuery(r *http.Request) (attendance.ReportRequest, error) {
	q := r.URL.Query()

	from, err := civiltime.ParseDate(q.Get("from"))
	if err != nil {
		return attendance.ReportRequest{}, attendance.ErrInvalidDateRange
	}
	to, err := civiltime.ParseDate(q.Get("to"))
	if err != nil {
		return attendance.ReportRequest{}, attendance.ErrInvalidDateRange
	}

	granularity := civiltime.GranularityDay
	if g := q.Get("granularity"); g != "" {
		granularity, err = civiltime.ParseGranularity(g)
		if err != nil {
			return attendance.ReportRequest{}, attendance.ErrInvalidGranularity
		}
	}

	var workerIDs []string
	if ids := q.Get("worker_ids"); ids != "" {
		for _, id := range strings.Split(ids, ",") {
			if id = strings.TrimSpace(id); id != "" {
				workerIDs = append(workerIDs, id)
			}
		}
	}

	return attendance.ReportRequest{
		WorkerIDs:   workerIDs,
		From:        from,
		To:          to,
		Granularity: granularity,
	}, nil
}

// Report implements AttendanceHandler.
func (h *AttendanceHandlerImpl) Report(w http.ResponseWriter, r *http.Request) {
	req, err := reportRequestFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	buckets, err := h.attendanceSvc.Aggregate(r.Context(), req, time.Now())
	if err != nil {
		slog.Error("Report service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, buckets)
}

// ReportExport implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ReportExport(w http.ResponseWriter, r *http.Request) {
	req, err := reportRequestFromQuery(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	buf, filename, err := h.exportSvc.AttendanceXLSX(r.Context(), req, time.Now())
	if err != nil {
		slog.Error("Report export service error", "error", err)
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Report export write error", "error", err)
	}
}

// RunChecks implements AttendanceHandler. The cron scheduler runs the same
// sweep every few minutes; this endpoint exists for supervisors who do not
// want to wait for the next tick.
func (h *AttendanceHandlerImpl) RunChecks(w http.ResponseWriter, r *http.Request) {
	result, err := h.attendanceSvc.RunChecks(r.Context(), time.Now())
	if err != nil {
		slog.Error("RunChecks service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Attendance checks executed", "late", result.Created.Late, "absence", result.Created.Absence)
	response.SuccessWithMessage(w, "Attendance checks executed", result)
}

func isSupervisor(r *http.Request) bool {
	role, ok := middleware.Role(r)
	return ok && (role == "supervisor" || role == "admin")
}
