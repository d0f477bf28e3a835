package incident

import "time"

// IncidentResponse is the API shape of an incident.
type IncidentResponse struct {
	ID         string    `json:"id"`
	WorkerID   string    `json:"worker_id"`
	WorkerName *string   `json:"worker_name,omitempty"`
	MonthKey   string    `json:"month_key"`
	Kind       string    `json:"kind"`
	Type       string    `json:"type"`
	ScheduleID string    `json:"schedule_id"`
	Date       string    `json:"date"`
	Amount     string    `json:"amount"`
	Reason     string    `json:"reason"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// ToResponse maps an incident to its API shape. Amounts serialize as
// strings to keep cent precision out of float territory.
func ToResponse(i Incident) IncidentResponse {
	return IncidentResponse{
		ID:         i.ID,
		WorkerID:   i.WorkerID,
		WorkerName: i.WorkerName,
		MonthKey:   i.MonthKey,
		Kind:       i.Kind,
		Type:       i.Type,
		ScheduleID: i.ScheduleID,
		Date:       i.Date,
		Amount:     i.Amount.StringFixed(2),
		Reason:     i.Reason,
		Status:     i.Status,
		CreatedAt:  i.CreatedAt,
	}
}
