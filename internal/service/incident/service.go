package incident

import (
	"context"

	"github.com/workdeskhq/workdesk-backend/internal/domain/incident"
)

type IncidentServiceImpl struct {
	incident.IncidentRepository
}

func NewIncidentService(incidentRepo incident.IncidentRepository) incident.IncidentService {
	return &IncidentServiceImpl{IncidentRepository: incidentRepo}
}

// List implements incident.IncidentService.
func (s *IncidentServiceImpl) List(ctx context.Context, filter incident.ListFilter) ([]incident.IncidentResponse, error) {
	incidents, err := s.IncidentRepository.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]incident.IncidentResponse, 0, len(incidents))
	for _, i := range incidents {
		out = append(out, incident.ToResponse(i))
	}
	return out, nil
}
