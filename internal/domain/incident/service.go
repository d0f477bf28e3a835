package incident

import "context"

// IncidentService reads the incident ledger. Incidents are only ever
// created by the detector; there is no write path here.
type IncidentService interface {
	List(ctx context.Context, filter ListFilter) ([]IncidentResponse, error)
}
