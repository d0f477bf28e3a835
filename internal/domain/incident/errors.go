package incident

import "errors"

var ErrIncidentNotFound = errors.New("incident not found")
