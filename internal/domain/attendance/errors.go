package attendance

import "errors"

var (
	ErrInvalidDateRange   = errors.New("from must not be after to")
	ErrInvalidGranularity = errors.New("granularity must be day, week, or month")
)
