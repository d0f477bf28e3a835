package worker

// WorkerResponse is the API shape of a worker. Credentials never leave the
// domain layer.
type WorkerResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Timezone string `json:"timezone"`
	Active   bool   `json:"active"`
}

// ToResponse maps a worker to its API shape.
func ToResponse(w Worker) WorkerResponse {
	return WorkerResponse{
		ID:       w.ID,
		FullName: w.FullName,
		Email:    w.Email,
		Role:     string(w.Role),
		Timezone: w.Timezone,
		Active:   w.Active,
	}
}
