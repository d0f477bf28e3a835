package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/workdeskhq/workdesk-backend/internal/domain/auth"
	"github.com/workdeskhq/workdesk-backend/internal/handler/http/response"
)

// SupervisorOnly restricts a route group to supervisors and admins. Agents
// can see their own data through other routes; they never administer
// schedules or run detector sweeps.
func SupervisorOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		role, ok := claims["role"].(string)
		if !ok || (role != "supervisor" && role != "admin") {
			response.Forbidden(w, "Supervisor privilege required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
