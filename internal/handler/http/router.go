package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/workdeskhq/workdesk-backend/internal/handler/http/middleware"
	"github.com/workdeskhq/workdesk-backend/internal/pkg/jwt"
)

func NewRouter(
	JWTService jwt.Service,
	authHandler AuthHandler,
	workerHandler WorkerHandler,
	scheduleHandler ScheduleHandler,
	attendanceHandler AttendanceHandler,
	incidentHandler IncidentHandler,
	frontendURL string,
	env string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "workdesk-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", authHandler.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.Post("/", authHandler.Login)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", authHandler.LoginWithGoogle)
				})
			})
		})

		// The SSE stream authenticates with a short-lived query-string
		// token; it cannot go through the Verifier group.
		r.Get("/attendance/live", attendanceHandler.Live)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/workers", func(r chi.Router) {
				r.Get("/me", workerHandler.Me)

				// Supervisor only
				r.Group(func(r chi.Router) {
					r.Use(middleware.SupervisorOnly)
					r.Get("/", workerHandler.List)
					r.Get("/{id}", workerHandler.Get)
				})
			})

			r.Route("/schedules", func(r chi.Router) {
				r.Get("/", scheduleHandler.List)
				r.Get("/{id}", scheduleHandler.Get)

				// Supervisor only
				r.Group(func(r chi.Router) {
					r.Use(middleware.SupervisorOnly)
					r.Post("/", scheduleHandler.Create)
					r.Put("/{id}", scheduleHandler.Update)
					r.Delete("/{id}", scheduleHandler.Delete)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/events", attendanceHandler.RecordEvent)
				r.Get("/live-token", attendanceHandler.LiveToken)

				// Supervisor only
				r.Group(func(r chi.Router) {
					r.Use(middleware.SupervisorOnly)
					r.Get("/expected-now", attendanceHandler.ExpectedNow)
					r.Get("/presence", attendanceHandler.CurrentPresence)
					r.Get("/report", attendanceHandler.Report)
					r.Get("/report/export", attendanceHandler.ReportExport)
					r.Post("/checks/run", attendanceHandler.RunChecks)
				})
			})

			// Supervisor only
			r.Group(func(r chi.Router) {
				r.Use(middleware.SupervisorOnly)
				r.Get("/incidents", incidentHandler.List)
			})
		})
	})
	return r
}
