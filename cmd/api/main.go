package main

import (
	"fmt"
	"log"

	"net/http"

	"github.com/workdeskhq/workdesk-backend/internal/config"
	appHTTP "github.com/workdeskhq/workdesk-backend/internal/handler/http"
	"github.com/workdeskhq/workdesk-backend/internal/pkg/cache"
	"github.com/workdeskhq/workdesk-backend/internal/pkg/cron"
	"github.com/workdeskhq/workdesk-backend/internal/pkg/database"
	"github.com/workdeskhq/workdesk-backend/internal/pkg/jwt"
	"github.com/workdeskhq/workdesk-backend/internal/pkg/oauth"
	"github.com/workdeskhq/workdesk-backend/internal/pkg/sse"
	"github.com/workdeskhq/workdesk-backend/internal/repository/postgresql"
	attendanceService "github.com/workdeskhq/workdesk-backend/internal/service/attendance"
	serviceAuth "github.com/workdeskhq/workdesk-backend/internal/service/auth"
	incidentService "github.com/workdeskhq/workdesk-backend/internal/service/incident"
	reportService "github.com/workdeskhq/workdesk-backend/internal/service/report"
	scheduleService "github.com/workdeskhq/workdesk-backend/internal/service/schedule"
	workerService "github.com/workdeskhq/workdesk-backend/internal/service/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	// The presence cache is optional; the engine replays the event log when
	// Redis is unavailable.
	presenceCache, err := cache.New(cfg.Redis)
	if err != nil {
		log.Println("Redis unavailable, presence cache disabled:", err)
		presenceCache = nil
	}

	workerRepo := postgresql.NewWorkerRepository(db)
	scheduleRepo := postgresql.NewShiftScheduleRepository(db)
	eventRepo := postgresql.NewPresenceEventRepository(db)
	incidentRepo := postgresql.NewIncidentRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	hub := sse.NewHub()

	attendanceSvc, err := attendanceService.NewAttendanceService(
		workerRepo,
		scheduleRepo,
		eventRepo,
		incidentRepo,
		presenceCache,
		hub,
		cfg.Attendance,
	)
	if err != nil {
		log.Fatal("Failed to initialize attendance service:", err)
	}
	authSvc := serviceAuth.NewAuthService(workerRepo, JWTService, GoogleService)
	workerSvc := workerService.NewWorkerService(workerRepo)
	scheduleSvc := scheduleService.NewScheduleService(scheduleRepo, workerRepo)
	incidentSvc := incidentService.NewIncidentService(incidentRepo)
	exportSvc := reportService.NewExportService(attendanceSvc)

	// Detector sweep runs on a fixed interval; the manual endpoint shares the
	// same idempotent implementation.
	scheduler := cron.NewScheduler()
	attendanceJobs := cron.NewAttendanceJobs(attendanceSvc)
	attendanceJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	authHandler := appHTTP.NewAuthHandler(JWTService, authSvc, GoogleService, cfg.App.FrontendURL)
	workerHandler := appHTTP.NewWorkerHandler(workerSvc)
	scheduleHandler := appHTTP.NewScheduleHandler(scheduleSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, exportSvc, JWTService, hub)
	incidentHandler := appHTTP.NewIncidentHandler(incidentSvc)

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		workerHandler,
		scheduleHandler,
		attendanceHandler,
		incidentHandler,
		cfg.App.FrontendURL,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
