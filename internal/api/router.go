package api

import (
	"fmt"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/openhire/recruitment-api/internal/api/handler"
	"github.com/openhire/recruitment-api/internal/api/middleware"
	"github.com/openhire/recruitment-api/internal/core/domain"
	"github.com/openhire/recruitment-api/internal/core/service"
	"github.com/openhire/recruitment-api/internal/infrastructure/config"
	mongodb "github.com/openhire/recruitment-api/internal/infrastructure/db/mongo"
	redisdb "github.com/openhire/recruitment-api/internal/infrastructure/db/redis"
	"github.com/openhire/recruitment-api/internal/infrastructure/mail"
	"github.com/openhire/recruitment-api/internal/infrastructure/queue"
	"github.com/openhire/recruitment-api/internal/infrastructure/realtime"
	"github.com/openhire/recruitment-api/internal/infrastructure/storage"
)

// NewRouter builds the Echo instance with all routes registered and returns
// it together with the event dispatcher, which the caller must Start.
func NewRouter(db *mongo.Database, rdb *goredis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("recruitment"))
	e.Use(middleware.RateLimit(redisdb.NewRateLimiter(rdb, cfg.RateLimit.Window, cfg.RateLimit.Max), log))

	// --- Infrastructure ---
	cache := redisdb.NewCache(rdb)
	revoker := redisdb.NewRevocationStore(rdb)
	hub := realtime.NewHub(log)
	mailer, err := mail.New(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}, log)
	if err != nil {
		return nil, nil, fmt.Errorf("build mailer: %w", err)
	}
	files, err := storage.NewDiskStore(cfg.Uploads.Dir)
	if err != nil {
		return nil, nil, fmt.Errorf("build file store: %w", err)
	}

	// --- Repositories ---
	users := mongodb.NewUserRepository(db)
	jobs := mongodb.NewJobRepository(db)
	apps := mongodb.NewApplicationRepository(db)
	interviews := mongodb.NewInterviewRepository(db)
	auditLogs := mongodb.NewAuditLogRepository(db)
	notifications := mongodb.NewNotificationRepository(db)

	// --- Services ---
	// The audit recorder and the notifier consume events published by the
	// other services; the dispatcher fans out to both after commit.
	auditService := service.NewAuditService(auditLogs, cache, log)
	notificationService := service.NewNotificationService(notifications, mailer, hub, log)
	dispatcher := queue.NewDispatcher(0, log, auditService, notificationService)

	authService := service.NewAuthService(users, revoker, dispatcher,
		cfg.Auth.JWTSecret, cfg.Auth.JWTRefreshSecret,
		cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL, log)
	jobService := service.NewJobService(jobs, cache, dispatcher, log)
	applicationService := service.NewApplicationService(apps, jobs, users, files, cache, dispatcher, log)
	interviewService := service.NewInterviewService(interviews, apps, users, cache, dispatcher, cfg.SMTP.From, log)
	userService := service.NewUserService(users, cache, dispatcher, log)
	reportService := service.NewReportService(apps, jobs, cache, log)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, cfg.Auth.RefreshTokenTTL, cfg.Production(), log)
	jobHandler := handler.NewJobHandler(jobService)
	applicationHandler := handler.NewApplicationHandler(applicationService)
	interviewHandler := handler.NewInterviewHandler(interviewService)
	userHandler := handler.NewUserHandler(userService)
	auditHandler := handler.NewAuditLogHandler(auditService)
	reportHandler := handler.NewReportHandler(reportService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	wsHandler := handler.NewWSHandler(hub, log)

	auth := middleware.Auth(cfg.Auth.JWTSecret, revoker, log)
	staff := middleware.RequireRole(domain.RoleAdmin, domain.RoleHR)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.POST("/auth/logout", authHandler.Logout)

	// --- Jobs (reads open, writes restricted) ---
	e.GET("/jobs", jobHandler.List)
	e.GET("/jobs/:id", jobHandler.Get)
	e.POST("/jobs", jobHandler.Create, auth, staff)
	e.PUT("/jobs/:id", jobHandler.Update, auth, staff)
	e.DELETE("/jobs/:id", jobHandler.Delete, auth, staff)
	e.POST("/jobs/:id/publish", jobHandler.Publish, auth, staff)
	e.POST("/jobs/:id/close", jobHandler.Close, auth, staff)
	e.POST("/jobs/:id/apply", applicationHandler.Apply, auth)
	e.GET("/jobs/:id/applications", applicationHandler.ListByJob, auth, staff)

	// --- Applications ---
	e.GET("/applications", applicationHandler.List, auth, staff)
	e.PUT("/applications/:id/status", applicationHandler.UpdateStatus, auth, staff)
	e.POST("/applications/:id/notes", applicationHandler.AddNote, auth, staff)
	e.POST("/applications/:id/interviews", interviewHandler.Create, auth, staff)

	// --- Interviews ---
	e.GET("/interviews/:id", interviewHandler.Get, auth)
	e.PUT("/interviews/:id", interviewHandler.Update, auth, staff)
	e.POST("/interviews/:id/complete", interviewHandler.Complete, auth, staff)
	e.GET("/interviews/:id/export", interviewHandler.Export, auth)

	// --- Users ---
	e.GET("/users", userHandler.List, auth, staff)
	e.GET("/users/:id", userHandler.Get, auth)
	e.POST("/users", userHandler.Create, auth, adminOnly)
	e.PUT("/users/:id", userHandler.Update, auth)
	e.DELETE("/users/:id", userHandler.Delete, auth, adminOnly)

	// --- Audit trail ---
	e.GET("/audit-logs", auditHandler.List, auth, adminOnly)

	// --- Reports ---
	e.GET("/reports/export", reportHandler.Export, auth, staff)
	e.GET("/reports/pipeline", reportHandler.Pipeline, auth, staff)

	// --- Notifications ---
	e.GET("/notifications", notificationHandler.List, auth)
	e.PUT("/notifications/:id/read", notificationHandler.MarkRead, auth)

	// --- Real-time channel ---
	e.GET("/ws", wsHandler.Connect, auth)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, dispatcher, nil
}
