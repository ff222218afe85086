package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/teamhub/accounts-api/internal/api/handler"
	"github.com/teamhub/accounts-api/internal/api/middleware"
	"github.com/teamhub/accounts-api/internal/core/domain"
	"github.com/teamhub/accounts-api/internal/core/ports"
	"github.com/teamhub/accounts-api/internal/core/service"
	"github.com/teamhub/accounts-api/internal/infrastructure/config"
	pgstore "github.com/teamhub/accounts-api/internal/infrastructure/db/postgres"
	redisstore "github.com/teamhub/accounts-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The audit sink is passed in because its worker lifecycle belongs to main.
func NewRouter(cfg *config.Config, db *gorm.DB, rdb *redis.Client, audit ports.AuditSink, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Dependencies ---
	accountRepo := pgstore.NewAccountRepository(db)
	sessionRepo := pgstore.NewSessionRepository(db)
	detailsRepo := pgstore.NewDetailsRepository(db)
	teamRepo := pgstore.NewTeamRepository(db)
	reportRepo := pgstore.NewReportRepository(db)

	hasher := service.NewPasswordHasher()
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL())
	throttle := redisstore.NewLoginThrottle(rdb, cfg.Throttle.MaxFailures, cfg.Throttle.Window)

	accountService := service.NewAccountService(accountRepo, sessionRepo, detailsRepo, hasher, tokens, throttle, audit, log)
	teamService := service.NewTeamService(teamRepo, accountRepo)

	accountHandler := handler.NewAccountHandler(accountService)
	teamHandler := handler.NewTeamHandler(teamService)
	reportHandler := handler.NewReportHandler(reportRepo)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("accounts"))
	e.Use(middleware.Auth(middleware.AuthConfig{
		PublicPaths: cfg.PublicPaths,
		Tokens:      tokens,
		Sessions:    sessionRepo,
		Log:         log,
	}))

	// --- Auth routes ---
	e.POST("/auth/register", accountHandler.Register)
	e.POST("/auth/login", accountHandler.Login)
	e.POST("/auth/logout/:username", accountHandler.Logout)

	// --- Account CRUD (session-gated by the Auth middleware) ---
	e.GET("/users", accountHandler.List)
	e.GET("/users/:username", accountHandler.Get)
	e.PATCH("/users/:username", accountHandler.Update)
	e.DELETE("/users/:username", accountHandler.Delete)
	e.GET("/users/:username/details", accountHandler.GetDetails)
	e.PUT("/users/:username/details", accountHandler.SaveDetails)

	// --- Teams ---
	e.POST("/teams", teamHandler.Create)
	e.POST("/teams/:id/members", teamHandler.AddMember)

	// --- Reporting (admin only) ---
	e.GET("/reports/accounts", reportHandler.AccountActivity, middleware.RBAC(domain.RoleAdmin))

	// --- Probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
