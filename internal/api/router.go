// Package api wires HTTP transport: routing, middleware, and the error
// envelope for the CRM backend.
package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	redisclient "github.com/redis/go-redis/v9"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/actionauto/crm-api/docs"
	"github.com/actionauto/crm-api/internal/api/handler"
	"github.com/actionauto/crm-api/internal/api/middleware"
	"github.com/actionauto/crm-api/internal/core/domain"
	"github.com/actionauto/crm-api/internal/core/service"
	"github.com/actionauto/crm-api/internal/infrastructure/config"
	crmmongo "github.com/actionauto/crm-api/internal/infrastructure/db/mongo"
	crmredis "github.com/actionauto/crm-api/internal/infrastructure/db/redis"
	"github.com/actionauto/crm-api/pkg/logger"
)

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redisclient.Client) *echo.Echo {
	log := logger.L()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, !cfg.Production())

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Secure())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("crm"))

	// --- Repositories ---
	userRepo := crmmongo.NewUserRepository(db)
	leadRepo := crmmongo.NewLeadRepository(db)
	taskRepo := crmmongo.NewTaskRepository(db)
	activityRepo := crmmongo.NewActivityRepository(db)
	timeClockRepo := crmmongo.NewTimeClockRepository(db)

	// --- Services ---
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokenService, log)
	leadService := service.NewLeadService(leadRepo, log)
	taskService := service.NewTaskService(taskRepo, log)
	activityService := service.NewActivityService(activityRepo, log)
	timeClockService := service.NewTimeClockService(timeClockRepo, log)
	dashboardService := service.NewDashboardService(taskRepo, activityRepo, leadRepo, timeClockRepo)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	leadHandler := handler.NewLeadHandler(leadService)
	taskHandler := handler.NewTaskHandler(taskService)
	activityHandler := handler.NewActivityHandler(activityService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, timeClockService)
	healthHandler := handler.NewHealthHandler(db, rdb)

	authRequired := middleware.Auth(tokenService, userRepo)
	manageOnly := middleware.RequireRole(domain.RoleSuperAdmin, domain.RoleAdmin, domain.RoleManager)
	limiter := crmredis.NewRateLimiter(rdb, cfg.RateLimit.Window, cfg.RateLimit.Max)

	// --- Operational endpoints (outside the rate-limited group) ---
	e.GET("/", rootInfo)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	api := e.Group("/api", middleware.RateLimit(limiter, log))

	api.GET("/health", healthHandler.Liveness)
	api.GET("/health/ready", healthHandler.Readiness)

	// --- Auth ---
	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.GET("/profile", authHandler.Profile, authRequired)
	auth.POST("/logout", authHandler.Logout, authRequired)

	// --- Leads ---
	leads := api.Group("/leads", authRequired)
	leads.GET("", leadHandler.List)
	leads.POST("", leadHandler.Create)
	leads.GET("/:id", leadHandler.Get)
	leads.PUT("/:id", leadHandler.Update)
	leads.DELETE("/:id", leadHandler.Delete, manageOnly)

	// --- Tasks ---
	tasks := api.Group("/tasks", authRequired)
	tasks.GET("", taskHandler.List)
	tasks.POST("", taskHandler.Create)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete, manageOnly)

	// --- Activities ---
	activities := api.Group("/activities", authRequired)
	activities.GET("", activityHandler.List)
	activities.POST("", activityHandler.Create)
	activities.PUT("/:id", activityHandler.Update)
	activities.DELETE("/:id", activityHandler.Delete, manageOnly)

	// --- Dashboard & time clock ---
	dashboard := api.Group("/dashboard", authRequired)
	dashboard.GET("/summary", dashboardHandler.Summary)
	dashboard.POST("/clock-in", dashboardHandler.ClockIn)
	dashboard.POST("/clock-out", dashboardHandler.ClockOut)

	return e
}

func rootInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"name":    "Action Auto CRM API",
		"version": "1.0.0",
		"docs":    "/swagger/index.html",
	})
}
