package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/userdeck/identity-service/docs"
	"github.com/userdeck/identity-service/internal/api/handler"
	"github.com/userdeck/identity-service/internal/api/middleware"
	"github.com/userdeck/identity-service/internal/core/domain"
	"github.com/userdeck/identity-service/internal/core/ports"
	"github.com/userdeck/identity-service/internal/core/service"
	"github.com/userdeck/identity-service/internal/infrastructure/config"
	mongodb "github.com/userdeck/identity-service/internal/infrastructure/db/mongo"
	redisdb "github.com/userdeck/identity-service/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger, audit ports.AuditRecorder) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("identity"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	itemRepo := mongodb.NewItemRepository(db)
	throttle := redisdb.NewLoginThrottle(rdb)

	tokenService := service.NewTokenService(cfg.JWTSecret)
	authzService := service.NewAuthorizationService(userRepo)
	authService := service.NewAuthService(userRepo, tokenService, throttle, audit, cfg.TokenTTL, log)
	userService := service.NewUserService(userRepo, authzService, audit, log)
	itemService := service.NewItemService(itemRepo, authzService, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	itemHandler := handler.NewItemHandler(itemService)

	requireAuth := middleware.Auth(tokenService)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/token", authHandler.Token)

	// --- Protected routes ---
	v1 := e.Group("/v1", requireAuth)

	users := v1.Group("/users")
	users.GET("/me", userHandler.Me)
	users.GET("", userHandler.List, middleware.RequirePermission(authzService, audit, domain.PermissionReadUsers))
	users.GET("/:id", userHandler.Get)
	users.DELETE("/:id", userHandler.Delete, middleware.RequireAdmin(authzService, audit))

	items := v1.Group("/items")
	items.POST("", itemHandler.Create, middleware.RequirePermission(authzService, audit, domain.PermissionWriteOwnData))
	items.GET("", itemHandler.List, middleware.RequirePermission(authzService, audit, domain.PermissionReadOwnData))
	items.GET("/:id", itemHandler.Get)
	items.DELETE("/:id", itemHandler.Delete)

	v1.GET("/admin/stats", userHandler.Stats, middleware.RequireAdmin(authzService, audit))
	v1.GET("/moderator/dashboard", userHandler.Dashboard, middleware.RequireModerator(authzService, audit))

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
