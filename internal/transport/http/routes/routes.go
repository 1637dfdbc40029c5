package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/maintdesk/access-service/internal/core/domain"
	"github.com/maintdesk/access-service/internal/infra/config"
	"github.com/maintdesk/access-service/internal/infra/security"
	"github.com/maintdesk/access-service/internal/transport/http/handlers"
	"github.com/maintdesk/access-service/internal/transport/http/middleware"
	"github.com/maintdesk/access-service/internal/usecase"
)

// Services bundles the use-case layer the routes depend on.
type Services struct {
	Roles      *usecase.RoleService
	Users      *usecase.UserService
	Authorizer *usecase.Authorizer
}

// Dependencies carries everything required to assemble the router.
type Dependencies struct {
	Config      *config.AppConfig
	Logger      *zap.Logger
	Catalog     *domain.Catalog
	Services    Services
	TokenParser *security.TokenParser
	RateLimiter *middleware.RateLimiter
	Health      []handlers.HealthChecker
}

// NewRouter wires middleware, handlers, and per-route rate limits.
func NewRouter(deps Dependencies) *gin.Engine {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.EnrichContext())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(deps.Logger))
	router.Use(middleware.CORS(deps.Config.CORS.AllowedOrigins))
	router.Use(middleware.Metrics())

	healthHandler := handlers.NewHealthHandler(deps.Logger, deps.Health...)
	permissionHandler := handlers.NewPermissionHandler(deps.Catalog)
	roleHandler := handlers.NewRoleHandler(deps.Services.Roles, deps.Logger)
	userHandler := handlers.NewUserHandler(deps.Services.Users, deps.Logger)
	authzHandler := handlers.NewAuthzHandler(deps.Services.Authorizer, deps.Logger)

	router.GET("/healthz", healthHandler.Status)
	router.GET("/readyz", healthHandler.Readiness)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	mutationLimit := noopMiddleware()
	checkLimit := noopMiddleware()
	if deps.RateLimiter != nil {
		rl := deps.Config.RateLimit
		mutationLimit = deps.RateLimiter.RateLimit(middleware.RateLimitRule{
			Name:       "mutation",
			Limit:      rl.MutationMaxAttempts,
			Window:     rl.WindowDuration,
			Identifier: middleware.ClientIPIdentifier(),
		})
		checkLimit = deps.RateLimiter.RateLimit(middleware.RateLimitRule{
			Name:       "authz-check",
			Limit:      rl.CheckMaxAttempts,
			Window:     rl.WindowDuration,
			Identifier: middleware.ClientIPIdentifier(),
		})
	}

	v1 := router.Group("/api/v1")
	v1.Use(middleware.RequireAuth(deps.TokenParser))
	{
		v1.GET("/permissions",
			middleware.RequirePermission(deps.Services.Authorizer, usecase.AliasViewPermissions),
			permissionHandler.List)

		rolesGroup := v1.Group("/roles")
		{
			rolesGroup.GET("",
				middleware.RequirePermission(deps.Services.Authorizer, usecase.AliasViewPermissions),
				roleHandler.List)
			rolesGroup.POST("", mutationLimit,
				middleware.RequirePermission(deps.Services.Authorizer, usecase.AliasEditPermissions),
				roleHandler.Create)
			rolesGroup.PUT("/:id", mutationLimit,
				middleware.RequirePermission(deps.Services.Authorizer, usecase.AliasEditPermissions),
				roleHandler.Update)
			rolesGroup.DELETE("/:id", mutationLimit,
				middleware.RequirePermission(deps.Services.Authorizer, usecase.AliasEditPermissions),
				roleHandler.Delete)
		}

		usersGroup := v1.Group("/users")
		{
			usersGroup.GET("",
				middleware.RequirePermission(deps.Services.Authorizer, usecase.AliasViewPermissions),
				userHandler.List)
			usersGroup.GET("/:id",
				middleware.RequirePermission(deps.Services.Authorizer, usecase.AliasViewPermissions),
				userHandler.Get)
			usersGroup.PATCH("/:id/permissions", mutationLimit,
				middleware.RequirePermission(deps.Services.Authorizer, usecase.AliasEditPermissions),
				userHandler.UpdatePermissions)
			usersGroup.DELETE("/:id", mutationLimit,
				middleware.RequirePermission(deps.Services.Authorizer, usecase.AliasManageUsers),
				userHandler.Delete)
		}

		v1.POST("/authz/check", checkLimit, authzHandler.Check)
	}

	return router
}

func noopMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) { c.Next() }
}
