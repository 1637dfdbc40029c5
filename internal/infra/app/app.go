package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/maintdesk/access-service/internal/core/domain"
	"github.com/maintdesk/access-service/internal/infra/config"
	"github.com/maintdesk/access-service/internal/infra/logger"
	infraredis "github.com/maintdesk/access-service/internal/infra/redis"
	"github.com/maintdesk/access-service/internal/infra/security"
	redisrepo "github.com/maintdesk/access-service/internal/repository/redis"
	"github.com/maintdesk/access-service/internal/repository/upstream"
	"github.com/maintdesk/access-service/internal/transport/http/handlers"
	"github.com/maintdesk/access-service/internal/transport/http/middleware"
	"github.com/maintdesk/access-service/internal/transport/http/routes"
	"github.com/maintdesk/access-service/internal/usecase"
)

// App owns the composed service and its long-lived resources.
type App struct {
	cfg    *config.AppConfig
	log    *zap.Logger
	redis  *infraredis.Client
	server *http.Server
}

// New assembles the service: config, logging, caches, the upstream client,
// and the HTTP surface.
func New(ctx context.Context, cfg *config.AppConfig) (*App, error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	redisClient, err := infraredis.NewClient(cfg.Redis, log)
	if err != nil {
		return nil, fmt.Errorf("init redis: %w", err)
	}

	tokenParser, err := security.NewTokenParser(cfg.Auth.HMACSecret, cfg.Auth.Issuer)
	if err != nil {
		return nil, fmt.Errorf("init token parser: %w", err)
	}

	catalog := domain.DefaultCatalog()
	client := upstream.New(cfg.Upstream, log)

	roleService := usecase.NewRoleService(client, catalog, log)
	userService := usecase.NewUserService(client.Users(), roleService, catalog, log)
	roleService.WithRoleUsage(userService).WithDependent(userService)
	authorizer := usecase.NewAuthorizer(catalog, userService)

	// Warm the caches before accepting traffic. Roles load first so user
	// records resolve against a populated role set.
	if err := roleService.Refresh(ctx); err != nil {
		log.Warn("initial role refresh failed; caches load lazily", zap.Error(err))
	} else if err := userService.Refresh(ctx); err != nil {
		log.Warn("initial user refresh failed; caches load lazily", zap.Error(err))
	}

	rateLimitStore := redisrepo.NewRateLimitStore(redisClient.Client(), redisrepo.SlidingWindowConfig{
		KeyPrefix: "access:ratelimit",
		TTL:       cfg.RateLimit.WindowDuration * 2,
	})
	rateLimiter := middleware.NewRateLimiter(rateLimitStore, log)

	router := routes.NewRouter(routes.Dependencies{
		Config:      cfg,
		Logger:      log,
		Catalog:     catalog,
		TokenParser: tokenParser,
		RateLimiter: rateLimiter,
		Services: routes.Services{
			Roles:      roleService,
			Users:      userService,
			Authorizer: authorizer,
		},
		Health: []handlers.HealthChecker{
			{Name: "redis", Check: redisClient.HealthCheck},
			{Name: "upstream", Check: client.HealthCheck},
		},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &App{cfg: cfg, log: log, redis: redisClient, server: server}, nil
}

// Run serves HTTP until the context is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("http server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	if err := a.redis.Close(); err != nil {
		a.log.Warn("redis close failed", zap.Error(err))
	}
	return nil
}

// Logger exposes the application logger for the entrypoint.
func (a *App) Logger() *zap.Logger {
	return a.log
}
