package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/adminhub/internal/auth/http"
	"github.com/aussiebroadwan/adminhub/internal/auth/service"
	"github.com/aussiebroadwan/adminhub/internal/auth/store"
	"github.com/aussiebroadwan/adminhub/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/adminhub/pkg/jwtx"
	"github.com/aussiebroadwan/adminhub/pkg/metricsx"
	"github.com/aussiebroadwan/adminhub/pkg/slogx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

// BuildVersion is overridden at build time via -ldflags.
var BuildVersion = "v0.1.0"

// Application encapsulates the auth service application with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db         store.Store
	keyManager *jwtx.KeyManager
	redis      *redis.Client // nil unless REDIS_ADDR is set
	metrics    *metricsx.Metrics

	// Services
	auditService        *service.AuditService
	tokenService        *service.TokenService
	authService         *service.AuthService
	mfaService          *service.MFAService
	userService         *service.UserService
	rolesService        *service.RolesService
	bootstrapService    *service.BootstrapService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "adminhub-auth",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		metrics: metricsx.New(prometheus.NewRegistry()),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	keyManager, err := InitAuthKeys(app.cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to initialize JWT keys: %w", err)
	}
	app.keyManager = keyManager

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Handler returns the root HTTP handler.
func (app *Application) Handler() http.Handler { return app.router }

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("auth service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.housekeepingService.Stop()
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down auth service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("error closing redis client", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("auth service stopped")
	return nil
}

// initDatabase opens the database and applies migrations
func (app *Application) initDatabase() error {
	dsn := fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)",
		app.cfg.DatabaseFile,
	)
	db, err := sqlite.NewStore(dsn)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "file", app.cfg.DatabaseFile)
	return nil
}

// otpLimiter picks the Redis limiter when REDIS_ADDR is set so attempt
// counts are shared between replicas.
func (app *Application) otpLimiter() service.OTPLimiter {
	if app.cfg.RedisAddr == "" {
		app.logger.Info("using in-memory OTP limiter")
		return service.NewMemoryOTPLimiter(app.cfg.OTPMaxAttempts, app.cfg.OTPCooldown)
	}

	app.redis = redis.NewClient(&redis.Options{
		Addr:     app.cfg.RedisAddr,
		Password: app.cfg.RedisPassword,
		DB:       app.cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := app.redis.Ping(ctx).Err(); err != nil {
		// Keep going; OTP checks fail closed and /readyz reports the cache.
		app.logger.Warn("redis connection failed", "addr", app.cfg.RedisAddr, "error", err)
	} else {
		app.logger.Info("using redis OTP limiter", "addr", app.cfg.RedisAddr)
	}

	return service.NewRedisOTPLimiter(app.redis, app.cfg.OTPMaxAttempts, app.cfg.OTPCooldown)
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.auditService = &service.AuditService{Store: app.db}

	app.tokenService = &service.TokenService{
		KeyManager: app.keyManager,
		Store:      app.db,
		Issuer:     app.cfg.Issuer,
		AccessTTL:  app.cfg.AccessTokenTTL,
		RefreshTTL: app.cfg.RefreshTokenTTL,
		Metrics:    app.metrics,
		Audit:      app.auditService,
	}

	app.authService = &service.AuthService{
		Store:       app.db,
		Tokens:      app.tokenService,
		Audit:       app.auditService,
		Metrics:     app.metrics,
		DefaultRole: app.cfg.DefaultRole,
	}

	app.mfaService = &service.MFAService{
		Store:   app.db,
		Issuer:  app.cfg.MFAIssuer,
		Limiter: app.otpLimiter(),
		Audit:   app.auditService,
		Metrics: app.metrics,
	}

	app.userService = &service.UserService{Store: app.db, Audit: app.auditService}
	app.rolesService = &service.RolesService{Store: app.db}
	app.bootstrapService = &service.BootstrapService{
		Store: app.db,
		Token: app.cfg.BootstrapToken,
		Audit: app.auditService,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.AuditRetention,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keyManager.KeySet,
		app.keyManager.Verifier,
		BuildVersion,
		app.db,
		app.logger,
		app.metrics,
	)
	router.ExposeErrors = app.cfg.Dev()
	if app.redis != nil {
		router.CacheCheck = func(ctx context.Context) error {
			return app.redis.Ping(ctx).Err()
		}
	}

	router.AuthService = app.authService
	router.TokenService = app.tokenService
	router.MFAService = app.mfaService
	router.UserService = app.userService
	router.RolesService = app.rolesService
	router.AuditService = app.auditService
	router.BootstrapService = app.bootstrapService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
