package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/forum/internal/forum/http"
	"github.com/aussiebroadwan/forum/internal/forum/service"
	"github.com/aussiebroadwan/forum/internal/forum/store"
	"github.com/aussiebroadwan/forum/internal/forum/store/drivers/sqlite"
	"github.com/aussiebroadwan/forum/pkg/cryptox"
	"github.com/aussiebroadwan/forum/pkg/sessionx"
	"github.com/aussiebroadwan/forum/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the forum service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db store.Store

	// Services
	authService      *service.AuthService
	sessionService   *service.SessionService
	forumService     *service.ForumService
	bootstrapService *service.BootstrapService
	themeService     *httpapi.ThemeService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
// It fails when the session secret is not configured: sessions cannot be
// minted or verified without it.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "forum-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for password hashing
	cryptox.SetPepperPath(app.cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.bootstrapService.Seed(context.Background()); err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}

	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("forum service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
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
	app.logger.Info("shutting down forum service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("forum service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	// Busy timeout, journal mode and foreign keys are attached per
	// connection by the driver wrapper.
	host := fmt.Sprintf("file:%s", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() error {
	sessionCodec, err := sessionx.NewCodec(app.cfg.SessionSecret, app.cfg.SessionTTL)
	if err != nil {
		return fmt.Errorf("failed to initialize session codec: %w", err)
	}

	// Theme preferences ride a separate long-lived signed cookie.
	themeCodec, err := sessionx.NewCodec(app.cfg.SessionSecret, httpapi.ThemeTTL)
	if err != nil {
		return fmt.Errorf("failed to initialize theme codec: %w", err)
	}

	secure := app.cfg.Env == "prod"

	app.authService = &service.AuthService{Store: app.db}
	app.sessionService = &service.SessionService{
		Codec:      sessionCodec,
		Store:      app.db,
		CookieName: service.DefaultSessionCookie,
		Secure:     secure,
	}
	app.forumService = &service.ForumService{Store: app.db}
	app.bootstrapService = &service.BootstrapService{Store: app.db}
	app.themeService = &httpapi.ThemeService{
		Codec:  themeCodec,
		Secure: secure,
	}

	return nil
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(BuildVersion, app.db, app.logger)

	// Wire services to router
	router.AuthService = app.authService
	router.SessionService = app.sessionService
	router.ForumService = app.forumService
	router.ThemeService = app.themeService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
