// Package server initializes and runs the job board: it opens PostgreSQL,
// applies migrations, selects the resume storage backend and starts the
// HTTP API, stopping gracefully on SIGINT/SIGTERM/SIGQUIT.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/logging"
	"github.com/dmitrijs2005/jobboard/internal/server/auth"
	"github.com/dmitrijs2005/jobboard/internal/server/config"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/jobboard/internal/server/rest"
	"github.com/dmitrijs2005/jobboard/internal/server/services"
	"github.com/dmitrijs2005/jobboard/internal/server/storage"
	"github.com/gin-gonic/gin"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sethvargo/go-retry"
)

type runner interface {
	Run(ctx context.Context) error
}

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server runner
}

// Seams for tests.
var (
	openDB = func(dsn string) (*sql.DB, error) { return sql.Open("pgx", dsn) }

	newBlobStore = storage.New

	newVerifier = func(ctx context.Context, clientID string) (auth.IdentityVerifier, error) {
		return auth.NewGoogleVerifier(ctx, clientID, &http.Client{Timeout: 10 * time.Second})
	}

	dbPingBackoff = func() retry.Backoff {
		return retry.WithMaxRetries(5, retry.NewExponential(500*time.Millisecond))
	}
)

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(c.LogFormat, os.Stdout)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app, err := build(ctx, c, logger, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func build(ctx context.Context, c *config.Config, logger logging.Logger, db *sql.DB) (*App, error) {
	if err := pingDB(ctx, db, logger); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, err
	}

	store, err := newBlobStore(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("resume storage: %w", err)
	}

	verifier, err := newVerifier(ctx, c.GoogleClientID)
	if err != nil {
		return nil, err
	}
	if c.GoogleClientID == "" {
		logger.Warn(ctx, "google client id is not set, google login will reject every token")
	}
	if c.AdminPasswordHash == "" {
		logger.Warn(ctx, "admin password hash is not set, password login is disabled")
	}

	deps := rest.Deps{
		Auth:         services.NewAuthService(db, rm, verifier, logger, c),
		Jobs:         services.NewJobService(db, rm, logger),
		Applications: services.NewApplicationService(db, rm, store, logger),
		Profile:      services.NewProfileService(db, rm, logger),
		Admin:        services.NewAdminService(db, rm, store, logger),
		DB:           db,
	}

	rc := rest.RouterConfig{AllowedOrigins: c.AllowedOrigins}
	if local, ok := store.(*storage.LocalStore); ok {
		rc.UploadsDir = local.Root()
	}

	gin.SetMode(gin.ReleaseMode)
	router := rest.NewRouter(deps, rc, logger)

	return &App{
		config: c,
		logger: logger,
		db:     db,
		server: rest.NewServer(c.EndpointAddrHTTP, router, logger),
	}, nil
}

type pinger interface {
	PingContext(ctx context.Context) error
}

// pingDB waits for the database to accept connections.
func pingDB(ctx context.Context, db pinger, l logging.Logger) error {
	return retry.Do(ctx, dbPingBackoff(), func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			l.Warn(ctx, "database not ready", "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled or a signal arrives, then closes the
// database pool.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	err := app.server.Run(ctx)
	if err != nil {
		app.logger.Error(ctx, "http server failed", "error", err)
	}

	if cerr := app.db.Close(); cerr != nil {
		err = errors.Join(err, fmt.Errorf("db close: %w", cerr))
	}
	app.logger.Info(ctx, "App stopped")
	return err
}
