// Package server initializes and runs the FieldPass API server: it builds
// the logger, opens storage backends, wires services, and handles graceful
// shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fieldpass/fieldpass/internal/logging"
	"github.com/fieldpass/fieldpass/internal/server/config"
	"github.com/fieldpass/fieldpass/internal/server/httpapi"
	"github.com/fieldpass/fieldpass/internal/server/repositories/repomanager"
	"github.com/fieldpass/fieldpass/internal/server/revocation"
	"github.com/fieldpass/fieldpass/internal/server/services"
	"github.com/fieldpass/fieldpass/internal/server/shared/db"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	denylist *revocation.RedisDenylist
	server   *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level := slog.LevelDebug
	if cfg.ReleaseMode {
		level = slog.LevelInfo
	}
	sl := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	logger := logging.NewSlogLogger(sl)

	database, err := db.OpenPostgres(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	repos := repomanager.NewPostgresRepositoryManager()
	if err := repos.RunMigrations(ctx, database); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	denylist, err := revocation.NewRedisDenylist(ctx, cfg.RedisURL)
	if err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("denylist init error: %w", err)
	}

	mailer := services.NewLogMailer(logger)
	authSvc := services.NewAuthService(database, repos, denylist, mailer, cfg)
	identitySvc := services.NewIdentityService(database, repos, denylist, cfg)
	userSvc := services.NewUserService(database, repos)
	scoutSvc := services.NewScoutService(database, repos)
	couponSvc := services.NewCouponService(database, repos)

	srv := httpapi.NewServer(cfg, logger, authSvc, identitySvc, userSvc, scoutSvc, couponSvc)

	return &App{
		config:   cfg,
		logger:   logger,
		db:       database,
		denylist: denylist,
		server:   srv,
	}, nil
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

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
	}

	if err := app.denylist.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, err.Error())
	}

	app.logger.Info(ctx, "Stopped")
}
