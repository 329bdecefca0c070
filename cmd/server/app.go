package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/azuldeco/azul-admin/internal/cache"
	"github.com/azuldeco/azul-admin/internal/config"
	"github.com/azuldeco/azul-admin/internal/db"
	"github.com/azuldeco/azul-admin/internal/logging"
	"github.com/azuldeco/azul-admin/internal/server"
	"github.com/azuldeco/azul-admin/internal/services"
	"github.com/azuldeco/azul-admin/internal/settings"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App owns the process-wide resources: database, optional redis and the HTTP server.
type App struct {
	cfg   *config.Config
	log   *log.Logger
	db    *gorm.DB
	redis *redis.Client
	srv   *http.Server
}

func connect() (*config.Config, *log.Logger, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, err
	}
	l := logging.New(cfg.Log)
	conn, err := db.Connect(cfg.Database, l)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, l, conn, nil
}

// NewApp connects the stores, prepares the schema and builds the router.
func NewApp(ctx context.Context, cfg *config.Config, l *log.Logger) (*App, error) {
	conn, err := db.Connect(cfg.Database, l)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(conn, cfg.Database.Driver, cfg.Database.ConnString(), cfg.App.Migrations, l); err != nil {
		return nil, errors.Wrap(err, "migrate")
	}
	if cfg.App.Seed {
		if err := db.Seed(conn); err != nil {
			return nil, errors.Wrap(err, "seed")
		}
		l.Info("seed data ensured")
	}

	a := &App{cfg: cfg, log: l, db: conn}
	var c cache.Cache = cache.Noop{}
	if cfg.Redis.Addr != "" {
		client, err := cache.Dial(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			// Settings still work without the cache.
			l.WithError(err).Warn("redis unavailable, settings cache disabled")
		} else {
			a.redis = client
			c = cache.NewRedis(client, "azul:")
		}
	}

	st := settings.NewService(conn, c, cfg.Redis.TTL, l)
	handler := server.New(conn, server.Services{
		Documents:    services.NewDocumentService(conn, st, cfg.Numbering.MaxAttempts, l),
		Clients:      services.NewClientService(conn),
		Fabrics:      services.NewFabricService(conn),
		SystemColors: services.NewSystemColorService(conn),
		Settings:     st,
	}, l)

	a.srv = &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	return a, nil
}

// Run serves until SIGINT/SIGTERM, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.log.WithFields(log.Fields{"port": a.cfg.Server.Port, "env": a.cfg.App.Env}).Info("server starting")
		if err := a.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return errors.Wrap(err, "listen")
		}
		return nil
	case <-ctx.Done():
	}
	a.log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown")
	}
	a.log.Info("server stopped gracefully")
	return nil
}

func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.WithError(err).Warn("close redis")
		}
	}
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
