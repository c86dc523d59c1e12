package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/gorm"

	"nutrilabel/internal/config"
	"nutrilabel/internal/db"
	"nutrilabel/internal/db/mock"
	applog "nutrilabel/internal/log"
	"nutrilabel/internal/server"
)

type serverLifecycle interface {
	Start() error
	Stop() error
}

var (
	loadConfigFunc      = config.Load
	setLogLevelFunc     = applog.SetLevel
	newMockDatabaseFunc = mock.New
	configureDatabase   = db.Configure
	newServerFunc       = func(cfg server.Config) (serverLifecycle, error) {
		return server.New(cfg)
	}
	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
		return sigCh, func() { signal.Stop(sigCh) }
	}
)

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	cfg, err := loadConfigFunc()
	if err != nil {
		applog.Error(ctx, "failed to load configuration", "error", err)
		return 1
	}

	if err := setLogLevelFunc(cfg.Logging.Level); err != nil {
		applog.Error(ctx, "invalid log level", "level", cfg.Logging.Level, "error", err)
		return 1
	}

	var database *gorm.DB
	if cfg.Database.UseMock {
		applog.Info(ctx, "using in-memory mock database")
		database, err = newMockDatabaseFunc(ctx)
	} else {
		applog.Debug(ctx, "configuring database")
		database, err = configureDatabase(cfg.Database)
	}
	if err != nil {
		applog.Error(ctx, "failed to configure database", "error", err)
		return 1
	}

	srv, err := newServerFunc(server.Config{
		Addr:      cfg.Server.Addr,
		AssetsDir: cfg.Server.AssetsDir,
		Session: server.SessionConfig{
			Lifetime:     cfg.Auth.Session.Lifetime,
			CookieName:   cfg.Auth.Session.CookieName,
			CookieDomain: cfg.Auth.Session.CookieDomain,
			CookieSecure: cfg.Auth.Session.CookieSecure,
		},
		Database: database,
		Admin: server.AdminConfig{
			Password:     cfg.Auth.AdminPassword,
			PasswordHash: cfg.Auth.AdminPasswordHash,
		},
		FontPath: cfg.Label.FontPath,
	})
	if err != nil {
		applog.Error(ctx, "failed to build server", "error", err)
		return 1
	}

	sigCh, unsubscribe := subscribeShutdownSig()
	defer unsubscribe()

	errCh := make(chan error, 1)
	go func() {
		applog.Info(ctx, "starting http server", "addr", cfg.Server.Addr)
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Error(ctx, "server encountered an error", "error", err)
			return 1
		}
		return 0
	case sig := <-sigCh:
		applog.Info(ctx, "shutting down http server", "signal", sig.String())
	}

	if err := srv.Stop(); err != nil {
		applog.Error(ctx, "graceful shutdown failed", "error", err)
		return 1
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		applog.Error(ctx, "server stopped with error", "error", err)
		return 1
	}
	return 0
}
