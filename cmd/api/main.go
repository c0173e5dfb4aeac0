package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"todoapp/backend/internal/config"
	"todoapp/backend/internal/database"
	"todoapp/backend/internal/logging"
	"todoapp/backend/internal/routes"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		logging.New(config.LoggingConfig{Level: "info"}).Error("設定の読み込みに失敗しました", "err", err)
		return err
	}
	logger := logging.New(cfg.Logging)
	gin.SetMode(cfg.Server.Mode)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// DBに接続
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		logger.Error("DB接続エラー", "driver", cfg.Database.Driver, "err", err)
		return err
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db, cfg.Database.Driver); err != nil {
			logger.Error("スキーマ作成に失敗しました", "err", err)
			return err
		}
		logger.Info("schema ready", "driver", cfg.Database.Driver)
	}

	r := routes.SetupRouter(routes.Dependencies{DB: db, Config: cfg, Logger: logger})
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", cfg.Server.Addr, "driver", cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", "err", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
		return err
	}
	return nil
}
