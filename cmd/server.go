package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"artdb/internal/wire"
	"artdb/pkg/database"
	"artdb/pkg/utils"

	"go.uber.org/zap"
)

// Run boots the HTTP server and blocks until shutdown completes.
func Run() error {
	config, err := utils.LoadConfig()
	if err != nil {
		return err
	}

	log, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := database.InitDB(config.Database)
	if err != nil {
		log.Error("Failed to connect to database", zap.Error(err))
		return err
	}
	defer db.Close()

	server := &http.Server{
		Addr:         ":" + config.App.Port,
		Handler:      wire.Setup(config, db, log),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Server starting",
			zap.String("app", config.App.Name),
			zap.String("port", config.App.Port),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error("Server failed", zap.Error(err))
		return err
	case sig := <-stop:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
		return err
	}

	log.Info("Server stopped")
	return nil
}
