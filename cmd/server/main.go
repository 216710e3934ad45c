package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/logvault/logvault/internal/config"
	"github.com/logvault/logvault/internal/pkg/logger"
	"github.com/logvault/logvault/internal/repository"
	"github.com/logvault/logvault/internal/server"
	"github.com/logvault/logvault/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.Init(cfg.Log.Level)
	gin.SetMode(cfg.Server.Mode)

	if cfg.Auth.PasswordHash == config.DefaultPasswordHash {
		logger.Warn("Using the default password; set LOGVAULT_AUTH_PASSWORD_HASH")
	}

	store, err := repository.Open(context.Background(), cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	logger.Info("Connected to store", "backend", store.Backend)
	if store.Backend == "memory" {
		logger.Warn("Using the in-memory store, records are lost on restart")
	}

	logSvc := service.NewLogService(store.Logs, cfg.Service.Source, cfg.Database.Timeout(), nil)
	analyticsSvc := service.NewAnalyticsService(store.Analytics, cfg.Database.Timeout(), nil)
	authn := service.NewAuthenticator(cfg.Auth.Username, cfg.Auth.PasswordHash)

	r := server.NewRouter(cfg, server.Deps{
		Logs:          logSvc,
		Analytics:     analyticsSvc,
		Authenticator: authn,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Info("logvault started", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server listen failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	if err := store.Close(ctx); err != nil {
		logger.Error("Failed to close store", "error", err)
	}

	logger.Info("Server exiting")
}
