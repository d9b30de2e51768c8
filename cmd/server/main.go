// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/isonexus/iso-nexus-backend/internal/config"
	"github.com/isonexus/iso-nexus-backend/internal/router"
	"github.com/isonexus/iso-nexus-backend/internal/services"
	"github.com/isonexus/iso-nexus-backend/internal/store"
)

func main() {
	logger := logrus.New()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	// All state is in-memory and resets on restart.
	catalog := store.NewCatalogStore()
	entitlements := store.NewEntitlementStore()

	purchaseService := services.NewPurchaseService(catalog, entitlements, cfg.Flow, logger)
	adminService := services.NewAdminService(catalog, services.VerifierFromConfig(cfg.Admin), cfg.Admin.SessionTTL, logger)
	assistantService := services.NewAssistantService(cfg.Assistant, logger)
	uploadService := services.NewUploadService(cfg.Upload.MaxSize, logger)

	// Initialize router
	r := router.Initialize(cfg, logger, router.Services{
		Catalog:      catalog,
		Entitlements: entitlements,
		Purchase:     purchaseService,
		Admin:        adminService,
		Assistant:    assistantService,
		Uploads:      uploadService,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.WithField("port", cfg.Server.Port).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Cancel pending timed transitions before the server stops serving.
	purchaseService.Shutdown()
	if err := assistantService.Close(); err != nil {
		logger.WithError(err).Warn("Failed to close assistant client")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Fatal("Server forced to shutdown")
	}

	logger.Info("Server exited")
}
