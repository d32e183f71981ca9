package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"artisan_market/internal/app"
	"artisan_market/internal/config"
	"artisan_market/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Initialize structured logging to file
	logOut := logger.Setup(cfg.Log)
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logOut)
	if err != nil {
		log.Fatalf("startup: %v", err)
	}
	defer a.Close()

	if err := a.Run(ctx); err != nil {
		log.WithError(err).Error("server stopped")
		a.Close()
		os.Exit(1)
	}
	log.Info("server stopped")
}
