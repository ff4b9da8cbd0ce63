package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	_ "realitycheck/docs"
	"realitycheck/internal/app"
	"realitycheck/internal/config"
	"realitycheck/internal/logger"
	"syscall"
	"time"

	"github.com/joho/godotenv"
)

// @title RealityCheck API
// @version 1.0
// @description Competitive analysis for SaaS products
// @host localhost:8080
// @BasePath /v1
func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to YAML config file")
	flag.Parse()

	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Log.Fatalf("Failed to load config: %v", err)
	}

	logCloser, err := logger.Init(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		logger.Log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logCloser.Close()

	ctx := context.Background()

	a, err := app.New(ctx, cfg)
	if err != nil {
		logger.Log.Fatalf("Failed to start: %v", err)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Infof("Server starting on :%s", cfg.Server.Port)
		logger.Log.Info("Endpoints:")
		logger.Log.Info("  POST /v1/analyze")
		logger.Log.Info("  POST /v1/parse")
		logger.Log.Info("  POST /v1/export/{format}")
		logger.Log.Info("  POST /v1/visitors")
		logger.Log.Info("  WS   /v1/ws/analyze")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorf("Server forced to shutdown: %v", err)
	}
	if err := a.Close(shutdownCtx); err != nil {
		logger.Log.Warnf("Closing backends: %v", err)
	}

	logger.Log.Info("Server exited")
}
