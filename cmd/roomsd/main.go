package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"classroom-status-backend/config"
	"classroom-status-backend/internal/api"
	"classroom-status-backend/internal/calendar"
	"classroom-status-backend/internal/db"
	"classroom-status-backend/internal/notification"
	"classroom-status-backend/internal/scraper"
	"classroom-status-backend/internal/store"

	"github.com/SherClockHolmes/webpush-go"
)

func main() {
	logger := log.New(os.Stdout, "roomsd ", log.LstdFlags)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	if cfg.Push.PublicKey == "" || cfg.Push.PrivateKey == "" {
		logger.Fatalf("VAPID keys must be configured. Please generate them and add them to your config file.")
	}

	webpushOptions := webpush.Options{
		VAPIDPublicKey:  cfg.Push.PublicKey,
		VAPIDPrivateKey: cfg.Push.PrivateKey,
		Subscriber:      cfg.Push.Subject,
		TTL:             cfg.Push.TTL,
	}

	tz := time.Local
	if cfg.Scraper.Timezone != "" {
		tz, err = time.LoadLocation(cfg.Scraper.Timezone)
		if err != nil {
			logger.Fatalf("failed to load timezone %q: %v", cfg.Scraper.Timezone, err)
		}
	}

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)
	cal := calendar.New()

	// Scraper populates the calendar; the watcher and the API read it.
	scraperSvc := scraper.NewService(cfg, appStore, cal)
	go scraperSvc.Run(ctx)

	workerPool := notification.NewWorkerPool(cfg.WorkerPool.Size, gormDB, &webpushOptions)
	workerPool.Start(ctx)

	watcher := notification.NewWatcher(cal, workerPool, tz)
	go watcher.Run(ctx)

	router := api.NewRouter(cfg, appStore, cal, &webpushOptions, tz)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
