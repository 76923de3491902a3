package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lucasmr/learnpulse/internal/achievements"
	"github.com/lucasmr/learnpulse/internal/api"
	"github.com/lucasmr/learnpulse/internal/cache"
	"github.com/lucasmr/learnpulse/internal/config"
	"github.com/lucasmr/learnpulse/internal/db"
	"github.com/lucasmr/learnpulse/internal/jobs"
	"github.com/lucasmr/learnpulse/internal/logger"
	"github.com/lucasmr/learnpulse/internal/repository/sqlite"
	"github.com/lucasmr/learnpulse/internal/services"
	"github.com/lucasmr/learnpulse/internal/worker"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("LearnPulse Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("analytics_worker_count=%d", cfg.AnalyticsWorkerCount)
	log.Debug("analytics_queue_size=%d", cfg.AnalyticsQueueSize)
	log.Debug("analysis_window_days=%d", cfg.AnalysisWindowDays)
	log.Debug("debounce_seconds=%d", cfg.DebounceSeconds)
	log.Debug("compute_version=%d", cfg.ComputeVersion)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	// Initialize repositories
	learnerRepo := sqlite.NewLearnerRepository(database.DB)
	attemptRepo := sqlite.NewAttemptRepository(database.DB)
	reportRepo := sqlite.NewReportRepository(database.DB)
	achievementRepo := sqlite.NewAchievementRepository(database.DB)

	// Initialize worker pool and job queue
	analyticsPool := worker.NewPool(cfg.AnalyticsWorkerCount, cfg.AnalyticsQueueSize)

	analyticsService := services.NewAnalyticsService(attemptRepo, reportRepo, cfg.ComputeVersion, cfg.AnalysisWindowDays)
	evaluator := achievements.NewEvaluator(achievementRepo)

	jobQueue := jobs.NewWorkerQueue(
		analyticsPool,
		analyticsService,
		evaluator,
		cache.NewMemoryStore(),
		time.Duration(cfg.DebounceSeconds)*time.Second,
	)

	// Initialize services
	learnerService := services.NewLearnerService(learnerRepo)
	attemptService := services.NewAttemptService(attemptRepo, jobQueue)
	achievementService := services.NewAchievementService(achievementRepo)

	srv := &api.Server{
		LearnerService:     learnerService,
		AttemptService:     attemptService,
		AnalyticsService:   analyticsService,
		AchievementService: achievementService,
		AnalyticsPool:      analyticsPool,
	}

	ctx, cancel := context.WithCancel(context.Background())
	analyticsPool.Start(ctx)

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Cancel worker context
	log.Debug("stopping worker pool")
	cancel()

	// Shutdown HTTP server
	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	// Stop the debounce timers before the pool so nothing submits to a
	// stopped queue, then wait for workers to finish.
	log.Debug("stopping job queue")
	jobQueue.Stop()
	log.Debug("stopping analytics pool")
	analyticsPool.Stop()

	log.Info("===========================================")
	log.Info("LearnPulse Server Stopped")
	log.Info("===========================================")
}
