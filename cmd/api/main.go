package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Dan9191/tutor-service/internal/config"
	"github.com/Dan9191/tutor-service/internal/handler"
	"github.com/Dan9191/tutor-service/internal/integrations/gemini"
	"github.com/Dan9191/tutor-service/internal/locale"
	"github.com/Dan9191/tutor-service/internal/repository"
	"github.com/Dan9191/tutor-service/internal/repository/memory"
	"github.com/Dan9191/tutor-service/internal/scheduler"
	"github.com/Dan9191/tutor-service/internal/service"
	"github.com/Dan9191/tutor-service/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Initialize storage
	var repo service.Repository
	switch cfg.Storage {
	case config.StorageMemory:
		logger.Warn("Using in-memory storage, data is lost on restart")
		repo = memory.New()
	default:
		db, err := repository.Open(context.Background(), cfg.DBConn)
		if err != nil {
			logger.Fatalf("Failed to open database: %v", err)
		}
		defer db.Close()
		if cfg.AutoMigrate {
			migrate(logger, db)
		}
		repo = repository.NewRepository(db)
	}

	// Initialize layers
	catalog := locale.New()
	geminiClient := gemini.NewClient(cfg, logger)
	svc := service.NewService(repo, logger, cfg, catalog.Validator(), geminiClient)
	h := handler.NewHandler(svc, catalog, logger)

	var jobs *scheduler.Scheduler
	if cfg.RemindersEnabled {
		jobs = scheduler.New(cfg, svc, email.NewSender(cfg, logger), logger)
		if err := jobs.Start(); err != nil {
			logger.Fatalf("Failed to start reminders: %v", err)
		}
	}

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler.NewRouter(h, cfg, catalog, logger),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Starting server on %s", addr)
		errCh <- server.ListenAndServe()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Infof("Received %s, shutting down", sig)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("Server failed: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if jobs != nil {
		jobs.Stop(ctx)
	}
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Graceful shutdown failed: %v", err)
	}
}

func migrate(logger *logrus.Logger, db *sql.DB) {
	if err := repository.Migrate(db); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}
	logger.Info("Database schema is up to date")
}
