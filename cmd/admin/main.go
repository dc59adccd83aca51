package main

import (
	"context"
	"errors"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/Dan9191/tutor-service/internal/config"
	"github.com/Dan9191/tutor-service/internal/integrations/gemini"
	"github.com/Dan9191/tutor-service/internal/locale"
	"github.com/Dan9191/tutor-service/internal/repository"
	"github.com/Dan9191/tutor-service/internal/scheduler"
	"github.com/Dan9191/tutor-service/internal/service"
	"github.com/Dan9191/tutor-service/internal/utils/email"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	db, err := repository.Open(ctx, cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	svc := service.NewService(repository.NewRepository(db), logger, cfg, locale.New().Validator(), gemini.NewClient(cfg, logger))
	cli := commandLine{
		db:        db,
		users:     svc,
		reminders: scheduler.New(cfg, svc, email.NewSender(cfg, logger), logger),
		out:       os.Stdout,
	}
	if err := cli.run(ctx, os.Args); err != nil {
		if !errors.Is(err, errHelp) {
			logger.Errorf("%v", err)
		}
		db.Close()
		os.Exit(1)
	}
}
