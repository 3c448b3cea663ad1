package main

import (
	"log"

	"go.uber.org/zap"

	"bookstore-backend/internal/app"
	"bookstore-backend/internal/config"
	"bookstore-backend/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(logging.Config{
		ServiceName: "bookstore",
		Env:         string(cfg.AppEnv),
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
	})
	if err != nil {
		log.Fatal(err)
	}

	a, err := app.Build(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to build app", zap.Error(err))
	}
	if err := a.Run(); err != nil {
		logger.Fatal("Server stopped with error", zap.Error(err))
	}
}
