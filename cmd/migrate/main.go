package main

import (
	"flag"
	"log"

	"github.com/Kanishk-03-Jain/QuizMaster/internal/config"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/database"
	"github.com/Kanishk-03-Jain/QuizMaster/internal/logger"

	"go.uber.org/zap"
)

func main() {
	source := flag.String("source", "file://migrations", "migration source URL")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Logger)
	l := logger.Get()
	defer l.Sync()

	if err := database.RunMigrations(*source, cfg.GetDSN()); err != nil {
		l.Fatal("Failed to run migrations", zap.Error(err))
	}
	l.Info("Migrations applied")
}
