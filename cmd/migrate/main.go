package main

import (
	log "github.com/sirupsen/logrus"

	"artisan_market/internal/config"
	"artisan_market/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DBDriver == config.DriverMemory {
		log.Fatal("DB_DRIVER=memory has no schema to migrate")
	}
	logger.Setup(cfg.Log)

	db, err := config.OpenDB(cfg, logger.GormLogger())
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := config.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.WithField("driver", cfg.DBDriver).Info("schema up to date")
}
