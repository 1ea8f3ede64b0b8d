package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"vocab-quiz/internal/config"
	"vocab-quiz/internal/database"
	"vocab-quiz/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	"go.uber.org/zap"
)

func main() {
	down := flag.Bool("down", false, "roll back instead of applying migrations")
	steps := flag.Int("steps", 0, "number of migrations to apply or roll back (0 = all)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	db, err := database.NewSQLXDB(context.Background(), cfg.DB)
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if !*down && *steps == 0 {
		if err := database.RunMigrations(db.DB, cfg.DB.Driver); err != nil {
			l.Fatal("Failed to run migrations", zap.Error(err))
		}
		return
	}

	m, err := database.NewMigrator(db.DB, cfg.DB.Driver)
	if err != nil {
		l.Fatal("Failed to create migrator", zap.Error(err))
	}

	switch {
	case *steps != 0 && *down:
		err = m.Steps(-*steps)
	case *steps != 0:
		err = m.Steps(*steps)
	default:
		err = m.Down()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		l.Fatal("Migration failed", zap.Bool("down", *down), zap.Int("steps", *steps), zap.Error(err))
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		l.Fatal("Failed to read schema version", zap.Error(err))
	}
	l.Info("Migration finished", zap.Uint("version", version), zap.Bool("dirty", dirty))
}
