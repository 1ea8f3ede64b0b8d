package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"vocab-quiz/assets"
	"vocab-quiz/internal/config"
	"vocab-quiz/internal/database"
	"vocab-quiz/internal/domain"
	"vocab-quiz/internal/logger"
	"vocab-quiz/internal/repository"

	"go.uber.org/zap"
)

func main() {
	path := flag.String("file", "", "vocabulary document to load (default: the bundled vocabulary)")
	strict := flag.Bool("strict", false, "abort when any record is invalid instead of skipping it")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		// If logger is not initialized yet, use fmt
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	err = run(context.Background(), cfg, *path, *strict)
	if err != nil {
		logger.Get().Error("Vocabulary seeding failed", zap.Error(err))
	}
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, path string, strict bool) error {
	log := logger.Get()
	log.Info("Starting vocabulary seeding...")

	data := assets.Vocabulary
	if path != "" {
		log.Info("Loading seed data from file", zap.String("path", path))
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return fmt.Errorf("failed to read seed file %s: %w", path, err)
		}
	}

	doc, err := repository.ParseVocabularyDocument(data)
	if err != nil {
		return fmt.Errorf("failed to parse seed data: %w", err)
	}
	log.Info("Parsed seed data", zap.Int("questions", len(doc.Questions)))

	valid, err := validateQuestions(log, doc.Questions, strict)
	if err != nil {
		return fmt.Errorf("seed data rejected: %w", err)
	}

	db, err := database.NewSQLXDB(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.RunMigrations(db.DB, cfg.DB.Driver); err != nil {
		return err
	}

	n, err := repository.NewQuestionDatabaseAdapter(db).Upsert(ctx, valid)
	if err != nil {
		return fmt.Errorf("failed to store questions, transaction rolled back: %w", err)
	}
	log.Info("Vocabulary seeding completed",
		zap.Int("stored", n),
		zap.Int("skipped", len(doc.Questions)-len(valid)))
	return nil
}

// validateQuestions keeps valid records in document order. In strict mode the
// first invalid record aborts the run.
func validateQuestions(log *zap.Logger, questions []domain.Question, strict bool) ([]domain.Question, error) {
	valid := make([]domain.Question, 0, len(questions))
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			if strict {
				return nil, fmt.Errorf("record %d: %w", i, err)
			}
			log.Warn("Skipping invalid question", zap.Int("record", i), zap.String("word", q.Word), zap.Error(err))
			continue
		}
		valid = append(valid, q)
	}
	return valid, nil
}
