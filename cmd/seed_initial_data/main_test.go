package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"vocab-quiz/internal/config"
	"vocab-quiz/internal/database"
	"vocab-quiz/internal/domain"
	"vocab-quiz/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func mixedQuestions() []domain.Question {
	return []domain.Question{
		{Word: "Lucid", Options: []string{"Clear", "Dark"}, Correct: 0},
		{Word: "Broken", Options: []string{"Only"}, Correct: 0},
		{Word: "Candid", Options: []string{"Frank", "Shy"}, Correct: 1},
	}
}

func TestValidateQuestions(t *testing.T) {
	valid, err := validateQuestions(zap.NewNop(), mixedQuestions(), false)
	require.NoError(t, err)
	require.Len(t, valid, 2)
	assert.Equal(t, "Lucid", valid[0].Word)
	assert.Equal(t, "Candid", valid[1].Word)

	_, err = validateQuestions(zap.NewNop(), mixedQuestions(), true)
	assert.ErrorContains(t, err, "record 1")
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	dsn := "file:" + filepath.Join(dir, "vocab.db")
	cfg := &config.Config{DB: config.DBConfig{Driver: config.DriverSQLite, DSN: dsn}}

	t.Run("missing file is returned, not fatal", func(t *testing.T) {
		err := run(context.Background(), cfg, filepath.Join(dir, "nope.json"), false)
		assert.ErrorContains(t, err, "failed to read seed file")
	})

	t.Run("bundled vocabulary is stored", func(t *testing.T) {
		require.NoError(t, run(context.Background(), cfg, "", false))

		db, err := database.NewSQLXDB(context.Background(), cfg.DB)
		require.NoError(t, err)
		defer db.Close()
		bank, err := repository.NewQuestionDatabaseAdapter(db).Load(context.Background())
		require.NoError(t, err)
		assert.Len(t, bank, 15)
	})

	t.Run("strict mode rejects a bad document", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"questions":[{"word":"X","options":["a"],"correct":0}]}`), 0o600))
		assert.ErrorContains(t, run(context.Background(), cfg, path, true), "seed data rejected")
	})
}
