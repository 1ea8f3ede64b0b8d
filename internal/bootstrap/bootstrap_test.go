package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"vocab-quiz/internal/config"
	"vocab-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Quiz:       config.QuizConfig{Size: 5, Seed: 1, SessionTTL: time.Hour},
		Bank:       config.BankConfig{Source: config.BankSourceFile},
		DB:         config.DBConfig{Driver: config.DriverSQLite},
		Dictionary: config.DictionaryConfig{BaseURL: "http://127.0.0.1:1", Timeout: time.Second, CacheTTL: time.Hour},
	}
}

func TestLoadQuestionBank_Embedded(t *testing.T) {
	bank := LoadQuestionBank(context.Background(), testConfig())
	assert.GreaterOrEqual(t, len(bank), 5)
}

func TestLoadQuestionBank_DropsInvalidRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	doc := `{"questions":[
		{"word":"Lucid","options":["Clear","Dark"],"correct":0},
		{"word":"","options":["a","b"],"correct":0},
		{"word":"Odd","options":["a","b"],"correct":5}
	]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cfg := testConfig()
	cfg.Bank.Path = path
	bank := LoadQuestionBank(context.Background(), cfg)
	require.Len(t, bank, 1)
	assert.Equal(t, "Lucid", bank[0].Word)
}

func TestLoadQuestionBank_FailureGivesEmptyBank(t *testing.T) {
	cfg := testConfig()
	cfg.Bank.Path = filepath.Join(t.TempDir(), "missing.json")
	assert.Empty(t, LoadQuestionBank(context.Background(), cfg))

	cfg = testConfig()
	cfg.Bank.Source = config.BankSourceDatabase
	cfg.DB = config.DBConfig{Driver: "oracle", DSN: "x"}
	assert.Empty(t, LoadQuestionBank(context.Background(), cfg))
}

func TestNew_InMemory(t *testing.T) {
	ctx := context.Background()
	svcs, err := New(ctx, testConfig())
	require.NoError(t, err)
	defer svcs.Close()

	assert.NoError(t, svcs.Cache.Ping(ctx))
	resp, err := svcs.Quiz.StartSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StateActive), resp.State)
	assert.Equal(t, 5, resp.Total)
}

func TestNew_EmptyBankSessionsFail(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig()
	cfg.Bank.Path = filepath.Join(t.TempDir(), "missing.json")

	svcs, err := New(ctx, cfg)
	require.NoError(t, err)
	defer svcs.Close()

	resp, err := svcs.Quiz.StartSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StateLoadFailed), resp.State)
}

func TestNewCache_UnreachableRedis(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, _, err := NewCache(ctx, config.RedisConfig{Address: "127.0.0.1:1"})
	assert.Error(t, err)
}
