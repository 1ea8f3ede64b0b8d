// Package bootstrap builds the dependencies shared by the HTTP server and
// the Telegram bot.
package bootstrap

import (
	"context"
	"math/rand"
	"time"

	"vocab-quiz/internal/adapter"
	"vocab-quiz/internal/adapter/dictionary"
	"vocab-quiz/internal/cache"
	"vocab-quiz/internal/config"
	"vocab-quiz/internal/database"
	"vocab-quiz/internal/domain"
	"vocab-quiz/internal/logger"
	"vocab-quiz/internal/repository"
	"vocab-quiz/internal/service"

	"go.uber.org/zap"
)

// Services is everything a front end needs to run quizzes.
type Services struct {
	Cache         domain.Cache
	Quiz          service.QuizService
	Pronunciation service.PronunciationService
	close         []func()
}

// Close releases connections opened by New.
func (s *Services) Close() {
	for i := len(s.close) - 1; i >= 0; i-- {
		s.close[i]()
	}
}

// New loads the question bank and wires the services. Only an unreachable
// Redis is fatal; a bank that cannot be loaded yields an empty bank so every
// session reports the load failure.
func New(ctx context.Context, cfg *config.Config) (*Services, error) {
	s := &Services{}

	c, closeCache, err := NewCache(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	s.Cache = c
	s.close = append(s.close, closeCache)

	bank := LoadQuestionBank(ctx, cfg)

	seed := cfg.Quiz.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s.Quiz = service.NewQuizService(
		repository.NewSessionCacheRepository(c, cfg.Quiz.SessionTTL),
		service.NewSampler(rand.NewSource(seed), cfg.Quiz.Size),
		bank,
	)
	s.Pronunciation = service.NewPronunciationService(
		dictionary.NewDictionaryAPIClient(cfg.Dictionary.BaseURL, cfg.Dictionary.Timeout, nil),
		c,
		cfg.Dictionary.CacheTTL,
	)
	return s, nil
}

// NewCache returns Redis when an address is configured and an in-process
// cache otherwise.
func NewCache(ctx context.Context, redisCfg config.RedisConfig) (domain.Cache, func(), error) {
	if !redisCfg.Enabled() {
		logger.Get().Info("Redis not configured, using in-memory session store")
		return adapter.NewMemoryCacheAdapter(), func() {}, nil
	}

	client, err := cache.NewRedisClient(ctx, redisCfg)
	if err != nil {
		return nil, nil, err
	}
	logger.Get().Info("Successfully connected to Redis", zap.String("address", redisCfg.Address))
	return adapter.NewRedisCacheAdapter(client), func() { _ = client.Close() }, nil
}

// LoadQuestionBank reads the configured source once and drops invalid
// records. Failures are logged and produce an empty bank.
func LoadQuestionBank(ctx context.Context, cfg *config.Config) domain.QuestionBank {
	log := logger.Get()

	var (
		source domain.QuestionSource
		closer = func() {}
	)
	switch cfg.Bank.Source {
	case config.BankSourceDatabase:
		db, err := database.NewSQLXDB(ctx, cfg.DB)
		if err != nil {
			log.Error("Failed to load question bank", zap.Error(domain.NewQuestionBankError(err)))
			return domain.QuestionBank{}
		}
		closer = func() { _ = db.Close() }
		source = repository.NewQuestionDatabaseAdapter(db)
	default:
		source = repository.NewQuestionFileSource(cfg.Bank.Path)
	}
	defer closer()

	bank, err := source.Load(ctx)
	if err != nil {
		log.Error("Failed to load question bank", zap.String("source", cfg.Bank.Source), zap.Error(domain.NewQuestionBankError(err)))
		return domain.QuestionBank{}
	}

	valid, rejected := bank.Filter()
	for _, r := range rejected {
		log.Warn("Skipping invalid question", zap.Error(r))
	}
	if len(valid) < cfg.Quiz.Size {
		log.Warn("Question bank is smaller than the quiz size",
			zap.Int("questions", len(valid)),
			zap.Int("quiz_size", cfg.Quiz.Size))
	}
	log.Info("Question bank loaded", zap.String("source", cfg.Bank.Source), zap.Int("questions", len(valid)))
	return valid
}
