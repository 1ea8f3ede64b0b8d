package service

import (
	"math/rand"
	"sync"

	"vocab-quiz/internal/domain"
	"vocab-quiz/internal/logger"

	"go.uber.org/zap"
)

// DefaultQuizSize is the number of questions in one session.
const DefaultQuizSize = 5

// Sampler draws distinct questions from a bank.
type Sampler interface {
	Sample(bank domain.QuestionBank) ([]domain.Question, error)
}

type shuffleSampler struct {
	mu   sync.Mutex
	rng  *rand.Rand
	size int
}

// NewSampler returns a Sampler that shuffles the whole bank with
// Fisher-Yates and keeps the first size questions. rand.Rand is not safe
// for concurrent use, so draws are serialized.
func NewSampler(src rand.Source, size int) Sampler {
	if size < 1 {
		size = DefaultQuizSize
	}
	return &shuffleSampler{rng: rand.New(src), size: size}
}

// Sample returns up to size distinct questions in random order. The bank is
// not modified. A bank smaller than size yields all of it, shuffled.
func (s *shuffleSampler) Sample(bank domain.QuestionBank) ([]domain.Question, error) {
	if len(bank) == 0 {
		return nil, domain.ErrEmptyQuestionBank
	}

	picked := make([]domain.Question, len(bank))
	copy(picked, bank)

	s.mu.Lock()
	for i := len(picked) - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		picked[i], picked[j] = picked[j], picked[i]
	}
	s.mu.Unlock()

	if len(picked) < s.size {
		logger.Get().Warn("Question bank smaller than quiz size, serving a shorter quiz",
			zap.Int("bank_size", len(bank)),
			zap.Int("quiz_size", s.size))
		return picked, nil
	}
	return picked[:s.size:s.size], nil
}
