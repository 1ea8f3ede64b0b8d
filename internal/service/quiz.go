package service

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"vocab-quiz/internal/domain"
	"vocab-quiz/internal/dto"
	"vocab-quiz/internal/logger"
	"vocab-quiz/internal/util"

	"go.uber.org/zap"
)

// QuizService drives quiz sessions through their lifecycle. Every method
// returns the rendered session after the transition.
type QuizService interface {
	// StartSession mounts a new session. A session that failed to load is
	// returned normally with state load_failed.
	StartSession(ctx context.Context) (*dto.SessionResponse, error)
	GetSession(ctx context.Context, id string) (*dto.SessionResponse, error)
	SelectAnswer(ctx context.Context, id string, optionIndex int) (*dto.SessionResponse, error)
	Advance(ctx context.Context, id string) (*dto.SessionResponse, error)
	Restart(ctx context.Context, id string) (*dto.SessionResponse, error)
	// BankSize is the number of usable questions loaded at startup.
	BankSize() int
}

const lockStripes = 64

// quizService implements QuizService
type quizService struct {
	repo    domain.SessionRepository
	sampler Sampler
	bank    domain.QuestionBank
	now     func() time.Time
	newID   func() string
	locks   [lockStripes]sync.Mutex
}

// NewQuizService creates a new instance of quizService. bank is shared
// read-only by every session.
func NewQuizService(repo domain.SessionRepository, sampler Sampler, bank domain.QuestionBank) QuizService {
	return &quizService{
		repo:    repo,
		sampler: sampler,
		bank:    bank,
		now:     time.Now,
		newID:   util.NewULID,
	}
}

func (s *quizService) BankSize() int {
	return len(s.bank)
}

// lock serializes transitions of one session id within this process.
func (s *quizService) lock(id string) func() {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	mu := &s.locks[h.Sum32()%lockStripes]
	mu.Lock()
	return mu.Unlock
}

// StartSession implements QuizService
func (s *quizService) StartSession(ctx context.Context) (*dto.SessionResponse, error) {
	now := s.now()
	session := domain.NewSession(s.newID(), now)

	questions, sampleErr := s.sampler.Sample(s.bank)
	if err := session.Load(questions, sampleErr, now); err != nil {
		return nil, domain.NewInternalError("failed to load session", err)
	}
	s.logLoad(session, sampleErr)

	if err := s.repo.Save(ctx, session); err != nil {
		logger.Get().Error("Failed to save new session", zap.String("session_id", session.ID), zap.Error(err))
		return nil, err
	}
	return dto.NewSessionResponse(session), nil
}

// GetSession implements QuizService
func (s *quizService) GetSession(ctx context.Context, id string) (*dto.SessionResponse, error) {
	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewSessionResponse(session), nil
}

// SelectAnswer implements QuizService
func (s *quizService) SelectAnswer(ctx context.Context, id string, optionIndex int) (*dto.SessionResponse, error) {
	return s.transition(ctx, id, func(session *domain.Session, now time.Time) error {
		return session.SelectAnswer(optionIndex, now)
	})
}

// Advance implements QuizService
func (s *quizService) Advance(ctx context.Context, id string) (*dto.SessionResponse, error) {
	return s.transition(ctx, id, func(session *domain.Session, now time.Time) error {
		if err := session.Advance(now); err != nil {
			return err
		}
		if session.State == domain.StateSubmitted && session.Score != nil {
			logger.Get().Info("Quiz submitted",
				zap.String("session_id", session.ID),
				zap.Int("score", *session.Score),
				zap.Int("total", len(session.Questions)))
		}
		return nil
	})
}

// Restart implements QuizService
func (s *quizService) Restart(ctx context.Context, id string) (*dto.SessionResponse, error) {
	return s.transition(ctx, id, func(session *domain.Session, now time.Time) error {
		if session.State != domain.StateSubmitted {
			return domain.ErrInvalidTransition.WithContext("state", session.State)
		}
		questions, sampleErr := s.sampler.Sample(s.bank)
		if err := session.Restart(questions, sampleErr, now); err != nil {
			return err
		}
		s.logLoad(session, sampleErr)
		return nil
	})
}

// transition loads the session, applies fn and stores the result. A
// rejected transition is not saved.
func (s *quizService) transition(ctx context.Context, id string, fn func(*domain.Session, time.Time) error) (*dto.SessionResponse, error) {
	unlock := s.lock(id)
	defer unlock()

	session, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(session, s.now()); err != nil {
		logger.Get().Debug("Rejected session transition",
			zap.String("session_id", id),
			zap.String("state", string(session.State)),
			zap.Error(err))
		return nil, err
	}

	if err := s.repo.Save(ctx, session); err != nil {
		logger.Get().Error("Failed to save session", zap.String("session_id", id), zap.Error(err))
		return nil, err
	}
	return dto.NewSessionResponse(session), nil
}

func (s *quizService) logLoad(session *domain.Session, sampleErr error) {
	if session.State == domain.StateLoadFailed {
		if sampleErr == nil {
			sampleErr = domain.ErrEmptyQuestionBank
		}
		logger.Get().Error("Failed to load quiz", zap.String("session_id", session.ID), zap.Error(sampleErr))
		return
	}
	logger.Get().Info("Quiz session loaded",
		zap.String("session_id", session.ID),
		zap.Int("questions", len(session.Questions)))
}
