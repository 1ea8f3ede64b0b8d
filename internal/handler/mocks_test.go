package handler_test

import (
	"context"
	"errors"
	"time"

	"vocab-quiz/internal/dto"
)

// --- Manual Mocks ---

// MockQuizService
type MockQuizService struct {
	StartSessionFunc func(ctx context.Context) (*dto.SessionResponse, error)
	GetSessionFunc   func(ctx context.Context, id string) (*dto.SessionResponse, error)
	SelectAnswerFunc func(ctx context.Context, id string, optionIndex int) (*dto.SessionResponse, error)
	AdvanceFunc      func(ctx context.Context, id string) (*dto.SessionResponse, error)
	RestartFunc      func(ctx context.Context, id string) (*dto.SessionResponse, error)
	BankSizeFunc     func() int
}

func (m *MockQuizService) StartSession(ctx context.Context) (*dto.SessionResponse, error) {
	if m.StartSessionFunc != nil {
		return m.StartSessionFunc(ctx)
	}
	panic("MockQuizService.StartSessionFunc not implemented")
}

func (m *MockQuizService) GetSession(ctx context.Context, id string) (*dto.SessionResponse, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, id)
	}
	panic("MockQuizService.GetSessionFunc not implemented")
}

func (m *MockQuizService) SelectAnswer(ctx context.Context, id string, optionIndex int) (*dto.SessionResponse, error) {
	if m.SelectAnswerFunc != nil {
		return m.SelectAnswerFunc(ctx, id, optionIndex)
	}
	panic("MockQuizService.SelectAnswerFunc not implemented")
}

func (m *MockQuizService) Advance(ctx context.Context, id string) (*dto.SessionResponse, error) {
	if m.AdvanceFunc != nil {
		return m.AdvanceFunc(ctx, id)
	}
	panic("MockQuizService.AdvanceFunc not implemented")
}

func (m *MockQuizService) Restart(ctx context.Context, id string) (*dto.SessionResponse, error) {
	if m.RestartFunc != nil {
		return m.RestartFunc(ctx, id)
	}
	panic("MockQuizService.RestartFunc not implemented")
}

func (m *MockQuizService) BankSize() int {
	if m.BankSizeFunc != nil {
		return m.BankSizeFunc()
	}
	return 0
}

// MockPronunciationService
type MockPronunciationService struct {
	LookupFunc func(ctx context.Context, word string) *dto.PronunciationResponse
}

func (m *MockPronunciationService) Lookup(ctx context.Context, word string) *dto.PronunciationResponse {
	if m.LookupFunc != nil {
		return m.LookupFunc(ctx, word)
	}
	return &dto.PronunciationResponse{Word: word}
}

// MockSessionTokenService treats the token as the session id itself.
type MockSessionTokenService struct{}

func (MockSessionTokenService) Issue(sessionID string) (string, error) { return "tok." + sessionID, nil }

func (MockSessionTokenService) Parse(token string) (string, error) {
	if len(token) > 4 && token[:4] == "tok." {
		return token[4:], nil
	}
	return "", errors.New("bad token")
}

// MockCache only answers Ping.
type MockCache struct {
	PingErr error
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) { return "", nil }
func (m *MockCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return nil
}
func (m *MockCache) Delete(ctx context.Context, key string) error { return nil }
func (m *MockCache) Ping(ctx context.Context) error              { return m.PingErr }
