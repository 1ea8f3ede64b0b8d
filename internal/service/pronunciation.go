package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"vocab-quiz/internal/cache"
	"vocab-quiz/internal/domain"
	"vocab-quiz/internal/dto"
	"vocab-quiz/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// PronunciationService finds a spoken recording for a word. Lookups are best
// effort: every failure is logged and reported as an unavailable recording.
type PronunciationService interface {
	Lookup(ctx context.Context, word string) *dto.PronunciationResponse
}

type pronunciationService struct {
	client   domain.DictionaryClient
	cache    domain.Cache
	cacheTTL time.Duration
	group    singleflight.Group
}

// NewPronunciationService creates a lookup service. A nil cache disables
// caching.
func NewPronunciationService(client domain.DictionaryClient, c domain.Cache, cacheTTL time.Duration) PronunciationService {
	return &pronunciationService{client: client, cache: c, cacheTTL: cacheTTL}
}

func pronunciationKey(word string) string {
	return cache.GenerateCacheKey("pronunciation", "audio", strings.ToLower(word))
}

// Lookup implements PronunciationService
func (s *pronunciationService) Lookup(ctx context.Context, word string) *dto.PronunciationResponse {
	word = strings.TrimSpace(word)
	resp := &dto.PronunciationResponse{Word: word}
	if word == "" {
		return resp
	}

	key := pronunciationKey(word)
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		switch {
		case err == nil && cached != "":
			resp.AudioURL = cached
			resp.Available = true
			return resp
		case err != nil && !errors.Is(err, domain.ErrCacheMiss):
			logger.Get().Warn("Pronunciation cache read failed", zap.String("word", word), zap.Error(err))
		}
	}

	// Concurrent misses for the same word share one dictionary request.
	v, _, _ := s.group.Do(key, func() (interface{}, error) {
		return s.fetch(ctx, key, word), nil
	})
	if audioURL, _ := v.(string); audioURL != "" {
		resp.AudioURL = audioURL
		resp.Available = true
	}
	return resp
}

// fetch asks the dictionary for word and caches a found URL. It returns ""
// when there is no recording.
func (s *pronunciationService) fetch(ctx context.Context, key, word string) string {
	entries, err := s.client.Lookup(ctx, word)
	if err != nil {
		logger.Get().Warn("Pronunciation lookup failed", zap.String("word", word), zap.Error(err))
		return ""
	}

	audioURL, ok := domain.FirstAudioURL(entries)
	if !ok {
		logger.Get().Debug("No pronunciation audio for word", zap.String("word", word))
		return ""
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, audioURL, s.cacheTTL); err != nil {
			logger.Get().Warn("Pronunciation cache write failed", zap.String("word", word), zap.Error(err))
		}
	}
	return audioURL
}
