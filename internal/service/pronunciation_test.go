package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"vocab-quiz/internal/adapter"
	"vocab-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestPronunciationService_Lookup(t *testing.T) {
	key := pronunciationKey("Lucid")
	assert.Equal(t, "vocabquiz:pronunciation:audio:lucid", key)

	tests := []struct {
		name      string
		setup     func(c *MockCache, d *MockDictionaryClient)
		wantURL   string
		available bool
	}{
		{
			name: "cache hit skips the network",
			setup: func(c *MockCache, d *MockDictionaryClient) {
				c.On("Get", mock.Anything, key).Return("https://a/lucid.mp3", nil)
			},
			wantURL:   "https://a/lucid.mp3",
			available: true,
		},
		{
			name: "miss fetches and caches",
			setup: func(c *MockCache, d *MockDictionaryClient) {
				c.On("Get", mock.Anything, key).Return("", domain.ErrCacheMiss)
				d.On("Lookup", mock.Anything, "Lucid").Return([]domain.DictionaryEntry{
					{Phonetics: []domain.Phonetic{{Text: "/x/"}, {Audio: "//a/lucid.mp3"}}},
				}, nil)
				c.On("Set", mock.Anything, key, "https://a/lucid.mp3", time.Hour).Return(nil)
			},
			wantURL:   "https://a/lucid.mp3",
			available: true,
		},
		{
			name: "empty phonetics is unavailable",
			setup: func(c *MockCache, d *MockDictionaryClient) {
				c.On("Get", mock.Anything, key).Return("", domain.ErrCacheMiss)
				d.On("Lookup", mock.Anything, "Lucid").Return([]domain.DictionaryEntry{{Phonetics: []domain.Phonetic{}}}, nil)
			},
		},
		{
			name: "client error is swallowed",
			setup: func(c *MockCache, d *MockDictionaryClient) {
				c.On("Get", mock.Anything, key).Return("", domain.ErrCacheMiss)
				d.On("Lookup", mock.Anything, "Lucid").Return(nil, errors.New("HTTP 404"))
			},
		},
		{
			name: "cache failures do not block the lookup",
			setup: func(c *MockCache, d *MockDictionaryClient) {
				c.On("Get", mock.Anything, key).Return("", errors.New("redis down"))
				d.On("Lookup", mock.Anything, "Lucid").Return([]domain.DictionaryEntry{
					{Phonetics: []domain.Phonetic{{Audio: "https://a/lucid.mp3"}}},
				}, nil)
				c.On("Set", mock.Anything, key, "https://a/lucid.mp3", time.Hour).Return(errors.New("redis down"))
			},
			wantURL:   "https://a/lucid.mp3",
			available: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := new(MockCache)
			d := new(MockDictionaryClient)
			tt.setup(c, d)

			svc := NewPronunciationService(d, c, time.Hour)
			resp := svc.Lookup(context.Background(), "Lucid")

			assert.Equal(t, "Lucid", resp.Word)
			assert.Equal(t, tt.wantURL, resp.AudioURL)
			assert.Equal(t, tt.available, resp.Available)
			c.AssertExpectations(t)
			d.AssertExpectations(t)
		})
	}
}

func TestPronunciationService_NoCacheAndBlankWord(t *testing.T) {
	d := new(MockDictionaryClient)
	d.On("Lookup", mock.Anything, "hello").Return([]domain.DictionaryEntry{
		{Phonetics: []domain.Phonetic{{Audio: "https://a/hello.mp3"}}},
	}, nil)

	svc := NewPronunciationService(d, nil, time.Hour)
	assert.True(t, svc.Lookup(context.Background(), " hello ").Available)

	resp := svc.Lookup(context.Background(), "   ")
	assert.False(t, resp.Available)
	d.AssertNumberOfCalls(t, "Lookup", 1)
}

type blockingDictionary struct {
	calls   atomic.Int32
	entered chan struct{}
	release chan struct{}
}

func (b *blockingDictionary) Lookup(ctx context.Context, word string) ([]domain.DictionaryEntry, error) {
	if b.calls.Add(1) == 1 {
		close(b.entered)
	}
	<-b.release
	return []domain.DictionaryEntry{{Phonetics: []domain.Phonetic{{Audio: "https://a/" + word + ".mp3"}}}}, nil
}

func TestPronunciationService_ConcurrentMissesShareOneRequest(t *testing.T) {
	d := &blockingDictionary{entered: make(chan struct{}), release: make(chan struct{})}
	svc := NewPronunciationService(d, adapter.NewMemoryCacheAdapter(), time.Hour)

	const callers = 8
	var wg sync.WaitGroup
	urls := make([]string, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			urls[i] = svc.Lookup(context.Background(), "lucid").AudioURL
		}(i)
	}

	<-d.entered
	time.Sleep(20 * time.Millisecond)
	close(d.release)
	wg.Wait()

	// Callers that arrived after the shared request finished read the cache.
	assert.Equal(t, int32(1), d.calls.Load())
	for _, u := range urls {
		assert.Equal(t, "https://a/lucid.mp3", u)
	}
}
