package service

import (
	"fmt"
	"math/rand"
	"testing"

	"vocab-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeBank(n int) domain.QuestionBank {
	bank := make(domain.QuestionBank, n)
	for i := range bank {
		bank[i] = domain.Question{
			Word:    fmt.Sprintf("word-%d", i),
			Options: []string{"a", "b", "c"},
			Correct: i % 3,
		}
	}
	return bank
}

func words(qs []domain.Question) []string {
	out := make([]string, len(qs))
	for i, q := range qs {
		out[i] = q.Word
	}
	return out
}

func TestSampler_DistinctFromBank(t *testing.T) {
	bank := makeBank(6)
	sampler := NewSampler(rand.NewSource(1), DefaultQuizSize)

	for i := 0; i < 50; i++ {
		got, err := sampler.Sample(bank)
		require.NoError(t, err)
		require.Len(t, got, 5)

		seen := map[string]bool{}
		for _, w := range words(got) {
			assert.False(t, seen[w], "duplicate %s", w)
			seen[w] = true
			assert.Contains(t, words(bank), w)
		}
	}
}

func TestSampler_DoesNotMutateBank(t *testing.T) {
	bank := makeBank(10)
	before := words(bank)

	_, err := NewSampler(rand.NewSource(7), 5).Sample(bank)
	require.NoError(t, err)
	assert.Equal(t, before, words(bank))
}

func TestSampler_DeterministicWithSeed(t *testing.T) {
	bank := makeBank(20)
	a, err := NewSampler(rand.NewSource(42), 5).Sample(bank)
	require.NoError(t, err)
	b, err := NewSampler(rand.NewSource(42), 5).Sample(bank)
	require.NoError(t, err)
	assert.Equal(t, words(a), words(b))
}

func TestSampler_SmallBank(t *testing.T) {
	bank := makeBank(3)
	got, err := NewSampler(rand.NewSource(3), 5).Sample(bank)
	require.NoError(t, err)
	assert.ElementsMatch(t, words(bank), words(got))
}

func TestSampler_EmptyBank(t *testing.T) {
	got, err := NewSampler(rand.NewSource(3), 5).Sample(nil)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, domain.ErrEmptyQuestionBank)
}

func TestSampler_EveryQuestionReachable(t *testing.T) {
	bank := makeBank(8)
	sampler := NewSampler(rand.NewSource(99), 5)

	firsts := map[string]int{}
	for i := 0; i < 2000; i++ {
		got, err := sampler.Sample(bank)
		require.NoError(t, err)
		firsts[got[0].Word]++
	}
	assert.Len(t, firsts, len(bank))
}

func TestNewSampler_InvalidSizeFallsBack(t *testing.T) {
	got, err := NewSampler(rand.NewSource(1), 0).Sample(makeBank(10))
	require.NoError(t, err)
	assert.Len(t, got, DefaultQuizSize)
}
