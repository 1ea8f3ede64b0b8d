package domain

import (
	"context"
	"fmt"
	"strings"
)

// Question is a single multiple-choice vocabulary item.
type Question struct {
	Word    string   `json:"word"`
	Options []string `json:"options"`
	Correct int      `json:"correct"`
}

// Validate checks the record invariants: a word, at least two options and
// a correct index that points into options.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Word) == "" {
		return fmt.Errorf("word is required")
	}
	if len(q.Options) < 2 {
		return fmt.Errorf("question %q needs at least 2 options, got %d", q.Word, len(q.Options))
	}
	if q.Correct < 0 || q.Correct >= len(q.Options) {
		return fmt.Errorf("question %q has correct index %d outside [0, %d)", q.Word, q.Correct, len(q.Options))
	}
	return nil
}

// IsCorrect reports whether optionIndex is the correct answer.
func (q Question) IsCorrect(optionIndex int) bool {
	return optionIndex == q.Correct
}

// QuestionBank is the full set of questions, loaded once and never mutated.
type QuestionBank []Question

// Filter splits the bank into valid questions and the validation errors of
// the rejected ones.
func (b QuestionBank) Filter() (QuestionBank, []error) {
	valid := make(QuestionBank, 0, len(b))
	var rejected []error
	for i, q := range b {
		if err := q.Validate(); err != nil {
			rejected = append(rejected, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		valid = append(valid, q)
	}
	return valid, rejected
}

// QuestionSource loads a question bank from wherever it is kept.
type QuestionSource interface {
	Load(ctx context.Context) (QuestionBank, error)
}
