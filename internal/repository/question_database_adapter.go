package repository

import (
	"context"
	"fmt"

	"vocab-quiz/internal/domain"
	"vocab-quiz/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// QuestionDatabaseAdapter reads and writes the vocabulary_questions table.
type QuestionDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuestionDatabaseAdapter creates a new instance of QuestionDatabaseAdapter
func NewQuestionDatabaseAdapter(db *sqlx.DB) *QuestionDatabaseAdapter {
	return &QuestionDatabaseAdapter{db: db}
}

var _ domain.QuestionSource = (*QuestionDatabaseAdapter)(nil)

const selectQuestionsQuery = `SELECT id, word, options, correct_index FROM vocabulary_questions ORDER BY id`

const upsertQuestionQuery = `INSERT INTO vocabulary_questions (word, options, correct_index)
	VALUES (?, ?, ?)
	ON CONFLICT (word) DO UPDATE SET options = excluded.options, correct_index = excluded.correct_index`

// Load implements domain.QuestionSource
func (a *QuestionDatabaseAdapter) Load(ctx context.Context) (domain.QuestionBank, error) {
	var rows []models.VocabularyQuestion
	if err := a.db.SelectContext(ctx, &rows, selectQuestionsQuery); err != nil {
		return nil, fmt.Errorf("failed to load vocabulary questions: %w", err)
	}

	bank := make(domain.QuestionBank, 0, len(rows))
	for i := range rows {
		bank = append(bank, toDomainQuestion(&rows[i]))
	}
	return bank, nil
}

// Upsert inserts the questions in one transaction. Existing words get their
// options and correct index replaced.
func (a *QuestionDatabaseAdapter) Upsert(ctx context.Context, questions []domain.Question) (int, error) {
	if len(questions) == 0 {
		return 0, nil
	}

	tx, err := a.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	query := a.db.Rebind(upsertQuestionQuery)
	for _, q := range questions {
		m := toModelQuestion(q)
		if _, err := tx.ExecContext(ctx, query, m.Word, m.Options, m.CorrectIndex); err != nil {
			return 0, fmt.Errorf("failed to upsert question %q: %w", q.Word, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit questions: %w", err)
	}
	return len(questions), nil
}

func toDomainQuestion(m *models.VocabularyQuestion) domain.Question {
	return domain.Question{
		Word:    m.Word,
		Options: []string(m.Options),
		Correct: m.CorrectIndex,
	}
}

func toModelQuestion(q domain.Question) models.VocabularyQuestion {
	return models.VocabularyQuestion{
		Word:         q.Word,
		Options:      models.StringSlice(q.Options),
		CorrectIndex: q.Correct,
	}
}
