package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"vocab-quiz/assets"
	"vocab-quiz/internal/domain"
)

// VocabularyDocument is the on-disk shape of a question bank.
type VocabularyDocument struct {
	Questions []domain.Question `json:"questions"`
}

// QuestionFileSource loads the bank from a JSON document. An empty path
// means the document embedded in the binary.
type QuestionFileSource struct {
	path string
}

// NewQuestionFileSource creates a file backed question source.
func NewQuestionFileSource(path string) *QuestionFileSource {
	return &QuestionFileSource{path: path}
}

var _ domain.QuestionSource = (*QuestionFileSource)(nil)

// Load implements domain.QuestionSource
func (s *QuestionFileSource) Load(ctx context.Context) (domain.QuestionBank, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := assets.Vocabulary
	name := "embedded vocabulary.json"
	if s.path != "" {
		var err error
		data, err = os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read question bank: %w", err)
		}
		name = s.path
	}

	doc, err := ParseVocabularyDocument(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return domain.QuestionBank(doc.Questions), nil
}

// ParseVocabularyDocument decodes a {"questions":[...]} document. Record
// validation is left to the caller.
func ParseVocabularyDocument(data []byte) (*VocabularyDocument, error) {
	var doc VocabularyDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Questions == nil {
		return nil, fmt.Errorf("document has no \"questions\" array")
	}
	return &doc, nil
}
