package validation

import (
	"regexp"
	"strings"

	"vocab-quiz/internal/domain"
	"vocab-quiz/internal/util"
)

const maxWordLength = 64

// wordPattern accepts dictionary headwords: letters, spaces, hyphens and
// apostrophes.
var wordPattern = regexp.MustCompile(`^[\p{L}][\p{L} '\-]*$`)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSessionID checks that id is a ULID.
func (v *Validator) ValidateSessionID(id string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError("session_id"))
	} else if !util.IsULID(id) {
		errors = append(errors, domain.NewInvalidFormatError("session_id", id))
	}
	return errors
}

// ValidateAnswerRequest checks the presence and sign of the option index.
// The upper bound depends on the current question and is enforced by the
// session itself.
func (v *Validator) ValidateAnswerRequest(optionIndex *int) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if optionIndex == nil {
		errors = append(errors, domain.NewMissingFieldError("option_index"))
	} else if *optionIndex < 0 {
		errors = append(errors, domain.NewInvalidFormatError("option_index", *optionIndex))
	}
	return errors
}

// ValidateWord checks a pronunciation lookup word.
func (v *Validator) ValidateWord(word string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	word = strings.TrimSpace(word)
	switch {
	case word == "":
		errors = append(errors, domain.NewMissingFieldError("word"))
	case len(word) > maxWordLength:
		errors = append(errors, domain.NewOutOfRangeError("word", len(word), 1, maxWordLength))
	case !wordPattern.MatchString(word):
		errors = append(errors, domain.NewInvalidFormatError("word", word))
	}
	return errors
}
