package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal      ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput  ErrorCode = "INVALID_INPUT"
	CodeNotFound      ErrorCode = "NOT_FOUND"
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Quiz specific errors
	CodeSessionNotFound         ErrorCode = "SESSION_NOT_FOUND"
	CodeInvalidTransition       ErrorCode = "INVALID_TRANSITION"
	CodeAnswerRequired          ErrorCode = "ANSWER_REQUIRED"
	CodeOptionOutOfRange        ErrorCode = "OPTION_OUT_OF_RANGE"
	CodeQuestionBankUnavailable ErrorCode = "QUESTION_BANK_UNAVAILABLE"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is matches any DomainError carrying the same code, so sentinels survive
// WithContext and re-wrapping.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithContext returns a copy of the error with an extra context entry.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	ctx := make(map[string]interface{}, len(e.Context)+1)
	for k, v := range e.Context {
		ctx[k] = v
	}
	ctx[key] = value
	return &DomainError{Code: e.Code, Message: e.Message, Cause: e.Cause, Context: ctx}
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Context map[string]interface{} `json:"context,omitempty"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
		Context: e.Context,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

var (
	ErrInvalidTransition = NewError(CodeInvalidTransition, "operation not allowed in the current session state", nil)
	ErrAnswerRequired    = NewError(CodeAnswerRequired, "select an answer before advancing", nil)
	ErrOptionOutOfRange  = NewError(CodeOptionOutOfRange, "option index out of range", nil)
	ErrEmptyQuestionBank = NewError(CodeQuestionBankUnavailable, "no questions available", nil)
	ErrSessionNotFound   = NewError(CodeSessionNotFound, "quiz session not found", nil)
)

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewSessionNotFoundError(sessionID string) *DomainError {
	return ErrSessionNotFound.WithContext("session_id", sessionID)
}

func NewQuestionBankError(err error) *DomainError {
	return NewError(CodeQuestionBankUnavailable, "Failed to load question bank", err)
}
