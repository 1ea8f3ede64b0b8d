package middleware

import (
	"net/url"
	"strings"

	"vocab-quiz/internal/domain"

	"vocab-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const (
	ValidatedSessionIDKey = "validated_session_id"
	ValidatedWordKey      = "validated_word"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateSessionID validates the :id path parameter
func (vm *ValidationMiddleware) ValidateSessionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if errors := vm.validator.ValidateSessionID(id); len(errors) > 0 {
			return errors // This will be handled by ErrorHandler middleware
		}
		c.Locals(ValidatedSessionIDKey, id)
		return c.Next()
	}
}

// ValidateWord validates the :word path parameter. Fiber leaves path
// parameters percent-encoded, so the word is decoded first.
func (vm *ValidationMiddleware) ValidateWord() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Params("word")
		decoded, err := url.PathUnescape(raw)
		if err != nil {
			return domain.ValidationErrors{domain.NewInvalidFormatError("word", raw)}
		}
		word := strings.TrimSpace(decoded)
		if errors := vm.validator.ValidateWord(word); len(errors) > 0 {
			return errors
		}
		c.Locals(ValidatedWordKey, word)
		return c.Next()
	}
}
