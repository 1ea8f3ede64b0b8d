package middleware_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"vocab-quiz/internal/domain"
	"vocab-quiz/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"session not found", domain.NewSessionNotFoundError("x"), http.StatusNotFound, "SESSION_NOT_FOUND"},
		{"answer required", domain.ErrAnswerRequired, http.StatusConflict, "ANSWER_REQUIRED"},
		{"invalid transition", domain.ErrInvalidTransition.WithContext("state", "load_failed"), http.StatusConflict, "INVALID_TRANSITION"},
		{"option out of range", domain.ErrOptionOutOfRange, http.StatusBadRequest, "OPTION_OUT_OF_RANGE"},
		{"bank unavailable", domain.NewQuestionBankError(errors.New("gone")), http.StatusServiceUnavailable, "QUESTION_BANK_UNAVAILABLE"},
		{"validation", domain.ValidationErrors{domain.NewMissingFieldError("option_index")}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"fiber error", fiber.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "HTTP_ERROR"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
			app.Get("/", func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantCode, body["code"])
			assert.EqualValues(t, tt.wantStatus, body["status"])
		})
	}
}

func TestErrorHandler_IncludesContext(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Get("/", func(c *fiber.Ctx) error {
		return domain.ErrInvalidTransition.WithContext("state", "submitted")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	var body middleware.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "submitted", body.Details["state"])
}

func TestValidationMiddleware(t *testing.T) {
	vm := middleware.NewValidationMiddleware()
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Get("/s/:id", vm.ValidateSessionID(), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(middleware.ValidatedSessionIDKey).(string))
	})
	app.Get("/w/:word", vm.ValidateWord(), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(middleware.ValidatedWordKey).(string))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/s/01HGZ8VNRYXS8QKNJV5GRWPWDQ", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/s/nope", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/w/lucid", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/w/123", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRequestLogger_PassesThrough(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.RequestLogger())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(http.StatusTeapot) })

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
}
