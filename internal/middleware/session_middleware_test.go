package middleware_test

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"vocab-quiz/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ManualMockSessionTokenService for testing the session middleware
type ManualMockSessionTokenService struct {
	IssueFunc func(sessionID string) (string, error)
	ParseFunc func(token string) (string, error)
}

func (m *ManualMockSessionTokenService) Issue(sessionID string) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(sessionID)
	}
	return "", errors.New("IssueFunc not set on mock")
}

func (m *ManualMockSessionTokenService) Parse(token string) (string, error) {
	if m.ParseFunc != nil {
		return m.ParseFunc(token)
	}
	return "", errors.New("ParseFunc not set on mock")
}

func TestOptionalSession(t *testing.T) {
	tokens := &ManualMockSessionTokenService{
		ParseFunc: func(token string) (string, error) {
			if token == "good" {
				return "01HGZ8VNRYXS8QKNJV5GRWPWDQ", nil
			}
			return "", errors.New("bad signature")
		},
	}

	tests := []struct {
		name   string
		cookie string
		want   string
	}{
		{name: "no cookie", want: "none"},
		{name: "valid cookie", cookie: "good", want: "01HGZ8VNRYXS8QKNJV5GRWPWDQ"},
		{name: "invalid cookie", cookie: "forged", want: "none"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(middleware.OptionalSession(tokens, middleware.DefaultSessionCookie))
			app.Get("/", func(c *fiber.Ctx) error {
				if id, ok := middleware.SessionID(c); ok {
					return c.SendString(id)
				}
				return c.SendString("none")
			})

			req := httptest.NewRequest("GET", "/", nil)
			if tt.cookie != "" {
				req.Header.Set("Cookie", middleware.DefaultSessionCookie+"="+tt.cookie)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			body, _ := io.ReadAll(resp.Body)
			assert.Equal(t, tt.want, string(body))
		})
	}
}

func TestSetSessionCookie(t *testing.T) {
	tokens := &ManualMockSessionTokenService{
		IssueFunc: func(sessionID string) (string, error) { return "signed-" + sessionID, nil },
	}

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return middleware.SetSessionCookie(c, tokens, "sid", "abc", time.Hour)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)

	cookies := resp.Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "sid", cookies[0].Name)
	assert.Equal(t, "signed-abc", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}
