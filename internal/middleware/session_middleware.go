package middleware

import (
	"time"

	"vocab-quiz/internal/logger"
	"vocab-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	DefaultSessionCookie = "vocab_session"
	SessionIDKey         = "sessionID" // Key for storing the session id in fiber.Ctx locals
)

// OptionalSession reads the signed session cookie and stores the session id
// in the context. A missing or invalid cookie leaves the context empty.
func OptionalSession(tokens service.SessionTokenService, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Cookies(cookieName)
		if raw == "" {
			return c.Next()
		}

		sessionID, err := tokens.Parse(raw)
		if err != nil {
			logger.Get().Debug("OptionalSession: invalid session cookie, proceeding without session", zap.Error(err))
			c.ClearCookie(cookieName)
			return c.Next()
		}

		c.Locals(SessionIDKey, sessionID)
		return c.Next()
	}
}

// SessionID returns the id stored by OptionalSession.
func SessionID(c *fiber.Ctx) (string, bool) {
	id, ok := c.Locals(SessionIDKey).(string)
	return id, ok && id != ""
}

// SetSessionCookie signs sessionID and attaches it to the response.
func SetSessionCookie(c *fiber.Ctx, tokens service.SessionTokenService, cookieName, sessionID string, ttl time.Duration) error {
	token, err := tokens.Issue(sessionID)
	if err != nil {
		return err
	}
	cookie := &fiber.Cookie{
		Name:     cookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   c.Protocol() == "https",
	}
	if ttl > 0 {
		cookie.Expires = time.Now().Add(ttl)
	}
	c.Cookie(cookie)
	return nil
}
