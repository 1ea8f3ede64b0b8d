package service

import (
	"crypto/rand"
	"fmt"
	"time"

	"vocab-quiz/internal/domain"
	"vocab-quiz/internal/util"

	"github.com/golang-jwt/jwt/v5"
)

const sessionTokenIssuer = "vocab-quiz"

// SessionTokenService signs the session id carried by the browser cookie.
type SessionTokenService interface {
	Issue(sessionID string) (string, error)
	Parse(token string) (string, error)
}

type sessionTokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionTokenService uses HS256 with secret. An empty secret is replaced
// by a random one, so cookies do not survive a restart.
func NewSessionTokenService(secret string, ttl time.Duration) (SessionTokenService, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("failed to generate session secret: %w", err)
		}
	}
	return &sessionTokenService{secret: key, ttl: ttl, now: time.Now}, nil
}

func (s *sessionTokenService) Issue(sessionID string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Issuer:   sessionTokenIssuer,
		Subject:  sessionID,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", domain.NewInternalError("failed to sign session token", err)
	}
	return signed, nil
}

func (s *sessionTokenService) Parse(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionTokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", domain.NewInvalidInputError("invalid session token").WithContext("reason", err.Error())
	}
	if !util.IsULID(claims.Subject) {
		return "", domain.NewInvalidInputError("invalid session token").WithContext("reason", "subject is not a session id")
	}
	return claims.Subject, nil
}
