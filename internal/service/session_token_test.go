package service

import (
	"testing"
	"time"

	"vocab-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSessionID = "01HGZ8VNRYXS8QKNJV5GRWPWDQ"

func TestSessionTokenService_RoundTrip(t *testing.T) {
	svc, err := NewSessionTokenService("secret", time.Hour)
	require.NoError(t, err)

	token, err := svc.Issue(testSessionID)
	require.NoError(t, err)

	id, err := svc.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, testSessionID, id)
}

func TestSessionTokenService_Rejects(t *testing.T) {
	svc, err := NewSessionTokenService("secret", time.Hour)
	require.NoError(t, err)
	other, err := NewSessionTokenService("other", time.Hour)
	require.NoError(t, err)

	foreign, err := other.Issue(testSessionID)
	require.NoError(t, err)

	_, err = svc.Parse(foreign)
	assert.ErrorIs(t, err, domain.NewInvalidInputError(""))

	_, err = svc.Parse("not-a-token")
	assert.Error(t, err)

	notULID, err := svc.Issue("hello")
	require.NoError(t, err)
	_, err = svc.Parse(notULID)
	assert.Error(t, err)
}

func TestSessionTokenService_Expired(t *testing.T) {
	raw, err := NewSessionTokenService("secret", time.Minute)
	require.NoError(t, err)
	svc := raw.(*sessionTokenService)

	svc.now = func() time.Time { return fixedNow }
	token, err := svc.Issue(testSessionID)
	require.NoError(t, err)

	svc.now = func() time.Time { return fixedNow.Add(2 * time.Minute) }
	_, err = svc.Parse(token)
	assert.Error(t, err)
}

func TestSessionTokenService_RandomSecret(t *testing.T) {
	a, err := NewSessionTokenService("", 0)
	require.NoError(t, err)
	b, err := NewSessionTokenService("", 0)
	require.NoError(t, err)

	token, err := a.Issue(testSessionID)
	require.NoError(t, err)
	_, err = b.Parse(token)
	assert.Error(t, err)
}
