package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/enterprize-service/internal/auth"
)

func newTestTokenManager() *auth.TokenManager {
	return auth.NewTokenManager("test-secret", time.Hour, 10*time.Minute)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	tm := newTestTokenManager()

	token, expiresAt, err := tm.CreateAccessToken("jane@acme.test")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	username, err := tm.DecodeAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "jane@acme.test", username)
}

func TestActivationTokenRoundTrip(t *testing.T) {
	tm := newTestTokenManager()

	token, err := tm.CreateActivationToken("jane@acme.test")
	require.NoError(t, err)

	username, err := tm.DecodeActivationToken(token)
	require.NoError(t, err)
	assert.Equal(t, "jane@acme.test", username)
}

func TestUsernameChangeTokenCarriesBothNames(t *testing.T) {
	tm := newTestTokenManager()

	token, err := tm.CreateUsernameChangeToken("old@acme.test", "new@acme.test")
	require.NoError(t, err)

	username, newUsername, err := tm.DecodeUsernameChangeToken(token)
	require.NoError(t, err)
	assert.Equal(t, "old@acme.test", username)
	assert.Equal(t, "new@acme.test", newUsername)
}

func TestDecodeRejectsPurposeMismatch(t *testing.T) {
	tm := newTestTokenManager()

	access, _, err := tm.CreateAccessToken("jane@acme.test")
	require.NoError(t, err)
	activation, err := tm.CreateActivationToken("jane@acme.test")
	require.NoError(t, err)
	password, err := tm.CreatePasswordChangeToken("jane@acme.test")
	require.NoError(t, err)

	_, err = tm.DecodeActivationToken(access)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
	_, err = tm.DecodeAccessToken(activation)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
	_, err = tm.DecodeAccessToken(password)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
	_, _, err = tm.DecodeUsernameChangeToken(password)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestDecodeRejectsForeignSignature(t *testing.T) {
	tm := newTestTokenManager()
	other := auth.NewTokenManager("other-secret", time.Hour, 10*time.Minute)

	token, _, err := other.CreateAccessToken("jane@acme.test")
	require.NoError(t, err)

	_, err = tm.DecodeAccessToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = tm.DecodeAccessToken("not-a-jwt")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
