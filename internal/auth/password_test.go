package auth_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/enterprize-service/internal/auth"
	"github.com/spec-kit/enterprize-service/internal/domain"
)

func TestHashPasswordProducesUniqueSaltedHashes(t *testing.T) {
	first, err := auth.HashPassword("s3cret")
	require.NoError(t, err)
	second, err := auth.HashPassword("s3cret")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(first, "$argon2id$"))
	assert.NotEqual(t, first, second)
}

func TestVerifyPassword(t *testing.T) {
	encoded, err := auth.HashPassword("s3cret")
	require.NoError(t, err)

	ok, err := auth.VerifyPassword("s3cret", encoded)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = auth.VerifyPassword("wrong", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	for _, encoded := range []string{
		"",
		"plaintext",
		"$argon2id$v=19$m=65536,t=3,p=4$onlyonepart",
		"$bcrypt$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA",
	} {
		_, err := auth.VerifyPassword("s3cret", encoded)
		assert.ErrorIs(t, err, domain.ErrInvalidPasswordHash, "encoded=%q", encoded)
	}
}
