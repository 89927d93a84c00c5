package utils_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lifeos-app/lifeos-backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func TestGenerateAndParseJWT(t *testing.T) {
	token, err := utils.GenerateJWT("user-123", testSecret, time.Hour, "lifeos-backend")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := utils.ParseAndValidateJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "lifeos-backend", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := utils.GenerateJWT("user-123", testSecret, time.Hour, "lifeos-backend")
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(token, "some-other-secret")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestParseJWTExpired(t *testing.T) {
	token, err := utils.GenerateJWT("user-123", testSecret, -time.Minute, "lifeos-backend")
	require.NoError(t, err)

	_, err = utils.ParseAndValidateJWT(token, testSecret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}
