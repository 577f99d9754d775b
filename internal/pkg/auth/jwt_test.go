package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: exp,
		TokenIssuer:    "eduadmin.test",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	service := newTestJWTService(time.Hour)

	token, expiresIn, err := service.GenerateToken(7, "teacher@edusphere.in", "TEACHER")
	require.NoError(t, err)
	assert.Equal(t, 3600, expiresIn)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "teacher@edusphere.in", claims.Email)
	assert.Equal(t, "TEACHER", claims.Role)
	assert.Equal(t, "eduadmin.test", claims.Issuer)
}

func TestValidateToken_Expired(t *testing.T) {
	service := newTestJWTService(-time.Minute)

	token, _, err := service.GenerateToken(7, "teacher@edusphere.in", "TEACHER")
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	issuer := newTestJWTService(time.Hour)
	token, _, err := issuer.GenerateToken(7, "teacher@edusphere.in", "TEACHER")
	require.NoError(t, err)

	verifier := NewJWTService(JWTConfig{
		SecretKey:      "other-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "eduadmin.test",
	})
	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	// A bare token without the prefix is accepted as-is
	token, err = ExtractBearerToken("abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hashed, err := HashPassword("Admin123!")
	require.NoError(t, err)
	assert.NotEqual(t, "Admin123!", hashed)

	assert.True(t, CheckPassword(hashed, "Admin123!"))
	assert.False(t, CheckPassword(hashed, "admin123!"))
}
