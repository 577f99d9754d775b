package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusphere/eduadmin/internal/app/models"
	"github.com/edusphere/eduadmin/internal/app/models/dto"
	"github.com/edusphere/eduadmin/internal/pkg/apperrors"
	"github.com/edusphere/eduadmin/internal/pkg/auth"
)

func newAuthServiceForTest(t *testing.T) (*AuthService, *fakeUserStore, *auth.JWTService) {
	t.Helper()
	userStore := newFakeUserStore()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "eduadmin.test",
	})
	return NewAuthService(userStore, jwtService), userStore, jwtService
}

func seedUser(t *testing.T, store *fakeUserStore, email, password string, role models.RoleType, active bool) *models.User {
	t.Helper()
	hashed, err := auth.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		ID: int64(len(store.users) + 1), Email: email, Password: hashed,
		FirstName: "Test", LastName: "User", RoleType: role, IsActive: active,
	}
	store.users[user.ID] = user
	return user
}

func TestLogin_Success(t *testing.T) {
	service, userStore, jwtService := newAuthServiceForTest(t)
	user := seedUser(t, userStore, "admin@edusphere.in", "Admin123!", models.RoleAdmin, true)

	resp, err := service.Login(context.Background(), &dto.LoginRequest{
		Email: "admin@edusphere.in", Password: "Admin123!",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ADMIN", resp.Role)
	assert.Equal(t, user.ID, userStore.lastLoginID)

	// The issued token carries the user's identity and role in its claims
	claims, err := jwtService.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "ADMIN", claims.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	service, userStore, _ := newAuthServiceForTest(t)
	seedUser(t, userStore, "admin@edusphere.in", "Admin123!", models.RoleAdmin, true)

	_, err := service.Login(context.Background(), &dto.LoginRequest{
		Email: "admin@edusphere.in", Password: "wrong",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	service, _, _ := newAuthServiceForTest(t)

	_, err := service.Login(context.Background(), &dto.LoginRequest{
		Email: "nobody@edusphere.in", Password: "whatever",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_DisabledAccount(t *testing.T) {
	service, userStore, _ := newAuthServiceForTest(t)
	seedUser(t, userStore, "teacher@edusphere.in", "Teach123!", models.RoleTeacher, false)

	_, err := service.Login(context.Background(), &dto.LoginRequest{
		Email: "teacher@edusphere.in", Password: "Teach123!",
	})
	assert.ErrorIs(t, err, apperrors.ErrAccountDisabled)
}
