package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/edusphere/eduadmin/internal/app/models/dto"
	"github.com/edusphere/eduadmin/internal/pkg/apperrors"
	"github.com/edusphere/eduadmin/internal/pkg/auth"
	"github.com/edusphere/eduadmin/internal/pkg/logger"
)

// AuthService handles login and token issuance
type AuthService struct {
	userStore  UserStore
	jwtService *auth.JWTService
}

// NewAuthService creates a new auth service instance
func NewAuthService(userStore UserStore, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		userStore:  userStore,
		jwtService: jwtService,
	}
}

// Login verifies the credentials and issues an access token carrying the
// user's role. Role-gated operations read the role from the validated token
// claims, never from ambient state.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userStore.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, expiresIn, err := s.jwtService.GenerateToken(user.ID, user.Email, string(user.RoleType))
	if err != nil {
		return nil, fmt.Errorf("error generating token: %w", err)
	}

	if err := s.userStore.UpdateLastLogin(ctx, user.ID); err != nil {
		// Login still succeeds; the stamp is best effort.
		logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to stamp last login")
	}

	return &dto.LoginResponse{
		Message:   "login successful",
		Token:     token,
		ExpiresIn: expiresIn,
		Role:      string(user.RoleType),
	}, nil
}
