package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/edusphere/eduadmin/internal/app/models/dto"
	"github.com/edusphere/eduadmin/internal/pkg/apperrors"
	"github.com/edusphere/eduadmin/internal/pkg/logger"
)

// HandleAPIError maps application errors to HTTP responses. Every core
// operation surfaces one of the apperrors sentinels (possibly wrapped with a
// message); the HTTP status conveys the kind and unknown errors collapse to
// a 500 without leaking internals.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(400, dto.NewErrorResponse(err.Error(), "validation failed"))
	case errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(400, dto.NewErrorResponse(err.Error(), "bad request"))
	case errors.Is(err, apperrors.ErrInvalidRoster):
		c.JSON(400, dto.NewErrorResponse("invalid student id in roster", "validation failed"))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(403, dto.NewErrorResponse(err.Error(), "permission denied"))
	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(404, dto.NewErrorResponse(err.Error(), "resource not found"))
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(409, dto.NewErrorResponse(err.Error(), "conflict"))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		c.JSON(401, dto.NewErrorResponse("invalid email or password", "invalid credentials"))
	case errors.Is(err, apperrors.ErrAccountDisabled):
		c.JSON(403, dto.NewErrorResponse("account is disabled", "permission denied"))
	case errors.Is(err, apperrors.ErrTokenExpired):
		c.JSON(401, dto.NewErrorResponse("token expired", "token expired"))
	case errors.Is(err, apperrors.ErrTokenInvalid):
		c.JSON(401, dto.NewErrorResponse("invalid token", "invalid token"))
	default:
		logger.Error().Err(err).Str("path", c.FullPath()).Msg("Unhandled API error")
		c.JSON(500, dto.NewErrorResponse("internal server error", "internal error"))
	}
}
