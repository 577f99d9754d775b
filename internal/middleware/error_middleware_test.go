package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusphere/eduadmin/internal/app/models/dto"
	"github.com/edusphere/eduadmin/internal/pkg/apperrors"
)

func handleErrorForTest(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	HandleAPIError(c, err)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return recorder.Code, body
}

func TestHandleAPIError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", apperrors.NewValidationError("invalid student id"), 400},
		{"bad request", apperrors.NewBadRequestError("auth_id header is required"), 400},
		{"forbidden", apperrors.NewForbiddenError("only teachers can access teacher batches"), 403},
		{"not found", apperrors.NewNotFoundError("student not found"), 404},
		{"conflict", apperrors.NewConflictError("student already exists"), 409},
		{"invalid credentials", apperrors.ErrInvalidCredentials, 401},
		{"disabled account", apperrors.ErrAccountDisabled, 403},
		{"expired token", apperrors.ErrTokenExpired, 401},
		{"unknown error", errors.New("connection refused"), 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := handleErrorForTest(t, tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.NotEmpty(t, body.Message)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestHandleAPIError_CarriesCustomMessage(t *testing.T) {
	status, body := handleErrorForTest(t, apperrors.NewNotFoundError("no eligible students"))
	assert.Equal(t, 404, status)
	assert.Equal(t, "no eligible students", body.Message)
	assert.Equal(t, "resource not found", body.Error)
}

func TestHandleAPIError_DoesNotLeakInternalDetail(t *testing.T) {
	status, body := handleErrorForTest(t, errors.New("pq: password authentication failed"))
	assert.Equal(t, 500, status)
	assert.Equal(t, "internal server error", body.Message)
}

func TestHandleAPIError_WrappedSentinelStillMaps(t *testing.T) {
	wrapped := fmt.Errorf("error retrieving batch: %w", apperrors.NewNotFoundError("batch not found"))
	status, _ := handleErrorForTest(t, wrapped)
	assert.Equal(t, 404, status)
}
