package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edusphere/eduadmin/internal/app/models/dto"
	"github.com/edusphere/eduadmin/internal/app/services"
	"github.com/edusphere/eduadmin/internal/middleware"
)

// AuthController handles authentication endpoints
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new auth controller instance
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login godoc
// @Summary User login
// @Description Verifies credentials and issues a JWT carrying the user's role
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse("invalid login payload", "validation failed"))
		return
	}

	resp, err := ac.authService.Login(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
