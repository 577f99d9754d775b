package dto

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@edusphere.in"`
	Password string `json:"password" binding:"required" example:"secret123"`
}

// LoginResponse represents a successful login
type LoginResponse struct {
	Message   string `json:"message" example:"login successful"`
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn" example:"3600"`
	Role      string `json:"role" example:"ADMIN"`
}
