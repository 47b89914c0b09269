package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"rideshare/internal/metrics"
	"rideshare/internal/service"
)

// AuthService is the subset of service.AuthService used by AuthHandler.
type AuthService interface {
	Signup(ctx context.Context, req service.SignupRequest) (*service.AuthResult, error)
	Login(ctx context.Context, req service.LoginRequest) (*service.AuthResult, error)
}

// AuthHandler handles HTTP requests for signup and login.
type AuthHandler struct {
	authService AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignupRequest is the HTTP request body for signup.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the HTTP request body for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the public user shape. It has no credential fields.
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResponse is the HTTP response for signup and login.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.authService.Signup(c.Request.Context(), service.SignupRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("signup", outcome(err)).Inc()
		respondError(c, err)
		return
	}
	metrics.AuthAttempts.WithLabelValues("signup", "success").Inc()

	respondJSON(c, http.StatusOK, toAuthResponse(result))
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), service.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("login", outcome(err)).Inc()
		respondError(c, err)
		return
	}
	metrics.AuthAttempts.WithLabelValues("login", "success").Inc()

	respondJSON(c, http.StatusOK, toAuthResponse(result))
}

func toAuthResponse(result *service.AuthResult) AuthResponse {
	return AuthResponse{
		Token: result.Token,
		User: UserResponse{
			ID:    result.User.ID,
			Name:  result.User.Name,
			Email: result.User.Email,
		},
	}
}

func outcome(err error) string {
	switch kind := service.KindOf(err); kind {
	case 0:
		return "error"
	default:
		return kind.String()
	}
}
