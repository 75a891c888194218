package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/myadmincaptiva/backend/internal/model"
	"github.com/myadmincaptiva/backend/internal/service"
)

// authService - 로그인 서비스 인터페이스
type authService interface {
	Login(ctx context.Context, username, password, bypassKey, client string) (string, int64, error)
}

type AuthHandler struct {
	svc authService
}

func NewAuthHandler(svc authService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login godoc
// @Summary Login
// @Description A matching bypass key issues a long-lived session with the bypassed role.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Admin credentials"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 429 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Failure 503 {object} model.ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid request")
		return
	}

	token, expiresIn, err := h.svc.Login(c.Request.Context(), req.Username, req.Password, req.BypassKey, c.ClientIP())
	if err != nil {
		writeLoginError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.LoginResponse{
		Token:     token,
		ExpiresIn: expiresIn,
	})
}

// Me godoc
// @Summary Get current session
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Session
// @Failure 401 {object} model.ErrorResponse
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	session := GetSession(c)
	if session == nil {
		abortUnauthorized(c)
		return
	}
	c.JSON(http.StatusOK, session)
}

func writeLoginError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeError(c, http.StatusBadRequest, "Missing credentials")
	case errors.Is(err, service.ErrUnauthorized):
		writeError(c, http.StatusUnauthorized, "Invalid username or password")
	case errors.Is(err, service.ErrRateLimited):
		writeError(c, http.StatusTooManyRequests, "Too many login attempts")
	case errors.Is(err, service.ErrMisconfigured):
		log.Printf("Login unavailable: %v", err)
		writeError(c, http.StatusInternalServerError, "Auth is not configured")
	case errors.Is(err, service.ErrUnavailable):
		log.Printf("Login unavailable: %v", err)
		writeError(c, http.StatusServiceUnavailable, "Login temporarily unavailable")
	default:
		log.Printf("Login failed: %v", err)
		writeError(c, http.StatusInternalServerError, "Login failed")
	}
}

func writeError(c *gin.Context, status int, message string) {
	c.JSON(status, model.ErrorResponse{Error: message})
}
