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

// accountService - 서비스 인터페이스
type accountService interface {
	ListAccounts(ctx context.Context) ([]model.Account, error)
	CreateAccount(ctx context.Context, req model.AccountInput) (*model.Account, error)
	UpdateAccount(ctx context.Context, id string, req model.AccountInput) (*model.Account, error)
	DeleteAccount(ctx context.Context, id string) error
}

// AccountHandler - 게스트 계정 관련 핸들러
type AccountHandler struct {
	svc accountService
}

func NewAccountHandler(svc accountService) *AccountHandler {
	return &AccountHandler{svc: svc}
}

// ListAccounts godoc
// @Summary List guest accounts
// @Description Readable without a session.
// @Tags users
// @Produce json
// @Success 200 {array} model.Account
// @Failure 500 {object} model.ErrorResponse
// @Router /api/users [get]
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.svc.ListAccounts(c.Request.Context())
	if err != nil {
		log.Printf("Failed to list accounts: %v", err)
		writeError(c, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// CreateAccount godoc
// @Summary Create a guest account
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.AccountInput true "Account"
// @Success 201 {object} model.Account
// @Failure 400,401,409,500 {object} model.ErrorResponse
// @Router /api/users [post]
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req model.AccountInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid payload")
		return
	}

	acc, err := h.svc.CreateAccount(c.Request.Context(), req)
	if err != nil {
		writeAccountError(c, err, "Failed to add user")
		return
	}
	c.JSON(http.StatusCreated, acc)
}

// UpdateAccount godoc
// @Summary Update a guest account
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Param request body model.AccountInput true "Account"
// @Success 200 {object} model.Account
// @Failure 400,401,404,409,500 {object} model.ErrorResponse
// @Router /api/users/{id} [put]
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	var req model.AccountInput
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "Invalid payload")
		return
	}

	acc, err := h.svc.UpdateAccount(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeAccountError(c, err, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, acc)
}

// DeleteAccount godoc
// @Summary Delete a guest account
// @Description Deleting an unknown id succeeds.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "Account ID"
// @Success 200 {object} model.DeleteResponse
// @Failure 401,500 {object} model.ErrorResponse
// @Router /api/users/{id} [delete]
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	if err := h.svc.DeleteAccount(c.Request.Context(), c.Param("id")); err != nil {
		writeAccountError(c, err, "Failed to delete user")
		return
	}
	c.JSON(http.StatusOK, model.DeleteResponse{OK: true})
}

func writeAccountError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		writeError(c, http.StatusBadRequest, "Invalid payload")
	case errors.Is(err, service.ErrConflict):
		writeError(c, http.StatusConflict, "Username or MAC already exists")
	case errors.Is(err, service.ErrNotFound):
		writeError(c, http.StatusNotFound, "User not found")
	default:
		log.Printf("%s: %v", fallback, err)
		writeError(c, http.StatusInternalServerError, fallback)
	}
}
