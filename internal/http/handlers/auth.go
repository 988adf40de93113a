package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/therohansaxena/AddressBook/internal/config"
	"github.com/therohansaxena/AddressBook/internal/domain/user"
	"github.com/therohansaxena/AddressBook/internal/service"
)

type UserManager interface {
	Register(ctx context.Context, req user.RegisterRequest) error
	Authenticate(ctx context.Context, email, password string) (string, error)
	ForgotPassword(ctx context.Context, email, newPassword string) error
	ResetPassword(ctx context.Context, email, currentPassword, newPassword string) error
}

type AuthHandler struct {
	svc UserManager
}

func NewAuthHandler(svc UserManager) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req user.RegisterRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err := h.svc.Register(cctx, req)

	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			RespondError(ctx, http.StatusBadRequest, "Email is already in use!")
			return
		}

		RespondInternal(ctx)
		return
	}

	RespondMessage(ctx, http.StatusCreated, "User registered successfully!")
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req user.LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// short timeout for DB lookup + bcrypt check
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	token, err := h.svc.Authenticate(cctx, req.Email, req.Password)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondUnauthorized(ctx, "User not found!")
			return
		}

		if errors.Is(err, service.ErrInvalidCredentials) {
			RespondUnauthorized(ctx, "Invalid email or password!")
			return
		}

		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Login successful!",
		"token":   token,
	})
}

func (h *AuthHandler) ForgotPassword(ctx *gin.Context) {
	email := ctx.Param("email")

	var req user.ForgotPasswordRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if strings.TrimSpace(req.NewPassword) == "" {
		RespondError(ctx, http.StatusBadRequest, "New password cannot be empty!")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err := h.svc.ForgotPassword(cctx, email, req.NewPassword)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			// reported as a message with 200, same as the original API
			RespondMessage(ctx, http.StatusOK, "Sorry! We cannot find the user email: "+email)
			return
		}

		RespondInternal(ctx)
		return
	}

	RespondMessage(ctx, http.StatusOK, "Password has been changed successfully!")
}

func (h *AuthHandler) ResetPassword(ctx *gin.Context) {
	email := ctx.Param("email")
	currentPassword := ctx.Query("currentPassword")
	newPassword := ctx.Query("newPassword")

	if strings.TrimSpace(newPassword) == "" {
		RespondError(ctx, http.StatusBadRequest, "New password cannot be empty!")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	err := h.svc.ResetPassword(cctx, email, currentPassword, newPassword)

	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			RespondMessage(ctx, http.StatusOK, "User not found with email: "+email)
			return
		}

		if errors.Is(err, service.ErrInvalidCredentials) {
			RespondMessage(ctx, http.StatusOK, "Current password is incorrect!")
			return
		}

		RespondInternal(ctx)
		return
	}

	RespondMessage(ctx, http.StatusOK, "Password reset successfully!")
}
