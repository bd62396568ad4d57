package handler

import (
	"errors"
	"net/http"

	"cartroyal/internal/auth"
	"cartroyal/internal/domain"
	"cartroyal/internal/middleware"
	"cartroyal/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authSvc *service.AuthService
}

func NewAuthHandler(authSvc *service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Password  string `json:"password" binding:"required,min=8"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	u, access, refresh, err := h.authSvc.Register(req.Email, req.FirstName, req.LastName, req.Phone, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			c.JSON(http.StatusConflict, gin.H{"msg": "email already registered"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "registration failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"msg": "Account created",
		"data": gin.H{
			"user":          u,
			"access_token":  access,
			"refresh_token": refresh,
		},
	})
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	u, access, refresh, err := h.authSvc.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCreds) {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "login failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"msg": "Login successful",
		"data": gin.H{
			"user":          u,
			"access_token":  access,
			"refresh_token": refresh,
		},
	})
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	access, refresh, err := h.authSvc.Refresh(req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid refresh token"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "token refresh failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"msg": "Token refreshed",
		"data": gin.H{
			"access_token":  access,
			"refresh_token": refresh,
		},
	})
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	err := h.authSvc.ChangePassword(middleware.GetUserID(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCreds) {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "current password is incorrect"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "password change failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Password changed"})
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	if err := h.authSvc.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "no account with associated email"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to start password reset"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Password reset email sent"})
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	if err := h.authSvc.ResetPassword(req.Token, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, domain.ErrExpired):
			c.JSON(http.StatusGone, gin.H{"msg": "Token has expired"})
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"msg": "Invalid or already used token"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "password reset failed"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "Password has been reset"})
}
