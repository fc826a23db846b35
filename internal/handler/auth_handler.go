package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hunterlab/monster-advisor/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Binding carries no required tags: missing fields surface as the service's
// own validation messages, not gin binding errors. Unparseable bodies are
// still rejected outright; an empty body reads as empty fields.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type googleLoginRequest struct {
	IDToken string `json:"id_token"`
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON body"})
		return
	}

	token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if service.IsLoginError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// GoogleLogin handles POST /google-login. Responds 201 when the sign-in
// created a local user, 200 when one already existed.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req googleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation error",
			"details": []string{"Invalid JSON body"},
		})
		return
	}

	if req.IDToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Validation error",
			"details": []string{"id_token is required"},
		})
		return
	}

	user, token, created, err := h.authService.GoogleLogin(c.Request.Context(), req.IDToken)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Validation error",
				"details": vErr.Details,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"access_token": token,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
		},
	})
}
