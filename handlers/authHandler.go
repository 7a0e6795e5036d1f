package handlers

import (
	"ShifaCare/middlewares"
	"ShifaCare/services"
	"ShifaCare/utils"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	service *services.AuthService
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// Login handles POST /api/admin/login: verifies credentials and sets the
// session cookie. Unknown username and wrong password answer identically.
func (h *AuthHandler) Login(c *gin.Context) {
	var credentials struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&credentials); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	admin, err := h.service.Authenticate(c.Request.Context(), credentials.Username, credentials.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		respondServiceError(c, err)
		return
	}

	token, err := utils.GenerateSessionToken(admin.ID, admin.Username)
	if err != nil {
		middlewares.HttpError(c, "something went wrong", http.StatusInternalServerError, err)
		return
	}

	utils.SetSessionCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"username": admin.Username})
}

// Logout handles POST /api/admin/logout by expiring the session cookie.
// Tokens are stateless, so there is nothing to revoke server-side.
func (h *AuthHandler) Logout(c *gin.Context) {
	utils.ClearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
