package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetSessionCookie attaches the session token as an HTTP-only,
// SameSite=Strict cookie.
func SetSessionCookie(c *gin.Context, token string) {
	secure := true
	if gin.Mode() == gin.DebugMode { // Toggle for local dev
		secure = false
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, token, int(SessionExpiry.Seconds()), "/", "", secure, true)
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(c *gin.Context) {
	secure := true
	if gin.Mode() == gin.DebugMode { // Toggle for local dev
		secure = false
	}
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, "", -1, "/", "", secure, true)
}
