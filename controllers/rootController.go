package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRootRoute registers the health check endpoint.
func SetupRootRoute(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
