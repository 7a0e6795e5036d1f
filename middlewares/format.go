package middlewares

import (
	"ShifaCare/logger"

	"github.com/gin-gonic/gin"
)

// RespondJSON writes a JSON response to the client.
func RespondJSON(c *gin.Context, data interface{}, status int) {
	c.JSON(status, data)
}

// HttpError logs an error server-side and writes a short, generic message to
// the client. Internal details never reach the response body.
func HttpError(c *gin.Context, message string, status int, err error) {
	logger.L.Errorw("request failed",
		"status", status,
		"message", message,
		"path", c.Request.URL.Path,
		"error", err,
	)
	c.JSON(status, gin.H{"error": message})
}
