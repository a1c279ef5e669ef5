package utils

import (
	"github.com/gin-gonic/gin"
)

// RespondData wraps a successful payload in the { "data": ... } envelope
// used by the storefront, kiosk and dashboard clients.
func RespondData(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"data": data})
}

// RespondError wraps a failure in the { "error": ... } envelope.
func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, gin.H{"error": err.Error()})
}
