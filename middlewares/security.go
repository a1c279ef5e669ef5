package middlewares

import (
	"github.com/gin-gonic/gin"
)

// SecurityHeaders applies to every surface: storefront, kiosk, kitchen,
// dashboard. Framing stays denied since the kiosk shell loads the app
// directly rather than embedding it.
func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
		c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")

		c.Next()
	}
}
