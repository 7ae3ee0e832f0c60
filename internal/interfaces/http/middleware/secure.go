package middleware

import (
	"github.com/gin-gonic/gin"
)

const (
	apiContentSecurityPolicy = "default-src 'none'; frame-ancestors 'none'"
	apiPermissionsPolicy     = "camera=(), geolocation=(), microphone=(), payment=(), usb=()"
)

// Secure sets response headers for a JSON-only API. HSTS is left to the TLS
// terminating proxy.
func Secure() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Content-Security-Policy", apiContentSecurityPolicy)
		h.Set("Permissions-Policy", apiPermissionsPolicy)
		c.Next()
	}
}
