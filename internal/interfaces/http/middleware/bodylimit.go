package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/interfaces/http/dto"
)

// BodyLimit rejects requests whose declared body exceeds maxBytes and caps
// the reader for chunked bodies. A non-positive maxBytes disables the check.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeRequestTooLarge,
				"Request body exceeds maximum allowed size",
				GetRequestID(c),
			))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
