package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/logger"
)

// RequestIDHeader carries the request id in and out
const RequestIDHeader = "X-Request-ID"

var requestSeq atomic.Uint64

// RequestID echoes the caller's X-Request-ID or assigns a new one, and stores
// it where the logger and error envelopes look for it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = newRequestID()
		}
		c.Set(logger.GinRequestIDKey, id)
		c.Writer.Header().Set(RequestIDHeader, id)
		c.Next()
	}
}

// GetRequestID returns the id assigned by RequestID, or the inbound header
func GetRequestID(c *gin.Context) string {
	if id := c.GetString(logger.GinRequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(RequestIDHeader)
}

// newRequestID returns 32 hex chars; if the system RNG fails it falls back
// to a timestamp plus a process-local counter, which is unique per process.
func newRequestID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err == nil {
		return hex.EncodeToString(b[:])
	}
	return time.Now().UTC().Format("20060102150405") + "-" + strconv.FormatUint(requestSeq.Add(1), 36)
}
