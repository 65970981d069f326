package middleware

import (
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
)

// DefaultMaxBodySize bounds a submitted return. Returns with thousands of
// 1099-B rows still fit comfortably.
const DefaultMaxBodySize int64 = 2 << 20

// RequireJSONBody rejects POST/PUT/PATCH requests that are not
// application/json or that exceed maxBytes. Handlers see a body reader that
// fails once the limit is crossed.
func RequireJSONBody(maxBytes int64) gin.HandlerFunc {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodySize
	}
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}

		mediaType, _, err := mime.ParseMediaType(c.GetHeader("Content-Type"))
		if err != nil || mediaType != "application/json" {
			c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, gin.H{
				"error": "Content-Type must be application/json",
			})
			return
		}
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
				"error": "Request body too large",
			})
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
