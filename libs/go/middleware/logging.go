package middleware

import (
	"bytes"
	"time"

	"github.com/cyphera/cyphera-tax/libs/go/logger"
	"github.com/gin-gonic/gin"
)

// maxLoggedBody caps how much of a request body debug logging keeps.
const maxLoggedBody = 4096

// RequestLoggingMiddleware logs method, path, status, latency and the number
// of request bytes the handler consumed. With logBodies set the start of the
// request body is logged too, with social security numbers masked.
func RequestLoggingMiddleware(logBodies bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()

		var reader *BodyReader
		if c.Request.Body != nil {
			limit := 0
			if logBodies {
				limit = maxLoggedBody
			}
			reader = NewBodyReader(c.Request.Body, limit)
			c.Request.Body = reader
		}

		c.Next()

		log := logger.NewStructuredLogger(logger.ComponentAPI).
			WithCorrelationID(GetCorrelationID(c)).
			WithField("client_ip", c.ClientIP()).
			WithField("response_size", c.Writer.Size())
		if reader != nil {
			log = log.WithField("request_size", reader.Size())
			if body := bytes.TrimSpace(reader.Head()); len(body) > 0 {
				log = log.WithField("request_body", logger.RedactSSNs(string(body)))
			}
		}
		for _, ginErr := range c.Errors {
			log.Error("Request error", ginErr.Err)
		}
		log.LogHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(startTime))
	}
}
