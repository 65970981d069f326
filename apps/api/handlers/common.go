package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/cyphera/cyphera-tax/libs/go/helpers"
	"github.com/cyphera/cyphera-tax/libs/go/logger"
	"github.com/cyphera/cyphera-tax/libs/go/middleware"
	"github.com/cyphera/cyphera-tax/libs/go/statemodule"
	"github.com/cyphera/cyphera-tax/libs/go/taxdata"
	"github.com/cyphera/cyphera-tax/libs/go/traced"
	"github.com/cyphera/cyphera-tax/libs/go/types/api/responses"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Use types from the centralized packages
type (
	ErrorResponse  = responses.ErrorResponse
	HealthResponse = responses.HealthResponse
)

// sendError logs err with the request's correlation ID and writes a JSON
// error response.
func sendError(c *gin.Context, statusCode int, message string, err error) {
	fields := []zap.Field{
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.Int("status", statusCode),
		zap.Error(err),
	}
	log := middleware.LogWithCorrelationID(c.Request.Context())
	if statusCode >= http.StatusInternalServerError {
		log.Error(message, fields...)
	} else {
		log.Info(message, fields...)
	}

	response := ErrorResponse{Error: message}
	var verr *helpers.ValidationError
	if errors.As(err, &verr) {
		response.Details = verr.Problems
	}
	c.JSON(statusCode, response)
}

// handleComputeError maps engine errors to HTTP statuses.
func handleComputeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, helpers.ErrInvalidReturn):
		sendError(c, http.StatusBadRequest, "Invalid tax return", err)
	case errors.Is(err, taxdata.ErrUnsupportedTaxYear):
		sendError(c, http.StatusUnprocessableEntity, "Unsupported tax year", err)
	case errors.Is(err, statemodule.ErrUnknownState):
		sendError(c, http.StatusUnprocessableEntity, "Unsupported state", err)
	case errors.Is(err, traced.ErrUnknownNode):
		sendError(c, http.StatusNotFound, "Unknown node id", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		sendError(c, http.StatusServiceUnavailable, "Computation cancelled", err)
	default:
		sendError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}

// sendSuccess is a helper function that sends a success response
func sendSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// sendList sends a list response
func sendList[T any](c *gin.Context, items []T) {
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, responses.ListResponse[T]{Object: "list", Data: items})
}

func requestLogger(c *gin.Context) *logger.StructuredLogger {
	return logger.NewStructuredLogger(logger.ComponentAPI).
		WithCorrelationID(middleware.GetCorrelationID(c))
}
