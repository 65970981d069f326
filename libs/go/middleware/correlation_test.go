package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelationIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name                 string
		requestCorrelationID string
		expectNewID          bool
	}{
		{
			name:        "New ID generated when header not present",
			expectNewID: true,
		},
		{
			name:                 "Existing ID preserved when header present",
			requestCorrelationID: "test-correlation-id-123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(CorrelationIDMiddleware())
			router.GET("/test", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{
					"from_gin":     GetCorrelationID(c),
					"from_context": CorrelationIDFromContext(c.Request.Context()),
				})
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.requestCorrelationID != "" {
				req.Header.Set(CorrelationIDHeader, tt.requestCorrelationID)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			responseID := w.Header().Get(CorrelationIDHeader)

			if tt.expectNewID {
				_, err := uuid.Parse(responseID)
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tt.requestCorrelationID, responseID)
			}

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, responseID, body["from_gin"])
			assert.Equal(t, responseID, body["from_context"])
		})
	}
}

func TestCorrelationIDFromContext_Missing(t *testing.T) {
	assert.Empty(t, CorrelationIDFromContext(context.Background()))
	assert.NotNil(t, LogWithCorrelationID(context.Background()))
	assert.NotNil(t, LogWithCorrelationID(WithCorrelationID(context.Background(), "abc")))
}
