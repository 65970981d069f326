package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRequireJSONBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequireJSONBody(32))
	handler := func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.Status(http.StatusNoContent)
	}
	router.POST("/compute", handler)
	router.GET("/states", handler)

	tests := []struct {
		name        string
		method      string
		path        string
		contentType string
		body        string
		wantStatus  int
	}{
		{name: "json accepted", method: http.MethodPost, path: "/compute", contentType: "application/json", body: `{"tax_year":2025}`, wantStatus: http.StatusNoContent},
		{name: "charset parameter accepted", method: http.MethodPost, path: "/compute", contentType: "application/json; charset=utf-8", body: `{}`, wantStatus: http.StatusNoContent},
		{name: "wrong content type", method: http.MethodPost, path: "/compute", contentType: "text/plain", body: `{}`, wantStatus: http.StatusUnsupportedMediaType},
		{name: "missing content type", method: http.MethodPost, path: "/compute", body: `{}`, wantStatus: http.StatusUnsupportedMediaType},
		{name: "too large", method: http.MethodPost, path: "/compute", contentType: "application/json", body: `{"payload":"` + strings.Repeat("x", 64) + `"}`, wantStatus: http.StatusRequestEntityTooLarge},
		{name: "GET is not checked", method: http.MethodGet, path: "/states", wantStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRequestLoggingMiddleware_PreservesBody(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestLoggingMiddleware(true))
	router.POST("/echo", func(c *gin.Context) {
		raw, _ := io.ReadAll(c.Request.Body)
		c.String(http.StatusOK, string(raw))
	})

	body := `{"taxpayer":{"ssn":"123-45-6789"}}`
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, body, w.Body.String())
}
