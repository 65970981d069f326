package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cyphera/cyphera-tax/libs/go/logger"
	"github.com/cyphera/cyphera-tax/libs/go/mocks"
	"github.com/cyphera/cyphera-tax/libs/go/statemodule"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *mocks.MockReturnCalculator) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger.InitLogger("test")

	calc := mocks.NewMockReturnCalculatorForTest(t)
	initializeHandlersWithCalculator(calc)
	router := gin.New()
	InitializeRoutes(router)
	t.Cleanup(Shutdown)
	return router, calc
}

func TestInitializeRoutes(t *testing.T) {
	router, calc := newTestRouter(t)
	calc.EXPECT().ListSupportedStates().Return([]statemodule.StateInfo{
		{Code: "NC", Name: "North Carolina", Confidence: business.ConfidenceVerified},
	}).AnyTimes()

	tests := []struct {
		name           string
		method         string
		path           string
		contentType    string
		body           string
		expectedStatus int
	}{
		{name: "health", method: http.MethodGet, path: "/health", expectedStatus: http.StatusOK},
		{name: "stage health", method: http.MethodGet, path: "/dev/health", expectedStatus: http.StatusOK},
		{name: "list states", method: http.MethodGet, path: "/api/v1/states", expectedStatus: http.StatusOK},
		{
			name:           "compute rejects non-json body",
			method:         http.MethodPost,
			path:           "/api/v1/returns/compute",
			contentType:    "text/plain",
			body:           "hello",
			expectedStatus: http.StatusUnsupportedMediaType,
		},
		{
			name:           "compute rejects malformed json",
			method:         http.MethodPost,
			path:           "/api/v1/returns/compute",
			contentType:    "application/json",
			body:           "{",
			expectedStatus: http.StatusBadRequest,
		},
		{name: "unknown route", method: http.MethodGet, path: "/api/v1/nope", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NotEmpty(t, w.Header().Get("X-Correlation-ID"))
		})
	}
}

func TestEnvInt(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected int
	}{
		{name: "unset", value: "", expected: 7},
		{name: "numeric", value: " 25 ", expected: 25},
		{name: "garbage", value: "fast", expected: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_ENV_INT", tt.value)
			assert.Equal(t, tt.expected, envInt("TEST_ENV_INT", 7))
		})
	}
}

func TestSplitEnv(t *testing.T) {
	t.Setenv("TEST_SPLIT", "https://a.example, https://b.example")
	require.Equal(t, []string{"https://a.example", "https://b.example"}, splitEnv("TEST_SPLIT", nil))

	t.Setenv("TEST_SPLIT", "")
	assert.Equal(t, []string{"x"}, splitEnv("TEST_SPLIT", []string{"x"}))
}
