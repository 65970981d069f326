package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cyphera/cyphera-tax/libs/go/constants"
	"github.com/cyphera/cyphera-tax/libs/go/mocks"
	"github.com/cyphera/cyphera-tax/libs/go/statemodule"
	"github.com/cyphera/cyphera-tax/libs/go/taxdata"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHealthHandler(t *testing.T) {
	handler := NewHealthHandler(mocks.NewMockReturnCalculatorForTest(t))
	require.NotNil(t, handler)
	assert.IsType(t, &HealthHandler{}, handler)
}

func TestHealthHandler_Health(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		states         []statemodule.StateInfo
		expectedStatus int
		expectedBody   HealthResponse
	}{
		{
			name: "reports years and states",
			states: []statemodule.StateInfo{
				{Code: "CA", Confidence: business.ConfidenceProvisional},
				{Code: "NC", Confidence: business.ConfidenceVerified},
				{Code: "NY", Confidence: business.ConfidenceProvisional},
			},
			expectedStatus: http.StatusOK,
			expectedBody: HealthResponse{
				Status:            "ok",
				Service:           constants.ServiceName,
				TaxYears:          taxdata.SupportedYears(),
				States:            3,
				ProvisionalStates: []string{"CA", "NY"},
			},
		},
		{
			name: "all verified",
			states: []statemodule.StateInfo{
				{Code: "NC", Confidence: business.ConfidenceVerified},
			},
			expectedStatus: http.StatusOK,
			expectedBody: HealthResponse{
				Status:   "ok",
				Service:  constants.ServiceName,
				TaxYears: taxdata.SupportedYears(),
				States:   1,
			},
		},
		{
			name:           "no states registered",
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody: HealthResponse{
				Status:   "degraded",
				Service:  constants.ServiceName,
				TaxYears: taxdata.SupportedYears(),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := mocks.NewMockReturnCalculatorForTest(t)
			calc.EXPECT().ListSupportedStates().Return(tt.states)
			handler := NewHealthHandler(calc)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

			handler.Health(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response HealthResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedBody, response)
		})
	}
}
