package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cyphera/cyphera-tax/libs/go/mocks"
	"github.com/cyphera/cyphera-tax/libs/go/statemodule"
	"github.com/cyphera/cyphera-tax/libs/go/taxdata"
	"github.com/cyphera/cyphera-tax/libs/go/traced"
	"github.com/cyphera/cyphera-tax/libs/go/types/api/requests"
	"github.com/cyphera/cyphera-tax/libs/go/types/api/responses"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func validReturn() business.TaxReturn {
	return business.TaxReturn{
		ID:           "ret-1",
		TaxYear:      2025,
		FilingStatus: business.FilingSingle,
		Taxpayer:     business.Person{FirstName: "Pat", LastName: "Doe", DateOfBirth: "1985-04-12"},
		W2s:          []business.W2{{ID: "w2-1", EmployerName: "Acme", Wages: 6000000, FederalWithheld: 600000}},
		StateReturns: []business.StateReturnConfig{{StateCode: "NC"}},
	}
}

func sampleComputation() *business.ReturnComputation {
	line11 := traced.FromComputation(6000000, "f1040.line11", nil, "Adjusted gross income")
	return &business.ReturnComputation{
		TaxYear: 2025,
		Federal: &business.Form1040Result{
			TaxYear:      2025,
			FilingStatus: business.FilingSingle,
			Line11:       line11,
			Line24:       traced.FromComputation(500000, "f1040.line24", nil, "Total tax"),
			Line33:       traced.FromComputation(600000, "f1040.line33", nil, "Total payments"),
			Line34:       traced.FromComputation(100000, "f1040.line34", nil, "Refund"),
			Nodes:        []traced.TracedValue{line11},
		},
		States: []business.StateComputeResult{{
			StateCode: "NC",
			TotalTax:  traced.FromComputation(200000, "nc.total_tax", nil, "NC tax"),
			Nodes:     []traced.TracedValue{line11},
		}},
	}
}

func performJSON(t *testing.T, handlerFunc gin.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var raw []byte
	switch b := body.(type) {
	case string:
		raw = []byte(b)
	default:
		var err error
		raw, err = json.Marshal(b)
		require.NoError(t, err)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/returns", bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")
	handlerFunc(c)
	return w
}

func TestTaxReturnHandler_ListStates(t *testing.T) {
	gin.SetMode(gin.TestMode)
	calc := mocks.NewMockReturnCalculatorForTest(t)
	calc.EXPECT().ListSupportedStates().Return([]statemodule.StateInfo{
		{Code: "CA", Name: "California", Confidence: business.ConfidenceVerified},
		{Code: "NY", Name: "New York", Confidence: business.ConfidenceProvisional},
	})
	handler := NewTaxReturnHandler(calc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/states", nil)
	handler.ListStates(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp responses.ListResponse[responses.StateResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "list", resp.Object)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "NY", resp.Data[1].Code)
	assert.Equal(t, business.ConfidenceProvisional, resp.Data[1].Confidence)
}

func TestTaxReturnHandler_ComputeReturn(t *testing.T) {
	gin.SetMode(gin.TestMode)

	invalid := validReturn()
	invalid.FilingStatus = "bogus"
	invalid.EstimatedPayments = -1

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(calc *mocks.MockReturnCalculator)
		expectedStatus int
		wantDetails    int
	}{
		{
			name: "computes return",
			body: requests.ComputeReturnRequest{Return: validReturn()},
			setupMock: func(calc *mocks.MockReturnCalculator) {
				calc.EXPECT().Compute(gomock.Any(), gomock.Any()).Return(sampleComputation(), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "malformed json",
			body:           `{"return": `,
			setupMock:      func(calc *mocks.MockReturnCalculator) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "validation problems are listed",
			body:           requests.ComputeReturnRequest{Return: invalid},
			setupMock:      func(calc *mocks.MockReturnCalculator) {},
			expectedStatus: http.StatusBadRequest,
			wantDetails:    2,
		},
		{
			name: "unknown state",
			body: requests.ComputeReturnRequest{Return: validReturn()},
			setupMock: func(calc *mocks.MockReturnCalculator) {
				calc.EXPECT().Compute(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("get module: %w", statemodule.ErrUnknownState))
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "unsupported year from engine",
			body: requests.ComputeReturnRequest{Return: validReturn()},
			setupMock: func(calc *mocks.MockReturnCalculator) {
				calc.EXPECT().Compute(gomock.Any(), gomock.Any()).
					Return(nil, fmt.Errorf("compute: %w", taxdata.ErrUnsupportedTaxYear))
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "engine failure",
			body: requests.ComputeReturnRequest{Return: validReturn()},
			setupMock: func(calc *mocks.MockReturnCalculator) {
				calc.EXPECT().Compute(gomock.Any(), gomock.Any()).Return(nil, fmt.Errorf("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := mocks.NewMockReturnCalculatorForTest(t)
			tt.setupMock(calc)
			handler := NewTaxReturnHandler(calc)

			w := performJSON(t, handler.ComputeReturn, tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus != http.StatusOK {
				var errResp ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errResp))
				assert.NotEmpty(t, errResp.Error)
				assert.Len(t, errResp.Details, tt.wantDetails)
				return
			}

			var resp responses.ComputeReturnResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.ComputationID)
			assert.Equal(t, "ret-1", resp.Summary.ReturnID)
			assert.Equal(t, int64(6000000), resp.Summary.AGI)
			assert.Equal(t, int64(100000), resp.Summary.Refund)
			require.NotNil(t, resp.Computation)
			assert.Empty(t, resp.Computation.Federal.Nodes)
			require.Len(t, resp.Computation.States, 1)
			assert.Empty(t, resp.Computation.States[0].Nodes)
		})
	}
}

func TestTaxReturnHandler_ComputeReturnIncludeNodes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	calc := mocks.NewMockReturnCalculatorForTest(t)
	comp := sampleComputation()
	calc.EXPECT().Compute(gomock.Any(), gomock.Any()).Return(comp, nil)
	handler := NewTaxReturnHandler(calc)

	w := performJSON(t, handler.ComputeReturn, requests.ComputeReturnRequest{Return: validReturn(), IncludeNodes: true})
	require.Equal(t, http.StatusOK, w.Code)

	var resp responses.ComputeReturnResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Computation.Federal.Nodes, 1)
	assert.Len(t, resp.Computation.States[0].Nodes, 1)
}

func TestReturnComputation_WithoutNodes(t *testing.T) {
	comp := sampleComputation()
	stripped := comp.WithoutNodes()

	assert.Empty(t, stripped.Federal.Nodes)
	assert.Empty(t, stripped.States[0].Nodes)
	assert.Len(t, comp.Federal.Nodes, 1)
	assert.Len(t, comp.States[0].Nodes, 1)
}

func TestTaxReturnHandler_ComputeNonresident(t *testing.T) {
	gin.SetMode(gin.TestMode)

	ret := validReturn()
	ret.NonresidentAlien = &business.NonresidentAlienInfo{}

	calc := mocks.NewMockReturnCalculatorForTest(t)
	calc.EXPECT().ComputeNonresident(gomock.Any(), gomock.Any()).Return(&business.Form1040NRResult{
		TaxYear:      2025,
		FilingStatus: business.FilingSingle,
		Nodes:        []traced.TracedValue{traced.Zero("f1040nr.line1a")},
	}, nil)
	handler := NewTaxReturnHandler(calc)

	w := performJSON(t, handler.ComputeNonresident, requests.ComputeReturnRequest{Return: ret})
	require.Equal(t, http.StatusOK, w.Code)

	var resp responses.ComputeNonresidentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Result)
	assert.Equal(t, 2025, resp.Result.TaxYear)
	assert.Empty(t, resp.Result.Nodes)
}

func TestTaxReturnHandler_Explain(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(calc *mocks.MockReturnCalculator)
		expectedStatus int
	}{
		{
			name: "explains node",
			body: requests.ExplainRequest{Return: validReturn(), NodeID: "f1040.line11"},
			setupMock: func(calc *mocks.MockReturnCalculator) {
				calc.EXPECT().Explain(gomock.Any(), gomock.Any(), "f1040.line11").
					Return(&traced.Explanation{NodeID: "f1040.line11", Label: "Adjusted gross income", Amount: 6000000}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "node id is required",
			body:           requests.ExplainRequest{Return: validReturn()},
			setupMock:      func(calc *mocks.MockReturnCalculator) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown node",
			body: requests.ExplainRequest{Return: validReturn(), NodeID: "nope"},
			setupMock: func(calc *mocks.MockReturnCalculator) {
				calc.EXPECT().Explain(gomock.Any(), gomock.Any(), "nope").
					Return(nil, fmt.Errorf("explain: %w", traced.ErrUnknownNode))
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := mocks.NewMockReturnCalculatorForTest(t)
			tt.setupMock(calc)
			handler := NewTaxReturnHandler(calc)

			w := performJSON(t, handler.Explain, tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				var resp responses.ExplainResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "f1040.line11", resp.NodeID)
				require.NotNil(t, resp.Explanation)
				assert.Equal(t, int64(6000000), resp.Explanation.Amount)
			}
		})
	}
}
