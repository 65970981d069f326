package responses

import (
	"github.com/cyphera/cyphera-tax/libs/go/statemodule"
	"github.com/cyphera/cyphera-tax/libs/go/traced"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
)

// StateResponse describes a supported state
type StateResponse struct {
	Code       string                  `json:"code"`
	Name       string                  `json:"name"`
	Confidence business.DataConfidence `json:"confidence"`
}

// ComputeReturnResponse is the result of a return computation
type ComputeReturnResponse struct {
	ComputationID string                      `json:"computation_id"`
	Summary       business.ReturnSummary      `json:"summary"`
	Computation   *business.ReturnComputation `json:"computation"`
}

// ComputeNonresidentResponse is the result of a Form 1040-NR computation
type ComputeNonresidentResponse struct {
	ComputationID string                     `json:"computation_id"`
	Result        *business.Form1040NRResult `json:"result"`
}

// ExplainResponse is the provenance tree of one node
type ExplainResponse struct {
	ComputationID string              `json:"computation_id"`
	NodeID        string              `json:"node_id"`
	Explanation   *traced.Explanation `json:"explanation"`
}

// NewStateResponse converts registry metadata to the API shape
func NewStateResponse(info statemodule.StateInfo) StateResponse {
	return StateResponse{Code: info.Code, Name: info.Name, Confidence: info.Confidence}
}
