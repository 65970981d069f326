package requests

import "github.com/cyphera/cyphera-tax/libs/go/types/business"

// ComputeReturnRequest is the body of POST /returns/compute and
// POST /returns/compute-nr.
type ComputeReturnRequest struct {
	Return business.TaxReturn `json:"return"`
	// IncludeNodes keeps the full provenance node lists in the response.
	IncludeNodes bool `json:"include_nodes,omitempty"`
}

// ExplainRequest is the body of POST /returns/explain.
type ExplainRequest struct {
	Return business.TaxReturn `json:"return"`
	NodeID string             `json:"node_id" binding:"required"`
}
