package responses

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// HealthResponse is returned by the health check. It reports what the
// running build can compute.
type HealthResponse struct {
	Status            string   `json:"status"`
	Service           string   `json:"service"`
	TaxYears          []int    `json:"tax_years"`
	States            int      `json:"states"`
	ProvisionalStates []string `json:"provisional_states,omitempty"`
}

// ListResponse wraps a list payload
type ListResponse[T any] struct {
	Object string `json:"object"`
	Data   []T    `json:"data"`
}
