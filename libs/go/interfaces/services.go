package interfaces

import (
	"context"

	"github.com/cyphera/cyphera-tax/libs/go/statemodule"
	"github.com/cyphera/cyphera-tax/libs/go/traced"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
)

// ReturnCalculator computes complete returns: federal, nonresident and state
type ReturnCalculator interface {
	Compute(ctx context.Context, ret *business.TaxReturn) (*business.ReturnComputation, error)
	ComputeNonresident(ctx context.Context, ret *business.TaxReturn) (*business.Form1040NRResult, error)
	Explain(ctx context.Context, ret *business.TaxReturn, nodeID string) (*traced.Explanation, error)
	ListSupportedStates() []statemodule.StateInfo
}
