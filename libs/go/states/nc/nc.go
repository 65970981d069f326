// Package nc computes the North Carolina D-400.
package nc

import (
	"github.com/cyphera/cyphera-tax/libs/go/statemodule"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
)

// Module is North Carolina.
type Module struct {
	statemodule.Base
}

// New returns the North Carolina module.
func New() *Module {
	return &Module{Base: statemodule.NewBase("NC", "North Carolina", nil)}
}

// Compute runs the return: federal AGI less Social Security and federal
// obligation interest, less the standard deduction, at a flat rate.
func (m *Module) Compute(ret *business.TaxReturn, fed *business.Form1040Result, cfg business.StateReturnConfig) (business.StateComputeResult, error) {
	w, err := m.NewWorksheet(ret, fed, cfg)
	if err != nil {
		return business.StateComputeResult{}, err
	}
	w.Method = statemodule.ApportionByRatio

	w.SubtractSocialSecurity()
	w.SubtractUSObligationInterest()
	w.ComputeAGI()
	w.StandardDeduction()
	w.ComputeTaxable()
	w.ComputeTax()
	return w.Finish(), nil
}
