// Package mi computes the Michigan MI-1040.
package mi

import (
	"github.com/cyphera/cyphera-tax/libs/go/statemodule"
	"github.com/cyphera/cyphera-tax/libs/go/taxmath"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
)

var labels = map[string]string{
	"retirement_income":      "Pension and IRA distributions of eligible filers",
	"retirement_subtraction": "Retirement and pension benefits subtraction",
	"eitc":                   "Michigan earned income tax credit",
}

// Module is Michigan.
type Module struct {
	statemodule.Base
}

// New returns the Michigan module.
func New() *Module {
	return &Module{Base: statemodule.NewBase("MI", "Michigan", labels,
		statemodule.ReviewSection{Title: "Michigan subtractions", NodeIDs: []string{"retirement_subtraction"}},
	)}
}

// Compute runs the return. The retirement subtraction is being phased in, so
// eligible filers subtract a share of their pension income up to a cap.
func (m *Module) Compute(ret *business.TaxReturn, fed *business.Form1040Result, cfg business.StateReturnConfig) (business.StateComputeResult, error) {
	w, err := m.NewWorksheet(ret, fed, cfg)
	if err != nil {
		return business.StateComputeResult{}, err
	}
	w.Method = statemodule.ApportionByRatio
	p := w.Params()

	w.SubtractSocialSecurity()
	var eligible int64
	for _, f := range w.People() {
		if f.AtLeast(int(p.Rate("retirementSubtractionAge"))) {
			eligible += w.RetirementIncome(f.Owner)
		}
	}
	if eligible > 0 {
		income := w.Input("retirement_income", eligible)
		limit := p.Dollars("retirementSubtractionCap", w.Status())
		amount := taxmath.Min(taxmath.ApplyRate(eligible, p.Rate("retirementSubtractionShare")), limit)
		w.Subtract("retirement_subtraction", amount, income)
	}
	w.SubtractUSObligationInterest()
	w.ComputeAGI()

	w.PersonalExemptions()
	w.ComputeTaxable()
	w.ComputeTax()

	w.StateEITC(w.Table().EITCRate)
	return w.Finish(), nil
}
