// Package ga computes the Georgia Form 500.
package ga

import (
	"github.com/cyphera/cyphera-tax/libs/go/statemodule"
	"github.com/cyphera/cyphera-tax/libs/go/taxmath"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
)

var labels = map[string]string{
	"retirement_exclusion": "Retirement income exclusion",
	"retirement_income":    "Retirement and eligible earned income",
}

// Module is Georgia.
type Module struct {
	statemodule.Base
}

// New returns the Georgia module.
func New() *Module {
	return &Module{Base: statemodule.NewBase("GA", "Georgia", labels,
		statemodule.ReviewSection{Title: "Georgia subtractions", NodeIDs: []string{"retirement_exclusion"}},
	)}
}

// Compute runs the return.
func (m *Module) Compute(ret *business.TaxReturn, fed *business.Form1040Result, cfg business.StateReturnConfig) (business.StateComputeResult, error) {
	w, err := m.NewWorksheet(ret, fed, cfg)
	if err != nil {
		return business.StateComputeResult{}, err
	}
	w.Method = statemodule.ApportionTax
	p := w.Params()

	w.SubtractSocialSecurity()
	w.SubtractUSObligationInterest()

	// Filers 62 and over exclude retirement income plus a slice of earned
	// income, up to an age-based limit per person.
	var exclusion, eligible int64
	for _, f := range w.People() {
		var limit int64
		switch {
		case f.AtLeast(65):
			limit = p.Dollars("retirementExclusion65")
		case f.AtLeast(62):
			limit = p.Dollars("retirementExclusion62")
		default:
			continue
		}
		earned := taxmath.Min(w.EarnedIncome(f.Owner), p.Dollars("retirementExclusionEarnedIncomeCap"))
		income := w.RetirementIncome(f.Owner) + taxmath.Max0(earned)
		eligible += income
		exclusion += taxmath.Min(income, limit)
	}
	if exclusion > 0 {
		w.Subtract("retirement_exclusion", exclusion, w.Input("retirement_income", eligible))
	}
	w.ComputeAGI()

	w.StandardDeduction()
	w.PersonalExemptions()
	w.ComputeTaxable()
	w.ComputeTax()
	return w.Finish(), nil
}
