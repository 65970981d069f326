// Package az computes the Arizona Form 140 and 140NR.
package az

import (
	"github.com/cyphera/cyphera-tax/libs/go/statemodule"
	"github.com/cyphera/cyphera-tax/libs/go/taxmath"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
)

var labels = map[string]string{
	"federal_deduction":   "Federal standard or itemized deduction",
	"deduction_conformed": "Arizona deduction (federal amount)",
	"dependent_credit":    "Dependent tax credit",
}

// Module is Arizona.
type Module struct {
	statemodule.Base
}

// New returns the Arizona module.
func New() *Module {
	return &Module{Base: statemodule.NewBase("AZ", "Arizona", labels,
		statemodule.ReviewSection{Title: "Arizona credits", NodeIDs: []string{"dependent_credit"}},
	)}
}

// Compute runs the return. Arizona taxes its share of income at a flat rate
// and follows the federal deduction.
func (m *Module) Compute(ret *business.TaxReturn, fed *business.Form1040Result, cfg business.StateReturnConfig) (business.StateComputeResult, error) {
	w, err := m.NewWorksheet(ret, fed, cfg)
	if err != nil {
		return business.StateComputeResult{}, err
	}
	w.Method = statemodule.ApportionByRatio
	p := w.Params()
	fs := w.Status()

	w.SubtractSocialSecurity()
	w.SubtractUSObligationInterest()
	agi := w.ComputeAGI()

	if p.Rate("followsFederalStandardDeduction") != 0 {
		federal := w.FromFederal("federal_deduction", fed.Line12)
		w.Deduct("deduction_conformed", federal.Amount, federal)
	} else {
		w.StandardDeduction()
	}
	w.ComputeTaxable()
	w.ComputeTax()

	var credit int64
	for _, d := range ret.Dependents {
		if age, ok := w.DependentAge(d); ok && age < 17 {
			credit += p.Dollars("dependentCreditUnder17")
		} else {
			credit += p.Dollars("dependentCreditOther")
		}
	}
	if over := agi.Amount - p.Dollars("dependentCreditPhaseOutStart", fs); credit > 0 && over > 0 {
		// 5% less for each $1,000 or part of $1,000 over the threshold.
		steps := (over + taxmath.Dollars(1000) - 1) / taxmath.Dollars(1000)
		rate := taxmath.ClampRatio(float64(steps) * p.Rate("dependentCreditPhaseOutStepRate"))
		credit = taxmath.Max0(credit - taxmath.ApplyRate(credit, rate))
	}
	w.Credit("dependent_credit", credit, agi)
	return w.Finish(), nil
}
