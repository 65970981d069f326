// Package va computes the Virginia Form 760 and 763.
package va

import (
	"github.com/cyphera/cyphera-tax/libs/go/statemodule"
	"github.com/cyphera/cyphera-tax/libs/go/taxmath"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
)

var labels = map[string]string{
	"age_deduction": "Age deduction",
	"eitc":          "Virginia earned income tax credit",
}

// Module is Virginia.
type Module struct {
	statemodule.Base
}

// New returns the Virginia module.
func New() *Module {
	return &Module{Base: statemodule.NewBase("VA", "Virginia", labels,
		statemodule.ReviewSection{Title: "Virginia subtractions", NodeIDs: []string{"age_deduction"}},
	)}
}

// Compute runs the return. Filers 65 and over take the age deduction, reduced
// dollar for dollar by adjusted federal AGI over the limit.
func (m *Module) Compute(ret *business.TaxReturn, fed *business.Form1040Result, cfg business.StateReturnConfig) (business.StateComputeResult, error) {
	w, err := m.NewWorksheet(ret, fed, cfg)
	if err != nil {
		return business.StateComputeResult{}, err
	}
	w.Method = statemodule.ApportionTax
	p := w.Params()

	w.SubtractSocialSecurity()
	w.SubtractUSObligationInterest()

	var seniors int64
	for _, f := range w.People() {
		if f.AtLeast(65) {
			seniors++
		}
	}
	if seniors > 0 {
		adjusted := w.FederalAGI().Amount - fed.Line6b.Amount
		over := taxmath.Max0(adjusted - p.Dollars("ageDeductionAGILimit", w.Status()))
		w.Subtract("age_deduction", taxmath.Max0(seniors*p.Dollars("ageDeduction")-over), w.FederalAGI())
	}
	w.ComputeAGI()

	w.StandardDeduction()
	w.PersonalExemptions()
	w.ComputeTaxable()
	w.ComputeTax()

	w.StateEITC(w.Table().EITCRate)
	return w.Finish(), nil
}
