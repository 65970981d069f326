// Package co computes the Colorado DR 0104.
package co

import (
	"github.com/cyphera/cyphera-tax/libs/go/statemodule"
	"github.com/cyphera/cyphera-tax/libs/go/taxmath"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
)

var labels = map[string]string{
	"federal_deductions":  "Federal deductions (Form 1040 line 14)",
	"deduction_conformed": "Federal deductions",
	"pension_subtraction": "Pension and annuity subtraction",
	"retirement_income":   "Pension, annuity and taxable Social Security income",
	"eitc":                "Colorado earned income tax credit",
}

// Module is Colorado.
type Module struct {
	statemodule.Base
}

// New returns the Colorado module.
func New() *Module {
	return &Module{Base: statemodule.NewBase("CO", "Colorado", labels,
		statemodule.ReviewSection{Title: "Colorado subtractions", NodeIDs: []string{"pension_subtraction"}},
	)}
}

// Compute runs the return. Colorado starts from federal taxable income, here
// reached by deducting the federal line 14 amount from state AGI.
func (m *Module) Compute(ret *business.TaxReturn, fed *business.Form1040Result, cfg business.StateReturnConfig) (business.StateComputeResult, error) {
	w, err := m.NewWorksheet(ret, fed, cfg)
	if err != nil {
		return business.StateComputeResult{}, err
	}
	w.Method = statemodule.ApportionByRatio
	p := w.Params()

	// Taxable Social Security sits inside the pension subtraction rather than
	// being removed separately.
	var subtraction int64
	for _, f := range w.People() {
		var limit int64
		switch {
		case f.AtLeast(65):
			limit = p.Dollars("retirementSubtraction65")
		case f.AtLeast(55):
			limit = p.Dollars("retirementSubtraction55")
		default:
			continue
		}
		income := w.RetirementIncome(f.Owner) + w.TaxableSocialSecurity(f.Owner)
		subtraction += taxmath.Min(income, limit)
	}
	if subtraction > 0 {
		w.Subtract("pension_subtraction", subtraction, w.Input("retirement_income", retirementTotal(w)))
	}
	w.SubtractUSObligationInterest()
	w.ComputeAGI()

	federal := w.FromFederal("federal_deductions", fed.Line14)
	w.Deduct("deduction_conformed", federal.Amount, federal)
	w.ComputeTaxable()
	w.ComputeTax()

	w.StateEITC(w.Table().EITCRate)
	return w.Finish(), nil
}

func retirementTotal(w *statemodule.Worksheet) int64 {
	var total int64
	for _, f := range w.People() {
		total += w.RetirementIncome(f.Owner) + w.TaxableSocialSecurity(f.Owner)
	}
	return total
}
