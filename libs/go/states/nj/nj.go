// Package nj computes the New Jersey NJ-1040 and NJ-1040NR.
package nj

import (
	"github.com/cyphera/cyphera-tax/libs/go/statemodule"
	"github.com/cyphera/cyphera-tax/libs/go/taxmath"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
)

var labels = map[string]string{
	"retirement_income":  "Pension and IRA income of filers 62 and over",
	"pension_exclusion":  "Pension exclusion",
	"senior_exemption":   "Exemption for filers 65 and over",
	"gross_income_limit": "Gross income for the pension exclusion test",
	"eitc":               "New Jersey earned income tax credit",
}

// Module is New Jersey.
type Module struct {
	statemodule.Base
}

// New returns the New Jersey module.
func New() *Module {
	return &Module{Base: statemodule.NewBase("NJ", "New Jersey", labels,
		statemodule.ReviewSection{Title: "New Jersey exclusions", NodeIDs: []string{"pension_exclusion", "senior_exemption"}},
	)}
}

// Compute runs the return. New Jersey has no standard deduction; filers 62
// and over with gross income under the limit exclude pension income.
func (m *Module) Compute(ret *business.TaxReturn, fed *business.Form1040Result, cfg business.StateReturnConfig) (business.StateComputeResult, error) {
	w, err := m.NewWorksheet(ret, fed, cfg)
	if err != nil {
		return business.StateComputeResult{}, err
	}
	w.Method = statemodule.ApportionTax
	p := w.Params()
	fs := w.Status()

	w.SubtractSocialSecurity()
	w.SubtractUSObligationInterest()

	gross := w.FederalAGI().Amount - fed.Line6b.Amount
	if gross <= p.Dollars("pensionExclusionIncomeLimit") {
		var eligible int64
		for _, f := range w.People() {
			if f.AtLeast(62) {
				eligible += w.RetirementIncome(f.Owner)
			}
		}
		if eligible > 0 {
			income := w.Input("retirement_income", eligible)
			test := w.Compute("gross_income_limit", gross, w.FederalAGI())
			w.Subtract("pension_exclusion", taxmath.Min(eligible, p.Dollars("pensionExclusion", fs)), income, test)
		}
	}
	agi := w.ComputeAGI()

	w.PersonalExemptions()
	var seniors int64
	for _, f := range w.People() {
		if f.AtLeast(65) {
			seniors++
		}
	}
	w.Exempt("senior_exemption", seniors*p.Dollars("seniorExemption"), agi)
	w.ComputeTaxable()
	w.ComputeTax()

	w.StateEITC(w.Table().EITCRate)
	return w.Finish(), nil
}
