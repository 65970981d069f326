// Package il computes the Illinois IL-1040.
package il

import (
	"github.com/cyphera/cyphera-tax/libs/go/statemodule"
	"github.com/cyphera/cyphera-tax/libs/go/taxmath"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
)

var labels = map[string]string{
	"retirement_income":    "Retirement income",
	"retirement_exclusion": "Retirement income subtraction",
	"property_tax_paid":    "Property tax paid on principal residence",
	"property_tax_credit":  "Property tax credit",
	"eitc":                 "Illinois earned income credit",
}

// Module is Illinois.
type Module struct {
	statemodule.Base
}

// New returns the Illinois module.
func New() *Module {
	return &Module{Base: statemodule.NewBase("IL", "Illinois", labels,
		statemodule.ReviewSection{Title: "Illinois credits", NodeIDs: []string{"property_tax_credit", "eitc"}},
	)}
}

// Compute runs the return. Illinois does not tax retirement income or Social
// Security and has no standard deduction.
func (m *Module) Compute(ret *business.TaxReturn, fed *business.Form1040Result, cfg business.StateReturnConfig) (business.StateComputeResult, error) {
	w, err := m.NewWorksheet(ret, fed, cfg)
	if err != nil {
		return business.StateComputeResult{}, err
	}
	w.Method = statemodule.ApportionByRatio
	p := w.Params()

	w.SubtractSocialSecurity()
	var retirement int64
	for _, f := range w.People() {
		retirement += w.RetirementIncome(f.Owner)
	}
	if retirement > 0 {
		w.Subtract("retirement_exclusion", retirement, w.Input("retirement_income", retirement))
	}
	w.SubtractUSObligationInterest()
	agi := w.ComputeAGI()

	// Exemptions are lost entirely above the income limit.
	if agi.Amount <= p.Dollars("exemptionAGILimit", w.Status()) {
		w.PersonalExemptions()
	}
	w.ComputeTaxable()
	w.ComputeTax()

	if d := ret.ItemizedDeductions; d != nil && d.RealEstateTax > 0 && w.IsResident() {
		paid := w.Input("property_tax_paid", d.RealEstateTax)
		w.Credit("property_tax_credit", taxmath.ApplyRate(paid.Amount, p.Rate("propertyTaxCreditRate")), paid)
	}
	w.StateEITC(w.Table().EITCRate)
	return w.Finish(), nil
}
