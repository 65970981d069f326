// Package or computes the Oregon Form OR-40 and OR-40-N/P.
package or

import (
	"github.com/cyphera/cyphera-tax/libs/go/statemodule"
	"github.com/cyphera/cyphera-tax/libs/go/taxmath"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
)

var labels = map[string]string{
	"federal_tax_liability":   "Federal tax liability (Form 1040 line 22)",
	"federal_tax_subtraction": "Federal tax subtraction",
	"exemption_credit":        "Personal exemption credit",
	"eitc":                    "Oregon earned income credit",
}

// Module is Oregon.
type Module struct {
	statemodule.Base
}

// New returns the Oregon module.
func New() *Module {
	return &Module{Base: statemodule.NewBase("OR", "Oregon", labels,
		statemodule.ReviewSection{Title: "Oregon adjustments", NodeIDs: []string{"federal_tax_subtraction", "exemption_credit"}},
	)}
}

// Compute runs the return. Oregon lets filers subtract part of their federal
// income tax, phased out at higher incomes.
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
	if fed.Line22.Amount > 0 {
		liability := w.FromFederal("federal_tax_liability", fed.Line22)
		limit := taxmath.PhaseOut(p.Dollars("federalTaxSubtractionCap", fs), w.FederalAGI().Amount,
			p.Dollars("federalTaxPhaseOutStart", fs), p.Dollars("federalTaxPhaseOutWidth", fs))
		w.Subtract("federal_tax_subtraction", taxmath.Min(liability.Amount, limit), liability, w.FederalAGI())
	}
	agi := w.ComputeAGI()

	w.StandardDeduction()
	w.ComputeTaxable()
	w.ComputeTax()

	if w.FederalAGI().Amount <= p.Dollars("exemptionCreditAGILimit", fs) {
		credit := w.Table().ExemptionCredit.For(fs) + int64(w.Dependents())*w.Table().DependentCredit.Int64()
		w.Credit("exemption_credit", credit, agi)
	}
	w.StateEITC(w.Table().EITCRate)
	return w.Finish(), nil
}
