// Package oh computes the Ohio IT 1040.
package oh

import (
	"github.com/cyphera/cyphera-tax/libs/go/statemodule"
	"github.com/cyphera/cyphera-tax/libs/go/taxmath"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
)

var labels = map[string]string{
	"personal_exemption": "Personal and dependent exemptions",
	"personal_credit":    "Personal exemption credit",
}

// Module is Ohio.
type Module struct {
	statemodule.Base
}

// New returns the Ohio module.
func New() *Module {
	return &Module{Base: statemodule.NewBase("OH", "Ohio", labels,
		statemodule.ReviewSection{Title: "Ohio credits", NodeIDs: []string{"personal_credit"}},
	)}
}

// Compute runs the return. The exemption per person steps down as income
// rises and disappears above the top tier.
func (m *Module) Compute(ret *business.TaxReturn, fed *business.Form1040Result, cfg business.StateReturnConfig) (business.StateComputeResult, error) {
	w, err := m.NewWorksheet(ret, fed, cfg)
	if err != nil {
		return business.StateComputeResult{}, err
	}
	w.Method = statemodule.ApportionTax
	p := w.Params()

	w.SubtractSocialSecurity()
	w.SubtractUSObligationInterest()
	agi := w.ComputeAGI()

	people := int64(w.Filers() + w.Dependents())
	w.Exempt("personal_exemption", people*exemptionFor(p.Dollars, agi.Amount), agi)
	w.ComputeTaxable()
	w.ComputeTax()

	if agi.Amount < p.Dollars("personalCreditIncomeLimit") {
		w.Credit("personal_credit", people*p.Dollars("personalCredit"), agi)
	}
	return w.Finish(), nil
}

// exemptionFor returns the per-person exemption for an income level.
func exemptionFor(dollars func(string, ...business.FilingStatus) int64, income int64) int64 {
	tiers := []struct{ limit, amount string }{
		{"exemptionTier1Limit", "exemptionTier1"},
		{"exemptionTier2Limit", "exemptionTier2"},
		{"exemptionTier3Limit", "exemptionTier3"},
	}
	for _, t := range tiers {
		if income <= dollars(t.limit) {
			return taxmath.Max0(dollars(t.amount))
		}
	}
	return 0
}
