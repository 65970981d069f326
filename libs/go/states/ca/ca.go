// Package ca computes the California Form 540 and 540NR.
package ca

import (
	"github.com/cyphera/cyphera-tax/libs/go/statemodule"
	"github.com/cyphera/cyphera-tax/libs/go/taxmath"
	"github.com/cyphera/cyphera-tax/libs/go/traced"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
)

var labels = map[string]string{
	"federal_hsa_deduction":      "Federal health savings account deduction",
	"employer_hsa_contributions": "Employer HSA contributions (W-2 box 12 W)",
	"hsa_addback":                "Health savings account add-back",
	"federal_itemized":           "Federal itemized deductions",
	"itemized_deduction":         "California itemized deductions",
	"mental_health_tax":          "Behavioral health services tax",
	"exemption_credit":           "Personal and dependent exemption credits",
	"renters_credit":             "Nonrefundable renter's credit",
	"eitc":                       "California earned income tax credit",
}

// Module is California.
type Module struct {
	statemodule.Base
}

// New returns the California module.
func New() *Module {
	return &Module{Base: statemodule.NewBase("CA", "California", labels,
		statemodule.ReviewSection{Title: "California adjustments", NodeIDs: []string{"hsa_addback", "itemized_deduction", "mental_health_tax"}},
		statemodule.ReviewSection{Title: "California credits", NodeIDs: []string{"exemption_credit", "renters_credit", "eitc"}},
	)}
}

// Compute runs the return. Part-year and nonresident filers compute tax on
// all income and keep the California share.
func (m *Module) Compute(ret *business.TaxReturn, fed *business.Form1040Result, cfg business.StateReturnConfig) (business.StateComputeResult, error) {
	w, err := m.NewWorksheet(ret, fed, cfg)
	if err != nil {
		return business.StateComputeResult{}, err
	}
	w.Method = statemodule.ApportionTax
	p := w.Params()
	fs := w.Status()

	var addback int64
	var addbackInputs []traced.TracedValue
	if v, ok := w.FederalLine("federal_hsa_deduction", "sched1.line13"); ok {
		addback += v.Amount
		addbackInputs = append(addbackInputs, v)
	}
	var employer int64
	for _, d := range ret.W2s {
		employer += d.Box12Total("W")
	}
	if employer > 0 {
		addback += employer
		addbackInputs = append(addbackInputs, w.Input("employer_hsa_contributions", employer))
	}
	w.Add("hsa_addback", addback, addbackInputs...)

	w.SubtractSocialSecurity()
	w.SubtractUSObligationInterest()
	agi := w.ComputeAGI()

	std := w.Table().StandardDeduction.For(fs)
	itemized, ok := caItemized(w)
	if ok && itemized > std {
		w.Deduct("itemized_deduction", itemized, w.FromFederal("federal_itemized", fed.Line12))
	} else {
		w.StandardDeduction()
	}
	w.ComputeTaxable()

	w.BracketTax()
	base := w.TaxBase()
	over := taxmath.Max0(base.Amount - p.Dollars("mentalHealthThreshold"))
	w.AddTax("mental_health_tax", taxmath.ApplyRate(over, p.Rate("mentalHealthRate")), base)
	w.ComputeTax()

	count := int64(w.Filers() + w.Dependents())
	credits := w.Table().ExemptionCredit.For(fs) + int64(w.Dependents())*w.Table().DependentCredit.Int64()
	credits = taxmath.StepPhaseOut(credits, agi.Amount,
		p.Dollars("exemptionPhaseOutStart", fs),
		p.Dollars("exemptionPhaseOutStep", fs),
		count*p.Dollars("exemptionPhaseOutPerStep"))
	w.Credit("exemption_credit", credits, agi)

	if (cfg.PaidRent || cfg.RentPaid > 0) && w.IsResident() && agi.Amount <= p.Dollars("rentersAGILimit", fs) {
		w.Credit("renters_credit", p.Dollars("rentersCredit", fs), agi)
	}

	if eic, ok := fed.EIC.Get(); ok && eic.EarnedIncome <= p.Dollars("eitcEarnedIncomeLimit") {
		w.StateEITC(w.Table().EITCRate)
	}
	return w.Finish(), nil
}

// caItemized starts from federal Schedule A, drops the capped SALT deduction,
// and allows property taxes without a cap. State income taxes are not
// deductible.
func caItemized(w *statemodule.Worksheet) (int64, bool) {
	sa, ok := w.FederalItemized()
	if !ok {
		return 0, false
	}
	total := sa.Total - sa.SALTDeduction
	if d := w.Return().ItemizedDeductions; d != nil {
		total += d.RealEstateTax + d.PersonalPropertyTax
	}
	return taxmath.Max0(total), true
}
