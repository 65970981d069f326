// Package ma computes the Massachusetts Form 1 and Form 1-NR/PY.
package ma

import (
	"github.com/cyphera/cyphera-tax/libs/go/statemodule"
	"github.com/cyphera/cyphera-tax/libs/go/taxmath"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
)

var labels = map[string]string{
	"rent_paid":           "Rent paid on principal residence",
	"rent_deduction":      "Rental deduction",
	"federal_short_term":  "Net short-term capital gain (Schedule D)",
	"short_term_gain":     "Short-term gain taxed at the higher rate",
	"part_b_tax":          "Tax on Part B income",
	"short_term_gain_tax": "Tax on short-term capital gains",
	"surtax":              "4% surtax on income over the threshold",
	"eitc":                "Massachusetts earned income credit",
}

// Module is Massachusetts.
type Module struct {
	statemodule.Base
}

// New returns the Massachusetts module.
func New() *Module {
	return &Module{Base: statemodule.NewBase("MA", "Massachusetts", labels,
		statemodule.ReviewSection{Title: "Massachusetts tax", NodeIDs: []string{"part_b_tax", "short_term_gain_tax", "surtax"}},
	)}
}

// Compute runs the return. Short-term gains are taxed at their own rate, and
// income above the surtax threshold pays the additional 4%.
func (m *Module) Compute(ret *business.TaxReturn, fed *business.Form1040Result, cfg business.StateReturnConfig) (business.StateComputeResult, error) {
	w, err := m.NewWorksheet(ret, fed, cfg)
	if err != nil {
		return business.StateComputeResult{}, err
	}
	w.Method = statemodule.ApportionByRatio
	p := w.Params()

	w.SubtractSocialSecurity()
	w.SubtractUSObligationInterest()
	w.ComputeAGI()

	if cfg.RentPaid > 0 && w.IsResident() {
		rent := w.Input("rent_paid", cfg.RentPaid)
		w.Deduct("rent_deduction", taxmath.Min(taxmath.ApplyRate(rent.Amount, p.Rate("rentDeductionRate")), p.Dollars("rentDeductionCap")), rent)
	}
	w.PersonalExemptions()
	w.ComputeTaxable()

	base := w.TaxBase()
	var shortTerm int64
	if sd, ok := fed.ScheduleD.Get(); ok && sd.NetShortTerm > 0 {
		shortTerm = taxmath.Min(taxmath.ApplyRate(sd.NetShortTerm, w.IncomeFraction()), base.Amount)
	}
	ordinary := base.Amount - shortTerm
	w.AddTax("part_b_tax", taxmath.BracketTax(ordinary, w.Table().Brackets.For(w.Status())), base)
	if shortTerm > 0 {
		st := w.Compute("short_term_gain", shortTerm, w.Input("federal_short_term", fed.ScheduleD.OrZero().NetShortTerm), base)
		w.AddTax("short_term_gain_tax", taxmath.ApplyRate(st.Amount, p.Rate("shortTermGainRate")), st)
	}
	if over := base.Amount - p.Dollars("surtaxThreshold"); over > 0 {
		w.AddTax("surtax", taxmath.ApplyRate(over, p.Rate("surtaxRate")), base)
	}
	w.ComputeTax()

	w.StateEITC(w.Table().EITCRate)
	return w.Finish(), nil
}
