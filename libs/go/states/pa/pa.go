// Package pa computes the Pennsylvania PA-40.
package pa

import (
	"github.com/cyphera/cyphera-tax/libs/go/statemodule"
	"github.com/cyphera/cyphera-tax/libs/go/taxmath"
	"github.com/cyphera/cyphera-tax/libs/go/traced"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
)

var labels = map[string]string{
	"class_compensation": "Compensation",
	"class_interest":     "Interest",
	"class_dividends":    "Dividends and capital gains distributions",
	"class_business":     "Net income or loss from business",
	"class_gains":        "Net gain or loss from the sale of property",
	"class_rents":        "Net income or loss from rents and royalties",
	"class_total":        "Total Pennsylvania taxable income",
	"class_increase":     "Pennsylvania income not in federal AGI",
	"class_decrease":     "Federal AGI not taxed by Pennsylvania",
}

// Module is Pennsylvania.
type Module struct {
	statemodule.Base
}

// New returns the Pennsylvania module.
func New() *Module {
	return &Module{Base: statemodule.NewBase("PA", "Pennsylvania", labels,
		statemodule.ReviewSection{Title: "Income classes", NodeIDs: []string{
			"class_compensation", "class_interest", "class_dividends",
			"class_business", "class_gains", "class_rents", "class_total",
		}},
	)}
}

// Compute runs the return. Pennsylvania taxes eight classes of income at a
// flat rate. A loss in one class cannot reduce income in another, and
// retirement income, Social Security and unemployment are not taxed.
func (m *Module) Compute(ret *business.TaxReturn, fed *business.Form1040Result, cfg business.StateReturnConfig) (business.StateComputeResult, error) {
	w, err := m.NewWorksheet(ret, fed, cfg)
	if err != nil {
		return business.StateComputeResult{}, err
	}
	w.Method = statemodule.ApportionByRatio

	classes := []traced.TracedValue{
		w.Input("class_compensation", compensation(ret)),
		w.Input("class_interest", taxmath.Max0(interest(ret))),
		w.Input("class_dividends", taxmath.Max0(dividends(ret))),
		w.Input("class_business", taxmath.Max0(businessIncome(ret, fed))),
		w.Input("class_gains", taxmath.Max0(gains(fed))),
		w.Input("class_rents", taxmath.Max0(rents(ret))),
	}
	var sum int64
	for _, c := range classes {
		sum += c.Amount
	}
	total := w.Compute("class_total", sum, classes...)

	diff := total.Amount - w.FederalAGI().Amount
	if diff > 0 {
		w.Add("class_increase", diff, total, w.FederalAGI())
	} else {
		w.Subtract("class_decrease", -diff, total, w.FederalAGI())
	}
	w.ComputeAGI()
	w.ComputeTaxable()
	w.ComputeTax()
	return w.Finish(), nil
}

func compensation(ret *business.TaxReturn) int64 {
	var total int64
	for _, d := range ret.W2s {
		total += d.Wages
	}
	return total
}

// interest excludes federal obligation interest.
func interest(ret *business.TaxReturn) int64 {
	var total int64
	for _, i := range ret.Form1099INT {
		total += i.Interest - i.USTreasuryInterest
	}
	for _, k := range ret.ScheduleK1 {
		total += k.InterestIncome
	}
	return total
}

func dividends(ret *business.TaxReturn) int64 {
	var total int64
	for _, d := range ret.Form1099DIV {
		total += d.OrdinaryDividends + d.CapitalGainDistributions
	}
	for _, k := range ret.ScheduleK1 {
		total += k.OrdinaryDividends
	}
	return total
}

func businessIncome(ret *business.TaxReturn, fed *business.Form1040Result) int64 {
	total := fed.ScheduleC.OrZero().NetProfit
	for _, k := range ret.ScheduleK1 {
		total += k.OrdinaryIncome
	}
	return total
}

// gains uses current-year sales only; the federal capital loss limit and
// carryovers do not apply. Capital gain distributions are dividends here.
func gains(fed *business.Form1040Result) int64 {
	sd, ok := fed.ScheduleD.Get()
	if !ok {
		return 0
	}
	return sd.ShortTermGain + sd.LongTermGain - sd.CapitalGainDistributions
}

func rents(ret *business.TaxReturn) int64 {
	var total int64
	for _, p := range ret.ScheduleE {
		total += p.Rents - p.Expenses - p.Depreciation
	}
	for _, m := range ret.Form1099MISC {
		total += m.Rents + m.Royalties
	}
	for _, k := range ret.ScheduleK1 {
		total += k.RentalIncome
	}
	return total
}
