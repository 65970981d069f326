// Package ny computes the New York IT-201 and IT-203, including New York City
// resident tax.
package ny

import (
	"strings"

	"github.com/cyphera/cyphera-tax/libs/go/statemodule"
	"github.com/cyphera/cyphera-tax/libs/go/taxmath"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
)

// cityLocality is the locality code for New York City residents.
const cityLocality = "NYC"

var labels = map[string]string{
	"retirement_income": "Pension and annuity income of filers 59 1/2 and over",
	"pension_exclusion": "Pension and annuity income exclusion",
	"nyc_taxable":       "New York City taxable income",
	"nyc_tax":           "New York City resident tax",
	"eitc":              "New York State earned income credit",
}

// Module is New York.
type Module struct {
	statemodule.Base
}

// New returns the New York module.
func New() *Module {
	return &Module{Base: statemodule.NewBase("NY", "New York", labels,
		statemodule.ReviewSection{Title: "New York City", NodeIDs: []string{"nyc_taxable", "nyc_tax"}},
	)}
}

// Compute runs the return. Nonresidents and part-year residents compute tax
// on all income and keep the New York share. City tax applies to the part of
// the year spent as a city resident.
func (m *Module) Compute(ret *business.TaxReturn, fed *business.Form1040Result, cfg business.StateReturnConfig) (business.StateComputeResult, error) {
	w, err := m.NewWorksheet(ret, fed, cfg)
	if err != nil {
		return business.StateComputeResult{}, err
	}
	w.Method = statemodule.ApportionTax
	p := w.Params()

	w.SubtractSocialSecurity()
	w.SubtractUSObligationInterest()

	var exclusion, eligible int64
	halfYearMonths := int(p.Rate("pensionExclusionAge"))*12 + 6
	for _, f := range w.People() {
		if !taxmath.ReachesAgeBy(f.Person.DateOfBirth, ret.TaxYear, halfYearMonths) {
			continue
		}
		income := w.RetirementIncome(f.Owner)
		eligible += income
		exclusion += taxmath.Min(income, p.Dollars("pensionExclusion"))
	}
	if exclusion > 0 {
		w.Subtract("pension_exclusion", exclusion, w.Input("retirement_income", eligible))
	}
	w.ComputeAGI()

	w.StandardDeduction()
	w.PersonalExemptions()
	taxable := w.ComputeTaxable()
	w.ComputeTax()

	if strings.EqualFold(cfg.Locality, cityLocality) && w.IsResident() {
		if city, ok := w.Table().Locality(cityLocality); ok {
			base := taxable
			if w.Residency() == business.ResidencyPartYear {
				base = w.Compute("nyc_taxable", taxmath.ApplyRate(taxable.Amount, w.DayRatio()), taxable)
			}
			w.LocalTax("nyc_tax", taxmath.BracketTax(base.Amount, city.Brackets.For(w.Status())), base)
		}
	}

	w.StateEITC(w.Table().EITCRate)
	return w.Finish(), nil
}
