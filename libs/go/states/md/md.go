// Package md computes the Maryland Form 502 and 505 with county tax.
package md

import (
	"github.com/cyphera/cyphera-tax/libs/go/statemodule"
	"github.com/cyphera/cyphera-tax/libs/go/taxmath"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
)

var labels = map[string]string{
	"county_tax":         "County income tax",
	"nonresident_tax":    "Special nonresident tax",
	"local_taxable_base": "Taxable income subject to local tax",
	"eitc":               "Maryland earned income credit",
}

// Module is Maryland.
type Module struct {
	statemodule.Base
}

// New returns the Maryland module.
func New() *Module {
	return &Module{Base: statemodule.NewBase("MD", "Maryland", labels,
		statemodule.ReviewSection{Title: "Local tax", NodeIDs: []string{"county_tax", "nonresident_tax"}},
	)}
}

// Compute runs the return. Residents pay their county's rate on taxable
// income; nonresidents pay the special nonresident rate on the Maryland share.
func (m *Module) Compute(ret *business.TaxReturn, fed *business.Form1040Result, cfg business.StateReturnConfig) (business.StateComputeResult, error) {
	w, err := m.NewWorksheet(ret, fed, cfg)
	if err != nil {
		return business.StateComputeResult{}, err
	}
	w.Method = statemodule.ApportionTax

	w.SubtractSocialSecurity()
	w.SubtractUSObligationInterest()
	w.ComputeAGI()

	w.StandardDeduction()
	w.PersonalExemptions()
	taxable := w.ComputeTaxable()
	w.ComputeTax()

	fraction := w.IncomeFraction()
	if fraction > 0 {
		base := taxable
		if fraction < 1 {
			base = w.Compute("local_taxable_base", taxmath.ApplyRate(taxable.Amount, fraction), taxable)
		}
		if w.Residency() == business.ResidencyNonresident {
			w.LocalTax("nonresident_tax", taxmath.ApplyRate(base.Amount, w.Params().Rate("nonresidentLocalRate")), base)
		} else if county, ok := w.Table().Locality(cfg.Locality); ok {
			w.LocalTax("county_tax", taxmath.ApplyRate(base.Amount, county.Rate), base)
		}
	}

	w.StateEITC(w.Table().EITCRate)
	return w.Finish(), nil
}
