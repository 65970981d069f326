package services

import (
	"github.com/cyphera/cyphera-tax/libs/go/taxdata"
	"github.com/cyphera/cyphera-tax/libs/go/taxmath"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
)

// ISOAdjustment totals the bargain element of ISO exercises held past year end.
func ISOAdjustment(ret *business.TaxReturn) int64 {
	var total int64
	for _, e := range ret.ISOExercises {
		total += e.BargainElement()
	}
	return total
}

// AMTInput is what Form 6251 needs from the regular computation.
type AMTInput struct {
	// TaxableIncome is AGI less line 14, which may be negative.
	TaxableIncome       int64
	DeductionAddBack    int64
	RegularTax          int64
	QualifiedDividends  int64
	NetPreferentialGain int64
}

// ComputeAMT runs Form 6251. The exemption shrinks by a quarter of AMTI over
// the phase-out start; preferential income keeps its capital gain rates on
// top of the 26%/28% schedule.
func ComputeAMT(ret *business.TaxReturn, in AMTInput, fed *taxdata.Federal) business.AMTResult {
	t := fed.AMT
	fs := ret.FilingStatus
	res := business.AMTResult{
		TaxableIncome: in.TaxableIncome,
		SALTAddBack:   in.DeductionAddBack,
		ISOAdjustment: ISOAdjustment(ret),
		RegularTax:    in.RegularTax,
	}
	res.AMTI = res.TaxableIncome + res.SALTAddBack + res.ISOAdjustment

	exemption := t.Exemption.For(fs)
	res.ExemptionReduction = taxmath.Min(exemption, taxmath.ApplyRate(taxmath.Max0(res.AMTI-t.PhaseOutStart.For(fs)), t.PhaseOutRate))
	res.Exemption = exemption - res.ExemptionReduction
	res.TaxableExcess = taxmath.Max0(res.AMTI - res.Exemption)

	brackets := t.Brackets(fs)
	if taxmath.QualifiesForQDCG(in.QualifiedDividends, in.NetPreferentialGain) {
		ordinary := func(income int64) int64 { return taxmath.BracketTax(income, brackets) }
		ws := taxmath.StackPreferentialIncome(res.TaxableExcess, in.QualifiedDividends, in.NetPreferentialGain, ordinary, fed.PreferentialThresholds(fs))
		res.TentativeMinimumTax = ws.Tax
	} else {
		res.TentativeMinimumTax = taxmath.BracketTax(res.TaxableExcess, brackets)
	}
	res.AMT = taxmath.Max0(res.TentativeMinimumTax - res.RegularTax)
	return res
}
