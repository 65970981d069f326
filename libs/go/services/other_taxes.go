package services

import (
	"github.com/cyphera/cyphera-tax/libs/go/taxdata"
	"github.com/cyphera/cyphera-tax/libs/go/taxmath"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
)

// ComputeAdditionalMedicare runs Form 8959. Wages use the full threshold;
// self-employment earnings use whatever threshold the wages left over.
// Medicare withholding above the regular rate is credited as a payment.
func ComputeAdditionalMedicare(ret *business.TaxReturn, se business.SETaxResult, fed *taxdata.Federal) business.AdditionalMedicareResult {
	t := fed.AdditionalMedicare
	res := business.AdditionalMedicareResult{Threshold: t.Threshold.For(ret.FilingStatus)}
	var withheld int64
	for _, w := range ret.W2s {
		res.MedicareWages += w.MedicareWages
		withheld += w.MedicareWithheld
	}
	for _, p := range se.People {
		res.SelfEmployment += p.NetEarnings
	}

	wageTax := taxmath.ApplyRate(taxmath.Max0(res.MedicareWages-res.Threshold), t.Rate)
	seThreshold := taxmath.Max0(res.Threshold - res.MedicareWages)
	seTax := taxmath.ApplyRate(taxmath.Max0(res.SelfEmployment-seThreshold), t.Rate)
	res.Tax = wageTax + seTax
	res.WithholdingExcess = taxmath.Max0(withheld - taxmath.ApplyRate(res.MedicareWages, t.RegularRate))
	return res
}

// NetInvestmentIncome totals interest, dividends, net capital gain, and
// positive rental and royalty income.
func NetInvestmentIncome(ret *business.TaxReturn, capitalGain int64, rentalRoyalty int64) int64 {
	var total int64
	for _, i := range ret.Form1099INT {
		total += i.Interest
	}
	for _, d := range ret.Form1099DIV {
		total += d.OrdinaryDividends
	}
	for _, k := range ret.ScheduleK1 {
		total += k.InterestIncome + k.OrdinaryDividends
	}
	return total + taxmath.Max0(capitalGain) + taxmath.Max0(rentalRoyalty)
}

// ComputeNIIT runs Form 8960 on the smaller of net investment income and
// MAGI over the threshold.
func ComputeNIIT(ret *business.TaxReturn, nii, magi int64, fed *taxdata.Federal) business.NIITResult {
	t := fed.NIIT
	res := business.NIITResult{
		NetInvestmentIncome: taxmath.Max0(nii),
		MAGI:                magi,
		Threshold:           t.Threshold.For(ret.FilingStatus),
	}
	res.Tax = taxmath.ApplyRate(taxmath.Min(res.NetInvestmentIncome, taxmath.Max0(magi-res.Threshold)), t.Rate)
	return res
}

// EarlyDistributionPenalty is the additional tax on distributions coded as
// early with no known exception.
func EarlyDistributionPenalty(ret *business.TaxReturn, fed *taxdata.Federal) int64 {
	var base int64
	for _, r := range ret.Form1099R {
		if r.DistributionCode == "1" {
			base += taxmath.Max0(r.TaxableAmount)
		}
	}
	return taxmath.ApplyRate(base, fed.EarlyDistributionRate)
}

// OtherTaxesApplies reports whether any Schedule 2 Part II tax is owed.
func OtherTaxesApplies(o business.OtherTaxesResult) bool {
	return o.Total != 0
}

// ComputeOtherTaxes totals Schedule 2 Part II.
func ComputeOtherTaxes(se business.SETaxResult, med business.AdditionalMedicareResult, niit business.NIITResult, early int64, hsa business.HSAResult) business.OtherTaxesResult {
	res := business.OtherTaxesResult{
		SelfEmploymentTax:        se.TotalTax,
		AdditionalMedicare:       med.Tax,
		NIIT:                     niit.Tax,
		EarlyDistributionPenalty: early,
		HSAPenalty:               hsa.Penalty,
		HSAExcise:                hsa.ExciseTax,
	}
	res.Total = res.SelfEmploymentTax + res.AdditionalMedicare + res.NIIT + res.EarlyDistributionPenalty + res.HSAPenalty + res.HSAExcise
	return res
}
