package services

import (
	"github.com/cyphera/cyphera-tax/libs/go/taxdata"
	"github.com/cyphera/cyphera-tax/libs/go/taxmath"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
)

// additionalStandardCount counts the age 65 and blindness boxes checked for
// the taxpayer and, on a married return with a spouse listed, the spouse.
func additionalStandardCount(ret *business.TaxReturn, fed *taxdata.Federal) int64 {
	var n int64
	count := func(p business.Person) {
		if ageAtLeast(p.DateOfBirth, ret.TaxYear, fed.SeniorDeduction.MinAge) {
			n++
		}
		if p.IsBlind {
			n++
		}
	}
	count(ret.Taxpayer)
	if ret.Spouse != nil && ret.FilingStatus.IsMarried() {
		count(*ret.Spouse)
	}
	return n
}

// StandardDeduction returns the basic standard deduction plus the age and
// blindness add-ons. A filer who can be claimed as someone else's dependent
// is limited to the greater of the minimum and earned income plus the add-on.
func StandardDeduction(ret *business.TaxReturn, earnedIncome int64, fed *taxdata.Federal) int64 {
	base := fed.StandardDeduction.For(ret.FilingStatus)
	if ret.Taxpayer.CanBeClaimedAsDependent {
		dep := fed.DependentStandardDeduction
		limited := taxmath.Max(int64(dep.Minimum), taxmath.Max0(earnedIncome)+int64(dep.EarnedIncomeAddOn))
		base = taxmath.Min(base, limited)
	}
	return base + additionalStandardCount(ret, fed)*fed.AdditionalStandardDeduction.For(ret.FilingStatus)
}

// ComputeScheduleA totals itemized deductions. Medical expenses count above
// the AGI floor; state and local taxes use the greater of income or sales
// tax and are capped, with the cap phased down toward the floor for high
// incomes; charitable gifts are limited by percentages of AGI.
func ComputeScheduleA(ret *business.TaxReturn, agi int64, fed *taxdata.Federal) business.ScheduleAResult {
	var res business.ScheduleAResult
	d := ret.ItemizedDeductions
	if d == nil {
		return res
	}
	t := fed.ScheduleA
	fs := ret.FilingStatus
	base := taxmath.Max0(agi)

	res.MedicalExpenses = taxmath.Max0(d.MedicalExpenses)
	res.MedicalFloor = taxmath.ApplyRate(base, t.MedicalFloorRate)
	res.MedicalDeduction = taxmath.Max0(res.MedicalExpenses - res.MedicalFloor)

	res.SALTPaid = taxmath.Max(d.StateLocalIncomeTax, d.StateLocalSalesTax) + d.RealEstateTax + d.PersonalPropertyTax
	res.SALTCap = t.SALTCap.For(fs)
	if over := agi - t.SALTPhaseDownStart.For(fs); over > 0 {
		res.SALTCap = taxmath.Max(t.SALTFloor.For(fs), res.SALTCap-taxmath.ApplyRate(over, t.SALTPhaseDownRate))
	}
	res.SALTDeduction = taxmath.Min(taxmath.Max0(res.SALTPaid), res.SALTCap)

	res.InterestDeduction = taxmath.Max0(d.MortgageInterest + d.MortgagePoints + d.InvestmentInterest)

	res.CharitableCash = taxmath.Min(taxmath.Max0(d.CharitableCash), taxmath.ApplyRate(base, t.CharityCashLimit))
	res.CharitableNonCash = taxmath.Min(taxmath.Max0(d.CharitableNonCash), taxmath.ApplyRate(base, t.CharityNonCashLimit))
	res.CharitableDeduction = taxmath.Min(res.CharitableCash+res.CharitableNonCash, taxmath.ApplyRate(base, t.CharityCashLimit))

	res.CasualtyLoss = taxmath.Max0(d.CasualtyLoss)
	res.Other = taxmath.Max0(d.Other)
	res.Total = res.MedicalDeduction + res.SALTDeduction + res.InterestDeduction +
		res.CharitableDeduction + res.CasualtyLoss + res.Other
	return res
}

// ComputeSeniorDeduction gives each filer 65 or older the additional
// deduction, reduced by a percentage of MAGI over the threshold. Married
// filing separately is not eligible.
func ComputeSeniorDeduction(ret *business.TaxReturn, magi int64, fed *taxdata.Federal) business.SeniorDeductionResult {
	t := fed.SeniorDeduction
	res := business.SeniorDeductionResult{MAGI: magi}
	if ret.FilingStatus == business.FilingMarriedSeparate {
		return res
	}
	if ageAtLeast(ret.Taxpayer.DateOfBirth, ret.TaxYear, t.MinAge) {
		res.EligibleFilers++
	}
	if hasSpouse(ret) && ageAtLeast(ret.Spouse.DateOfBirth, ret.TaxYear, t.MinAge) {
		res.EligibleFilers++
	}
	if res.EligibleFilers == 0 {
		return res
	}
	reduction := taxmath.ApplyRate(taxmath.Max0(magi-t.PhaseOutStart.For(ret.FilingStatus)), t.PhaseOutRate)
	res.Deduction = int64(res.EligibleFilers) * taxmath.Max0(int64(t.PerFiler)-reduction)
	return res
}

// QBIApplies reports whether any qualified business income or REIT
// dividends exist.
func QBIApplies(ret *business.TaxReturn) bool {
	if ScheduleCApplies(ret) {
		return true
	}
	for _, k := range ret.ScheduleK1 {
		if k.QualifiedBusinessIncome != 0 {
			return true
		}
	}
	for _, d := range ret.Form1099DIV {
		if d.Section199ADividends != 0 {
			return true
		}
	}
	return false
}

// ComputeQBI works out the qualified business income deduction.
// taxableBeforeQBI is AGI less the line 12 deduction and senior deduction;
// preferential is qualified dividends plus net capital gain. Above the
// threshold the business component phases out, since no W-2 wage or
// property basis data is collected for the wage limitation.
func ComputeQBI(ret *business.TaxReturn, c business.ScheduleCResult, seHalf, taxableBeforeQBI, preferential int64, fed *taxdata.Federal) business.QBIResult {
	t := fed.QBI
	var res business.QBIResult

	qbi := c.NetProfit - seHalf
	for _, k := range ret.ScheduleK1 {
		qbi += k.QualifiedBusinessIncome
	}
	res.QualifiedBusinessIncome = taxmath.Max0(qbi)
	for _, d := range ret.Form1099DIV {
		res.REITDividends += d.Section199ADividends
	}
	res.REITDividends = taxmath.Max0(res.REITDividends)

	component := taxmath.ApplyRate(res.QualifiedBusinessIncome, t.Rate)
	threshold := t.Threshold.For(ret.FilingStatus)
	if width := t.PhaseInRange.For(ret.FilingStatus); taxableBeforeQBI > threshold && width > 0 {
		res.PhaseInRatio = taxmath.ClampRatio(float64(taxableBeforeQBI-threshold) / float64(width))
		component = taxmath.Round(float64(component) * (1 - res.PhaseInRatio))
	}
	res.TentativeDeduction = component + taxmath.ApplyRate(res.REITDividends, t.Rate)
	res.IncomeLimit = taxmath.ApplyRate(taxmath.Max0(taxableBeforeQBI-preferential), t.Rate)
	res.Deduction = taxmath.Min(res.TentativeDeduction, res.IncomeLimit)
	return res
}
