package services

import (
	"github.com/cyphera/cyphera-tax/libs/go/taxdata"
	"github.com/cyphera/cyphera-tax/libs/go/taxmath"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
)

// HSAApplies reports whether Form 8889 is needed.
func HSAApplies(ret *business.TaxReturn) bool {
	if ret.HSA != nil {
		return true
	}
	for _, w := range ret.W2s {
		if w.Box12Total("W") > 0 {
			return true
		}
	}
	return false
}

// ComputeHSA works out the HSA deduction, the taxable part of distributions,
// the additional 20% tax on them, and the 6% excise on excess contributions.
// Employer contributions (W-2 box 12 code W) count against the limit but are
// not deductible.
func ComputeHSA(ret *business.TaxReturn, fed *taxdata.Federal) business.HSAResult {
	t := fed.HSA
	var res business.HSAResult
	for _, w := range ret.W2s {
		res.EmployerContributions += w.Box12Total("W")
	}

	coverage := business.HSASelfOnly
	if ret.HSA != nil {
		coverage = ret.HSA.Coverage
		res.PersonalContributions = taxmath.Max0(ret.HSA.Contributions)
		res.Distributions = taxmath.Max0(ret.HSA.Distributions)
	}

	res.ContributionLimit = int64(t.SelfOnlyLimit)
	if coverage == business.HSAFamily {
		res.ContributionLimit = int64(t.FamilyLimit)
	}
	if ageAtLeast(ret.Taxpayer.DateOfBirth, ret.TaxYear, t.CatchUpAge) {
		res.ContributionLimit += int64(t.CatchUp)
	}

	room := taxmath.Max0(res.ContributionLimit - res.EmployerContributions)
	res.Deduction = taxmath.Min(res.PersonalContributions, room)
	res.ExcessContributions = taxmath.Max0(res.PersonalContributions + res.EmployerContributions - res.ContributionLimit)
	res.ExciseTax = taxmath.ApplyRate(res.ExcessContributions, t.ExciseRate)

	if ret.HSA != nil {
		res.TaxableDistributions = taxmath.Max0(res.Distributions - ret.HSA.QualifiedExpenses)
	}
	exempt := ret.Taxpayer.IsDisabled || ageAtLeast(ret.Taxpayer.DateOfBirth, ret.TaxYear, t.PenaltyExemptAge)
	if !exempt {
		res.Penalty = taxmath.ApplyRate(res.TaxableDistributions, t.PenaltyRate)
	}
	return res
}

// ComputeIRADeduction applies the traditional IRA deduction phase-out. MAGI is
// total income (line 9). A person covered by a workplace plan uses the covered
// range; a person who is not covered but whose spouse is uses the spousal
// range; otherwise the full contribution up to the limit is deductible.
func ComputeIRADeduction(ret *business.TaxReturn, magi int64, fed *taxdata.Federal) business.IRADeductionResult {
	t := fed.IRA
	var res business.IRADeductionResult
	if ret.IRAContributions == nil {
		return res
	}
	res.ContributionLimit = int64(t.ContributionLimit)

	allowed := func(owner business.Owner, person *business.Person, contribution int64) int64 {
		if person == nil || contribution <= 0 {
			return 0
		}
		limit := int64(t.ContributionLimit)
		if ageAtLeast(person.DateOfBirth, ret.TaxYear, t.CatchUpAge) {
			limit += int64(t.CatchUp)
		}
		contribution = taxmath.Min(contribution, limit)

		other := business.OwnerSpouse
		if owner == business.OwnerSpouse {
			other = business.OwnerTaxpayer
		}
		var rng taxdata.PhaseRange
		var ok bool
		switch {
		case coveredByRetirementPlan(ret, owner):
			rng, ok = t.CoveredPhaseOut.For(ret.FilingStatus)
		case ret.FilingStatus.IsMarried() && coveredByRetirementPlan(ret, other):
			rng, ok = t.SpouseCoveredPhaseOut.For(ret.FilingStatus)
		}
		if !ok {
			return contribution
		}
		return taxmath.Min(contribution, iraPhasedLimit(limit, magi, rng, t))
	}

	res.TaxpayerAllowed = allowed(business.OwnerTaxpayer, &ret.Taxpayer, ret.IRAContributions.TaxpayerTraditional)
	if hasSpouse(ret) {
		res.SpouseAllowed = allowed(business.OwnerSpouse, ret.Spouse, ret.IRAContributions.SpouseTraditional)
	}
	res.Deduction = res.TaxpayerAllowed + res.SpouseAllowed
	return res
}

// iraPhasedLimit reduces the limit proportionally across the range, rounds
// up to the next $10 and keeps a $200 minimum while any deduction remains.
func iraPhasedLimit(limit, magi int64, rng taxdata.PhaseRange, t taxdata.IRATable) int64 {
	start, width := int64(rng.Start), int64(rng.Width)
	if magi <= start {
		return limit
	}
	if width <= 0 || magi >= start+width {
		return 0
	}
	reduced := limit - taxmath.Ratio(limit, magi-start, width)
	reduced = taxmath.CeilToStep(reduced, int64(t.RoundingStep))
	if reduced > 0 && reduced < int64(t.MinimumDeduction) {
		reduced = int64(t.MinimumDeduction)
	}
	return reduced
}

// ComputeStudentLoanDeduction limits interest to the annual maximum and phases
// it out over the MAGI range. Married filing separately and dependents get
// nothing.
func ComputeStudentLoanDeduction(ret *business.TaxReturn, magi int64, fed *taxdata.Federal) business.StudentLoanResult {
	res := business.StudentLoanResult{InterestPaid: taxmath.Max0(ret.StudentLoanInterest), MAGI: magi}
	if ret.FilingStatus == business.FilingMarriedSeparate || ret.Taxpayer.CanBeClaimedAsDependent {
		return res
	}
	res.Limited = taxmath.Min(res.InterestPaid, int64(fed.StudentLoan.MaxDeduction))
	rng, ok := fed.StudentLoan.PhaseOut.For(ret.FilingStatus)
	if !ok {
		res.Deduction = res.Limited
		return res
	}
	res.Deduction = taxmath.PhaseOut(res.Limited, magi, int64(rng.Start), int64(rng.Width))
	return res
}

// ComputeTaxableSocialSecurity runs the taxable benefits worksheet.
// otherIncome is the sum of the other income lines, adjustments the
// above-the-line deductions taken before this worksheet.
func ComputeTaxableSocialSecurity(fs business.FilingStatus, benefits, otherIncome, taxExemptInterest, adjustments int64, fed *taxdata.Federal) business.SocialSecurityResult {
	t := fed.SocialSecurity
	res := business.SocialSecurityResult{GrossBenefits: taxmath.Max0(benefits)}
	if res.GrossBenefits == 0 {
		return res
	}

	half := taxmath.ApplyRate(res.GrossBenefits, 0.5)
	combined := half + otherIncome + taxExemptInterest
	if adjustments >= combined {
		return res
	}
	res.ProvisionalIncome = combined - adjustments

	base := t.BaseAmount.For(fs)
	over := taxmath.Max0(res.ProvisionalIncome - base)
	if over == 0 {
		return res
	}
	band := taxmath.Max0(t.AdjustedBase.For(fs) - base)
	aboveBand := taxmath.Max0(over - band)
	inBand := taxmath.Min(over, band)
	tier1 := taxmath.Min(half, taxmath.ApplyRate(inBand, 0.5))
	tier2 := taxmath.ApplyRate(aboveBand, t.MaxTaxableRate)
	res.TaxableBenefits = taxmath.Min(tier1+tier2, taxmath.ApplyRate(res.GrossBenefits, t.MaxTaxableRate))
	return res
}
