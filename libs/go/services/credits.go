package services

import (
	"math"

	"github.com/cyphera/cyphera-tax/libs/go/taxdata"
	"github.com/cyphera/cyphera-tax/libs/go/taxmath"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
)

// isQualifyingChildForCTC reports whether a dependent qualifies for the child
// tax credit: under the age limit at year end, living with the filer more
// than half the year and holding an SSN.
func isQualifyingChildForCTC(d business.Dependent, taxYear int, fed *taxdata.Federal) bool {
	age, ok := AgeAtYearEnd(d.DateOfBirth, taxYear)
	return ok && age <= fed.ChildTaxCredit.MaxChildAge && d.MonthsLivedWithTaxpayer >= 7 && d.HasSSN()
}

// ComputeChildTaxCredit runs Schedule 8812. liability is line 18 tax. The
// credit drops by a fixed amount per step of AGI over the threshold; the
// part that exceeds liability can be refunded up to the per-child limit and
// the earned income formula.
func ComputeChildTaxCredit(ret *business.TaxReturn, agi, earnedIncome, liability int64, fed *taxdata.Federal) business.ChildTaxCreditResult {
	t := fed.ChildTaxCredit
	var res business.ChildTaxCreditResult
	for _, d := range ret.Dependents {
		if isQualifyingChildForCTC(d, ret.TaxYear, fed) {
			res.QualifyingChildren++
		} else {
			res.OtherDependents++
		}
	}
	res.InitialCredit = int64(res.QualifyingChildren)*int64(t.PerChild) + int64(res.OtherDependents)*int64(t.PerOtherDependent)
	res.CreditAfterPhaseOut = taxmath.StepPhaseOut(res.InitialCredit, agi, t.PhaseOutStart.For(ret.FilingStatus), int64(t.PhaseOutStep), int64(t.PhaseOutPerStep))
	res.PhaseOutReduction = res.InitialCredit - res.CreditAfterPhaseOut
	res.NonrefundableCredit = taxmath.Min(res.CreditAfterPhaseOut, taxmath.Max0(liability))

	if res.QualifyingChildren > 0 {
		unused := res.CreditAfterPhaseOut - res.NonrefundableCredit
		perChild := taxmath.Min(unused, int64(res.QualifyingChildren)*int64(t.RefundablePerChild))
		earned := taxmath.ApplyRate(taxmath.Max0(earnedIncome-int64(t.EarnedIncomeFloor)), t.RefundableRate)
		res.AdditionalChildTaxCredit = taxmath.Max0(taxmath.Min(perChild, earned))
	}
	return res
}

// DependentCareApplies reports whether Form 2441 is needed.
func DependentCareApplies(ret *business.TaxReturn) bool {
	if ret.DependentCare != nil {
		return true
	}
	for _, w := range ret.W2s {
		if w.DependentCareBenefits > 0 {
			return true
		}
	}
	return false
}

// dependentCareBenefits is the employer-provided benefit total from W-2 box 10.
func dependentCareBenefits(ret *business.TaxReturn) int64 {
	var total int64
	for _, w := range ret.W2s {
		total += w.DependentCareBenefits
	}
	return total
}

// TaxableDependentCareBenefits is the part of employer benefits above the
// exclusion, reported on line 1e.
func TaxableDependentCareBenefits(ret *business.TaxReturn, fed *taxdata.Federal) int64 {
	return taxmath.Max0(dependentCareBenefits(ret) - int64(fed.DependentCare.BenefitExclusion))
}

// dependentCareRate is the credit percentage for agi: the maximum, less one
// point per step (or part of a step) over the start, never below the minimum.
func dependentCareRate(agi int64, t taxdata.DependentCare) float64 {
	over := agi - int64(t.RateStepStart)
	if over <= 0 || t.RateStep <= 0 {
		return t.MaxRate
	}
	steps := (over + int64(t.RateStep) - 1) / int64(t.RateStep)
	rate := math.Round((t.MaxRate-float64(steps)*0.01)*100) / 100
	if rate < t.MinRate {
		return t.MinRate
	}
	return rate
}

// ComputeDependentCare runs Form 2441. Eligible expenses are limited by the
// per-person cap less excluded employer benefits and by each spouse's earned
// income. Married filing separately gets no credit.
func ComputeDependentCare(ret *business.TaxReturn, agi, taxpayerEarned, spouseEarned, liability int64, fed *taxdata.Federal) business.DependentCareResult {
	t := fed.DependentCare
	var res business.DependentCareResult
	if ret.DependentCare != nil {
		res.QualifyingPersons = ret.DependentCare.QualifyingPersons
		res.Expenses = taxmath.Max0(ret.DependentCare.Expenses)
	}
	switch {
	case res.QualifyingPersons >= 2:
		res.ExpenseLimit = int64(t.LimitTwoOrMore)
	case res.QualifyingPersons == 1:
		res.ExpenseLimit = int64(t.LimitOnePerson)
	}
	res.EmployerBenefits = taxmath.Min(dependentCareBenefits(ret), int64(t.BenefitExclusion))
	res.CreditRate = dependentCareRate(agi, t)
	if ret.FilingStatus == business.FilingMarriedSeparate {
		return res
	}

	eligible := taxmath.Min(res.Expenses, taxmath.Max0(res.ExpenseLimit-res.EmployerBenefits))
	eligible = taxmath.Min(eligible, taxmath.Max0(taxpayerEarned))
	if hasSpouse(ret) {
		eligible = taxmath.Min(eligible, taxmath.Max0(spouseEarned))
	}
	res.EligibleExpenses = eligible
	res.TentativeCredit = taxmath.ApplyRate(eligible, res.CreditRate)
	res.Credit = taxmath.Min(res.TentativeCredit, taxmath.Max0(liability))
	return res
}

// EducationApplies reports whether Form 8863 is needed.
func EducationApplies(ret *business.TaxReturn) bool {
	return len(ret.Education) > 0
}

// educationPhaseRatio is the share of the credits that survives the MAGI
// phase-out.
func educationPhaseRatio(fs business.FilingStatus, magi int64, t taxdata.EducationTable) float64 {
	if fs == business.FilingMarriedSeparate {
		return 0
	}
	rng, ok := t.PhaseOut.For(fs)
	if !ok || magi <= int64(rng.Start) {
		return 1
	}
	if rng.Width <= 0 {
		return 0
	}
	return 1 - taxmath.ClampRatio(float64(magi-int64(rng.Start))/float64(rng.Width))
}

// ComputeEducationCredit runs Form 8863. Each AOTC student earns full credit
// on the first tier of expenses and a partial rate on the next; the lifetime
// learning credit applies one rate to pooled expenses up to the cap. A share
// of the phased AOTC is refundable unless the filer is someone's dependent.
func ComputeEducationCredit(ret *business.TaxReturn, magi, liability int64, fed *taxdata.Federal) business.EducationCreditResult {
	t := fed.Education
	var res business.EducationCreditResult
	var llcExpenses int64
	for _, e := range ret.Education {
		net := taxmath.Max0(e.QualifiedExpenses - e.TaxFreeAssistance)
		switch e.CreditType {
		case business.EducationAOTC:
			full := taxmath.Min(net, int64(t.AOTCFullRateExpenses))
			partial := taxmath.Min(taxmath.Max0(net-int64(t.AOTCFullRateExpenses)), int64(t.AOTCPartialExpenses))
			res.AOTCTentative += full + taxmath.ApplyRate(partial, t.AOTCPartialRate)
		case business.EducationLLC:
			llcExpenses += net
		}
	}
	res.LLCTentative = taxmath.ApplyRate(taxmath.Min(llcExpenses, int64(t.LLCExpenseCap)), t.LLCRate)

	res.PhaseOutRatio = educationPhaseRatio(ret.FilingStatus, magi, t)
	aotc := taxmath.Round(float64(res.AOTCTentative) * res.PhaseOutRatio)
	llc := taxmath.Round(float64(res.LLCTentative) * res.PhaseOutRatio)
	if !ret.Taxpayer.CanBeClaimedAsDependent {
		res.RefundableAOTC = taxmath.ApplyRate(aotc, t.AOTCRefundableRate)
	}
	res.TentativeCredit = aotc - res.RefundableAOTC + llc
	res.NonrefundableCredit = taxmath.Min(res.TentativeCredit, taxmath.Max0(liability))
	return res
}

// saversEligible reports whether a person can claim the saver's credit.
// A missing date of birth is treated as an adult.
func saversEligible(p *business.Person, taxYear int, fed *taxdata.Federal) bool {
	if p == nil || p.CanBeClaimedAsDependent || p.IsFullTimeStudent {
		return false
	}
	if age, ok := AgeAtYearEnd(p.DateOfBirth, taxYear); ok && age < fed.SaversCredit.MinAge {
		return false
	}
	return true
}

// SaversCreditApplies reports whether anyone on the return made a retirement
// contribution.
func SaversCreditApplies(ret *business.TaxReturn) bool {
	if c := ret.IRAContributions; c != nil && c.TaxpayerTraditional+c.TaxpayerRoth+c.SpouseTraditional+c.SpouseRoth > 0 {
		return true
	}
	return electiveDeferralsFor(ret, business.OwnerTaxpayer)+electiveDeferralsFor(ret, business.OwnerSpouse) > 0
}

// ComputeSaversCredit runs Form 8880. Each eligible person's IRA and
// elective deferral contributions count up to the per-person cap, and the
// rate comes from the AGI tier.
func ComputeSaversCredit(ret *business.TaxReturn, agi, liability int64, fed *taxdata.Federal) business.SaversCreditResult {
	t := fed.SaversCredit
	var res business.SaversCreditResult
	limit := int64(t.MaxContributionPerPerson)

	var tpIRA, spIRA int64
	if c := ret.IRAContributions; c != nil {
		tpIRA = c.TaxpayerTraditional + c.TaxpayerRoth
		spIRA = c.SpouseTraditional + c.SpouseRoth
	}
	if saversEligible(&ret.Taxpayer, ret.TaxYear, fed) {
		res.TaxpayerContributions = taxmath.Max0(tpIRA + electiveDeferralsFor(ret, business.OwnerTaxpayer))
	}
	if hasSpouse(ret) && saversEligible(ret.Spouse, ret.TaxYear, fed) {
		res.SpouseContributions = taxmath.Max0(spIRA + electiveDeferralsFor(ret, business.OwnerSpouse))
	}
	res.EligibleContributions = taxmath.Min(res.TaxpayerContributions, limit) + taxmath.Min(res.SpouseContributions, limit)
	res.CreditRate = t.Tiers.RateFor(ret.FilingStatus, agi)
	res.TentativeCredit = taxmath.ApplyRate(res.EligibleContributions, res.CreditRate)
	res.Credit = taxmath.Min(res.TentativeCredit, taxmath.Max0(liability))
	return res
}

// EnergyCreditApplies reports whether Form 5695 is needed.
func EnergyCreditApplies(ret *business.TaxReturn) bool {
	return ret.EnergyImprovements != nil || ret.EnergyCreditCarryforward > 0
}

// ComputeEnergyCredit runs Form 5695. Part I (clean energy property) has no
// overall cap and carries unused credit forward; Part II (efficiency
// improvements) applies item caps, an aggregate cap and a separate heat pump
// cap, and any unused amount is lost. Part II is applied against liability
// first so that only the carryable credit goes unused.
func ComputeEnergyCredit(ret *business.TaxReturn, liability int64, fed *taxdata.Federal) business.EnergyCreditResult {
	t := fed.Energy
	var res business.EnergyCreditResult
	e := ret.EnergyImprovements
	if e == nil {
		e = &business.EnergyImprovements{}
	}

	res.PartICost = e.SolarElectric + e.SolarWaterHeating + e.SmallWind + e.Geothermal + e.BatteryStorage + e.FuelCell
	partI := taxmath.ApplyRate(e.SolarElectric+e.SolarWaterHeating+e.SmallWind+e.Geothermal+e.BatteryStorage, t.CleanEnergyRate)
	if e.FuelCell > 0 {
		fuelCap := taxmath.Round(float64(t.FuelCellPerHalfKW) * e.FuelCellKW * 2)
		partI += taxmath.Min(taxmath.ApplyRate(e.FuelCell, t.CleanEnergyRate), fuelCap)
	}
	res.PartICredit = partI + taxmath.Max0(ret.EnergyCreditCarryforward)

	rate := t.EfficiencyRate
	item := func(cost int64, limit taxdata.Cents) int64 {
		return taxmath.Min(taxmath.ApplyRate(taxmath.Max0(cost), rate), int64(limit))
	}
	aggregate := taxmath.ApplyRate(taxmath.Max0(e.Insulation), rate) +
		item(e.Windows, t.WindowsCap) +
		item(e.ExteriorDoors, t.DoorsCap) +
		item(e.HomeEnergyAudit, t.AuditCap) +
		item(e.CentralAir, t.PropertyItemCap) +
		item(e.WaterHeater, t.PropertyItemCap) +
		item(e.FurnaceBoiler, t.PropertyItemCap) +
		item(e.PanelUpgrade, t.PropertyItemCap)
	aggregate = taxmath.Min(aggregate, int64(t.AggregateCap))
	res.HeatPumpCredit = item(e.HeatPump+e.HeatPumpWaterHeater+e.BiomassStove, t.HeatPumpCap)
	res.PartIICredit = aggregate + res.HeatPumpCredit

	res.TotalCredit = res.PartICredit + res.PartIICredit
	remaining := taxmath.Max0(liability)
	allowedII := taxmath.Min(res.PartIICredit, remaining)
	allowedI := taxmath.Min(res.PartICredit, remaining-allowedII)
	res.AllowedCredit = allowedI + allowedII
	res.Carryforward = res.PartICredit - allowedI
	return res
}

// EarnedIncome is wages plus self-employment profit less the deductible part
// of self-employment tax.
func EarnedIncome(ret *business.TaxReturn, c business.ScheduleCResult, seHalf int64) int64 {
	var wages int64
	for _, w := range ret.W2s {
		wages += w.Wages
	}
	var se int64
	for _, k := range ret.ScheduleK1 {
		se += k.SelfEmploymentEarnings
	}
	return wages + c.NetProfit + se - seHalf
}

// earnedIncomeFor is one person's share of earned income.
func earnedIncomeFor(ret *business.TaxReturn, c business.ScheduleCResult, owner business.Owner) int64 {
	return wagesFor(ret, owner) + taxmath.Max0(selfEmploymentIncome(ret, c, owner))
}

// InvestmentIncome is the EIC investment income total.
func InvestmentIncome(ret *business.TaxReturn, netCapitalGain int64) int64 {
	var total int64
	for _, i := range ret.Form1099INT {
		total += i.Interest + i.TaxExemptInterest
	}
	for _, d := range ret.Form1099DIV {
		total += d.OrdinaryDividends
	}
	for _, m := range ret.Form1099MISC {
		total += m.Royalties
	}
	return total + taxmath.Max0(netCapitalGain)
}

func isQualifyingChildForEIC(d business.Dependent, taxYear int, fed *taxdata.Federal) bool {
	if !d.HasSSN() || d.MonthsLivedWithTaxpayer < 7 {
		return false
	}
	if d.IsDisabled {
		return true
	}
	age, ok := AgeAtYearEnd(d.DateOfBirth, taxYear)
	if !ok {
		return false
	}
	return age <= fed.EIC.MaxChildAge || (d.IsStudent && age <= fed.EIC.MaxStudentAge)
}

// eicFormula is the credit for an income amount under one schedule entry.
func eicFormula(x int64, e taxdata.EICEntry, start int64) int64 {
	phaseIn := taxmath.Min(taxmath.ApplyRate(taxmath.Max0(x), e.PhaseInRate), int64(e.MaxCredit))
	return taxmath.Max0(phaseIn - taxmath.ApplyRate(taxmath.Max0(x-start), e.PhaseOutRate))
}

// ComputeEIC computes the earned income credit with the exact formula rather
// than the published table. When AGI is past the phase-out start, the smaller
// of the credit on earned income and on AGI applies.
func ComputeEIC(ret *business.TaxReturn, agi, earnedIncome, investmentIncome int64, fed *taxdata.Federal) business.EICResult {
	t := fed.EIC
	res := business.EICResult{EarnedIncome: earnedIncome, InvestmentIncome: investmentIncome}
	for _, d := range ret.Dependents {
		if isQualifyingChildForEIC(d, ret.TaxYear, fed) {
			res.QualifyingChildren++
		}
	}

	switch {
	case ret.FilingStatus == business.FilingMarriedSeparate:
		res.Reason = "married filing separately"
		return res
	case ret.Taxpayer.CanBeClaimedAsDependent:
		res.Reason = "filer can be claimed as a dependent"
		return res
	case investmentIncome > int64(t.InvestmentIncomeLimit):
		res.Reason = "investment income over limit"
		return res
	case earnedIncome <= 0:
		res.Reason = "no earned income"
		return res
	}
	if res.QualifyingChildren == 0 && !eicAgeEligible(ret, fed) {
		res.Reason = "age outside range for filers without children"
		return res
	}

	entry := t.Entry(res.QualifyingChildren)
	start := int64(entry.PhaseOutStart)
	if ret.FilingStatus == business.FilingMarriedJoint {
		start = int64(entry.PhaseOutStartJoint)
	}
	res.Eligible = true
	res.Credit = eicFormula(earnedIncome, entry, start)
	if agi > start {
		res.Credit = taxmath.Min(res.Credit, eicFormula(agi, entry, start))
	}
	return res
}

// eicAgeEligible checks the age window for filers without a qualifying child.
// On a joint return either spouse may meet it.
func eicAgeEligible(ret *business.TaxReturn, fed *taxdata.Federal) bool {
	in := func(p business.Person) bool {
		age, ok := AgeAtYearEnd(p.DateOfBirth, ret.TaxYear)
		return ok && age >= fed.EIC.MinAgeNoChildren && age <= fed.EIC.MaxAgeNoChildren
	}
	if in(ret.Taxpayer) {
		return true
	}
	return hasSpouse(ret) && in(*ret.Spouse)
}
