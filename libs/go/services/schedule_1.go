package services

import (
	"github.com/cyphera/cyphera-tax/libs/go/taxdata"
	"github.com/cyphera/cyphera-tax/libs/go/taxmath"
	"github.com/cyphera/cyphera-tax/libs/go/traced"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
)

// RentalIncome nets Schedule E properties. A loss on a property the filer
// actively manages is allowed up to the special allowance, which shrinks as
// magi rises; other passive losses are suspended.
func RentalIncome(ret *business.TaxReturn, magi int64, fed *taxdata.Federal) int64 {
	var income, activeLoss int64
	for _, p := range ret.ScheduleE {
		net := p.Rents - p.Expenses - p.Depreciation
		switch {
		case net >= 0:
			income += net
		case p.ActiveParticipation:
			activeLoss += -net
		}
	}
	pl := fed.PassiveLoss
	allowance := pl.Allowance.For(ret.FilingStatus)
	if over := magi - pl.PhaseOutStart.For(ret.FilingStatus); over > 0 {
		allowance = taxmath.Max0(allowance - taxmath.ApplyRate(over, pl.PhaseOutRate))
	}
	// Losses offset rental income first; only the excess needs the allowance.
	if activeLoss <= income {
		return income - activeLoss
	}
	return -taxmath.Min(activeLoss-income, allowance)
}

// ComputeSchedule1Income fills Part I of Schedule 1 and records its lines.
// magi is income before rental losses, used for the rental allowance.
func ComputeSchedule1Income(ret *business.TaxReturn, c business.ScheduleCResult, hsa business.HSAResult, magi int64, fed *taxdata.Federal, rec *traced.Recorder) business.Schedule1Result {
	var res business.Schedule1Result
	var lines []traced.TracedValue

	var refundNodes, unemploymentNodes []traced.TracedValue
	for i, g := range ret.Form1099G {
		if g.StateRefund != 0 && g.PriorYearItemized {
			res.TaxableRefunds += g.StateRefund
			refundNodes = append(refundNodes, rec.Input(g.StateRefund, nodeID("g", g.ID, i, "state_refund"), "State or local income tax refund"))
		}
		if g.Unemployment != 0 {
			res.Unemployment += g.Unemployment
			unemploymentNodes = append(unemploymentNodes, rec.Input(g.Unemployment, nodeID("g", g.ID, i, "unemployment"), "Unemployment compensation"))
		}
	}
	if len(refundNodes) > 0 {
		lines = append(lines, rec.Sum("sched1.line1", "Taxable refunds of state and local income taxes", refundNodes...))
	}

	if ScheduleCApplies(ret) {
		res.BusinessIncome = c.NetProfit
		var inputs []string
		if v, ok := rec.Get("sched_c.net_profit"); ok {
			inputs = append(inputs, v.NodeID)
		}
		lines = append(lines, rec.Compute(res.BusinessIncome, "sched1.line3", inputs, "Business income or loss"))
	}

	var line5 []traced.TracedValue
	if len(ret.ScheduleE) > 0 {
		rental := RentalIncome(ret, magi, fed)
		res.RentalRoyaltyIncome += rental
		line5 = append(line5, rec.Input(rental, "sched_e.rental_net", "Rental real estate income or allowed loss"))
	}
	var otherNodes []traced.TracedValue
	for i, m := range ret.Form1099MISC {
		if m.Rents != 0 {
			res.RentalRoyaltyIncome += m.Rents
			line5 = append(line5, rec.Input(m.Rents, nodeID("misc", m.ID, i, "rents"), "Rents: "+m.PayerName))
		}
		if m.Royalties != 0 {
			res.RentalRoyaltyIncome += m.Royalties
			line5 = append(line5, rec.Input(m.Royalties, nodeID("misc", m.ID, i, "royalties"), "Royalties: "+m.PayerName))
		}
		if m.OtherIncome != 0 {
			res.OtherIncome += m.OtherIncome
			otherNodes = append(otherNodes, rec.Input(m.OtherIncome, nodeID("misc", m.ID, i, "other"), "Other income: "+m.PayerName))
		}
	}
	for i, k := range ret.ScheduleK1 {
		if k.RentalIncome != 0 {
			res.RentalRoyaltyIncome += k.RentalIncome
			line5 = append(line5, rec.Input(k.RentalIncome, nodeID("k1", k.ID, i, "rental"), "K-1 rental income: "+k.EntityName))
		}
		if k.OrdinaryIncome != 0 {
			res.PassThroughIncome += k.OrdinaryIncome
			line5 = append(line5, rec.Input(k.OrdinaryIncome, nodeID("k1", k.ID, i, "ordinary"), "K-1 ordinary business income: "+k.EntityName))
		}
	}
	if len(line5) > 0 {
		lines = append(lines, rec.Sum("sched1.line5", "Rental real estate, royalties, partnerships, S corporations", line5...))
	}

	if len(unemploymentNodes) > 0 {
		lines = append(lines, rec.Sum("sched1.line7", "Unemployment compensation", unemploymentNodes...))
	}

	if hsa.TaxableDistributions != 0 {
		res.HSATaxableDistribution = hsa.TaxableDistributions
		res.OtherIncome += hsa.TaxableDistributions
		otherNodes = append(otherNodes, rec.Input(hsa.TaxableDistributions, "f8889.line16", "Taxable HSA distributions"))
	}
	if len(otherNodes) > 0 {
		lines = append(lines, rec.Sum("sched1.line9", "Total other income", otherNodes...))
	}

	res.AdditionalIncome = res.TaxableRefunds + res.BusinessIncome + res.RentalRoyaltyIncome +
		res.PassThroughIncome + res.Unemployment + res.OtherIncome
	rec.Compute(res.AdditionalIncome, "sched1.line10", traced.IDs(lines...), "Additional income")
	return res
}

// ComputeSchedule1Adjustments fills Part II of Schedule 1 and records line 26.
func ComputeSchedule1Adjustments(res *business.Schedule1Result, hsa business.HSAResult, se business.SETaxResult, ira business.IRADeductionResult, sl business.StudentLoanResult, rec *traced.Recorder) traced.TracedValue {
	res.HSADeduction = hsa.Deduction
	res.SETaxDeduction = se.DeductibleHalf
	res.IRADeduction = ira.Deduction
	res.StudentLoanDeduction = sl.Deduction
	res.Adjustments = res.HSADeduction + res.SETaxDeduction + res.IRADeduction + res.StudentLoanDeduction

	var parts []traced.TracedValue
	if res.HSADeduction != 0 {
		parts = append(parts, rec.Input(res.HSADeduction, "sched1.line13", "Health savings account deduction"))
	}
	if v, ok := rec.Get("sched_se.deduction"); ok {
		parts = append(parts, rec.Compute(res.SETaxDeduction, "sched1.line15", traced.IDs(v), "Deductible part of self-employment tax"))
	}
	if res.IRADeduction != 0 {
		parts = append(parts, rec.Input(res.IRADeduction, "sched1.line20", "IRA deduction"))
	}
	if res.StudentLoanDeduction != 0 {
		parts = append(parts, rec.Input(res.StudentLoanDeduction, "sched1.line21", "Student loan interest deduction"))
	}
	return rec.Compute(res.Adjustments, "sched1.line26", traced.IDs(parts...), "Adjustments to income")
}
