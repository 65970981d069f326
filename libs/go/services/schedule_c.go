package services

import (
	"github.com/cyphera/cyphera-tax/libs/go/taxdata"
	"github.com/cyphera/cyphera-tax/libs/go/taxmath"
	"github.com/cyphera/cyphera-tax/libs/go/traced"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
)

// ScheduleCApplies reports whether the return has sole-proprietor income.
func ScheduleCApplies(ret *business.TaxReturn) bool {
	return len(ret.ScheduleC) > 0 || len(ret.Form1099NEC) > 0
}

// ComputeScheduleC nets each business. A 1099-NEC linked to a business by
// BusinessID is already part of that business's gross receipts; an unlinked
// one is reported as its own business with no expenses.
func ComputeScheduleC(ret *business.TaxReturn, rec *traced.Recorder) business.ScheduleCResult {
	var res business.ScheduleCResult
	var nodes []traced.TracedValue

	for i, b := range ret.ScheduleC {
		gross := b.GrossReceipts - b.Returns - b.CostOfGoodsSold
		line := business.ScheduleCLine{
			ID:          docKey(b.ID, i),
			Name:        b.Name,
			Owner:       ownerOf(b.Owner),
			GrossIncome: gross,
			Expenses:    b.Expenses,
			NetProfit:   gross - b.Expenses,
			IsSSTB:      b.IsSSTB,
		}
		res.Businesses = append(res.Businesses, line)
		res.NetProfit += line.NetProfit

		g := rec.Input(gross, nodeID("sched_c", b.ID, i, "gross_income"), "Gross income: "+b.Name)
		e := rec.Input(b.Expenses, nodeID("sched_c", b.ID, i, "expenses"), "Total expenses: "+b.Name)
		nodes = append(nodes, rec.Compute(line.NetProfit, nodeID("sched_c", b.ID, i, "net_profit"), traced.IDs(g, e), "Net profit or loss: "+b.Name))
	}

	linked := make(map[string]bool, len(ret.ScheduleC))
	for _, b := range ret.ScheduleC {
		linked[b.ID] = true
	}
	for i, n := range ret.Form1099NEC {
		if n.BusinessID != "" && linked[n.BusinessID] {
			continue
		}
		line := business.ScheduleCLine{
			ID:          "nec." + docKey(n.ID, i),
			Name:        n.PayerName,
			Owner:       ownerOf(n.Owner),
			GrossIncome: n.NonemployeeCompensation,
			NetProfit:   n.NonemployeeCompensation,
		}
		res.Businesses = append(res.Businesses, line)
		res.NetProfit += line.NetProfit
		nodes = append(nodes, rec.Input(n.NonemployeeCompensation, nodeID("nec", n.ID, i, "compensation"), "Nonemployee compensation: "+n.PayerName))
	}

	rec.Compute(res.NetProfit, "sched_c.net_profit", traced.IDs(nodes...), "Schedule C net profit or loss")
	return res
}

// selfEmploymentIncome returns net Schedule C profit plus K-1 self-employment
// earnings for one person.
func selfEmploymentIncome(ret *business.TaxReturn, c business.ScheduleCResult, owner business.Owner) int64 {
	var total int64
	for _, b := range c.Businesses {
		if b.Owner == owner {
			total += b.NetProfit
		}
	}
	for _, k := range ret.ScheduleK1 {
		if ownerOf(k.Owner) == owner {
			total += k.SelfEmploymentEarnings
		}
	}
	return total
}

// SelfEmploymentApplies reports whether anyone on the return has
// self-employment income.
func SelfEmploymentApplies(ret *business.TaxReturn) bool {
	if ScheduleCApplies(ret) {
		return true
	}
	for _, k := range ret.ScheduleK1 {
		if k.SelfEmploymentEarnings != 0 {
			return true
		}
	}
	return false
}

// ComputeSETax runs Schedule SE for the taxpayer and, on a joint return, the
// spouse. Social security tax stops at the wage base less the person's W-2
// social security wages; earnings under the minimum owe nothing.
func ComputeSETax(ret *business.TaxReturn, c business.ScheduleCResult, fed *taxdata.Federal, rec *traced.Recorder) business.SETaxResult {
	se := fed.SelfEmployment
	owners := []business.Owner{business.OwnerTaxpayer}
	if hasSpouse(ret) {
		owners = append(owners, business.OwnerSpouse)
	}

	var res business.SETaxResult
	var taxNodes []traced.TracedValue
	for _, owner := range owners {
		income := selfEmploymentIncome(ret, c, owner)
		p := business.SETaxPerson{Owner: owner}
		p.NetEarnings = taxmath.Max0(taxmath.ApplyRate(income, se.NetEarningsRate))
		if p.NetEarnings >= int64(se.MinimumNetEarnings) {
			room := taxmath.Max0(int64(fed.SocialSecurity.WageBase) - socialSecurityWagesFor(ret, owner))
			p.TaxableEarnings = taxmath.Min(p.NetEarnings, room)
			p.SocialSecurityTax = taxmath.ApplyRate(p.TaxableEarnings, se.SocialSecurityRate)
			p.MedicareTax = taxmath.ApplyRate(p.NetEarnings, se.MedicareRate)
			p.Tax = p.SocialSecurityTax + p.MedicareTax
		} else {
			p.NetEarnings = 0
		}
		if income == 0 && owner == business.OwnerSpouse {
			continue
		}
		res.People = append(res.People, p)
		res.TotalTax += p.Tax
		res.DeductibleHalf += taxmath.ApplyRate(p.Tax, 0.5)

		var inputs []string
		if v, ok := rec.Get("sched_c.net_profit"); ok {
			inputs = append(inputs, v.NodeID)
		}
		base := rec.Compute(income, "sched_se."+string(owner)+".income", inputs, "Net self-employment income ("+string(owner)+")")
		earn := rec.Compute(p.NetEarnings, "sched_se."+string(owner)+".net_earnings", traced.IDs(base), "Net earnings from self-employment ("+string(owner)+")")
		taxNodes = append(taxNodes, rec.Compute(p.Tax, "sched_se."+string(owner)+".tax", traced.IDs(earn), "Self-employment tax ("+string(owner)+")"))
	}

	total := rec.Compute(res.TotalTax, "sched_se.tax", traced.IDs(taxNodes...), "Self-employment tax")
	rec.Compute(res.DeductibleHalf, "sched_se.deduction", traced.IDs(total), "Deductible part of self-employment tax")
	return res
}
