package services

import (
	"context"
	"fmt"

	"github.com/cyphera/cyphera-tax/libs/go/logger"
	"github.com/cyphera/cyphera-tax/libs/go/taxdata"
	"github.com/cyphera/cyphera-tax/libs/go/taxmath"
	"github.com/cyphera/cyphera-tax/libs/go/traced"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
	"go.uber.org/zap"
)

// Form1040Service computes the federal individual income tax return.
type Form1040Service struct {
	logger *zap.Logger
}

// NewForm1040Service creates a new Form 1040 service
func NewForm1040Service() *Form1040Service {
	return &Form1040Service{
		logger: logger.Get(),
	}
}

// ComputeForm1040 evaluates Form 1040 line by line. Every call starts from a
// fresh provenance graph and never modifies ret. The only error is a tax
// year with no tables.
func (s *Form1040Service) ComputeForm1040(ctx context.Context, ret *business.TaxReturn) (*business.Form1040Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tables, err := taxdata.ForYear(ret.TaxYear)
	if err != nil {
		return nil, fmt.Errorf("compute form 1040: %w", err)
	}

	p := &form1040Pass{
		ret: ret,
		fed: tables.Federal,
		rec: traced.NewRecorder(),
		res: &business.Form1040Result{TaxYear: ret.TaxYear, FilingStatus: ret.FilingStatus},
	}
	p.income()
	p.adjustments()
	p.deductions()
	p.tax()
	p.credits()
	p.otherTaxes()
	p.payments()
	p.res.Nodes = p.rec.Nodes()

	log := s.logger.With(logger.ReturnFields(ret.ID, ret.TaxYear, string(ret.FilingStatus))...)
	if dups := p.rec.Duplicates(); len(dups) > 0 {
		log.Warn("Conflicting provenance nodes", zap.Strings("node_ids", dups))
	}
	log.Debug("Computed form 1040",
		zap.Int64("agi_cents", p.res.AGI()),
		zap.Int64("total_tax_cents", p.res.TotalTax()),
		zap.Int("nodes", len(p.res.Nodes)))

	return p.res, nil
}

// form1040Pass carries the intermediate results of one evaluation.
type form1040Pass struct {
	ret *business.TaxReturn
	fed *taxdata.Federal
	rec *traced.Recorder
	res *business.Form1040Result

	schedC     business.ScheduleCResult
	se         business.SETaxResult
	schedD     business.ScheduleDResult
	hsa        business.HSAResult
	s1         business.Schedule1Result
	s1Income   bool
	ira        business.IRADeductionResult
	studentLn  business.StudentLoanResult
	schedA     business.ScheduleAResult
	itemized   bool
	earned     int64
	remaining  int64
	eduCredit  business.EducationCreditResult
	ctc        business.ChildTaxCreditResult
	addlMedic  business.AdditionalMedicareResult
}

// line records a derived line, or a zero node when there is nothing behind it.
func (p *form1040Pass) line(amount int64, id, label string, inputs ...traced.TracedValue) traced.TracedValue {
	if amount == 0 && len(inputs) == 0 {
		return p.rec.Zero(id, label)
	}
	return p.rec.Compute(amount, id, traced.IDs(inputs...), label)
}

// sumOrZero sums values, recording a zero node when there are none.
func (p *form1040Pass) sumOrZero(id, label string, values []traced.TracedValue) traced.TracedValue {
	if len(values) == 0 {
		return p.rec.Zero(id, label)
	}
	return p.rec.Sum(id, label, values...)
}

// income fills lines 1 through 9.
func (p *form1040Pass) income() {
	ret, rec, res := p.ret, p.rec, p.res

	var wages, care []traced.TracedValue
	for i, w := range ret.W2s {
		wages = append(wages, rec.Input(w.Wages, nodeID("w2", w.ID, i, "wages"), "Wages: "+w.EmployerName))
		if w.DependentCareBenefits != 0 {
			care = append(care, rec.Input(w.DependentCareBenefits, nodeID("w2", w.ID, i, "dependent_care"), "Dependent care benefits: "+w.EmployerName))
		}
	}
	res.Line1a = p.sumOrZero("f1040.line1a", "Total wages from W-2 box 1", wages)
	line1z := []traced.TracedValue{res.Line1a}
	if len(care) > 0 {
		line1z = append(line1z, p.line(TaxableDependentCareBenefits(ret, p.fed), "f1040.line1e", "Taxable dependent care benefits", care...))
	}
	res.Line1z = rec.Sum("f1040.line1z", "Total wages", line1z...)

	var interest, exempt, ordinary, qualified []traced.TracedValue
	for i, f := range ret.Form1099INT {
		interest = append(interest, rec.Input(f.Interest, nodeID("int", f.ID, i, "interest"), "Interest: "+f.PayerName))
		if f.TaxExemptInterest != 0 {
			exempt = append(exempt, rec.Input(f.TaxExemptInterest, nodeID("int", f.ID, i, "tax_exempt"), "Tax-exempt interest: "+f.PayerName))
		}
	}
	for i, d := range ret.Form1099DIV {
		ordinary = append(ordinary, rec.Input(d.OrdinaryDividends, nodeID("div", d.ID, i, "ordinary"), "Ordinary dividends: "+d.PayerName))
		if d.QualifiedDividends != 0 {
			qualified = append(qualified, rec.Input(d.QualifiedDividends, nodeID("div", d.ID, i, "qualified"), "Qualified dividends: "+d.PayerName))
		}
		if d.ExemptInterestDividends != 0 {
			exempt = append(exempt, rec.Input(d.ExemptInterestDividends, nodeID("div", d.ID, i, "exempt_interest"), "Exempt-interest dividends: "+d.PayerName))
		}
	}
	for i, k := range ret.ScheduleK1 {
		if k.InterestIncome != 0 {
			interest = append(interest, rec.Input(k.InterestIncome, nodeID("k1", k.ID, i, "interest"), "K-1 interest: "+k.EntityName))
		}
		if k.OrdinaryDividends != 0 {
			ordinary = append(ordinary, rec.Input(k.OrdinaryDividends, nodeID("k1", k.ID, i, "dividends"), "K-1 dividends: "+k.EntityName))
		}
		if k.QualifiedDividends != 0 {
			qualified = append(qualified, rec.Input(k.QualifiedDividends, nodeID("k1", k.ID, i, "qualified_dividends"), "K-1 qualified dividends: "+k.EntityName))
		}
	}
	res.Line2a = p.sumOrZero("f1040.line2a", "Tax-exempt interest", exempt)
	res.Line2b = p.sumOrZero("f1040.line2b", "Taxable interest", interest)
	res.Line3a = p.sumOrZero("f1040.line3a", "Qualified dividends", qualified)
	res.Line3b = p.sumOrZero("f1040.line3b", "Ordinary dividends", ordinary)

	var iraGross, iraTaxable, penGross, penTaxable []traced.TracedValue
	for i, r := range ret.Form1099R {
		gross := rec.Input(r.GrossDistribution, nodeID("r", r.ID, i, "gross"), "Gross distribution: "+r.PayerName)
		taxable := rec.Input(r.TaxableAmount, nodeID("r", r.ID, i, "taxable"), "Taxable amount: "+r.PayerName)
		if r.IsIRA {
			iraGross, iraTaxable = append(iraGross, gross), append(iraTaxable, taxable)
		} else {
			penGross, penTaxable = append(penGross, gross), append(penTaxable, taxable)
		}
	}
	res.Line4a = p.sumOrZero("f1040.line4a", "IRA distributions", iraGross)
	res.Line4b = p.sumOrZero("f1040.line4b", "Taxable IRA distributions", iraTaxable)
	res.Line5a = p.sumOrZero("f1040.line5a", "Pensions and annuities", penGross)
	res.Line5b = p.sumOrZero("f1040.line5b", "Taxable pensions and annuities", penTaxable)

	if ScheduleCApplies(ret) {
		p.schedC = ComputeScheduleC(ret, rec)
		res.ScheduleC = business.Some(p.schedC)
	}
	if SelfEmploymentApplies(ret) {
		p.se = ComputeSETax(ret, p.schedC, p.fed, rec)
		res.ScheduleSE = business.Some(p.se)
	}

	if ScheduleDApplies(ret) {
		p.schedD = ComputeScheduleD(ret, p.fed, rec)
		res.ScheduleD = business.Some(p.schedD)
		line21, _ := rec.Get("sched_d.line21")
		res.Line7 = rec.Compute(p.schedD.Line7, "f1040.line7", traced.IDs(line21), "Capital gain or loss")
	} else {
		res.Line7 = rec.Zero("f1040.line7", "Capital gain or loss")
	}

	if HSAApplies(ret) {
		p.hsa = ComputeHSA(ret, p.fed)
		res.HSA = business.Some(p.hsa)
	}

	if p.schedule1IncomeApplies() {
		magi := res.Line1z.Amount + res.Line2b.Amount + res.Line3b.Amount + res.Line4b.Amount +
			res.Line5b.Amount + res.Line7.Amount + p.schedC.NetProfit
		p.s1 = ComputeSchedule1Income(ret, p.schedC, p.hsa, magi, p.fed, rec)
		p.s1Income = true
		line10, _ := rec.Get("sched1.line10")
		res.Line8 = rec.Compute(p.s1.AdditionalIncome, "f1040.line8", traced.IDs(line10), "Additional income from Schedule 1")
	} else {
		res.Line8 = rec.Zero("f1040.line8", "Additional income from Schedule 1")
	}

	p.socialSecurity()

	res.Line9 = rec.Sum("f1040.line9", "Total income",
		res.Line1z, res.Line2b, res.Line3b, res.Line4b, res.Line5b, res.Line6b, res.Line7, res.Line8)
}

func (p *form1040Pass) schedule1IncomeApplies() bool {
	ret := p.ret
	if len(ret.Form1099MISC) > 0 || len(ret.ScheduleE) > 0 || ScheduleCApplies(ret) || p.hsa.TaxableDistributions != 0 {
		return true
	}
	for _, g := range ret.Form1099G {
		if g.Unemployment != 0 || (g.StateRefund != 0 && g.PriorYearItemized) {
			return true
		}
	}
	for _, k := range ret.ScheduleK1 {
		if k.OrdinaryIncome != 0 || k.RentalIncome != 0 {
			return true
		}
	}
	return false
}

// socialSecurity fills lines 6a and 6b. The worksheet counts the HSA and
// self-employment adjustments; the IRA and student loan deductions depend on
// line 9 and are left out.
func (p *form1040Pass) socialSecurity() {
	ret, rec, res := p.ret, p.rec, p.res
	var benefits []traced.TracedValue
	var total int64
	for i, b := range ret.SSA1099 {
		benefits = append(benefits, rec.Input(b.NetBenefits, nodeID("ssa", b.ID, i, "net_benefits"), "Social Security benefits"))
		total += b.NetBenefits
	}
	res.Line6a = p.sumOrZero("f1040.line6a", "Social Security benefits", benefits)
	if len(benefits) == 0 {
		res.Line6b = rec.Zero("f1040.line6b", "Taxable Social Security benefits")
		return
	}
	other := res.Line1z.Amount + res.Line2b.Amount + res.Line3b.Amount + res.Line4b.Amount +
		res.Line5b.Amount + res.Line7.Amount + res.Line8.Amount
	ss := ComputeTaxableSocialSecurity(ret.FilingStatus, total, other, res.Line2a.Amount, p.hsa.Deduction+p.se.DeductibleHalf, p.fed)
	res.SocialSecurity = business.Some(ss)
	res.Line6b = rec.Compute(ss.TaxableBenefits, "f1040.line6b",
		traced.IDs(res.Line6a, res.Line1z, res.Line2a, res.Line2b, res.Line3b, res.Line4b, res.Line5b, res.Line7, res.Line8),
		"Taxable Social Security benefits")
}

// adjustments fills lines 10 and 11.
func (p *form1040Pass) adjustments() {
	ret, rec, res := p.ret, p.rec, p.res
	line9 := res.Line9.Amount

	if ret.IRAContributions != nil {
		p.ira = ComputeIRADeduction(ret, line9, p.fed)
		res.IRADeduction = business.Some(p.ira)
	}
	if ret.StudentLoanInterest > 0 {
		p.studentLn = ComputeStudentLoanDeduction(ret, line9-p.ira.Deduction-p.hsa.Deduction, p.fed)
		res.StudentLoan = business.Some(p.studentLn)
	}

	hasAdjustments := p.hsa.Deduction != 0 || p.se.DeductibleHalf != 0 || p.ira.Deduction != 0 || p.studentLn.Deduction != 0
	if hasAdjustments {
		line26 := ComputeSchedule1Adjustments(&p.s1, p.hsa, p.se, p.ira, p.studentLn, rec)
		res.Line10 = rec.Compute(p.s1.Adjustments, "f1040.line10", traced.IDs(line26), "Adjustments to income")
	} else {
		res.Line10 = rec.Zero("f1040.line10", "Adjustments to income")
	}
	if p.s1Income || hasAdjustments {
		res.Schedule1 = business.Some(p.s1)
	}

	res.Line11 = rec.Compute(res.Line9.Amount-res.Line10.Amount, "f1040.line11", traced.IDs(res.Line9, res.Line10), "Adjusted gross income")
}

// deductions fills lines 12 through 15.
func (p *form1040Pass) deductions() {
	ret, rec, res, fed := p.ret, p.rec, p.res, p.fed
	agi := res.Line11.Amount

	p.earned = EarnedIncome(ret, p.schedC, p.se.DeductibleHalf)
	res.StandardDeduction = StandardDeduction(ret, p.earned, fed)
	res.DeductionMethod = business.DeductionStandard

	if ret.ItemizedDeductions != nil || ret.ForceItemize {
		p.schedA = ComputeScheduleA(ret, agi, fed)
		res.ScheduleA = business.Some(p.schedA)
		p.itemized = ret.ForceItemize || p.schedA.Total > res.StandardDeduction
	}

	if p.itemized {
		res.DeductionMethod = business.DeductionItemized
		sa := p.schedA
		parts := []traced.TracedValue{
			rec.Compute(sa.MedicalDeduction, "sched_a.line4", traced.IDs(res.Line11), "Medical and dental expenses over the AGI floor"),
			rec.Input(sa.SALTDeduction, "sched_a.line7", "State and local taxes"),
			rec.Input(sa.InterestDeduction, "sched_a.line10", "Interest you paid"),
			rec.Compute(sa.CharitableDeduction, "sched_a.line14", traced.IDs(res.Line11), "Gifts to charity"),
			rec.Input(sa.CasualtyLoss, "sched_a.line15", "Casualty and theft losses"),
			rec.Input(sa.Other, "sched_a.line16", "Other itemized deductions"),
		}
		total := rec.Sum("sched_a.line17", "Total itemized deductions", parts...)
		res.Line12 = rec.Compute(total.Amount, "f1040.line12", traced.IDs(total), "Itemized deductions")
	} else {
		res.Line12 = rec.Input(res.StandardDeduction, "f1040.line12", "Standard deduction")
	}

	var line13 []traced.TracedValue
	senior := ComputeSeniorDeduction(ret, agi, fed)
	if senior.EligibleFilers > 0 {
		res.SeniorDeduction = business.Some(senior)
		line13 = append(line13, rec.Compute(senior.Deduction, "sched1a.line37", traced.IDs(res.Line11), "Enhanced deduction for seniors"))
	}
	if QBIApplies(ret) {
		before := agi - res.Line12.Amount - senior.Deduction
		qbi := ComputeQBI(ret, p.schedC, p.se.DeductibleHalf, before, res.Line3a.Amount+p.schedD.NetPreferentialGain, fed)
		res.QBI = business.Some(qbi)
		line13 = append(line13, rec.Compute(qbi.Deduction, "f8995.line15", traced.IDs(res.Line11, res.Line12), "Qualified business income deduction"))
	}
	res.Line13 = p.sumOrZero("f1040.line13", "Qualified business income and senior deductions", line13)
	res.Line14 = rec.Sum("f1040.line14", "Total deductions", res.Line12, res.Line13)
	res.Line15 = rec.Compute(taxmath.Max0(agi-res.Line14.Amount), "f1040.line15", traced.IDs(res.Line11, res.Line14), "Taxable income")
}

// tax fills lines 16 through 18.
func (p *form1040Pass) tax() {
	ret, rec, res, fed := p.ret, p.rec, p.res, p.fed
	fs := ret.FilingStatus

	tax, used, _ := taxmath.SelectTax(res.Line15.Amount, res.Line3a.Amount, p.schedD.NetPreferentialGain,
		fed.OrdinaryBrackets(fs), fed.PreferentialThresholds(fs))
	res.UsedQDCGWorksheet = used
	inputs := []traced.TracedValue{res.Line15}
	if used {
		inputs = append(inputs, res.Line3a)
		if v, ok := rec.Get("sched_d.line21"); ok {
			inputs = append(inputs, v)
		}
	}
	res.Line16 = rec.Compute(tax, "f1040.line16", traced.IDs(inputs...), "Tax")

	addBack := res.Line12.Amount
	if p.itemized {
		addBack = p.schedA.SALTDeduction
	}
	amt := ComputeAMT(ret, AMTInput{
		TaxableIncome:       res.Line11.Amount - res.Line14.Amount,
		DeductionAddBack:    addBack,
		RegularTax:          tax,
		QualifiedDividends:  res.Line3a.Amount,
		NetPreferentialGain: p.schedD.NetPreferentialGain,
	}, fed)
	if amt.AMT > 0 || len(ret.ISOExercises) > 0 {
		res.AMT = business.Some(amt)
	}
	if amt.AMT > 0 {
		res.Line17 = rec.Compute(amt.AMT, "f1040.line17", traced.IDs(res.Line11, res.Line14, res.Line16), "Alternative minimum tax")
	} else {
		res.Line17 = rec.Zero("f1040.line17", "Alternative minimum tax")
	}
	res.Line18 = rec.Sum("f1040.line18", "Tax before credits", res.Line16, res.Line17)
}

// credits fills lines 19 through 22. Each nonrefundable credit is limited by
// the liability the earlier ones left.
func (p *form1040Pass) credits() {
	ret, rec, res, fed := p.ret, p.rec, p.res, p.fed
	agi := res.Line11.Amount

	if len(ret.Dependents) > 0 {
		p.ctc = ComputeChildTaxCredit(ret, agi, p.earned, res.Line18.Amount, fed)
		res.ChildTaxCredit = business.Some(p.ctc)
		res.Line19 = rec.Compute(p.ctc.NonrefundableCredit, "f1040.line19", traced.IDs(res.Line11, res.Line18), "Child tax credit and credit for other dependents")
	} else {
		res.Line19 = rec.Zero("f1040.line19", "Child tax credit and credit for other dependents")
	}
	p.remaining = taxmath.Max0(res.Line18.Amount - res.Line19.Amount)

	var sched3 []traced.TracedValue
	if DependentCareApplies(ret) {
		var spouseEarned int64
		if hasSpouse(ret) {
			spouseEarned = earnedIncomeFor(ret, p.schedC, business.OwnerSpouse)
		}
		dc := ComputeDependentCare(ret, agi, earnedIncomeFor(ret, p.schedC, business.OwnerTaxpayer), spouseEarned, p.remaining, fed)
		res.DependentCare = business.Some(dc)
		p.remaining -= dc.Credit
		sched3 = append(sched3, rec.Compute(dc.Credit, "sched3.line2", traced.IDs(res.Line11, res.Line18), "Credit for child and dependent care expenses"))
	}
	if EducationApplies(ret) {
		p.eduCredit = ComputeEducationCredit(ret, agi, p.remaining, fed)
		res.EducationCredit = business.Some(p.eduCredit)
		p.remaining -= p.eduCredit.NonrefundableCredit
		sched3 = append(sched3, rec.Compute(p.eduCredit.NonrefundableCredit, "sched3.line3", traced.IDs(res.Line11, res.Line18), "Education credits"))
	}
	if SaversCreditApplies(ret) {
		sc := ComputeSaversCredit(ret, agi, p.remaining, fed)
		res.SaversCredit = business.Some(sc)
		p.remaining -= sc.Credit
		sched3 = append(sched3, rec.Compute(sc.Credit, "sched3.line4", traced.IDs(res.Line11, res.Line18), "Retirement savings contributions credit"))
	}
	if EnergyCreditApplies(ret) {
		ec := ComputeEnergyCredit(ret, p.remaining, fed)
		res.EnergyCredit = business.Some(ec)
		p.remaining -= ec.AllowedCredit
		sched3 = append(sched3, rec.Compute(ec.AllowedCredit, "sched3.line5", traced.IDs(res.Line18), "Residential energy credits"))
	}
	res.Line20 = p.sumOrZero("f1040.line20", "Amount from Schedule 3, line 8", sched3)
	res.Line21 = rec.Sum("f1040.line21", "Total credits", res.Line19, res.Line20)
	res.Line22 = rec.Compute(taxmath.Max0(res.Line18.Amount-res.Line21.Amount), "f1040.line22", traced.IDs(res.Line18, res.Line21), "Tax after credits")
}

// otherTaxes fills lines 23 and 24 from Schedule 2 Part II.
func (p *form1040Pass) otherTaxes() {
	ret, rec, res, fed := p.ret, p.rec, p.res, p.fed

	p.addlMedic = ComputeAdditionalMedicare(ret, p.se, fed)
	if p.addlMedic.Tax > 0 || p.addlMedic.WithholdingExcess > 0 {
		res.AdditionalMedicare = business.Some(p.addlMedic)
	}
	nii := NetInvestmentIncome(ret, res.Line7.Amount, p.s1.RentalRoyaltyIncome)
	niit := ComputeNIIT(ret, nii, res.Line11.Amount, fed)
	if niit.Tax > 0 {
		res.NIIT = business.Some(niit)
	}
	early := EarlyDistributionPenalty(ret, fed)
	other := ComputeOtherTaxes(p.se, p.addlMedic, niit, early, p.hsa)

	var parts []traced.TracedValue
	if other.SelfEmploymentTax != 0 {
		seTax, _ := rec.Get("sched_se.tax")
		parts = append(parts, rec.Compute(other.SelfEmploymentTax, "sched2.line4", traced.IDs(seTax), "Self-employment tax"))
	}
	if other.EarlyDistributionPenalty != 0 {
		parts = append(parts, rec.Compute(other.EarlyDistributionPenalty, "sched2.line8", traced.IDs(res.Line4b, res.Line5b), "Additional tax on early distributions"))
	}
	if other.AdditionalMedicare != 0 {
		parts = append(parts, rec.Compute(other.AdditionalMedicare, "sched2.line11", traced.IDs(res.Line1z), "Additional Medicare tax"))
	}
	if other.NIIT != 0 {
		parts = append(parts, rec.Compute(other.NIIT, "sched2.line12", traced.IDs(res.Line11), "Net investment income tax"))
	}
	if other.HSAPenalty != 0 {
		parts = append(parts, rec.Input(other.HSAPenalty, "sched2.line17c", "Additional tax on HSA distributions"))
	}
	if other.HSAExcise != 0 {
		parts = append(parts, rec.Input(other.HSAExcise, "f5329.line49", "Excise tax on excess HSA contributions"))
	}
	if OtherTaxesApplies(other) {
		res.OtherTaxes = business.Some(other)
	}
	res.Line23 = p.sumOrZero("f1040.line23", "Other taxes from Schedule 2", parts)
	res.Line24 = rec.Sum("f1040.line24", "Total tax", res.Line22, res.Line23)
}

// payments fills lines 25 through 37.
func (p *form1040Pass) payments() {
	ret, rec, res, fed := p.ret, p.rec, p.res, p.fed

	var w2Withheld, otherWithheld []traced.TracedValue
	for i, w := range ret.W2s {
		if w.FederalWithheld != 0 {
			w2Withheld = append(w2Withheld, rec.Input(w.FederalWithheld, nodeID("w2", w.ID, i, "federal_withheld"), "Federal tax withheld: "+w.EmployerName))
		}
	}
	add := func(amount int64, id, label string) {
		if amount != 0 {
			otherWithheld = append(otherWithheld, rec.Input(amount, id, label))
		}
	}
	for i, f := range ret.Form1099INT {
		add(f.FederalWithheld, nodeID("int", f.ID, i, "federal_withheld"), "Federal tax withheld: "+f.PayerName)
	}
	for i, f := range ret.Form1099DIV {
		add(f.FederalWithheld, nodeID("div", f.ID, i, "federal_withheld"), "Federal tax withheld: "+f.PayerName)
	}
	for i, f := range ret.Form1099R {
		add(f.FederalWithheld, nodeID("r", f.ID, i, "federal_withheld"), "Federal tax withheld: "+f.PayerName)
	}
	for i, f := range ret.Form1099B {
		add(f.FederalWithheld, nodeID("b", f.ID, i, "federal_withheld"), "Federal tax withheld: "+f.Description)
	}
	for i, f := range ret.Form1099G {
		add(f.FederalWithheld, nodeID("g", f.ID, i, "federal_withheld"), "Federal tax withheld: government payments")
	}
	for i, f := range ret.Form1099MISC {
		add(f.FederalWithheld, nodeID("misc", f.ID, i, "federal_withheld"), "Federal tax withheld: "+f.PayerName)
	}
	for i, f := range ret.Form1099NEC {
		add(f.FederalWithheld, nodeID("nec", f.ID, i, "federal_withheld"), "Federal tax withheld: "+f.PayerName)
	}
	for i, f := range ret.SSA1099 {
		add(f.FederalWithheld, nodeID("ssa", f.ID, i, "federal_withheld"), "Federal tax withheld: Social Security")
	}

	line25 := []traced.TracedValue{
		p.sumOrZero("f1040.line25a", "Federal tax withheld from W-2s", w2Withheld),
		p.sumOrZero("f1040.line25b", "Federal tax withheld from 1099s", otherWithheld),
	}
	if p.addlMedic.WithholdingExcess > 0 {
		line25 = append(line25, rec.Input(p.addlMedic.WithholdingExcess, "f1040.line25c", "Additional Medicare tax withheld"))
	}
	res.Line25 = rec.Sum("f1040.line25", "Federal income tax withheld", line25...)
	res.Line26 = p.line(ret.EstimatedPayments, "f1040.line26", "Estimated tax payments")

	eic := ComputeEIC(ret, res.Line11.Amount, p.earned, InvestmentIncome(ret, res.Line7.Amount), fed)
	if eic.Eligible {
		res.EIC = business.Some(eic)
		res.Line27 = rec.Compute(eic.Credit, "f1040.line27", traced.IDs(res.Line11), "Earned income credit")
	} else {
		res.Line27 = rec.Zero("f1040.line27", "Earned income credit")
	}

	if p.ctc.AdditionalChildTaxCredit > 0 {
		res.Line28 = rec.Compute(p.ctc.AdditionalChildTaxCredit, "f1040.line28", traced.IDs(res.Line19), "Additional child tax credit")
	} else {
		res.Line28 = rec.Zero("f1040.line28", "Additional child tax credit")
	}
	if p.eduCredit.RefundableAOTC > 0 {
		res.Line29 = rec.Compute(p.eduCredit.RefundableAOTC, "f1040.line29", traced.IDs(res.Line11), "American opportunity credit")
	} else {
		res.Line29 = rec.Zero("f1040.line29", "American opportunity credit")
	}
	res.Line31 = p.line(p.excessSocialSecurity(), "f1040.line31", "Excess social security tax withheld")

	res.Line32 = rec.Sum("f1040.line32", "Other payments and refundable credits", res.Line27, res.Line28, res.Line29, res.Line31)
	res.Line33 = rec.Sum("f1040.line33", "Total payments", res.Line25, res.Line26, res.Line32)
	res.Line34 = rec.Compute(taxmath.Max0(res.Line33.Amount-res.Line24.Amount), "f1040.line34", traced.IDs(res.Line33, res.Line24), "Amount overpaid")
	res.Line37 = rec.Compute(taxmath.Max0(res.Line24.Amount-res.Line33.Amount), "f1040.line37", traced.IDs(res.Line24, res.Line33), "Amount you owe")
}

// excessSocialSecurity is social security tax withheld above the annual
// maximum by more than one employer for the same person.
func (p *form1040Pass) excessSocialSecurity() int64 {
	limit := p.fed.SocialSecurity.MaxEmployeeWithholding()
	var total int64
	for _, owner := range []business.Owner{business.OwnerTaxpayer, business.OwnerSpouse} {
		var count int
		var withheld int64
		for _, w := range p.ret.W2s {
			if ownerOf(w.Owner) == owner {
				count++
				withheld += w.SocialSecurityWithheld
			}
		}
		if count >= 2 {
			total += taxmath.Max0(withheld - limit)
		}
	}
	return total
}
