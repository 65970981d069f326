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

// Form1040NRService computes the nonresident alien return.
type Form1040NRService struct {
	logger *zap.Logger
}

// NewForm1040NRService creates a new Form 1040-NR service
func NewForm1040NRService() *Form1040NRService {
	return &Form1040NRService{
		logger: logger.Get(),
	}
}

// NonresidentFilingStatus maps a return's status onto the schedules a
// nonresident alien may use: married filers compute as married filing
// separately and everyone else as single.
func NonresidentFilingStatus(fs business.FilingStatus) business.FilingStatus {
	if fs.IsMarried() {
		return business.FilingMarriedSeparate
	}
	return business.FilingSingle
}

// ComputeForm1040NR taxes effectively connected wages and business income on
// the ordinary schedule and US-source dividends at the flat or treaty rate on
// Schedule NEC. There is no standard deduction unless a treaty grants one,
// and itemized deductions are limited to state income tax and charity.
func (s *Form1040NRService) ComputeForm1040NR(ctx context.Context, ret *business.TaxReturn) (*business.Form1040NRResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tables, err := taxdata.ForYear(ret.TaxYear)
	if err != nil {
		return nil, fmt.Errorf("compute form 1040-NR: %w", err)
	}
	fed := tables.Federal
	fs := NonresidentFilingStatus(ret.FilingStatus)
	rec := traced.NewRecorder()
	res := &business.Form1040NRResult{TaxYear: ret.TaxYear, FilingStatus: fs}

	var wages []traced.TracedValue
	for i, w := range ret.W2s {
		wages = append(wages, rec.Input(w.Wages, nodeID("w2", w.ID, i, "wages"), "Wages: "+w.EmployerName))
	}
	if len(wages) == 0 {
		res.Line1a = rec.Zero("f1040nr.line1a", "Wages")
	} else {
		res.Line1a = rec.Sum("f1040nr.line1a", "Wages", wages...)
	}
	res.Line1z = rec.Sum("f1040nr.line1z", "Total effectively connected wages", res.Line1a)

	if ScheduleCApplies(ret) {
		c := ComputeScheduleC(ret, rec)
		res.ScheduleC = business.Some(c)
		net, _ := rec.Get("sched_c.net_profit")
		res.Line8 = rec.Compute(c.NetProfit, "f1040nr.line8", traced.IDs(net), "Effectively connected business income")
	} else {
		res.Line8 = rec.Zero("f1040nr.line8", "Effectively connected business income")
	}
	res.Line9 = rec.Sum("f1040nr.line9", "Total effectively connected income", res.Line1z, res.Line8)
	res.Line10 = rec.Zero("f1040nr.line10", "Adjustments to income")
	res.Line11 = rec.Compute(res.Line9.Amount-res.Line10.Amount, "f1040nr.line11", traced.IDs(res.Line9, res.Line10), "Adjusted gross income")

	var deduction int64
	if d := ret.ItemizedDeductions; d != nil {
		limited := *ret
		limited.FilingStatus = fs
		limited.ItemizedDeductions = &business.ItemizedDeductions{
			StateLocalIncomeTax: d.StateLocalIncomeTax,
			CharitableCash:      d.CharitableCash,
			CharitableNonCash:   d.CharitableNonCash,
		}
		sa := ComputeScheduleA(&limited, res.Line11.Amount, fed)
		res.ScheduleA = business.Some(sa)
		deduction = sa.Total
	}
	label := "Itemized deductions"
	if nra := ret.NonresidentAlien; nra != nil && nra.TreatyStandardDeduction {
		if std := fed.StandardDeduction.For(fs); std > deduction {
			deduction = std
			label = "Standard deduction allowed by treaty"
		}
	}
	res.Line12 = rec.Compute(deduction, "f1040nr.line12", traced.IDs(res.Line11), label)
	res.Line14 = rec.Sum("f1040nr.line14", "Total deductions", res.Line12)
	res.Line15 = rec.Compute(taxmath.Max0(res.Line11.Amount-res.Line14.Amount), "f1040nr.line15", traced.IDs(res.Line11, res.Line14), "Taxable income")
	res.Line16 = rec.Compute(taxmath.BracketTax(res.Line15.Amount, fed.OrdinaryBrackets(fs)), "f1040nr.line16", traced.IDs(res.Line15), "Tax")
	res.Line22 = rec.Compute(res.Line16.Amount, "f1040nr.line22", traced.IDs(res.Line16), "Tax after credits")

	var dividends []traced.TracedValue
	var divTotal int64
	for i, d := range ret.Form1099DIV {
		dividends = append(dividends, rec.Input(d.OrdinaryDividends, nodeID("div", d.ID, i, "ordinary"), "US-source dividends: "+d.PayerName))
		divTotal += d.OrdinaryDividends
	}
	if divTotal > 0 {
		nec := business.ScheduleNECResult{Dividends: divTotal, Rate: fed.Nonresident.DividendRate}
		if nra := ret.NonresidentAlien; nra != nil && nra.TreatyDividendRate != nil {
			nec.Rate = *nra.TreatyDividendRate
		}
		nec.Tax = taxmath.ApplyRate(divTotal, nec.Rate)
		res.ScheduleNEC = business.Some(nec)
		res.Line23a = rec.Compute(nec.Tax, "f1040nr.line23a", traced.IDs(dividends...), "Tax on income not effectively connected")
	} else {
		res.Line23a = rec.Zero("f1040nr.line23a", "Tax on income not effectively connected")
	}
	res.Line23 = rec.Sum("f1040nr.line23", "Other taxes", res.Line23a)
	res.Line24 = rec.Sum("f1040nr.line24", "Total tax", res.Line22, res.Line23)

	var withheld []traced.TracedValue
	for i, w := range ret.W2s {
		if w.FederalWithheld != 0 {
			withheld = append(withheld, rec.Input(w.FederalWithheld, nodeID("w2", w.ID, i, "federal_withheld"), "Federal tax withheld: "+w.EmployerName))
		}
	}
	for i, d := range ret.Form1099DIV {
		if d.FederalWithheld != 0 {
			withheld = append(withheld, rec.Input(d.FederalWithheld, nodeID("div", d.ID, i, "federal_withheld"), "Federal tax withheld: "+d.PayerName))
		}
	}
	for i, n := range ret.Form1099NEC {
		if n.FederalWithheld != 0 {
			withheld = append(withheld, rec.Input(n.FederalWithheld, nodeID("nec", n.ID, i, "federal_withheld"), "Federal tax withheld: "+n.PayerName))
		}
	}
	if len(withheld) == 0 {
		res.Line25 = rec.Zero("f1040nr.line25", "Federal income tax withheld")
	} else {
		res.Line25 = rec.Sum("f1040nr.line25", "Federal income tax withheld", withheld...)
	}
	payments := []traced.TracedValue{res.Line25}
	if ret.EstimatedPayments != 0 {
		payments = append(payments, rec.Input(ret.EstimatedPayments, "f1040nr.line26", "Estimated tax payments"))
	}
	res.Line33 = rec.Sum("f1040nr.line33", "Total payments", payments...)
	res.Line34 = rec.Compute(taxmath.Max0(res.Line33.Amount-res.Line24.Amount), "f1040nr.line34", traced.IDs(res.Line33, res.Line24), "Amount overpaid")
	res.Line37 = rec.Compute(taxmath.Max0(res.Line24.Amount-res.Line33.Amount), "f1040nr.line37", traced.IDs(res.Line24, res.Line33), "Amount you owe")
	res.Nodes = rec.Nodes()

	s.logger.With(logger.ReturnFields(ret.ID, ret.TaxYear, string(fs))...).Debug("Computed form 1040-NR",
		zap.Int64("total_tax_cents", res.Line24.Amount))

	return res, nil
}
