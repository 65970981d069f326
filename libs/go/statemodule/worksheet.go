package statemodule

import (
	"strconv"
	"strings"

	"github.com/cyphera/cyphera-tax/libs/go/taxdata"
	"github.com/cyphera/cyphera-tax/libs/go/taxmath"
	"github.com/cyphera/cyphera-tax/libs/go/traced"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
)

// ApportionMethod selects how a part-year or nonresident return shares tax
// with other states.
type ApportionMethod int

const (
	// ApportionTax computes tax as if all income were taxable here and
	// multiplies the tax after credits by the state's share of income.
	ApportionTax ApportionMethod = iota
	// ApportionByRatio runs the rate schedule on taxable income multiplied
	// by the state's share of income.
	ApportionByRatio
)

type stage int

const (
	stageIncome stage = iota
	stageAGI
	stageTaxable
	stageTax
	stageDone
)

// Worksheet records a state return line by line. Steps run in form order:
// additions and subtractions, ComputeAGI, deductions and exemptions,
// ComputeTaxable, taxes, ComputeTax, credits and local tax, Finish. A step
// called out of order completes the earlier steps first.
type Worksheet struct {
	Method ApportionMethod

	base   Base
	ret    *business.TaxReturn
	fed    *business.Form1040Result
	cfg    business.StateReturnConfig
	table  taxdata.State
	rec    *traced.Recorder
	fedIDs map[string]traced.TracedValue
	stage  stage

	res          business.StateComputeResult
	fraction     float64
	sourceIncome traced.TracedValue

	additions    []traced.TracedValue
	subtractions []traced.TracedValue
	deductions   []traced.TracedValue
	exemptions   []traced.TracedValue
	taxes        []traced.TracedValue
	credits      []traced.TracedValue
	refundable   []traced.TracedValue
	local        []traced.TracedValue
	details      map[string]traced.TracedValue
}

// NewWorksheet starts a return for cfg from the federal result. It fails only
// when the state has no tables for the return's tax year.
func (b Base) NewWorksheet(ret *business.TaxReturn, fed *business.Form1040Result, cfg business.StateReturnConfig) (*Worksheet, error) {
	table, err := b.Table(ret.TaxYear)
	if err != nil {
		return nil, err
	}
	residency := cfg.ResidencyType
	if residency == "" {
		residency = business.ResidencyFullYear
	}
	w := &Worksheet{
		base:    b,
		ret:     ret,
		fed:     fed,
		cfg:     cfg,
		table:   table,
		rec:     traced.NewRecorder(),
		fedIDs:  make(map[string]traced.TracedValue, len(fed.Nodes)),
		details: map[string]traced.TracedValue{},
		res: business.StateComputeResult{
			StateCode:          b.code,
			StateName:          b.name,
			ResidencyType:      residency,
			ApportionmentRatio: taxmath.ComputeApportionmentRatio(cfg, ret.TaxYear),
			Confidence:         confidenceOf(table),
		},
	}
	for _, n := range fed.Nodes {
		w.fedIDs[n.NodeID] = n
	}
	w.res.FederalAGI = w.rec.Compute(fed.Line11.Amount, b.id("federal_agi"), w.federalInputs(fed.Line11), b.label("federal_agi"))
	return w, nil
}

// Return is the read-only input return.
func (w *Worksheet) Return() *business.TaxReturn { return w.ret }

// Federal is the read-only federal result.
func (w *Worksheet) Federal() *business.Form1040Result { return w.fed }

// Config is the residency configuration for this state.
func (w *Worksheet) Config() business.StateReturnConfig { return w.cfg }

// Table is the state's constants for the return's tax year.
func (w *Worksheet) Table() taxdata.State { return w.table }

// Params is shorthand for Table().Params.
func (w *Worksheet) Params() taxdata.Params { return w.table.Params }

// Status is the filing status used for state tables.
func (w *Worksheet) Status() business.FilingStatus { return w.ret.FilingStatus }

// Residency is the configured residency type, defaulting to full year.
func (w *Worksheet) Residency() business.ResidencyType { return w.res.ResidencyType }

// DayRatio is the share of the year the filer lived in the state.
func (w *Worksheet) DayRatio() float64 { return w.res.ApportionmentRatio }

// IsResident reports whether the filer lived in the state at all.
func (w *Worksheet) IsResident() bool {
	return w.res.ResidencyType != business.ResidencyNonresident
}

// FederalAGI is the recorded starting point.
func (w *Worksheet) FederalAGI() traced.TracedValue { return w.res.FederalAGI }

// ID returns the full node id for a key.
func (w *Worksheet) ID(key string) string { return w.base.id(key) }

func (w *Worksheet) federalInputs(values ...traced.TracedValue) []string {
	var ids []string
	for _, v := range values {
		if _, ok := w.fedIDs[v.NodeID]; ok {
			ids = append(ids, v.NodeID)
		}
	}
	return ids
}

func (w *Worksheet) detail(v traced.TracedValue) traced.TracedValue {
	w.details[v.NodeID] = v
	return v
}

// FromFederal records a federal figure the state reads, linked to the
// federal node it came from.
func (w *Worksheet) FromFederal(key string, v traced.TracedValue) traced.TracedValue {
	return w.detail(w.rec.Compute(v.Amount, w.ID(key), w.federalInputs(v), w.base.label(key)))
}

// FederalLine records the federal node nodeID under key when the federal
// return produced it.
func (w *Worksheet) FederalLine(key, nodeID string) (traced.TracedValue, bool) {
	v, ok := w.fedIDs[nodeID]
	if !ok {
		return traced.TracedValue{}, false
	}
	return w.FromFederal(key, v), true
}

// Input records a figure taken from the return.
func (w *Worksheet) Input(key string, amount int64) traced.TracedValue {
	return w.detail(w.rec.Input(amount, w.ID(key), w.base.label(key)))
}

// Compute records a state-specific derived figure.
func (w *Worksheet) Compute(key string, amount int64, inputs ...traced.TracedValue) traced.TracedValue {
	return w.detail(w.rec.Compute(amount, w.ID(key), traced.IDs(inputs...), w.base.label(key)))
}

// Add records an addition to federal AGI. Zero amounts are not recorded.
func (w *Worksheet) Add(key string, amount int64, inputs ...traced.TracedValue) {
	if amount == 0 {
		return
	}
	w.additions = append(w.additions, w.Compute(key, amount, inputs...))
}

// Subtract records a subtraction from federal AGI. Zero amounts are not
// recorded.
func (w *Worksheet) Subtract(key string, amount int64, inputs ...traced.TracedValue) {
	if amount == 0 {
		return
	}
	w.subtractions = append(w.subtractions, w.Compute(key, amount, inputs...))
}

func (w *Worksheet) sumOrZero(key string, values []traced.TracedValue) traced.TracedValue {
	if len(values) == 0 {
		return w.rec.Zero(w.ID(key), w.base.label(key))
	}
	return w.rec.Sum(w.ID(key), w.base.label(key), values...)
}

func (w *Worksheet) ensure(s stage) {
	if w.stage < stageAGI && s >= stageAGI {
		w.ComputeAGI()
	}
	if w.stage < stageTaxable && s >= stageTaxable {
		w.ComputeTaxable()
	}
	if w.stage < stageTax && s >= stageTax {
		w.ComputeTax()
	}
}

// ComputeAGI records additions, subtractions and state AGI, then the share of
// income the state may tax.
func (w *Worksheet) ComputeAGI() traced.TracedValue {
	if w.stage >= stageAGI {
		return w.res.StateAGI
	}
	w.res.Additions = w.sumOrZero("additions", w.additions)
	w.res.Subtractions = w.sumOrZero("subtractions", w.subtractions)
	agi := w.res.FederalAGI.Amount + w.res.Additions.Amount - w.res.Subtractions.Amount
	w.res.StateAGI = w.rec.Compute(agi, w.ID("agi"), traced.IDs(w.res.FederalAGI, w.res.Additions, w.res.Subtractions), w.base.label("agi"))

	w.fraction = 1
	if w.res.ResidencyType != business.ResidencyFullYear {
		resident := taxmath.ApplyRate(taxmath.Max0(agi), w.res.ApportionmentRatio)
		source := resident + taxmath.Max0(w.cfg.NonresidentSourceIncome)
		if agi > 0 {
			source = taxmath.Min(source, agi)
			w.fraction = taxmath.ClampRatio(float64(source) / float64(agi))
		} else {
			w.fraction = taxmath.ClampRatio(w.res.ApportionmentRatio)
		}
		w.sourceIncome = w.rec.Compute(source, w.ID("source_income"), traced.IDs(w.res.StateAGI), w.base.label("source_income"))
	}
	w.res.IncomeFraction = w.fraction
	w.stage = stageAGI
	return w.res.StateAGI
}

// AGI returns state AGI, computing it if needed.
func (w *Worksheet) AGI() traced.TracedValue {
	return w.ComputeAGI()
}

// IncomeFraction is the share of state AGI the state may tax, in [0,1].
func (w *Worksheet) IncomeFraction() float64 {
	w.ensure(stageAGI)
	return w.fraction
}

// Deduct records a deduction from state AGI.
func (w *Worksheet) Deduct(key string, amount int64, inputs ...traced.TracedValue) {
	w.ensure(stageAGI)
	if amount == 0 {
		return
	}
	w.deductions = append(w.deductions, w.Compute(key, amount, inputs...))
}

// Exempt records a personal or dependent exemption.
func (w *Worksheet) Exempt(key string, amount int64, inputs ...traced.TracedValue) {
	w.ensure(stageAGI)
	if amount == 0 {
		return
	}
	w.exemptions = append(w.exemptions, w.Compute(key, amount, inputs...))
}

// ComputeTaxable records deductions, exemptions and taxable income, floored
// at zero.
func (w *Worksheet) ComputeTaxable() traced.TracedValue {
	w.ensure(stageAGI)
	if w.stage >= stageTaxable {
		return w.res.TaxableIncome
	}
	w.res.Deduction = w.sumOrZero("deduction", w.deductions)
	w.res.Exemptions = w.sumOrZero("exemptions", w.exemptions)
	taxable := taxmath.Max0(w.res.StateAGI.Amount - w.res.Deduction.Amount - w.res.Exemptions.Amount)
	w.res.TaxableIncome = w.rec.Compute(taxable, w.ID("taxable_income"), traced.IDs(w.res.StateAGI, w.res.Deduction, w.res.Exemptions), w.base.label("taxable_income"))
	w.stage = stageTaxable
	return w.res.TaxableIncome
}

// TaxBase is the income the rate schedule applies to: taxable income, or its
// apportioned share under ApportionByRatio.
func (w *Worksheet) TaxBase() traced.TracedValue {
	taxable := w.ComputeTaxable()
	if w.Method != ApportionByRatio || w.fraction >= 1 {
		return taxable
	}
	if v, ok := w.rec.Get(w.ID("apportioned_income")); ok {
		return v
	}
	return w.Compute("apportioned_income", taxmath.ApplyRate(taxable.Amount, w.fraction), taxable, w.sourceIncome)
}

// BracketTax applies the state's rate schedule to the tax base.
func (w *Worksheet) BracketTax() traced.TracedValue {
	base := w.TaxBase()
	tax := taxmath.BracketTax(base.Amount, w.table.Brackets.For(w.Status()))
	v := w.Compute("bracket_tax", tax, base)
	w.taxes = append(w.taxes, v)
	return v
}

// AddTax records a tax levied alongside the rate schedule.
func (w *Worksheet) AddTax(key string, amount int64, inputs ...traced.TracedValue) {
	w.ensure(stageTaxable)
	if amount == 0 {
		return
	}
	w.taxes = append(w.taxes, w.Compute(key, amount, inputs...))
}

// ComputeTax records tax before credits. With no taxes added it runs the
// rate schedule.
func (w *Worksheet) ComputeTax() traced.TracedValue {
	w.ensure(stageTaxable)
	if w.stage >= stageTax {
		return w.res.TaxBeforeCredits
	}
	if len(w.taxes) == 0 {
		w.BracketTax()
	}
	w.res.TaxBeforeCredits = w.rec.Sum(w.ID("tax"), w.base.label("tax"), w.taxes...)
	w.stage = stageTax
	return w.res.TaxBeforeCredits
}

// Credit records a nonrefundable credit. Credits are limited to tax in Finish.
func (w *Worksheet) Credit(key string, amount int64, inputs ...traced.TracedValue) {
	if amount <= 0 {
		return
	}
	w.credits = append(w.credits, w.Compute(key, amount, inputs...))
}

// RefundableCredit records a credit paid out even when it exceeds tax.
func (w *Worksheet) RefundableCredit(key string, amount int64, inputs ...traced.TracedValue) {
	if amount <= 0 {
		return
	}
	w.refundable = append(w.refundable, w.Compute(key, amount, inputs...))
}

// LocalTax records a city or county income tax.
func (w *Worksheet) LocalTax(key string, amount int64, inputs ...traced.TracedValue) {
	if amount <= 0 {
		return
	}
	w.local = append(w.local, w.Compute(key, amount, inputs...))
}

// StateEITC records a refundable credit equal to rate times the federal
// earned income credit. Nonresidents get none; part-year residents get the
// resident share.
func (w *Worksheet) StateEITC(rate float64) {
	if rate <= 0 || w.fed.Line27.Amount <= 0 || !w.IsResident() {
		return
	}
	federal := w.FromFederal("federal_eic", w.fed.Line27)
	credit := taxmath.ApplyRate(federal.Amount, rate)
	if w.res.ResidencyType == business.ResidencyPartYear {
		credit = taxmath.ApplyRate(credit, w.res.ApportionmentRatio)
	}
	w.RefundableCredit("eitc", credit, federal)
}

// Dependents is the number of dependents on the return.
func (w *Worksheet) Dependents() int { return len(w.ret.Dependents) }

// Filers is one, or two on a joint return with a spouse.
func (w *Worksheet) Filers() int {
	if w.ret.FilingStatus.IsJoint() && w.ret.Spouse != nil {
		return 2
	}
	return 1
}

func (w *Worksheet) ownsDoc(stateCode string) bool {
	return strings.EqualFold(strings.TrimSpace(stateCode), w.base.code)
}

func (w *Worksheet) withholding() traced.TracedValue {
	var parts []traced.TracedValue
	for i, d := range w.ret.W2s {
		if !w.ownsDoc(d.StateCode) {
			continue
		}
		if d.StateWithheld != 0 {
			parts = append(parts, w.rec.Input(d.StateWithheld, w.ID(docNode("w2", d.ID, i, "state_withheld")), "State tax withheld: "+d.EmployerName))
		}
		if d.LocalWithheld != 0 {
			parts = append(parts, w.rec.Input(d.LocalWithheld, w.ID(docNode("w2", d.ID, i, "local_withheld")), "Local tax withheld: "+d.EmployerName))
		}
	}
	for i, r := range w.ret.Form1099R {
		if w.ownsDoc(r.StateCode) && r.StateWithheld != 0 {
			parts = append(parts, w.rec.Input(r.StateWithheld, w.ID(docNode("r", r.ID, i, "state_withheld")), "State tax withheld: "+r.PayerName))
		}
	}
	return w.sumOrZero("withholding", parts)
}

// Finish records credits, apportionment, local tax, payments and the refund
// or amount owed, and returns the completed result.
func (w *Worksheet) Finish() business.StateComputeResult {
	tax := w.ComputeTax()
	rec := w.rec

	if len(w.credits) == 0 {
		w.res.Credits = rec.Zero(w.ID("credits"), w.base.label("credits"))
	} else {
		var total int64
		for _, c := range w.credits {
			total += c.Amount
		}
		ids := append(traced.IDs(w.credits...), tax.NodeID)
		w.res.Credits = rec.Compute(taxmath.Min(total, tax.Amount), w.ID("credits"), ids, w.base.label("credits"))
	}
	after := rec.Compute(taxmath.Max0(tax.Amount-w.res.Credits.Amount), w.ID("tax_after_credits"), traced.IDs(tax, w.res.Credits), w.base.label("tax_after_credits"))
	w.detail(after)

	if w.Method == ApportionTax && w.fraction < 1 {
		w.res.ApportionedTax = rec.Compute(taxmath.ApplyRate(after.Amount, w.fraction), w.ID("apportioned_tax"),
			traced.IDs(after, w.sourceIncome, w.res.StateAGI), w.base.label("apportioned_tax"))
	} else {
		w.res.ApportionedTax = rec.Compute(after.Amount, w.ID("apportioned_tax"), traced.IDs(after), w.base.label("apportioned_tax"))
	}
	w.res.LocalTax = w.sumOrZero("local_tax", w.local)
	w.res.TotalTax = rec.Sum(w.ID("total_tax"), w.base.label("total_tax"), w.res.ApportionedTax, w.res.LocalTax)

	w.res.Withholding = w.withholding()
	if w.cfg.EstimatedPayments != 0 {
		w.res.EstimatedPayments = rec.Input(w.cfg.EstimatedPayments, w.ID("estimated_payments"), w.base.label("estimated_payments"))
	} else {
		w.res.EstimatedPayments = rec.Zero(w.ID("estimated_payments"), w.base.label("estimated_payments"))
	}
	payments := []traced.TracedValue{w.res.Withholding, w.res.EstimatedPayments}
	if len(w.refundable) > 0 {
		payments = append(payments, w.detail(rec.Sum(w.ID("refundable_credits"), w.base.label("refundable_credits"), w.refundable...)))
	}
	w.res.TotalPayments = rec.Sum(w.ID("total_payments"), w.base.label("total_payments"), payments...)

	balance := w.res.TotalPayments.Amount - w.res.TotalTax.Amount
	ids := traced.IDs(w.res.TotalPayments, w.res.TotalTax)
	w.res.Refund = rec.Compute(taxmath.Max0(balance), w.ID("refund"), ids, w.base.label("refund"))
	w.res.AmountOwed = rec.Compute(taxmath.Max0(-balance), w.ID("amount_owed"), ids, w.base.label("amount_owed"))

	w.res.Details = w.details
	w.res.Nodes = rec.Nodes()
	w.stage = stageDone
	return w.res
}

// docNode keys a document field by position first, then id.
func docNode(prefix, id string, index int, field string) string {
	key := prefix + "." + strconv.Itoa(index)
	if id != "" {
		key += "." + id
	}
	return key + "." + field
}
