package business

import (
	"errors"
	"fmt"

	"github.com/cyphera/cyphera-tax/libs/go/traced"
)

// ErrRowOutOfRange is returned by row lookups used by form-field mappers.
var ErrRowOutOfRange = errors.New("row index out of range")

// Form1040Result is the computed federal return. Every line is a traced
// value; sub-results are absent when their schedule was not triggered.
type Form1040Result struct {
	TaxYear      int          `json:"tax_year"`
	FilingStatus FilingStatus `json:"filing_status"`

	Line1a traced.TracedValue `json:"line1a"`
	Line1z traced.TracedValue `json:"line1z"`
	Line2a traced.TracedValue `json:"line2a"`
	Line2b traced.TracedValue `json:"line2b"`
	Line3a traced.TracedValue `json:"line3a"`
	Line3b traced.TracedValue `json:"line3b"`
	Line4a traced.TracedValue `json:"line4a"`
	Line4b traced.TracedValue `json:"line4b"`
	Line5a traced.TracedValue `json:"line5a"`
	Line5b traced.TracedValue `json:"line5b"`
	Line6a traced.TracedValue `json:"line6a"`
	Line6b traced.TracedValue `json:"line6b"`
	Line7  traced.TracedValue `json:"line7"`
	Line8  traced.TracedValue `json:"line8"`
	Line9  traced.TracedValue `json:"line9"`
	Line10 traced.TracedValue `json:"line10"`
	Line11 traced.TracedValue `json:"line11"`
	Line12 traced.TracedValue `json:"line12"`
	Line13 traced.TracedValue `json:"line13"`
	Line14 traced.TracedValue `json:"line14"`
	Line15 traced.TracedValue `json:"line15"`
	Line16 traced.TracedValue `json:"line16"`
	Line17 traced.TracedValue `json:"line17"`
	Line18 traced.TracedValue `json:"line18"`
	Line19 traced.TracedValue `json:"line19"`
	Line20 traced.TracedValue `json:"line20"`
	Line21 traced.TracedValue `json:"line21"`
	Line22 traced.TracedValue `json:"line22"`
	Line23 traced.TracedValue `json:"line23"`
	Line24 traced.TracedValue `json:"line24"`
	Line25 traced.TracedValue `json:"line25"`
	Line26 traced.TracedValue `json:"line26"`
	Line27 traced.TracedValue `json:"line27"`
	Line28 traced.TracedValue `json:"line28"`
	Line29 traced.TracedValue `json:"line29"`
	Line31 traced.TracedValue `json:"line31"`
	Line32 traced.TracedValue `json:"line32"`
	Line33 traced.TracedValue `json:"line33"`
	Line34 traced.TracedValue `json:"line34"`
	Line37 traced.TracedValue `json:"line37"`

	DeductionMethod   DeductionMethod `json:"deduction_method"`
	StandardDeduction int64           `json:"standard_deduction"`
	UsedQDCGWorksheet bool            `json:"used_qdcg_worksheet"`

	ScheduleA          Option[ScheduleAResult]          `json:"schedule_a"`
	ScheduleC          Option[ScheduleCResult]          `json:"schedule_c"`
	ScheduleD          Option[ScheduleDResult]          `json:"schedule_d"`
	Schedule1          Option[Schedule1Result]          `json:"schedule_1"`
	ScheduleSE         Option[SETaxResult]              `json:"schedule_se"`
	HSA                Option[HSAResult]                `json:"hsa"`
	IRADeduction       Option[IRADeductionResult]       `json:"ira_deduction"`
	StudentLoan        Option[StudentLoanResult]        `json:"student_loan"`
	SocialSecurity     Option[SocialSecurityResult]     `json:"social_security"`
	QBI                Option[QBIResult]                `json:"qbi"`
	SeniorDeduction    Option[SeniorDeductionResult]    `json:"senior_deduction"`
	AMT                Option[AMTResult]                `json:"amt"`
	ChildTaxCredit     Option[ChildTaxCreditResult]     `json:"child_tax_credit"`
	DependentCare      Option[DependentCareResult]      `json:"dependent_care"`
	EducationCredit    Option[EducationCreditResult]    `json:"education_credit"`
	SaversCredit       Option[SaversCreditResult]       `json:"savers_credit"`
	EnergyCredit       Option[EnergyCreditResult]       `json:"energy_credit"`
	EIC                Option[EICResult]                `json:"eic"`
	AdditionalMedicare Option[AdditionalMedicareResult] `json:"additional_medicare"`
	NIIT               Option[NIITResult]               `json:"niit"`
	OtherTaxes         Option[OtherTaxesResult]         `json:"other_taxes"`

	Nodes []traced.TracedValue `json:"nodes"`
}

// Refund is line 34.
func (r *Form1040Result) Refund() int64 { return r.Line34.Amount }

// AmountOwed is line 37.
func (r *Form1040Result) AmountOwed() int64 { return r.Line37.Amount }

// TotalTax is line 24.
func (r *Form1040Result) TotalTax() int64 { return r.Line24.Amount }

// TotalPayments is line 33.
func (r *Form1040Result) TotalPayments() int64 { return r.Line33.Amount }

// AGI is line 11.
func (r *Form1040Result) AGI() int64 { return r.Line11.Amount }

// TransactionRow returns the i-th Form 8949 row for field mapping. An index
// outside the Schedule D rows is a caller bug.
func (r *Form1040Result) TransactionRow(i int) (ScheduleDRow, error) {
	sd, ok := r.ScheduleD.Get()
	if !ok || i < 0 || i >= len(sd.Rows) {
		return ScheduleDRow{}, fmt.Errorf("%w: transaction row %d", ErrRowOutOfRange, i)
	}
	return sd.Rows[i], nil
}

// Lines returns the line values keyed by form line name, in form order.
func (r *Form1040Result) Lines() []NamedLine {
	return []NamedLine{
		{"1a", r.Line1a}, {"1z", r.Line1z}, {"2a", r.Line2a}, {"2b", r.Line2b},
		{"3a", r.Line3a}, {"3b", r.Line3b}, {"4a", r.Line4a}, {"4b", r.Line4b},
		{"5a", r.Line5a}, {"5b", r.Line5b}, {"6a", r.Line6a}, {"6b", r.Line6b},
		{"7", r.Line7}, {"8", r.Line8}, {"9", r.Line9}, {"10", r.Line10},
		{"11", r.Line11}, {"12", r.Line12}, {"13", r.Line13}, {"14", r.Line14},
		{"15", r.Line15}, {"16", r.Line16}, {"17", r.Line17}, {"18", r.Line18},
		{"19", r.Line19}, {"20", r.Line20}, {"21", r.Line21}, {"22", r.Line22},
		{"23", r.Line23}, {"24", r.Line24}, {"25", r.Line25}, {"26", r.Line26},
		{"27", r.Line27}, {"28", r.Line28}, {"29", r.Line29}, {"31", r.Line31},
		{"32", r.Line32}, {"33", r.Line33}, {"34", r.Line34}, {"37", r.Line37},
	}
}

// NamedLine pairs a form line name with its value.
type NamedLine struct {
	Line  string             `json:"line"`
	Value traced.TracedValue `json:"value"`
}

// ScheduleNECResult is the flat 30% (or treaty) tax on US-source FDAP income.
type ScheduleNECResult struct {
	Dividends int64   `json:"dividends"`
	Rate      float64 `json:"rate"`
	Tax       int64   `json:"tax"`
}

// Form1040NRResult is the computed nonresident alien return.
type Form1040NRResult struct {
	TaxYear      int          `json:"tax_year"`
	FilingStatus FilingStatus `json:"filing_status"`

	Line1a  traced.TracedValue `json:"line1a"`
	Line1z  traced.TracedValue `json:"line1z"`
	Line8   traced.TracedValue `json:"line8"`
	Line9   traced.TracedValue `json:"line9"`
	Line10  traced.TracedValue `json:"line10"`
	Line11  traced.TracedValue `json:"line11"`
	Line12  traced.TracedValue `json:"line12"`
	Line14  traced.TracedValue `json:"line14"`
	Line15  traced.TracedValue `json:"line15"`
	Line16  traced.TracedValue `json:"line16"`
	Line22  traced.TracedValue `json:"line22"`
	Line23a traced.TracedValue `json:"line23a"`
	Line23  traced.TracedValue `json:"line23"`
	Line24  traced.TracedValue `json:"line24"`
	Line25  traced.TracedValue `json:"line25"`
	Line33  traced.TracedValue `json:"line33"`
	Line34  traced.TracedValue `json:"line34"`
	Line37  traced.TracedValue `json:"line37"`

	ScheduleNEC Option[ScheduleNECResult] `json:"schedule_nec"`
	ScheduleA   Option[ScheduleAResult]   `json:"schedule_a"`
	ScheduleC   Option[ScheduleCResult]   `json:"schedule_c"`

	Nodes []traced.TracedValue `json:"nodes"`
}

// ToForm1040Result maps the nonresident return onto the Form 1040 shape so
// downstream consumers (state modules, review, field mapping) handle one type.
// Lines with no 1040-NR counterpart are zero.
func (r *Form1040NRResult) ToForm1040Result() *Form1040Result {
	zero := func(id string) traced.TracedValue { return traced.Zero(id) }
	out := &Form1040Result{
		TaxYear:         r.TaxYear,
		FilingStatus:    r.FilingStatus,
		Line1a:          r.Line1a,
		Line1z:          r.Line1z,
		Line2a:          zero("f1040.line2a"),
		Line2b:          zero("f1040.line2b"),
		Line3a:          zero("f1040.line3a"),
		Line3b:          zero("f1040.line3b"),
		Line4a:          zero("f1040.line4a"),
		Line4b:          zero("f1040.line4b"),
		Line5a:          zero("f1040.line5a"),
		Line5b:          zero("f1040.line5b"),
		Line6a:          zero("f1040.line6a"),
		Line6b:          zero("f1040.line6b"),
		Line7:           zero("f1040.line7"),
		Line8:           r.Line8,
		Line9:           r.Line9,
		Line10:          r.Line10,
		Line11:          r.Line11,
		Line12:          r.Line12,
		Line13:          zero("f1040.line13"),
		Line14:          r.Line14,
		Line15:          r.Line15,
		Line16:          r.Line16,
		Line17:          zero("f1040.line17"),
		Line18:          r.Line16,
		Line19:          zero("f1040.line19"),
		Line20:          zero("f1040.line20"),
		Line21:          zero("f1040.line21"),
		Line22:          r.Line22,
		Line23:          r.Line23,
		Line24:          r.Line24,
		Line25:          r.Line25,
		Line26:          zero("f1040.line26"),
		Line27:          zero("f1040.line27"),
		Line28:          zero("f1040.line28"),
		Line29:          zero("f1040.line29"),
		Line31:          zero("f1040.line31"),
		Line32:          zero("f1040.line32"),
		Line33:          r.Line33,
		Line34:          r.Line34,
		Line37:          r.Line37,
		DeductionMethod: DeductionItemized,
		ScheduleA:       r.ScheduleA,
		ScheduleC:       r.ScheduleC,
		Nodes:           append([]traced.TracedValue(nil), r.Nodes...),
	}
	return out
}

// DataConfidence says whether a jurisdiction's constants were checked against
// published instructions for the tax year.
type DataConfidence string

const (
	ConfidenceVerified    DataConfidence = "verified"
	ConfidenceProvisional DataConfidence = "provisional"
)

// StateComputeResult is the computed return for one state.
type StateComputeResult struct {
	StateCode          string         `json:"state_code"`
	StateName          string         `json:"state_name"`
	ResidencyType      ResidencyType  `json:"residency_type"`
	ApportionmentRatio float64        `json:"apportionment_ratio"`
	IncomeFraction     float64        `json:"income_fraction"`
	Confidence         DataConfidence `json:"confidence"`

	FederalAGI        traced.TracedValue `json:"federal_agi"`
	Additions         traced.TracedValue `json:"additions"`
	Subtractions      traced.TracedValue `json:"subtractions"`
	StateAGI          traced.TracedValue `json:"state_agi"`
	Deduction         traced.TracedValue `json:"deduction"`
	Exemptions        traced.TracedValue `json:"exemptions"`
	TaxableIncome     traced.TracedValue `json:"taxable_income"`
	TaxBeforeCredits  traced.TracedValue `json:"tax_before_credits"`
	Credits           traced.TracedValue `json:"credits"`
	ApportionedTax    traced.TracedValue `json:"apportioned_tax"`
	LocalTax          traced.TracedValue `json:"local_tax"`
	TotalTax          traced.TracedValue `json:"total_tax"`
	Withholding       traced.TracedValue `json:"withholding"`
	EstimatedPayments traced.TracedValue `json:"estimated_payments"`
	TotalPayments     traced.TracedValue `json:"total_payments"`
	Refund            traced.TracedValue `json:"refund"`
	AmountOwed        traced.TracedValue `json:"amount_owed"`

	// Details holds state-specific lines keyed by node id.
	Details map[string]traced.TracedValue `json:"details,omitempty"`

	Nodes []traced.TracedValue `json:"nodes"`
}

// Detail returns a state-specific line, or a zero value when absent.
func (r *StateComputeResult) Detail(nodeID string) traced.TracedValue {
	if v, ok := r.Details[nodeID]; ok {
		return v
	}
	return traced.Zero(nodeID)
}

// ReturnComputation bundles the federal result with all state results.
type ReturnComputation struct {
	TaxYear     int                      `json:"tax_year"`
	Federal     *Form1040Result          `json:"federal"`
	Nonresident Option[Form1040NRResult] `json:"nonresident"`
	States      []StateComputeResult     `json:"states"`
}

// WithoutNodes returns a shallow copy with every node list dropped. The
// receiver is not modified.
func (c *ReturnComputation) WithoutNodes() *ReturnComputation {
	out := *c
	if c.Federal != nil {
		fed := *c.Federal
		fed.Nodes = nil
		out.Federal = &fed
	}
	if nr, ok := c.Nonresident.Get(); ok {
		nr.Nodes = nil
		out.Nonresident = Some(nr)
	}
	out.States = make([]StateComputeResult, len(c.States))
	for i, st := range c.States {
		st.Nodes = nil
		out.States[i] = st
	}
	return &out
}
