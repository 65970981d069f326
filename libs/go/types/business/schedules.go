package business

// ScheduleDRow is one capital transaction as reported on Form 8949.
type ScheduleDRow struct {
	ID               string `json:"id"`
	Description      string `json:"description"`
	Proceeds         int64  `json:"proceeds"`
	CostBasis        int64  `json:"cost_basis"`
	Adjustment       int64  `json:"adjustment"`
	Gain             int64  `json:"gain"`
	LongTerm         bool   `json:"long_term"`
	BasisFromRSUVest bool   `json:"basis_from_rsu_vest"`
}

// ScheduleDResult is the capital gain and loss summary.
type ScheduleDResult struct {
	Rows                     []ScheduleDRow `json:"rows"`
	ShortTermGain            int64          `json:"short_term_gain"`
	LongTermGain             int64          `json:"long_term_gain"`
	CapitalGainDistributions int64          `json:"capital_gain_distributions"`
	ShortTermCarryoverUsed   int64          `json:"short_term_carryover_used"`
	LongTermCarryoverUsed    int64          `json:"long_term_carryover_used"`
	NetShortTerm             int64          `json:"net_short_term"`
	NetLongTerm              int64          `json:"net_long_term"`
	NetGain                  int64          `json:"net_gain"`
	Line7                    int64          `json:"line7"`
	NetPreferentialGain      int64          `json:"net_preferential_gain"`
	ShortTermCarryforward    int64          `json:"short_term_carryforward"`
	LongTermCarryforward     int64          `json:"long_term_carryforward"`
}

// ScheduleCLine is one business on Schedule C.
type ScheduleCLine struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Owner       Owner  `json:"owner"`
	GrossIncome int64  `json:"gross_income"`
	Expenses    int64  `json:"expenses"`
	NetProfit   int64  `json:"net_profit"`
	IsSSTB      bool   `json:"is_sstb"`
}

// ScheduleCResult totals all sole proprietorships.
type ScheduleCResult struct {
	Businesses []ScheduleCLine `json:"businesses"`
	NetProfit  int64           `json:"net_profit"`
}

// SETaxPerson is Schedule SE for one person.
type SETaxPerson struct {
	Owner             Owner `json:"owner"`
	NetEarnings       int64 `json:"net_earnings"`
	TaxableEarnings   int64 `json:"taxable_earnings"`
	SocialSecurityTax int64 `json:"social_security_tax"`
	MedicareTax       int64 `json:"medicare_tax"`
	Tax               int64 `json:"tax"`
}

// SETaxResult is Schedule SE for the return.
type SETaxResult struct {
	People         []SETaxPerson `json:"people"`
	TotalTax       int64         `json:"total_tax"`
	DeductibleHalf int64         `json:"deductible_half"`
}

// Schedule1Result is additional income and adjustments to income.
type Schedule1Result struct {
	TaxableRefunds         int64 `json:"taxable_refunds"`
	BusinessIncome         int64 `json:"business_income"`
	RentalRoyaltyIncome    int64 `json:"rental_royalty_income"`
	PassThroughIncome      int64 `json:"pass_through_income"`
	Unemployment           int64 `json:"unemployment"`
	OtherIncome            int64 `json:"other_income"`
	HSATaxableDistribution int64 `json:"hsa_taxable_distribution"`
	AdditionalIncome       int64 `json:"additional_income"`
	HSADeduction           int64 `json:"hsa_deduction"`
	SETaxDeduction         int64 `json:"se_tax_deduction"`
	IRADeduction           int64 `json:"ira_deduction"`
	StudentLoanDeduction   int64 `json:"student_loan_deduction"`
	Adjustments            int64 `json:"adjustments"`
}

// HSAResult is Form 8889.
type HSAResult struct {
	ContributionLimit     int64 `json:"contribution_limit"`
	PersonalContributions int64 `json:"personal_contributions"`
	EmployerContributions int64 `json:"employer_contributions"`
	Deduction             int64 `json:"deduction"`
	ExcessContributions   int64 `json:"excess_contributions"`
	ExciseTax             int64 `json:"excise_tax"`
	Distributions         int64 `json:"distributions"`
	TaxableDistributions  int64 `json:"taxable_distributions"`
	Penalty               int64 `json:"penalty"`
}

// IRADeductionResult is the traditional IRA deduction worksheet.
type IRADeductionResult struct {
	ContributionLimit int64 `json:"contribution_limit"`
	TaxpayerAllowed   int64 `json:"taxpayer_allowed"`
	SpouseAllowed     int64 `json:"spouse_allowed"`
	Deduction         int64 `json:"deduction"`
}

// StudentLoanResult is the student loan interest deduction worksheet.
type StudentLoanResult struct {
	InterestPaid int64 `json:"interest_paid"`
	Limited      int64 `json:"limited"`
	MAGI         int64 `json:"magi"`
	Deduction    int64 `json:"deduction"`
}

// SocialSecurityResult is the taxable benefits worksheet.
type SocialSecurityResult struct {
	GrossBenefits     int64 `json:"gross_benefits"`
	ProvisionalIncome int64 `json:"provisional_income"`
	TaxableBenefits   int64 `json:"taxable_benefits"`
}

// ScheduleAResult is itemized deductions.
type ScheduleAResult struct {
	MedicalExpenses     int64 `json:"medical_expenses"`
	MedicalFloor        int64 `json:"medical_floor"`
	MedicalDeduction    int64 `json:"medical_deduction"`
	SALTPaid            int64 `json:"salt_paid"`
	SALTCap             int64 `json:"salt_cap"`
	SALTDeduction       int64 `json:"salt_deduction"`
	InterestDeduction   int64 `json:"interest_deduction"`
	CharitableCash      int64 `json:"charitable_cash"`
	CharitableNonCash   int64 `json:"charitable_non_cash"`
	CharitableDeduction int64 `json:"charitable_deduction"`
	CasualtyLoss        int64 `json:"casualty_loss"`
	Other               int64 `json:"other"`
	Total               int64 `json:"total"`
}

// DeductionMethod records which deduction was taken on line 12.
type DeductionMethod string

const (
	DeductionStandard DeductionMethod = "standard"
	DeductionItemized DeductionMethod = "itemized"
)

// QBIResult is the qualified business income deduction.
type QBIResult struct {
	QualifiedBusinessIncome int64   `json:"qualified_business_income"`
	REITDividends           int64   `json:"reit_dividends"`
	TentativeDeduction      int64   `json:"tentative_deduction"`
	PhaseInRatio            float64 `json:"phase_in_ratio"`
	IncomeLimit             int64   `json:"income_limit"`
	Deduction               int64   `json:"deduction"`
}

// SeniorDeductionResult is the additional deduction for filers 65 and older.
type SeniorDeductionResult struct {
	EligibleFilers int   `json:"eligible_filers"`
	MAGI           int64 `json:"magi"`
	Deduction      int64 `json:"deduction"`
}

// AMTResult is Form 6251.
type AMTResult struct {
	TaxableIncome       int64 `json:"taxable_income"`
	SALTAddBack         int64 `json:"salt_add_back"`
	ISOAdjustment       int64 `json:"iso_adjustment"`
	AMTI                int64 `json:"amti"`
	Exemption           int64 `json:"exemption"`
	ExemptionReduction  int64 `json:"exemption_reduction"`
	TaxableExcess       int64 `json:"taxable_excess"`
	TentativeMinimumTax int64 `json:"tentative_minimum_tax"`
	RegularTax          int64 `json:"regular_tax"`
	AMT                 int64 `json:"amt"`
}

// ChildTaxCreditResult is Schedule 8812.
type ChildTaxCreditResult struct {
	QualifyingChildren       int   `json:"qualifying_children"`
	OtherDependents          int   `json:"other_dependents"`
	InitialCredit            int64 `json:"initial_credit"`
	PhaseOutReduction        int64 `json:"phase_out_reduction"`
	CreditAfterPhaseOut      int64 `json:"credit_after_phase_out"`
	NonrefundableCredit      int64 `json:"nonrefundable_credit"`
	AdditionalChildTaxCredit int64 `json:"additional_child_tax_credit"`
}

// DependentCareResult is Form 2441.
type DependentCareResult struct {
	QualifyingPersons int     `json:"qualifying_persons"`
	Expenses          int64   `json:"expenses"`
	ExpenseLimit      int64   `json:"expense_limit"`
	EmployerBenefits  int64   `json:"employer_benefits"`
	EligibleExpenses  int64   `json:"eligible_expenses"`
	CreditRate        float64 `json:"credit_rate"`
	TentativeCredit   int64   `json:"tentative_credit"`
	Credit            int64   `json:"credit"`
}

// SaversCreditResult is Form 8880.
type SaversCreditResult struct {
	TaxpayerContributions int64   `json:"taxpayer_contributions"`
	SpouseContributions   int64   `json:"spouse_contributions"`
	EligibleContributions int64   `json:"eligible_contributions"`
	CreditRate            float64 `json:"credit_rate"`
	TentativeCredit       int64   `json:"tentative_credit"`
	Credit                int64   `json:"credit"`
}

// EnergyCreditResult is Form 5695.
type EnergyCreditResult struct {
	PartICost      int64 `json:"part_i_cost"`
	PartICredit    int64 `json:"part_i_credit"`
	PartIICredit   int64 `json:"part_ii_credit"`
	HeatPumpCredit int64 `json:"heat_pump_credit"`
	TotalCredit    int64 `json:"total_credit"`
	AllowedCredit  int64 `json:"allowed_credit"`
	Carryforward   int64 `json:"carryforward"`
}

// EducationCreditResult is Form 8863.
type EducationCreditResult struct {
	AOTCTentative       int64   `json:"aotc_tentative"`
	LLCTentative        int64   `json:"llc_tentative"`
	PhaseOutRatio       float64 `json:"phase_out_ratio"`
	RefundableAOTC      int64   `json:"refundable_aotc"`
	TentativeCredit     int64   `json:"tentative_credit"`
	NonrefundableCredit int64   `json:"nonrefundable_credit"`
}

// EICResult is the earned income credit worksheet.
type EICResult struct {
	Eligible           bool   `json:"eligible"`
	Reason             string `json:"reason,omitempty"`
	QualifyingChildren int    `json:"qualifying_children"`
	EarnedIncome       int64  `json:"earned_income"`
	InvestmentIncome   int64  `json:"investment_income"`
	Credit             int64  `json:"credit"`
}

// AdditionalMedicareResult is Form 8959.
type AdditionalMedicareResult struct {
	MedicareWages     int64 `json:"medicare_wages"`
	SelfEmployment    int64 `json:"self_employment"`
	Threshold         int64 `json:"threshold"`
	Tax               int64 `json:"tax"`
	WithholdingExcess int64 `json:"withholding_excess"`
}

// NIITResult is Form 8960.
type NIITResult struct {
	NetInvestmentIncome int64 `json:"net_investment_income"`
	MAGI                int64 `json:"magi"`
	Threshold           int64 `json:"threshold"`
	Tax                 int64 `json:"tax"`
}

// OtherTaxesResult is Schedule 2 Part II.
type OtherTaxesResult struct {
	SelfEmploymentTax        int64 `json:"self_employment_tax"`
	AdditionalMedicare       int64 `json:"additional_medicare"`
	NIIT                     int64 `json:"niit"`
	EarlyDistributionPenalty int64 `json:"early_distribution_penalty"`
	HSAPenalty               int64 `json:"hsa_penalty"`
	HSAExcise                int64 `json:"hsa_excise"`
	Total                    int64 `json:"total"`
}
