package business

// FilingStatus is the federal filing status of a return.
type FilingStatus string

const (
	FilingSingle             FilingStatus = "single"
	FilingMarriedJoint       FilingStatus = "mfj"
	FilingMarriedSeparate    FilingStatus = "mfs"
	FilingHeadOfHousehold    FilingStatus = "hoh"
	FilingQualifyingSurvivor FilingStatus = "qw"
)

// IsMarried reports whether the status is one of the married statuses.
func (fs FilingStatus) IsMarried() bool {
	return fs == FilingMarriedJoint || fs == FilingMarriedSeparate
}

// IsJoint reports whether two people are on the return.
func (fs FilingStatus) IsJoint() bool {
	return fs == FilingMarriedJoint
}

// Valid reports whether fs is a known status.
func (fs FilingStatus) Valid() bool {
	switch fs {
	case FilingSingle, FilingMarriedJoint, FilingMarriedSeparate, FilingHeadOfHousehold, FilingQualifyingSurvivor:
		return true
	}
	return false
}

// Owner identifies whose document an entry is.
type Owner string

const (
	OwnerTaxpayer Owner = "taxpayer"
	OwnerSpouse   Owner = "spouse"
)

// ResidencyType describes how long a filer lived in a state during the year.
type ResidencyType string

const (
	ResidencyFullYear    ResidencyType = "full-year"
	ResidencyPartYear    ResidencyType = "part-year"
	ResidencyNonresident ResidencyType = "nonresident"
)

// TaxReturn is the complete input for one computation. All amounts are cents.
// The engine reads it and never writes to it.
type TaxReturn struct {
	ID           string       `json:"id,omitempty"`
	TaxYear      int          `json:"tax_year"`
	FilingStatus FilingStatus `json:"filing_status"`
	Taxpayer     Person       `json:"taxpayer"`
	Spouse       *Person      `json:"spouse,omitempty"`
	Dependents   []Dependent  `json:"dependents,omitempty"`

	W2s          []W2                `json:"w2s,omitempty"`
	Form1099INT  []Form1099INT       `json:"form_1099_int,omitempty"`
	Form1099DIV  []Form1099DIV       `json:"form_1099_div,omitempty"`
	Form1099R    []Form1099R         `json:"form_1099_r,omitempty"`
	Form1099B    []Form1099B         `json:"form_1099_b,omitempty"`
	Form1099G    []Form1099G         `json:"form_1099_g,omitempty"`
	Form1099MISC []Form1099MISC      `json:"form_1099_misc,omitempty"`
	Form1099NEC  []Form1099NEC       `json:"form_1099_nec,omitempty"`
	SSA1099      []SSA1099           `json:"ssa_1099,omitempty"`
	ScheduleC    []ScheduleCBusiness `json:"schedule_c,omitempty"`
	ScheduleE    []ScheduleERental   `json:"schedule_e,omitempty"`
	ScheduleK1   []ScheduleK1        `json:"schedule_k1,omitempty"`
	RSUVests     []RSUVestEvent      `json:"rsu_vests,omitempty"`
	ISOExercises []ISOExercise       `json:"iso_exercises,omitempty"`

	ItemizedDeductions       *ItemizedDeductions    `json:"itemized_deductions,omitempty"`
	ForceItemize             bool                   `json:"force_itemize,omitempty"`
	HSA                      *HSAInfo               `json:"hsa,omitempty"`
	IRAContributions         *IRAContributions      `json:"ira_contributions,omitempty"`
	StudentLoanInterest      int64                  `json:"student_loan_interest,omitempty"`
	DependentCare            *DependentCareExpenses `json:"dependent_care,omitempty"`
	EnergyImprovements       *EnergyImprovements    `json:"energy_improvements,omitempty"`
	Education                []EducationExpense     `json:"education,omitempty"`
	EstimatedPayments        int64                  `json:"estimated_payments,omitempty"`
	CapitalLossCarryover     *CapitalLossCarryover  `json:"capital_loss_carryover,omitempty"`
	EnergyCreditCarryforward int64                  `json:"energy_credit_carryforward,omitempty"`
	NonresidentAlien         *NonresidentAlienInfo  `json:"nonresident_alien,omitempty"`

	StateReturns []StateReturnConfig `json:"state_returns,omitempty"`
}

// Person is the taxpayer or spouse.
type Person struct {
	FirstName               string `json:"first_name"`
	LastName                string `json:"last_name"`
	SSN                     string `json:"ssn,omitempty"`
	DateOfBirth             string `json:"date_of_birth,omitempty"`
	IsBlind                 bool   `json:"is_blind,omitempty"`
	CanBeClaimedAsDependent bool   `json:"can_be_claimed_as_dependent,omitempty"`
	IsFullTimeStudent       bool   `json:"is_full_time_student,omitempty"`
	IsDisabled              bool   `json:"is_disabled,omitempty"`
}

// Dependent is a person claimed on the return.
type Dependent struct {
	FirstName               string `json:"first_name"`
	LastName                string `json:"last_name"`
	SSN                     string `json:"ssn,omitempty"`
	Relationship            string `json:"relationship"`
	DateOfBirth             string `json:"date_of_birth"`
	MonthsLivedWithTaxpayer int    `json:"months_lived_with_taxpayer"`
	IsStudent               bool   `json:"is_student,omitempty"`
	IsDisabled              bool   `json:"is_disabled,omitempty"`
}

// HasSSN reports whether the dependent has a work-eligible SSN on file.
func (d Dependent) HasSSN() bool {
	return d.SSN != ""
}

// W2Box12 is one box 12 code/amount pair.
type W2Box12 struct {
	Code   string `json:"code"`
	Amount int64  `json:"amount"`
}

// W2 is a wage and tax statement.
type W2 struct {
	ID                     string    `json:"id"`
	EmployerName           string    `json:"employer_name"`
	Owner                  Owner     `json:"owner,omitempty"`
	Wages                  int64     `json:"wages"`
	FederalWithheld        int64     `json:"federal_withheld"`
	SocialSecurityWages    int64     `json:"social_security_wages"`
	SocialSecurityWithheld int64     `json:"social_security_withheld"`
	MedicareWages          int64     `json:"medicare_wages"`
	MedicareWithheld       int64     `json:"medicare_withheld"`
	DependentCareBenefits  int64     `json:"dependent_care_benefits,omitempty"`
	Box12                  []W2Box12 `json:"box12,omitempty"`
	RetirementPlan         bool      `json:"retirement_plan,omitempty"`
	StateCode              string    `json:"state_code,omitempty"`
	StateWages             int64     `json:"state_wages,omitempty"`
	StateWithheld          int64     `json:"state_withheld,omitempty"`
	LocalWithheld          int64     `json:"local_withheld,omitempty"`
}

// Box12Total sums box 12 amounts for the given codes.
func (w W2) Box12Total(codes ...string) int64 {
	var total int64
	for _, e := range w.Box12 {
		for _, c := range codes {
			if e.Code == c {
				total += e.Amount
			}
		}
	}
	return total
}

// Form1099INT reports interest income.
type Form1099INT struct {
	ID                 string `json:"id"`
	PayerName          string `json:"payer_name"`
	Interest           int64  `json:"interest"`
	USTreasuryInterest int64  `json:"us_treasury_interest,omitempty"`
	FederalWithheld    int64  `json:"federal_withheld,omitempty"`
	TaxExemptInterest  int64  `json:"tax_exempt_interest,omitempty"`
}

// Form1099DIV reports dividends and distributions.
type Form1099DIV struct {
	ID                       string `json:"id"`
	PayerName                string `json:"payer_name"`
	OrdinaryDividends        int64  `json:"ordinary_dividends"`
	QualifiedDividends       int64  `json:"qualified_dividends,omitempty"`
	CapitalGainDistributions int64  `json:"capital_gain_distributions,omitempty"`
	Section199ADividends     int64  `json:"section_199a_dividends,omitempty"`
	FederalWithheld          int64  `json:"federal_withheld,omitempty"`
	ExemptInterestDividends  int64  `json:"exempt_interest_dividends,omitempty"`
}

// Form1099R reports retirement plan and IRA distributions.
type Form1099R struct {
	ID                string `json:"id"`
	PayerName         string `json:"payer_name"`
	Owner             Owner  `json:"owner,omitempty"`
	GrossDistribution int64  `json:"gross_distribution"`
	TaxableAmount     int64  `json:"taxable_amount"`
	FederalWithheld   int64  `json:"federal_withheld,omitempty"`
	DistributionCode  string `json:"distribution_code,omitempty"`
	IsIRA             bool   `json:"is_ira,omitempty"`
	StateCode         string `json:"state_code,omitempty"`
	StateWithheld     int64  `json:"state_withheld,omitempty"`
}

// Form1099B is a single brokerage sale.
type Form1099B struct {
	ID                 string `json:"id"`
	Description        string `json:"description"`
	DateAcquired       string `json:"date_acquired,omitempty"`
	DateSold           string `json:"date_sold,omitempty"`
	Shares             int64  `json:"shares,omitempty"`
	Proceeds           int64  `json:"proceeds"`
	CostBasis          int64  `json:"cost_basis"`
	AdjustmentCode     string `json:"adjustment_code,omitempty"`
	AdjustmentAmount   int64  `json:"adjustment_amount,omitempty"`
	LongTerm           bool   `json:"long_term"`
	BasisReportedToIRS bool   `json:"basis_reported_to_irs,omitempty"`
	RSUVestID          string `json:"rsu_vest_id,omitempty"`
	FederalWithheld    int64  `json:"federal_withheld,omitempty"`
}

// Form1099G reports government payments.
type Form1099G struct {
	ID                string `json:"id"`
	Unemployment      int64  `json:"unemployment,omitempty"`
	StateRefund       int64  `json:"state_refund,omitempty"`
	PriorYearItemized bool   `json:"prior_year_itemized,omitempty"`
	FederalWithheld   int64  `json:"federal_withheld,omitempty"`
}

// Form1099MISC reports miscellaneous income.
type Form1099MISC struct {
	ID              string `json:"id"`
	PayerName       string `json:"payer_name"`
	Rents           int64  `json:"rents,omitempty"`
	Royalties       int64  `json:"royalties,omitempty"`
	OtherIncome     int64  `json:"other_income,omitempty"`
	FederalWithheld int64  `json:"federal_withheld,omitempty"`
}

// Form1099NEC reports nonemployee compensation.
type Form1099NEC struct {
	ID                      string `json:"id"`
	PayerName               string `json:"payer_name"`
	Owner                   Owner  `json:"owner,omitempty"`
	BusinessID              string `json:"business_id,omitempty"`
	NonemployeeCompensation int64  `json:"nonemployee_compensation"`
	FederalWithheld         int64  `json:"federal_withheld,omitempty"`
}

// SSA1099 reports Social Security benefits.
type SSA1099 struct {
	ID              string `json:"id,omitempty"`
	Owner           Owner  `json:"owner,omitempty"`
	NetBenefits     int64  `json:"net_benefits"`
	FederalWithheld int64  `json:"federal_withheld,omitempty"`
}

// ScheduleCBusiness is a sole proprietorship.
type ScheduleCBusiness struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Owner           Owner  `json:"owner,omitempty"`
	GrossReceipts   int64  `json:"gross_receipts"`
	Returns         int64  `json:"returns,omitempty"`
	CostOfGoodsSold int64  `json:"cost_of_goods_sold,omitempty"`
	Expenses        int64  `json:"expenses,omitempty"`
	IsSSTB          bool   `json:"is_sstb,omitempty"`
}

// ScheduleERental is a rental real estate property.
type ScheduleERental struct {
	ID                  string `json:"id"`
	Address             string `json:"address"`
	Rents               int64  `json:"rents"`
	Expenses            int64  `json:"expenses,omitempty"`
	Depreciation        int64  `json:"depreciation,omitempty"`
	ActiveParticipation bool   `json:"active_participation,omitempty"`
}

// ScheduleK1 is a pass-through entity share.
type ScheduleK1 struct {
	ID                      string `json:"id"`
	EntityName              string `json:"entity_name"`
	EntityType              string `json:"entity_type"`
	Owner                   Owner  `json:"owner,omitempty"`
	OrdinaryIncome          int64  `json:"ordinary_income,omitempty"`
	RentalIncome            int64  `json:"rental_income,omitempty"`
	InterestIncome          int64  `json:"interest_income,omitempty"`
	OrdinaryDividends       int64  `json:"ordinary_dividends,omitempty"`
	QualifiedDividends      int64  `json:"qualified_dividends,omitempty"`
	ShortTermCapitalGain    int64  `json:"short_term_capital_gain,omitempty"`
	LongTermCapitalGain     int64  `json:"long_term_capital_gain,omitempty"`
	SelfEmploymentEarnings  int64  `json:"self_employment_earnings,omitempty"`
	QualifiedBusinessIncome int64  `json:"qualified_business_income,omitempty"`
}

// RSUVestEvent records shares delivered from a restricted stock unit vest.
// Vest income is already in W-2 wages; the event supplies cost basis.
type RSUVestEvent struct {
	ID          string `json:"id"`
	Symbol      string `json:"symbol"`
	VestDate    string `json:"vest_date"`
	Shares      int64  `json:"shares"`
	FMVPerShare int64  `json:"fmv_per_share"`
}

// ISOExercise records an incentive stock option exercise.
type ISOExercise struct {
	ID            string `json:"id"`
	Symbol        string `json:"symbol"`
	ExerciseDate  string `json:"exercise_date"`
	Shares        int64  `json:"shares"`
	StrikePrice   int64  `json:"strike_price"`
	FMVAtExercise int64  `json:"fmv_at_exercise"`
	SoldSameYear  bool   `json:"sold_same_year,omitempty"`
}

// BargainElement is the AMT preference created by the exercise.
func (e ISOExercise) BargainElement() int64 {
	if e.SoldSameYear || e.FMVAtExercise <= e.StrikePrice || e.Shares <= 0 {
		return 0
	}
	return (e.FMVAtExercise - e.StrikePrice) * e.Shares
}

// ItemizedDeductions are the Schedule A inputs.
type ItemizedDeductions struct {
	MedicalExpenses     int64 `json:"medical_expenses,omitempty"`
	StateLocalIncomeTax int64 `json:"state_local_income_tax,omitempty"`
	StateLocalSalesTax  int64 `json:"state_local_sales_tax,omitempty"`
	RealEstateTax       int64 `json:"real_estate_tax,omitempty"`
	PersonalPropertyTax int64 `json:"personal_property_tax,omitempty"`
	MortgageInterest    int64 `json:"mortgage_interest,omitempty"`
	MortgagePoints      int64 `json:"mortgage_points,omitempty"`
	InvestmentInterest  int64 `json:"investment_interest,omitempty"`
	CharitableCash      int64 `json:"charitable_cash,omitempty"`
	CharitableNonCash   int64 `json:"charitable_non_cash,omitempty"`
	CasualtyLoss        int64 `json:"casualty_loss,omitempty"`
	Other               int64 `json:"other,omitempty"`
}

// HSACoverage is the high-deductible plan coverage tier.
type HSACoverage string

const (
	HSASelfOnly HSACoverage = "self-only"
	HSAFamily   HSACoverage = "family"
)

// HSAInfo holds Form 8889 inputs.
type HSAInfo struct {
	Coverage          HSACoverage `json:"coverage"`
	Contributions     int64       `json:"contributions,omitempty"`
	Distributions     int64       `json:"distributions,omitempty"`
	QualifiedExpenses int64       `json:"qualified_expenses,omitempty"`
}

// IRAContributions holds traditional and Roth IRA contributions per person.
type IRAContributions struct {
	TaxpayerTraditional int64 `json:"taxpayer_traditional,omitempty"`
	TaxpayerRoth        int64 `json:"taxpayer_roth,omitempty"`
	SpouseTraditional   int64 `json:"spouse_traditional,omitempty"`
	SpouseRoth          int64 `json:"spouse_roth,omitempty"`
}

// DependentCareExpenses holds Form 2441 inputs.
type DependentCareExpenses struct {
	QualifyingPersons int   `json:"qualifying_persons"`
	Expenses          int64 `json:"expenses"`
}

// EnergyImprovements holds Form 5695 inputs.
type EnergyImprovements struct {
	SolarElectric       int64   `json:"solar_electric,omitempty"`
	SolarWaterHeating   int64   `json:"solar_water_heating,omitempty"`
	SmallWind           int64   `json:"small_wind,omitempty"`
	Geothermal          int64   `json:"geothermal,omitempty"`
	BatteryStorage      int64   `json:"battery_storage,omitempty"`
	FuelCell            int64   `json:"fuel_cell,omitempty"`
	FuelCellKW          float64 `json:"fuel_cell_kw,omitempty"`
	Insulation          int64   `json:"insulation,omitempty"`
	ExteriorDoors       int64   `json:"exterior_doors,omitempty"`
	Windows             int64   `json:"windows,omitempty"`
	CentralAir          int64   `json:"central_air,omitempty"`
	WaterHeater         int64   `json:"water_heater,omitempty"`
	FurnaceBoiler       int64   `json:"furnace_boiler,omitempty"`
	PanelUpgrade        int64   `json:"panel_upgrade,omitempty"`
	HomeEnergyAudit     int64   `json:"home_energy_audit,omitempty"`
	HeatPump            int64   `json:"heat_pump,omitempty"`
	HeatPumpWaterHeater int64   `json:"heat_pump_water_heater,omitempty"`
	BiomassStove        int64   `json:"biomass_stove,omitempty"`
}

// EducationCreditType selects the Form 8863 credit for a student.
type EducationCreditType string

const (
	EducationAOTC EducationCreditType = "aotc"
	EducationLLC  EducationCreditType = "llc"
)

// EducationExpense is one student's qualified expenses.
type EducationExpense struct {
	StudentName       string              `json:"student_name"`
	CreditType        EducationCreditType `json:"credit_type"`
	QualifiedExpenses int64               `json:"qualified_expenses"`
	TaxFreeAssistance int64               `json:"tax_free_assistance,omitempty"`
}

// CapitalLossCarryover is the prior-year unused capital loss, as positive amounts.
type CapitalLossCarryover struct {
	ShortTerm int64 `json:"short_term,omitempty"`
	LongTerm  int64 `json:"long_term,omitempty"`
}

// NonresidentAlienInfo holds the extra Form 1040-NR inputs.
type NonresidentAlienInfo struct {
	Country                 string   `json:"country"`
	TreatyDividendRate      *float64 `json:"treaty_dividend_rate,omitempty"`
	TreatyStandardDeduction bool     `json:"treaty_standard_deduction,omitempty"`
}

// StateReturnConfig selects a state return and its residency facts.
type StateReturnConfig struct {
	StateCode               string        `json:"state_code"`
	ResidencyType           ResidencyType `json:"residency_type"`
	MoveInDate              string        `json:"move_in_date,omitempty"`
	MoveOutDate             string        `json:"move_out_date,omitempty"`
	NonresidentSourceIncome int64         `json:"nonresident_source_income,omitempty"`
	Locality                string        `json:"locality,omitempty"`
	EstimatedPayments       int64         `json:"estimated_payments,omitempty"`
	PaidRent                bool          `json:"paid_rent,omitempty"`
	RentPaid                int64         `json:"rent_paid,omitempty"`
}
