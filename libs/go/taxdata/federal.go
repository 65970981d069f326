package taxdata

import (
	"github.com/cyphera/cyphera-tax/libs/go/taxmath"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
)

// Federal holds every federal constant for one tax year.
type Federal struct {
	Brackets                    Schedules        `yaml:"brackets"`
	StandardDeduction           ByStatus         `yaml:"standardDeduction"`
	AdditionalStandardDeduction ByStatus         `yaml:"additionalStandardDeduction"`
	DependentStandardDeduction  DependentStdDed  `yaml:"dependentStandardDeduction"`
	Preferential                PreferentialRate `yaml:"preferentialRates"`
	CapitalLossLimit            ByStatus         `yaml:"capitalLossLimit"`
	AMT                         AMTTable         `yaml:"amt"`
	ChildTaxCredit              CTCTable         `yaml:"childTaxCredit"`
	EIC                         EICTable         `yaml:"eic"`
	SaversCredit                SaversTable      `yaml:"saversCredit"`
	DependentCare               DependentCare    `yaml:"dependentCare"`
	Energy                      EnergyTable      `yaml:"energy"`
	Education                   EducationTable   `yaml:"education"`
	IRA                         IRATable         `yaml:"ira"`
	HSA                         HSATable         `yaml:"hsa"`
	StudentLoan                 StudentLoanTable `yaml:"studentLoan"`
	SocialSecurity              SocialSecurity   `yaml:"socialSecurity"`
	ScheduleA                   ScheduleATable   `yaml:"scheduleA"`
	SelfEmployment              SETable          `yaml:"selfEmployment"`
	AdditionalMedicare          SurtaxTable      `yaml:"additionalMedicare"`
	NIIT                        SurtaxTable      `yaml:"niit"`
	QBI                         QBITable         `yaml:"qbi"`
	SeniorDeduction             SeniorTable      `yaml:"seniorDeduction"`
	PassiveLoss                 PassiveLossTable `yaml:"passiveLoss"`
	EarlyDistributionRate       float64          `yaml:"earlyDistributionRate"`
	Nonresident                 NonresidentTable `yaml:"nonresident"`
}

// OrdinaryBrackets returns the regular-tax schedule for fs.
func (f *Federal) OrdinaryBrackets(fs business.FilingStatus) []taxmath.Bracket {
	return f.Brackets.For(fs)
}

// PreferentialThresholds returns the 0% and 15% capital gain band tops for fs.
func (f *Federal) PreferentialThresholds(fs business.FilingStatus) taxmath.PreferentialThresholds {
	return taxmath.PreferentialThresholds{
		ZeroRateTop:    f.Preferential.ZeroRateTop.For(fs),
		FifteenRateTop: f.Preferential.FifteenRateTop.For(fs),
	}
}

type DependentStdDed struct {
	Minimum           Cents `yaml:"minimum"`
	EarnedIncomeAddOn Cents `yaml:"earnedIncomeAddOn"`
}

type PreferentialRate struct {
	ZeroRateTop    ByStatus `yaml:"zeroRateTop"`
	FifteenRateTop ByStatus `yaml:"fifteenRateTop"`
}

type AMTTable struct {
	Exemption     ByStatus `yaml:"exemption"`
	PhaseOutStart ByStatus `yaml:"phaseOutStart"`
	PhaseOutRate  float64  `yaml:"phaseOutRate"`
	BracketBreak  ByStatus `yaml:"bracketBreak"`
	LowRate       float64  `yaml:"lowRate"`
	HighRate      float64  `yaml:"highRate"`
}

// Brackets returns the two-rate AMT schedule for fs.
func (a AMTTable) Brackets(fs business.FilingStatus) []taxmath.Bracket {
	return []taxmath.Bracket{
		{Limit: a.BracketBreak.For(fs), Rate: a.LowRate},
		{Limit: taxmath.Unbounded, Rate: a.HighRate},
	}
}

type CTCTable struct {
	PerChild           Cents    `yaml:"perChild"`
	PerOtherDependent  Cents    `yaml:"perOtherDependent"`
	MaxChildAge        int      `yaml:"maxChildAge"`
	PhaseOutStart      ByStatus `yaml:"phaseOutStart"`
	PhaseOutStep       Cents    `yaml:"phaseOutStep"`
	PhaseOutPerStep    Cents    `yaml:"phaseOutPerStep"`
	RefundablePerChild Cents    `yaml:"refundablePerChild"`
	EarnedIncomeFloor  Cents    `yaml:"earnedIncomeFloor"`
	RefundableRate     float64  `yaml:"refundableRate"`
}

type EICTable struct {
	InvestmentIncomeLimit Cents      `yaml:"investmentIncomeLimit"`
	MinAgeNoChildren      int        `yaml:"minAgeNoChildren"`
	MaxAgeNoChildren      int        `yaml:"maxAgeNoChildren"`
	MaxChildAge           int        `yaml:"maxChildAge"`
	MaxStudentAge         int        `yaml:"maxStudentAge"`
	Schedule              []EICEntry `yaml:"schedule"`
}

// Entry returns the parameters for the number of qualifying children,
// capped at the largest schedule entry.
func (e EICTable) Entry(children int) EICEntry {
	if len(e.Schedule) == 0 {
		return EICEntry{}
	}
	if children >= len(e.Schedule) {
		children = len(e.Schedule) - 1
	}
	if children < 0 {
		children = 0
	}
	return e.Schedule[children]
}

type EICEntry struct {
	Children           int     `yaml:"children"`
	PhaseInRate        float64 `yaml:"phaseInRate"`
	EarnedIncomeAmount Cents   `yaml:"earnedIncomeAmount"`
	MaxCredit          Cents   `yaml:"maxCredit"`
	PhaseOutRate       float64 `yaml:"phaseOutRate"`
	PhaseOutStart      Cents   `yaml:"phaseOutStart"`
	PhaseOutStartJoint Cents   `yaml:"phaseOutStartJoint"`
}

type SaversTable struct {
	MaxContributionPerPerson Cents     `yaml:"maxContributionPerPerson"`
	MinAge                   int       `yaml:"minAge"`
	Tiers                    RateTiers `yaml:"tiers"`
}

type DependentCare struct {
	LimitOnePerson   Cents   `yaml:"limitOnePerson"`
	LimitTwoOrMore   Cents   `yaml:"limitTwoOrMore"`
	MaxRate          float64 `yaml:"maxRate"`
	MinRate          float64 `yaml:"minRate"`
	RateStepStart    Cents   `yaml:"rateStepStart"`
	RateStep         Cents   `yaml:"rateStep"`
	BenefitExclusion Cents   `yaml:"benefitExclusion"`
}

type EnergyTable struct {
	CleanEnergyRate   float64 `yaml:"cleanEnergyRate"`
	FuelCellPerHalfKW Cents   `yaml:"fuelCellPerHalfKW"`
	EfficiencyRate    float64 `yaml:"efficiencyRate"`
	WindowsCap        Cents   `yaml:"windowsCap"`
	DoorsCap          Cents   `yaml:"doorsCap"`
	AuditCap          Cents   `yaml:"auditCap"`
	PropertyItemCap   Cents   `yaml:"propertyItemCap"`
	AggregateCap      Cents   `yaml:"aggregateCap"`
	HeatPumpCap       Cents   `yaml:"heatPumpCap"`
}

type EducationTable struct {
	AOTCFullRateExpenses Cents       `yaml:"aotcFullRateExpenses"`
	AOTCPartialExpenses  Cents       `yaml:"aotcPartialExpenses"`
	AOTCPartialRate      float64     `yaml:"aotcPartialRate"`
	AOTCRefundableRate   float64     `yaml:"aotcRefundableRate"`
	LLCExpenseCap        Cents       `yaml:"llcExpenseCap"`
	LLCRate              float64     `yaml:"llcRate"`
	PhaseOut             PhaseRanges `yaml:"phaseOut"`
}

type IRATable struct {
	ContributionLimit     Cents       `yaml:"contributionLimit"`
	CatchUp               Cents       `yaml:"catchUp"`
	CatchUpAge            int         `yaml:"catchUpAge"`
	CoveredPhaseOut       PhaseRanges `yaml:"coveredPhaseOut"`
	SpouseCoveredPhaseOut PhaseRanges `yaml:"spouseCoveredPhaseOut"`
	RoundingStep          Cents       `yaml:"roundingStep"`
	MinimumDeduction      Cents       `yaml:"minimumDeduction"`
}

type HSATable struct {
	SelfOnlyLimit    Cents   `yaml:"selfOnlyLimit"`
	FamilyLimit      Cents   `yaml:"familyLimit"`
	CatchUp          Cents   `yaml:"catchUp"`
	CatchUpAge       int     `yaml:"catchUpAge"`
	PenaltyRate      float64 `yaml:"penaltyRate"`
	PenaltyExemptAge int     `yaml:"penaltyExemptAge"`
	ExciseRate       float64 `yaml:"exciseRate"`
}

type StudentLoanTable struct {
	MaxDeduction Cents       `yaml:"maxDeduction"`
	PhaseOut     PhaseRanges `yaml:"phaseOut"`
}

type SocialSecurity struct {
	BaseAmount     ByStatus `yaml:"baseAmount"`
	AdjustedBase   ByStatus `yaml:"adjustedBase"`
	MaxTaxableRate float64  `yaml:"maxTaxableRate"`
	WageBase       Cents    `yaml:"wageBase"`
	EmployeeRate   float64  `yaml:"employeeRate"`
}

// MaxEmployeeWithholding is the most social security tax one person can owe
// on wages for the year.
func (s SocialSecurity) MaxEmployeeWithholding() int64 {
	return taxmath.ApplyRate(int64(s.WageBase), s.EmployeeRate)
}

type ScheduleATable struct {
	MedicalFloorRate    float64  `yaml:"medicalFloorRate"`
	SALTCap             ByStatus `yaml:"saltCap"`
	SALTFloor           ByStatus `yaml:"saltFloor"`
	SALTPhaseDownStart  ByStatus `yaml:"saltPhaseDownStart"`
	SALTPhaseDownRate   float64  `yaml:"saltPhaseDownRate"`
	CharityCashLimit    float64  `yaml:"charityCashLimit"`
	CharityNonCashLimit float64  `yaml:"charityNonCashLimit"`
}

type SETable struct {
	NetEarningsRate    float64 `yaml:"netEarningsRate"`
	SocialSecurityRate float64 `yaml:"socialSecurityRate"`
	MedicareRate       float64 `yaml:"medicareRate"`
	MinimumNetEarnings Cents   `yaml:"minimumNetEarnings"`
}

type SurtaxTable struct {
	Rate        float64  `yaml:"rate"`
	Threshold   ByStatus `yaml:"threshold"`
	RegularRate float64  `yaml:"regularRate"`
}

type QBITable struct {
	Rate         float64  `yaml:"rate"`
	Threshold    ByStatus `yaml:"threshold"`
	PhaseInRange ByStatus `yaml:"phaseInRange"`
}

type SeniorTable struct {
	PerFiler      Cents    `yaml:"perFiler"`
	MinAge        int      `yaml:"minAge"`
	PhaseOutStart ByStatus `yaml:"phaseOutStart"`
	PhaseOutRate  float64  `yaml:"phaseOutRate"`
}

// PassiveLossTable is the special allowance for actively managed rentals.
type PassiveLossTable struct {
	Allowance     ByStatus `yaml:"allowance"`
	PhaseOutStart ByStatus `yaml:"phaseOutStart"`
	PhaseOutRate  float64  `yaml:"phaseOutRate"`
}

type NonresidentTable struct {
	DividendRate float64 `yaml:"dividendRate"`
}
