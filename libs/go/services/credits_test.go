package services_test

import (
	"testing"

	"github.com/cyphera/cyphera-tax/libs/go/services"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeEnergyCredit(t *testing.T) {
	fed := federal2025(t)

	tests := []struct {
		name          string
		improvements  *business.EnergyImprovements
		carryforward  int64
		liability     int64
		wantPartI     int64
		wantPartII    int64
		wantHeatPump  int64
		wantAllowed   int64
		wantCarryover int64
	}{
		{
			name:         "solar with enough liability",
			improvements: &business.EnergyImprovements{SolarElectric: 2000000},
			liability:    1000000,
			wantPartI:    600000,
			wantAllowed:  600000,
		},
		{
			name:          "solar limited by liability carries forward",
			improvements:  &business.EnergyImprovements{SolarElectric: 2000000},
			liability:     250000,
			wantPartI:     600000,
			wantAllowed:   250000,
			wantCarryover: 350000,
		},
		{
			name:         "heat pump capped",
			improvements: &business.EnergyImprovements{HeatPump: 1000000},
			liability:    1000000,
			wantPartII:   200000,
			wantHeatPump: 200000,
			wantAllowed:  200000,
		},
		{
			name:         "aggregate cap on efficiency items",
			improvements: &business.EnergyImprovements{Windows: 300000, Insulation: 500000},
			liability:    1000000,
			wantPartII:   120000,
			wantAllowed:  120000,
		},
		{
			name:          "part II applied before part I",
			improvements:  &business.EnergyImprovements{SolarElectric: 1000000, HeatPump: 1000000},
			liability:     250000,
			wantPartI:     300000,
			wantPartII:    200000,
			wantHeatPump:  200000,
			wantAllowed:   250000,
			wantCarryover: 250000,
		},
		{
			name:         "prior carryforward only",
			carryforward: 40000,
			liability:    1000000,
			wantPartI:    40000,
			wantAllowed:  40000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ret := &business.TaxReturn{
				TaxYear:                  2025,
				FilingStatus:             business.FilingSingle,
				EnergyImprovements:       tt.improvements,
				EnergyCreditCarryforward: tt.carryforward,
			}
			assert.True(t, services.EnergyCreditApplies(ret))

			res := services.ComputeEnergyCredit(ret, tt.liability, fed)
			assert.Equal(t, tt.wantPartI, res.PartICredit)
			assert.Equal(t, tt.wantPartII, res.PartIICredit)
			assert.Equal(t, tt.wantHeatPump, res.HeatPumpCredit)
			assert.Equal(t, tt.wantPartI+tt.wantPartII, res.TotalCredit)
			assert.Equal(t, tt.wantAllowed, res.AllowedCredit)
			assert.Equal(t, tt.wantCarryover, res.Carryforward)
		})
	}
}

func TestComputeSaversCredit(t *testing.T) {
	fed := federal2025(t)

	tests := []struct {
		name       string
		status     business.FilingStatus
		taxpayer   business.Person
		agi        int64
		liability  int64
		wantRate   float64
		wantCredit int64
	}{
		{
			name:       "lowest tier",
			status:     business.FilingSingle,
			agi:        2000000,
			liability:  500000,
			wantRate:   0.5,
			wantCredit: 100000,
		},
		{
			name:       "limited by liability",
			status:     business.FilingSingle,
			agi:        2000000,
			liability:  30000,
			wantRate:   0.5,
			wantCredit: 30000,
		},
		{
			name:       "middle tier",
			status:     business.FilingSingle,
			agi:        2500000,
			liability:  500000,
			wantRate:   0.2,
			wantCredit: 40000,
		},
		{
			name:      "above the last tier",
			status:    business.FilingSingle,
			agi:       4000000,
			liability: 500000,
		},
		{
			name:       "joint tiers",
			status:     business.FilingMarriedJoint,
			agi:        4000000,
			liability:  500000,
			wantRate:   0.5,
			wantCredit: 100000,
		},
		{
			name:      "full-time student",
			status:    business.FilingSingle,
			taxpayer:  business.Person{IsFullTimeStudent: true},
			agi:       2000000,
			liability: 500000,
			wantRate:  0.5,
		},
		{
			name:      "under minimum age",
			status:    business.FilingSingle,
			taxpayer:  business.Person{DateOfBirth: "2010-03-01"},
			agi:       2000000,
			liability: 500000,
			wantRate:  0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ret := &business.TaxReturn{
				TaxYear:          2025,
				FilingStatus:     tt.status,
				Taxpayer:         tt.taxpayer,
				IRAContributions: &business.IRAContributions{TaxpayerTraditional: 200000},
			}
			require.True(t, services.SaversCreditApplies(ret))

			res := services.ComputeSaversCredit(ret, tt.agi, tt.liability, fed)
			assert.Equal(t, tt.wantRate, res.CreditRate)
			assert.Equal(t, tt.wantCredit, res.Credit)
			assert.LessOrEqual(t, res.Credit, res.TentativeCredit)
		})
	}
}

func TestComputeDependentCare(t *testing.T) {
	fed := federal2025(t)

	tests := []struct {
		name        string
		status      business.FilingStatus
		persons     int
		expenses    int64
		benefits    int64
		agi         int64
		wantLimit   int64
		wantRate    float64
		wantCredit  int64
		wantBenefit int64
	}{
		{
			name:       "one qualifying person",
			status:     business.FilingSingle,
			persons:    1,
			expenses:   400000,
			agi:        10000000,
			wantLimit:  300000,
			wantRate:   0.20,
			wantCredit: 60000,
		},
		{
			name:       "two or more qualifying persons",
			status:     business.FilingHeadOfHousehold,
			persons:    2,
			expenses:   800000,
			agi:        10000000,
			wantLimit:  600000,
			wantRate:   0.20,
			wantCredit: 120000,
		},
		{
			name:       "low income gets the maximum rate",
			status:     business.FilingSingle,
			persons:    1,
			expenses:   100000,
			agi:        1200000,
			wantLimit:  300000,
			wantRate:   0.35,
			wantCredit: 35000,
		},
		{
			name:        "employer benefits reduce the limit",
			status:      business.FilingSingle,
			persons:     1,
			expenses:    400000,
			benefits:    200000,
			agi:         10000000,
			wantLimit:   300000,
			wantRate:    0.20,
			wantCredit:  20000,
			wantBenefit: 200000,
		},
		{
			name:      "married filing separately",
			status:    business.FilingMarriedSeparate,
			persons:   1,
			expenses:  400000,
			agi:       10000000,
			wantLimit: 300000,
			wantRate:  0.20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ret := &business.TaxReturn{
				TaxYear:       2025,
				FilingStatus:  tt.status,
				W2s:           []business.W2{{ID: "w2", Wages: 5000000, DependentCareBenefits: tt.benefits}},
				DependentCare: &business.DependentCareExpenses{QualifyingPersons: tt.persons, Expenses: tt.expenses},
			}
			res := services.ComputeDependentCare(ret, tt.agi, 5000000, 0, 1000000, fed)
			assert.Equal(t, tt.wantLimit, res.ExpenseLimit)
			assert.Equal(t, tt.wantRate, res.CreditRate)
			assert.Equal(t, tt.wantCredit, res.Credit)
			assert.Equal(t, tt.wantBenefit, res.EmployerBenefits)
		})
	}
}

func TestComputeChildTaxCredit_NoLiabilityGoesRefundable(t *testing.T) {
	fed := federal2025(t)
	ret := &business.TaxReturn{
		TaxYear:      2025,
		FilingStatus: business.FilingSingle,
		Dependents: []business.Dependent{{
			FirstName: "Ana", SSN: "111-22-3333", Relationship: "daughter",
			DateOfBirth: "2019-02-02", MonthsLivedWithTaxpayer: 12,
		}},
	}

	res := services.ComputeChildTaxCredit(ret, 3000000, 3000000, 0, fed)
	assert.Equal(t, int64(0), res.NonrefundableCredit)
	assert.Greater(t, res.AdditionalChildTaxCredit, int64(0))
}
