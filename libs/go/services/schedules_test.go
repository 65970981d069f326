package services_test

import (
	"context"
	"testing"

	"github.com/cyphera/cyphera-tax/libs/go/services"
	"github.com/cyphera/cyphera-tax/libs/go/taxdata"
	"github.com/cyphera/cyphera-tax/libs/go/traced"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeScheduleD(t *testing.T) {
	fed := federal2025(t)

	tests := []struct {
		name  string
		ret   *business.TaxReturn
		check func(t *testing.T, res business.ScheduleDResult)
	}{
		{
			name: "net loss is limited and the rest carries forward",
			ret: &business.TaxReturn{
				FilingStatus: business.FilingSingle,
				Form1099B: []business.Form1099B{
					{ID: "st", Description: "short", Proceeds: 100000, CostBasis: 900000},
					{ID: "lt", Description: "long", Proceeds: 500000, CostBasis: 300000, LongTerm: true},
				},
			},
			check: func(t *testing.T, res business.ScheduleDResult) {
				assert.Equal(t, int64(-800000), res.NetShortTerm)
				assert.Equal(t, int64(200000), res.NetLongTerm)
				assert.Equal(t, int64(-600000), res.NetGain)
				assert.Equal(t, int64(-300000), res.Line7)
				assert.Equal(t, int64(300000), res.ShortTermCarryforward)
				assert.Equal(t, int64(0), res.LongTermCarryforward)
				assert.Equal(t, int64(0), res.NetPreferentialGain)
			},
		},
		{
			name: "married filing separately has the smaller limit",
			ret: &business.TaxReturn{
				FilingStatus: business.FilingMarriedSeparate,
				Form1099B:    []business.Form1099B{{ID: "st", Proceeds: 0, CostBasis: 1000000}},
			},
			check: func(t *testing.T, res business.ScheduleDResult) {
				assert.Equal(t, int64(-150000), res.Line7)
				assert.Equal(t, int64(850000), res.ShortTermCarryforward)
			},
		},
		{
			name: "RSU shares without broker basis use the vest value",
			ret: &business.TaxReturn{
				FilingStatus: business.FilingSingle,
				RSUVests:     []business.RSUVestEvent{{ID: "v1", Symbol: "XYZ", Shares: 10, FMVPerShare: 15000}},
				Form1099B:    []business.Form1099B{{ID: "rsu", Proceeds: 200000, RSUVestID: "v1"}},
			},
			check: func(t *testing.T, res business.ScheduleDResult) {
				require.Len(t, res.Rows, 1)
				assert.True(t, res.Rows[0].BasisFromRSUVest)
				assert.Equal(t, int64(150000), res.Rows[0].CostBasis)
				assert.Equal(t, int64(50000), res.NetShortTerm)
			},
		},
		{
			name: "prior year carryover offsets long-term gain",
			ret: &business.TaxReturn{
				FilingStatus:         business.FilingSingle,
				CapitalLossCarryover: &business.CapitalLossCarryover{LongTerm: 100000},
				Form1099B:            []business.Form1099B{{ID: "lt", Proceeds: 800000, CostBasis: 300000, LongTerm: true}},
			},
			check: func(t *testing.T, res business.ScheduleDResult) {
				assert.Equal(t, int64(100000), res.LongTermCarryoverUsed)
				assert.Equal(t, int64(400000), res.NetLongTerm)
				assert.Equal(t, int64(400000), res.Line7)
				assert.Equal(t, int64(400000), res.NetPreferentialGain)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.True(t, services.ScheduleDApplies(tt.ret))
			rec := traced.NewRecorder()
			res := services.ComputeScheduleD(tt.ret, fed, rec)
			tt.check(t, res)

			line21, ok := rec.Get("sched_d.line21")
			require.True(t, ok)
			assert.Equal(t, res.Line7, line21.Amount)
			require.NoError(t, traced.NewGraph(rec.Nodes()).Validate())
		})
	}
}

func TestScheduleDApplies_NoActivity(t *testing.T) {
	assert.False(t, services.ScheduleDApplies(&business.TaxReturn{}))
	assert.False(t, services.ScheduleDApplies(&business.TaxReturn{CapitalLossCarryover: &business.CapitalLossCarryover{}}))
}

func TestComputeSETax(t *testing.T) {
	fed := federal2025(t)

	tests := []struct {
		name       string
		ret        *business.TaxReturn
		wantPeople int
		wantTax    int64
		wantHalf   int64
	}{
		{
			name: "social security stops at the wage base",
			ret: &business.TaxReturn{
				FilingStatus: business.FilingSingle,
				ScheduleC:    []business.ScheduleCBusiness{{ID: "c", Name: "Shop", GrossReceipts: 20000000}},
			},
			wantPeople: 1,
			wantTax:    2183640 + 535630,
			wantHalf:   1359635,
		},
		{
			name: "earnings under the minimum owe nothing",
			ret: &business.TaxReturn{
				FilingStatus: business.FilingSingle,
				Form1099NEC:  []business.Form1099NEC{{ID: "n", PayerName: "Client", NonemployeeCompensation: 40000}},
			},
			wantPeople: 1,
		},
		{
			name: "spouse without self-employment income is skipped",
			ret: &business.TaxReturn{
				FilingStatus: business.FilingMarriedJoint,
				Spouse:       &business.Person{FirstName: "Kim"},
				ScheduleC:    []business.ScheduleCBusiness{{ID: "c", Name: "Shop", GrossReceipts: 20000000}},
			},
			wantPeople: 1,
			wantTax:    2183640 + 535630,
			wantHalf:   1359635,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.True(t, services.SelfEmploymentApplies(tt.ret))
			rec := traced.NewRecorder()
			c := services.ComputeScheduleC(tt.ret, rec)
			se := services.ComputeSETax(tt.ret, c, fed, rec)

			assert.Len(t, se.People, tt.wantPeople)
			assert.Equal(t, tt.wantTax, se.TotalTax)
			assert.Equal(t, tt.wantHalf, se.DeductibleHalf)
			require.NoError(t, traced.NewGraph(rec.Nodes()).Validate())
		})
	}
}

func TestComputeScheduleC_LinkedNECNotDoubleCounted(t *testing.T) {
	ret := &business.TaxReturn{
		ScheduleC: []business.ScheduleCBusiness{{ID: "biz", Name: "Consulting", GrossReceipts: 1000000, Expenses: 200000}},
		Form1099NEC: []business.Form1099NEC{
			{ID: "n1", PayerName: "Linked", BusinessID: "biz", NonemployeeCompensation: 600000},
			{ID: "n2", PayerName: "Other", NonemployeeCompensation: 300000},
		},
	}

	c := services.ComputeScheduleC(ret, traced.NewRecorder())
	require.Len(t, c.Businesses, 2)
	assert.Equal(t, int64(800000+300000), c.NetProfit)
}

func TestComputeAMT(t *testing.T) {
	fed := federal2025(t)

	tests := []struct {
		name          string
		ret           *business.TaxReturn
		in            services.AMTInput
		wantExemption int64
		wantTMT       int64
		wantAMT       int64
	}{
		{
			name: "ISO bargain element triggers AMT",
			ret: &business.TaxReturn{
				FilingStatus: business.FilingSingle,
				ISOExercises: []business.ISOExercise{{ID: "iso", Shares: 1000, StrikePrice: 5000, FMVAtExercise: 15000}},
			},
			in:            services.AMTInput{TaxableIncome: 10000000, RegularTax: 1500000},
			wantExemption: 8810000,
			wantTMT:       2909400,
			wantAMT:       1409400,
		},
		{
			name:          "exemption phases out above the threshold",
			ret:           &business.TaxReturn{FilingStatus: business.FilingSingle},
			in:            services.AMTInput{TaxableIncome: 70000000, RegularTax: 20000000},
			wantExemption: 8810000 - 1841250,
			wantTMT:       17170550,
		},
		{
			name: "shares sold the same year are ignored",
			ret: &business.TaxReturn{
				FilingStatus: business.FilingSingle,
				ISOExercises: []business.ISOExercise{{ID: "iso", Shares: 1000, StrikePrice: 5000, FMVAtExercise: 15000, SoldSameYear: true}},
			},
			in:            services.AMTInput{TaxableIncome: 10000000, RegularTax: 1500000},
			wantExemption: 8810000,
			wantTMT:       309400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := services.ComputeAMT(tt.ret, tt.in, fed)
			assert.Equal(t, tt.wantExemption, res.Exemption)
			assert.Equal(t, tt.wantTMT, res.TentativeMinimumTax)
			assert.Equal(t, tt.wantAMT, res.AMT)
			assert.GreaterOrEqual(t, res.AMT, int64(0))
		})
	}
}

func TestOtherTaxes(t *testing.T) {
	fed := federal2025(t)
	ret := &business.TaxReturn{
		FilingStatus: business.FilingSingle,
		W2s:          []business.W2{{ID: "w", MedicareWages: 30000000, MedicareWithheld: 525000}},
		Form1099R:    []business.Form1099R{{ID: "r", TaxableAmount: 1000000, DistributionCode: "1"}, {ID: "r2", TaxableAmount: 500000, DistributionCode: "7"}},
	}

	med := services.ComputeAdditionalMedicare(ret, business.SETaxResult{}, fed)
	assert.Equal(t, int64(20000000), med.Threshold)
	assert.Equal(t, int64(90000), med.Tax)
	assert.Equal(t, int64(90000), med.WithholdingExcess)

	niit := services.ComputeNIIT(ret, 5000000, 22000000, fed)
	assert.Equal(t, int64(76000), niit.Tax)
	assert.Equal(t, int64(0), services.ComputeNIIT(ret, 5000000, 15000000, fed).Tax)

	early := services.EarlyDistributionPenalty(ret, fed)
	assert.Equal(t, int64(100000), early)

	other := services.ComputeOtherTaxes(business.SETaxResult{TotalTax: 1000}, med, niit, early, business.HSAResult{})
	assert.Equal(t, int64(1000+90000+76000+100000), other.Total)
	assert.True(t, services.OtherTaxesApplies(other))
	assert.False(t, services.OtherTaxesApplies(business.OtherTaxesResult{}))
}

func TestNonresidentFilingStatus(t *testing.T) {
	tests := []struct {
		in   business.FilingStatus
		want business.FilingStatus
	}{
		{business.FilingSingle, business.FilingSingle},
		{business.FilingHeadOfHousehold, business.FilingSingle},
		{business.FilingMarriedJoint, business.FilingMarriedSeparate},
		{business.FilingMarriedSeparate, business.FilingMarriedSeparate},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			assert.Equal(t, tt.want, services.NonresidentFilingStatus(tt.in))
		})
	}
}

func nonresidentReturn() *business.TaxReturn {
	return &business.TaxReturn{
		ID:               "ret-nr",
		TaxYear:          2025,
		FilingStatus:     business.FilingSingle,
		Taxpayer:         business.Person{FirstName: "Ana", LastName: "Ruiz"},
		NonresidentAlien: &business.NonresidentAlienInfo{Country: "MX"},
		W2s:              []business.W2{{ID: "w2", EmployerName: "Acme", Wages: 5000000, FederalWithheld: 500000}},
		Form1099DIV:      []business.Form1099DIV{{ID: "div", PayerName: "Fund", OrdinaryDividends: 100000, FederalWithheld: 30000}},
	}
}

func TestForm1040NRService_ComputeForm1040NR(t *testing.T) {
	svc := services.NewForm1040NRService()

	t.Run("no standard deduction and flat dividend tax", func(t *testing.T) {
		res, err := svc.ComputeForm1040NR(context.Background(), nonresidentReturn())
		require.NoError(t, err)

		assert.Equal(t, int64(5000000), res.Line11.Amount)
		assert.Equal(t, int64(0), res.Line12.Amount)
		assert.Equal(t, int64(5000000), res.Line15.Amount)
		assert.Equal(t, int64(591400), res.Line16.Amount)
		assert.Equal(t, int64(30000), res.Line23a.Amount)
		assert.Equal(t, int64(621400), res.Line24.Amount)
		assert.Equal(t, int64(530000), res.Line33.Amount)
		assert.Equal(t, int64(91400), res.Line37.Amount)
		assert.Equal(t, int64(0), res.Line34.Amount)
		require.NoError(t, traced.NewGraph(res.Nodes).Validate())

		fed := res.ToForm1040Result()
		assert.Equal(t, res.Line11.Amount, fed.AGI())
		assert.Equal(t, res.Line24.Amount, fed.TotalTax())
	})

	t.Run("treaty benefits", func(t *testing.T) {
		ret := nonresidentReturn()
		rate := 0.15
		ret.NonresidentAlien.TreatyDividendRate = &rate
		ret.NonresidentAlien.TreatyStandardDeduction = true

		res, err := svc.ComputeForm1040NR(context.Background(), ret)
		require.NoError(t, err)
		assert.Equal(t, int64(1575000), res.Line12.Amount)
		assert.Equal(t, int64(3425000), res.Line15.Amount)
		assert.Equal(t, int64(15000), res.Line23a.Amount)
	})

	t.Run("married filers use separate schedules", func(t *testing.T) {
		ret := nonresidentReturn()
		ret.FilingStatus = business.FilingMarriedJoint

		res, err := svc.ComputeForm1040NR(context.Background(), ret)
		require.NoError(t, err)
		assert.Equal(t, business.FilingMarriedSeparate, res.FilingStatus)
	})

	t.Run("unsupported year", func(t *testing.T) {
		ret := nonresidentReturn()
		ret.TaxYear = 2001
		_, err := svc.ComputeForm1040NR(context.Background(), ret)
		assert.ErrorIs(t, err, taxdata.ErrUnsupportedTaxYear)
	})
}
