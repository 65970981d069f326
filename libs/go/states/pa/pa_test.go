package pa_test

import (
	"testing"

	"github.com/cyphera/cyphera-tax/libs/go/states/pa"
	"github.com/cyphera/cyphera-tax/libs/go/traced"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func federalResult(agi int64) *business.Form1040Result {
	line11 := traced.FromComputation(agi, "f1040.line11", nil, "Adjusted gross income")
	return &business.Form1040Result{
		TaxYear:      2025,
		FilingStatus: business.FilingSingle,
		Line11:       line11,
		Nodes:        []traced.TracedValue{line11},
	}
}

func wageReturn() *business.TaxReturn {
	return &business.TaxReturn{
		TaxYear:      2025,
		FilingStatus: business.FilingSingle,
		W2s:          []business.W2{{ID: "w2-1", EmployerName: "Acme", Wages: 6000000, StateCode: "PA", StateWithheld: 100000}},
	}
}

func TestCompute_NoLossOffsetAcrossClasses(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *business.TaxReturn, fed *business.Form1040Result)
		fedAGI    int64
		wantTotal int64
		wantTax   int64
	}{
		{
			name:      "wages only",
			mutate:    func(r *business.TaxReturn, fed *business.Form1040Result) {},
			fedAGI:    6000000,
			wantTotal: 6000000,
			wantTax:   184200,
		},
		{
			name: "rental loss stays in its class",
			mutate: func(r *business.TaxReturn, fed *business.Form1040Result) {
				r.ScheduleE = []business.ScheduleERental{{ID: "rental", Expenses: 1000000}}
			},
			fedAGI:    5000000,
			wantTotal: 6000000,
			wantTax:   184200,
		},
		{
			name: "capital loss does not reduce wages",
			mutate: func(r *business.TaxReturn, fed *business.Form1040Result) {
				fed.ScheduleD = business.Some(business.ScheduleDResult{ShortTermGain: -500000})
			},
			fedAGI:    5700000,
			wantTotal: 6000000,
			wantTax:   184200,
		},
		{
			name: "interest counts while business and rental losses do not",
			mutate: func(r *business.TaxReturn, fed *business.Form1040Result) {
				r.Form1099INT = []business.Form1099INT{{ID: "bank", Interest: 500000}}
				r.ScheduleE = []business.ScheduleERental{{ID: "rental", Expenses: 1000000}}
				r.ScheduleK1 = []business.ScheduleK1{{ID: "llc", OrdinaryIncome: -300000}}
			},
			fedAGI:    5200000,
			wantTotal: 6500000,
			wantTax:   199550,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ret := wageReturn()
			fed := federalResult(tt.fedAGI)
			tt.mutate(ret, fed)

			res, err := pa.New().Compute(ret, fed, business.StateReturnConfig{StateCode: "PA"})
			require.NoError(t, err)

			assert.Equal(t, tt.wantTotal, res.Detail("pa.class_total").Amount)
			assert.Equal(t, tt.wantTotal, res.StateAGI.Amount)
			assert.Equal(t, tt.wantTotal, res.TaxableIncome.Amount)
			assert.Equal(t, tt.wantTax, res.TotalTax.Amount)
			for _, key := range []string{"pa.class_interest", "pa.class_business", "pa.class_gains", "pa.class_rents"} {
				assert.GreaterOrEqual(t, res.Detail(key).Amount, int64(0), key)
			}
			require.NoError(t, traced.NewGraph(fed.Nodes, res.Nodes).Validate())
		})
	}
}

func TestCompute_PartYearApportionment(t *testing.T) {
	tests := []struct {
		name         string
		cfg          business.StateReturnConfig
		wantRatio    float64
		wantSource   int64
		wantFraction float64
		wantTax      int64
	}{
		{
			name:         "full year",
			cfg:          business.StateReturnConfig{StateCode: "PA"},
			wantRatio:    1,
			wantFraction: 1,
			wantTax:      184200,
		},
		{
			name:         "moved in July 1",
			cfg:          business.StateReturnConfig{StateCode: "PA", ResidencyType: business.ResidencyPartYear, MoveInDate: "2025-07-01"},
			wantRatio:    184.0 / 365.0,
			wantSource:   3024658,
			wantFraction: 3024658.0 / 6000000.0,
			wantTax:      92857,
		},
		{
			name: "moved in July 1 with income sourced while nonresident",
			cfg: business.StateReturnConfig{StateCode: "PA", ResidencyType: business.ResidencyPartYear, MoveInDate: "2025-07-01",
				NonresidentSourceIncome: 1000000},
			wantRatio:    184.0 / 365.0,
			wantSource:   4024658,
			wantFraction: 4024658.0 / 6000000.0,
			wantTax:      123557,
		},
		{
			name: "source income capped at state AGI",
			cfg: business.StateReturnConfig{StateCode: "PA", ResidencyType: business.ResidencyPartYear, MoveInDate: "2025-07-01",
				NonresidentSourceIncome: 5000000},
			wantRatio:    184.0 / 365.0,
			wantSource:   6000000,
			wantFraction: 1,
			wantTax:      184200,
		},
		{
			name:         "nonresident with source income",
			cfg:          business.StateReturnConfig{StateCode: "PA", ResidencyType: business.ResidencyNonresident, NonresidentSourceIncome: 2000000},
			wantRatio:    0,
			wantSource:   2000000,
			wantFraction: 1.0 / 3.0,
			wantTax:      61400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fed := federalResult(6000000)
			res, err := pa.New().Compute(wageReturn(), fed, tt.cfg)
			require.NoError(t, err)

			assert.InDelta(t, tt.wantRatio, res.ApportionmentRatio, 1e-12)
			assert.InDelta(t, tt.wantFraction, res.IncomeFraction, 1e-12)
			assert.Equal(t, tt.wantTax, res.TotalTax.Amount)
			assert.Equal(t, int64(6000000), res.StateAGI.Amount)

			g := traced.NewGraph(fed.Nodes, res.Nodes)
			require.NoError(t, g.Validate())
			source, err := g.Get("pa.source_income")
			if tt.wantSource == 0 {
				assert.ErrorIs(t, err, traced.ErrUnknownNode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSource, source.Amount)
			if tt.wantFraction < 1 {
				assert.Equal(t, tt.wantTax, taxOn(res.Detail("pa.apportioned_income").Amount))
			}
		})
	}
}

// taxOn is the flat 3.07% rate in cents.
func taxOn(income int64) int64 {
	return (income*307 + 5000) / 10000
}
