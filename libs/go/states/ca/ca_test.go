package ca_test

import (
	"testing"

	"github.com/cyphera/cyphera-tax/libs/go/states/ca"
	"github.com/cyphera/cyphera-tax/libs/go/traced"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func federalResult(agi int64) *business.Form1040Result {
	line11 := traced.FromComputation(agi, "f1040.line11", nil, "Adjusted gross income")
	return &business.Form1040Result{
		TaxYear: 2025,
		Line11:  line11,
		Nodes:   []traced.TracedValue{line11},
	}
}

func newReturn(fs business.FilingStatus) *business.TaxReturn {
	ret := &business.TaxReturn{TaxYear: 2025, FilingStatus: fs, Taxpayer: business.Person{FirstName: "Pat"}}
	if fs.IsJoint() {
		ret.Spouse = &business.Person{FirstName: "Sam"}
	}
	return ret
}

func TestCompute_MentalHealthServicesTax(t *testing.T) {
	// single standard deduction is $5,706; the surcharge starts at $1,000,000
	// of taxable income.
	tests := []struct {
		name    string
		agi     int64
		cfg     business.StateReturnConfig
		wantTax int64
	}{
		{name: "below threshold", agi: 50000000, cfg: business.StateReturnConfig{StateCode: "CA"}},
		{name: "exactly at threshold", agi: 100570600, cfg: business.StateReturnConfig{StateCode: "CA"}},
		{name: "one dollar over", agi: 100570700, cfg: business.StateReturnConfig{StateCode: "CA"}, wantTax: 1},
		{name: "well over", agi: 120000000, cfg: business.StateReturnConfig{StateCode: "CA"}, wantTax: 194294},
		{
			name:    "part-year still measures all income",
			agi:     120000000,
			cfg:     business.StateReturnConfig{StateCode: "CA", ResidencyType: business.ResidencyPartYear, MoveInDate: "2025-07-01"},
			wantTax: 194294,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fed := federalResult(tt.agi)
			res, err := ca.New().Compute(newReturn(business.FilingSingle), fed, tt.cfg)
			require.NoError(t, err)

			surcharge, ok := res.Details["ca.mental_health_tax"]
			if tt.wantTax == 0 {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.wantTax, surcharge.Amount)
			assert.Equal(t, []string{"ca.taxable_income"}, surcharge.InputIDs)
			assert.Equal(t, res.Detail("ca.bracket_tax").Amount+tt.wantTax, res.TaxBeforeCredits.Amount)
			require.NoError(t, traced.NewGraph(fed.Nodes, res.Nodes).Validate())
		})
	}
}

func TestCompute_RentersCredit(t *testing.T) {
	// AGI limits are $53,994 single and $107,987 joint.
	tests := []struct {
		name       string
		fs         business.FilingStatus
		agi        int64
		cfg        business.StateReturnConfig
		wantCredit int64
	}{
		{name: "single at limit", fs: business.FilingSingle, agi: 5399400, cfg: business.StateReturnConfig{StateCode: "CA", PaidRent: true}, wantCredit: 6000},
		{name: "single one cent over", fs: business.FilingSingle, agi: 5399401, cfg: business.StateReturnConfig{StateCode: "CA", PaidRent: true}},
		{name: "rent amount implies renting", fs: business.FilingSingle, agi: 3000000, cfg: business.StateReturnConfig{StateCode: "CA", RentPaid: 1200000}, wantCredit: 6000},
		{name: "did not rent", fs: business.FilingSingle, agi: 3000000, cfg: business.StateReturnConfig{StateCode: "CA"}},
		{
			name: "nonresident",
			fs:   business.FilingSingle,
			agi:  3000000,
			cfg:  business.StateReturnConfig{StateCode: "CA", ResidencyType: business.ResidencyNonresident, PaidRent: true},
		},
		{name: "joint under joint limit", fs: business.FilingMarriedJoint, agi: 10000000, cfg: business.StateReturnConfig{StateCode: "CA", PaidRent: true}, wantCredit: 12000},
		{name: "joint over joint limit", fs: business.FilingMarriedJoint, agi: 10798800, cfg: business.StateReturnConfig{StateCode: "CA", PaidRent: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ca.New().Compute(newReturn(tt.fs), federalResult(tt.agi), tt.cfg)
			require.NoError(t, err)

			credit, ok := res.Details["ca.renters_credit"]
			if tt.wantCredit == 0 {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.wantCredit, credit.Amount)
		})
	}
}
