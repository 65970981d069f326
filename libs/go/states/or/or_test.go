package or_test

import (
	"testing"

	"github.com/cyphera/cyphera-tax/libs/go/states/or"
	"github.com/cyphera/cyphera-tax/libs/go/traced"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func federalResult(agi, liability int64) *business.Form1040Result {
	line11 := traced.FromComputation(agi, "f1040.line11", nil, "Adjusted gross income")
	line22 := traced.FromComputation(liability, "f1040.line22", nil, "Tax after credits")
	return &business.Form1040Result{
		TaxYear: 2025,
		Line11:  line11,
		Line22:  line22,
		Nodes:   []traced.TracedValue{line11, line22},
	}
}

func TestCompute_FederalTaxSubtraction(t *testing.T) {
	// The subtraction is capped at $8,500 ($4,250 separate) and phases out
	// over $125,000 to $145,000 of federal AGI.
	tests := []struct {
		name      string
		fs        business.FilingStatus
		agi       int64
		liability int64
		want      int64
	}{
		{name: "under the cap", fs: business.FilingSingle, agi: 8000000, liability: 500000, want: 500000},
		{name: "capped", fs: business.FilingSingle, agi: 8000000, liability: 1200000, want: 850000},
		{name: "separate return cap", fs: business.FilingMarriedSeparate, agi: 8000000, liability: 1200000, want: 425000},
		{name: "at phase-out start", fs: business.FilingSingle, agi: 12500000, liability: 2000000, want: 850000},
		{name: "halfway through phase-out", fs: business.FilingSingle, agi: 13500000, liability: 2000000, want: 425000},
		{name: "fully phased out", fs: business.FilingSingle, agi: 14500000, liability: 2500000},
		{name: "no federal tax", fs: business.FilingSingle, agi: 3000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ret := &business.TaxReturn{TaxYear: 2025, FilingStatus: tt.fs}
			fed := federalResult(tt.agi, tt.liability)
			res, err := or.New().Compute(ret, fed, business.StateReturnConfig{StateCode: "OR"})
			require.NoError(t, err)

			assert.Equal(t, tt.want, res.Subtractions.Amount)
			assert.Equal(t, tt.agi-tt.want, res.StateAGI.Amount)
			sub, ok := res.Details["or.federal_tax_subtraction"]
			if tt.want == 0 {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, sub.Amount)
			assert.Equal(t, []string{"or.federal_tax_liability", "or.federal_agi"}, sub.InputIDs)
			require.NoError(t, traced.NewGraph(fed.Nodes, res.Nodes).Validate())
		})
	}
}
