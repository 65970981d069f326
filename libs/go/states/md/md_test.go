package md_test

import (
	"testing"

	"github.com/cyphera/cyphera-tax/libs/go/states/md"
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

func TestCompute_CountyTax(t *testing.T) {
	// $100,000 of AGI less the $3,350 standard deduction and $3,200
	// exemption leaves $93,450 taxable.
	tests := []struct {
		name      string
		cfg       business.StateReturnConfig
		wantKey   string
		wantLocal int64
	}{
		{name: "named county", cfg: business.StateReturnConfig{StateCode: "MD", Locality: "FREDERICK"}, wantKey: "md.county_tax", wantLocal: 276612},
		{name: "lowest county rate", cfg: business.StateReturnConfig{StateCode: "MD", Locality: "TALBOT"}, wantKey: "md.county_tax", wantLocal: 224280},
		{name: "unknown county uses default rate", cfg: business.StateReturnConfig{StateCode: "MD", Locality: "ATLANTIS"}, wantKey: "md.county_tax", wantLocal: 299040},
		{name: "no county given", cfg: business.StateReturnConfig{StateCode: "MD"}, wantKey: "md.county_tax", wantLocal: 299040},
		{
			name:      "nonresident pays the special rate on the Maryland share",
			cfg:       business.StateReturnConfig{StateCode: "MD", ResidencyType: business.ResidencyNonresident, NonresidentSourceIncome: 5000000, Locality: "TALBOT"},
			wantKey:   "md.nonresident_tax",
			wantLocal: 105131,
		},
		{
			name: "nonresident without Maryland income",
			cfg:  business.StateReturnConfig{StateCode: "MD", ResidencyType: business.ResidencyNonresident},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ret := &business.TaxReturn{TaxYear: 2025, FilingStatus: business.FilingSingle}
			fed := federalResult(10000000)
			res, err := md.New().Compute(ret, fed, tt.cfg)
			require.NoError(t, err)

			assert.Equal(t, int64(9345000), res.TaxableIncome.Amount)
			assert.Equal(t, tt.wantLocal, res.LocalTax.Amount)
			assert.Equal(t, res.ApportionedTax.Amount+tt.wantLocal, res.TotalTax.Amount)
			if tt.wantKey == "" {
				assert.NotContains(t, res.Details, "md.county_tax")
				assert.NotContains(t, res.Details, "md.nonresident_tax")
				return
			}
			assert.Equal(t, tt.wantLocal, res.Detail(tt.wantKey).Amount)
			require.NoError(t, traced.NewGraph(fed.Nodes, res.Nodes).Validate())
		})
	}
}
