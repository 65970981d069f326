package taxdata_test

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/cyphera/cyphera-tax/libs/go/taxdata"
	"github.com/cyphera/cyphera-tax/libs/go/taxmath"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForYear_2025(t *testing.T) {
	tables, err := taxdata.ForYear(2025)
	require.NoError(t, err)
	require.NotNil(t, tables.Federal)

	fed := tables.Federal
	assert.Equal(t, int64(1575000), fed.StandardDeduction.For(business.FilingSingle))
	assert.Equal(t, int64(3150000), fed.StandardDeduction.For(business.FilingMarriedJoint))
	assert.Equal(t, int64(3150000), fed.StandardDeduction.For(business.FilingQualifyingSurvivor))
	assert.Equal(t, int64(2362500), fed.StandardDeduction.For(business.FilingHeadOfHousehold))

	single := fed.OrdinaryBrackets(business.FilingSingle)
	require.Len(t, single, 7)
	assert.Equal(t, int64(1192500), single[0].Limit)
	assert.Equal(t, taxmath.Unbounded, single[6].Limit)
	assert.Equal(t, 0.37, single[6].Rate)

	mfs := fed.OrdinaryBrackets(business.FilingMarriedSeparate)
	assert.Equal(t, int64(37580000), mfs[5].Limit)

	assert.Equal(t, int64(300000), fed.CapitalLossLimit.For(business.FilingSingle))
	assert.Equal(t, int64(150000), fed.CapitalLossLimit.For(business.FilingMarriedSeparate))
	assert.Equal(t, int64(1091820), fed.SocialSecurity.MaxEmployeeWithholding())

	th := fed.PreferentialThresholds(business.FilingMarriedJoint)
	assert.Equal(t, int64(9670000), th.ZeroRateTop)
	assert.Equal(t, int64(60005000), th.FifteenRateTop)

	assert.Equal(t, int64(432800), int64(fed.EIC.Entry(1).MaxCredit))
	assert.Equal(t, int64(804600), int64(fed.EIC.Entry(7).MaxCredit))

	assert.Equal(t, 0.5, fed.SaversCredit.Tiers.RateFor(business.FilingSingle, 2000000))
	assert.Equal(t, 0.0, fed.SaversCredit.Tiers.RateFor(business.FilingSingle, 4000000))
	assert.Equal(t, 0.5, fed.SaversCredit.Tiers.RateFor(business.FilingMarriedJoint, 4000000))

	amt := fed.AMT.Brackets(business.FilingMarriedSeparate)
	assert.Equal(t, int64(11955000), amt[0].Limit)
}

func TestForYear_Unsupported(t *testing.T) {
	_, err := taxdata.ForYear(1999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, taxdata.ErrUnsupportedTaxYear))
	assert.Contains(t, taxdata.SupportedYears(), 2025)
}

func TestForYear_States(t *testing.T) {
	tables, err := taxdata.ForYear(2025)
	require.NoError(t, err)

	for _, code := range []string{"AZ", "CA", "CO", "GA", "IL", "MA", "MD", "MI", "NC", "NJ", "NY", "OH", "OR", "PA", "VA"} {
		t.Run(code, func(t *testing.T) {
			st, ok := tables.State(code)
			require.True(t, ok)
			assert.NotEmpty(t, st.Name)
			assert.Contains(t, []business.DataConfidence{business.ConfidenceVerified, business.ConfidenceProvisional}, st.Confidence)
			assert.NoError(t, taxmath.ValidateBrackets(st.Brackets.For(business.FilingSingle)))
			assert.NoError(t, taxmath.ValidateBrackets(st.Brackets.For(business.FilingMarriedJoint)))
		})
	}

	ny, _ := tables.State("ny")
	nyc, ok := ny.Locality("NYC")
	require.True(t, ok)
	assert.Len(t, nyc.Brackets.For(business.FilingSingle), 4)

	md, _ := tables.State("MD")
	county, ok := md.Locality("UNKNOWN")
	require.True(t, ok)
	assert.Equal(t, 0.032, county.Rate)

	ca, _ := tables.State("CA")
	assert.Equal(t, int64(12000), ca.Params.Dollars("rentersCredit", business.FilingMarriedJoint))
	assert.Equal(t, int64(6000), ca.Params.Dollars("rentersCredit", business.FilingSingle))
	assert.Equal(t, int64(12000), ca.Params.Dollars("rentersCredit", business.FilingQualifyingSurvivor))
	assert.True(t, ca.Params.Has("exemptionPhaseOutStart"))
	assert.False(t, ca.Params.Has("nope"))
}

func TestLoad_MalformedBrackets(t *testing.T) {
	fsys := fstest.MapFS{
		"tables/federal_2030.yaml": &fstest.MapFile{Data: []byte(`
taxYear: 2030
federal:
  brackets:
    single:
      - {upTo: 20000, rate: 0.10}
      - {upTo: 10000, rate: 0.20}
      - {rate: 0.30}
`)},
	}
	_, err := taxdata.Load(fsys)
	require.Error(t, err)
	assert.True(t, errors.Is(err, taxmath.ErrMalformedBrackets))
}

func TestLoad_YearMismatch(t *testing.T) {
	fsys := fstest.MapFS{
		"tables/federal_2030.yaml": &fstest.MapFile{Data: []byte("taxYear: 2031\n")},
	}
	_, err := taxdata.Load(fsys)
	assert.Error(t, err)
}

func TestLoad_WithoutStates(t *testing.T) {
	fsys := fstest.MapFS{
		"tables/federal_2030.yaml": &fstest.MapFile{Data: []byte("taxYear: 2030\nfederal:\n  standardDeduction: {default: 20000}\n")},
	}
	tables, err := taxdata.Load(fsys)
	require.NoError(t, err)
	require.Contains(t, tables, 2030)
	assert.Empty(t, tables[2030].States)
	assert.Equal(t, int64(2000000), tables[2030].Federal.StandardDeduction.For(business.FilingHeadOfHousehold))
}
