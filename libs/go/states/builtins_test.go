package states_test

import (
	"context"
	"testing"

	"github.com/cyphera/cyphera-tax/libs/go/logger"
	"github.com/cyphera/cyphera-tax/libs/go/services"
	"github.com/cyphera/cyphera-tax/libs/go/states"
	"github.com/cyphera/cyphera-tax/libs/go/traced"
	"github.com/cyphera/cyphera-tax/libs/go/types/business"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.InitLogger("test")
}

var allStates = []string{"AZ", "CA", "CO", "GA", "IL", "MA", "MD", "MI", "NC", "NJ", "NY", "OH", "OR", "PA", "VA"}

func wageReturn(state string) *business.TaxReturn {
	return &business.TaxReturn{
		TaxYear:      2025,
		FilingStatus: business.FilingSingle,
		Taxpayer:     business.Person{FirstName: "Pat", LastName: "Doe", DateOfBirth: "1985-04-12"},
		W2s: []business.W2{{
			ID:              "w2-1",
			EmployerName:    "Acme",
			Wages:           6000000,
			FederalWithheld: 600000,
			StateCode:       state,
			StateWithheld:   150000,
		}},
	}
}

func federal(t *testing.T, ret *business.TaxReturn) *business.Form1040Result {
	t.Helper()
	fed, err := services.NewForm1040Service().ComputeForm1040(context.Background(), ret)
	require.NoError(t, err)
	return fed
}

func TestBuiltins_RegisterEveryState(t *testing.T) {
	r := states.NewRegistry()

	list := r.ListSupportedStates()
	require.Len(t, list, len(allStates))
	for i, code := range allStates {
		assert.Equal(t, code, list[i].Code)
		assert.NotEmpty(t, list[i].Name)

		m, err := r.GetModule(code)
		require.NoError(t, err)
		assert.NotEmpty(t, m.NodeLabels())
		assert.GreaterOrEqual(t, len(m.ReviewLayout()), 4)
	}
}

func TestBuiltins_FullYearResident(t *testing.T) {
	r := states.NewRegistry()

	for _, code := range allStates {
		t.Run(code, func(t *testing.T) {
			ret := wageReturn(code)
			fed := federal(t, ret)
			m, err := r.GetModule(code)
			require.NoError(t, err)

			res, err := m.Compute(ret, fed, business.StateReturnConfig{StateCode: code, ResidencyType: business.ResidencyFullYear})
			require.NoError(t, err)

			assert.Equal(t, code, res.StateCode)
			assert.Equal(t, 1.0, res.IncomeFraction)
			assert.Greater(t, res.TotalTax.Amount, int64(0))
			assert.Equal(t, int64(150000), res.Withholding.Amount)
			assert.True(t, res.Refund.Amount == 0 || res.AmountOwed.Amount == 0)
			assert.Equal(t, res.TotalPayments.Amount-res.TotalTax.Amount, res.Refund.Amount-res.AmountOwed.Amount)
			assert.Equal(t, []string{"f1040.line11"}, res.FederalAGI.InputIDs)

			require.NoError(t, traced.NewGraph(fed.Nodes, m.CollectTracedValues(&res)).Validate())

			labels := m.NodeLabels()
			for _, n := range []traced.TracedValue{res.StateAGI, res.TaxableIncome, res.TotalTax, res.Refund} {
				assert.Contains(t, labels, n.NodeID)
			}
		})
	}
}

func TestBuiltins_NonresidentWithoutSourceIncome(t *testing.T) {
	r := states.NewRegistry()

	for _, code := range allStates {
		t.Run(code, func(t *testing.T) {
			ret := wageReturn("")
			fed := federal(t, ret)
			m, err := r.GetModule(code)
			require.NoError(t, err)

			res, err := m.Compute(ret, fed, business.StateReturnConfig{StateCode: code, ResidencyType: business.ResidencyNonresident})
			require.NoError(t, err)

			assert.Equal(t, 0.0, res.ApportionmentRatio)
			assert.Equal(t, 0.0, res.IncomeFraction)
			assert.Equal(t, int64(0), res.ApportionedTax.Amount)
			assert.Equal(t, int64(0), res.TotalTax.Amount)
			assert.Equal(t, int64(0), res.Withholding.Amount)
		})
	}
}

func TestNewYork(t *testing.T) {
	r := states.NewRegistry()
	m, err := r.GetModule("NY")
	require.NoError(t, err)

	ret := wageReturn("NY")
	fed := federal(t, ret)

	t.Run("state tax", func(t *testing.T) {
		res, err := m.Compute(ret, fed, business.StateReturnConfig{StateCode: "NY"})
		require.NoError(t, err)
		assert.Equal(t, int64(5200000), res.TaxableIncome.Amount)
		assert.Equal(t, int64(269500), res.TaxBeforeCredits.Amount)
		assert.Equal(t, int64(0), res.LocalTax.Amount)
	})

	t.Run("city resident", func(t *testing.T) {
		res, err := m.Compute(ret, fed, business.StateReturnConfig{StateCode: "NY", Locality: "nyc"})
		require.NoError(t, err)
		city := res.Detail("ny.nyc_tax")
		assert.Greater(t, city.Amount, int64(0))
		assert.Equal(t, city.Amount, res.LocalTax.Amount)
		assert.Equal(t, res.ApportionedTax.Amount+res.LocalTax.Amount, res.TotalTax.Amount)
	})

	t.Run("city tax skipped for nonresidents", func(t *testing.T) {
		res, err := m.Compute(ret, fed, business.StateReturnConfig{
			StateCode:               "NY",
			ResidencyType:           business.ResidencyNonresident,
			Locality:                "NYC",
			NonresidentSourceIncome: 3000000,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(0), res.LocalTax.Amount)
		assert.Equal(t, 0.5, res.IncomeFraction)
		assert.Equal(t, int64(269500), res.TaxBeforeCredits.Amount)
		assert.Equal(t, int64(134750), res.ApportionedTax.Amount)
	})
}
