package services_test

import (
	"testing"

	"github.com/cyphera/cyphera-tax/libs/go/taxdata"
	"github.com/stretchr/testify/require"
)

func federal2025(t *testing.T) *taxdata.Federal {
	t.Helper()
	tables, err := taxdata.ForYear(2025)
	require.NoError(t, err)
	return tables.Federal
}
