package main

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog_IsValid(t *testing.T) {
	require.NoError(t, DefaultCatalog.Validate())
	assert.Equal(t, StandardCategories, DefaultCatalog.CategoryNames())
	assert.Equal(t, 10, DefaultCatalog.FundCount())

	for _, cat := range DefaultCatalog.Categories {
		assert.GreaterOrEqual(t, len(cat.Funds), 2, "%s needs at least two funds to compare", cat.Name)
	}
}

func TestCatalog_Funds(t *testing.T) {
	funds, err := DefaultCatalog.Funds(Growth)
	require.NoError(t, err)
	assert.Equal(t, "Provider B Growth", funds[0].Name)

	_, err = DefaultCatalog.Funds("Speculative")
	assert.ErrorIs(t, err, ErrUnknownCategory)
	assert.False(t, DefaultCatalog.HasCategory("Speculative"))
	assert.True(t, DefaultCatalog.HasCategory(Aggressive))
}

func TestCatalog_FindFund(t *testing.T) {
	fund, category, ok := DefaultCatalog.FindFund("Provider C Moderate")
	require.True(t, ok)
	assert.Equal(t, Moderate, category)
	assert.InDelta(t, 0.052, fund.AverageAnnualReturn, 1e-12)

	_, _, ok = DefaultCatalog.FindFund("Nobody")
	assert.False(t, ok)
}

func TestParseCatalog_PercentagesAndOrder(t *testing.T) {
	catalog, err := ParseCatalog([]byte(`
name: Test providers
categories:
  - name: Aggressive
    funds:
      - name: Fund Z
        avg_return: 8%
        annual_fee: 65
        mgmt_fee: 1%
        buy_sell_fee: 0.25%
  - name: Conservative
    funds:
      - name: Fund A
        avg_return: 0.04
        annual_fee: 30
        mgmt_fee: 0.006
        buy_sell_fee: 0.001
`))
	require.NoError(t, err)

	assert.Equal(t, "Test providers", catalog.Name)
	assert.Equal(t, []RiskCategory{Aggressive, Conservative}, catalog.CategoryNames())

	z := catalog.Categories[0].Funds[0]
	assert.InDelta(t, 0.08, z.AverageAnnualReturn, 1e-12)
	assert.InDelta(t, 65, z.AnnualFlatFee, 1e-12)
	assert.InDelta(t, 0.01, z.ManagementFeeRate, 1e-12)
	assert.InDelta(t, 0.0025, z.TransactionFeeRate, 1e-12)
}

func TestParseCatalog_AllowsCustomCategories(t *testing.T) {
	catalog, err := ParseCatalog([]byte(`
categories:
  - name: Ethical
    funds:
      - name: Green Fund
        avg_return: 6%
`))
	require.NoError(t, err)
	assert.True(t, catalog.HasCategory("Ethical"))
}

func TestCatalog_Validate(t *testing.T) {
	tests := []struct {
		name    string
		catalog Catalog
		field   string
	}{
		{
			name:    "duplicate category",
			catalog: Catalog{Categories: []CategoryFunds{{Name: Growth, Funds: []Fund{{Name: "A"}}}, {Name: Growth, Funds: []Fund{{Name: "B"}}}}},
			field:   "categories.name",
		},
		{
			name:    "empty category",
			catalog: Catalog{Categories: []CategoryFunds{{Name: Growth}}},
			field:   "Growth",
		},
		{
			name:    "unnamed fund",
			catalog: Catalog{Categories: []CategoryFunds{{Name: Growth, Funds: []Fund{{}}}}},
			field:   "Growth",
		},
		{
			name:    "duplicate fund",
			catalog: Catalog{Categories: []CategoryFunds{{Name: Growth, Funds: []Fund{{Name: "A"}}}, {Name: Balanced, Funds: []Fund{{Name: "A"}}}}},
			field:   "Balanced.A",
		},
		{
			name:    "negative flat fee",
			catalog: Catalog{Categories: []CategoryFunds{{Name: Growth, Funds: []Fund{{Name: "A", FundParameters: FundParameters{AnnualFlatFee: -1}}}}}},
			field:   "Growth.A",
		},
		{
			name:    "management fee of 100%",
			catalog: Catalog{Categories: []CategoryFunds{{Name: Growth, Funds: []Fund{{Name: "A", FundParameters: FundParameters{ManagementFeeRate: 1}}}}}},
			field:   "Growth.A",
		},
		{
			name:    "NaN return",
			catalog: Catalog{Categories: []CategoryFunds{{Name: Growth, Funds: []Fund{{Name: "A", FundParameters: FundParameters{AverageAnnualReturn: math.NaN()}}}}}},
			field:   "Growth.A",
		},
		{
			name:    "infinite flat fee",
			catalog: Catalog{Categories: []CategoryFunds{{Name: Growth, Funds: []Fund{{Name: "A", FundParameters: FundParameters{AnnualFlatFee: math.Inf(1)}}}}}},
			field:   "Growth.A",
		},
		{
			name:    "return wipes out balance",
			catalog: Catalog{Categories: []CategoryFunds{{Name: Growth, Funds: []Fund{{Name: "A", FundParameters: FundParameters{AverageAnnualReturn: -1}}}}}},
			field:   "Growth.A",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.catalog.Validate()
			require.Error(t, err)

			var errs ValidationErrors
			require.True(t, errors.As(err, &errs))
			assert.Contains(t, errs.Fields(), tc.field)
		})
	}

	assert.Error(t, (&Catalog{}).Validate())
}

func TestParseCatalog_RejectsInvalid(t *testing.T) {
	_, err := ParseCatalog([]byte("categories:\n  - name: Growth\n    funds: []\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid catalog")

	_, err = ParseCatalog([]byte("categories: {"))
	assert.Error(t, err)
}

func TestSaveCatalog_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, SaveCatalog(&DefaultCatalog, path))

	loaded, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultCatalog, *loaded)
}
