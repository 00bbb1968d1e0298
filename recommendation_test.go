package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecommendCategory_Boundaries(t *testing.T) {
	tests := []struct {
		years    int
		expected RiskCategory
	}{
		{0, Conservative},
		{1, Conservative},
		{3, Conservative},
		{4, Moderate},
		{5, Moderate},
		{6, Balanced},
		{7, Growth},
		{10, Growth},
		{11, Aggressive},
		{40, Aggressive},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, RecommendCategory(tc.years), "%d years", tc.years)
	}
}

func TestRecommendCategory_EveryHorizonMapsToStandardCategory(t *testing.T) {
	prevRank := 0
	for years := 0; years <= 41; years++ {
		got := RecommendCategory(years)
		rank := -1
		for i, c := range StandardCategories {
			if c == got {
				rank = i
			}
		}
		assert.NotEqual(t, -1, rank, "%d years gave %q", years, got)
		assert.GreaterOrEqual(t, rank, prevRank, "risk must not drop as the horizon grows (%d years)", years)
		prevRank = rank
	}
}

func TestRecommendForCatalog_InCatalog(t *testing.T) {
	rec := RecommendForCatalog(6, &DefaultCatalog)
	assert.Equal(t, Balanced, rec.Category)
	assert.True(t, rec.InCatalog)
}

func TestRecommendForCatalog_MissingCategory(t *testing.T) {
	catalog := &Catalog{Categories: []CategoryFunds{
		{Name: Conservative, Funds: []Fund{{Name: "A"}}},
		{Name: Growth, Funds: []Fund{{Name: "B"}}},
	}}

	rec := RecommendForCatalog(20, catalog)
	assert.Equal(t, Aggressive, rec.Category)
	assert.False(t, rec.InCatalog)

	rec = RecommendForCatalog(20, nil)
	assert.False(t, rec.InCatalog)
}

func TestDefaultCategory(t *testing.T) {
	catalog := &Catalog{Categories: []CategoryFunds{
		{Name: Growth, Funds: []Fund{{Name: "B"}}},
		{Name: Conservative, Funds: []Fund{{Name: "A"}}},
	}}

	assert.Equal(t, Conservative, DefaultCategory(2, catalog))
	assert.Equal(t, Growth, DefaultCategory(8, catalog))
	// Not offered: fall back to the first category
	assert.Equal(t, Growth, DefaultCategory(30, catalog))
	assert.Equal(t, Moderate, DefaultCategory(4, nil))
}
