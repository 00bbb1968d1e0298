package main

// RecommendCategory maps an investment horizon in whole years to a risk category.
// Every integer maps to exactly one category.
func RecommendCategory(years int) RiskCategory {
	switch {
	case years <= 3:
		return Conservative
	case years <= 5:
		return Moderate
	case years == 6:
		return Balanced
	case years <= 10:
		return Growth
	default:
		return Aggressive
	}
}

// DefaultCategory picks the category to show when the user has not chosen one:
// the recommendation if the catalog offers it, otherwise the first category
func DefaultCategory(years int, catalog *Catalog) RiskCategory {
	rec := RecommendForCatalog(years, catalog)
	if rec.InCatalog || catalog == nil || len(catalog.Categories) == 0 {
		return rec.Category
	}
	return catalog.Categories[0].Name
}

// RecommendForCatalog returns the recommendation and whether the catalog offers it
func RecommendForCatalog(years int, catalog *Catalog) Recommendation {
	category := RecommendCategory(years)
	return Recommendation{
		Category:  category,
		InCatalog: catalog != nil && catalog.HasCategory(category),
	}
}
