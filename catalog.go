package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownCategory = errors.New("unknown fund category")
	ErrEmptyCategory   = errors.New("fund category has no funds")
)

// CategoryFunds is one risk category and its funds, in display order
type CategoryFunds struct {
	Name  RiskCategory `yaml:"name" json:"name"`
	Funds []Fund       `yaml:"funds" json:"funds"`
}

// Catalog is an ordered set of risk categories.
// Order matters: it drives category menus and table column order.
type Catalog struct {
	Name       string          `yaml:"name,omitempty" json:"name,omitempty"`
	Categories []CategoryFunds `yaml:"categories" json:"categories"`
}

// DefaultCatalog contains the sample KiwiSaver providers.
// Figures are illustrative only and do not describe real products.
var DefaultCatalog = Catalog{
	Name: "Sample KiwiSaver providers",
	Categories: []CategoryFunds{
		{
			Name: Conservative,
			Funds: []Fund{
				{Name: "Provider A Conservative", FundParameters: FundParameters{AverageAnnualReturn: 0.04, AnnualFlatFee: 30, ManagementFeeRate: 0.006, TransactionFeeRate: 0.001}},
				{Name: "Provider B Conservative", FundParameters: FundParameters{AverageAnnualReturn: 0.042, AnnualFlatFee: 25, ManagementFeeRate: 0.0055, TransactionFeeRate: 0.0012}},
			},
		},
		{
			Name: Moderate,
			Funds: []Fund{
				{Name: "Provider A Moderate", FundParameters: FundParameters{AverageAnnualReturn: 0.05, AnnualFlatFee: 40, ManagementFeeRate: 0.007, TransactionFeeRate: 0.0015}},
				{Name: "Provider C Moderate", FundParameters: FundParameters{AverageAnnualReturn: 0.052, AnnualFlatFee: 45, ManagementFeeRate: 0.0072, TransactionFeeRate: 0.0017}},
			},
		},
		{
			Name: Balanced,
			Funds: []Fund{
				{Name: "Provider A Balanced", FundParameters: FundParameters{AverageAnnualReturn: 0.06, AnnualFlatFee: 50, ManagementFeeRate: 0.008, TransactionFeeRate: 0.002}},
				{Name: "Provider B Balanced", FundParameters: FundParameters{AverageAnnualReturn: 0.062, AnnualFlatFee: 48, ManagementFeeRate: 0.0078, TransactionFeeRate: 0.0019}},
			},
		},
		{
			Name: Growth,
			Funds: []Fund{
				{Name: "Provider B Growth", FundParameters: FundParameters{AverageAnnualReturn: 0.07, AnnualFlatFee: 55, ManagementFeeRate: 0.009, TransactionFeeRate: 0.0022}},
				{Name: "Provider C Growth", FundParameters: FundParameters{AverageAnnualReturn: 0.072, AnnualFlatFee: 60, ManagementFeeRate: 0.0092, TransactionFeeRate: 0.0023}},
			},
		},
		{
			Name: Aggressive,
			Funds: []Fund{
				{Name: "Provider A Aggressive", FundParameters: FundParameters{AverageAnnualReturn: 0.08, AnnualFlatFee: 65, ManagementFeeRate: 0.010, TransactionFeeRate: 0.0025}},
				{Name: "Provider C Aggressive", FundParameters: FundParameters{AverageAnnualReturn: 0.085, AnnualFlatFee: 70, ManagementFeeRate: 0.0105, TransactionFeeRate: 0.0028}},
			},
		},
	},
}

// CategoryNames returns the category keys in catalog order
func (c *Catalog) CategoryNames() []RiskCategory {
	names := make([]RiskCategory, len(c.Categories))
	for i, cat := range c.Categories {
		names[i] = cat.Name
	}
	return names
}

// HasCategory reports whether the catalog contains the category
func (c *Catalog) HasCategory(name RiskCategory) bool {
	_, err := c.Funds(name)
	return !errors.Is(err, ErrUnknownCategory)
}

// Funds returns the funds of a category in catalog order
func (c *Catalog) Funds(name RiskCategory) ([]Fund, error) {
	for i := range c.Categories {
		if c.Categories[i].Name == name {
			if len(c.Categories[i].Funds) == 0 {
				return nil, fmt.Errorf("%w: %s", ErrEmptyCategory, name)
			}
			return c.Categories[i].Funds, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}

// FindFund looks a fund up by name across all categories
func (c *Catalog) FindFund(name string) (*Fund, RiskCategory, bool) {
	for i := range c.Categories {
		for j := range c.Categories[i].Funds {
			if c.Categories[i].Funds[j].Name == name {
				return &c.Categories[i].Funds[j], c.Categories[i].Name, true
			}
		}
	}
	return nil, "", false
}

// FundCount returns the total number of funds in the catalog
func (c *Catalog) FundCount() int {
	n := 0
	for _, cat := range c.Categories {
		n += len(cat.Funds)
	}
	return n
}

// Validate checks the catalog for structural mistakes.
// It does not judge whether returns are realistic.
func (c *Catalog) Validate() error {
	if len(c.Categories) == 0 {
		return errors.New("catalog has no categories")
	}

	var errs ValidationErrors
	seenCategories := make(map[RiskCategory]bool)
	seenFunds := make(map[string]bool)

	for _, cat := range c.Categories {
		if cat.Name == "" {
			errs = append(errs, ValidationError{Field: "categories.name", Message: "category name is required"})
			continue
		}
		if seenCategories[cat.Name] {
			errs = append(errs, ValidationError{Field: "categories.name", Message: fmt.Sprintf("duplicate category %q", cat.Name)})
		}
		seenCategories[cat.Name] = true

		if len(cat.Funds) == 0 {
			errs = append(errs, ValidationError{Field: string(cat.Name), Message: fmt.Sprintf("category %q has no funds", cat.Name)})
		}

		for _, f := range cat.Funds {
			field := string(cat.Name) + "." + f.Name
			if f.Name == "" {
				errs = append(errs, ValidationError{Field: string(cat.Name), Message: "fund name is required"})
				continue
			}
			if seenFunds[f.Name] {
				errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf("duplicate fund %q", f.Name)})
			}
			seenFunds[f.Name] = true

			if !isFinite(f.AverageAnnualReturn) || !isFinite(f.AnnualFlatFee) || !isFinite(f.ManagementFeeRate) || !isFinite(f.TransactionFeeRate) {
				errs = append(errs, ValidationError{Field: field, Message: "fund parameters must be numbers"})
				continue
			}
			if f.AnnualFlatFee < 0 {
				errs = append(errs, ValidationError{Field: field, Message: "annual fee cannot be negative"})
			}
			if f.ManagementFeeRate < 0 || f.ManagementFeeRate >= 1 {
				errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf("management fee must be between 0%% and 100%% (got %.2f%%)", f.ManagementFeeRate*100)})
			}
			if f.TransactionFeeRate < 0 || f.TransactionFeeRate >= 1 {
				errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf("buy/sell fee must be between 0%% and 100%% (got %.2f%%)", f.TransactionFeeRate*100)})
			}
			if f.AverageAnnualReturn <= -1 {
				errs = append(errs, ValidationError{Field: field, Message: "average return must be above -100%"})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// LoadCatalog reads a catalog from a YAML file.
// Percentages may be written as "4%" or 0.04.
func LoadCatalog(filename string) (*Catalog, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates catalog YAML
func ParseCatalog(data []byte) (*Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal([]byte(preprocessPercentages(string(data))), &catalog); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return &catalog, nil
}

// SaveCatalog writes a catalog to a YAML file
func SaveCatalog(catalog *Catalog, filename string) error {
	data, err := yaml.Marshal(catalog)
	if err != nil {
		return err
	}
	header := []byte("# KiwiSaver fund catalog\n# Rates are decimals (0.04 = 4%) or percentages (\"4%\"); annual_fee is in dollars.\n\n")
	return os.WriteFile(filename, append(header, data...), 0644)
}
