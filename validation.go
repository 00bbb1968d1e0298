package main

import (
	"fmt"
	"math"
	"strings"
)

// Input limits enforced by the input layer (sliders and number fields in the
// web UI, prompts in the console). The projection engine itself accepts any value.
const (
	MinAnnualIncome        = 1000.0
	MinContributionRate    = 0.03
	MaxContributionRate    = 0.10
	MinInvestmentYears     = 1
	MaxInvestmentYears     = 40
	DefaultGovContribution = 521.0 // maximum annual government contribution
)

// ValidationError describes one invalid input field
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// ValidationErrors collects every problem found in one pass
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	msgs := make([]string, len(ve))
	for i, e := range ve {
		if e.Field != "" {
			msgs[i] = e.Field + ": " + e.Message
		} else {
			msgs[i] = e.Message
		}
	}
	return strings.Join(msgs, "; ")
}

// Fields returns the names of the invalid fields
func (ve ValidationErrors) Fields() []string {
	fields := make([]string, len(ve))
	for i, e := range ve {
		fields[i] = e.Field
	}
	return fields
}

// isFinite reports whether v is a usable number (not NaN or ±Inf)
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// validateIncome checks income is at least the minimum the calculator accepts
func validateIncome(income float64) error {
	if !isFinite(income) {
		return ValidationError{Field: "annual_income", Message: "Annual income must be a number"}
	}
	if income < MinAnnualIncome {
		return ValidationError{Field: "annual_income", Message: fmt.Sprintf("Annual income must be at least %s (got %s)", FormatMoney(MinAnnualIncome), FormatMoney(income))}
	}
	return nil
}

// validateContributionRate checks a rate sits within the KiwiSaver slider range
func validateContributionRate(rate float64, fieldName string) error {
	if !isFinite(rate) {
		return ValidationError{Field: fieldName, Message: "Contribution rate must be a number"}
	}
	if rate < MinContributionRate-1e-9 || rate > MaxContributionRate+1e-9 {
		return ValidationError{Field: fieldName, Message: fmt.Sprintf("Contribution rate must be between %.0f%% and %.0f%% (got %.1f%%)",
			MinContributionRate*100, MaxContributionRate*100, rate*100)}
	}
	return nil
}

// validateYears checks the investment horizon
func validateYears(years int) error {
	if years < MinInvestmentYears || years > MaxInvestmentYears {
		return ValidationError{Field: "investment_years", Message: fmt.Sprintf("Investment period must be between %d and %d years (got %d)",
			MinInvestmentYears, MaxInvestmentYears, years)}
	}
	return nil
}

// validateBalance checks the starting balance is not negative
func validateBalance(balance float64) error {
	if !isFinite(balance) {
		return ValidationError{Field: "starting_balance", Message: "Starting balance must be a number"}
	}
	if balance < 0 {
		return ValidationError{Field: "starting_balance", Message: "Starting balance cannot be negative"}
	}
	return nil
}

// validateGovContribution checks the yearly government top-up
func validateGovContribution(amount float64) error {
	if !isFinite(amount) {
		return ValidationError{Field: "government_contribution", Message: "Government contribution must be a number"}
	}
	if amount < 0 {
		return ValidationError{Field: "government_contribution", Message: "Government contribution cannot be negative"}
	}
	return nil
}

// ValidateInputs checks user inputs against the input-layer limits and the catalog.
// Returns nil or a ValidationErrors value.
func ValidateInputs(in ProjectionInputs, catalog *Catalog) error {
	var errs ValidationErrors
	add := func(err error) {
		if ve, ok := err.(ValidationError); ok {
			errs = append(errs, ve)
		}
	}

	add(validateBalance(in.StartingBalance))
	add(validateIncome(in.AnnualIncome))
	add(validateContributionRate(in.EmployeeContributionRate, "employee_rate"))
	add(validateContributionRate(in.EmployerContributionRate, "employer_rate"))
	add(validateYears(in.InvestmentYears))
	add(validateGovContribution(in.GovernmentContribution))
	if catalog != nil && !catalog.HasCategory(in.Category) {
		errs = append(errs, ValidationError{Field: "category", Message: fmt.Sprintf("Unknown fund type %q (choose one of %s)",
			in.Category, joinCategories(catalog.CategoryNames()))})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func joinCategories(cats []RiskCategory) string {
	parts := make([]string, len(cats))
	for i, c := range cats {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}
