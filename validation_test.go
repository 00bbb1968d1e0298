package main

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInputs_Defaults(t *testing.T) {
	assert.NoError(t, ValidateInputs(defaultInputs(), &DefaultCatalog))
}

func TestValidateInputs_Limits(t *testing.T) {
	tests := []struct {
		name   string
		modify func(in *ProjectionInputs)
		field  string
	}{
		{"negative balance", func(in *ProjectionInputs) { in.StartingBalance = -1 }, "starting_balance"},
		{"income below minimum", func(in *ProjectionInputs) { in.AnnualIncome = 999 }, "annual_income"},
		{"employee rate below 3%", func(in *ProjectionInputs) { in.EmployeeContributionRate = 0.02 }, "employee_rate"},
		{"employer rate above 10%", func(in *ProjectionInputs) { in.EmployerContributionRate = 0.11 }, "employer_rate"},
		{"zero years", func(in *ProjectionInputs) { in.InvestmentYears = 0 }, "investment_years"},
		{"41 years", func(in *ProjectionInputs) { in.InvestmentYears = 41 }, "investment_years"},
		{"negative government contribution", func(in *ProjectionInputs) { in.GovernmentContribution = -5 }, "government_contribution"},
		{"unknown category", func(in *ProjectionInputs) { in.Category = "Speculative" }, "category"},
		{"NaN balance", func(in *ProjectionInputs) { in.StartingBalance = math.NaN() }, "starting_balance"},
		{"infinite balance", func(in *ProjectionInputs) { in.StartingBalance = math.Inf(1) }, "starting_balance"},
		{"NaN income", func(in *ProjectionInputs) { in.AnnualIncome = math.NaN() }, "annual_income"},
		{"infinite income", func(in *ProjectionInputs) { in.AnnualIncome = math.Inf(1) }, "annual_income"},
		{"NaN employee rate", func(in *ProjectionInputs) { in.EmployeeContributionRate = math.NaN() }, "employee_rate"},
		{"infinite employer rate", func(in *ProjectionInputs) { in.EmployerContributionRate = math.Inf(-1) }, "employer_rate"},
		{"NaN government contribution", func(in *ProjectionInputs) { in.GovernmentContribution = math.NaN() }, "government_contribution"},
		{"infinite government contribution", func(in *ProjectionInputs) { in.GovernmentContribution = math.Inf(1) }, "government_contribution"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := defaultInputs()
			tc.modify(&in)

			err := ValidateInputs(in, &DefaultCatalog)
			require.Error(t, err)

			var errs ValidationErrors
			require.True(t, errors.As(err, &errs))
			assert.Equal(t, []string{tc.field}, errs.Fields())
		})
	}
}

func TestValidateInputs_EdgesAccepted(t *testing.T) {
	in := defaultInputs()
	in.AnnualIncome = MinAnnualIncome
	in.EmployeeContributionRate = MinContributionRate
	in.EmployerContributionRate = MaxContributionRate
	in.InvestmentYears = MaxInvestmentYears
	in.GovernmentContribution = 0
	assert.NoError(t, ValidateInputs(in, &DefaultCatalog))

	in.InvestmentYears = MinInvestmentYears
	assert.NoError(t, ValidateInputs(in, &DefaultCatalog))
}

func TestValidateInputs_CollectsEveryProblem(t *testing.T) {
	in := ProjectionInputs{StartingBalance: -1, Category: "Nope"}

	err := ValidateInputs(in, &DefaultCatalog)
	var errs ValidationErrors
	require.True(t, errors.As(err, &errs))
	assert.ElementsMatch(t,
		[]string{"starting_balance", "annual_income", "employee_rate", "employer_rate", "investment_years", "category"},
		errs.Fields())
	assert.Contains(t, err.Error(), "Conservative, Moderate, Balanced, Growth, Aggressive")
}

func TestValidateInputs_NilCatalogSkipsCategory(t *testing.T) {
	in := defaultInputs()
	in.Category = "Anything"
	assert.NoError(t, ValidateInputs(in, nil))
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "a", Message: "first"},
		{Message: "second"},
	}
	assert.Equal(t, "a: first; second", errs.Error())
}
