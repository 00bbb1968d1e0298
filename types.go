package main

import "fmt"

// RiskCategory names a group of funds with a similar return/fee profile
type RiskCategory string

const (
	Conservative RiskCategory = "Conservative"
	Moderate     RiskCategory = "Moderate"
	Balanced     RiskCategory = "Balanced"
	Growth       RiskCategory = "Growth"
	Aggressive   RiskCategory = "Aggressive"
)

// StandardCategories lists the built-in categories from lowest to highest risk
var StandardCategories = []RiskCategory{Conservative, Moderate, Balanced, Growth, Aggressive}

func (c RiskCategory) String() string {
	return string(c)
}

// FundParameters holds the yearly return and fee assumptions for one fund
type FundParameters struct {
	AverageAnnualReturn float64 `yaml:"avg_return" json:"avg_return"`     // e.g. 0.04 = 4% per year
	AnnualFlatFee       float64 `yaml:"annual_fee" json:"annual_fee"`     // $ deducted once a year
	ManagementFeeRate   float64 `yaml:"mgmt_fee" json:"mgmt_fee"`         // fraction of balance per year
	TransactionFeeRate  float64 `yaml:"buy_sell_fee" json:"buy_sell_fee"` // fraction of balance per year
}

// Fund is a named set of fund parameters
type Fund struct {
	Name           string `yaml:"name" json:"name"`
	FundParameters `yaml:",inline"`
}

// ContributionSchedule is what goes into the fund every year
type ContributionSchedule struct {
	MonthlyEmployeeContribution  float64 `json:"monthly_employee"`
	MonthlyEmployerContribution  float64 `json:"monthly_employer"`
	AnnualGovernmentContribution float64 `json:"annual_government"`
}

// AnnualContribution returns the total paid in over one year
func (cs ContributionSchedule) AnnualContribution() float64 {
	return 12*(cs.MonthlyEmployeeContribution+cs.MonthlyEmployerContribution) + cs.AnnualGovernmentContribution
}

// ProjectionInputs holds everything the user supplies for one run
type ProjectionInputs struct {
	StartingBalance          float64      `yaml:"starting_balance" json:"starting_balance"`
	AnnualIncome             float64      `yaml:"annual_income" json:"annual_income"`
	EmployeeContributionRate float64      `yaml:"employee_rate" json:"employee_rate"`
	EmployerContributionRate float64      `yaml:"employer_rate" json:"employer_rate"`
	InvestmentYears          int          `yaml:"investment_years" json:"investment_years"`
	GovernmentContribution   float64      `yaml:"government_contribution" json:"government_contribution"`
	Category                 RiskCategory `yaml:"category" json:"category"`
}

// Schedule derives the contribution schedule from income and rates
func (in ProjectionInputs) Schedule() ContributionSchedule {
	return ContributionSchedule{
		MonthlyEmployeeContribution:  in.AnnualIncome * in.EmployeeContributionRate / 12,
		MonthlyEmployerContribution:  in.AnnualIncome * in.EmployerContributionRate / 12,
		AnnualGovernmentContribution: in.GovernmentContribution,
	}
}

func (in ProjectionInputs) String() string {
	return fmt.Sprintf("%s, %d years, income %s, rates %.0f%%/%.0f%%",
		in.Category, in.InvestmentYears, FormatMoney(in.AnnualIncome),
		in.EmployeeContributionRate*100, in.EmployerContributionRate*100)
}

// ProjectionResult is one fund's balance at the end of years 1..N
type ProjectionResult struct {
	FundName string    `json:"fund"`
	Fund     Fund      `json:"parameters"`
	Balances []float64 `json:"balances"`
}

// FinalBalance returns the balance after the last year, or 0 for an empty projection
func (r ProjectionResult) FinalBalance() float64 {
	if len(r.Balances) == 0 {
		return 0
	}
	return r.Balances[len(r.Balances)-1]
}

// RankedFund is a fund name paired with its final balance
type RankedFund struct {
	FundName     string  `json:"fund"`
	FinalBalance float64 `json:"final_balance"`
}

// Recommendation is the suggested category for an investment horizon
type Recommendation struct {
	Category  RiskCategory `json:"category"`
	InCatalog bool         `json:"in_catalog"` // false when the active catalog has no such category
}

// Comparison holds every fund projection for the selected category
type Comparison struct {
	Inputs         ProjectionInputs     `json:"inputs"`
	Schedule       ContributionSchedule `json:"schedule"`
	Recommendation Recommendation       `json:"recommendation"`
	Years          []int                `json:"years"`
	Results        []ProjectionResult   `json:"results"` // catalog order
	Ranking        []RankedFund         `json:"ranking"` // descending final balance
}

// FundNames returns the fund names in table column order
func (c *Comparison) FundNames() []string {
	names := make([]string, len(c.Results))
	for i, r := range c.Results {
		names[i] = r.FundName
	}
	return names
}

// Best returns the top ranked fund, if any
func (c *Comparison) Best() (RankedFund, bool) {
	if len(c.Ranking) == 0 {
		return RankedFund{}, false
	}
	return c.Ranking[0], true
}
