package main

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNegativeYears is returned when a projection is asked for a negative horizon.
// The engine never clamps: the caller supplied an invalid configuration.
var ErrNegativeYears = errors.New("investment years cannot be negative")

// ApplyYear advances a balance by one year.
// The order is fixed: contribute, grow, flat fee, management fee, buy/sell fee.
// Fees compound differently depending on order, so changing it changes results.
func ApplyYear(balance, annualContribution float64, fund FundParameters) float64 {
	balance += annualContribution
	balance *= 1 + fund.AverageAnnualReturn
	balance -= fund.AnnualFlatFee
	balance *= 1 - fund.ManagementFeeRate
	balance *= 1 - fund.TransactionFeeRate
	return balance
}

// Project returns the end-of-year balance for years 1..years.
// Balances are not rounded and may go negative when flat fees exceed a small balance.
func Project(startingBalance float64, years int, schedule ContributionSchedule, fund FundParameters) ([]float64, error) {
	if years < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeYears, years)
	}

	annualContribution := schedule.AnnualContribution()
	balances := make([]float64, 0, years)
	balance := startingBalance
	for year := 1; year <= years; year++ {
		balance = ApplyYear(balance, annualContribution, fund)
		balances = append(balances, balance)
	}
	return balances, nil
}

// ProjectFund runs Project for a named fund
func ProjectFund(startingBalance float64, years int, schedule ContributionSchedule, fund Fund) (ProjectionResult, error) {
	balances, err := Project(startingBalance, years, schedule, fund.FundParameters)
	if err != nil {
		return ProjectionResult{}, fmt.Errorf("project %s: %w", fund.Name, err)
	}
	return ProjectionResult{
		FundName: fund.Name,
		Fund:     fund,
		Balances: balances,
	}, nil
}

// ComputeProjections projects every fund of the selected category.
// It is a pure function of its arguments: nothing is cached between calls.
func ComputeProjections(inputs ProjectionInputs, catalog *Catalog) (*Comparison, error) {
	funds, err := catalog.Funds(inputs.Category)
	if err != nil {
		return nil, err
	}

	schedule := inputs.Schedule()
	comparison := &Comparison{
		Inputs:         inputs,
		Schedule:       schedule,
		Recommendation: RecommendForCatalog(inputs.InvestmentYears, catalog),
		Results:        make([]ProjectionResult, 0, len(funds)),
	}

	for _, fund := range funds {
		result, err := ProjectFund(inputs.StartingBalance, inputs.InvestmentYears, schedule, fund)
		if err != nil {
			return nil, err
		}
		comparison.Results = append(comparison.Results, result)
	}

	comparison.Years = make([]int, inputs.InvestmentYears)
	for i := range comparison.Years {
		comparison.Years[i] = i + 1
	}
	comparison.Ranking = RankByFinalBalance(comparison.Results)

	return comparison, nil
}

// RankByFinalBalance orders funds by descending final balance.
// Ties keep their input order.
func RankByFinalBalance(results []ProjectionResult) []RankedFund {
	ranking := make([]RankedFund, len(results))
	for i, r := range results {
		ranking[i] = RankedFund{FundName: r.FundName, FinalBalance: r.FinalBalance()}
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].FinalBalance > ranking[j].FinalBalance
	})
	return ranking
}

// BalanceAt returns a fund's balance at the end of the given year (1-based)
func (r ProjectionResult) BalanceAt(year int) (float64, bool) {
	if year < 1 || year > len(r.Balances) {
		return 0, false
	}
	return r.Balances[year-1], true
}

// TotalContributed returns the amount paid in over the horizon, excluding the starting balance
func (c *Comparison) TotalContributed() float64 {
	return c.Schedule.AnnualContribution() * float64(c.Inputs.InvestmentYears)
}
