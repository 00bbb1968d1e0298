package main

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var (
	moneyPrinter   = message.NewPrinter(language.English)
	currencySymbol = "$"
)

// SetCurrencySymbol changes the prefix used by FormatMoney. Call once at startup.
func SetCurrencySymbol(symbol string) {
	if symbol != "" {
		currencySymbol = symbol
	}
}

// roundCents rounds half away from zero to two decimal places
func roundCents(amount float64) float64 {
	return decimal.NewFromFloat(amount).Round(2).InexactFloat64()
}

// FormatMoney formats an amount as currency with thousands separators and cents,
// e.g. 43882.76227 -> "$43,882.76". Rounding is for display only.
func FormatMoney(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "n/a"
	}
	rounded := roundCents(amount)
	sign := ""
	if rounded < 0 {
		sign = "-"
		rounded = -rounded
	}
	return sign + currencySymbol + moneyPrinter.Sprint(number.Decimal(rounded, number.Scale(2)))
}

// FormatMoneyShort abbreviates large amounts for chart axes, e.g. "$40k", "$1.2M"
func FormatMoneyShort(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	switch {
	case amount >= 1000000:
		return fmt.Sprintf("%s%s%.1fM", sign, currencySymbol, amount/1000000)
	case amount >= 1000:
		return fmt.Sprintf("%s%s%.0fk", sign, currencySymbol, amount/1000)
	}
	return fmt.Sprintf("%s%s%.0f", sign, currencySymbol, amount)
}

// FormatPercent formats a rate with up to two decimals, e.g. 0.0055 -> "0.55%"
func FormatPercent(rate float64) string {
	s := decimal.NewFromFloat(rate * 100).Round(2).String()
	return s + "%"
}

// TableTitle is the heading used for the year-by-year balance table
func TableTitle(category RiskCategory) string {
	return fmt.Sprintf("Projected KiwiSaver Balances - %s Funds", category)
}

// ChartTitle is the heading used for the growth chart
func ChartTitle(category RiskCategory) string {
	return fmt.Sprintf("KiwiSaver Growth Comparison (%s Funds)", category)
}

// PrintHeader prints the calculator banner and the inputs used
func PrintHeader(w io.Writer, c *Comparison) {
	fmt.Fprintln(w, "╔══════════════════════════════════════════════════════════════════════════════╗")
	fmt.Fprintln(w, "║                  KIWISAVER FUND COMPARISON CALCULATOR                        ║")
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Inputs:")
	fmt.Fprintln(w, "───────")

	in := c.Inputs
	fmt.Fprintf(w, "  Starting Balance:    %s\n", FormatMoney(in.StartingBalance))
	fmt.Fprintf(w, "  Annual Income:       %s\n", FormatMoney(in.AnnualIncome))
	fmt.Fprintf(w, "  Your Contribution:   %s (%s/month)\n",
		FormatPercent(in.EmployeeContributionRate), FormatMoney(c.Schedule.MonthlyEmployeeContribution))
	fmt.Fprintf(w, "  Employer:            %s (%s/month)\n",
		FormatPercent(in.EmployerContributionRate), FormatMoney(c.Schedule.MonthlyEmployerContribution))
	fmt.Fprintf(w, "  Government:          %s/year\n", FormatMoney(in.GovernmentContribution))
	fmt.Fprintf(w, "  Total per Year:      %s\n", FormatMoney(c.Schedule.AnnualContribution()))
	fmt.Fprintf(w, "  Investment Period:   %d years\n", in.InvestmentYears)
	fmt.Fprintf(w, "  Fund Type:           %s\n", in.Category)
	fmt.Fprintln(w)
}

// PrintRecommendation prints the suggested fund type for the horizon
func PrintRecommendation(w io.Writer, years int, rec Recommendation) {
	fmt.Fprintf(w, "  Recommended fund type for %d years: %s\n", years, rec.Category)
	if !rec.InCatalog {
		fmt.Fprintf(w, "  ⚠️  The current catalog has no %s funds\n", rec.Category)
	}
	fmt.Fprintln(w)
}

// PrintComparisonTable prints balances with one row per year and one column per fund
func PrintComparisonTable(w io.Writer, c *Comparison) {
	names := c.FundNames()
	widths := make([]int, len(names))
	for i, name := range names {
		widths[i] = max(len(name), 14)
	}

	fmt.Fprintln(w, TableTitle(c.Inputs.Category))
	fmt.Fprintln(w)

	totalWidth := 6
	fmt.Fprintf(w, "%-6s", "Year")
	for i, name := range names {
		fmt.Fprintf(w, " │ %*s", widths[i], name)
		totalWidth += widths[i] + 3
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("─", totalWidth))

	for yi, year := range c.Years {
		fmt.Fprintf(w, "%-6d", year)
		for i, r := range c.Results {
			fmt.Fprintf(w, " │ %*s", widths[i], FormatMoney(r.Balances[yi]))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, strings.Repeat("─", totalWidth))
	fmt.Fprintln(w)
}

// PrintRanking prints funds from highest to lowest final balance
func PrintRanking(w io.Writer, c *Comparison) {
	fmt.Fprintln(w, "Final Balance Ranking:")
	fmt.Fprintln(w, "──────────────────────")
	if len(c.Ranking) == 0 {
		fmt.Fprintln(w, "  (no projection years)")
		fmt.Fprintln(w)
		return
	}

	best := c.Ranking[0].FinalBalance
	for i, r := range c.Ranking {
		marker := "  "
		if i == 0 {
			marker = "→ "
		}
		line := fmt.Sprintf("  %s%d. %-28s %14s", marker, i+1, r.FundName, FormatMoney(r.FinalBalance))
		if i > 0 {
			line += fmt.Sprintf("  (%s less)", FormatMoney(best-r.FinalBalance))
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Total contributed over %d years: %s\n", c.Inputs.InvestmentYears, FormatMoney(c.TotalContributed()))
	fmt.Fprintln(w)
}

// PrintComparison prints the full console report for one run
func PrintComparison(w io.Writer, c *Comparison) {
	PrintHeader(w, c)
	PrintRecommendation(w, c.Inputs.InvestmentYears, c.Recommendation)
	PrintComparisonTable(w, c)
	PrintRanking(w, c)
}

// PrintCatalog lists every category and its fund parameters
func PrintCatalog(w io.Writer, catalog *Catalog) {
	if catalog.Name != "" {
		fmt.Fprintf(w, "%s\n", catalog.Name)
		fmt.Fprintln(w, strings.Repeat("═", len([]rune(catalog.Name))))
	}
	for _, cat := range catalog.Categories {
		fmt.Fprintf(w, "\n%s\n", cat.Name)
		fmt.Fprintf(w, "  %-28s %8s %10s %8s %10s\n", "Fund", "Return", "Flat Fee", "Mgmt", "Buy/Sell")
		fmt.Fprintln(w, "  "+strings.Repeat("─", 68))
		for _, f := range cat.Funds {
			fmt.Fprintf(w, "  %-28s %8s %10s %8s %10s\n",
				f.Name,
				FormatPercent(f.AverageAnnualReturn),
				FormatMoney(f.AnnualFlatFee),
				FormatPercent(f.ManagementFeeRate),
				FormatPercent(f.TransactionFeeRate))
		}
	}
	fmt.Fprintln(w)
}
