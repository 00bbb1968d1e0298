package main

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{43882.76227104, "$43,882.76"},
		{0, "$0.00"},
		{-1, "-$1.00"},
		{0.005, "$0.01"},
		{1234567.891, "$1,234,567.89"},
		{999.999, "$1,000.00"},
		{math.NaN(), "n/a"},
		{math.Inf(1), "n/a"},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.expected, FormatMoney(tc.amount), "%v", tc.amount)
	}
}

func TestFormatMoneyShort(t *testing.T) {
	assert.Equal(t, "$40k", FormatMoneyShort(40000))
	assert.Equal(t, "$1.2M", FormatMoneyShort(1200000))
	assert.Equal(t, "$521", FormatMoneyShort(521))
	assert.Equal(t, "-$5k", FormatMoneyShort(-5000))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "3%", FormatPercent(0.03))
	assert.Equal(t, "0.55%", FormatPercent(0.0055))
	assert.Equal(t, "0.1%", FormatPercent(0.001))
	assert.Equal(t, "8.5%", FormatPercent(0.085))
}

func TestTitles(t *testing.T) {
	assert.Equal(t, "Projected KiwiSaver Balances - Growth Funds", TableTitle(Growth))
	assert.Equal(t, "KiwiSaver Growth Comparison (Growth Funds)", ChartTitle(Growth))
}

func sampleComparison(t *testing.T, years int) *Comparison {
	t.Helper()
	in := defaultInputs()
	in.InvestmentYears = years
	c, err := ComputeProjections(in, &DefaultCatalog)
	require.NoError(t, err)
	return c
}

func TestPrintComparison(t *testing.T) {
	c := sampleComparison(t, 5)

	var buf bytes.Buffer
	PrintComparison(&buf, c)
	out := buf.String()

	assert.Contains(t, out, "KIWISAVER FUND COMPARISON CALCULATOR")
	assert.Contains(t, out, "Projected KiwiSaver Balances - Conservative Funds")
	assert.Contains(t, out, "Recommended fund type for 5 years: Moderate")
	assert.Contains(t, out, "$175.00/month")
	assert.Contains(t, out, "Provider A Conservative")
	assert.Contains(t, out, "Provider B Conservative")
	assert.Contains(t, out, "Total contributed over 5 years: $23,605.00")

	best, ok := c.Best()
	require.True(t, ok)
	assert.Contains(t, out, "→ 1. "+best.FundName)
}

func TestPrintComparisonTable_OneRowPerYear(t *testing.T) {
	c := sampleComparison(t, 3)

	var buf bytes.Buffer
	PrintComparisonTable(&buf, c)

	rows := 0
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.Contains(line, " │ ") && !strings.HasPrefix(line, "Year") {
			rows++
		}
	}
	assert.Equal(t, 3, rows)
}

func TestPrintRecommendation_Missing(t *testing.T) {
	var buf bytes.Buffer
	PrintRecommendation(&buf, 30, Recommendation{Category: Aggressive})
	assert.Contains(t, buf.String(), "has no Aggressive funds")
}

func TestPrintRanking_NoYears(t *testing.T) {
	var buf bytes.Buffer
	PrintRanking(&buf, &Comparison{})
	assert.Contains(t, buf.String(), "(no projection years)")
}

func TestPrintCatalog(t *testing.T) {
	var buf bytes.Buffer
	PrintCatalog(&buf, &DefaultCatalog)
	out := buf.String()

	assert.Contains(t, out, "Sample KiwiSaver providers")
	for _, name := range StandardCategories {
		assert.Contains(t, out, string(name))
	}
	assert.Contains(t, out, "0.55%")
}
