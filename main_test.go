package main

import (
	"bytes"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyOverrides(t *testing.T) {
	in := defaultInputs()
	err := applyOverrides(&in, map[string]string{
		"category":      "Growth",
		"years":         " 8 ",
		"income":        "85k",
		"balance":       "$12,000",
		"gov":           "0",
		"employee-rate": "6%",
		"employer-rate": "0.04",
	})
	require.NoError(t, err)

	assert.Equal(t, Growth, in.Category)
	assert.Equal(t, 8, in.InvestmentYears)
	assert.Equal(t, 85000.0, in.AnnualIncome)
	assert.Equal(t, 12000.0, in.StartingBalance)
	assert.Equal(t, 0.0, in.GovernmentContribution)
	assert.InDelta(t, 0.06, in.EmployeeContributionRate, 1e-12)
	assert.InDelta(t, 0.04, in.EmployerContributionRate, 1e-12)
}

func TestApplyOverrides_Errors(t *testing.T) {
	tests := map[string]string{
		"years":         "8y",
		"income":        "lots",
		"employee-rate": "high",
		"balance":       "inf",
		"gov":           "NaN",
		"employer-rate": "nan",
	}
	for name, raw := range tests {
		in := defaultInputs()
		err := applyOverrides(&in, map[string]string{name: raw})
		assert.Error(t, err, name)
		assert.Contains(t, err.Error(), "-"+name)
	}
}

func TestMatchCategory(t *testing.T) {
	assert.Equal(t, Growth, matchCategory(&DefaultCatalog, "growth"))
	assert.Equal(t, Aggressive, matchCategory(&DefaultCatalog, "AGGRESSIVE"))
	assert.Equal(t, RiskCategory("Unknown"), matchCategory(&DefaultCatalog, "Unknown"))
}

func TestLoadConfigOrDefault_Missing(t *testing.T) {
	config, missing, err := loadConfigOrDefault(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.True(t, missing)
	assert.Equal(t, 20, config.Inputs.InvestmentYears)
}

func TestLoadConfigOrDefault_Broken(t *testing.T) {
	path := writeFile(t, "config.yaml", "inputs: [1, 2]\n")
	_, _, err := loadConfigOrDefault(path)
	assert.Error(t, err)
}

func TestWriteReports(t *testing.T) {
	config, err := LoadDefaultConfig()
	require.NoError(t, err)
	config.Output.ChartWidth, config.Output.ChartHeight = 400, 200

	dir := filepath.Join(t.TempDir(), "out")
	opts := runOptions{html: true, pdf: true, png: true, csv: true}
	written, err := writeReports(sampleComparison(t, 4), config, dir, opts)
	require.NoError(t, err)

	require.Len(t, written, 4)
	assert.Equal(t, ".html", filepath.Ext(written[0]))
	for _, path := range written {
		assert.FileExists(t, path)
		assert.Contains(t, filepath.Base(path), "kiwisaver_conservative_4y")
	}
}

func TestWriteReports_OnlyRequested(t *testing.T) {
	config, err := LoadDefaultConfig()
	require.NoError(t, err)

	written, err := writeReports(sampleComparison(t, 2), config, t.TempDir(), runOptions{csv: true})
	require.NoError(t, err)
	require.Len(t, written, 1)
	assert.Equal(t, ".csv", filepath.Ext(written[0]))
}

func TestRunOptions_WantsReports(t *testing.T) {
	assert.False(t, runOptions{list: true}.wantsReports())
	assert.True(t, runOptions{png: true}.wantsReports())
}

func TestSetupLogging(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, setupLogging("debug", &buf))
	assert.Error(t, setupLogging("loud", &buf))
	require.NoError(t, setupLogging("", &buf))
}

func TestNonFiniteOverridesNeverReachTheChart(t *testing.T) {
	for _, raw := range []string{"nan", "inf", "+Inf", "-inf", "1e308k"} {
		in := defaultInputs()
		err := applyOverrides(&in, map[string]string{"income": raw})
		if err == nil {
			// Accepted by the parser: validation must still refuse it
			assert.Error(t, ValidateInputs(in, &DefaultCatalog), raw)
		}
	}
}

func TestResolveCategory(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()
	log.SetLevel(log.InfoLevel)
	defer log.SetLevel(log.WarnLevel)

	t.Run("explicit category wins", func(t *testing.T) {
		in := defaultInputs()
		in.Category = "growth"
		resolveCategory(&in, map[string]string{"category": "growth", "years": "2"}, &DefaultCatalog)
		assert.Equal(t, Growth, in.Category)
	})

	t.Run("config category kept without overrides", func(t *testing.T) {
		in := defaultInputs()
		in.Category = Balanced
		resolveCategory(&in, map[string]string{}, &DefaultCatalog)
		assert.Equal(t, Balanced, in.Category)
	})

	t.Run("new horizon replaces config category and says so", func(t *testing.T) {
		hook.Reset()
		in := defaultInputs()
		in.InvestmentYears = 8
		resolveCategory(&in, map[string]string{"years": "8"}, &DefaultCatalog)

		assert.Equal(t, Growth, in.Category)
		entry := hook.LastEntry()
		require.NotNil(t, entry)
		assert.Equal(t, log.InfoLevel, entry.Level)
		assert.Equal(t, Conservative, entry.Data["configured"])
		assert.Contains(t, entry.Message, "-category")
	})

	t.Run("no message when the category is unchanged", func(t *testing.T) {
		hook.Reset()
		in := defaultInputs()
		in.InvestmentYears = 2
		resolveCategory(&in, map[string]string{"years": "2"}, &DefaultCatalog)

		assert.Equal(t, Conservative, in.Category)
		assert.Empty(t, hook.AllEntries())
	})

	t.Run("empty category gets the recommendation", func(t *testing.T) {
		in := defaultInputs()
		in.Category = ""
		in.InvestmentYears = 6
		resolveCategory(&in, nil, &DefaultCatalog)
		assert.Equal(t, Balanced, in.Category)
	})
}
