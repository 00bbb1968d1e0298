package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// InteractiveConfigBuilder handles interactive configuration creation
type InteractiveConfigBuilder struct {
	reader        *bufio.Reader
	out           io.Writer
	config        *Config
	defaultConfig *Config
	catalog       *Catalog
}

// NewInteractiveConfigBuilder creates a new builder reading answers from in
func NewInteractiveConfigBuilder(in io.Reader, out io.Writer, catalog *Catalog) *InteractiveConfigBuilder {
	builder := &InteractiveConfigBuilder{
		reader:  bufio.NewReader(in),
		out:     out,
		config:  &Config{},
		catalog: catalog,
	}

	// Try to load defaults from default-config.yaml
	defaultConfig, err := LoadDefaultConfig()
	if err == nil {
		builder.defaultConfig = defaultConfig
		*builder.config = *defaultConfig
	}

	return builder
}

// getDefault returns a default value from the default config, or the fallback
func (b *InteractiveConfigBuilder) getDefault(fieldPath string, fallback string) string {
	if b.defaultConfig != nil {
		val := GetDefaultValue(fieldPath, b.defaultConfig)
		if val != "" {
			return val
		}
	}
	return fallback
}

// getDefaultInt gets an int default from default config
func (b *InteractiveConfigBuilder) getDefaultInt(fieldPath string, fallback int) int {
	if i, err := strconv.Atoi(b.getDefault(fieldPath, "")); err == nil {
		return i
	}
	return fallback
}

// getDefaultMoney gets a money default (accepts "70k" style) from default config
func (b *InteractiveConfigBuilder) getDefaultMoney(fieldPath string, fallback float64) float64 {
	return parseMoney(b.getDefault(fieldPath, ""), fallback)
}

// getDefaultPercent gets a percentage default from default config
func (b *InteractiveConfigBuilder) getDefaultPercent(fieldPath string, fallback float64) float64 {
	if v, err := parsePercentOrDecimal(b.getDefault(fieldPath, "")); err == nil {
		return v
	}
	return fallback
}

// parseMoney parses money strings like "70k", "1m", "$70,000"
func parseMoney(input string, fallback float64) float64 {
	input = strings.TrimSpace(strings.ToLower(input))
	input = strings.TrimPrefix(input, "$")
	input = strings.ReplaceAll(input, ",", "")
	multiplier := 1.0
	if strings.HasSuffix(input, "k") {
		multiplier = 1000
		input = strings.TrimSuffix(input, "k")
	} else if strings.HasSuffix(input, "m") {
		multiplier = 1000000
		input = strings.TrimSuffix(input, "m")
	}
	val, err := strconv.ParseFloat(input, 64)
	if err != nil || !isFinite(val*multiplier) {
		return fallback
	}
	return val * multiplier
}

// parsePercentOrDecimal converts "5%" or "0.05" to 0.05.
// Bare numbers of 1 or more are read as percentages, so "5" is 5%.
func parsePercentOrDecimal(input string) (float64, error) {
	input = strings.TrimSpace(input)
	if strings.HasSuffix(input, "%") {
		num, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(input, "%")), 64)
		if err != nil {
			return 0, err
		}
		if !isFinite(num) {
			return 0, fmt.Errorf("%q is not a finite percentage", input)
		}
		return num / 100.0, nil
	}
	num, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return 0, err
	}
	if !isFinite(num) {
		return 0, fmt.Errorf("%q is not a finite percentage", input)
	}
	if num >= 1 {
		return num / 100.0, nil
	}
	return num, nil
}

// readLine returns the next trimmed line; ok is false once input is exhausted
func (b *InteractiveConfigBuilder) readLine() (string, bool) {
	input, err := b.reader.ReadString('\n')
	if err != nil && input == "" {
		return "", false
	}
	return strings.TrimSpace(input), true
}

// promptString asks for a string with a default value
func (b *InteractiveConfigBuilder) promptString(prompt, defaultVal string) string {
	if defaultVal != "" {
		fmt.Fprintf(b.out, "%s [%s]: ", prompt, defaultVal)
	} else {
		fmt.Fprintf(b.out, "%s: ", prompt)
	}
	input, ok := b.readLine()
	if !ok || input == "" {
		return defaultVal
	}
	return input
}

// promptYears asks for the investment period (1-40)
func (b *InteractiveConfigBuilder) promptYears(prompt string, defaultVal int) int {
	for {
		fmt.Fprintf(b.out, "%s [%d]: ", prompt, defaultVal)
		input, ok := b.readLine()
		if !ok || input == "" {
			return defaultVal
		}
		val, err := strconv.Atoi(input)
		if err != nil {
			fmt.Fprintf(b.out, "  ✗ Enter a whole number of years\n")
			continue
		}
		if err := validateYears(val); err != nil {
			fmt.Fprintf(b.out, "  ✗ %s\n", err.Error())
			continue
		}
		return val
	}
}

// promptRate asks for a contribution rate (accepts "4%", "4" or "0.04")
func (b *InteractiveConfigBuilder) promptRate(prompt, field string, defaultVal float64) float64 {
	for {
		fmt.Fprintf(b.out, "%s [%s]: ", prompt, FormatPercent(defaultVal))
		input, ok := b.readLine()
		if !ok || input == "" {
			return defaultVal
		}
		val, err := parsePercentOrDecimal(input)
		if err != nil {
			fmt.Fprintf(b.out, "  ✗ Invalid percentage. Enter as '4%%' or '0.04'\n")
			continue
		}
		if err := validateContributionRate(val, field); err != nil {
			fmt.Fprintf(b.out, "  ✗ %s\n", err.Error())
			continue
		}
		return val
	}
}

// promptMoney asks for a money amount (accepts "70k" or "70000").
// validate may be nil.
func (b *InteractiveConfigBuilder) promptMoney(prompt string, defaultVal float64, validate func(float64) error) float64 {
	for {
		fmt.Fprintf(b.out, "%s [%s]: ", prompt, FormatMoneyShort(defaultVal))
		input, ok := b.readLine()
		if !ok || input == "" {
			return defaultVal
		}
		amount := parseMoney(input, -1)
		if amount < 0 {
			fmt.Fprintf(b.out, "  ✗ Invalid amount. Enter as '70k', '1.5m', or '70000'\n")
			continue
		}
		if validate != nil {
			if err := validate(amount); err != nil {
				fmt.Fprintf(b.out, "  ✗ %s\n", err.Error())
				continue
			}
		}
		return amount
	}
}

// promptCategory shows a numbered menu of the catalog's categories
func (b *InteractiveConfigBuilder) promptCategory(years int) RiskCategory {
	names := b.catalog.CategoryNames()
	rec := RecommendForCatalog(years, b.catalog)
	def := DefaultCategory(years, b.catalog)

	fmt.Fprintf(b.out, "\n  Recommended fund type for %d years: %s\n", years, rec.Category)
	if !rec.InCatalog {
		fmt.Fprintf(b.out, "  ⚠️  The catalog has no %s funds\n", rec.Category)
	}
	defIdx := 1
	for i, name := range names {
		marker := " "
		if name == def {
			marker = "*"
			defIdx = i + 1
		}
		fmt.Fprintf(b.out, "  %s %d. %s\n", marker, i+1, name)
	}

	for {
		fmt.Fprintf(b.out, "  Fund type [%d]: ", defIdx)
		input, ok := b.readLine()
		if !ok || input == "" {
			return def
		}
		if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(names) {
			return names[n-1]
		}
		for _, name := range names {
			if strings.EqualFold(string(name), input) {
				return name
			}
		}
		fmt.Fprintf(b.out, "  ✗ Choose 1-%d or a fund type name\n", len(names))
	}
}

// BuildConfig asks for every projection input and returns the resulting config
func (b *InteractiveConfigBuilder) BuildConfig() *Config {
	fmt.Fprintln(b.out)
	fmt.Fprintln(b.out, "╔══════════════════════════════════════════════════════════════════════════════╗")
	fmt.Fprintln(b.out, "║                  KIWISAVER FUND COMPARISON SETUP                             ║")
	fmt.Fprintln(b.out, "╚══════════════════════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(b.out)
	fmt.Fprintln(b.out, "Press Enter to accept defaults.")
	fmt.Fprintln(b.out, "For percentages, enter '4%' or '0.04'. For money, enter '70k' or '70000'.")
	fmt.Fprintln(b.out)

	in := &b.config.Inputs
	in.StartingBalance = b.promptMoney("  Current KiwiSaver balance", b.getDefaultMoney("inputs.starting_balance", 0), validateBalance)
	in.AnnualIncome = b.promptMoney("  Annual income (gross)", b.getDefaultMoney("inputs.annual_income", 70000), validateIncome)
	in.EmployeeContributionRate = b.promptRate("  Your contribution rate (3-10%)", "employee_rate", b.getDefaultPercent("inputs.employee_rate", MinContributionRate))
	in.EmployerContributionRate = b.promptRate("  Employer contribution rate (3-10%)", "employer_rate", b.getDefaultPercent("inputs.employer_rate", MinContributionRate))
	in.GovernmentContribution = b.promptMoney("  Government contribution per year", b.getDefaultMoney("inputs.government_contribution", DefaultGovContribution), validateGovContribution)
	in.InvestmentYears = b.promptYears("  Investment period (years)", b.getDefaultInt("inputs.investment_years", 20))
	in.Category = b.promptCategory(in.InvestmentYears)

	return b.config
}

// SaveConfig saves the configuration to a YAML file
func (b *InteractiveConfigBuilder) SaveConfig(filename string) error {
	return SaveConfig(b.config, filename)
}
