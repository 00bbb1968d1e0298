package main

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

//go:embed default-config.yaml
var defaultConfigYAML string

// OutputConfig controls where and how reports are written
type OutputConfig struct {
	Directory      string `yaml:"directory" json:"directory"`             // Reports folder; a dated sub-folder is created per run
	CurrencySymbol string `yaml:"currency_symbol" json:"currency_symbol"` // Prefix for formatted amounts (default "$")
	ChartWidth     int    `yaml:"chart_width" json:"chart_width"`         // PNG chart width in pixels
	ChartHeight    int    `yaml:"chart_height" json:"chart_height"`       // PNG chart height in pixels
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr"` // e.g. "localhost:0" for an automatic port
}

// Config holds the complete configuration
type Config struct {
	Inputs      ProjectionInputs `yaml:"inputs" json:"inputs"`
	CatalogFile string           `yaml:"catalog_file,omitempty" json:"catalog_file,omitempty"` // Empty = built-in sample catalog
	Output      OutputConfig     `yaml:"output" json:"output"`
	Server      ServerConfig     `yaml:"server" json:"server"`
}

// LoadConfig loads configuration from a YAML file.
// Fields missing from the file keep the values from default-config.yaml.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config, err := LoadDefaultConfig()
	if err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if err := yaml.Unmarshal([]byte(preprocessPercentages(string(data))), config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	log.WithFields(log.Fields{"file": filename, "category": config.Inputs.Category}).Debug("Loaded configuration")
	return config, nil
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	header := []byte(`# KiwiSaver Fund Comparison Configuration
# Generated interactively - feel free to edit manually
#
# ═══════════════════════════════════════════════════════════════════════════════
# INPUTS
# ═══════════════════════════════════════════════════════════════════════════════
#   inputs.starting_balance:        Current KiwiSaver balance ($)
#   inputs.annual_income:           Gross annual income ($, at least 1000)
#   inputs.employee_rate:           Your contribution rate (3% to 10%)
#   inputs.employer_rate:           Employer contribution rate (3% to 10%)
#   inputs.investment_years:        Investment period (1 to 40 years)
#   inputs.government_contribution: Annual government top-up ($)
#   inputs.category:                Fund type to compare (e.g. Growth)
#
# ═══════════════════════════════════════════════════════════════════════════════
# VALUE FORMATS
# ═══════════════════════════════════════════════════════════════════════════════
#   Percentages: 0.03 = 3% (or write 3%)
#   Money: values are in NZD (e.g., 70000 = $70k)
#
# ═══════════════════════════════════════════════════════════════════════════════
# RUN COMMANDS
# ═══════════════════════════════════════════════════════════════════════════════
#   ./goKiwiSaverForecast                  Interactive console
#   ./goKiwiSaverForecast -html            HTML report with chart
#   ./goKiwiSaverForecast -pdf -png        PDF report and PNG chart
#   ./goKiwiSaverForecast -web             Web interface in your browser
#   ./goKiwiSaverForecast -help            Show all options

`)
	content := append(header, data...)
	return os.WriteFile(filename, content, 0644)
}

// LoadDefaultConfig loads the default configuration from embedded default-config.yaml
// It handles percentage format (e.g., "3%" -> 0.03)
func LoadDefaultConfig() (*Config, error) {
	content := preprocessPercentages(defaultConfigYAML)

	var config Config
	if err := yaml.Unmarshal([]byte(content), &config); err != nil {
		return nil, err
	}
	return &config, nil
}

// preprocessPercentages converts percentage values like "5%" to decimal "0.05"
func preprocessPercentages(content string) string {
	// Match patterns like: key: 5% or key: 0.55%
	re := regexp.MustCompile(`(:\s*)(\d+\.?\d*)%`)
	return re.ReplaceAllStringFunc(content, func(match string) string {
		parts := re.FindStringSubmatch(match)
		if len(parts) >= 3 {
			num, err := strconv.ParseFloat(parts[2], 64)
			if err == nil {
				return parts[1] + strconv.FormatFloat(num/100.0, 'f', -1, 64)
			}
		}
		return match
	})
}

// ResolveCatalog returns the catalog to use: the override path if given,
// then the config's catalog_file, then the built-in sample catalog
func ResolveCatalog(config *Config, override string) (*Catalog, error) {
	path := override
	if path == "" && config != nil {
		path = config.CatalogFile
	}
	if path == "" {
		catalog := DefaultCatalog
		return &catalog, nil
	}

	catalog, err := LoadCatalog(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	log.WithFields(log.Fields{"file": path, "categories": len(catalog.Categories), "funds": catalog.FundCount()}).Info("Loaded fund catalog")
	return catalog, nil
}

// Currency returns the configured currency symbol
func (c *Config) Currency() string {
	if c == nil || c.Output.CurrencySymbol == "" {
		return "$"
	}
	return c.Output.CurrencySymbol
}

// GetDefaultValue returns a default value from the default config for display purposes
func GetDefaultValue(fieldPath string, defaultConfig *Config) string {
	if defaultConfig == nil {
		return ""
	}

	in := defaultConfig.Inputs
	switch fieldPath {
	case "inputs.starting_balance":
		return formatDefaultMoney(in.StartingBalance)
	case "inputs.annual_income":
		return formatDefaultMoney(in.AnnualIncome)
	case "inputs.employee_rate":
		return formatDefaultPercent(in.EmployeeContributionRate)
	case "inputs.employer_rate":
		return formatDefaultPercent(in.EmployerContributionRate)
	case "inputs.investment_years":
		return strconv.Itoa(in.InvestmentYears)
	case "inputs.government_contribution":
		return formatDefaultMoney(in.GovernmentContribution)
	case "inputs.category":
		return string(in.Category)
	}
	return ""
}

func formatDefaultMoney(amount float64) string {
	if amount >= 1000000 {
		return strings.TrimRight(strings.TrimRight(strconv.FormatFloat(amount/1000000, 'f', 1, 64), "0"), ".") + "m"
	} else if amount >= 1000 {
		return strings.TrimRight(strings.TrimRight(strconv.FormatFloat(amount/1000, 'f', 1, 64), "0"), ".") + "k"
	}
	return strconv.FormatFloat(amount, 'f', 0, 64)
}

func formatDefaultPercent(rate float64) string {
	return strconv.FormatFloat(rate*100, 'f', 0, 64) + "%"
}
