package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// envOr returns the environment variable or the fallback when unset
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// runOptions collects the command line choices for console mode
type runOptions struct {
	configFile  string
	catalogFile string
	outDir      string
	html        bool
	pdf         bool
	png         bool
	csv         bool
	list        bool
	overrides   map[string]string // flag name -> raw value, only for flags the user set
}

func (o runOptions) wantsReports() bool {
	return o.html || o.pdf || o.png || o.csv
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	// Custom usage message
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `KiwiSaver Fund Comparison Calculator

Projects how a KiwiSaver balance grows in each fund of a chosen type and ranks
the funds by final balance. Each year the contributions are added, the fund's
average return is applied, and then the flat fee, management fee and buy/sell
fee are deducted, in that order.

A fund type is recommended from the investment period:
  up to 3 years -> Conservative     4-5 years  -> Moderate
  6 years       -> Balanced         7-10 years -> Growth
  over 10 years -> Aggressive

Usage:
  %s [options]

Options:
`, os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  %s                                 GUI window (embedded browser)
  %s -console                        Interactive console prompts
  %s -years 8 -income 85k            Console table for 8 years at $85,000
  %s -category Growth -html -pdf     Reports for the Growth funds
  %s -png -out charts                Save only the chart image
  %s -list                           Show the fund catalog
  %s -web -addr :8080                Web server on a specific port

Configuration:
  config.yaml holds the inputs; missing values come from built-in defaults.
  A custom fund catalog can be given with -catalog or catalog_file in config.yaml.

Environment (also read from .env):
  KIWISAVER_CONFIG   default for -config
  KIWISAVER_CATALOG  default for -catalog
  KIWISAVER_ADDR     default for -addr
  LOG_LEVEL          default for -log-level (debug, info, warn, error)
`, os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0], os.Args[0])
	}

	// Command line flags
	configFile := flag.String("config", envOr("KIWISAVER_CONFIG", "config.yaml"), "Path to YAML configuration file")
	catalogFile := flag.String("catalog", envOr("KIWISAVER_CATALOG", ""), "Path to YAML fund catalog (default: built-in sample funds)")
	flag.String("category", "", "Fund type to compare (default: recommended for the investment period)")
	flag.String("years", "", "Investment period in years (1-40)")
	flag.String("income", "", "Annual income, e.g. 70000 or 70k")
	flag.String("balance", "", "Starting KiwiSaver balance, e.g. 15k")
	flag.String("employee-rate", "", "Your contribution rate, e.g. 4% (3-10%)")
	flag.String("employer-rate", "", "Employer contribution rate, e.g. 3% (3-10%)")
	flag.String("gov", "", "Annual government contribution (default 521)")
	generateHTML := flag.Bool("html", false, "Generate an HTML report with chart")
	generatePDF := flag.Bool("pdf", false, "Generate a PDF report")
	generatePNG := flag.Bool("png", false, "Save the growth chart as PNG")
	generateCSV := flag.Bool("csv", false, "Save the yearly balances as CSV")
	outDir := flag.String("out", "", "Output folder for reports (default: output.directory with a dated sub-folder)")
	listCatalog := flag.Bool("list", false, "Print the fund catalog and exit")
	consoleMode := flag.Bool("console", false, "Use console interface instead of GUI (default is GUI)")
	webMode := flag.Bool("web", false, "Start web server mode (opens external browser)")
	uiMode := flag.Bool("ui", false, "Start embedded browser mode (webview window)")
	webAddr := flag.String("addr", envOr("KIWISAVER_ADDR", ""), "Web server address (default from config, use :0 for auto port)")
	logLevel := flag.String("log-level", envOr("LOG_LEVEL", "warn"), "Log level: debug, info, warn, error")
	flag.Parse()

	if err := setupLogging(*logLevel, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	overrides := make(map[string]string)
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "category", "years", "income", "balance", "employee-rate", "employer-rate", "gov":
			overrides[f.Name] = f.Value.String()
		}
	})

	opts := runOptions{
		configFile:  *configFile,
		catalogFile: *catalogFile,
		outDir:      *outDir,
		html:        *generateHTML,
		pdf:         *generatePDF,
		png:         *generatePNG,
		csv:         *generateCSV,
		list:        *listCatalog,
		overrides:   overrides,
	}

	// Embedded browser mode
	if *uiMode {
		if err := runEmbeddedUI(*configFile, *catalogFile); err != nil {
			fmt.Fprintf(os.Stderr, "Embedded UI error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Web server mode (external browser)
	if *webMode {
		if err := runWebMode(*configFile, *catalogFile, *webAddr); err != nil {
			fmt.Fprintf(os.Stderr, "Web server error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Any output or input flag means console mode (for automation/scripting)
	useConsole := *consoleMode || opts.list || opts.wantsReports() || len(overrides) > 0

	if useConsole {
		if err := runConsoleMode(opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Default: GUI mode
	if err := runGUI(*configFile, *catalogFile); err != nil {
		fmt.Fprintf(os.Stderr, "GUI error: %v\n", err)
		fmt.Println("Falling back to console mode...")
		if err := runConsoleMode(opts); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

// loadConfigOrDefault loads the config file, falling back to defaults when it does not exist.
// missing reports whether the file was absent.
func loadConfigOrDefault(configFile string) (config *Config, missing bool, err error) {
	config, err = LoadConfig(configFile)
	if err == nil {
		return config, false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, false, fmt.Errorf("error loading config: %w", err)
	}
	config, err = LoadDefaultConfig()
	if err != nil {
		return nil, true, fmt.Errorf("error loading default config: %w", err)
	}
	return config, true, nil
}

// runWebMode serves the web UI until interrupted
func runWebMode(configFile, catalogFile, addr string) error {
	config, _, err := loadConfigOrDefault(configFile)
	if err != nil {
		return err
	}
	catalog, err := ResolveCatalog(config, catalogFile)
	if err != nil {
		return err
	}
	SetCurrencySymbol(config.Currency())

	if addr == "" {
		addr = config.Server.Addr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return NewWebServer(config, catalog, addr).Start(ctx, true)
}

// applyOverrides copies command line input values onto the config inputs
func applyOverrides(in *ProjectionInputs, overrides map[string]string) error {
	for name, raw := range overrides {
		switch name {
		case "category":
			in.Category = RiskCategory(raw)
		case "years":
			years, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil {
				return fmt.Errorf("-years: %q is not a whole number", raw)
			}
			in.InvestmentYears = years
		case "income", "balance", "gov":
			amount := parseMoney(raw, -1)
			if amount < 0 {
				return fmt.Errorf("-%s: %q is not an amount", name, raw)
			}
			switch name {
			case "income":
				in.AnnualIncome = amount
			case "balance":
				in.StartingBalance = amount
			default:
				in.GovernmentContribution = amount
			}
		case "employee-rate", "employer-rate":
			rate, err := parsePercentOrDecimal(raw)
			if err != nil {
				return fmt.Errorf("-%s: %q is not a percentage", name, raw)
			}
			if name == "employee-rate" {
				in.EmployeeContributionRate = rate
			} else {
				in.EmployerContributionRate = rate
			}
		}
	}
	return nil
}

// matchCategory resolves a user-typed category name case-insensitively
func matchCategory(catalog *Catalog, name RiskCategory) RiskCategory {
	for _, c := range catalog.CategoryNames() {
		if strings.EqualFold(string(c), string(name)) {
			return c
		}
	}
	return name
}

// resolveCategory settles the fund type after command line overrides.
// A new horizon without an explicit category follows the recommendation.
func resolveCategory(in *ProjectionInputs, overrides map[string]string, catalog *Catalog) {
	if _, set := overrides["category"]; set {
		in.Category = matchCategory(catalog, in.Category)
		return
	}
	_, yearsSet := overrides["years"]
	if !yearsSet && in.Category != "" {
		return
	}

	previous := in.Category
	in.Category = DefaultCategory(in.InvestmentYears, catalog)
	if previous != "" && previous != in.Category {
		log.WithFields(log.Fields{
			"configured": previous,
			"category":   in.Category,
			"years":      in.InvestmentYears,
		}).Infof("Using %s funds for %d years instead of the configured %s (pass -category to keep it)",
			in.Category, in.InvestmentYears, previous)
	}
}

// runConsoleMode runs the application in console/terminal mode
func runConsoleMode(opts runOptions) error {
	config, configMissing, err := loadConfigOrDefault(opts.configFile)
	if err != nil {
		return err
	}

	catalog, err := ResolveCatalog(config, opts.catalogFile)
	if err != nil {
		return err
	}
	SetCurrencySymbol(config.Currency())

	if opts.list {
		PrintCatalog(os.Stdout, catalog)
		return nil
	}

	// No config file and nothing given on the command line: ask
	if configMissing && len(opts.overrides) == 0 {
		builder := NewInteractiveConfigBuilder(os.Stdin, os.Stdout, catalog)
		config = builder.BuildConfig()
		if err := builder.SaveConfig(opts.configFile); err != nil {
			return fmt.Errorf("error saving config: %w", err)
		}
		fmt.Printf("\nConfiguration saved to %s\n", opts.configFile)
		fmt.Println("You can edit this file to adjust settings for future runs.")
		fmt.Println()
	}

	in := config.Inputs
	if err := applyOverrides(&in, opts.overrides); err != nil {
		return err
	}
	resolveCategory(&in, opts.overrides, catalog)

	if err := ValidateInputs(in, catalog); err != nil {
		return fmt.Errorf("invalid inputs: %w", err)
	}

	comparison, err := ComputeProjections(in, catalog)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{"category": in.Category, "years": in.InvestmentYears, "funds": len(comparison.Results)}).Info("Projection complete")

	PrintComparison(os.Stdout, comparison)

	if opts.wantsReports() {
		dir := opts.outDir
		if dir == "" {
			base := config.Output.Directory
			if base == "" {
				base = "reports"
			}
			dir = filepath.Join(base, time.Now().Format("2006-01-02_1504"))
		}
		written, err := writeReports(comparison, config, dir, opts)
		if err != nil {
			return err
		}
		fmt.Printf("Generated reports in %s/\n", dir)
		for _, f := range written {
			fmt.Printf("  %s\n", filepath.Base(f))
		}
		if opts.html {
			openBrowser(written[0])
		}
	}

	return nil
}

// writeReports writes every requested report into dir and returns the file paths.
// The HTML report, when requested, is always first.
func writeReports(c *Comparison, config *Config, dir string, opts runOptions) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	base := sanitizeFilename(fmt.Sprintf("kiwisaver_%s_%dy", strings.ToLower(string(c.Inputs.Category)), c.Inputs.InvestmentYears))
	var written []string

	if opts.html {
		path := filepath.Join(dir, base+".html")
		if err := GenerateHTMLReport(c, path); err != nil {
			return written, fmt.Errorf("error generating HTML report: %w", err)
		}
		written = append(written, path)
	}
	if opts.pdf {
		path := filepath.Join(dir, base+".pdf")
		if err := SavePDFReport(c, path); err != nil {
			return written, fmt.Errorf("error generating PDF report: %w", err)
		}
		written = append(written, path)
	}
	if opts.png {
		width, height := config.Output.ChartWidth, config.Output.ChartHeight
		if width <= 0 || height <= 0 {
			width, height = 1000, 500
		}
		path := filepath.Join(dir, base+".png")
		if err := SaveChartPNG(c, path, width, height); err != nil {
			return written, fmt.Errorf("error generating chart: %w", err)
		}
		written = append(written, path)
	}
	if opts.csv {
		path := filepath.Join(dir, base+".csv")
		if err := SaveCSV(c, path); err != nil {
			return written, fmt.Errorf("error writing CSV: %w", err)
		}
		written = append(written, path)
	}

	log.WithFields(log.Fields{"dir": dir, "files": len(written)}).Info("Reports written")
	return written, nil
}
