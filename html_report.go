package main

import (
	"fmt"
	"html"
	"io"
	"os"
	"time"
)

const reportCSS = `
        :root {
            --primary: #2563eb;
            --success: #16a34a;
            --warning: #ea580c;
            --danger: #dc2626;
            --bg: #f8fafc;
            --card-bg: #ffffff;
            --text: #1e293b;
            --text-muted: #64748b;
            --border: #e2e8f0;
        }
        * { box-sizing: border-box; margin: 0; padding: 0; }
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            background: var(--bg);
            color: var(--text);
            line-height: 1.6;
            padding: 2rem;
        }
        .container { max-width: 1200px; margin: 0 auto; }
        h1 { font-size: 1.75rem; margin-bottom: 0.5rem; color: var(--primary); }
        h2 {
            font-size: 1.25rem;
            margin: 1.5rem 0 1rem;
            padding-bottom: 0.5rem;
            border-bottom: 2px solid var(--primary);
        }
        .subtitle { color: var(--text-muted); margin-bottom: 1.5rem; }
        .card {
            background: var(--card-bg);
            border-radius: 8px;
            box-shadow: 0 1px 3px rgba(0,0,0,0.1);
            padding: 1.5rem;
            margin-bottom: 1.5rem;
        }
        .grid { display: grid; gap: 1rem; }
        .grid-4 { grid-template-columns: repeat(4, 1fr); }
        @media (max-width: 768px) { .grid-4 { grid-template-columns: 1fr; } }
        .metric { text-align: center; padding: 1rem; border-radius: 8px; background: var(--bg); }
        .metric-value { font-size: 1.4rem; font-weight: 700; color: var(--primary); }
        .metric-label { font-size: 0.875rem; color: var(--text-muted); }
        .metric.success .metric-value { color: var(--success); }
        .recommend { font-weight: 600; }
        .recommend.available { color: var(--success); }
        .recommend.missing { color: var(--danger); }
        table { width: 100%; border-collapse: collapse; font-size: 0.875rem; }
        th, td { padding: 0.6rem 0.5rem; text-align: right; border-bottom: 1px solid var(--border); }
        th { background: var(--bg); font-weight: 600; position: sticky; top: 0; }
        th:first-child, td:first-child { text-align: left; }
        tr:hover { background: #f1f5f9; }
        .best { background: #dcfce7; }
        .negative { color: var(--danger); }
        .swatch { display: inline-block; width: 10px; height: 10px; border-radius: 2px; margin-right: 6px; }
        svg.chart { width: 100%; height: auto; }
        .footer { color: var(--text-muted); font-size: 0.75rem; text-align: center; margin-top: 2rem; }
`

// WriteHTMLReport writes a standalone HTML page with the table, chart and ranking
func WriteHTMLReport(w io.Writer, c *Comparison) error {
	in := c.Inputs
	category := html.EscapeString(string(in.Category))

	fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>KiwiSaver Comparison: %s Funds</title>
    <style>`, category)
	io.WriteString(w, reportCSS)
	fmt.Fprintf(w, `    </style>
</head>
<body>
<div class="container">
    <h1>KiwiSaver Fund Comparison</h1>
    <p class="subtitle">%s funds over %d years</p>
`, category, in.InvestmentYears)

	// Inputs and headline figures
	fmt.Fprintln(w, `    <div class="card">
        <div class="grid grid-4">`)
	writeMetric(w, "", FormatMoney(in.StartingBalance), "Starting Balance")
	writeMetric(w, "", FormatMoney(c.Schedule.AnnualContribution()), "Contributed per Year")
	writeMetric(w, "", FormatMoney(c.TotalContributed()), "Total Contributed")
	if best, ok := c.Best(); ok {
		writeMetric(w, "success", FormatMoney(best.FinalBalance), "Best: "+best.FundName)
	} else {
		writeMetric(w, "", "-", "Best Fund")
	}
	fmt.Fprintln(w, `        </div>`)

	fmt.Fprintf(w, `        <p style="margin-top:1rem">Income %s &middot; you %s (%s/month) &middot; employer %s (%s/month) &middot; government %s/year</p>
`,
		FormatMoney(in.AnnualIncome),
		FormatPercent(in.EmployeeContributionRate), FormatMoney(c.Schedule.MonthlyEmployeeContribution),
		FormatPercent(in.EmployerContributionRate), FormatMoney(c.Schedule.MonthlyEmployerContribution),
		FormatMoney(in.GovernmentContribution))

	class, note := "available", ""
	if !c.Recommendation.InCatalog {
		class, note = "missing", " (not offered by this catalog)"
	}
	fmt.Fprintf(w, `        <p>Recommended fund type for %d years: <span class="recommend %s">%s%s</span></p>
    </div>
`, in.InvestmentYears, class, html.EscapeString(string(c.Recommendation.Category)), note)

	// Chart
	fmt.Fprintln(w, `    <div class="card">`)
	WriteSVGChart(w, c, 900, 450)
	fmt.Fprintln(w, `    </div>`)

	// Year by year table
	fmt.Fprintf(w, `    <h2>%s</h2>
    <div class="card">
        <table>
            <thead><tr><th>Year</th>`, html.EscapeString(TableTitle(in.Category)))
	for i, name := range c.FundNames() {
		fmt.Fprintf(w, `<th><span class="swatch" style="background:%s"></span>%s</th>`, seriesHex(i), html.EscapeString(name))
	}
	fmt.Fprintln(w, `</tr></thead>
            <tbody>`)
	for yi, year := range c.Years {
		fmt.Fprintf(w, `                <tr><td>%d</td>`, year)
		for _, r := range c.Results {
			fmt.Fprintf(w, `<td%s>%s</td>`, negativeClass(r.Balances[yi]), FormatMoney(r.Balances[yi]))
		}
		fmt.Fprintln(w, `</tr>`)
	}
	fmt.Fprintln(w, `            </tbody>
        </table>
    </div>`)

	// Ranking
	fmt.Fprintln(w, `    <h2>Final Balance Ranking</h2>
    <div class="card">
        <table>
            <thead><tr><th>Rank</th><th>Fund</th><th>Final Balance</th><th>Behind Best</th></tr></thead>
            <tbody>`)
	for i, r := range c.Ranking {
		rowClass := ""
		if i == 0 {
			rowClass = ` class="best"`
		}
		fmt.Fprintf(w, `                <tr%s><td>%d</td><td style="text-align:left">%s</td><td%s>%s</td><td>%s</td></tr>
`, rowClass, i+1, html.EscapeString(r.FundName), negativeClass(r.FinalBalance), FormatMoney(r.FinalBalance),
			FormatMoney(c.Ranking[0].FinalBalance-r.FinalBalance))
	}
	fmt.Fprintln(w, `            </tbody>
        </table>
    </div>`)

	fmt.Fprintf(w, `    <div class="footer">
        Generated %s. Projections use constant average returns and fees; actual results will vary.
    </div>
</div>
</body>
</html>
`, time.Now().Format("2006-01-02 15:04:05"))

	return nil
}

func writeMetric(w io.Writer, class, value, label string) {
	fmt.Fprintf(w, `            <div class="metric %s"><div class="metric-value">%s</div><div class="metric-label">%s</div></div>
`, class, html.EscapeString(value), html.EscapeString(label))
}

func negativeClass(v float64) string {
	if v < 0 {
		return ` class="negative"`
	}
	return ""
}

// GenerateHTMLReport writes the HTML report to filename
func GenerateHTMLReport(c *Comparison, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	return WriteHTMLReport(f, c)
}

// sanitizeFilename replaces characters that are not safe in filenames
func sanitizeFilename(name string) string {
	result := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '/' || c == '\\' || c == ':' || c == '*' || c == '?' || c == '"' || c == '<' || c == '>' || c == '|' || c == ' ' {
			result = append(result, '_')
		} else {
			result = append(result, c)
		}
	}
	return string(result)
}
