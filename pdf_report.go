package main

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/go-pdf/fpdf"
	log "github.com/sirupsen/logrus"
)

const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
)

// PDFComparisonReport renders one comparison as a printable A4 document
type PDFComparisonReport struct {
	pdf        *fpdf.Fpdf
	comparison *Comparison
	text       func(string) string
}

// GeneratePDFReport creates a PDF with the inputs, chart, yearly table and ranking
func GeneratePDFReport(c *Comparison) ([]byte, error) {
	report := &PDFComparisonReport{
		pdf:        fpdf.New("P", "mm", "A4", ""),
		comparison: c,
	}
	// Standard fonts are cp1252; translate UTF-8 input
	report.text = report.pdf.UnicodeTranslatorFromDescriptor("")

	report.pdf.SetMargins(marginLeft, marginTop, marginRight)
	report.pdf.SetAutoPageBreak(true, marginBottom)
	report.pdf.SetTitle(ChartTitle(c.Inputs.Category), true)

	report.addSummaryPage()
	report.addYearTable()
	report.addRanking()

	var buf bytes.Buffer
	if err := report.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SavePDFReport writes the PDF report to filename
func SavePDFReport(c *Comparison, filename string) error {
	data, err := GeneratePDFReport(c)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{"file": filename, "bytes": len(data)}).Debug("Writing PDF report")
	return os.WriteFile(filename, data, 0644)
}

func (r *PDFComparisonReport) addSummaryPage() {
	c := r.comparison
	in := c.Inputs
	r.pdf.AddPage()

	r.pdf.SetFont("Arial", "B", 22)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 12, "KiwiSaver Fund Comparison", "", 1, "C", false, 0, "")

	r.pdf.SetFont("Arial", "I", 10)
	r.pdf.SetTextColor(80, 80, 80)
	r.pdf.CellFormat(contentWidth, 6, fmt.Sprintf("Generated: %s", time.Now().Format("2 January 2006")), "", 1, "C", false, 0, "")
	r.pdf.Ln(6)

	r.pdf.SetFillColor(245, 247, 250)
	r.pdf.SetDrawColor(200, 200, 200)
	r.pdf.SetFont("Arial", "B", 12)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 8, "Inputs", "1", 1, "C", true, 0, "")

	rows := [][2]string{
		{"Starting balance", FormatMoney(in.StartingBalance)},
		{"Annual income", FormatMoney(in.AnnualIncome)},
		{"Your contribution", fmt.Sprintf("%s (%s/month)", FormatPercent(in.EmployeeContributionRate), FormatMoney(c.Schedule.MonthlyEmployeeContribution))},
		{"Employer contribution", fmt.Sprintf("%s (%s/month)", FormatPercent(in.EmployerContributionRate), FormatMoney(c.Schedule.MonthlyEmployerContribution))},
		{"Government contribution", FormatMoney(in.GovernmentContribution) + "/year"},
		{"Investment period", fmt.Sprintf("%d years", in.InvestmentYears)},
		{"Fund type", string(in.Category)},
	}
	r.pdf.SetFont("Arial", "", 10)
	r.pdf.SetTextColor(50, 50, 50)
	for i, row := range rows {
		left, right := "L", "R"
		if i == len(rows)-1 {
			left, right = "LB", "RB"
		}
		r.pdf.CellFormat(contentWidth/2, 6, r.text(row[0]), left, 0, "L", true, 0, "")
		r.pdf.CellFormat(contentWidth/2, 6, r.text(row[1]), right, 1, "R", true, 0, "")
	}

	r.pdf.Ln(4)
	r.pdf.SetFont("Arial", "B", 11)
	if c.Recommendation.InCatalog {
		r.pdf.SetTextColor(22, 163, 74)
		r.pdf.CellFormat(contentWidth, 7, fmt.Sprintf("Recommended fund type for %d years: %s", in.InvestmentYears, c.Recommendation.Category), "", 1, "C", false, 0, "")
	} else {
		r.pdf.SetTextColor(220, 38, 38)
		r.pdf.CellFormat(contentWidth, 7, fmt.Sprintf("Recommended fund type for %d years: %s (not in catalog)", in.InvestmentYears, c.Recommendation.Category), "", 1, "C", false, 0, "")
	}

	r.pdf.Ln(4)
	r.drawChart(marginLeft, r.pdf.GetY(), contentWidth, 110)

	r.pdf.SetY(r.pdf.GetY() + 114)
	r.pdf.SetFont("Arial", "I", 8)
	r.pdf.SetTextColor(120, 120, 120)
	r.pdf.MultiCell(contentWidth, 4,
		"Projections assume constant average returns and fees and are for illustration only. "+
			"This is not financial advice.", "", "C", false)
}

// drawChart draws the growth chart as vector lines inside the given box
func (r *PDFComparisonReport) drawChart(x, y, w, h float64) {
	c := r.comparison
	l := newChartLayout(c, w, h)
	pdf := r.pdf

	pdf.SetFont("Arial", "B", 11)
	pdf.SetTextColor(30, 41, 59)
	title := r.text(ChartTitle(c.Inputs.Category))
	pdf.Text(x+(w-pdf.GetStringWidth(title))/2, y+l.Top/2+2, title)

	if l.Years == 0 {
		pdf.SetFont("Arial", "", 9)
		msg := "No projection years"
		pdf.Text(x+(w-pdf.GetStringWidth(msg))/2, y+h/2, msg)
		return
	}

	pdf.SetFont("Arial", "", 7)
	pdf.SetLineWidth(0.1)
	for _, t := range l.YTicks {
		ty := y + l.Y(t)
		pdf.SetDrawColor(226, 232, 240)
		pdf.Line(x+l.Left, ty, x+w-l.Right, ty)
		label := r.text(FormatMoneyShort(t))
		pdf.SetTextColor(100, 116, 139)
		pdf.Text(x+l.Left-1.5-pdf.GetStringWidth(label), ty+1, label)
	}
	for _, yr := range l.XTicks() {
		label := fmt.Sprintf("%d", yr)
		pdf.Text(x+l.X(yr)-pdf.GetStringWidth(label)/2, y+h-l.Bottom+4, label)
	}

	pdf.SetDrawColor(30, 41, 59)
	pdf.SetLineWidth(0.3)
	pdf.Line(x+l.Left, y+l.Top, x+l.Left, y+h-l.Bottom)
	pdf.Line(x+l.Left, y+h-l.Bottom, x+w-l.Right, y+h-l.Bottom)
	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(30, 41, 59)
	pdf.Text(x+l.Left+l.plotWidth()/2-pdf.GetStringWidth("Years")/2, y+h-2, "Years")
	pdf.TransformBegin()
	axis := r.text("Projected Balance (" + currencySymbol + ")")
	pdf.TransformRotate(90, x+3, y+l.Top+l.plotHeight()/2)
	pdf.Text(x+3-pdf.GetStringWidth(axis)/2, y+l.Top+l.plotHeight()/2, axis)
	pdf.TransformEnd()

	pdf.SetLineWidth(0.5)
	for i, res := range c.Results {
		col := seriesColor(i)
		pdf.SetDrawColor(int(col[0]), int(col[1]), int(col[2]))
		pdf.SetFillColor(int(col[0]), int(col[1]), int(col[2]))
		for yi := 1; yi < len(res.Balances); yi++ {
			if !isFinite(res.Balances[yi-1]) || !isFinite(res.Balances[yi]) {
				continue
			}
			pdf.Line(x+l.X(yi), y+l.Y(res.Balances[yi-1]), x+l.X(yi+1), y+l.Y(res.Balances[yi]))
		}
		if len(res.Balances) == 1 && isFinite(res.Balances[0]) {
			pdf.Circle(x+l.X(1), y+l.Y(res.Balances[0]), 0.8, "F")
		}
	}

	// Legend, best fund first
	pdf.SetFont("Arial", "", 7)
	lx, ly := x+l.Left+4, y+l.Top+3
	for n, i := range legendOrder(c) {
		col := seriesColor(i)
		pdf.SetFillColor(int(col[0]), int(col[1]), int(col[2]))
		pdf.Rect(lx, ly+float64(n)*4, 5, 1.2, "F")
		pdf.SetTextColor(30, 41, 59)
		pdf.Text(lx+7, ly+float64(n)*4+1.3, r.text(c.Results[i].FundName))
	}
}

func (r *PDFComparisonReport) addYearTable() {
	c := r.comparison
	r.pdf.AddPage()
	r.drawSectionHeader(TableTitle(c.Inputs.Category))

	if len(c.Years) == 0 {
		r.pdf.SetFont("Arial", "I", 10)
		r.pdf.CellFormat(contentWidth, 6, "No projection years", "", 1, "L", false, 0, "")
		return
	}

	names := c.FundNames()
	headers := append([]string{"Year"}, names...)
	widths := make([]float64, len(headers))
	widths[0] = 14
	for i := 1; i < len(widths); i++ {
		widths[i] = (contentWidth - widths[0]) / float64(len(names))
	}

	r.drawTableHeader(headers, widths)
	for yi, year := range c.Years {
		if r.pdf.GetY() > pageHeight-marginBottom-8 {
			r.pdf.AddPage()
			r.drawTableHeader(headers, widths)
		}
		cells := []string{fmt.Sprintf("%d", year)}
		for _, res := range c.Results {
			cells = append(cells, FormatMoney(res.Balances[yi]))
		}
		r.drawTableRow(cells, widths, yi == len(c.Years)-1)
	}
}

func (r *PDFComparisonReport) addRanking() {
	c := r.comparison
	r.pdf.Ln(8)
	r.drawSectionHeader("Final Balance Ranking")

	widths := []float64{14, 86, 40, 40}
	r.drawTableHeader([]string{"Rank", "Fund", "Final Balance", "Behind Best"}, widths)
	for i, rf := range c.Ranking {
		r.drawTableRow([]string{
			fmt.Sprintf("%d", i+1),
			truncateString(rf.FundName, 48),
			FormatMoney(rf.FinalBalance),
			FormatMoney(c.Ranking[0].FinalBalance - rf.FinalBalance),
		}, widths, i == 0)
	}

	r.pdf.Ln(4)
	r.pdf.SetFont("Arial", "", 9)
	r.pdf.SetTextColor(50, 50, 50)
	r.pdf.CellFormat(contentWidth, 5, r.text(fmt.Sprintf("Total contributed over %d years: %s",
		c.Inputs.InvestmentYears, FormatMoney(c.TotalContributed()))), "", 1, "L", false, 0, "")
}

func (r *PDFComparisonReport) drawSectionHeader(title string) {
	r.pdf.SetFont("Arial", "B", 14)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 10, r.text(title), "", 1, "L", false, 0, "")
	r.pdf.SetDrawColor(0, 51, 102)
	r.pdf.Line(marginLeft, r.pdf.GetY(), marginLeft+contentWidth, r.pdf.GetY())
	r.pdf.Ln(4)
}

func (r *PDFComparisonReport) drawTableHeader(headers []string, widths []float64) {
	r.pdf.SetFillColor(0, 51, 102)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont("Arial", "B", 8)

	for i, header := range headers {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 6, r.text(truncateString(header, int(widths[i]/1.6))), "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *PDFComparisonReport) drawTableRow(cells []string, widths []float64, isBold bool) {
	r.pdf.SetFillColor(250, 250, 250)
	r.pdf.SetTextColor(50, 50, 50)

	if isBold {
		r.pdf.SetFont("Arial", "B", 8)
		r.pdf.SetFillColor(240, 240, 240)
	} else {
		r.pdf.SetFont("Arial", "", 8)
	}

	for i, cell := range cells {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 5, r.text(cell), "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}

// truncateString shortens s to maxLen characters, counting runes
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if maxLen < 4 || len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
