package main

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	log "github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Line colours, assigned to funds in catalog order
var seriesPalette = [][3]uint8{
	{37, 99, 235},  // blue
	{22, 163, 74},  // green
	{234, 88, 12},  // orange
	{147, 51, 234}, // purple
	{220, 38, 38},  // red
	{8, 145, 178},  // cyan
	{202, 138, 4},  // amber
	{71, 85, 105},  // slate
}

func seriesColor(i int) [3]uint8 {
	return seriesPalette[i%len(seriesPalette)]
}

func seriesHex(i int) string {
	c := seriesColor(i)
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

// chartLayout maps years and balances onto a drawing area.
// All three renderers (SVG, PNG, PDF) share it so the charts agree.
type chartLayout struct {
	Width, Height            float64
	Left, Right, Top, Bottom float64 // margins
	Years                    int
	MinY, MaxY               float64
	YTicks                   []float64
}

func newChartLayout(c *Comparison, width, height float64) chartLayout {
	l := chartLayout{
		Width:  width,
		Height: height,
		Left:   width * 0.11,
		Right:  width * 0.04,
		Top:    height * 0.12,
		Bottom: height * 0.14,
		Years:  len(c.Years),
	}

	lo, hi := 0.0, 0.0
	for _, r := range c.Results {
		for _, b := range r.Balances {
			if !isFinite(b) {
				continue
			}
			lo = math.Min(lo, b)
			hi = math.Max(hi, b)
		}
	}
	if hi <= lo {
		hi = lo + 1000
	}
	l.YTicks = niceTicks(lo, hi, 5)
	if len(l.YTicks) == 0 {
		lo, hi = 0, 1000
		l.YTicks = []float64{0, 200, 400, 600, 800, 1000}
	}
	l.MinY = math.Min(lo, l.YTicks[0])
	l.MaxY = math.Max(hi, l.YTicks[len(l.YTicks)-1])
	return l
}

func (l chartLayout) plotWidth() float64  { return l.Width - l.Left - l.Right }
func (l chartLayout) plotHeight() float64 { return l.Height - l.Top - l.Bottom }

// X returns the horizontal position of a 1-based year
func (l chartLayout) X(year int) float64 {
	if l.Years <= 1 {
		return l.Left + l.plotWidth()/2
	}
	return l.Left + float64(year-1)/float64(l.Years-1)*l.plotWidth()
}

// Y returns the vertical position of a balance, growing upwards
func (l chartLayout) Y(v float64) float64 {
	return l.Top + l.plotHeight()*(1-(v-l.MinY)/(l.MaxY-l.MinY))
}

// XTicks returns the years to label on the x axis
func (l chartLayout) XTicks() []int {
	step := 1
	for l.Years/step > 10 {
		switch {
		case step == 1:
			step = 2
		case step == 2:
			step = 5
		default:
			step += 5
		}
	}
	var ticks []int
	for y := 1; y <= l.Years; y += step {
		ticks = append(ticks, y)
	}
	if len(ticks) > 0 && ticks[len(ticks)-1] != l.Years {
		ticks = append(ticks, l.Years)
	}
	return ticks
}

// niceTicks returns evenly spaced round values covering [lo, hi].
// It returns nil when the range is not finite.
func niceTicks(lo, hi float64, count int) []float64 {
	span := hi - lo
	if !isFinite(span) || span <= 0 || count <= 0 {
		return nil
	}
	raw := span / float64(count)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	step := mag
	for _, m := range []float64{1, 2, 2.5, 5, 10} {
		step = m * mag
		if span/step <= float64(count) {
			break
		}
	}

	start := math.Floor(lo/step) * step
	end := math.Ceil(hi/step) * step
	var ticks []float64
	for v := start; v <= end+step/2; v += step {
		ticks = append(ticks, v)
	}
	return ticks
}

// legendOrder returns result indices sorted like the ranking, so the legend reads best first
func legendOrder(c *Comparison) []int {
	index := make(map[string]int, len(c.Results))
	for i, r := range c.Results {
		index[r.FundName] = i
	}
	order := make([]int, 0, len(c.Results))
	for _, r := range c.Ranking {
		order = append(order, index[r.FundName])
	}
	if len(order) == 0 {
		for i := range c.Results {
			order = append(order, i)
		}
	}
	return order
}

// WriteSVGChart writes the growth chart as inline SVG
func WriteSVGChart(w io.Writer, c *Comparison, width, height int) {
	l := newChartLayout(c, float64(width), float64(height))
	fmt.Fprintf(w, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" class="chart" role="img" aria-label="%s">`+"\n",
		width, height, html.EscapeString(ChartTitle(c.Inputs.Category)))
	fmt.Fprintf(w, `<rect width="%d" height="%d" fill="#ffffff"/>`+"\n", width, height)
	fmt.Fprintf(w, `<text x="%.1f" y="%.1f" text-anchor="middle" font-size="16" font-weight="600">%s</text>`+"\n",
		l.Width/2, l.Top/2+6, html.EscapeString(ChartTitle(c.Inputs.Category)))

	if l.Years == 0 {
		fmt.Fprintf(w, `<text x="%.1f" y="%.1f" text-anchor="middle" fill="#64748b">No projection years</text>`+"\n", l.Width/2, l.Height/2)
		fmt.Fprintln(w, "</svg>")
		return
	}

	// Grid and y labels
	for _, t := range l.YTicks {
		y := l.Y(t)
		fmt.Fprintf(w, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#e2e8f0"/>`+"\n", l.Left, y, l.Width-l.Right, y)
		fmt.Fprintf(w, `<text x="%.1f" y="%.1f" text-anchor="end" font-size="11" fill="#64748b">%s</text>`+"\n", l.Left-6, y+4, FormatMoneyShort(t))
	}
	for _, yr := range l.XTicks() {
		x := l.X(yr)
		fmt.Fprintf(w, `<text x="%.1f" y="%.1f" text-anchor="middle" font-size="11" fill="#64748b">%d</text>`+"\n", x, l.Height-l.Bottom+16, yr)
	}

	// Axes
	fmt.Fprintf(w, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#1e293b"/>`+"\n", l.Left, l.Top, l.Left, l.Height-l.Bottom)
	fmt.Fprintf(w, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#1e293b"/>`+"\n", l.Left, l.Height-l.Bottom, l.Width-l.Right, l.Height-l.Bottom)
	fmt.Fprintf(w, `<text x="%.1f" y="%.1f" text-anchor="middle" font-size="12">Years</text>`+"\n", l.Left+l.plotWidth()/2, l.Height-8)
	fmt.Fprintf(w, `<text x="14" y="%.1f" text-anchor="middle" font-size="12" transform="rotate(-90 14 %.1f)">Projected Balance (%s)</text>`+"\n",
		l.Top+l.plotHeight()/2, l.Top+l.plotHeight()/2, html.EscapeString(currencySymbol))

	// Series
	for i, r := range c.Results {
		points := make([]string, 0, len(r.Balances))
		for yi, b := range r.Balances {
			if isFinite(b) {
				points = append(points, fmt.Sprintf("%.1f,%.1f", l.X(yi+1), l.Y(b)))
			}
		}
		fmt.Fprintf(w, `<polyline fill="none" stroke="%s" stroke-width="2" points="%s"><title>%s</title></polyline>`+"\n",
			seriesHex(i), strings.Join(points, " "), html.EscapeString(r.FundName))
		for yi, b := range r.Balances {
			if !isFinite(b) {
				continue
			}
			fmt.Fprintf(w, `<circle cx="%.1f" cy="%.1f" r="2.5" fill="%s"><title>%s year %d: %s</title></circle>`+"\n",
				l.X(yi+1), l.Y(b), seriesHex(i), html.EscapeString(r.FundName), yi+1, FormatMoney(b))
		}
	}

	// Legend, best fund first
	lx, ly := l.Left+12, l.Top+8
	for n, i := range legendOrder(c) {
		y := ly + float64(n)*18
		fmt.Fprintf(w, `<rect x="%.1f" y="%.1f" width="12" height="3" fill="%s"/>`+"\n", lx, y, seriesHex(i))
		fmt.Fprintf(w, `<text x="%.1f" y="%.1f" font-size="12">%s</text>`+"\n", lx+18, y+5, html.EscapeString(c.Results[i].FundName))
	}
	fmt.Fprintln(w, "</svg>")
}

// loadFont loads a font from byte data
func loadFont(fontData []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(fontData)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, Hinting: font.HintingFull}), nil
}

func setRGB(dc *gg.Context, c [3]uint8) {
	dc.SetRGB255(int(c[0]), int(c[1]), int(c[2]))
}

// GenerateChartPNG renders the growth chart to PNG bytes
func GenerateChartPNG(c *Comparison, width, height int) ([]byte, error) {
	start := time.Now()
	defer func() {
		log.WithField("duration_ms", time.Since(start).Milliseconds()).
			WithField("funds", len(c.Results)).
			Debug("Chart image generation completed")
	}()

	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid chart size %dx%d", width, height)
	}

	l := newChartLayout(c, float64(width), float64(height))
	dc := gg.NewContext(width, height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	face, err := loadFont(goregular.TTF, 12)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	titleFace, err := loadFont(gobold.TTF, 16)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}

	dc.SetFontFace(titleFace)
	dc.SetRGB255(30, 41, 59)
	dc.DrawStringAnchored(ChartTitle(c.Inputs.Category), l.Width/2, l.Top/2, 0.5, 0.5)
	dc.SetFontFace(face)

	if l.Years == 0 {
		dc.SetRGB255(100, 116, 139)
		dc.DrawStringAnchored("No projection years", l.Width/2, l.Height/2, 0.5, 0.5)
		return encodePNG(dc)
	}

	// Grid and y labels
	dc.SetLineWidth(1)
	for _, t := range l.YTicks {
		y := l.Y(t)
		dc.SetRGB255(226, 232, 240)
		dc.DrawLine(l.Left, y, l.Width-l.Right, y)
		dc.Stroke()
		dc.SetRGB255(100, 116, 139)
		dc.DrawStringAnchored(FormatMoneyShort(t), l.Left-6, y, 1, 0.35)
	}
	for _, yr := range l.XTicks() {
		dc.DrawStringAnchored(fmt.Sprintf("%d", yr), l.X(yr), l.Height-l.Bottom+14, 0.5, 0.5)
	}

	// Axes
	dc.SetRGB255(30, 41, 59)
	dc.DrawLine(l.Left, l.Top, l.Left, l.Height-l.Bottom)
	dc.DrawLine(l.Left, l.Height-l.Bottom, l.Width-l.Right, l.Height-l.Bottom)
	dc.Stroke()
	dc.DrawStringAnchored("Years", l.Left+l.plotWidth()/2, l.Height-10, 0.5, 0)
	dc.Push()
	dc.RotateAbout(-math.Pi/2, 16, l.Top+l.plotHeight()/2)
	dc.DrawStringAnchored("Projected Balance ("+currencySymbol+")", 16, l.Top+l.plotHeight()/2, 0.5, 0.5)
	dc.Pop()

	// Series
	dc.SetLineWidth(2)
	for i, r := range c.Results {
		setRGB(dc, seriesColor(i))
		drawing := false
		for yi, b := range r.Balances {
			switch {
			case !isFinite(b):
				drawing = false
			case drawing:
				dc.LineTo(l.X(yi+1), l.Y(b))
			default:
				dc.MoveTo(l.X(yi+1), l.Y(b))
				drawing = true
			}
		}
		dc.Stroke()
		for yi, b := range r.Balances {
			if isFinite(b) {
				dc.DrawCircle(l.X(yi+1), l.Y(b), 2.5)
			}
		}
		dc.Fill()
	}

	// Legend, best fund first
	lx, ly := l.Left+12, l.Top+8
	for n, i := range legendOrder(c) {
		y := ly + float64(n)*18
		setRGB(dc, seriesColor(i))
		dc.DrawRectangle(lx, y, 12, 3)
		dc.Fill()
		dc.SetRGB255(30, 41, 59)
		dc.DrawStringAnchored(c.Results[i].FundName, lx+18, y+2, 0, 0.35)
	}

	return encodePNG(dc)
}

func encodePNG(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveChartPNG renders the growth chart and writes it to filename
func SaveChartPNG(c *Comparison, filename string, width, height int) error {
	data, err := GenerateChartPNG(c, width, height)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}
