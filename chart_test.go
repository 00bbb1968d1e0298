package main

import (
	"bytes"
	"image/png"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNiceTicks(t *testing.T) {
	ticks := niceTicks(0, 1000, 5)
	assert.Equal(t, []float64{0, 200, 400, 600, 800, 1000}, ticks)

	ticks = niceTicks(0, 43882, 5)
	assert.Equal(t, 0.0, ticks[0])
	assert.GreaterOrEqual(t, ticks[len(ticks)-1], 43882.0)
	assert.LessOrEqual(t, len(ticks), 7)
}

func TestNiceTicks_NonFiniteRange(t *testing.T) {
	assert.Empty(t, niceTicks(0, math.Inf(1), 5))
	assert.Empty(t, niceTicks(0, math.NaN(), 5))
	assert.Empty(t, niceTicks(math.Inf(-1), math.Inf(1), 5))
}

func TestChartLayout_NonFiniteBalances(t *testing.T) {
	c := &Comparison{
		Inputs:  ProjectionInputs{Category: Growth},
		Years:   []int{1, 2},
		Results: []ProjectionResult{{FundName: "Broken", Balances: []float64{math.NaN(), math.Inf(1)}}},
	}
	c.Ranking = RankByFinalBalance(c.Results)

	l := newChartLayout(c, 800, 400)
	require.NotEmpty(t, l.YTicks)
	assert.Less(t, l.MinY, l.MaxY)

	assert.NotPanics(t, func() {
		_, err := GenerateChartPNG(c, 400, 200)
		assert.NoError(t, err)
	})
	assert.NotPanics(t, func() { WriteSVGChart(&bytes.Buffer{}, c, 400, 200) })
}

func TestChartLayout_IncludesZeroAndExtremes(t *testing.T) {
	c := sampleComparison(t, 10)
	l := newChartLayout(c, 1000, 500)

	assert.LessOrEqual(t, l.MinY, 0.0)
	best, _ := c.Best()
	assert.GreaterOrEqual(t, l.MaxY, best.FinalBalance)

	// Higher balances sit higher on the canvas
	assert.Less(t, l.Y(l.MaxY), l.Y(l.MinY))
	assert.InDelta(t, l.Left, l.X(1), 1e-9)
	assert.InDelta(t, l.Width-l.Right, l.X(10), 1e-9)
}

func TestChartLayout_XTicks(t *testing.T) {
	l := chartLayout{Years: 5}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, l.XTicks())

	l = chartLayout{Years: 40}
	ticks := l.XTicks()
	assert.Equal(t, 1, ticks[0])
	assert.Equal(t, 40, ticks[len(ticks)-1])
	assert.LessOrEqual(t, len(ticks), 12)
}

func TestLegendOrder_FollowsRanking(t *testing.T) {
	c := &Comparison{
		Results: []ProjectionResult{
			{FundName: "Low", Balances: []float64{1}},
			{FundName: "High", Balances: []float64{3}},
			{FundName: "Mid", Balances: []float64{2}},
		},
	}
	c.Ranking = RankByFinalBalance(c.Results)
	assert.Equal(t, []int{1, 2, 0}, legendOrder(c))
}

func TestWriteSVGChart(t *testing.T) {
	c := sampleComparison(t, 8)

	var buf bytes.Buffer
	WriteSVGChart(&buf, c, 900, 450)
	svg := buf.String()

	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.Contains(t, svg, "KiwiSaver Growth Comparison (Conservative Funds)")
	assert.Contains(t, svg, ">Years</text>")
	assert.Contains(t, svg, "Projected Balance ($)")
	assert.Equal(t, len(c.Results), strings.Count(svg, "<polyline"))
	assert.Equal(t, 8*len(c.Results), strings.Count(svg, "<circle"))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(svg), "</svg>"))
}

func TestWriteSVGChart_NoYears(t *testing.T) {
	c := sampleComparison(t, 0)

	var buf bytes.Buffer
	WriteSVGChart(&buf, c, 900, 450)
	assert.Contains(t, buf.String(), "No projection years")
	assert.NotContains(t, buf.String(), "<polyline")
}

func TestGenerateChartPNG(t *testing.T) {
	c := sampleComparison(t, 20)

	data, err := GenerateChartPNG(c, 800, 400)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 400, img.Bounds().Dy())
}

func TestGenerateChartPNG_InvalidSize(t *testing.T) {
	_, err := GenerateChartPNG(sampleComparison(t, 1), 0, 400)
	assert.Error(t, err)
}

func TestSaveChartPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.png")
	require.NoError(t, SaveChartPNG(sampleComparison(t, 1), path, 400, 200))
	assert.FileExists(t, path)
}

func TestRenderAppIcon(t *testing.T) {
	data, err := RenderAppIcon(64)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())

	_, err = RenderAppIcon(8)
	assert.Error(t, err)
}
