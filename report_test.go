package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// HTML Report Tests
// =============================================================================

func TestWriteHTMLReport(t *testing.T) {
	c := sampleComparison(t, 6)

	var buf bytes.Buffer
	require.NoError(t, WriteHTMLReport(&buf, c))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "Projected KiwiSaver Balances - Conservative Funds")
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, `class="recommend available"`)
	assert.Contains(t, out, "Balanced")
	assert.Contains(t, out, `class="best"`)
	assert.Equal(t, 1, strings.Count(out, `class="best"`))
}

func TestWriteHTMLReport_RecommendationMissing(t *testing.T) {
	catalog := &Catalog{Categories: []CategoryFunds{{Name: Conservative, Funds: []Fund{{Name: "Only <Fund>"}}}}}
	in := defaultInputs()
	c, err := ComputeProjections(in, catalog)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteHTMLReport(&buf, c))
	out := buf.String()

	assert.Contains(t, out, `class="recommend missing"`)
	assert.Contains(t, out, "(not offered by this catalog)")
	assert.Contains(t, out, "Only &lt;Fund&gt;")
	assert.NotContains(t, out, "Only <Fund>")
}

func TestGenerateHTMLReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	require.NoError(t, GenerateHTMLReport(sampleComparison(t, 3), path))
	assert.FileExists(t, path)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "Provider_A_Growth", sanitizeFilename("Provider A Growth"))
	assert.Equal(t, "a_b_c", sanitizeFilename("a/b:c"))
}

// =============================================================================
// PDF Report Tests
// =============================================================================

func TestGeneratePDFReport(t *testing.T) {
	data, err := GeneratePDFReport(sampleComparison(t, 40))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.Greater(t, len(data), 1000)
}

func TestGeneratePDFReport_NoYears(t *testing.T) {
	data, err := GeneratePDFReport(sampleComparison(t, 0))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestSavePDFReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, SavePDFReport(sampleComparison(t, 2), path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Len(t, truncateString("Provider A Conservative Fund", 10), 10)

	// Multi-byte names are cut on character boundaries
	got := truncateString("Kōwhai Māori Growth Fund", 10)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "Kōwhai ...", got)
	assert.Equal(t, "Tūī", truncateString("Tūī", 4))
}

// =============================================================================
// CSV Export Tests
// =============================================================================

func TestWriteCSV(t *testing.T) {
	c := sampleComparison(t, 3)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, c))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, append([]string{"Year"}, c.FundNames()...), records[0])
	assert.Equal(t, "1", records[1][0])
	assert.Equal(t, "3", records[3][0])

	for _, cell := range records[1][1:] {
		assert.NotContains(t, cell, "$")
		assert.Regexp(t, `^-?\d+\.\d{2}$`, cell)
	}
}

func TestWriteCSV_KnownValue(t *testing.T) {
	c := &Comparison{
		Years:   []int{1},
		Results: []ProjectionResult{{FundName: "Provider, A", Balances: []float64{43882.76227104}}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, c))
	assert.Equal(t, "Year,\"Provider, A\"\n1,43882.76\n", buf.String())
}

func TestSaveCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "balances.csv")
	require.NoError(t, SaveCSV(sampleComparison(t, 2), path))
	assert.FileExists(t, path)
}
