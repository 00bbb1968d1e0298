package main

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
)

// WriteCSV writes the year-by-year balances: one row per year, one column per fund.
// Balances are plain numbers with two decimals and no currency symbol.
func WriteCSV(w io.Writer, c *Comparison) error {
	cw := csv.NewWriter(w)

	header := append([]string{"Year"}, c.FundNames()...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for yi, year := range c.Years {
		row := make([]string, 0, len(c.Results)+1)
		row = append(row, strconv.Itoa(year))
		for _, r := range c.Results {
			row = append(row, strconv.FormatFloat(roundCents(r.Balances[yi]), 'f', 2, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the CSV export to filename
func SaveCSV(c *Comparison, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	return WriteCSV(f, c)
}
