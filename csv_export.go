package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// WriteSweepCSV writes the bracket sweep as CSV with raw numeric amounts
func WriteSweepCSV(w io.Writer, sweep BracketSweep, a, b Regime) error {
	cw := csv.NewWriter(w)
	header := []string{"bracket_lower", "bracket_upper", "income_bracket",
		string(a.ID) + "_tax", string(b.ID) + "_tax", "savings"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, p := range sweep.Points {
		record := []string{
			strconv.FormatFloat(p.Lower, 'f', -1, 64),
			strconv.FormatFloat(p.Upper, 'f', -1, 64),
			p.Label,
			strconv.FormatFloat(p.TaxA, 'f', 2, 64),
			strconv.FormatFloat(p.TaxB, 'f', 2, 64),
			strconv.FormatFloat(p.Savings, 'f', 2, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportSweepCSV writes the report's sweep into exportDir and returns the absolute path
func ExportSweepCSV(report Report, exportDir string) (string, error) {
	if err := os.MkdirAll(exportDir, 0755); err != nil {
		return "", fmt.Errorf("create exports directory: %w", err)
	}

	filePath := filepath.Join(exportDir, fmt.Sprintf("tax-sweep-%s.csv", report.CalculationID))
	file, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	c := report.Comparison
	if err := WriteSweepCSV(file, report.Sweep, c.RegimeA, c.RegimeB); err != nil {
		return "", err
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		absPath = filePath
	}
	reportLog.WithField("file", absPath).Info("sweep CSV written")
	return absPath, nil
}
