package main

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
)

// PDFComparisonReport renders a comparison Report into a PDF document
type PDFComparisonReport struct {
	pdf    *fpdf.Fpdf
	report Report
	format *Formatter
}

// GenerateComparisonPDFReport creates the PDF for one report and returns its bytes
func GenerateComparisonPDFReport(report Report, f *Formatter) ([]byte, error) {
	r := &PDFComparisonReport{
		pdf:    fpdf.New("P", "mm", "A4", ""),
		report: report,
		format: f,
	}

	r.pdf.SetMargins(marginLeft, marginTop, marginRight)
	r.pdf.SetAutoPageBreak(true, marginBottom)
	r.pdf.SetTitle("Tax Regime Comparison", true)

	r.addSummaryPage()
	r.addBreakdownPage()
	if err := r.addChartsPage(); err != nil {
		return nil, err
	}
	r.addSweepPage()

	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// text converts a formatted string into something the PDF core fonts can draw
func (r *PDFComparisonReport) text(s string) string {
	return r.format.Plain(s)
}

func (r *PDFComparisonReport) money(amount float64) string {
	return r.text(r.format.Money(amount))
}

func (r *PDFComparisonReport) moneyFull(amount float64) string {
	return r.text(r.format.MoneyFull(amount))
}

func (r *PDFComparisonReport) addSummaryPage() {
	c := r.report.Comparison
	r.pdf.AddPage()

	r.pdf.SetFont("Arial", "B", 26)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.Ln(30)
	r.pdf.CellFormat(contentWidth, 15, "Tax Regime Comparison", "", 1, "C", false, 0, "")

	r.pdf.SetFont("Arial", "", 14)
	r.pdf.SetTextColor(80, 80, 80)
	r.pdf.Ln(5)
	r.pdf.CellFormat(contentWidth, 10, fmt.Sprintf("%s vs %s", c.RegimeA.Name, c.RegimeB.Name), "", 1, "C", false, 0, "")

	r.pdf.SetFont("Arial", "I", 11)
	r.pdf.Ln(5)
	r.pdf.CellFormat(contentWidth, 8, fmt.Sprintf("Generated: %s", time.Now().Format("2 January 2006")), "", 1, "C", false, 0, "")
	r.pdf.CellFormat(contentWidth, 6, "Calculation "+r.report.CalculationID, "", 1, "C", false, 0, "")

	// Recommendation box
	r.pdf.Ln(15)
	r.pdf.SetFillColor(224, 247, 250)
	r.pdf.SetDrawColor(200, 200, 200)
	r.pdf.SetFont("Arial", "B", 12)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 8, "Recommendation", "1", 1, "C", true, 0, "")
	r.pdf.SetFont("Arial", "", 11)
	r.pdf.SetTextColor(50, 50, 50)
	r.pdf.CellFormat(contentWidth, 7, c.RecommendationText(), "LR", 1, "C", true, 0, "")
	r.pdf.CellFormat(contentWidth, 7, fmt.Sprintf("Total Savings: %s (%s)", r.money(c.Savings), savingsPercentText(c, r.format)), "LRB", 1, "C", true, 0, "")

	// Final comparison box
	r.pdf.Ln(10)
	r.pdf.SetFillColor(245, 245, 245)
	r.pdf.SetFont("Arial", "B", 12)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 8, "Final Comparison", "1", 1, "C", true, 0, "")
	r.pdf.SetFont("Arial", "", 11)
	r.pdf.SetTextColor(50, 50, 50)
	r.pdf.CellFormat(contentWidth, 7, "Annual Income: "+r.moneyFull(c.Income), "LR", 1, "C", true, 0, "")
	r.pdf.CellFormat(contentWidth, 7, fmt.Sprintf("%s Tax: %s", c.RegimeA.Name, r.moneyFull(c.ResultA.TotalTax)), "LR", 1, "C", true, 0, "")
	r.pdf.CellFormat(contentWidth, 7, fmt.Sprintf("%s Tax: %s", c.RegimeB.Name, r.moneyFull(c.ResultB.TotalTax)), "LR", 1, "C", true, 0, "")
	r.pdf.CellFormat(contentWidth, 7, fmt.Sprintf("Total Savings: %s (%s reduction)", r.moneyFull(c.Savings), savingsPercentText(c, r.format)), "LRB", 1, "C", true, 0, "")

	r.pdf.Ln(15)
	r.pdf.SetFont("Arial", "I", 9)
	r.pdf.SetTextColor(120, 120, 120)
	r.pdf.MultiCell(contentWidth, 4.5,
		"This document is for informational purposes only and does not constitute tax advice. "+
			"Surcharge, cess and rebates are not included.", "", "C", false)
}

func (r *PDFComparisonReport) addBreakdownPage() {
	c := r.report.Comparison
	r.pdf.AddPage()
	r.drawSectionHeader("Slab Breakdown")

	for _, entry := range []struct {
		regime Regime
		result TaxResult
	}{{c.RegimeA, c.ResultA}, {c.RegimeB, c.ResultB}} {
		r.pdf.SetFont("Arial", "B", 11)
		r.pdf.SetTextColor(0, 51, 102)
		r.pdf.CellFormat(contentWidth, 7, fmt.Sprintf("%s (taxable income %s after %s exemption)",
			entry.regime.Name, r.moneyFull(entry.result.TaxableIncome), r.money(entry.result.Exemption)), "", 1, "L", false, 0, "")

		widths := []float64{70, 45, 20, 45}
		r.drawTableHeader([]string{"Slab Range", "Taxable Amount", "Rate", "Tax"}, widths)
		for _, line := range entry.result.Breakdown {
			r.drawTableRow([]string{
				r.text(r.format.Range(line.Lower, line.Upper)),
				r.moneyFull(line.TaxableAmount),
				r.format.Rate(line.Rate),
				r.moneyFull(line.Tax),
			}, widths, false)
		}
		taxable, tax := entry.result.BreakdownTotals()
		r.drawTableRow([]string{"Grand Total", r.moneyFull(taxable), "", r.moneyFull(tax)}, widths, true)
		r.pdf.Ln(8)
	}
}

func (r *PDFComparisonReport) addChartsPage() error {
	c := r.report.Comparison

	comparisonPNG, err := RenderComparisonChart(c, r.format)
	if err != nil {
		return err
	}
	trendPNG, err := RenderTrendChart(r.report.Sweep, c.RegimeA, c.RegimeB, r.format)
	if err != nil {
		return err
	}

	r.pdf.AddPage()
	r.drawSectionHeader("Charts")

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	r.pdf.RegisterImageOptionsReader("comparison", opts, bytes.NewReader(comparisonPNG))
	r.pdf.RegisterImageOptionsReader("trend", opts, bytes.NewReader(trendPNG))

	r.pdf.ImageOptions("comparison", marginLeft+20, r.pdf.GetY(), contentWidth-40, 0, true, opts, 0, "")
	r.pdf.Ln(5)
	r.pdf.ImageOptions("trend", marginLeft, r.pdf.GetY(), contentWidth, 0, true, opts, 0, "")

	return r.pdf.Error()
}

func (r *PDFComparisonReport) addSweepPage() {
	sweep := r.report.Sweep
	c := r.report.Comparison

	r.pdf.AddPage()
	r.drawSectionHeader(r.text(fmt.Sprintf("Savings per %s Bracket", r.format.Money(sweep.BracketSize))))

	widths := []float64{60, 40, 40, 40}
	headers := []string{"Income Bracket", string(c.RegimeA.ID) + " Tax", string(c.RegimeB.ID) + " Tax", "Savings"}
	r.drawTableHeader(headers, widths)
	for _, p := range sweep.Points {
		// Repeat the header after an automatic page break
		if r.pdf.GetY() > 297-marginBottom-10 {
			r.pdf.AddPage()
			r.drawTableHeader(headers, widths)
		}
		r.drawTableRow([]string{
			truncateString(r.text(p.Label), 34),
			r.moneyFull(p.TaxA),
			r.moneyFull(p.TaxB),
			r.moneyFull(p.Savings),
		}, widths, false)
	}

	if best, ok := sweep.MaxSavingsPoint(); ok {
		r.pdf.Ln(5)
		r.pdf.SetFont("Arial", "I", 10)
		r.pdf.SetTextColor(80, 80, 80)
		r.pdf.CellFormat(contentWidth, 6, fmt.Sprintf("Largest saving: %s in bracket %s",
			r.money(best.Savings), r.text(best.Label)), "", 1, "L", false, 0, "")
	}
}

// Helper functions

func (r *PDFComparisonReport) drawSectionHeader(title string) {
	r.pdf.SetFont("Arial", "B", 16)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 10, title, "", 1, "L", false, 0, "")
	r.pdf.SetDrawColor(0, 51, 102)
	r.pdf.Line(marginLeft, r.pdf.GetY(), marginLeft+contentWidth, r.pdf.GetY())
	r.pdf.Ln(5)
}

func (r *PDFComparisonReport) drawTableHeader(headers []string, widths []float64) {
	r.pdf.SetFillColor(0, 51, 102)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont("Arial", "B", 9)

	for i, header := range headers {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 6, header, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *PDFComparisonReport) drawTableRow(cells []string, widths []float64, isBold bool) {
	r.pdf.SetFillColor(250, 250, 250)
	r.pdf.SetTextColor(50, 50, 50)

	if isBold {
		r.pdf.SetFont("Arial", "B", 9)
		r.pdf.SetFillColor(240, 240, 240)
	} else {
		r.pdf.SetFont("Arial", "", 9)
	}

	for i, cell := range cells {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 5, cell, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
