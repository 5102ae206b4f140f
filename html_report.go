package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"time"
)

const htmlReportStyle = `
        :root {
            --primary: #2563eb;
            --success: #16a34a;
            --warning: #ea580c;
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
        .recommendation {
            background-color: #E0F7FA;
            padding: 10px;
            border-radius: 5px;
            text-align: center;
        }
        .grid { display: grid; gap: 1rem; grid-template-columns: repeat(2, 1fr); }
        @media (max-width: 768px) { .grid { grid-template-columns: 1fr; } }
        table { width: 100%; border-collapse: collapse; font-size: 0.9rem; }
        th, td { padding: 0.4rem 0.6rem; border-bottom: 1px solid var(--border); text-align: right; }
        th:first-child, td:first-child { text-align: left; }
        tr.total td { font-weight: bold; border-top: 2px solid var(--text); }
        table.regime-a tbody tr { background-color: #F0F8FF; }
        table.regime-b tbody tr { background-color: #FAFAD2; }
        table.savings tbody tr { background-color: #FFFACD; }
        td.negative { color: #dc2626; }
        img.chart { max-width: 100%; }
`

// GenerateHTMLReport writes a standalone HTML report for one income to filename
func GenerateHTMLReport(report Report, f *Formatter, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := WriteHTMLReport(file, report, f); err != nil {
		return err
	}
	reportLog.WithField("file", filename).Info("HTML report written")
	return nil
}

// GenerateHTMLReportInDir writes the report into outputDir with a dated file
// name derived from the calculation ID and returns the path
func GenerateHTMLReportInDir(report Report, f *Formatter, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", err
	}
	filename := filepath.Join(outputDir, fmt.Sprintf("tax-comparison-%s-%s.html",
		time.Now().Format("2006-01-02"), report.CalculationID))
	return filename, GenerateHTMLReport(report, f, filename)
}

// WriteHTMLReport renders the recommendation, the final comparison, both
// breakdown tables, the charts and the bracket savings table
func WriteHTMLReport(w io.Writer, report Report, f *Formatter) error {
	c := report.Comparison

	comparisonPNG, err := RenderComparisonChart(c, f)
	if err != nil {
		return err
	}
	trendPNG, err := RenderTrendChart(report.Sweep, c.RegimeA, c.RegimeB, f)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	esc := html.EscapeString

	fmt.Fprintf(&buf, `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Tax Regime Comparator: %s vs %s</title>
    <style>%s</style>
</head>
<body>
<div class="container">
    <h1>💰 Tax Regime Comparator</h1>
    <p class="subtitle">Compare %s vs %s for an annual income of %s. Calculation %s.</p>
`, esc(c.RegimeA.Name), esc(c.RegimeB.Name), htmlReportStyle,
		esc(c.RegimeA.Name), esc(c.RegimeB.Name), esc(f.MoneyFull(c.Income)), esc(report.CalculationID))

	fmt.Fprintf(&buf, `    <div class="recommendation" id="recommendation">
        <b>💡 Recommendation:</b> %s |
        <b>Total Savings:</b> %s (%s)
    </div>
`, esc(c.RecommendationText()), esc(f.Money(c.Savings)), esc(savingsPercentText(c, f)))

	fmt.Fprintf(&buf, `    <div class="card" id="final-comparison">
        <h2>📊 Final Comparison</h2>
        <ul>
            <li><b>%s Tax:</b> %s</li>
            <li><b>%s Tax:</b> %s</li>
            <li><b>Total Savings:</b> %s (%s reduction)</li>
        </ul>
        <p id="marginal-rates">Marginal rate: %s %s, %s %s</p>
    </div>
`, esc(c.RegimeA.Name), esc(f.Money(c.ResultA.TotalTax)),
		esc(c.RegimeB.Name), esc(f.Money(c.ResultB.TotalTax)),
		esc(f.Money(c.Savings)), esc(savingsPercentText(c, f)),
		esc(c.RegimeA.Name), f.Rate(MarginalRate(c.Income, c.RegimeA)),
		esc(c.RegimeB.Name), f.Rate(MarginalRate(c.Income, c.RegimeB)))

	buf.WriteString(`    <div class="grid">
`)
	writeBreakdownTableHTML(&buf, "breakdown-a", "regime-a", c.RegimeA, c.ResultA, f)
	writeBreakdownTableHTML(&buf, "breakdown-b", "regime-b", c.RegimeB, c.ResultB, f)
	buf.WriteString(`    </div>
`)

	fmt.Fprintf(&buf, `    <div class="grid">
        <div class="card">
            <h2>Tax Comparison</h2>
            <img class="chart" id="comparison-chart" alt="Tax comparison chart" src="data:image/png;base64,%s">
        </div>
        <div class="card">
            <h2>Tax Trend Analysis</h2>
            <img class="chart" id="trend-chart" alt="Tax trend chart" src="data:image/png;base64,%s">
        </div>
    </div>
`, base64.StdEncoding.EncodeToString(comparisonPNG), base64.StdEncoding.EncodeToString(trendPNG))

	writeSweepTableHTML(&buf, report.Sweep, c.RegimeA, c.RegimeB, f)

	fmt.Fprintf(&buf, `    <p class="subtitle">Generated %s</p>
</div>
</body>
</html>
`, time.Now().Format("2 January 2006 15:04"))

	_, err = w.Write(buf.Bytes())
	return err
}

func writeBreakdownTableHTML(buf *bytes.Buffer, id, class string, regime Regime, result TaxResult, f *Formatter) {
	esc := html.EscapeString
	fmt.Fprintf(buf, `        <div class="card">
            <h2>%s Breakdown</h2>
            <table id="%s" class="breakdown %s">
                <thead><tr><th>Slab Range</th><th>Taxable Amount</th><th>Rate</th><th>Tax</th></tr></thead>
                <tbody>
`, esc(regime.Name), id, class)
	for _, line := range result.Breakdown {
		fmt.Fprintf(buf, "                <tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>\n",
			esc(f.Range(line.Lower, line.Upper)), esc(f.MoneyFull(line.TaxableAmount)),
			esc(f.Rate(line.Rate)), esc(f.MoneyFull(line.Tax)))
	}
	taxable, tax := result.BreakdownTotals()
	fmt.Fprintf(buf, `                <tr class="total"><td>Grand Total</td><td>%s</td><td></td><td>%s</td></tr>
                </tbody>
            </table>
        </div>
`, esc(f.MoneyFull(taxable)), esc(f.MoneyFull(tax)))
}

func writeSweepTableHTML(buf *bytes.Buffer, sweep BracketSweep, a, b Regime, f *Formatter) {
	esc := html.EscapeString
	fmt.Fprintf(buf, `    <div class="card">
        <h2>Savings per %s Bracket</h2>
        <table id="savings-table" class="savings">
            <thead><tr><th>Income Bracket</th><th>%s Tax</th><th>%s Tax</th><th>Savings</th></tr></thead>
            <tbody>
`, esc(f.Money(sweep.BracketSize)), esc(string(a.ID)), esc(string(b.ID)))
	for _, p := range sweep.Points {
		savingsClass := ""
		if p.Savings < 0 {
			savingsClass = ` class="negative"`
		}
		fmt.Fprintf(buf, "            <tr><td>%s</td><td>%s</td><td>%s</td><td%s>%s</td></tr>\n",
			esc(p.Label), esc(f.MoneyFull(p.TaxA)), esc(f.MoneyFull(p.TaxB)), savingsClass, esc(f.MoneyFull(p.Savings)))
	}
	buf.WriteString(`            </tbody>
        </table>
    </div>
`)
}
