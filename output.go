package main

import (
	"fmt"
	"io"
	"strings"
)

// PrintHeader prints the banner and the regimes being compared
func PrintHeader(w io.Writer, a, b Regime, f *Formatter) {
	fmt.Fprintln(w, "╔══════════════════════════════════════════════════════════════════════════════╗")
	fmt.Fprintln(w, "║                        TAX REGIME COMPARATOR                                 ║")
	fmt.Fprintln(w, "╚══════════════════════════════════════════════════════════════════════════════╝")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Regimes:")
	fmt.Fprintln(w, "────────")
	for _, r := range []Regime{a, b} {
		fmt.Fprintf(w, "  %s: exemption %s, %d slabs, top rate %s\n",
			r.Name, f.Money(r.Exemption), len(r.Slabs), f.Rate(r.Slabs[len(r.Slabs)-1].Rate))
	}
	fmt.Fprintln(w)
}

// PrintComparison prints the recommendation bar and the final comparison
func PrintComparison(w io.Writer, c ComparisonResult, f *Formatter) {
	fmt.Fprintf(w, "Income: %s\n\n", f.MoneyFull(c.Income))

	fmt.Fprintf(w, "💡 Recommendation: %s | Total Savings: %s (%s)\n\n",
		c.RecommendationText(), f.Money(c.Savings), savingsPercentText(c, f))

	fmt.Fprintln(w, "📊 Final Comparison")
	fmt.Fprintln(w, strings.Repeat("─", 40))
	fmt.Fprintf(w, "  %-24s %14s\n", c.RegimeA.Name+" Tax:", f.Money(c.ResultA.TotalTax))
	fmt.Fprintf(w, "  %-24s %14s\n", c.RegimeB.Name+" Tax:", f.Money(c.ResultB.TotalTax))
	fmt.Fprintf(w, "  %-24s %14s  (%s reduction)\n", "Total Savings:", f.Money(c.Savings), savingsPercentText(c, f))
	fmt.Fprintf(w, "  Marginal rate: %s %s, %s %s\n",
		c.RegimeA.Name, f.Rate(MarginalRate(c.Income, c.RegimeA)),
		c.RegimeB.Name, f.Rate(MarginalRate(c.Income, c.RegimeB)))
	fmt.Fprintln(w)
}

// PrintBreakdown prints one regime's slab-by-slab table with a grand total row
func PrintBreakdown(w io.Writer, regime Regime, result TaxResult, f *Formatter) {
	fmt.Fprintf(w, "%s Tax Breakdown (taxable income %s after %s exemption)\n",
		regime.Name, f.MoneyFull(result.TaxableIncome), f.Money(result.Exemption))
	fmt.Fprintf(w, "  %-30s %16s %6s %14s\n", "Slab Range", "Taxable Amount", "Rate", "Tax")
	fmt.Fprintf(w, "  %s\n", strings.Repeat("─", 70))
	for _, line := range result.Breakdown {
		fmt.Fprintf(w, "  %-30s %16s %6s %14s\n",
			f.Range(line.Lower, line.Upper), f.MoneyFull(line.TaxableAmount), f.Rate(line.Rate), f.MoneyFull(line.Tax))
	}
	taxable, tax := result.BreakdownTotals()
	fmt.Fprintf(w, "  %s\n", strings.Repeat("─", 70))
	fmt.Fprintf(w, "  %-30s %16s %6s %14s\n", "Grand Total", f.MoneyFull(taxable), "", f.MoneyFull(tax))
	fmt.Fprintln(w)
}

// PrintSweep prints the savings for every bracket of the sweep
func PrintSweep(w io.Writer, sweep BracketSweep, a, b Regime, f *Formatter) {
	fmt.Fprintf(w, "Savings per %s Bracket\n", f.Money(sweep.BracketSize))
	fmt.Fprintf(w, "  %-26s %14s %14s %14s\n", "Income Bracket", a.ID+" Tax", b.ID+" Tax", "Savings")
	fmt.Fprintf(w, "  %s\n", strings.Repeat("─", 72))
	for _, p := range sweep.Points {
		fmt.Fprintf(w, "  %-26s %14s %14s %14s\n",
			p.Label, f.MoneyFull(p.TaxA), f.MoneyFull(p.TaxB), f.MoneyFull(p.Savings))
	}
	if best, ok := sweep.MaxSavingsPoint(); ok {
		fmt.Fprintf(w, "\n  Largest saving: %s in bracket %s\n", f.Money(best.Savings), best.Label)
		fmt.Fprintf(w, "  Total across brackets: %s\n", f.Money(sweep.TotalSavings()))
	}
	fmt.Fprintln(w)
}

// PrintReport prints the full console report for one income
func PrintReport(w io.Writer, report Report, f *Formatter) {
	c := report.Comparison
	PrintHeader(w, c.RegimeA, c.RegimeB, f)
	PrintComparison(w, c, f)
	PrintBreakdown(w, c.RegimeA, c.ResultA, f)
	PrintBreakdown(w, c.RegimeB, c.ResultB, f)
	PrintSweep(w, report.Sweep, c.RegimeA, c.RegimeB, f)
}

// savingsPercentText shows the percent, or "n/a" when regime A charges no tax
func savingsPercentText(c ComparisonResult, f *Formatter) string {
	if !c.SavingsPercentApplicable {
		return "n/a"
	}
	return f.Percent(c.SavingsPercent)
}
