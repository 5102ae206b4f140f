package main

import (
	"bytes"
	"fmt"
	"math"

	"github.com/samber/lo"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	colorBarA     = drawing.ColorFromHex("FFB3BA")
	colorBarB     = drawing.ColorFromHex("C2EABD")
	colorBarSaved = drawing.ColorFromHex("FFDFBA")

	colorTrendA     = drawing.ColorFromHex("1f77b4")
	colorTrendB     = drawing.ColorFromHex("ff7f0e")
	colorTrendSaved = drawing.ColorFromHex("2ca02c")
)

// moneyTicks formats axis values with the formatter, minus the currency glyph
// the chart font cannot draw
func moneyTicks(f *Formatter) chart.ValueFormatter {
	return func(v interface{}) string {
		if value, ok := v.(float64); ok {
			return f.Plain(f.Money(value))
		}
		return ""
	}
}

// paddedRange returns a non-degenerate axis range that always includes 0
func paddedRange(values []float64) *chart.ContinuousRange {
	lowest := math.Min(0, lo.Min(values))
	highest := math.Max(0, lo.Max(values))
	if highest-lowest < 1 {
		highest = lowest + 1
	}
	margin := (highest - lowest) * 0.1
	if lowest < 0 {
		lowest -= margin
	}
	return &chart.ContinuousRange{Min: lowest, Max: highest + margin}
}

// RenderComparisonChart draws regime A tax, regime B tax and the savings as
// three bars and returns the PNG bytes
func RenderComparisonChart(c ComparisonResult, f *Formatter) ([]byte, error) {
	values := []float64{c.ResultA.TotalTax, c.ResultB.TotalTax, c.Savings}

	bc := chart.BarChart{
		Title:        fmt.Sprintf("Tax Comparison & Savings (Grand Total Savings: %s)", f.Plain(f.Money(c.Savings))),
		TitleStyle:   chart.Style{FontSize: 11},
		Width:        640,
		Height:       400,
		BarWidth:     110,
		UseBaseValue: true,
		BaseValue:    0,
		Background:   chart.Style{Padding: chart.Box{Top: 50, Left: 10, Right: 10, Bottom: 10}},
		YAxis: chart.YAxis{
			Range:          paddedRange(values),
			ValueFormatter: moneyTicks(f),
		},
		Bars: []chart.Value{
			{
				Value: c.ResultA.TotalTax,
				Label: fmt.Sprintf("%s: %s", c.RegimeA.ID, f.Plain(f.Money(c.ResultA.TotalTax))),
				Style: chart.Style{FillColor: colorBarA, StrokeColor: colorBarA},
			},
			{
				Value: c.ResultB.TotalTax,
				Label: fmt.Sprintf("%s: %s", c.RegimeB.ID, f.Plain(f.Money(c.ResultB.TotalTax))),
				Style: chart.Style{FillColor: colorBarB, StrokeColor: colorBarB},
			},
			{
				Value: c.Savings,
				Label: "Savings: " + f.Plain(f.Money(c.Savings)),
				Style: chart.Style{FillColor: colorBarSaved, StrokeColor: colorBarSaved},
			},
		},
	}

	var buf bytes.Buffer
	if err := bc.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render comparison chart: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderTrendChart draws both regimes' tax across the sweep on the primary
// axis and the savings on a secondary axis, returning PNG bytes
func RenderTrendChart(sweep BracketSweep, a, b Regime, f *Formatter) ([]byte, error) {
	if len(sweep.Points) == 0 {
		return nil, fmt.Errorf("render trend chart: sweep has no points")
	}

	xs := sweep.Boundaries()
	taxA := lo.Map(sweep.Points, func(p BracketPoint, _ int) float64 { return p.TaxA })
	taxB := lo.Map(sweep.Points, func(p BracketPoint, _ int) float64 { return p.TaxB })
	savings := sweep.SavingsSeries()

	xMax := math.Max(xs[len(xs)-1], sweep.BracketSize)

	ch := chart.Chart{
		Title:      "Tax Trend Analysis",
		TitleStyle: chart.Style{FontSize: 12},
		Width:      800,
		Height:     400,
		Background: chart.Style{Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:           "Income",
			Range:          &chart.ContinuousRange{Min: 0, Max: xMax},
			ValueFormatter: moneyTicks(f),
		},
		YAxis: chart.YAxis{
			Name:           "Tax Amount",
			Range:          paddedRange(append(append([]float64{}, taxA...), taxB...)),
			ValueFormatter: moneyTicks(f),
		},
		YAxisSecondary: chart.YAxis{
			Name:           "Savings",
			Range:          paddedRange(savings),
			ValueFormatter: moneyTicks(f),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    a.Name + " Tax",
				XValues: xs,
				YValues: taxA,
				Style:   chart.Style{StrokeColor: colorTrendA, StrokeWidth: 2},
			},
			chart.ContinuousSeries{
				Name:    b.Name + " Tax",
				XValues: xs,
				YValues: taxB,
				Style:   chart.Style{StrokeColor: colorTrendB, StrokeWidth: 2},
			},
			chart.ContinuousSeries{
				Name:    "Savings",
				YAxis:   chart.YAxisSecondary,
				XValues: xs,
				YValues: savings,
				Style:   chart.Style{StrokeColor: colorTrendSaved, StrokeWidth: 2},
			},
		},
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render trend chart: %w", err)
	}
	return buf.Bytes(), nil
}
