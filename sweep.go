package main

import (
	"fmt"
	"math"

	"github.com/samber/lo"
)

// DefaultBracketSize is the sweep step: one lakh
const DefaultBracketSize = 100_000

// maxSweepPoints caps the number of boundaries a single sweep may produce
const maxSweepPoints = 10_000

// bracketSteps is the index of the last boundary, ceil(income/size), kept in
// float64 so huge ratios can be rejected before any int conversion
func bracketSteps(income, size float64) float64 {
	return math.Ceil(income / size)
}

// buildBracketBoundaries returns 0, size, 2*size, ... up to and including the
// first boundary that is >= income. Callers bound the step count first.
func buildBracketBoundaries(income, size float64) []float64 {
	steps := int(bracketSteps(income, size))
	boundaries := make([]float64, 0, steps+1)
	for i := 0; i <= steps; i++ {
		boundaries = append(boundaries, float64(i)*size)
	}
	return boundaries
}

// RunBracketSweep recomputes both regimes at every bracket boundary from 0 up
// to income, producing the trend of tax and savings. Each point is taxed at
// its lower boundary and labelled with the half-open range [b, b+size).
func RunBracketSweep(income, bracketSize float64, a, b Regime, f *Formatter) (BracketSweep, error) {
	if err := ValidateIncome(income); err != nil {
		return BracketSweep{}, err
	}
	if math.IsNaN(bracketSize) || math.IsInf(bracketSize, 0) || bracketSize <= 0 {
		return BracketSweep{}, fmt.Errorf("%w: must be a positive number (got %g)", ErrInvalidBracketSize, bracketSize)
	}
	if steps := bracketSteps(income, bracketSize); steps+1 > maxSweepPoints {
		return BracketSweep{}, fmt.Errorf("%w: income %g in steps of %g needs %g brackets, limit is %d",
			ErrInvalidBracketSize, income, bracketSize, steps+1, maxSweepPoints)
	}

	boundaries := buildBracketBoundaries(income, bracketSize)
	points := make([]BracketPoint, 0, len(boundaries))

	for _, boundary := range boundaries {
		taxA, err := CalculateRegimeTax(boundary, a)
		if err != nil {
			return BracketSweep{}, err
		}
		taxB, err := CalculateRegimeTax(boundary, b)
		if err != nil {
			return BracketSweep{}, err
		}

		points = append(points, BracketPoint{
			Lower:   boundary,
			Upper:   boundary + bracketSize,
			Label:   f.Range(boundary, boundary+bracketSize),
			TaxA:    taxA.TotalTax,
			TaxB:    taxB.TotalTax,
			Savings: taxA.TotalTax - taxB.TotalTax,
		})
	}

	return BracketSweep{
		Income:      income,
		BracketSize: bracketSize,
		Points:      points,
	}, nil
}

// MaxSavingsPoint returns the bracket with the largest savings.
// The second return is false for an empty sweep.
func (s BracketSweep) MaxSavingsPoint() (BracketPoint, bool) {
	if len(s.Points) == 0 {
		return BracketPoint{}, false
	}
	return lo.MaxBy(s.Points, func(a, b BracketPoint) bool {
		return a.Savings > b.Savings
	}), true
}

// Boundaries returns the lower edge of every bracket
func (s BracketSweep) Boundaries() []float64 {
	return lo.Map(s.Points, func(p BracketPoint, _ int) float64 { return p.Lower })
}

// SavingsSeries returns the savings at every bracket, in order
func (s BracketSweep) SavingsSeries() []float64 {
	return lo.Map(s.Points, func(p BracketPoint, _ int) float64 { return p.Savings })
}

// BuildReport runs the comparison and the sweep for one income
func BuildReport(income float64, config *Config, f *Formatter) (Report, error) {
	a, b, err := config.Regimes()
	if err != nil {
		return Report{}, err
	}

	comparison, err := CompareRegimes(income, a, b)
	if err != nil {
		return Report{}, err
	}

	sweep, err := RunBracketSweep(income, config.Sweep.GetBracketSize(), a, b, f)
	if err != nil {
		return Report{}, err
	}

	return Report{
		CalculationID: NewCalculationID(),
		Comparison:    comparison,
		Sweep:         sweep,
	}, nil
}

// TotalSavings sums the savings across all brackets
func (s BracketSweep) TotalSavings() float64 {
	return lo.Sum(s.SavingsSeries())
}
