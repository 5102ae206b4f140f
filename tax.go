package main

import (
	"fmt"
	"math"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// ValidateIncome rejects incomes the calculator cannot charge: negative,
// NaN or infinite values
func ValidateIncome(income float64) error {
	if math.IsNaN(income) || math.IsInf(income, 0) {
		return fmt.Errorf("%w: income must be a finite number", ErrInvalidIncome)
	}
	if income < 0 {
		return fmt.Errorf("%w: income cannot be negative (got %.2f)", ErrInvalidIncome, income)
	}
	return nil
}

// CalculateTax computes progressive tax on income after deducting the exemption.
//
// Slabs are walked in order; every slab the taxable income reaches produces
// one breakdown line, including zero-rate slabs. The first slab is always
// reached, so an income inside the exemption yields a single line with a zero
// taxable amount. Slab arithmetic is done in decimal so the breakdown sums
// exactly to TotalTax.
func CalculateTax(income float64, table SlabTable, exemption float64) (TaxResult, error) {
	if err := ValidateIncome(income); err != nil {
		return TaxResult{}, err
	}
	if math.IsNaN(exemption) || math.IsInf(exemption, 0) || exemption < 0 {
		return TaxResult{}, ValidationError{Field: "exemption", Message: fmt.Sprintf("exemption must be a non-negative number (got %g)", exemption)}
	}

	taxable := decimal.NewFromFloat(income).Sub(decimal.NewFromFloat(exemption))
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}

	breakdown := make([]TaxBreakdownLine, 0, len(table))
	total := decimal.Zero
	prev := decimal.Zero

	for i, slab := range table {
		if i > 0 && !taxable.GreaterThan(prev) {
			break
		}

		inSlab := taxable
		if !slab.IsUnbounded() {
			inSlab = decimal.Min(taxable, decimal.NewFromFloat(slab.Upper))
		}
		inSlab = inSlab.Sub(prev)
		if inSlab.IsNegative() {
			inSlab = decimal.Zero
		}

		slabTax := inSlab.Mul(decimal.NewFromFloat(slab.Rate))
		total = total.Add(slabTax)

		breakdown = append(breakdown, TaxBreakdownLine{
			SlabName:      slab.Name,
			Lower:         prev.InexactFloat64(),
			Upper:         slab.Upper,
			TaxableAmount: inSlab.InexactFloat64(),
			Rate:          slab.Rate,
			Tax:           slabTax.InexactFloat64(),
		})

		if slab.IsUnbounded() {
			break
		}
		prev = decimal.NewFromFloat(slab.Upper)
	}

	return TaxResult{
		Income:        income,
		Exemption:     exemption,
		TaxableIncome: taxable.InexactFloat64(),
		TotalTax:      total.InexactFloat64(),
		Breakdown:     breakdown,
	}, nil
}

// CalculateRegimeTax is CalculateTax using the regime's own slabs and exemption
func CalculateRegimeTax(income float64, regime Regime) (TaxResult, error) {
	return CalculateTax(income, regime.Slabs, regime.Exemption)
}

// MarginalRate returns the rate charged on the next unit of income.
// Incomes inside the exemption have a marginal rate of 0.
func MarginalRate(income float64, regime Regime) float64 {
	taxable := income - regime.Exemption
	if taxable < 0 {
		return 0
	}
	for _, slab := range regime.Slabs {
		if taxable < slab.Upper {
			return slab.Rate
		}
	}
	// Above all slabs, return the highest rate
	if len(regime.Slabs) > 0 {
		return regime.Slabs[len(regime.Slabs)-1].Rate
	}
	return 0
}

// EffectiveRate returns total tax as a fraction of gross income
func (r TaxResult) EffectiveRate() float64 {
	if r.Income <= 0 {
		return 0
	}
	return r.TotalTax / r.Income
}

// BreakdownTotals sums the taxable amount and tax across all breakdown lines
func (r TaxResult) BreakdownTotals() (taxable, tax float64) {
	taxable = lo.SumBy(r.Breakdown, func(line TaxBreakdownLine) float64 { return line.TaxableAmount })
	tax = lo.SumBy(r.Breakdown, func(line TaxBreakdownLine) float64 { return line.Tax })
	return taxable, tax
}
