package main

import (
	"errors"
)

// SavingsPercent expresses savings as a percentage of the baseline tax.
// It fails with ErrDivisionByZeroSavingsPercent when the baseline is zero.
func SavingsPercent(savings, baselineTax float64) (float64, error) {
	if baselineTax == 0 {
		return 0, ErrDivisionByZeroSavingsPercent
	}
	return savings / baselineTax * 100, nil
}

// Recommend prefers regime B only when it strictly saves tax; ties go to A
func Recommend(savings float64) Recommendation {
	if savings > 0 {
		return PreferRegimeB
	}
	return PreferRegimeA
}

// CompareRegimes taxes the same income under both regimes and derives the
// savings of moving from a to b
func CompareRegimes(income float64, a, b Regime) (ComparisonResult, error) {
	resultA, err := CalculateRegimeTax(income, a)
	if err != nil {
		return ComparisonResult{}, err
	}
	resultB, err := CalculateRegimeTax(income, b)
	if err != nil {
		return ComparisonResult{}, err
	}

	savings := resultA.TotalTax - resultB.TotalTax
	percent, err := SavingsPercent(savings, resultA.TotalTax)
	applicable := true
	if errors.Is(err, ErrDivisionByZeroSavingsPercent) {
		percent = 0
		applicable = false
	}

	return ComparisonResult{
		Income:                   income,
		RegimeA:                  a,
		RegimeB:                  b,
		ResultA:                  resultA,
		ResultB:                  resultB,
		Savings:                  savings,
		SavingsPercent:           percent,
		SavingsPercentApplicable: applicable,
		Recommendation:           Recommend(savings),
	}, nil
}

// Compare runs CompareRegimes on the default 2024-25 vs 2025-26 pair
func Compare(income float64) (ComparisonResult, error) {
	a, b := DefaultRegimes()
	return CompareRegimes(income, a, b)
}
