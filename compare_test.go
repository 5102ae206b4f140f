package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare_DefaultPairAt15Lakh(t *testing.T) {
	c, err := Compare(1_500_000)
	require.NoError(t, err)

	assert.Equal(t, RegimeFY2024, c.RegimeA.ID)
	assert.Equal(t, RegimeFY2025, c.RegimeB.ID)
	assertTaxEquals(t, 125_000, c.ResultA.TotalTax, "regime A tax")
	assertTaxEquals(t, 93_750, c.ResultB.TotalTax, "regime B tax")
	assertTaxEquals(t, 31_250, c.Savings, "savings")
	assert.InDelta(t, 25.0, c.SavingsPercent, 1e-9)
	assert.True(t, c.SavingsPercentApplicable)
	assert.Equal(t, PreferRegimeB, c.Recommendation)
	assert.Equal(t, "Switch to 2025-26 Regime", c.RecommendationText())
}

func TestCompare_KnownSavings(t *testing.T) {
	tests := []struct {
		income  float64
		savings float64
		percent float64
	}{
		{500_000, 5_000, 80},
		{700_000, 5_000, 30.769230769},
		{2_000_000, 82_500, 30.841121495},
		{3_000_000, 110_000, 19.383259912},
	}
	for _, tc := range tests {
		c, err := Compare(tc.income)
		require.NoError(t, err)
		assertTaxEquals(t, tc.savings, c.Savings, "savings")
		assert.InDelta(t, tc.percent, c.SavingsPercent, 1e-6, "income %.0f", tc.income)
	}
}

func TestCompare_ZeroRegimeATax(t *testing.T) {
	// Both regimes charge nothing on 3L, so the percent is not defined
	for _, income := range []float64{0, 75_000, 300_000} {
		c, err := Compare(income)
		require.NoError(t, err)

		assert.Equal(t, 0.0, c.Savings)
		assert.Equal(t, 0.0, c.SavingsPercent)
		assert.False(t, c.SavingsPercentApplicable)
		assert.Equal(t, PreferRegimeA, c.Recommendation, "a tie keeps regime A")
		assert.Equal(t, "Stick to 2024-25 Regime", c.RecommendationText())
	}
}

func TestCompare_TieGoesToRegimeA(t *testing.T) {
	a, _ := DefaultRegimes()
	c, err := CompareRegimes(1_500_000, a, a)
	require.NoError(t, err)

	assert.Equal(t, 0.0, c.Savings)
	assert.True(t, c.SavingsPercentApplicable)
	assert.Equal(t, 0.0, c.SavingsPercent)
	assert.Equal(t, PreferRegimeA, c.Recommendation)
}

func TestCompare_RegimeBCostsMore(t *testing.T) {
	a, b := DefaultRegimes()
	// Swapping the pair makes B the older, more expensive regime
	c, err := CompareRegimes(1_500_000, b, a)
	require.NoError(t, err)

	assertTaxEquals(t, -31_250, c.Savings, "negative savings")
	assert.InDelta(t, -33.333333, c.SavingsPercent, 1e-5)
	assert.Equal(t, PreferRegimeA, c.Recommendation)
	assert.Equal(t, "Stick to 2025-26 Regime", c.RecommendationText())
}

func TestCompare_InvalidIncome(t *testing.T) {
	_, err := Compare(-100)
	assert.ErrorIs(t, err, ErrInvalidIncome)
}

func TestSavingsPercent(t *testing.T) {
	percent, err := SavingsPercent(31_250, 125_000)
	require.NoError(t, err)
	assert.Equal(t, 25.0, percent)

	_, err = SavingsPercent(0, 0)
	assert.ErrorIs(t, err, ErrDivisionByZeroSavingsPercent)
}

func TestRecommend(t *testing.T) {
	assert.Equal(t, PreferRegimeB, Recommend(0.01))
	assert.Equal(t, PreferRegimeA, Recommend(0))
	assert.Equal(t, PreferRegimeA, Recommend(-10))
	assert.Equal(t, "prefer-regime-b", PreferRegimeB.String())
	assert.Equal(t, "prefer-regime-a", PreferRegimeA.String())
}

func TestCompare_Idempotent(t *testing.T) {
	first, err := Compare(1_234_567)
	require.NoError(t, err)
	second, err := Compare(1_234_567)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
