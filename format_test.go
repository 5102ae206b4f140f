package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatter_Amount(t *testing.T) {
	f := MustFormatter(DefaultFormatConfig())

	tests := []struct {
		amount   float64
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{12_345, "12,345"},
		{99_999, "99,999"},
		{100_000, "1.00L"},
		{1_500_000, "15.00L"},
		{9_999_999, "100.00L"},
		{10_000_000, "1.00Cr"},
		{15_000_000, "1.50Cr"},
		{-31_250, "-31,250"},
		{-1_500_000, "-15.00L"},
		{math.Inf(1), "-"},
		{math.NaN(), "-"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, f.Amount(tc.amount), "amount %v", tc.amount)
	}
}

func TestFormatter_Money(t *testing.T) {
	f := MustFormatter(DefaultFormatConfig())

	assert.Equal(t, "₹12,345", f.Money(12_345))
	assert.Equal(t, "₹15.00L", f.Money(1_500_000))
	assert.Equal(t, "-₹31,250", f.Money(-31_250))
	assert.Equal(t, "₹93,750", f.MoneyFull(93_750))
	assert.Equal(t, "-₹5,000", f.MoneyFull(-5_000))
}

func TestFormatter_Range(t *testing.T) {
	f := MustFormatter(DefaultFormatConfig())

	assert.Equal(t, "₹3.00L - ₹7.00L", f.Range(300_000, 700_000))
	assert.Equal(t, "₹0 - ₹3.00L", f.Range(0, 300_000))
	assert.Equal(t, "₹15.00L and above", f.Range(1_500_000, Unbounded))
}

func TestFormatter_RatesAndPercents(t *testing.T) {
	f := MustFormatter(DefaultFormatConfig())

	assert.Equal(t, "5%", f.Rate(0.05))
	assert.Equal(t, "30%", f.Rate(0.30))
	assert.Equal(t, "0%", f.Rate(0))
	assert.Equal(t, "25.0%", f.Percent(25))
	assert.Equal(t, "30.8%", f.Percent(30.841121))
	assert.Equal(t, "-33.3%", f.Percent(-33.3333))
}

func TestFormatter_CustomConfig(t *testing.T) {
	f, err := NewFormatter(FormatConfig{Symbol: "Rs ", Language: "en-US", LakhSuffix: " lakh", CroreSuffix: " crore"})
	require.NoError(t, err)

	assert.Equal(t, "Rs 15.00 lakh", f.Money(1_500_000))
	assert.Equal(t, "Rs 2.00 crore", f.Money(20_000_000))

	bare, err := NewFormatter(FormatConfig{})
	require.NoError(t, err)
	assert.Equal(t, "15.00L", bare.Money(1_500_000), "empty symbol is kept, suffixes default")
	assert.Equal(t, "en-IN", bare.Config().Language)
}

func TestFormatter_InvalidLanguage(t *testing.T) {
	_, err := NewFormatter(FormatConfig{Language: "not a tag!"})
	var validationErr ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "format.language", validationErr.Field)

	assert.Panics(t, func() { MustFormatter(FormatConfig{Language: "not a tag!"}) })
}

func TestFormatter_Plain(t *testing.T) {
	f := MustFormatter(DefaultFormatConfig())
	assert.Equal(t, "Rs. 15.00L - Rs. 16.00L", f.Plain(f.Range(1_500_000, 1_600_000)))

	bare := MustFormatter(FormatConfig{})
	assert.Equal(t, "15.00L", bare.Plain("15.00L"))
}
