package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIncome(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"1500000", 1_500_000},
		{"15,00,000", 1_500_000},
		{"1,500,000", 1_500_000},
		{"₹15L", 1_500_000},
		{"15 lakh", 1_500_000},
		{"15 Lakhs", 1_500_000},
		{"15lac", 1_500_000},
		{"1.5cr", 15_000_000},
		{"2 crore", 20_000_000},
		{"900k", 900_000},
		{"Rs. 7,00,000", 700_000},
		{"INR 0", 0},
		{"  42  ", 42},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			income, err := ParseIncome(tc.input)
			require.NoError(t, err)
			assert.InDelta(t, tc.expected, income, 1e-6)
		})
	}
}

func TestParseIncome_Invalid(t *testing.T) {
	for _, input := range []string{"", "abc", "-5", "-1L", "L", "NaN", "Inf", "12x"} {
		_, err := ParseIncome(input)
		assert.ErrorIs(t, err, ErrInvalidIncome, "input %q", input)
	}
}

func newTestPrompter(t *testing.T, input string) (*IncomePrompter, *bytes.Buffer) {
	t.Helper()
	config, err := LoadDefaultConfig()
	require.NoError(t, err)
	var out bytes.Buffer
	return NewIncomePrompter(strings.NewReader(input), &out, config, MustFormatter(config.Format)), &out
}

func TestIncomePrompter(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{"empty line picks the default", "\n", 1_500_000},
		{"preset letter", "c\n", 1_500_000},
		{"upper-case preset letter", "F\n", 3_000_000},
		{"typed amount", "12L\n", 1_200_000},
		{"retry after invalid input", "lots\n-3\n9,00,000\n", 900_000},
		{"last line without newline", "2cr", 20_000_000},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, _ := newTestPrompter(t, tc.input)
			income, err := p.Prompt()
			require.NoError(t, err)
			assert.Equal(t, tc.expected, income)
		})
	}
}

func TestIncomePrompter_ShowsPresetsAndErrors(t *testing.T) {
	p, out := newTestPrompter(t, "oops\n500000\n")
	_, err := p.Prompt()
	require.NoError(t, err)

	assert.Contains(t, out.String(), "a) ₹5.00L")
	assert.Contains(t, out.String(), "f) ₹30.00L")
	assert.Contains(t, out.String(), "❌ Error: Invalid income input!")
}

func TestIncomePrompter_EndOfInput(t *testing.T) {
	p, _ := newTestPrompter(t, "")
	_, err := p.Prompt()
	assert.ErrorIs(t, err, ErrInvalidIncome)

	p, _ = newTestPrompter(t, "bad")
	_, err = p.Prompt()
	assert.ErrorIs(t, err, ErrInvalidIncome)
}
