package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateComparisonPDFReport(t *testing.T) {
	config, err := LoadDefaultConfig()
	require.NoError(t, err)
	f := MustFormatter(config.Format)

	for _, income := range []float64{0, 1_500_000, 25_000_000} {
		report, err := BuildReport(income, config, f)
		require.NoError(t, err)

		data, err := GenerateComparisonPDFReport(report, f)
		require.NoError(t, err, "income %.0f", income)
		assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")), "income %.0f", income)
		assert.Greater(t, len(data), 1000)
	}
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "abcdefg...", truncateString("abcdefghijklmnop", 10))
}
