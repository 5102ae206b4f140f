package main

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	lakh  = 1_00_000
	crore = 1_00_00_000
)

// FormatConfig controls how amounts are displayed. It is passed explicitly
// to a Formatter; nothing here touches process-wide locale state.
type FormatConfig struct {
	Symbol      string `yaml:"symbol" json:"symbol"`
	Language    string `yaml:"language" json:"language"` // BCP 47 tag used for digit grouping
	LakhSuffix  string `yaml:"lakh_suffix" json:"lakh_suffix"`
	CroreSuffix string `yaml:"crore_suffix" json:"crore_suffix"`
}

// DefaultFormatConfig returns the Indian rupee display convention
func DefaultFormatConfig() FormatConfig {
	return FormatConfig{
		Symbol:      "₹",
		Language:    "en-IN",
		LakhSuffix:  "L",
		CroreSuffix: "Cr",
	}
}

// Formatter renders amounts in thousands, lakhs or crores
type Formatter struct {
	config  FormatConfig
	printer *message.Printer
}

// NewFormatter builds a Formatter. An empty language or suffix falls back to
// the default; an empty symbol is kept so amounts can be shown bare.
func NewFormatter(config FormatConfig) (*Formatter, error) {
	defaults := DefaultFormatConfig()
	if config.Language == "" {
		config.Language = defaults.Language
	}
	if config.LakhSuffix == "" {
		config.LakhSuffix = defaults.LakhSuffix
	}
	if config.CroreSuffix == "" {
		config.CroreSuffix = defaults.CroreSuffix
	}

	tag, err := language.Parse(config.Language)
	if err != nil {
		return nil, ValidationError{Field: "format.language", Message: fmt.Sprintf("invalid language tag %q: %v", config.Language, err)}
	}

	return &Formatter{
		config:  config,
		printer: message.NewPrinter(tag),
	}, nil
}

// MustFormatter is NewFormatter for configurations known to be valid
func MustFormatter(config FormatConfig) *Formatter {
	f, err := NewFormatter(config)
	if err != nil {
		panic(err)
	}
	return f
}

// Config returns the configuration the formatter was built with
func (f *Formatter) Config() FormatConfig {
	return f.config
}

// Amount formats a number without currency symbol.
// Below one lakh the value is grouped with no suffix; below one crore it is
// shown in lakhs with two decimals; above that in crores.
func (f *Formatter) Amount(amount float64) string {
	if math.IsInf(amount, 0) || math.IsNaN(amount) {
		return "-"
	}
	if amount < 0 {
		return "-" + f.Amount(-amount)
	}

	switch {
	case amount < lakh:
		return f.printer.Sprintf("%.0f", amount)
	case amount < crore:
		return f.printer.Sprintf("%.2f", amount/lakh) + f.config.LakhSuffix
	default:
		return f.printer.Sprintf("%.2f", amount/crore) + f.config.CroreSuffix
	}
}

// Money formats an amount with the currency symbol in front
func (f *Formatter) Money(amount float64) string {
	if amount < 0 {
		return "-" + f.config.Symbol + f.Amount(-amount)
	}
	return f.config.Symbol + f.Amount(amount)
}

// MoneyFull formats an amount with grouping and no lakh/crore abbreviation
func (f *Formatter) MoneyFull(amount float64) string {
	if amount < 0 {
		return "-" + f.config.Symbol + f.printer.Sprintf("%.0f", -amount)
	}
	return f.config.Symbol + f.printer.Sprintf("%.0f", amount)
}

// Range formats a half-open income range like "₹3.00L - ₹7.00L"
func (f *Formatter) Range(lower, upper float64) string {
	if math.IsInf(upper, 1) {
		return f.Money(lower) + " and above"
	}
	return f.Money(lower) + " - " + f.Money(upper)
}

// Rate formats a marginal rate fraction as a whole percentage
func (f *Formatter) Rate(rate float64) string {
	return fmt.Sprintf("%.0f%%", rate*100)
}

// Percent formats a percentage value (already multiplied by 100) with one decimal
func (f *Formatter) Percent(percent float64) string {
	return fmt.Sprintf("%.1f%%", percent)
}

// Plain replaces the currency symbol with an ASCII code for outputs whose
// fonts cannot draw it
func (f *Formatter) Plain(s string) string {
	if f.config.Symbol == "" || f.config.Symbol == "Rs. " {
		return s
	}
	return strings.ReplaceAll(s, f.config.Symbol, "Rs. ")
}
