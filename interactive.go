package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// incomeUnits maps accepted suffixes to their multipliers, longest first so
// "lakh" is matched before "l" and "crore" before "cr"
var incomeUnits = []struct {
	suffix     string
	multiplier float64
}{
	{"crores", crore},
	{"crore", crore},
	{"lakhs", lakh},
	{"lakh", lakh},
	{"lacs", lakh},
	{"lac", lakh},
	{"cr", crore},
	{"l", lakh},
	{"k", 1_000},
}

// ParseIncome parses income strings like "1500000", "15,00,000", "₹15L",
// "1.5 cr" or "900k". The result is checked with ValidateIncome.
func ParseIncome(input string) (float64, error) {
	s := strings.ToLower(strings.TrimSpace(input))
	for _, prefix := range []string{"₹", "rs.", "rs", "inr"} {
		s = strings.TrimPrefix(s, prefix)
	}
	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "_", "")
	s = strings.TrimSpace(s)

	multiplier := 1.0
	for _, unit := range incomeUnits {
		if strings.HasSuffix(s, unit.suffix) {
			multiplier = unit.multiplier
			s = strings.TrimSpace(strings.TrimSuffix(s, unit.suffix))
			break
		}
	}

	if s == "" {
		return 0, fmt.Errorf("%w: %q is empty", ErrInvalidIncome, input)
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidIncome, input)
	}

	income := val * multiplier
	if err := ValidateIncome(income); err != nil {
		return 0, err
	}
	return income, nil
}

// IncomePrompter asks for an income on the console, offering the configured
// presets as lettered shortcuts
type IncomePrompter struct {
	reader  *bufio.Reader
	out     io.Writer
	config  *Config
	format  *Formatter
	presets []Preset
}

// NewIncomePrompter creates a prompter reading from in and writing to out
func NewIncomePrompter(in io.Reader, out io.Writer, config *Config, f *Formatter) *IncomePrompter {
	return &IncomePrompter{
		reader:  bufio.NewReader(in),
		out:     out,
		config:  config,
		format:  f,
		presets: config.BuildPresets(f),
	}
}

// presetKey returns the shortcut letter for the i-th preset
func presetKey(i int) string {
	return string(rune('a' + i))
}

// Prompt keeps asking until a valid income is entered. An empty line picks
// the configured default income; a letter picks a preset. Input ending
// without a valid answer returns an error wrapping ErrInvalidIncome.
func (p *IncomePrompter) Prompt() (float64, error) {
	fmt.Fprintln(p.out, "Enter your annual income.")
	if len(p.presets) > 0 && len(p.presets) <= 26 {
		fmt.Fprintln(p.out, "Presets:")
		for i, preset := range p.presets {
			fmt.Fprintf(p.out, "  %s) %s\n", presetKey(i), preset.Label)
		}
	}

	for {
		fmt.Fprintf(p.out, "Income [%s]: ", p.format.MoneyFull(p.config.DefaultIncome))
		line, readErr := p.reader.ReadString('\n')
		input := strings.TrimSpace(line)

		if input == "" {
			if readErr != nil {
				return 0, fmt.Errorf("%w: no income entered", ErrInvalidIncome)
			}
			return p.config.DefaultIncome, nil
		}

		income, err := p.parse(input)
		if err == nil {
			return income, nil
		}
		fmt.Fprintf(p.out, "  ❌ Error: Invalid income input! %s\n", err)

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return 0, err
			}
			return 0, readErr
		}
	}
}

func (p *IncomePrompter) parse(input string) (float64, error) {
	if len(input) == 1 && len(p.presets) <= 26 {
		for i, preset := range p.presets {
			if strings.EqualFold(input, presetKey(i)) {
				return preset.Income, nil
			}
		}
	}
	return ParseIncome(input)
}
