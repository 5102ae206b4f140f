package main

import (
	"fmt"
)

// standardExemption is the flat deduction both new-regime years allow
const standardExemption = 75_000

var regimeFY2024 = Regime{
	ID:        RegimeFY2024,
	Name:      "2024-25 Regime",
	Exemption: standardExemption,
	Slabs: SlabTable{
		{Name: "Nil", Upper: 300_000, Rate: 0},
		{Name: "5%", Upper: 700_000, Rate: 0.05},
		{Name: "10%", Upper: 1_000_000, Rate: 0.10},
		{Name: "15%", Upper: 1_200_000, Rate: 0.15},
		{Name: "20%", Upper: 1_500_000, Rate: 0.20},
		{Name: "30%", Upper: Unbounded, Rate: 0.30},
	},
}

var regimeFY2025 = Regime{
	ID:        RegimeFY2025,
	Name:      "2025-26 Regime",
	Exemption: standardExemption,
	Slabs: SlabTable{
		{Name: "Nil", Upper: 400_000, Rate: 0},
		{Name: "5%", Upper: 800_000, Rate: 0.05},
		{Name: "10%", Upper: 1_200_000, Rate: 0.10},
		{Name: "15%", Upper: 1_600_000, Rate: 0.15},
		{Name: "20%", Upper: 2_000_000, Rate: 0.20},
		{Name: "25%", Upper: 2_400_000, Rate: 0.25},
		{Name: "30%", Upper: Unbounded, Rate: 0.30},
	},
}

// RegimeByID returns a copy of a built-in regime
func RegimeByID(id RegimeID) (Regime, error) {
	switch id {
	case RegimeFY2024:
		return regimeFY2024.clone(), nil
	case RegimeFY2025:
		return regimeFY2025.clone(), nil
	default:
		return Regime{}, fmt.Errorf("%w: %q", ErrUnknownRegime, id)
	}
}

// KnownRegimeIDs lists the identifiers RegimeByID accepts
func KnownRegimeIDs() []RegimeID {
	return []RegimeID{RegimeFY2024, RegimeFY2025}
}

// DefaultRegimes returns the standard comparison pair: 2024-25 as A, 2025-26 as B
func DefaultRegimes() (a, b Regime) {
	return regimeFY2024.clone(), regimeFY2025.clone()
}

func (r Regime) clone() Regime {
	c := r
	c.Slabs = make(SlabTable, len(r.Slabs))
	copy(c.Slabs, r.Slabs)
	return c
}

// Validate checks the slab table invariants: at least one slab, strictly
// increasing upper bounds, an unbounded top slab, rates in [0,1) that never
// decrease, and no more than one zero-rate slab
func (t SlabTable) Validate() error {
	if len(t) == 0 {
		return ValidationError{Field: "slabs", Message: "slab table is empty"}
	}

	zeroBands := 0
	prevUpper := 0.0
	prevRate := 0.0
	for i, slab := range t {
		field := fmt.Sprintf("slabs[%d]", i)
		if slab.Rate < 0 || slab.Rate >= 1 {
			return ValidationError{Field: field, Message: fmt.Sprintf("rate must be in [0, 1) (got %g)", slab.Rate)}
		}
		if i > 0 && slab.Rate < prevRate {
			return ValidationError{Field: field, Message: "rates must not decrease"}
		}
		if slab.Upper <= prevUpper {
			return ValidationError{Field: field, Message: fmt.Sprintf("upper bound %g must exceed %g", slab.Upper, prevUpper)}
		}
		if slab.IsUnbounded() && i != len(t)-1 {
			return ValidationError{Field: field, Message: "only the last slab may be unbounded"}
		}
		if slab.Rate == 0 {
			zeroBands++
		}
		prevUpper = slab.Upper
		prevRate = slab.Rate
	}

	if zeroBands > 1 {
		return ValidationError{Field: "slabs", Message: "at most one zero-rate slab is allowed"}
	}
	if !t[len(t)-1].IsUnbounded() {
		return ValidationError{Field: fmt.Sprintf("slabs[%d]", len(t)-1), Message: "last slab must be unbounded"}
	}
	return nil
}

// Lower returns the implied lower bound of slab i
func (t SlabTable) Lower(i int) float64 {
	if i <= 0 {
		return 0
	}
	return t[i-1].Upper
}
