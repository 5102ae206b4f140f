package main

import (
	"math"
)

// RegimeID identifies one of the built-in tax regimes
type RegimeID string

const (
	RegimeFY2024 RegimeID = "2024-25"
	RegimeFY2025 RegimeID = "2025-26"
)

// Unbounded marks the open upper edge of the top slab
var Unbounded = math.Inf(1)

// Slab is a contiguous income range taxed at a single marginal rate.
// The lower bound is implied by the previous slab's Upper (0 for the first).
type Slab struct {
	Name  string  `yaml:"name" json:"name"`
	Upper float64 `yaml:"upper" json:"upper"`
	Rate  float64 `yaml:"rate" json:"rate"`
}

// IsUnbounded reports whether the slab has no upper limit
func (s Slab) IsUnbounded() bool {
	return math.IsInf(s.Upper, 1)
}

// SlabTable is an ordered sequence of slabs, strictly increasing by Upper
type SlabTable []Slab

// Regime is a named tax schedule: a flat exemption plus a slab table
type Regime struct {
	ID        RegimeID  `yaml:"id" json:"id"`
	Name      string    `yaml:"name" json:"name"`
	Exemption float64   `yaml:"exemption" json:"exemption"`
	Slabs     SlabTable `yaml:"slabs" json:"slabs"`
}

// TaxBreakdownLine records the tax charged inside one slab
type TaxBreakdownLine struct {
	SlabName      string
	Lower         float64
	Upper         float64 // +Inf for the top slab
	TaxableAmount float64
	Rate          float64
	Tax           float64
}

// TaxResult is the outcome of one progressive tax calculation
type TaxResult struct {
	Income        float64
	Exemption     float64
	TaxableIncome float64
	TotalTax      float64
	Breakdown     []TaxBreakdownLine
}

// Recommendation says which regime a taxpayer should choose
type Recommendation int

const (
	PreferRegimeA Recommendation = iota
	PreferRegimeB
)

// String returns a short name for the recommendation
func (r Recommendation) String() string {
	switch r {
	case PreferRegimeB:
		return "prefer-regime-b"
	default:
		return "prefer-regime-a"
	}
}

// ComparisonResult holds both regimes' results for one income
type ComparisonResult struct {
	Income         float64
	RegimeA        Regime
	RegimeB        Regime
	ResultA        TaxResult
	ResultB        TaxResult
	Savings        float64 // ResultA.TotalTax - ResultB.TotalTax
	SavingsPercent float64
	// SavingsPercentApplicable is false when regime A charges no tax,
	// in which case SavingsPercent is reported as 0
	SavingsPercentApplicable bool
	Recommendation           Recommendation
}

// RecommendationText returns the human readable advice for the comparison
func (c ComparisonResult) RecommendationText() string {
	if c.Recommendation == PreferRegimeB {
		return "Switch to " + c.RegimeB.Name
	}
	return "Stick to " + c.RegimeA.Name
}

// BracketPoint is one step of a bracket sweep
type BracketPoint struct {
	Lower   float64
	Upper   float64
	Label   string
	TaxA    float64
	TaxB    float64
	Savings float64
}

// BracketSweep is a series of bracket points ordered by increasing Lower
type BracketSweep struct {
	Income      float64
	BracketSize float64
	Points      []BracketPoint
}

// Report bundles everything the presentation layer renders for one income
type Report struct {
	CalculationID string
	Comparison    ComparisonResult
	Sweep         BracketSweep
}
