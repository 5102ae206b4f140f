package main

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

//go:embed default-config.yaml
var defaultConfigYAML string

// SweepConfig controls the bracket sweep
type SweepConfig struct {
	BracketSize float64 `yaml:"bracket_size" json:"bracket_size"`
}

// GetBracketSize returns the configured step, or one lakh if unset
func (s *SweepConfig) GetBracketSize() float64 {
	if s.BracketSize <= 0 {
		return DefaultBracketSize
	}
	return s.BracketSize
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `yaml:"level" json:"level"`
}

// Config is the complete application configuration
type Config struct {
	// Regime identifiers; the tables themselves are built in
	RegimeA RegimeID `yaml:"regime_a" json:"regime_a"`
	RegimeB RegimeID `yaml:"regime_b" json:"regime_b"`

	DefaultIncome float64      `yaml:"default_income" json:"default_income"`
	MaxIncome     float64      `yaml:"max_income" json:"max_income"`
	IncomeStep    float64      `yaml:"income_step" json:"income_step"`
	Presets       []float64    `yaml:"presets" json:"presets"`
	Sweep         SweepConfig  `yaml:"sweep" json:"sweep"`
	Format        FormatConfig `yaml:"format" json:"format"`
	Server        ServerConfig `yaml:"server" json:"server"`
	Log           LogConfig    `yaml:"log" json:"log"`
}

// LoadDefaultConfig parses the embedded default configuration
func LoadDefaultConfig() (*Config, error) {
	var config Config
	if err := yaml.Unmarshal([]byte(defaultConfigYAML), &config); err != nil {
		return nil, fmt.Errorf("parse default config: %w", err)
	}
	return &config, nil
}

// LoadConfig reads a YAML file on top of the embedded defaults, so a user
// file only needs the keys it changes. A missing file returns an error
// satisfying os.IsNotExist.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config, err := LoadDefaultConfig()
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, err)
	}
	return config, nil
}

// LoadConfigOrDefault is LoadConfig that falls back to the defaults when the
// file does not exist. The boolean reports whether the fallback was used.
func LoadConfigOrDefault(filename string) (*Config, bool, error) {
	config, err := LoadConfig(filename)
	if err == nil {
		return config, false, nil
	}
	if !os.IsNotExist(err) {
		return nil, false, err
	}
	config, err = LoadDefaultConfig()
	return config, true, err
}

// SaveConfig writes configuration to a YAML file
func SaveConfig(config *Config, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	header := []byte(`# Tax Regime Comparator Configuration
#
# regime_a / regime_b pick the built-in slab tables to compare
# (known: 2024-25, 2025-26). Savings are regime_a tax minus regime_b tax.
# sweep.bracket_size is the step of the trend analysis.
# format.language is a BCP 47 tag controlling digit grouping (en-IN groups in lakhs).

`)
	return os.WriteFile(filename, append(header, data...), 0644)
}

// Regimes resolves the configured identifiers to their slab tables
func (c *Config) Regimes() (a, b Regime, err error) {
	a, err = RegimeByID(c.RegimeA)
	if err != nil {
		return Regime{}, Regime{}, fmt.Errorf("regime_a: %w", err)
	}
	b, err = RegimeByID(c.RegimeB)
	if err != nil {
		return Regime{}, Regime{}, fmt.Errorf("regime_b: %w", err)
	}
	return a, b, nil
}

// Validate reports every problem with the configuration
func (c *Config) Validate() error {
	var errs []error

	for field, id := range map[string]RegimeID{"regime_a": c.RegimeA, "regime_b": c.RegimeB} {
		if !lo.Contains(KnownRegimeIDs(), id) {
			errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf("unknown regime %q (known: %v)", id, KnownRegimeIDs())})
		}
	}
	if c.RegimeA != "" && c.RegimeA == c.RegimeB {
		errs = append(errs, ValidationError{Field: "regime_b", Message: "must differ from regime_a"})
	}
	if c.Sweep.BracketSize < 0 || math.IsNaN(c.Sweep.BracketSize) {
		errs = append(errs, ValidationError{Field: "sweep.bracket_size", Message: "must be positive"})
	}
	if err := ValidateIncome(c.DefaultIncome); err != nil {
		errs = append(errs, ValidationError{Field: "default_income", Message: err.Error()})
	}
	if c.MaxIncome < 0 {
		errs = append(errs, ValidationError{Field: "max_income", Message: "cannot be negative"})
	}
	if c.IncomeStep < 0 {
		errs = append(errs, ValidationError{Field: "income_step", Message: "cannot be negative"})
	}
	for i, preset := range c.Presets {
		if err := ValidateIncome(preset); err != nil {
			errs = append(errs, ValidationError{Field: fmt.Sprintf("presets[%d]", i), Message: err.Error()})
		}
	}
	if _, err := NewFormatter(c.Format); err != nil {
		errs = append(errs, err)
	}
	if c.Log.Level != "" {
		if _, ok := logLevels[c.Log.Level]; !ok {
			errs = append(errs, ValidationError{Field: "log.level", Message: fmt.Sprintf("unknown level %q", c.Log.Level)})
		}
	}

	return errors.Join(errs...)
}

// Preset is a quick-pick income shown as a button in the UI
type Preset struct {
	Label  string  `json:"label"`
	Income float64 `json:"income"`
}

// BuildPresets labels the configured preset incomes with the formatter
func (c *Config) BuildPresets(f *Formatter) []Preset {
	return lo.Map(c.Presets, func(income float64, _ int) Preset {
		return Preset{Label: f.Money(income), Income: income}
	})
}
