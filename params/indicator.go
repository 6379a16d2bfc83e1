package params

import (
	"fmt"

	"github.com/rustyeddy/bwmfi/market"
)

// SourceBuiltin reads the indicator from the platform's own buffer.
const SourceBuiltin = "builtin"

// IndicatorParams configures one BWMFI indicator instance.
type IndicatorParams struct {
	Timeframe  market.Timeframe `json:"timeframe" yaml:"timeframe"`
	Shift      int              `json:"shift" yaml:"shift"` // bars back, 0 = current bar
	MaxModes   int              `json:"max_modes" yaml:"max_modes"`
	SourceType string           `json:"source_type" yaml:"source_type"`
}

// IndicatorDefaults returns the shared baseline every timeframe starts from.
// Each call returns a fresh value.
func IndicatorDefaults() IndicatorParams {
	return IndicatorParams{
		Shift:      0,
		MaxModes:   2,
		SourceType: SourceBuiltin,
	}
}

// IndicatorOverrides lists per-timeframe replacements. A nil field inherits
// the baseline value.
type IndicatorOverrides struct {
	Shift      *int    `json:"shift,omitempty" yaml:"shift,omitempty"`
	MaxModes   *int    `json:"max_modes,omitempty" yaml:"max_modes,omitempty"`
	SourceType *string `json:"source_type,omitempty" yaml:"source_type,omitempty"`
}

func (o IndicatorOverrides) apply(p *IndicatorParams) {
	set(&p.Shift, o.Shift)
	set(&p.MaxModes, o.MaxModes)
	set(&p.SourceType, o.SourceType)
}

// NewIndicatorParams copies base, stamps the timeframe and applies ov.
func NewIndicatorParams(base IndicatorParams, tf market.Timeframe, ov IndicatorOverrides) IndicatorParams {
	p := base
	p.Timeframe = tf
	ov.apply(&p)
	return p
}

// Overrides returns an override set that reproduces p on any baseline.
func (p IndicatorParams) Overrides() IndicatorOverrides {
	return IndicatorOverrides{
		Shift:      ptr(p.Shift),
		MaxModes:   ptr(p.MaxModes),
		SourceType: ptr(p.SourceType),
	}
}

// Validate checks the value ranges. The timeframe is not checked here since
// the baseline carries none.
func (p IndicatorParams) Validate() error {
	if p.Shift < 0 {
		return fmt.Errorf("indicator.shift must be >= 0, got %d", p.Shift)
	}
	if p.MaxModes <= 0 {
		return fmt.Errorf("indicator.max_modes must be positive, got %d", p.MaxModes)
	}
	if p.SourceType == "" {
		return fmt.Errorf("indicator.source_type is required")
	}
	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func ptr[T any](v T) *T { return &v }
