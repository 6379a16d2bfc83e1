package params

import "fmt"

// StrategyParams holds the trading behaviour knobs consumed by the strategy
// engine. Method fields are engine-defined codes; a zero LotSize means
// platform auto-sizing and a zero MaxSpread means no spread cap.
type StrategyParams struct {
	LotSize           float64 `json:"lot_size" yaml:"lot_size"`
	SignalOpenMethod  int     `json:"signal_open_method" yaml:"signal_open_method"`
	SignalOpenFilter  int     `json:"signal_open_filter" yaml:"signal_open_filter"`
	SignalOpenLevel   float64 `json:"signal_open_level" yaml:"signal_open_level"`
	SignalOpenBoost   int     `json:"signal_open_boost" yaml:"signal_open_boost"`
	SignalCloseMethod int     `json:"signal_close_method" yaml:"signal_close_method"`
	SignalCloseLevel  float64 `json:"signal_close_level" yaml:"signal_close_level"`
	PriceStopMethod   int     `json:"price_stop_method" yaml:"price_stop_method"`
	PriceStopLevel    float64 `json:"price_stop_level" yaml:"price_stop_level"`
	TickFilterMethod  int     `json:"tick_filter_method" yaml:"tick_filter_method"`
	MaxSpread         float64 `json:"max_spread" yaml:"max_spread"`

	Shift          int `json:"shift" yaml:"shift"`
	OrderCloseTime int `json:"order_close_time" yaml:"order_close_time"` // minutes; negative counts bars
}

// StrategyDefaults returns the shared strategy baseline. Each call returns a
// fresh value.
func StrategyDefaults() StrategyParams {
	return StrategyParams{
		LotSize:           0,
		SignalOpenMethod:  0,
		SignalOpenFilter:  1,
		SignalOpenLevel:   0,
		SignalOpenBoost:   0,
		SignalCloseMethod: 0,
		SignalCloseLevel:  0,
		PriceStopMethod:   0,
		PriceStopLevel:    2,
		TickFilterMethod:  1,
		MaxSpread:         4,
		Shift:             0,
		OrderCloseTime:    -20,
	}
}

// StrategyOverrides mirrors StrategyParams with optional fields. A non-nil
// pointer is the whole effective value, including an explicit zero.
type StrategyOverrides struct {
	LotSize           *float64 `json:"lot_size,omitempty" yaml:"lot_size,omitempty"`
	SignalOpenMethod  *int     `json:"signal_open_method,omitempty" yaml:"signal_open_method,omitempty"`
	SignalOpenFilter  *int     `json:"signal_open_filter,omitempty" yaml:"signal_open_filter,omitempty"`
	SignalOpenLevel   *float64 `json:"signal_open_level,omitempty" yaml:"signal_open_level,omitempty"`
	SignalOpenBoost   *int     `json:"signal_open_boost,omitempty" yaml:"signal_open_boost,omitempty"`
	SignalCloseMethod *int     `json:"signal_close_method,omitempty" yaml:"signal_close_method,omitempty"`
	SignalCloseLevel  *float64 `json:"signal_close_level,omitempty" yaml:"signal_close_level,omitempty"`
	PriceStopMethod   *int     `json:"price_stop_method,omitempty" yaml:"price_stop_method,omitempty"`
	PriceStopLevel    *float64 `json:"price_stop_level,omitempty" yaml:"price_stop_level,omitempty"`
	TickFilterMethod  *int     `json:"tick_filter_method,omitempty" yaml:"tick_filter_method,omitempty"`
	MaxSpread         *float64 `json:"max_spread,omitempty" yaml:"max_spread,omitempty"`
	Shift             *int     `json:"shift,omitempty" yaml:"shift,omitempty"`
	OrderCloseTime    *int     `json:"order_close_time,omitempty" yaml:"order_close_time,omitempty"`
}

func (o StrategyOverrides) apply(p *StrategyParams) {
	set(&p.LotSize, o.LotSize)
	set(&p.SignalOpenMethod, o.SignalOpenMethod)
	set(&p.SignalOpenFilter, o.SignalOpenFilter)
	set(&p.SignalOpenLevel, o.SignalOpenLevel)
	set(&p.SignalOpenBoost, o.SignalOpenBoost)
	set(&p.SignalCloseMethod, o.SignalCloseMethod)
	set(&p.SignalCloseLevel, o.SignalCloseLevel)
	set(&p.PriceStopMethod, o.PriceStopMethod)
	set(&p.PriceStopLevel, o.PriceStopLevel)
	set(&p.TickFilterMethod, o.TickFilterMethod)
	set(&p.MaxSpread, o.MaxSpread)
	set(&p.Shift, o.Shift)
	set(&p.OrderCloseTime, o.OrderCloseTime)
}

// NewStrategyParams copies base and applies ov.
func NewStrategyParams(base StrategyParams, ov StrategyOverrides) StrategyParams {
	p := base
	ov.apply(&p)
	return p
}

// Overrides returns an override set that reproduces p on any baseline.
func (p StrategyParams) Overrides() StrategyOverrides {
	return StrategyOverrides{
		LotSize:           ptr(p.LotSize),
		SignalOpenMethod:  ptr(p.SignalOpenMethod),
		SignalOpenFilter:  ptr(p.SignalOpenFilter),
		SignalOpenLevel:   ptr(p.SignalOpenLevel),
		SignalOpenBoost:   ptr(p.SignalOpenBoost),
		SignalCloseMethod: ptr(p.SignalCloseMethod),
		SignalCloseLevel:  ptr(p.SignalCloseLevel),
		PriceStopMethod:   ptr(p.PriceStopMethod),
		PriceStopLevel:    ptr(p.PriceStopLevel),
		TickFilterMethod:  ptr(p.TickFilterMethod),
		MaxSpread:         ptr(p.MaxSpread),
		Shift:             ptr(p.Shift),
		OrderCloseTime:    ptr(p.OrderCloseTime),
	}
}

// Validate checks the fields that have a physical lower bound. Method codes
// are left to the engine.
func (p StrategyParams) Validate() error {
	if p.LotSize < 0 {
		return fmt.Errorf("strategy.lot_size must be >= 0, got %g", p.LotSize)
	}
	if p.PriceStopLevel < 0 {
		return fmt.Errorf("strategy.price_stop_level must be >= 0, got %g", p.PriceStopLevel)
	}
	if p.MaxSpread < 0 {
		return fmt.Errorf("strategy.max_spread must be >= 0, got %g", p.MaxSpread)
	}
	if p.Shift < 0 {
		return fmt.Errorf("strategy.shift must be >= 0, got %d", p.Shift)
	}
	return nil
}
