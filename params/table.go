package params

import "github.com/rustyeddy/bwmfi/market"

// Overrides is the pair of override sets for one timeframe.
type Overrides struct {
	Indicator IndicatorOverrides `json:"indicator" yaml:"indicator"`
	Strategy  StrategyOverrides  `json:"strategy" yaml:"strategy"`
}

// Table maps timeframes to their overrides for a single symbol.
type Table map[market.Timeframe]Overrides

// EURUSD returns the tuned EURUSD overrides for H1, M15 and M30.
func EURUSD() Table {
	return Table{
		market.H1: {
			Indicator: IndicatorOverrides{
				Shift: ptr(0),
			},
			Strategy: StrategyOverrides{
				LotSize:           ptr(0.0),
				SignalOpenMethod:  ptr(0),
				SignalOpenFilter:  ptr(1),
				SignalOpenLevel:   ptr(0.0),
				SignalOpenBoost:   ptr(0),
				SignalCloseMethod: ptr(0),
				SignalCloseLevel:  ptr(0.0),
				PriceStopMethod:   ptr(0),
				PriceStopLevel:    ptr(2.0),
				TickFilterMethod:  ptr(1),
				MaxSpread:         ptr(0.0),
			},
		},
		market.M15: {
			Indicator: IndicatorOverrides{
				Shift: ptr(0),
			},
			Strategy: StrategyOverrides{
				LotSize:           ptr(0.0),
				SignalOpenMethod:  ptr(4),
				SignalOpenFilter:  ptr(14),
				SignalOpenLevel:   ptr(1.0),
				SignalOpenBoost:   ptr(1),
				SignalCloseMethod: ptr(0),
				SignalCloseLevel:  ptr(40.0),
				PriceStopMethod:   ptr(0),
				PriceStopLevel:    ptr(40.0),
				TickFilterMethod:  ptr(1),
				MaxSpread:         ptr(0.0),
			},
		},
		market.M30: {
			Indicator: IndicatorOverrides{
				Shift: ptr(0),
			},
			Strategy: StrategyOverrides{
				LotSize:           ptr(0.0),
				SignalOpenMethod:  ptr(0),
				SignalOpenFilter:  ptr(2),
				SignalOpenLevel:   ptr(10.0),
				SignalOpenBoost:   ptr(8),
				SignalCloseMethod: ptr(0),
				SignalCloseLevel:  ptr(60.0),
				PriceStopMethod:   ptr(0),
				PriceStopLevel:    ptr(60.0),
				TickFilterMethod:  ptr(1),
				MaxSpread:         ptr(0.0),
			},
		},
	}
}
