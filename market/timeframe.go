package market

import (
	"fmt"
	"sort"
	"strings"
)

// Timeframe is the bar aggregation period, spelled the way OANDA names
// candle granularities.
type Timeframe string

const (
	S5  Timeframe = "S5"  // 5 seconds
	S10 Timeframe = "S10" // 10 seconds
	S15 Timeframe = "S15" // 15 seconds
	S30 Timeframe = "S30" // 30 seconds
	M1  Timeframe = "M1"  // 1 minute
	M2  Timeframe = "M2"  // 2 minutes
	M4  Timeframe = "M4"  // 4 minutes
	M5  Timeframe = "M5"  // 5 minutes
	M10 Timeframe = "M10" // 10 minutes
	M15 Timeframe = "M15" // 15 minutes
	M30 Timeframe = "M30" // 30 minutes
	H1  Timeframe = "H1"  // 1 hour
	H2  Timeframe = "H2"  // 2 hours
	H3  Timeframe = "H3"  // 3 hours
	H4  Timeframe = "H4"  // 4 hours
	H6  Timeframe = "H6"  // 6 hours
	H8  Timeframe = "H8"  // 8 hours
	H12 Timeframe = "H12" // 12 hours
	D   Timeframe = "D"   // 1 day
	W   Timeframe = "W"   // 1 week
)

var timeframeSeconds = map[Timeframe]int32{
	S5: 5, S10: 10, S15: 15, S30: 30,
	M1: 60, M2: 120, M4: 240, M5: 300, M10: 600, M15: 900, M30: 1800,
	H1: 3600, H2: 7200, H3: 10800, H4: 14400, H6: 21600, H8: 28800, H12: 43200,
	D: 86400, W: 604800,
}

// aliases covers the MetaTrader spellings that differ from OANDA's.
var aliases = map[string]Timeframe{
	"D1": D,
	"W1": W,
}

// Seconds returns the bar length, or 0 for an unknown timeframe.
func (tf Timeframe) Seconds() int32 {
	return timeframeSeconds[tf]
}

func (tf Timeframe) Valid() bool {
	_, ok := timeframeSeconds[tf]
	return ok
}

func (tf Timeframe) String() string { return string(tf) }

// ParseTimeframe accepts "H1", "h1" and "PERIOD_H1".
func ParseTimeframe(s string) (Timeframe, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	name = strings.TrimPrefix(name, "PERIOD_")
	if tf, ok := aliases[name]; ok {
		return tf, nil
	}
	tf := Timeframe(name)
	if !tf.Valid() {
		return "", fmt.Errorf("unknown timeframe: %q", s)
	}
	return tf, nil
}

// SortTimeframes orders timeframes by bar length, shortest first.
func SortTimeframes(tfs []Timeframe) {
	sort.Slice(tfs, func(i, j int) bool { return tfs[i].Seconds() < tfs[j].Seconds() })
}

// TimeframeFromSeconds maps a bar length back to its timeframe.
func TimeframeFromSeconds(sec int32) (Timeframe, error) {
	if sec <= 0 {
		return "", fmt.Errorf("invalid timeframe seconds: %d", sec)
	}
	for tf, s := range timeframeSeconds {
		if s == sec {
			return tf, nil
		}
	}
	return "", fmt.Errorf("cannot map timeframe: %d seconds", sec)
}
