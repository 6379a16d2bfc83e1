package params

import (
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/bwmfi/market"
	"github.com/rustyeddy/bwmfi/metrics"
)

func lookup(t *testing.T, r *Registry, tf market.Timeframe) Pair {
	t.Helper()
	p, err := r.Lookup("EURUSD", tf)
	require.NoError(t, err)
	return p
}

func TestDefaultRegistryTimeframes(t *testing.T) {
	r := Default()
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []market.Timeframe{market.M15, market.M30, market.H1}, r.Timeframes("EUR_USD"))

	ind := IndicatorDefaults()
	stg := StrategyDefaults()
	for _, tf := range []market.Timeframe{market.H1, market.M15, market.M30} {
		p := lookup(t, r, tf)
		assert.Equal(t, tf, p.Indicator.Timeframe)
		assert.Equal(t, 0, p.Indicator.Shift)
		assert.Equal(t, ind.MaxModes, p.Indicator.MaxModes)
		assert.Equal(t, ind.SourceType, p.Indicator.SourceType)

		assert.Equal(t, 1, p.Strategy.TickFilterMethod)
		assert.Equal(t, 0.0, p.Strategy.LotSize)
		assert.Equal(t, 0.0, p.Strategy.MaxSpread)
		assert.Equal(t, 0, p.Strategy.SignalCloseMethod)
		assert.Equal(t, 0, p.Strategy.PriceStopMethod)
		assert.Equal(t, stg.Shift, p.Strategy.Shift)
		assert.Equal(t, stg.OrderCloseTime, p.Strategy.OrderCloseTime)
	}
}

func TestDefaultRegistryScenarios(t *testing.T) {
	r := Default()

	h1 := lookup(t, r, market.H1).Strategy
	assert.Equal(t, 0, h1.SignalOpenMethod)
	assert.Equal(t, 1, h1.SignalOpenFilter)
	assert.Equal(t, 0.0, h1.SignalOpenLevel)
	assert.Equal(t, 0, h1.SignalOpenBoost)
	assert.Equal(t, 0.0, h1.SignalCloseLevel)
	assert.Equal(t, 2.0, h1.PriceStopLevel)
	assert.Equal(t, 0.0, h1.MaxSpread)

	m15 := lookup(t, r, market.M15).Strategy
	assert.Equal(t, 4, m15.SignalOpenMethod)
	assert.Equal(t, 14, m15.SignalOpenFilter)
	assert.Equal(t, 1.0, m15.SignalOpenLevel)
	assert.Equal(t, 1, m15.SignalOpenBoost)
	assert.Equal(t, 40.0, m15.SignalCloseLevel)
	assert.Equal(t, 40.0, m15.PriceStopLevel)

	m30 := lookup(t, r, market.M30).Strategy
	assert.Equal(t, 0, m30.SignalOpenMethod)
	assert.Equal(t, 2, m30.SignalOpenFilter)
	assert.Equal(t, 10.0, m30.SignalOpenLevel)
	assert.Equal(t, 8, m30.SignalOpenBoost)
	assert.Equal(t, 60.0, m30.SignalCloseLevel)
	assert.Equal(t, 60.0, m30.PriceStopLevel)
}

func TestRegistryIdempotent(t *testing.T) {
	a, b := Default(), Default()
	for _, k := range a.Keys() {
		pa, err := a.Lookup(k.Symbol, k.Timeframe)
		require.NoError(t, err)
		pb, err := b.Lookup(k.Symbol, k.Timeframe)
		require.NoError(t, err)
		assert.Equal(t, pa, pb, k.String())
	}
}

func TestRegistryIndependence(t *testing.T) {
	r := Default()

	h1 := lookup(t, r, market.H1)
	h1.Strategy.SignalOpenFilter = 99
	h1.Indicator.Shift = 7

	assert.Equal(t, 1, lookup(t, r, market.H1).Strategy.SignalOpenFilter)
	assert.Equal(t, 0, lookup(t, r, market.H1).Indicator.Shift)
	assert.Equal(t, 14, lookup(t, r, market.M15).Strategy.SignalOpenFilter)
	assert.Equal(t, 1, StrategyDefaults().SignalOpenFilter)
}

func TestRegistryLookupMiss(t *testing.T) {
	r := Default()

	_, err := r.Lookup("EUR_USD", market.H4)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = r.Lookup("GBP_USD", market.H1)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = r.Lookup("nonsense", market.H1)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.Nil(t, r.Timeframes("nonsense"))
}

func TestNewRegistryErrors(t *testing.T) {
	_, err := NewRegistry(WithTable("XXXYYY", EURUSD()))
	assert.ErrorContains(t, err, "unknown instrument")

	_, err = NewRegistry(WithTable("EURUSD", Table{"H5": {}}))
	assert.ErrorContains(t, err, "unknown timeframe")

	bad := StrategyDefaults()
	bad.MaxSpread = -1
	_, err = NewRegistry(WithBaselines(IndicatorDefaults(), bad), WithTable("EURUSD", EURUSD()))
	assert.ErrorContains(t, err, "strategy baseline")

	_, err = NewRegistry(WithTable("EURUSD", Table{
		market.H1: {Strategy: StrategyOverrides{LotSize: ptr(-1.0)}},
	}))
	assert.ErrorContains(t, err, "EUR_USD/H1")
}

func TestRegistryCustomBaselineAndMerge(t *testing.T) {
	stg := StrategyDefaults()
	stg.OrderCloseTime = 120
	r, err := NewRegistry(
		WithBaselines(IndicatorDefaults(), stg),
		WithTable("EURUSD", EURUSD()),
		WithTable("EUR/USD", Table{market.H1: {Strategy: StrategyOverrides{SignalOpenMethod: ptr(2)}}}),
		WithTable("GBPUSD", Table{market.H4: {}}),
	)
	require.NoError(t, err)

	h1, err := r.Lookup("EURUSD", market.H1)
	require.NoError(t, err)
	assert.Equal(t, 2, h1.Strategy.SignalOpenMethod)
	assert.Equal(t, 120, h1.Strategy.OrderCloseTime)
	assert.Equal(t, 4.0, h1.Strategy.MaxSpread, "replacement table did not override max_spread")

	gbp, err := r.Lookup("GBP_USD", market.H4)
	require.NoError(t, err)
	assert.Equal(t, stg, gbp.Strategy)

	assert.Equal(t, []Key{
		{Symbol: "EUR_USD", Timeframe: market.M15},
		{Symbol: "EUR_USD", Timeframe: market.M30},
		{Symbol: "EUR_USD", Timeframe: market.H1},
		{Symbol: "GBP_USD", Timeframe: market.H4},
	}, r.Keys())
}

func TestRegistryConcurrentLookups(t *testing.T) {
	r := Default()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, tf := range r.Timeframes("EURUSD") {
				p, err := r.Lookup("EURUSD", tf)
				assert.NoError(t, err)
				assert.Equal(t, tf, p.Indicator.Timeframe)
			}
		}()
	}
	wg.Wait()
}

func lookupCount(sym, tf, result string) float64 {
	return testutil.ToFloat64(metrics.RegistryLookups.WithLabelValues(sym, tf, result))
}

func TestRegistryBuildsCounted(t *testing.T) {
	before := testutil.ToFloat64(metrics.RegistryBuilds)
	Default()
	assert.Equal(t, before+3, testutil.ToFloat64(metrics.RegistryBuilds))
}

func TestRegistryLookupsCounted(t *testing.T) {
	r := Default()

	hits := lookupCount("EUR_USD", "H1", "hit")
	_, err := r.Lookup("EURUSD", market.H1)
	require.NoError(t, err)
	assert.Equal(t, hits+1, lookupCount("EUR_USD", "H1", "hit"))

	misses := lookupCount("EUR_USD", "H4", "miss")
	_, err = r.Lookup("EURUSD", market.H4)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, misses+1, lookupCount("EUR_USD", "H4", "miss"))
}

func TestRegistryLookupMissLabelsBounded(t *testing.T) {
	r := Default()

	series := testutil.CollectAndCount(metrics.RegistryLookups)
	unknown := lookupCount("unknown", "H1", "miss")
	for _, sym := range []string{"junk-1", "junk-2", "junk-3"} {
		_, err := r.Lookup(sym, market.H1)
		assert.ErrorIs(t, err, ErrNotFound)
	}
	assert.Equal(t, unknown+3, lookupCount("unknown", "H1", "miss"))

	unknownTF := lookupCount("EUR_USD", "unknown", "miss")
	_, err := r.Lookup("EURUSD", market.Timeframe("H99"))
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, unknownTF+1, lookupCount("EUR_USD", "unknown", "miss"))

	// At most the two "unknown" series were added.
	assert.LessOrEqual(t, testutil.CollectAndCount(metrics.RegistryLookups), series+2)
}

func TestRegistryRange(t *testing.T) {
	r := Default()
	hits := lookupCount("EUR_USD", "M15", "hit")

	var keys []Key
	r.Range(func(k Key, p Pair) {
		keys = append(keys, k)
		assert.Equal(t, k.Timeframe, p.Indicator.Timeframe)
	})
	assert.Equal(t, r.Keys(), keys)
	assert.Equal(t, hits, lookupCount("EUR_USD", "M15", "hit"), "Range must not count as a lookup")
}
