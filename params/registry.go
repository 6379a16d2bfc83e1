package params

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/rustyeddy/bwmfi/market"
	"github.com/rustyeddy/bwmfi/metrics"
)

// ErrNotFound is returned by Lookup for a symbol/timeframe with no entry.
var ErrNotFound = errors.New("params: no entry")

// Key identifies one parameter pair.
type Key struct {
	Symbol    string
	Timeframe market.Timeframe
}

func (k Key) String() string { return k.Symbol + "/" + string(k.Timeframe) }

// Pair is the indicator and strategy configuration for one Key.
type Pair struct {
	Indicator IndicatorParams `json:"indicator" yaml:"indicator"`
	Strategy  StrategyParams  `json:"strategy" yaml:"strategy"`
}

// Registry holds the parameter pairs selected by the strategy engine at
// startup. It is read-only once built, so concurrent lookups need no locking.
type Registry struct {
	pairs map[Key]Pair
	log   *zap.Logger
}

type symbolTable struct {
	symbol string
	table  Table
}

type options struct {
	log       *zap.Logger
	indicator IndicatorParams
	strategy  StrategyParams
	tables    []symbolTable
}

type Option func(*options)

func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithTable adds the per-timeframe overrides for symbol. A later table for
// the same symbol replaces earlier entries timeframe by timeframe.
func WithTable(symbol string, t Table) Option {
	return func(o *options) { o.tables = append(o.tables, symbolTable{symbol: symbol, table: t}) }
}

// WithBaselines replaces the shared defaults the tables are applied to.
func WithBaselines(ind IndicatorParams, stg StrategyParams) Option {
	return func(o *options) {
		o.indicator = ind
		o.strategy = stg
	}
}

// NewRegistry builds every pair up front.
func NewRegistry(opts ...Option) (*Registry, error) {
	o := options{
		log:       zap.NewNop(),
		indicator: IndicatorDefaults(),
		strategy:  StrategyDefaults(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if err := o.indicator.Validate(); err != nil {
		return nil, fmt.Errorf("indicator baseline: %w", err)
	}
	if err := o.strategy.Validate(); err != nil {
		return nil, fmt.Errorf("strategy baseline: %w", err)
	}

	r := &Registry{pairs: make(map[Key]Pair), log: o.log}
	for _, st := range o.tables {
		sym, err := market.NormalizeSymbol(st.symbol)
		if err != nil {
			return nil, err
		}
		for tf, ov := range st.table {
			if !tf.Valid() {
				return nil, fmt.Errorf("%s: unknown timeframe: %q", sym, tf)
			}
			key := Key{Symbol: sym, Timeframe: tf}
			p := Pair{
				Indicator: NewIndicatorParams(o.indicator, tf, ov.Indicator),
				Strategy:  NewStrategyParams(o.strategy, ov.Strategy),
			}
			if err := p.Indicator.Validate(); err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			if err := p.Strategy.Validate(); err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			r.pairs[key] = p
			metrics.RegistryBuilds.Inc()
			r.log.Debug("built parameter pair",
				zap.String("symbol", sym),
				zap.String("timeframe", string(tf)),
			)
		}
	}
	return r, nil
}

// Default returns the registry with the built-in EURUSD table.
func Default() *Registry {
	r, err := NewRegistry(WithTable("EUR_USD", EURUSD()))
	if err != nil {
		panic(fmt.Sprintf("params: built-in table: %v", err))
	}
	return r
}

// Lookup returns a copy of the pair for symbol and tf.
func (r *Registry) Lookup(symbol string, tf market.Timeframe) (Pair, error) {
	sym, err := market.NormalizeSymbol(symbol)
	if err != nil {
		r.miss(unknownLabel, tf, symbol)
		return Pair{}, fmt.Errorf("%s/%s: %w", symbol, tf, ErrNotFound)
	}
	p, ok := r.pairs[Key{Symbol: sym, Timeframe: tf}]
	if !ok {
		r.miss(sym, tf, symbol)
		return Pair{}, fmt.Errorf("%s/%s: %w", sym, tf, ErrNotFound)
	}
	metrics.RegistryLookups.WithLabelValues(sym, string(tf), "hit").Inc()
	return p, nil
}

// unknownLabel replaces caller input that is not a known symbol or
// timeframe, keeping the lookup counter's label set bounded.
const unknownLabel = "unknown"

func (r *Registry) miss(symLabel string, tf market.Timeframe, symbol string) {
	tfLabel := string(tf)
	if !tf.Valid() {
		tfLabel = unknownLabel
	}
	metrics.RegistryLookups.WithLabelValues(symLabel, tfLabel, "miss").Inc()
	r.log.Warn("parameter lookup miss",
		zap.String("symbol", symbol),
		zap.String("timeframe", string(tf)),
	)
}

// Range calls fn for every pair in Keys order without touching the lookup
// counters.
func (r *Registry) Range(fn func(Key, Pair)) {
	for _, k := range r.Keys() {
		fn(k, r.pairs[k])
	}
}

// Keys returns all keys ordered by symbol, then by timeframe length.
func (r *Registry) Keys() []Key {
	keys := make([]Key, 0, len(r.pairs))
	for k := range r.pairs {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Symbol != keys[j].Symbol {
			return keys[i].Symbol < keys[j].Symbol
		}
		return keys[i].Timeframe.Seconds() < keys[j].Timeframe.Seconds()
	})
	return keys
}

// Timeframes lists the timeframes registered for symbol, shortest first.
func (r *Registry) Timeframes(symbol string) []market.Timeframe {
	sym, err := market.NormalizeSymbol(symbol)
	if err != nil {
		return nil
	}
	var tfs []market.Timeframe
	for k := range r.pairs {
		if k.Symbol == sym {
			tfs = append(tfs, k.Timeframe)
		}
	}
	market.SortTimeframes(tfs)
	return tfs
}

func (r *Registry) Len() int { return len(r.pairs) }
