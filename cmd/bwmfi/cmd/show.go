package cmd

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/bwmfi/market"
	"github.com/rustyeddy/bwmfi/params"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show indicator and strategy parameters",
	Long: `Print the parameter pair for every timeframe of a symbol, or for a
single timeframe.

Examples:
  bwmfi show
  bwmfi show --symbol EURUSD --timeframe M15`,
	RunE: runShow,
}

var (
	showSymbol    string
	showTimeframe string
)

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringVarP(&showSymbol, "symbol", "s", "EUR_USD", "instrument")
	showCmd.Flags().StringVarP(&showTimeframe, "timeframe", "t", "", "single timeframe (e.g. H1, M15)")
}

func runShow(cmd *cobra.Command, args []string) error {
	tfs := registry.Timeframes(showSymbol)
	if showTimeframe != "" {
		tf, err := market.ParseTimeframe(showTimeframe)
		if err != nil {
			return err
		}
		tfs = []market.Timeframe{tf}
	}
	if len(tfs) == 0 {
		return fmt.Errorf("no parameters for %s", showSymbol)
	}
	return renderPairs(cmd.OutOrStdout(), registry, showSymbol, tfs)
}

// renderPairs prints one column per timeframe and one row per field.
func renderPairs(w io.Writer, reg *params.Registry, symbol string, tfs []market.Timeframe) error {
	pairs := make([]params.Pair, 0, len(tfs))
	header := table.Row{symbol}
	for _, tf := range tfs {
		p, err := reg.Lookup(symbol, tf)
		if err != nil {
			return err
		}
		pairs = append(pairs, p)
		header = append(header, string(tf))
	}

	row := func(name string, get func(params.Pair) any) table.Row {
		r := table.Row{name}
		for _, p := range pairs {
			r = append(r, get(p))
		}
		return r
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("BWMFI parameters")
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(header)
	t.AppendRows([]table.Row{
		row("indicator.shift", func(p params.Pair) any { return p.Indicator.Shift }),
		row("indicator.max_modes", func(p params.Pair) any { return p.Indicator.MaxModes }),
		row("indicator.source_type", func(p params.Pair) any { return p.Indicator.SourceType }),
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		row("lot_size", func(p params.Pair) any { return p.Strategy.LotSize }),
		row("signal_open_method", func(p params.Pair) any { return p.Strategy.SignalOpenMethod }),
		row("signal_open_filter", func(p params.Pair) any { return p.Strategy.SignalOpenFilter }),
		row("signal_open_level", func(p params.Pair) any { return p.Strategy.SignalOpenLevel }),
		row("signal_open_boost", func(p params.Pair) any { return p.Strategy.SignalOpenBoost }),
		row("signal_close_method", func(p params.Pair) any { return p.Strategy.SignalCloseMethod }),
		row("signal_close_level", func(p params.Pair) any { return p.Strategy.SignalCloseLevel }),
		row("price_stop_method", func(p params.Pair) any { return p.Strategy.PriceStopMethod }),
		row("price_stop_level", func(p params.Pair) any { return p.Strategy.PriceStopLevel }),
		row("tick_filter_method", func(p params.Pair) any { return p.Strategy.TickFilterMethod }),
		row("max_spread", func(p params.Pair) any { return p.Strategy.MaxSpread }),
		row("shift", func(p params.Pair) any { return p.Strategy.Shift }),
		row("order_close_time", func(p params.Pair) any { return p.Strategy.OrderCloseTime }),
	})

	colCfg := []table.ColumnConfig{{Number: 1, Align: text.AlignLeft}}
	for i := range tfs {
		colCfg = append(colCfg, table.ColumnConfig{Number: i + 2, Align: text.AlignRight})
	}
	t.SetColumnConfigs(colCfg)
	t.Render()
	return nil
}
