// market/instruments.go
package market

import (
	"fmt"
	"strings"
)

type InstrumentMeta struct {
	Name          string
	BaseCurrency  string
	QuoteCurrency string
	PipLocation   int
}

var Instruments = map[string]InstrumentMeta{
	"EUR_USD": {
		Name:          "EUR_USD",
		BaseCurrency:  "EUR",
		QuoteCurrency: "USD",
		PipLocation:   -4,
	},
	"GBP_USD": {
		Name:          "GBP_USD",
		BaseCurrency:  "GBP",
		QuoteCurrency: "USD",
		PipLocation:   -4,
	},
	"USD_JPY": {
		Name:          "USD_JPY",
		BaseCurrency:  "USD",
		QuoteCurrency: "JPY",
		PipLocation:   -2,
	},
}

// NormalizeSymbol maps "EURUSD", "eur/usd" and "EUR_USD" to the
// canonical "EUR_USD" form used as a registry key.
func NormalizeSymbol(s string) (string, error) {
	sym := strings.ToUpper(strings.TrimSpace(s))
	sym = strings.NewReplacer("/", "_", "-", "_").Replace(sym)
	if !strings.Contains(sym, "_") && len(sym) == 6 {
		sym = sym[:3] + "_" + sym[3:]
	}
	if _, ok := Instruments[sym]; !ok {
		return "", fmt.Errorf("unknown instrument: %s", s)
	}
	return sym, nil
}
