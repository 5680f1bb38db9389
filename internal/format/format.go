// Package format contains the pure display formatters shared by every
// widget. All functions are total: non-finite input renders as "N/A"
// instead of failing.
package format

import (
	"fmt"
	"math"
	"strings"
)

// QuoteSuffix is the quote currency appended by the exchange to every
// traded pair, stripped for display and re-appended for trade links.
const QuoteSuffix = "-USD"

// exchangeBaseURL is where a row click lands, one page per traded pair.
const exchangeBaseURL = "https://www.coinbase.com/advanced-trade/spot/"

// FormatPrice renders a price with precision inversely proportional to
// magnitude. Below a hundred-thousandth of a dollar the fixed bands stop
// and prices render in scientific notation.
func FormatPrice(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "N/A"
	}

	switch {
	case value >= 1:
		return fmt.Sprintf("$%.2f", value)
	case value >= 0.1:
		return fmt.Sprintf("$%.4f", value)
	case value >= 0.01:
		return fmt.Sprintf("$%.5f", value)
	case value >= 0.001:
		return fmt.Sprintf("$%.6f", value)
	case value >= 0.0001:
		return fmt.Sprintf("$%.8f", value)
	case value >= 0.00001:
		return fmt.Sprintf("$%.9f", value)
	default:
		return fmt.Sprintf("$%.2e", value)
	}
}

// FormatPercentage renders a percentage change. Precision grows as the
// magnitude shrinks so small moves stay visible.
func FormatPercentage(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "N/A"
	}

	if value == 0 {
		return "0.00%"
	}

	abs := math.Abs(value)

	switch {
	case abs >= 10:
		return fmt.Sprintf("%.1f%%", value)
	case abs >= 1:
		return fmt.Sprintf("%.2f%%", value)
	case abs >= 0.1:
		return fmt.Sprintf("%.3f%%", value)
	case abs >= 0.01:
		return fmt.Sprintf("%.4f%%", value)
	default:
		return fmt.Sprintf("%.5f%%", value)
	}
}

// BaseSymbol strips the quote currency suffix from an exchange pair,
// so "BTC-USD" displays as "BTC".
func BaseSymbol(symbol string) string {
	return strings.TrimSuffix(symbol, QuoteSuffix)
}

// ExchangeURL builds the deterministic trade page link for a symbol.
// The symbol may be given with or without the quote suffix.
func ExchangeURL(symbol string) string {
	base := BaseSymbol(symbol)

	return exchangeBaseURL + strings.ToLower(base+QuoteSuffix)
}
