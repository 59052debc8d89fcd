package gateway

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// formatUSD renders a price as "$85,423.45".
func formatUSD(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}

// formatUSDWhole renders a large amount as a grouped integer, "$1,680,000,000,000".
func formatUSDWhole(v float64) string {
	// Commaf formats through strconv, so amounts beyond int64 stay intact.
	return "$" + humanize.Commaf(math.Round(v))
}

// formatChange renders a percentage with an explicit sign, "+2.34%" or "-0.54%".
func formatChange(v float64) string {
	if v == 0 {
		// normalizes negative zero
		v = 0
	}
	return fmt.Sprintf("%+.2f%%", v)
}

// formatRate renders an exchange rate with four decimals.
func formatRate(v float64) string {
	return fmt.Sprintf("%.4f", v)
}

// formatInverse renders 1/v, or "N/A" when v is exactly zero.
func formatInverse(v float64) string {
	if v == 0 {
		return "N/A"
	}
	return formatRate(1 / v)
}
