package analytics

import (
	"strconv"

	"github.com/dustin/go-humanize"
)

// formatNumber renders v without trailing zeros, e.g. 66.67 or 100.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatMoney renders v with thousands separators, e.g. 150,000.
func formatMoney(v float64) string {
	return humanize.Commaf(v)
}
