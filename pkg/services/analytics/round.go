package analytics

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.NewFromFloat(0.5)
)

// round2 scales v by 100 in float64, rounds half toward +Inf and scales back.
// The scaled product keeps the binary error of v, so 1.005 rounds to 1.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v * 100).Add(half).Floor().Div(hundred).InexactFloat64()
}

// ratio returns num/den, or 0 when den is zero.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
