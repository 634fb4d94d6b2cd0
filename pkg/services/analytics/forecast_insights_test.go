package analytics

import (
	"testing"
	"time"

	"github.com/de-tools/deal-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// balancedForecast is a healthy three month horizon that triggers no rule.
func balancedForecast(first string) []domain.RevenueForecast {
	start, err := time.Parse("2006-01", first)
	if err != nil {
		panic(err)
	}
	forecast := make([]domain.RevenueForecast, 3)
	for i := range forecast {
		forecast[i] = domain.RevenueForecast{
			Month:            start.AddDate(0, i, 0).Format("2006-01"),
			PredictedRevenue: 300000,
			Confidence:       0.6,
			DealCount:        3,
			WeightedValue:    270000,
			Trend:            domain.TrendStable,
		}
	}
	return forecast
}

func summarize(t *testing.T, forecast []domain.RevenueForecast, quota *float64, winRate float64) forecastSummary {
	t.Helper()
	starts := make([]time.Time, len(forecast))
	for i, m := range forecast {
		start, err := time.Parse("2006-01", m.Month)
		require.NoError(t, err)
		starts[i] = start
	}
	return newForecastSummary(forecast, starts, quota, historicalPattern{winRate: winRate})
}

func TestForecastInsights(t *testing.T) {
	t.Run("healthy pipeline falls back to defaults", func(t *testing.T) {
		insights := forecastInsights(summarize(t, balancedForecast("2025-04"), nil, 0.45))

		assert.Empty(t, insights.RiskFactors)
		assert.Equal(t, defaultForecastRecommendations, insights.Recommendations)
		assert.Equal(t, 900000.0, insights.TotalPredictedRevenue)
		assert.Equal(t, 300000.0, insights.AverageMonthlyRevenue)
	})

	tests := []struct {
		name            string
		first           string
		adjust          func(f []domain.RevenueForecast)
		quota           *float64
		winRate         float64
		risks           []string
		recommendations []string
		absent          []string
	}{
		{
			name:    "moderate quota gap",
			quota:   floatPtr(1050000),
			winRate: 0.45,
			risks:   []string{"Moderate quota gap (14% below target) - focus on deal acceleration"},
			recommendations: []string{
				"⚠️ MODERATE: Focus on closing 3 additional deals to meet quota (14% gap)",
				"🟡 Priority: Move 3-5 qualified deals to proposal stage this week",
			},
			absent: []string{"🚨 CRITICAL: Need 3 additional deals to close quota gap (14% below target)"},
		},
		{
			name:            "quota within ten percent",
			quota:           floatPtr(950000),
			winRate:         0.45,
			recommendations: []string{"✅ ON TRACK: Close 1 additional deals to exceed quota by 5%"},
			absent:          []string{"Moderate quota gap (5% below target) - focus on deal acceleration"},
		},
		{
			name:    "low confidence month",
			adjust:  func(f []domain.RevenueForecast) { f[0].Confidence = 0.3 },
			winRate: 0.45,
			risks:   []string{"April 2025 has low forecast confidence (30%) - consider pipeline acceleration"},
			recommendations: []string{
				"📊 Pipeline Health: Increase activity in April - target 5+ deals per month",
			},
		},
		{
			name:  "slow february",
			first: "2026-01",
			adjust: func(f []domain.RevenueForecast) {
				f[1].PredictedRevenue = 200000
				f[1].WeightedValue = 180000
			},
			winRate:         0.45,
			risks:           []string{"Seasonal slowdown expected in February - plan accordingly"},
			recommendations: []string{"📅 Seasonal Planning: Build extra pipeline for February (typically slower months)"},
		},
		{
			name:            "february on pace",
			first:           "2026-01",
			winRate:         0.45,
			recommendations: []string{"📅 Seasonal Planning: Build extra pipeline for February (typically slower months)"},
			absent:          []string{"Seasonal slowdown expected in February - plan accordingly"},
		},
		{
			name: "revenue concentrated in one month",
			adjust: func(f []domain.RevenueForecast) {
				f[0].PredictedRevenue = 600000
				f[0].WeightedValue = 540000
			},
			winRate:         0.45,
			risks:           []string{"Revenue heavily concentrated in April (50%) - diversification needed"},
			recommendations: []string{"⚖️ Revenue Balance: April represents 50% of forecast - diversify across other months"},
		},
		{
			name: "downward trend",
			adjust: func(f []domain.RevenueForecast) {
				for i := range f {
					f[i].Trend = domain.TrendDecreasing
				}
			},
			winRate:         0.45,
			risks:           []string{"Downward trend detected across majority of forecast period - pipeline health review required"},
			recommendations: []string{"📉 Trend Alert: Downward trend detected - review sales process and conversion rates"},
			absent:          []string{"📈 Momentum: Strong upward trend - capitalize on current sales momentum"},
		},
		{
			name: "upward trend",
			adjust: func(f []domain.RevenueForecast) {
				f[1].Trend = domain.TrendIncreasing
				f[2].Trend = domain.TrendIncreasing
			},
			winRate:         0.45,
			recommendations: []string{"📈 Momentum: Strong upward trend - capitalize on current sales momentum"},
			absent:          []string{"📉 Trend Alert: Downward trend detected - review sales process and conversion rates"},
		},
		{
			name: "small deals",
			adjust: func(f []domain.RevenueForecast) {
				for i := range f {
					f[i].DealCount = 10
				}
			},
			winRate:         0.45,
			recommendations: []string{"💰 Deal Size: Average deal size below $50k - focus on larger opportunities to improve efficiency"},
			absent:          []string{"🎯 Large Deals: High-value pipeline - ensure proper resource allocation for complex sales"},
		},
		{
			name: "large deals",
			adjust: func(f []domain.RevenueForecast) {
				for i := range f {
					f[i].DealCount = 1
				}
			},
			winRate: 0.45,
			risks:   []string{"3 months (April, May...) have thin pipeline coverage"},
			recommendations: []string{
				"🎯 Large Deals: High-value pipeline - ensure proper resource allocation for complex sales",
			},
			absent: []string{"💰 Deal Size: Average deal size below $50k - focus on larger opportunities to improve efficiency"},
		},
		{
			name: "deals bunched into one month",
			adjust: func(f []domain.RevenueForecast) {
				for i := 1; i < len(f); i++ {
					f[i].PredictedRevenue = 0
					f[i].WeightedValue = 0
					f[i].DealCount = 0
				}
			},
			winRate:         0.45,
			recommendations: []string{"⏱️ Pipeline Velocity: Spread deals more evenly across months for consistent revenue flow"},
		},
		{
			name:            "poor win rate",
			winRate:         0.2,
			recommendations: []string{"🏆 Win Rate: Historical win rate below 30% - focus on deal qualification and proposal quality"},
			absent:          defaultForecastRecommendations,
		},
		{
			name:            "strong win rate",
			winRate:         0.7,
			recommendations: []string{"✅ Strong Performance: High win rate - consider increasing deal volume to maximize success"},
			absent:          defaultForecastRecommendations,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			first := tc.first
			if first == "" {
				first = "2025-04"
			}
			forecast := balancedForecast(first)
			if tc.adjust != nil {
				tc.adjust(forecast)
			}

			insights := forecastInsights(summarize(t, forecast, tc.quota, tc.winRate))

			for _, risk := range tc.risks {
				assert.Contains(t, insights.RiskFactors, risk)
			}
			for _, rec := range tc.recommendations {
				assert.Contains(t, insights.Recommendations, rec)
			}
			for _, text := range tc.absent {
				assert.NotContains(t, insights.RiskFactors, text)
				assert.NotContains(t, insights.Recommendations, text)
			}
		})
	}
}
