package domain

import "time"

type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendDecreasing Trend = "decreasing"
	TrendStable     Trend = "stable"
)

// RevenueForecast is the projection for one calendar month.
type RevenueForecast struct {
	Month             string // YYYY-MM
	PredictedRevenue  float64
	Confidence        float64
	DealCount         int
	WeightedValue     float64
	HistoricalAverage float64
	Trend             Trend
}

type ForecastInsights struct {
	TotalPredictedRevenue float64
	AverageMonthlyRevenue float64
	TrendAnalysis         string
	RiskFactors           []string
	Recommendations       []string
	QuotaGap              *float64
	QuotaTarget           *float64
}

type ForecastResult struct {
	Forecast []RevenueForecast
	Insights ForecastInsights
}

// ForecastOptions parameterizes a forecast run. Months of zero selects the default horizon.
type ForecastOptions struct {
	Months      int
	QuotaTarget *float64
	Filters     ForecastFilters
	Now         time.Time
}
