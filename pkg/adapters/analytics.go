package adapters

import (
	"github.com/de-tools/deal-atlas/pkg/models/api"
	"github.com/de-tools/deal-atlas/pkg/models/domain"
)

func MapWinRateDomainToApi(w domain.WinRateAnalysis) api.WinRateAnalysis {
	return api.WinRateAnalysis{
		TotalDeals:          w.TotalDeals,
		WonDeals:            w.WonDeals,
		LostDeals:           w.LostDeals,
		WinRate:             w.WinRate,
		TotalValue:          w.TotalValue,
		WonValue:            w.WonValue,
		LostValue:           w.LostValue,
		AverageDealSize:     w.AverageDealSize,
		AverageWonDealSize:  w.AverageWonDealSize,
		AverageLostDealSize: w.AverageLostDealSize,
	}
}

func mapWinRateGroups[K ~string](groups map[K]domain.WinRateAnalysis) map[string]api.WinRateAnalysis {
	out := make(map[string]api.WinRateAnalysis, len(groups))
	for k, v := range groups {
		out[string(k)] = MapWinRateDomainToApi(v)
	}
	return out
}

func MapHistoricalDomainToApi(h domain.HistoricalAnalysis) api.HistoricalAnalysis {
	return api.HistoricalAnalysis{
		Overall:              MapWinRateDomainToApi(h.Overall),
		ByTransportationMode: mapWinRateGroups(h.ByTransportationMode),
		BySalesRep:           mapWinRateGroups(h.BySalesRep),
		ByDealSize:           mapWinRateGroups(h.ByDealSize),
		ByTimePeriod:         mapWinRateGroups(h.ByTimePeriod),
		Insights:             nonNil(h.Insights),
	}
}

func MapForecastDomainToApi(f domain.ForecastResult) api.ForecastResult {
	result := api.ForecastResult{
		Forecast: make([]api.RevenueForecast, 0, len(f.Forecast)),
		Insights: api.ForecastInsights{
			TotalPredictedRevenue: f.Insights.TotalPredictedRevenue,
			AverageMonthlyRevenue: f.Insights.AverageMonthlyRevenue,
			TrendAnalysis:         f.Insights.TrendAnalysis,
			RiskFactors:           nonNil(f.Insights.RiskFactors),
			Recommendations:       nonNil(f.Insights.Recommendations),
			QuotaGap:              f.Insights.QuotaGap,
			QuotaTarget:           f.Insights.QuotaTarget,
		},
	}

	for _, m := range f.Forecast {
		result.Forecast = append(result.Forecast, api.RevenueForecast{
			Month:             m.Month,
			PredictedRevenue:  m.PredictedRevenue,
			Confidence:        m.Confidence,
			DealCount:         m.DealCount,
			WeightedValue:     m.WeightedValue,
			HistoricalAverage: m.HistoricalAverage,
			Trend:             string(m.Trend),
		})
	}

	return result
}

func MapDealTrendDomainToApi(t domain.DealTrend) api.DealTrend {
	return api.DealTrend{
		DealID:             t.DealID,
		CompanyName:        t.CompanyName,
		SalesRep:           t.SalesRep,
		TransportationMode: t.TransportationMode,
		CurrentStage:       string(t.CurrentStage),
		Value:              t.Value,
		DaysInStage:        t.DaysInStage,
		LastActivityDate:   t.LastActivityDate,
		RiskScore:          t.RiskScore,
		RiskLevel:          string(t.RiskLevel),
		RiskFactors:        nonNil(t.RiskFactors),
		Recommendations:    nonNil(t.Recommendations),
		StageProbability:   t.StageProbability,
		ExpectedCloseDate:  t.ExpectedCloseDate,
		DaysUntilClose:     t.DaysUntilClose,
		IsStalling:         t.IsStalling,
		Priority:           string(t.Priority),
	}
}

func MapTrendsDomainToApi(r domain.TrendResult) api.TrendResult {
	result := api.TrendResult{
		Trends: make([]api.DealTrend, 0, len(r.Trends)),
		Insights: api.TrendInsights{
			TotalDeals:       r.Insights.TotalDeals,
			StallingDeals:    r.Insights.StallingDeals,
			HighRiskDeals:    r.Insights.HighRiskDeals,
			AverageRiskScore: r.Insights.AverageRiskScore,
			DealsByRiskLevel: make(map[string]int, len(r.Insights.DealsByRiskLevel)),
			DealsByPriority:  make(map[string]int, len(r.Insights.DealsByPriority)),
			TotalValueAtRisk: r.Insights.TotalValueAtRisk,
			Recommendations:  nonNil(r.Insights.Recommendations),
		},
	}

	for _, t := range r.Trends {
		result.Trends = append(result.Trends, MapDealTrendDomainToApi(t))
	}
	for level, n := range r.Insights.DealsByRiskLevel {
		result.Insights.DealsByRiskLevel[string(level)] = n
	}
	for p, n := range r.Insights.DealsByPriority {
		result.Insights.DealsByPriority[string(p)] = n
	}

	return result
}

// nonNil keeps empty lists serialized as [] rather than null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
