package adapters

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/de-tools/deal-atlas/pkg/models/domain"
	"github.com/dustin/go-humanize"
)

const reportCurrency = "USD"

func winRateDetail(name string, w domain.WinRateAnalysis) domain.ReportDetail {
	return domain.ReportDetail{
		Name:  name,
		Value: fmt.Sprintf("%.2f", w.WinRate),
		Unit:  "%",
		Description: fmt.Sprintf("%d deals, %d won, $%s won value",
			w.TotalDeals, w.WonDeals, humanize.Commaf(w.WonValue)),
	}
}

func winRateSection[K ~string](title string, keys []K, groups map[K]domain.WinRateAnalysis) domain.ReportSection {
	section := domain.ReportSection{Title: title}
	for _, k := range keys {
		if w, ok := groups[k]; ok {
			section.Details = append(section.Details, winRateDetail(string(k), w))
		}
	}
	return section
}

func MapHistoricalToReport(h domain.HistoricalAnalysis, generatedAt time.Time) *domain.Report {
	overall := domain.ReportSection{
		Title: "Overall",
		Summary: map[string]interface{}{
			"Total deals":  h.Overall.TotalDeals,
			"Won deals":    h.Overall.WonDeals,
			"Lost deals":   h.Overall.LostDeals,
			"Win rate (%)": h.Overall.WinRate,
			"Average deal": humanize.Commaf(h.Overall.AverageDealSize),
		},
		Notes: h.Insights,
	}

	return &domain.Report{
		Title:       "Historical Win Rate Analysis",
		GeneratedAt: generatedAt,
		Currency:    reportCurrency,
		TotalAmount: h.Overall.TotalValue,
		Sections: []domain.ReportSection{
			overall,
			winRateSection("By Transportation Mode", slices.Sorted(maps.Keys(h.ByTransportationMode)), h.ByTransportationMode),
			winRateSection("By Sales Rep", slices.Sorted(maps.Keys(h.BySalesRep)), h.BySalesRep),
			winRateSection("By Deal Size", domain.SizeCategories, h.ByDealSize),
			winRateSection("By Month", slices.Sorted(maps.Keys(h.ByTimePeriod)), h.ByTimePeriod),
		},
	}
}

func MapForecastToReport(f domain.ForecastResult, generatedAt time.Time) *domain.Report {
	months := domain.ReportSection{
		Title: "Monthly Forecast",
		Summary: map[string]interface{}{
			"Average monthly revenue": humanize.Commaf(f.Insights.AverageMonthlyRevenue),
			"Trend":                   f.Insights.TrendAnalysis,
		},
	}
	if f.Insights.QuotaTarget != nil && f.Insights.QuotaGap != nil {
		months.Summary["Quota target"] = humanize.Commaf(*f.Insights.QuotaTarget)
		months.Summary["Quota gap"] = humanize.Commaf(*f.Insights.QuotaGap)
	}

	for _, m := range f.Forecast {
		months.Details = append(months.Details, domain.ReportDetail{
			Name:  m.Month,
			Value: humanize.Commaf(m.PredictedRevenue),
			Unit:  reportCurrency,
			Description: fmt.Sprintf("%d deals, %.0f%% confidence, %s",
				m.DealCount, m.Confidence*100, m.Trend),
		})
	}

	return &domain.Report{
		Title:       "Revenue Forecast",
		GeneratedAt: generatedAt,
		Currency:    reportCurrency,
		TotalAmount: f.Insights.TotalPredictedRevenue,
		Sections: []domain.ReportSection{
			months,
			{Title: "Risk Factors", Notes: f.Insights.RiskFactors},
			{Title: "Recommendations", Notes: f.Insights.Recommendations},
		},
	}
}

func MapTrendsToReport(r domain.TrendResult, generatedAt time.Time) *domain.Report {
	deals := domain.ReportSection{
		Title: "Deals by Priority",
		Summary: map[string]interface{}{
			"Open deals":         r.Insights.TotalDeals,
			"Stalling deals":     r.Insights.StallingDeals,
			"High risk deals":    r.Insights.HighRiskDeals,
			"Average risk score": r.Insights.AverageRiskScore,
		},
		Notes: r.Insights.Recommendations,
	}

	for _, t := range r.Trends {
		deals.Details = append(deals.Details, domain.ReportDetail{
			Name:  fmt.Sprintf("%s %s", t.DealID, t.CompanyName),
			Value: t.RiskScore,
			Unit:  string(t.RiskLevel),
			Description: fmt.Sprintf("%s priority, %s, %d days in stage",
				t.Priority, t.CurrentStage, t.DaysInStage),
		})
	}

	return &domain.Report{
		Title:       "Deal Trends",
		GeneratedAt: generatedAt,
		Currency:    reportCurrency,
		TotalAmount: r.Insights.TotalValueAtRisk,
		Sections:    []domain.ReportSection{deals},
	}
}
