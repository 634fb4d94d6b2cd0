package analytics

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/de-tools/deal-atlas/pkg/models/domain"
)

const (
	lowConfidenceThreshold = 0.5
	thinPipelineDeals      = 3
	earlyStageRatio        = 0.4
	earlyStageShare        = 0.6
	slowSeasonFactor       = 0.9
	seasonalShortfall      = 0.8
	concentrationShare     = 0.4
	majorityShare          = 0.5
	criticalQuotaGap       = 20
	moderateQuotaGap       = 10
	revenuePerDeal         = 50000.0
	smallDealSize          = 50000.0
	largeDealSize          = 150000.0
	velocityShare          = 0.7
	poorWinRate            = 0.3
	strongHistoricWinRate  = 0.6
)

// forecastSummary precomputes everything the insight rules read.
type forecastSummary struct {
	forecast    []domain.RevenueForecast
	starts      []time.Time
	quotaTarget *float64
	history     historicalPattern

	total           float64
	average         float64
	dealCount       int
	lowConfidence   []int
	thinPipeline    []int
	earlyStage      int
	seasonalRisk    []int
	seasonalLow     []int
	highest         int
	decreasing      int
	increasing      int
	monthsWithDeals int
}

func newForecastSummary(
	forecast []domain.RevenueForecast,
	starts []time.Time,
	quotaTarget *float64,
	history historicalPattern,
) forecastSummary {
	s := forecastSummary{
		forecast:    forecast,
		starts:      starts,
		quotaTarget: quotaTarget,
		history:     history,
	}

	for _, m := range forecast {
		s.total += m.PredictedRevenue
		s.dealCount += m.DealCount
	}
	s.average = ratio(s.total, float64(len(forecast)))

	for i, m := range forecast {
		if m.Confidence < lowConfidenceThreshold {
			s.lowConfidence = append(s.lowConfidence, i)
		}
		if m.DealCount < thinPipelineDeals {
			s.thinPipeline = append(s.thinPipeline, i)
		}
		if m.PredictedRevenue > 0 && m.WeightedValue/m.PredictedRevenue < earlyStageRatio {
			s.earlyStage++
		}
		if SeasonalityFactor(starts[i].Month()) < slowSeasonFactor {
			s.seasonalLow = append(s.seasonalLow, i)
			if m.PredictedRevenue < s.average*seasonalShortfall {
				s.seasonalRisk = append(s.seasonalRisk, i)
			}
		}
		if m.PredictedRevenue > forecast[s.highest].PredictedRevenue {
			s.highest = i
		}
		switch m.Trend {
		case domain.TrendDecreasing:
			s.decreasing++
		case domain.TrendIncreasing:
			s.increasing++
		}
		if m.DealCount > 0 {
			s.monthsWithDeals++
		}
	}

	return s
}

func (s forecastSummary) months() float64 {
	return float64(len(s.forecast))
}

func (s forecastSummary) hasQuota() bool {
	return s.quotaTarget != nil && *s.quotaTarget != 0
}

// quotaGapPercent is the shortfall as a whole percentage of the target.
func (s forecastSummary) quotaGapPercent() int {
	return roundHalfUp((*s.quotaTarget - s.total) / *s.quotaTarget * 100)
}

func (s forecastSummary) concentrated() bool {
	return len(s.forecast) > 0 && s.forecast[s.highest].PredictedRevenue > s.total*concentrationShare
}

func (s forecastSummary) concentrationPercent() int {
	return roundHalfUp(s.forecast[s.highest].PredictedRevenue / s.total * 100)
}

func (s forecastSummary) monthNames(indexes []int, layout string) string {
	names := make([]string, 0, 2)
	for i, idx := range indexes {
		if i == 2 {
			break
		}
		names = append(names, s.starts[idx].Format(layout))
	}
	out := strings.Join(names, ", ")
	if len(indexes) > 2 {
		out += "..."
	}
	return out
}

type forecastRule func(s forecastSummary) []string

var forecastRiskRules = []forecastRule{
	func(s forecastSummary) []string {
		switch len(s.lowConfidence) {
		case 0:
			return nil
		case 1:
			m := s.lowConfidence[0]
			return []string{fmt.Sprintf("%s has low forecast confidence (%d%%) - consider pipeline acceleration",
				s.starts[m].Format("January 2006"), roundHalfUp(s.forecast[m].Confidence*100))}
		default:
			return []string{fmt.Sprintf("%d months (%s) have low confidence predictions",
				len(s.lowConfidence), s.monthNames(s.lowConfidence, "January 2006"))}
		}
	},
	func(s forecastSummary) []string {
		switch len(s.thinPipeline) {
		case 0:
			return nil
		case 1:
			m := s.thinPipeline[0]
			return []string{fmt.Sprintf("%s has only %d deal(s) in pipeline - pipeline depth concern",
				s.starts[m].Format("January"), s.forecast[m].DealCount)}
		default:
			return []string{fmt.Sprintf("%d months (%s) have thin pipeline coverage",
				len(s.thinPipeline), s.monthNames(s.thinPipeline, "January"))}
		}
	},
	func(s forecastSummary) []string {
		if s.dealCount > 0 && float64(s.earlyStage) > s.months()*earlyStageShare {
			return []string{"Pipeline heavily weighted toward early-stage deals - conversion risk"}
		}
		return nil
	},
	func(s forecastSummary) []string {
		if len(s.seasonalRisk) == 0 {
			return nil
		}
		return []string{fmt.Sprintf("Seasonal slowdown expected in %s - plan accordingly",
			s.monthNames(s.seasonalRisk, "January"))}
	},
	func(s forecastSummary) []string {
		if !s.concentrated() {
			return nil
		}
		return []string{fmt.Sprintf("Revenue heavily concentrated in %s (%d%%) - diversification needed",
			s.starts[s.highest].Format("January"), s.concentrationPercent())}
	},
	func(s forecastSummary) []string {
		if float64(s.decreasing) > s.months()*majorityShare {
			return []string{"Downward trend detected across majority of forecast period - pipeline health review required"}
		}
		return nil
	},
	func(s forecastSummary) []string {
		if !s.hasQuota() || s.total >= *s.quotaTarget {
			return nil
		}
		gap := s.quotaGapPercent()
		switch {
		case gap > criticalQuotaGap:
			return []string{fmt.Sprintf("Significant quota gap (%d%% below target) - aggressive pipeline building needed", gap)}
		case gap > moderateQuotaGap:
			return []string{fmt.Sprintf("Moderate quota gap (%d%% below target) - focus on deal acceleration", gap)}
		default:
			return nil
		}
	},
}

var forecastRecommendationRules = []forecastRule{
	func(s forecastSummary) []string {
		if !s.hasQuota() {
			return nil
		}
		quota := *s.quotaTarget
		switch {
		case s.total < quota:
			gap := s.quotaGapPercent()
			needed := int(math.Ceil((quota - s.total) / revenuePerDeal))
			switch {
			case gap > criticalQuotaGap:
				return []string{
					fmt.Sprintf("🚨 CRITICAL: Need %d additional deals to close quota gap (%d%% below target)", needed, gap),
					"🔴 Immediate actions: Accelerate all negotiation-stage deals, increase prospecting activity by 50%",
				}
			case gap > moderateQuotaGap:
				return []string{
					fmt.Sprintf("⚠️ MODERATE: Focus on closing %d additional deals to meet quota (%d%% gap)", needed, gap),
					"🟡 Priority: Move 3-5 qualified deals to proposal stage this week",
				}
			default:
				return []string{fmt.Sprintf("✅ ON TRACK: Close %d additional deals to exceed quota by %d%%", needed, absInt(gap))}
			}
		case s.total > quota:
			surplus := roundHalfUp((s.total - quota) / quota * 100)
			return []string{fmt.Sprintf("🎯 EXCEEDING TARGET: Forecast shows %d%% above quota - maintain momentum", surplus)}
		default:
			return nil
		}
	},
	func(s forecastSummary) []string {
		if len(s.lowConfidence) == 0 {
			return nil
		}
		return []string{fmt.Sprintf("📊 Pipeline Health: Increase activity in %s - target 5+ deals per month",
			s.monthNames(s.lowConfidence, "January"))}
	},
	func(s forecastSummary) []string {
		if float64(s.earlyStage) > s.months()*earlyStageShare {
			return []string{"🎯 Stage Optimization: 60%+ of pipeline in early stages - focus on advancing deals to proposal/negotiation"}
		}
		return nil
	},
	func(s forecastSummary) []string {
		if len(s.seasonalLow) == 0 {
			return nil
		}
		return []string{fmt.Sprintf("📅 Seasonal Planning: Build extra pipeline for %s (typically slower months)",
			s.monthNames(s.seasonalLow, "January"))}
	},
	func(s forecastSummary) []string {
		if !s.concentrated() {
			return nil
		}
		return []string{fmt.Sprintf("⚖️ Revenue Balance: %s represents %d%% of forecast - diversify across other months",
			s.starts[s.highest].Format("January"), s.concentrationPercent())}
	},
	func(s forecastSummary) []string {
		switch {
		case float64(s.decreasing) > s.months()*majorityShare:
			return []string{"📉 Trend Alert: Downward trend detected - review sales process and conversion rates"}
		case float64(s.increasing) > s.months()*majorityShare:
			return []string{"📈 Momentum: Strong upward trend - capitalize on current sales momentum"}
		default:
			return nil
		}
	},
	func(s forecastSummary) []string {
		if s.dealCount == 0 {
			return nil
		}
		avgDealSize := s.total / float64(s.dealCount)
		switch {
		case avgDealSize < smallDealSize:
			return []string{"💰 Deal Size: Average deal size below $50k - focus on larger opportunities to improve efficiency"}
		case avgDealSize > largeDealSize:
			return []string{"🎯 Large Deals: High-value pipeline - ensure proper resource allocation for complex sales"}
		default:
			return nil
		}
	},
	func(s forecastSummary) []string {
		if float64(s.monthsWithDeals) < s.months()*velocityShare {
			return []string{"⏱️ Pipeline Velocity: Spread deals more evenly across months for consistent revenue flow"}
		}
		return nil
	},
	func(s forecastSummary) []string {
		switch {
		case s.history.winRate < poorWinRate:
			return []string{"🏆 Win Rate: Historical win rate below 30% - focus on deal qualification and proposal quality"}
		case s.history.winRate > strongHistoricWinRate:
			return []string{"✅ Strong Performance: High win rate - consider increasing deal volume to maximize success"}
		default:
			return nil
		}
	},
}

var defaultForecastRecommendations = []string{
	"✅ Pipeline Health: Maintain current sales momentum and pipeline health",
	"📈 Growth Opportunity: Consider expanding into new markets or product lines",
}

func forecastInsights(s forecastSummary) domain.ForecastInsights {
	insights := domain.ForecastInsights{
		TotalPredictedRevenue: round2(s.total),
		AverageMonthlyRevenue: round2(s.average),
		TrendAnalysis:         trendAnalysis(s.forecast),
		RiskFactors:           []string{},
		Recommendations:       []string{},
	}

	for _, rule := range forecastRiskRules {
		insights.RiskFactors = append(insights.RiskFactors, rule(s)...)
	}
	for _, rule := range forecastRecommendationRules {
		insights.Recommendations = append(insights.Recommendations, rule(s)...)
	}
	if len(insights.Recommendations) == 0 {
		insights.Recommendations = append(insights.Recommendations, defaultForecastRecommendations...)
	}

	if s.hasQuota() {
		target := *s.quotaTarget
		gap := round2(target - s.total)
		insights.QuotaTarget = &target
		insights.QuotaGap = &gap
	}

	return insights
}

// trendAnalysis compares the average of the first half of the horizon to the second.
func trendAnalysis(forecast []domain.RevenueForecast) string {
	split := (len(forecast) + 1) / 2
	first, second := forecast[:split], forecast[split:]
	if len(first) == 0 || len(second) == 0 {
		return "Revenue is stable with consistent pipeline flow."
	}

	firstAvg := averageRevenue(first)
	secondAvg := averageRevenue(second)
	switch {
	case secondAvg > firstAvg*1.1:
		return "Revenue is trending upward, indicating strong pipeline momentum."
	case secondAvg < firstAvg*0.9:
		return "Revenue is trending downward, suggesting pipeline challenges."
	default:
		return "Revenue is stable with consistent pipeline flow."
	}
}

func averageRevenue(months []domain.RevenueForecast) float64 {
	total := 0.0
	for _, m := range months {
		total += m.PredictedRevenue
	}
	return ratio(total, float64(len(months)))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
