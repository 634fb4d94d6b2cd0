package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/de-tools/deal-atlas/pkg/models/domain"
)

const (
	stallingDays      = 21
	closingSoonDays   = 7
	closingWindowDays = 30
	highValueDeal     = 100000.0
	stallingValueDeal = 50000.0
	lowConversionProb = 0.15
	lastActivityField = "updated_date"

	dwellMaxScore       = 40.0
	closeMaxScore       = 30.0
	sizeMaxScore        = 20.0
	probabilityMaxScore = 10.0
)

// dwellThresholds are the day counts at which time in a stage turns medium, high and critical.
type dwellThresholds struct {
	medium, high, critical int
}

var stageDwellThresholds = map[domain.Stage]dwellThresholds{
	domain.StageProspect:    {medium: 14, high: 30, critical: 45},
	domain.StageQualified:   {medium: 21, high: 35, critical: 50},
	domain.StageProposal:    {medium: 14, high: 25, critical: 35},
	domain.StageNegotiation: {medium: 7, high: 14, critical: 21},
}

var (
	closeThresholds       = struct{ medium, high, critical int }{medium: 30, high: 60, critical: 90}
	sizeThresholds        = struct{ medium, high, critical float64 }{medium: 50000, high: 100000, critical: 200000}
	probabilityThresholds = struct{ medium, high, critical float64 }{medium: 0.15, high: 0.05, critical: 0.01}
)

func dwellFor(stage domain.Stage) dwellThresholds {
	if t, ok := stageDwellThresholds[stage]; ok {
		return t
	}
	return stageDwellThresholds[domain.StageQualified]
}

// AnalyzeDealTrends scores every open deal for risk relative to now.
func AnalyzeDealTrends(deals []domain.Deal, filters domain.TrendFilters, now time.Time) (domain.TrendResult, error) {
	open, _ := applyPredicates(deals, openOnly)

	filtered, err := filterDeals(open, filters.DealFilter)
	if err != nil {
		return domain.TrendResult{}, err
	}

	trends := make([]domain.DealTrend, 0, len(filtered))
	for _, d := range filtered {
		trend, err := calculateDealTrend(d, now)
		if err != nil {
			return domain.TrendResult{}, err
		}

		if filters.RiskLevel != "" && trend.RiskLevel != filters.RiskLevel {
			continue
		}
		if filters.Priority != "" && trend.Priority != filters.Priority {
			continue
		}
		if filters.IsStalling != nil && trend.IsStalling != *filters.IsStalling {
			continue
		}
		trends = append(trends, trend)
	}

	sort.SliceStable(trends, func(i, j int) bool {
		if ri, rj := trends[i].Priority.Rank(), trends[j].Priority.Rank(); ri != rj {
			return ri > rj
		}
		return trends[i].RiskScore > trends[j].RiskScore
	})

	return domain.TrendResult{
		Trends:   trends,
		Insights: trendInsights(trends),
	}, nil
}

func calculateDealTrend(d domain.Deal, now time.Time) (domain.DealTrend, error) {
	lastActivity, err := domain.ParseDate(lastActivityField, d.UpdatedDate)
	if err != nil {
		return domain.DealTrend{}, err
	}
	expectedClose, err := domain.ParseDate(closeDateField, d.ExpectedCloseDate)
	if err != nil {
		return domain.DealTrend{}, err
	}

	daysInStage := wholeDays(now.Sub(lastActivity))
	daysUntilClose := wholeDays(expectedClose.Sub(now))

	score := riskScore(d, daysInStage, daysUntilClose)
	level := riskLevelFor(score)

	return domain.DealTrend{
		DealID:             d.DealID,
		CompanyName:        d.CompanyName,
		SalesRep:           d.SalesRep,
		TransportationMode: d.TransportationMode,
		CurrentStage:       d.Stage,
		Value:              d.Value,
		DaysInStage:        daysInStage,
		LastActivityDate:   d.UpdatedDate,
		RiskScore:          score,
		RiskLevel:          level,
		RiskFactors:        dealRiskFactors(d, daysInStage, daysUntilClose),
		Recommendations:    dealRecommendations(d, level, daysInStage, daysUntilClose),
		StageProbability:   d.Stage.Probability(),
		ExpectedCloseDate:  d.ExpectedCloseDate,
		DaysUntilClose:     daysUntilClose,
		IsStalling:         daysInStage >= stallingDays,
		Priority:           priorityFor(d, score, daysInStage, daysUntilClose),
	}, nil
}

// wholeDays floors d to a day count; negative spans floor away from zero.
func wholeDays(d time.Duration) int {
	return int(math.Floor(d.Hours() / 24))
}

func riskScore(d domain.Deal, daysInStage, daysUntilClose int) float64 {
	score := 0.0

	dwell := dwellFor(d.Stage)
	switch {
	case daysInStage >= dwell.critical:
		score += dwellMaxScore
	case daysInStage >= dwell.high:
		score += dwellMaxScore * 0.75
	case daysInStage >= dwell.medium:
		score += dwellMaxScore * 0.5
	}

	// the loosest threshold is checked first, so any close within 90 days scores the maximum
	switch {
	case daysUntilClose <= closeThresholds.critical:
		score += closeMaxScore
	case daysUntilClose <= closeThresholds.high:
		score += closeMaxScore * 0.75
	case daysUntilClose <= closeThresholds.medium:
		score += closeMaxScore * 0.5
	}

	switch {
	case d.Value >= sizeThresholds.critical:
		score += sizeMaxScore
	case d.Value >= sizeThresholds.high:
		score += sizeMaxScore * 0.75
	case d.Value >= sizeThresholds.medium:
		score += sizeMaxScore * 0.5
	}

	probability := d.Stage.Probability()
	switch {
	case probability <= probabilityThresholds.critical:
		score += probabilityMaxScore
	case probability <= probabilityThresholds.high:
		score += probabilityMaxScore * 0.75
	case probability <= probabilityThresholds.medium:
		score += probabilityMaxScore * 0.5
	}

	return math.Min(score, 100)
}

func riskLevelFor(score float64) domain.RiskLevel {
	switch {
	case score >= 80:
		return domain.RiskCritical
	case score >= 60:
		return domain.RiskHigh
	case score >= 40:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

func priorityFor(d domain.Deal, score float64, daysInStage, daysUntilClose int) domain.Priority {
	switch {
	case d.Value >= highValueDeal && score >= 70:
		return domain.PriorityUrgent
	case daysUntilClose <= closingSoonDays && score >= 50:
		return domain.PriorityUrgent
	case daysInStage >= stallingDays && d.Value >= stallingValueDeal:
		return domain.PriorityHigh
	case score >= 70:
		return domain.PriorityHigh
	case score >= 50 || daysInStage >= stallingDays:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

func dealRiskFactors(d domain.Deal, daysInStage, daysUntilClose int) []string {
	factors := []string{}

	if daysInStage >= stallingDays {
		factors = append(factors, fmt.Sprintf("Stalled for %d days in %s stage", daysInStage, d.Stage))
	}
	if daysUntilClose <= closingWindowDays {
		factors = append(factors, fmt.Sprintf("Expected to close in %d days", daysUntilClose))
	}
	if d.Value >= highValueDeal {
		factors = append(factors, fmt.Sprintf("High-value deal ($%s)", formatMoney(d.Value)))
	}
	if p := d.Stage.Probability(); p <= lowConversionProb {
		factors = append(factors, fmt.Sprintf("Low conversion probability (%d%%)", roundHalfUp(p*100)))
	}

	return factors
}

func dealRecommendations(d domain.Deal, level domain.RiskLevel, daysInStage, daysUntilClose int) []string {
	recommendations := []string{}

	if daysInStage >= stallingDays {
		recommendations = append(recommendations,
			"🚨 IMMEDIATE: Schedule customer meeting to advance deal",
			"📞 Contact customer to understand blockers",
		)
	}
	if daysUntilClose <= closingSoonDays {
		recommendations = append(recommendations,
			"⏰ URGENT: Finalize proposal and send to customer",
			"🤝 Schedule closing meeting with decision makers",
		)
	}
	if level == domain.RiskCritical {
		recommendations = append(recommendations,
			"🔴 CRITICAL: Escalate to senior management",
			"💰 Consider discount or special terms to accelerate",
		)
	}
	if d.Value >= highValueDeal {
		recommendations = append(recommendations, "💎 High-value deal - ensure executive involvement")
	}
	if d.Stage.Probability() <= lowConversionProb {
		recommendations = append(recommendations, "🎯 Focus on qualification and discovery")
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, "✅ Deal appears healthy - maintain regular follow-up")
	}
	return recommendations
}

func trendInsights(trends []domain.DealTrend) domain.TrendInsights {
	insights := domain.TrendInsights{
		TotalDeals:       len(trends),
		DealsByRiskLevel: make(map[domain.RiskLevel]int, len(domain.RiskLevels)),
		DealsByPriority:  make(map[domain.Priority]int, len(domain.Priorities)),
	}
	for _, level := range domain.RiskLevels {
		insights.DealsByRiskLevel[level] = 0
	}
	for _, p := range domain.Priorities {
		insights.DealsByPriority[p] = 0
	}

	totalScore := 0.0
	highValueAtRisk := 0
	for _, t := range trends {
		insights.DealsByRiskLevel[t.RiskLevel]++
		insights.DealsByPriority[t.Priority]++
		totalScore += t.RiskScore

		if t.IsStalling {
			insights.StallingDeals++
		}
		if t.RiskLevel == domain.RiskHigh || t.RiskLevel == domain.RiskCritical {
			insights.HighRiskDeals++
			insights.TotalValueAtRisk += t.Value
		}
		if t.Value >= highValueDeal && t.RiskLevel != domain.RiskLow {
			highValueAtRisk++
		}
	}
	insights.AverageRiskScore = roundHalfUp(ratio(totalScore, float64(len(trends))))

	type portfolioRule struct {
		when func() bool
		text func() string
	}
	rules := []portfolioRule{
		{
			when: func() bool { return insights.DealsByRiskLevel[domain.RiskCritical] > 0 },
			text: func() string {
				return fmt.Sprintf("🚨 CRITICAL: %d deals need immediate attention", insights.DealsByRiskLevel[domain.RiskCritical])
			},
		},
		{
			when: func() bool { return insights.DealsByPriority[domain.PriorityUrgent] > 0 },
			text: func() string {
				return fmt.Sprintf("⚡ URGENT: Focus on %d high-priority deals first", insights.DealsByPriority[domain.PriorityUrgent])
			},
		},
		{
			when: func() bool { return insights.StallingDeals > 0 },
			text: func() string {
				return fmt.Sprintf("⏰ STALLING: %d deals have been inactive for 21+ days", insights.StallingDeals)
			},
		},
		{
			when: func() bool { return highValueAtRisk > 0 },
			text: func() string { return fmt.Sprintf("💰 HIGH VALUE: %d high-value deals at risk", highValueAtRisk) },
		},
	}

	insights.Recommendations = []string{}
	for _, rule := range rules {
		if rule.when() {
			insights.Recommendations = append(insights.Recommendations, rule.text())
		}
	}
	if len(insights.Recommendations) == 0 {
		insights.Recommendations = append(insights.Recommendations, "✅ Pipeline health appears good - maintain regular monitoring")
	}

	return insights
}
