package analytics

import (
	"fmt"

	"github.com/de-tools/deal-atlas/pkg/models/domain"
)

const (
	lowWinRate       = 50.0
	strongWinRate    = 70.0
	sizeGapThreshold = 20.0
	modeGapThreshold = 30.0
	coachingWinRate  = 40.0
	coachingMinDeals = 5
	mentorWinRate    = 70.0

	monthKeyLayout = "2006-01"
	closeDateField = "expected_close_date"
)

// CalculateHistoricalAnalysis aggregates win/loss statistics over closed deals.
func CalculateHistoricalAnalysis(deals []domain.Deal, filters domain.HistoricalFilters) (domain.HistoricalAnalysis, error) {
	filtered, err := filterDeals(deals, filters.DealFilter)
	if err != nil {
		return domain.HistoricalAnalysis{}, err
	}

	if filters.Stage != "" {
		filtered, _ = applyPredicates(filtered, stageIs(filters.Stage))
	}

	closed, _ := applyPredicates(filtered, closedOnly)

	modeGroups, _ := groupBy(closed, func(d domain.Deal) (string, error) { return d.TransportationMode, nil })
	repGroups, _ := groupBy(closed, func(d domain.Deal) (string, error) { return d.SalesRep, nil })
	monthGroups, err := groupBy(closed, func(d domain.Deal) (string, error) {
		t, err := domain.ParseDate(closeDateField, d.ExpectedCloseDate)
		if err != nil {
			return "", err
		}
		return t.Format(monthKeyLayout), nil
	})
	if err != nil {
		return domain.HistoricalAnalysis{}, err
	}

	bySize := make(map[domain.SizeCategory]domain.WinRateAnalysis, len(domain.SizeCategories))
	for _, category := range domain.SizeCategories {
		inBucket, _ := applyPredicates(closed, func(d domain.Deal) (bool, error) {
			return category.Contains(d.Value), nil
		})
		bySize[category] = calculateWinRate(inBucket)
	}

	result := domain.HistoricalAnalysis{
		Overall:              calculateWinRate(closed),
		ByTransportationMode: modeGroups.analyze(),
		BySalesRep:           repGroups.analyze(),
		ByDealSize:           bySize,
		ByTimePeriod:         monthGroups.analyze(),
	}
	result.Insights = historicalInsights(result, modeGroups.order, repGroups.order)

	return result, nil
}

func calculateWinRate(deals []domain.Deal) domain.WinRateAnalysis {
	var won, lost int
	var totalValue, wonValue, lostValue float64

	for _, d := range deals {
		totalValue += d.Value
		switch d.Stage {
		case domain.StageClosedWon:
			won++
			wonValue += d.Value
		case domain.StageClosedLost:
			lost++
			lostValue += d.Value
		}
	}

	total := len(deals)
	return domain.WinRateAnalysis{
		TotalDeals:          total,
		WonDeals:            won,
		LostDeals:           lost,
		WinRate:             round2(ratio(float64(won), float64(total)) * 100),
		TotalValue:          round2(totalValue),
		WonValue:            round2(wonValue),
		LostValue:           round2(lostValue),
		AverageDealSize:     round2(ratio(totalValue, float64(total))),
		AverageWonDealSize:  round2(ratio(wonValue, float64(won))),
		AverageLostDealSize: round2(ratio(lostValue, float64(lost))),
	}
}

// dealGroups keeps groups in first-seen order so insight tie-breaks are stable.
type dealGroups struct {
	order  []string
	groups map[string][]domain.Deal
}

func (g dealGroups) analyze() map[string]domain.WinRateAnalysis {
	out := make(map[string]domain.WinRateAnalysis, len(g.groups))
	for key, deals := range g.groups {
		out[key] = calculateWinRate(deals)
	}
	return out
}

func groupBy(deals []domain.Deal, key func(domain.Deal) (string, error)) (dealGroups, error) {
	g := dealGroups{groups: make(map[string][]domain.Deal)}
	for _, d := range deals {
		k, err := key(d)
		if err != nil {
			return dealGroups{}, err
		}
		if _, ok := g.groups[k]; !ok {
			g.order = append(g.order, k)
		}
		g.groups[k] = append(g.groups[k], d)
	}
	return g, nil
}

func historicalInsights(a domain.HistoricalAnalysis, modeOrder, repOrder []string) []string {
	insights := []string{}

	if a.Overall.WinRate < lowWinRate {
		insights = append(insights, "Overall win rate is below 50%, indicating need for sales process improvement")
	}
	if a.Overall.WinRate > strongWinRate {
		insights = append(insights, "Strong overall win rate above 70% - excellent sales performance")
	}

	small := a.ByDealSize[domain.SizeSmall]
	enterprise := a.ByDealSize[domain.SizeEnterprise]
	if small.TotalDeals > 0 && enterprise.TotalDeals > 0 {
		if small.WinRate > enterprise.WinRate+sizeGapThreshold {
			insights = append(insights, "Team excels at small deals but struggles with enterprise deals - consider enterprise sales training")
		}
		if enterprise.WinRate > small.WinRate+sizeGapThreshold {
			insights = append(insights, "Team performs well on enterprise deals but may need help with smaller, high-volume deals")
		}
	}

	if len(modeOrder) > 1 {
		best, worst := modeOrder[0], modeOrder[0]
		for _, mode := range modeOrder[1:] {
			if a.ByTransportationMode[mode].WinRate > a.ByTransportationMode[best].WinRate {
				best = mode
			}
			if a.ByTransportationMode[mode].WinRate < a.ByTransportationMode[worst].WinRate {
				worst = mode
			}
		}
		bestRate := a.ByTransportationMode[best].WinRate
		worstRate := a.ByTransportationMode[worst].WinRate
		if bestRate-worstRate > modeGapThreshold {
			insights = append(insights, fmt.Sprintf(
				"Significant performance gap: %s (%s%%) vs %s (%s%%) - consider cross-training",
				best, formatNumber(bestRate), worst, formatNumber(worstRate),
			))
		}
	}

	if len(repOrder) > 1 {
		top := repOrder[0]
		needsHelp := 0
		for _, rep := range repOrder {
			stats := a.BySalesRep[rep]
			if stats.WinRate > a.BySalesRep[top].WinRate {
				top = rep
			}
			if stats.WinRate < coachingWinRate && stats.TotalDeals >= coachingMinDeals {
				needsHelp++
			}
		}

		if needsHelp > 0 {
			insights = append(insights, fmt.Sprintf(
				"%d sales rep(s) with win rates below 40%% may need additional coaching", needsHelp,
			))
		}
		if topRate := a.BySalesRep[top].WinRate; topRate > mentorWinRate {
			insights = append(insights, fmt.Sprintf(
				"%s is a top performer (%s%% win rate) - consider having them mentor others",
				top, formatNumber(topRate),
			))
		}
	}

	return insights
}
