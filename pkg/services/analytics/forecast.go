package analytics

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/de-tools/deal-atlas/pkg/models/domain"
)

const (
	DefaultForecastMonths = 6
	MaxForecastMonths     = 120
)

var ErrInvalidHorizon = errors.New("invalid forecast horizon")

var seasonalityFactors = map[time.Month]float64{
	time.January:   0.9,
	time.February:  0.85,
	time.March:     1.1,
	time.April:     1.0,
	time.May:       1.0,
	time.June:      1.2,
	time.July:      0.9,
	time.August:    0.9,
	time.September: 1.1,
	time.October:   1.0,
	time.November:  1.0,
	time.December:  1.3,
}

// SeasonalityFactor returns the demand multiplier for a calendar month.
func SeasonalityFactor(m time.Month) float64 {
	if f, ok := seasonalityFactors[m]; ok {
		return f
	}
	return 1.0
}

type historicalPattern struct {
	overallAverage  float64
	monthlyAverages map[time.Month]float64
	winRate         float64
}

// CalculateRevenueForecast projects monthly revenue starting at the month of opts.Now.
func CalculateRevenueForecast(deals []domain.Deal, opts domain.ForecastOptions) (domain.ForecastResult, error) {
	months := opts.Months
	if months == 0 {
		months = DefaultForecastMonths
	}
	if months < 0 {
		return domain.ForecastResult{}, fmt.Errorf("%w: months must be positive, got %d", ErrInvalidHorizon, months)
	}
	if months > MaxForecastMonths {
		return domain.ForecastResult{}, fmt.Errorf("%w: at most %d months, got %d", ErrInvalidHorizon, MaxForecastMonths, months)
	}

	filtered, err := filterDeals(deals, opts.Filters.DealFilter)
	if err != nil {
		return domain.ForecastResult{}, err
	}

	closeDates := make([]time.Time, len(filtered))
	for i, d := range filtered {
		if closeDates[i], err = domain.ParseDate(closeDateField, d.ExpectedCloseDate); err != nil {
			return domain.ForecastResult{}, err
		}
	}

	// patterns come from the whole book, not the filtered view
	history, err := calculateHistoricalPattern(deals)
	if err != nil {
		return domain.ForecastResult{}, err
	}

	now := opts.Now.UTC()
	forecast := make([]domain.RevenueForecast, 0, months)
	starts := make([]time.Time, 0, months)

	for i := 0; i < months; i++ {
		start := time.Date(now.Year(), now.Month()+time.Month(i), 1, 0, 0, 0, 0, time.UTC)

		var monthDeals []domain.Deal
		for j, d := range filtered {
			if closeDates[j].Year() == start.Year() && closeDates[j].Month() == start.Month() {
				monthDeals = append(monthDeals, d)
			}
		}

		weighted := 0.0
		for _, d := range monthDeals {
			weighted += d.Value * d.Stage.Probability()
		}

		historicalAverage := history.overallAverage
		if avg := history.monthlyAverages[start.Month()]; avg != 0 {
			historicalAverage = avg
		}

		predicted := round2(weighted * SeasonalityFactor(start.Month()))
		historicalAverage = round2(historicalAverage)

		forecast = append(forecast, domain.RevenueForecast{
			Month:             start.Format(monthKeyLayout),
			PredictedRevenue:  predicted,
			Confidence:        round2(forecastConfidence(monthDeals)),
			DealCount:         len(monthDeals),
			WeightedValue:     round2(weighted),
			HistoricalAverage: historicalAverage,
			Trend:             classifyTrend(predicted, historicalAverage),
		})
		starts = append(starts, start)
	}

	return domain.ForecastResult{
		Forecast: forecast,
		Insights: forecastInsights(newForecastSummary(forecast, starts, opts.QuotaTarget, history)),
	}, nil
}

func calculateHistoricalPattern(deals []domain.Deal) (historicalPattern, error) {
	var closed, won int
	var wonTotal float64
	monthlyTotals := make(map[time.Month]float64)
	monthlyCounts := make(map[time.Month]int)

	for _, d := range deals {
		if !d.Stage.Closed() {
			continue
		}
		closed++
		if d.Stage != domain.StageClosedWon {
			continue
		}

		closeDate, err := domain.ParseDate(closeDateField, d.ExpectedCloseDate)
		if err != nil {
			return historicalPattern{}, err
		}
		won++
		wonTotal += d.Value
		monthlyTotals[closeDate.Month()] += d.Value
		monthlyCounts[closeDate.Month()]++
	}

	p := historicalPattern{
		overallAverage:  ratio(wonTotal, float64(won)),
		monthlyAverages: make(map[time.Month]float64, len(monthlyTotals)),
		winRate:         ratio(float64(won), float64(closed)),
	}
	for m, total := range monthlyTotals {
		p.monthlyAverages[m] = total / float64(monthlyCounts[m])
	}
	return p, nil
}

// forecastConfidence weights deal volume and late-stage share, capped at 0.95.
func forecastConfidence(monthDeals []domain.Deal) float64 {
	if len(monthDeals) == 0 {
		return 0.3
	}

	n := float64(len(monthDeals))
	confidence := math.Min(n/10, 0.8)

	late := 0
	for _, d := range monthDeals {
		if d.Stage == domain.StageNegotiation || d.Stage == domain.StageProposal {
			late++
		}
	}
	confidence += float64(late) / n * 0.2

	return math.Min(confidence, 0.95)
}

func classifyTrend(predicted, historical float64) domain.Trend {
	switch {
	case predicted > historical*1.1:
		return domain.TrendIncreasing
	case predicted < historical*0.9:
		return domain.TrendDecreasing
	default:
		return domain.TrendStable
	}
}

// roundHalfUp rounds .5 toward positive infinity.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
