package deals

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/deal-atlas/pkg/adapters"
	"github.com/de-tools/deal-atlas/pkg/models/domain"
	"github.com/de-tools/deal-atlas/pkg/models/store"
	"github.com/de-tools/deal-atlas/pkg/services/analytics"
	"github.com/rs/zerolog"
)

// Store is any source of persisted deals: the DuckDB store, a deal file or the CRM.
type Store interface {
	List(ctx context.Context) ([]store.Deal, error)
}

// Analyzer runs the analytics over the current deal book.
type Analyzer interface {
	ListDeals(ctx context.Context) ([]domain.Deal, error)
	Historical(ctx context.Context, filters domain.HistoricalFilters) (domain.HistoricalAnalysis, error)
	Forecast(ctx context.Context, req ForecastRequest) (domain.ForecastResult, error)
	Trends(ctx context.Context, filters domain.TrendFilters) (domain.TrendResult, error)
}

type ForecastRequest struct {
	Months      int
	QuotaTarget *float64
	Filters     domain.ForecastFilters
}

type Service struct {
	store         Store
	now           func() time.Time
	defaultMonths int
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithDefaultMonths sets the horizon used when a forecast request leaves it at zero.
func WithDefaultMonths(months int) Option {
	return func(s *Service) {
		if months > 0 {
			s.defaultMonths = months
		}
	}
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:         store,
		now:           time.Now,
		defaultMonths: analytics.DefaultForecastMonths,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) ListDeals(ctx context.Context) ([]domain.Deal, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load deals: %w", err)
	}
	return adapters.MapStoreDealsToDomain(records), nil
}

func (s *Service) Historical(ctx context.Context, filters domain.HistoricalFilters) (domain.HistoricalAnalysis, error) {
	deals, err := s.ListDeals(ctx)
	if err != nil {
		return domain.HistoricalAnalysis{}, err
	}

	result, err := analytics.CalculateHistoricalAnalysis(deals, filters)
	if err != nil {
		return domain.HistoricalAnalysis{}, err
	}

	zerolog.Ctx(ctx).Debug().
		Int("deals", len(deals)).
		Int("closed", result.Overall.TotalDeals).
		Float64("win_rate", result.Overall.WinRate).
		Msg("historical analysis computed")
	return result, nil
}

func (s *Service) Forecast(ctx context.Context, req ForecastRequest) (domain.ForecastResult, error) {
	deals, err := s.ListDeals(ctx)
	if err != nil {
		return domain.ForecastResult{}, err
	}

	months := req.Months
	if months == 0 {
		months = s.defaultMonths
	}

	result, err := analytics.CalculateRevenueForecast(deals, domain.ForecastOptions{
		Months:      months,
		QuotaTarget: req.QuotaTarget,
		Filters:     req.Filters,
		Now:         s.now(),
	})
	if err != nil {
		return domain.ForecastResult{}, err
	}

	zerolog.Ctx(ctx).Debug().
		Int("deals", len(deals)).
		Int("months", months).
		Float64("total", result.Insights.TotalPredictedRevenue).
		Msg("revenue forecast computed")
	return result, nil
}

func (s *Service) Trends(ctx context.Context, filters domain.TrendFilters) (domain.TrendResult, error) {
	deals, err := s.ListDeals(ctx)
	if err != nil {
		return domain.TrendResult{}, err
	}

	result, err := analytics.AnalyzeDealTrends(deals, filters, s.now())
	if err != nil {
		return domain.TrendResult{}, err
	}

	zerolog.Ctx(ctx).Debug().
		Int("deals", len(deals)).
		Int("open", result.Insights.TotalDeals).
		Int("high_risk", result.Insights.HighRiskDeals).
		Msg("deal trends computed")
	return result, nil
}
