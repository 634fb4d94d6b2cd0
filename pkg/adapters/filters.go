package adapters

import (
	"github.com/de-tools/deal-atlas/pkg/models/api"
	"github.com/de-tools/deal-atlas/pkg/models/domain"
)

func MapDealFilterApiToDomain(f api.DealFilter) domain.DealFilter {
	return domain.DealFilter{
		TransportationMode: f.TransportationMode,
		SalesRep:           f.SalesRep,
		DealSizeCategory:   f.DealSizeCategory,
		StartDate:          f.StartDate,
		EndDate:            f.EndDate,
	}
}

func MapHistoricalFiltersApiToDomain(f api.HistoricalFilters) domain.HistoricalFilters {
	return domain.HistoricalFilters{
		DealFilter: MapDealFilterApiToDomain(f.DealFilter),
		Stage:      domain.Stage(f.Stage),
	}
}

func MapTrendFiltersApiToDomain(f api.TrendFilters) domain.TrendFilters {
	return domain.TrendFilters{
		DealFilter: MapDealFilterApiToDomain(f.DealFilter),
		RiskLevel:  domain.RiskLevel(f.RiskLevel),
		Priority:   domain.Priority(f.Priority),
		IsStalling: f.IsStalling,
	}
}

// AvailableFilters lists the filter vocabulary advertised next to every report.
func AvailableFilters() api.AvailableFilters {
	sizes := make([]string, 0, len(domain.SizeCategories))
	for _, c := range domain.SizeCategories {
		sizes = append(sizes, string(c))
	}

	return api.AvailableFilters{
		TransportationModes: append([]string(nil), domain.TransportationModes...),
		DealSizeCategories:  sizes,
	}
}

func AvailableHistoricalFilters() api.AvailableFilters {
	available := AvailableFilters()
	for _, s := range domain.Stages {
		available.Stages = append(available.Stages, string(s))
	}
	return available
}

func AvailableTrendFilters() api.AvailableFilters {
	available := AvailableFilters()
	for _, l := range domain.RiskLevels {
		available.RiskLevels = append(available.RiskLevels, string(l))
	}
	for _, p := range domain.Priorities {
		available.Priorities = append(available.Priorities, string(p))
	}
	return available
}

func AvailableForecastFilters(months int, quotaTarget *float64) api.AvailableFilters {
	available := AvailableFilters()
	available.MonthsToForecast = months
	available.QuotaTarget = quotaTarget
	return available
}
