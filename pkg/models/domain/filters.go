package domain

// DealFilter holds the predicates shared by every analysis. Empty fields impose
// no constraint.
type DealFilter struct {
	TransportationMode string
	SalesRep           string
	DealSizeCategory   string
	StartDate          string // inclusive bound on ExpectedCloseDate
	EndDate            string // inclusive bound on ExpectedCloseDate
}

type HistoricalFilters struct {
	DealFilter
	Stage Stage
}

type ForecastFilters struct {
	DealFilter
}

// TrendFilters adds predicates on derived fields, applied after scoring.
type TrendFilters struct {
	DealFilter
	RiskLevel  RiskLevel
	Priority   Priority
	IsStalling *bool
}
