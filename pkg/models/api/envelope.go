package api

// Response is the envelope every analytics endpoint returns
type Response[T any] struct {
	Success bool     `json:"success"`
	Data    T        `json:"data"`
	Filters *Filters `json:"filters,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type Filters struct {
	Applied   any              `json:"applied"`
	Available AvailableFilters `json:"available"`
}

type AvailableFilters struct {
	TransportationModes []string `json:"transportationModes"`
	DealSizeCategories  []string `json:"dealSizeCategories"`
	Stages              []string `json:"stages,omitempty"`
	RiskLevels          []string `json:"riskLevels,omitempty"`
	Priorities          []string `json:"priorities,omitempty"`
	MonthsToForecast    int      `json:"monthsToForecast,omitempty"`
	QuotaTarget         *float64 `json:"quotaTarget,omitempty"`
}

// DealFilter is the request-side filter shape shared by all endpoints
type DealFilter struct {
	TransportationMode string `json:"transportationMode,omitempty"`
	SalesRep           string `json:"salesRep,omitempty"`
	DealSizeCategory   string `json:"dealSizeCategory,omitempty"`
	StartDate          string `json:"startDate,omitempty"`
	EndDate            string `json:"endDate,omitempty"`
}

type HistoricalFilters struct {
	DealFilter
	Stage string `json:"stage,omitempty"`
}

type TrendFilters struct {
	DealFilter
	RiskLevel  string `json:"riskLevel,omitempty"`
	Priority   string `json:"priority,omitempty"`
	IsStalling *bool  `json:"isStalling,omitempty"`
}

type HistoricalRequest struct {
	Filters HistoricalFilters `json:"filters"`
}

type ForecastRequest struct {
	Filters          DealFilter `json:"filters"`
	MonthsToForecast int        `json:"monthsToForecast"`
	QuotaTarget      *float64   `json:"quotaTarget"`
}

type TrendRequest struct {
	Filters TrendFilters `json:"filters"`
}

type SeedResult struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}
