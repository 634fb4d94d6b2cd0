package api

type WinRateAnalysis struct {
	TotalDeals          int     `json:"totalDeals"`
	WonDeals            int     `json:"wonDeals"`
	LostDeals           int     `json:"lostDeals"`
	WinRate             float64 `json:"winRate"`
	TotalValue          float64 `json:"totalValue"`
	WonValue            float64 `json:"wonValue"`
	LostValue           float64 `json:"lostValue"`
	AverageDealSize     float64 `json:"averageDealSize"`
	AverageWonDealSize  float64 `json:"averageWonDealSize"`
	AverageLostDealSize float64 `json:"averageLostDealSize"`
}

type HistoricalAnalysis struct {
	Overall              WinRateAnalysis            `json:"overall"`
	ByTransportationMode map[string]WinRateAnalysis `json:"byTransportationMode"`
	BySalesRep           map[string]WinRateAnalysis `json:"bySalesRep"`
	ByDealSize           map[string]WinRateAnalysis `json:"byDealSize"`
	ByTimePeriod         map[string]WinRateAnalysis `json:"byTimePeriod"`
	Insights             []string                   `json:"insights"`
}

type RevenueForecast struct {
	Month             string  `json:"month"`
	PredictedRevenue  float64 `json:"predictedRevenue"`
	Confidence        float64 `json:"confidence"`
	DealCount         int     `json:"dealCount"`
	WeightedValue     float64 `json:"weightedValue"`
	HistoricalAverage float64 `json:"historicalAverage"`
	Trend             string  `json:"trend"`
}

type ForecastInsights struct {
	TotalPredictedRevenue float64  `json:"totalPredictedRevenue"`
	AverageMonthlyRevenue float64  `json:"averageMonthlyRevenue"`
	TrendAnalysis         string   `json:"trendAnalysis"`
	RiskFactors           []string `json:"riskFactors"`
	Recommendations       []string `json:"recommendations"`
	QuotaGap              *float64 `json:"quotaGap,omitempty"`
	QuotaTarget           *float64 `json:"quotaTarget,omitempty"`
}

type ForecastResult struct {
	Forecast []RevenueForecast `json:"forecast"`
	Insights ForecastInsights  `json:"insights"`
}

type DealTrend struct {
	DealID             string   `json:"dealId"`
	CompanyName        string   `json:"companyName"`
	SalesRep           string   `json:"salesRep"`
	TransportationMode string   `json:"transportationMode"`
	CurrentStage       string   `json:"currentStage"`
	Value              float64  `json:"value"`
	DaysInStage        int      `json:"daysInStage"`
	LastActivityDate   string   `json:"lastActivityDate"`
	RiskScore          float64  `json:"riskScore"`
	RiskLevel          string   `json:"riskLevel"`
	RiskFactors        []string `json:"riskFactors"`
	Recommendations    []string `json:"recommendations"`
	StageProbability   float64  `json:"stageProbability"`
	ExpectedCloseDate  string   `json:"expectedCloseDate"`
	DaysUntilClose     int      `json:"daysUntilClose"`
	IsStalling         bool     `json:"isStalling"`
	Priority           string   `json:"priority"`
}

type TrendInsights struct {
	TotalDeals       int            `json:"totalDeals"`
	StallingDeals    int            `json:"stallingDeals"`
	HighRiskDeals    int            `json:"highRiskDeals"`
	AverageRiskScore int            `json:"averageRiskScore"`
	DealsByRiskLevel map[string]int `json:"dealsByRiskLevel"`
	DealsByPriority  map[string]int `json:"dealsByPriority"`
	TotalValueAtRisk float64        `json:"totalValueAtRisk"`
	Recommendations  []string       `json:"recommendations"`
}

type TrendResult struct {
	Trends   []DealTrend   `json:"trends"`
	Insights TrendInsights `json:"insights"`
}
