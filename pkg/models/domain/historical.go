package domain

// WinRateAnalysis summarizes closed deals for one group.
type WinRateAnalysis struct {
	TotalDeals          int
	WonDeals            int
	LostDeals           int
	WinRate             float64 // percent, 2 decimals
	TotalValue          float64
	WonValue            float64
	LostValue           float64
	AverageDealSize     float64
	AverageWonDealSize  float64
	AverageLostDealSize float64
}

type HistoricalAnalysis struct {
	Overall              WinRateAnalysis
	ByTransportationMode map[string]WinRateAnalysis
	BySalesRep           map[string]WinRateAnalysis
	ByDealSize           map[SizeCategory]WinRateAnalysis
	ByTimePeriod         map[string]WinRateAnalysis // keyed YYYY-MM
	Insights             []string
}
