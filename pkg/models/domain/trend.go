package domain

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

var RiskLevels = []RiskLevel{RiskLow, RiskMedium, RiskHigh, RiskCritical}

func (r RiskLevel) Known() bool {
	switch r {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return true
	default:
		return false
	}
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// Rank orders priorities, urgent highest. Unknown priorities rank 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

func (p Priority) Known() bool {
	return p.Rank() > 0
}

// DealTrend is the risk assessment of one open deal.
type DealTrend struct {
	DealID             string
	CompanyName        string
	SalesRep           string
	TransportationMode string
	CurrentStage       Stage
	Value              float64
	DaysInStage        int
	LastActivityDate   string
	RiskScore          float64
	RiskLevel          RiskLevel
	RiskFactors        []string
	Recommendations    []string
	StageProbability   float64
	ExpectedCloseDate  string
	DaysUntilClose     int
	IsStalling         bool
	Priority           Priority
}

type TrendInsights struct {
	TotalDeals       int
	StallingDeals    int
	HighRiskDeals    int
	AverageRiskScore int
	DealsByRiskLevel map[RiskLevel]int
	DealsByPriority  map[Priority]int
	TotalValueAtRisk float64
	Recommendations  []string
}

type TrendResult struct {
	Trends   []DealTrend
	Insights TrendInsights
}
