package domain

// Deal is a single sales opportunity as supplied by the deal store.
type Deal struct {
	ID                 int64
	DealID             string
	CompanyName        string
	ContactName        string
	TransportationMode string
	Stage              Stage
	Value              float64
	Probability        float64 // informational, analytics derive probability from Stage
	CreatedDate        string
	UpdatedDate        string
	ExpectedCloseDate  string
	SalesRep           string
	OriginCity         string
	DestinationCity    string
	CargoType          string
}

// TransportationModes lists the modes the brokerage quotes.
var TransportationModes = []string{"trucking", "rail", "ocean", "air"}
