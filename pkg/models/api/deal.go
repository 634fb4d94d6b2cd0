package api

type Deal struct {
	ID                 int64   `json:"id"`
	DealID             string  `json:"deal_id"`
	CompanyName        string  `json:"company_name"`
	ContactName        string  `json:"contact_name"`
	TransportationMode string  `json:"transportation_mode"`
	Stage              string  `json:"stage"`
	Value              float64 `json:"value"`
	Probability        float64 `json:"probability"`
	CreatedDate        string  `json:"created_date"`
	UpdatedDate        string  `json:"updated_date"`
	ExpectedCloseDate  string  `json:"expected_close_date"`
	SalesRep           string  `json:"sales_rep"`
	OriginCity         string  `json:"origin_city"`
	DestinationCity    string  `json:"destination_city"`
	CargoType          string  `json:"cargo_type"`
}
