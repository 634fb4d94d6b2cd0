package store

import "time"

type Deal struct {
	ID                 int64
	DealID             string
	CompanyName        string
	ContactName        string
	TransportationMode string
	Stage              string
	Value              float64
	Probability        float64
	CreatedDate        time.Time
	UpdatedDate        time.Time
	ExpectedCloseDate  time.Time
	SalesRep           string
	OriginCity         string
	DestinationCity    string
	CargoType          string
}

type DealStats struct {
	RecordsCount   int64
	LastUpdateTime *time.Time
}
