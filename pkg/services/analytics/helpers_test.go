package analytics

import (
	"time"

	"github.com/de-tools/deal-atlas/pkg/models/domain"
)

var testNow = time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)

func newDeal(id, mode, rep string, stage domain.Stage, value float64, closeDate string) domain.Deal {
	return domain.Deal{
		DealID:             id,
		CompanyName:        id + " Logistics",
		TransportationMode: mode,
		SalesRep:           rep,
		Stage:              stage,
		Value:              value,
		Probability:        stage.Probability() * 100,
		CreatedDate:        "2024-01-01T00:00:00Z",
		UpdatedDate:        "2025-03-14T00:00:00Z",
		ExpectedCloseDate:  closeDate,
	}
}

func withUpdated(d domain.Deal, updated string) domain.Deal {
	d.UpdatedDate = updated
	return d
}

func floatPtr(v float64) *float64 {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}
