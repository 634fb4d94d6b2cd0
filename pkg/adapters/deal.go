package adapters

import (
	"time"

	"github.com/de-tools/deal-atlas/pkg/models/api"
	"github.com/de-tools/deal-atlas/pkg/models/domain"
	"github.com/de-tools/deal-atlas/pkg/models/store"
)

func formatDealDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func MapStoreDealToDomain(d store.Deal) domain.Deal {
	return domain.Deal{
		ID:                 d.ID,
		DealID:             d.DealID,
		CompanyName:        d.CompanyName,
		ContactName:        d.ContactName,
		TransportationMode: d.TransportationMode,
		Stage:              domain.Stage(d.Stage),
		Value:              d.Value,
		Probability:        d.Probability,
		CreatedDate:        formatDealDate(d.CreatedDate),
		UpdatedDate:        formatDealDate(d.UpdatedDate),
		ExpectedCloseDate:  formatDealDate(d.ExpectedCloseDate),
		SalesRep:           d.SalesRep,
		OriginCity:         d.OriginCity,
		DestinationCity:    d.DestinationCity,
		CargoType:          d.CargoType,
	}
}

func MapStoreDealsToDomain(deals []store.Deal) []domain.Deal {
	out := make([]domain.Deal, 0, len(deals))
	for _, d := range deals {
		out = append(out, MapStoreDealToDomain(d))
	}
	return out
}

// MapDomainDealToStore fails when one of the deal dates is not a valid ISO-8601 value.
func MapDomainDealToStore(d domain.Deal) (store.Deal, error) {
	created, err := domain.ParseDate("created_date", d.CreatedDate)
	if err != nil {
		return store.Deal{}, err
	}
	updated, err := domain.ParseDate("updated_date", d.UpdatedDate)
	if err != nil {
		return store.Deal{}, err
	}
	expectedClose, err := domain.ParseDate("expected_close_date", d.ExpectedCloseDate)
	if err != nil {
		return store.Deal{}, err
	}

	return store.Deal{
		ID:                 d.ID,
		DealID:             d.DealID,
		CompanyName:        d.CompanyName,
		ContactName:        d.ContactName,
		TransportationMode: d.TransportationMode,
		Stage:              string(d.Stage),
		Value:              d.Value,
		Probability:        d.Probability,
		CreatedDate:        created,
		UpdatedDate:        updated,
		ExpectedCloseDate:  expectedClose,
		SalesRep:           d.SalesRep,
		OriginCity:         d.OriginCity,
		DestinationCity:    d.DestinationCity,
		CargoType:          d.CargoType,
	}, nil
}

func MapDomainDealsToStore(deals []domain.Deal) ([]store.Deal, error) {
	out := make([]store.Deal, 0, len(deals))
	for _, d := range deals {
		sd, err := MapDomainDealToStore(d)
		if err != nil {
			return nil, err
		}
		out = append(out, sd)
	}
	return out, nil
}

func MapDealDomainToApi(d domain.Deal) api.Deal {
	return api.Deal{
		ID:                 d.ID,
		DealID:             d.DealID,
		CompanyName:        d.CompanyName,
		ContactName:        d.ContactName,
		TransportationMode: d.TransportationMode,
		Stage:              string(d.Stage),
		Value:              d.Value,
		Probability:        d.Probability,
		CreatedDate:        d.CreatedDate,
		UpdatedDate:        d.UpdatedDate,
		ExpectedCloseDate:  d.ExpectedCloseDate,
		SalesRep:           d.SalesRep,
		OriginCity:         d.OriginCity,
		DestinationCity:    d.DestinationCity,
		CargoType:          d.CargoType,
	}
}

func MapApiDealToDomain(d api.Deal) domain.Deal {
	return domain.Deal{
		ID:                 d.ID,
		DealID:             d.DealID,
		CompanyName:        d.CompanyName,
		ContactName:        d.ContactName,
		TransportationMode: d.TransportationMode,
		Stage:              domain.Stage(d.Stage),
		Value:              d.Value,
		Probability:        d.Probability,
		CreatedDate:        d.CreatedDate,
		UpdatedDate:        d.UpdatedDate,
		ExpectedCloseDate:  d.ExpectedCloseDate,
		SalesRep:           d.SalesRep,
		OriginCity:         d.OriginCity,
		DestinationCity:    d.DestinationCity,
		CargoType:          d.CargoType,
	}
}
