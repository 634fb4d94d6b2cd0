package deal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/de-tools/deal-atlas/pkg/models/store"
)

// Store reads deals from the CRM. It never writes.
type Store interface {
	List(ctx context.Context) ([]store.Deal, error)
	Stats(ctx context.Context) (store.DealStats, error)
}

type crmStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &crmStore{
		db: db,
	}, nil
}

const listQuery = `
		SELECT id, deal_id, company_name, contact_name, transportation_mode, stage,
			value, probability, created_date, updated_date, expected_close_date,
			sales_rep, origin_city, destination_city, cargo_type
		FROM deals
		ORDER BY id`

func (s *crmStore) List(ctx context.Context) ([]store.Deal, error) {
	rows, err := s.db.QueryContext(ctx, listQuery)
	if err != nil {
		return nil, fmt.Errorf("query crm deals: %w", err)
	}
	defer rows.Close()

	deals := make([]store.Deal, 0)
	for rows.Next() {
		var (
			d                                   store.Deal
			contact, origin, destination, cargo sql.NullString
			probability                         sql.NullFloat64
			created, updated, expectedClose     time.Time
		)
		err := rows.Scan(
			&d.ID, &d.DealID, &d.CompanyName, &contact, &d.TransportationMode, &d.Stage,
			&d.Value, &probability, &created, &updated, &expectedClose,
			&d.SalesRep, &origin, &destination, &cargo,
		)
		if err != nil {
			return nil, fmt.Errorf("scan crm deal: %w", err)
		}

		d.ContactName = contact.String
		d.OriginCity = origin.String
		d.DestinationCity = destination.String
		d.CargoType = cargo.String
		d.Probability = probability.Float64
		d.CreatedDate = created.UTC()
		d.UpdatedDate = updated.UTC()
		d.ExpectedCloseDate = expectedClose.UTC()

		deals = append(deals, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate crm deals: %w", err)
	}
	return deals, nil
}

func (s *crmStore) Stats(ctx context.Context) (store.DealStats, error) {
	var total int64
	var lastUpdate sql.NullTime

	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*), MAX(updated_date) FROM deals`).Scan(&total, &lastUpdate)
	if err != nil {
		return store.DealStats{}, fmt.Errorf("get crm deal stats: %w", err)
	}

	stats := store.DealStats{RecordsCount: total}
	if lastUpdate.Valid {
		t := lastUpdate.Time.UTC()
		stats.LastUpdateTime = &t
	}
	return stats, nil
}
