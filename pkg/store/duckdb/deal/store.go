package deal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/de-tools/deal-atlas/pkg/models/store"
	"github.com/de-tools/deal-atlas/pkg/store/duckdb"
)

// Store persists deals in DuckDB. Writes join the transaction carried by the
// context when there is one.
type Store interface {
	Add(ctx context.Context, deals []store.Deal) error
	Replace(ctx context.Context, deals []store.Deal) error
	List(ctx context.Context) ([]store.Deal, error)
	Stats(ctx context.Context) (store.DealStats, error)
}

type dealStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &dealStore{
		db: db,
	}, nil
}

const insertDeal = `
	INSERT INTO deals (
		deal_id, company_name, contact_name, transportation_mode, stage,
		value, probability, created_date, updated_date, expected_close_date,
		sales_rep, origin_city, destination_city, cargo_type
	) VALUES (
		?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
	)`

func (s *dealStore) Add(ctx context.Context, deals []store.Deal) error {
	if len(deals) == 0 {
		return nil
	}
	if err := checkUnique(deals); err != nil {
		return err
	}

	return duckdb.InTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return insertDeals(ctx, tx, deals)
	})
}

func (s *dealStore) Replace(ctx context.Context, deals []store.Deal) error {
	if err := checkUnique(deals); err != nil {
		return err
	}

	return duckdb.InTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM deals`); err != nil {
			return fmt.Errorf("clear deals: %w", err)
		}
		return insertDeals(ctx, tx, deals)
	})
}

// checkUnique rejects batches that repeat a deal_id.
func checkUnique(deals []store.Deal) error {
	seen := make(map[string]struct{}, len(deals))
	for _, d := range deals {
		if _, ok := seen[d.DealID]; ok {
			return fmt.Errorf("duplicate deal id: %s", d.DealID)
		}
		seen[d.DealID] = struct{}{}
	}
	return nil
}

func insertDeals(ctx context.Context, tx *sql.Tx, deals []store.Deal) error {
	if len(deals) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, insertDeal)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, d := range deals {
		_, err = stmt.ExecContext(ctx,
			d.DealID,
			d.CompanyName,
			d.ContactName,
			d.TransportationMode,
			d.Stage,
			d.Value,
			d.Probability,
			d.CreatedDate,
			d.UpdatedDate,
			d.ExpectedCloseDate,
			d.SalesRep,
			d.OriginCity,
			d.DestinationCity,
			d.CargoType,
		)
		if err != nil {
			return fmt.Errorf("insert deal %s: %w", d.DealID, err)
		}
	}

	return nil
}

func (s *dealStore) List(ctx context.Context) ([]store.Deal, error) {
	query := `
		SELECT id, deal_id, company_name, contact_name, transportation_mode, stage,
			value, probability, created_date, updated_date, expected_close_date,
			sales_rep, origin_city, destination_city, cargo_type
		FROM deals
		ORDER BY id
	`

	var rows *sql.Rows
	var err error
	if tx := duckdb.GetTransaction(ctx); tx != nil {
		rows, err = tx.QueryContext(ctx, query)
	} else {
		rows, err = s.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("query deals: %w", err)
	}
	defer rows.Close()

	return scanDealRows(rows)
}

func (s *dealStore) Stats(ctx context.Context) (store.DealStats, error) {
	var total int64
	var lastUpdate sql.NullTime

	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*), MAX(updated_date) FROM deals`).Scan(&total, &lastUpdate)
	if err != nil {
		return store.DealStats{}, fmt.Errorf("get deal stats: %w", err)
	}

	stats := store.DealStats{RecordsCount: total}
	if lastUpdate.Valid {
		t := lastUpdate.Time
		stats.LastUpdateTime = &t
	}
	return stats, nil
}

func scanDealRows(rows *sql.Rows) ([]store.Deal, error) {
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
			return nil, err
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
	return deals, rows.Err()
}
