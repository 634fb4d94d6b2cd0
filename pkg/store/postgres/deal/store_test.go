package deal

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dealColumns = []string{
	"id", "deal_id", "company_name", "contact_name", "transportation_mode", "stage",
	"value", "probability", "created_date", "updated_date", "expected_close_date",
	"sales_rep", "origin_city", "destination_city", "cargo_type",
}

func TestCRMStore_List(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2024, 12, 1, 9, 0, 0, 0, time.UTC)
	updated := time.Date(2024, 12, 15, 14, 30, 0, 0, time.UTC)
	closeAt := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows(dealColumns).
			AddRow(1, "RV-101", "TechCargo Solutions", "Alex Johnson", "air", "negotiation",
				85000.0, 60.0, created, updated, closeAt,
				"Tom Wilson", "San Francisco, CA", "Berlin, Germany", "Technology").
			AddRow(2, "RV-102", "Green Logistics Co", nil, "trucking", "proposal",
				35000.0, nil, created, updated, closeAt,
				"Jennifer Walsh", nil, nil, nil)
		mock.ExpectQuery(regexp.QuoteMeta(listQuery)).WillReturnRows(rows)

		s, err := NewStore(db)
		require.NoError(t, err)

		deals, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, deals, 2)

		assert.Equal(t, int64(1), deals[0].ID)
		assert.Equal(t, "Alex Johnson", deals[0].ContactName)
		assert.Equal(t, 60.0, deals[0].Probability)
		assert.Equal(t, closeAt, deals[0].ExpectedCloseDate)

		assert.Empty(t, deals[1].ContactName)
		assert.Empty(t, deals[1].CargoType)
		assert.Zero(t, deals[1].Probability)

		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(listQuery)).WillReturnError(errors.New("relation \"deals\" does not exist"))

		s, err := NewStore(db)
		require.NoError(t, err)

		_, err = s.List(ctx)
		assert.ErrorContains(t, err, "query crm deals")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCRMStore_Stats(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	last := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*), MAX(updated_date) FROM deals`)).
		WillReturnRows(sqlmock.NewRows([]string{"count", "max"}).AddRow(41, last))

	s, err := NewStore(db)
	require.NoError(t, err)

	stats, err := s.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(41), stats.RecordsCount)
	require.NotNil(t, stats.LastUpdateTime)
	assert.Equal(t, last, *stats.LastUpdateTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewStore_NilDB(t *testing.T) {
	_, err := NewStore(nil)
	assert.Error(t, err)
}
