package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const DealSequence = `
	CREATE SEQUENCE IF NOT EXISTS deals_id_seq START 1;
`

const DealTableSchema = `
	CREATE TABLE IF NOT EXISTS deals (
		id BIGINT NOT NULL DEFAULT nextval('deals_id_seq'),
		deal_id VARCHAR NOT NULL,
		company_name VARCHAR NOT NULL,
		contact_name VARCHAR,
		transportation_mode VARCHAR NOT NULL,
		stage VARCHAR NOT NULL,
		value DOUBLE NOT NULL,
		probability DOUBLE,
		created_date TIMESTAMP NOT NULL,
		updated_date TIMESTAMP NOT NULL,
		expected_close_date TIMESTAMP NOT NULL,
		sales_rep VARCHAR NOT NULL,
		origin_city VARCHAR,
		destination_city VARCHAR,
		cargo_type VARCHAR
	);
`

const SyncRunTableSchema = `
	CREATE TABLE IF NOT EXISTS sync_runs (
		id VARCHAR NOT NULL PRIMARY KEY,
		profile VARCHAR NOT NULL,
		started_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		finished_at TIMESTAMP NULL,
		imported BIGINT NOT NULL DEFAULT 0,
		error VARCHAR NULL
	);
`

var bootQueries = []string{
	DealSequence,
	DealTableSchema,
	SyncRunTableSchema,
}

type Settings struct {
	DbPath string
}

func NewDB(settings Settings) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
