package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const DriverName = "pgx"

type Settings struct {
	Driver      string
	DSN         string
	PingTimeout time.Duration
}

// Open connects to the CRM database and verifies the connection.
func Open(ctx context.Context, settings Settings) (*sql.DB, error) {
	driver := settings.Driver
	if driver == "" {
		driver = DriverName
	}

	db, err := sql.Open(driver, settings.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s connection: %w", driver, err)
	}

	timeout := settings.PingTimeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, nil
}
