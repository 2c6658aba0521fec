package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

var ErrHealthcheckFailed = errors.New("postgres healthcheck failed")

type DB struct {
	*sql.DB
}

// Open connects to Postgres, retrying the initial ping up to attempts times.
func Open(ctx context.Context, dsn string, attempts int, interval time.Duration) (*DB, error) {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := range attempts {
		if err = sqlDB.PingContext(ctx); err == nil {
			return &DB{DB: sqlDB}, nil
		}
		if i == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			_ = sqlDB.Close()
			return nil, errors.Join(ctx.Err(), err)
		case <-time.After(interval):
		}
	}

	_ = sqlDB.Close()
	return nil, fmt.Errorf("postgres: ping: %w", err)
}

func (d *DB) Healthcheck(ctx context.Context) error {
	if err := d.PingContext(ctx); err != nil {
		return errors.Join(ErrHealthcheckFailed, err)
	}
	return nil
}
