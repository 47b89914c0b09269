package postgres

import (
	"context"
	"fmt"
)

// schema creates the tables used by the service. Statements are idempotent
// so Migrate can run on every start.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		name          TEXT        NOT NULL,
		email         TEXT        NOT NULL UNIQUE,
		password_hash TEXT        NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS rides (
		id              BIGSERIAL PRIMARY KEY,
		user_id         BIGINT      NOT NULL REFERENCES users (id),
		pickup_location TEXT        NOT NULL,
		drop_location   TEXT        NOT NULL,
		date_time       TIMESTAMPTZ NOT NULL,
		status          TEXT        NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_rides_user_date_time ON rides (user_id, date_time DESC)`,
}

// Migrate applies the schema.
func Migrate(ctx context.Context, q Querier) error {
	for i, stmt := range schema {
		if _, err := q.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement %d: %w", i, err)
		}
	}
	return nil
}
