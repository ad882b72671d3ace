package database

import (
	"context"
	"fmt"
)

// Schema statements are applied in order at startup. The two partial unique
// indexes on reservations are load-bearing: they are the storage-layer
// backstop that resolves racing admission attempts, so they must live here
// and not only in application checks.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		employee_uid  TEXT NOT NULL UNIQUE,
		email         TEXT NOT NULL,
		first_name    TEXT,
		last_name     TEXT,
		manager_name  TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS managers (
		id            UUID PRIMARY KEY,
		manager_name  TEXT NOT NULL UNIQUE,
		balance       NUMERIC(12,2) NOT NULL DEFAULT 0,
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS seats (
		id          UUID PRIMARY KEY,
		label       TEXT NOT NULL UNIQUE,
		row_label   TEXT NOT NULL,
		seat_number INT NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS timeslots (
		id         UUID PRIMARY KEY,
		starts_at  TIMESTAMPTZ NOT NULL,
		ends_at    TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		UNIQUE (starts_at, ends_at)
	)`,
	`CREATE TABLE IF NOT EXISTS reservations (
		id           UUID PRIMARY KEY,
		user_id      UUID NOT NULL REFERENCES users(id),
		seat_id      UUID NOT NULL REFERENCES seats(id),
		timeslot_id  UUID NOT NULL REFERENCES timeslots(id),
		status       TEXT NOT NULL,
		available_at TIMESTAMPTZ,
		created_at   TIMESTAMPTZ NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_seat_timeslot
		ON reservations (seat_id, timeslot_id) WHERE status = 'CONFIRMED'`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_user_timeslot
		ON reservations (user_id, timeslot_id) WHERE status = 'CONFIRMED'`,
	`CREATE INDEX IF NOT EXISTS idx_reservations_user_status
		ON reservations (user_id, status)`,
	`CREATE TABLE IF NOT EXISTS charges (
		id             UUID PRIMARY KEY,
		manager_id     UUID NOT NULL REFERENCES managers(id),
		reservation_id UUID NOT NULL UNIQUE REFERENCES reservations(id),
		amount         NUMERIC(12,2) NOT NULL,
		created_at     TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sessions (
		id         UUID PRIMARY KEY,
		user_id    UUID NOT NULL REFERENCES users(id),
		token      UUID NOT NULL UNIQUE,
		user_agent TEXT,
		ip_address TEXT,
		expires_at TIMESTAMPTZ NOT NULL,
		revoked_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL
	)`,
}

// Migrate applies the schema. Every statement is idempotent so it can run on
// each startup.
func Migrate(ctx context.Context, db PgxIface) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
