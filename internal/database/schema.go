package database

import "fmt"

// schemaStatements create the two durable tables on first startup.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS products (
		id               TEXT PRIMARY KEY,
		name             TEXT NOT NULL,
		name_hi          TEXT NOT NULL DEFAULT '',
		description      TEXT NOT NULL DEFAULT '',
		description_hi   TEXT NOT NULL DEFAULT '',
		price            NUMERIC(12,2) NOT NULL,
		discounted_price NUMERIC(12,2) NOT NULL,
		security_deposit NUMERIC(12,2) NOT NULL DEFAULT 0,
		category         TEXT NOT NULL,
		image_url        TEXT NOT NULL DEFAULT '',
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id                  UUID PRIMARY KEY,
		booking_id          TEXT NOT NULL UNIQUE,
		name                TEXT NOT NULL,
		mobile              TEXT NOT NULL,
		email               TEXT,
		cart_items          JSONB NOT NULL,
		emergency_contact   JSONB NOT NULL,
		rental_start        TEXT NOT NULL,
		rental_end          TEXT NOT NULL,
		delivery_address    TEXT NOT NULL,
		delivery_latitude   DOUBLE PRECISION,
		delivery_longitude  DOUBLE PRECISION,
		total_amount        NUMERIC(12,2) NOT NULL,
		security_deposit    NUMERIC(12,2) NOT NULL,
		razorpay_order_id   TEXT,
		razorpay_payment_id TEXT,
		payment_status      TEXT NOT NULL DEFAULT 'pending',
		payment_link        TEXT,
		kyc_id_proof        TEXT,
		kyc_selfie          TEXT,
		status              TEXT NOT NULL DEFAULT 'pending',
		created_at          TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_razorpay_order_id ON bookings (razorpay_order_id)`,
}

// CreateSchema applies the table definitions, tolerating re-runs
func CreateSchema(db DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}
