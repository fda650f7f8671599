package schema

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ddl is safe to run on every start
const ddl = `
CREATE TABLE IF NOT EXISTS companies (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	country TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	password_hash TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT companies_name_key UNIQUE (name),
	CONSTRAINT companies_email_key UNIQUE (email)
);

CREATE TABLE IF NOT EXISTS job_seekers (
	email TEXT PRIMARY KEY,
	first_name TEXT NOT NULL DEFAULT '',
	last_name TEXT NOT NULL DEFAULT '',
	expertise TEXT NOT NULL DEFAULT '',
	years_of_experience INTEGER NOT NULL DEFAULT 0,
	password_hash TEXT NOT NULL,
	applied TEXT[] NOT NULL DEFAULT '{}',
	accepted TEXT[] NOT NULL DEFAULT '{}',
	rejected TEXT[] NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS job_listings (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	company TEXT NOT NULL DEFAULT '',
	company_id TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	industry TEXT NOT NULL DEFAULT '',
	seniority TEXT NOT NULL DEFAULT '',
	applicants TEXT[] NOT NULL DEFAULT '{}',
	selected TEXT[] NOT NULL DEFAULT '{}',
	rejected TEXT[] NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS job_listings_company_id_idx ON job_listings (company_id);
CREATE INDEX IF NOT EXISTS job_listings_applicants_idx ON job_listings USING GIN (applicants);

CREATE TABLE IF NOT EXISTS ab_test_events (
	id TEXT PRIMARY KEY,
	session_id TEXT NOT NULL,
	variant TEXT NOT NULL DEFAULT '',
	event_type TEXT NOT NULL,
	occurred_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS ab_test_events_session_idx ON ab_test_events (session_id, occurred_at);
`

// Migrate creates the tables the repositories use
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
