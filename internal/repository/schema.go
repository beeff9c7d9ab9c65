package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            UUID PRIMARY KEY,
	username      VARCHAR(50) NOT NULL UNIQUE,
	full_name     VARCHAR(120) NOT NULL,
	gender        VARCHAR(30) NOT NULL,
	country       VARCHAR(40) NOT NULL DEFAULT 'USA',
	currency      VARCHAR(3) NOT NULL DEFAULT 'USD',
	password_hash TEXT NOT NULL,
	is_admin      BOOLEAN NOT NULL DEFAULT FALSE,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS debts (
	id                      UUID PRIMARY KEY,
	user_id                 UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	debt_name               VARCHAR(120) NOT NULL,
	total_balance           NUMERIC(14,2) NOT NULL CHECK (total_balance >= 0),
	apr                     NUMERIC(7,3) CHECK (apr >= 0),
	minimum_monthly_payment NUMERIC(14,2) NOT NULL DEFAULT 0 CHECK (minimum_monthly_payment >= 0),
	extra_monthly_payment   NUMERIC(14,2) NOT NULL DEFAULT 0 CHECK (extra_monthly_payment >= 0),
	is_active               BOOLEAN NOT NULL DEFAULT TRUE,
	created_at              TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at              TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_debts_user_active ON debts(user_id, is_active);

CREATE TABLE IF NOT EXISTS categories (
	id            UUID PRIMARY KEY,
	user_id       UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name          VARCHAR(80) NOT NULL,
	monthly_limit NUMERIC(14,2) NOT NULL DEFAULT 0 CHECK (monthly_limit >= 0),
	tag           VARCHAR(20) NOT NULL DEFAULT 'regular',
	is_system     BOOLEAN NOT NULL DEFAULT FALSE,
	is_active     BOOLEAN NOT NULL DEFAULT TRUE,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_categories_user_active ON categories(user_id, is_active);

CREATE TABLE IF NOT EXISTS category_limits (
	user_id       UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	category_id   UUID NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
	year          INTEGER NOT NULL,
	month         INTEGER NOT NULL CHECK (month BETWEEN 1 AND 12),
	monthly_limit NUMERIC(14,2) NOT NULL DEFAULT 0 CHECK (monthly_limit >= 0),
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (category_id, year, month)
);

CREATE TABLE IF NOT EXISTS budget_months (
	id           UUID PRIMARY KEY,
	user_id      UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	year         INTEGER NOT NULL,
	month        INTEGER NOT NULL CHECK (month BETWEEN 1 AND 12),
	salary       NUMERIC(14,2) NOT NULL DEFAULT 0,
	other_income NUMERIC(14,2) NOT NULL DEFAULT 0,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (user_id, year, month)
);

CREATE TABLE IF NOT EXISTS budget_income_sources (
	id              UUID PRIMARY KEY,
	budget_month_id UUID NOT NULL REFERENCES budget_months(id) ON DELETE CASCADE,
	name            VARCHAR(120) NOT NULL,
	amount          NUMERIC(14,2) NOT NULL DEFAULT 0,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS expenses (
	id           UUID PRIMARY KEY,
	user_id      UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	category_id  UUID NOT NULL REFERENCES categories(id),
	amount       NUMERIC(14,2) NOT NULL CHECK (amount > 0),
	expense_date DATE NOT NULL,
	note         TEXT,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_expenses_user_date ON expenses(user_id, expense_date);

CREATE TABLE IF NOT EXISTS tasks (
	id                   UUID PRIMARY KEY,
	user_id              UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	title                VARCHAR(140) NOT NULL,
	description          TEXT,
	due_date             DATE,
	priority             VARCHAR(10) NOT NULL DEFAULT 'medium',
	status               VARCHAR(20) NOT NULL DEFAULT 'pending',
	is_completed         BOOLEAN NOT NULL DEFAULT FALSE,
	alert_offset_minutes INTEGER,
	alert_channel        VARCHAR(10) NOT NULL DEFAULT 'app',
	alert_email          VARCHAR(255),
	alert_phone          VARCHAR(40),
	last_alerted_at      TIMESTAMPTZ,
	created_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_tasks_user_due ON tasks(user_id, due_date);

CREATE TABLE IF NOT EXISTS alerts (
	id         UUID PRIMARY KEY,
	user_id     UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	category_id UUID REFERENCES categories(id) ON DELETE SET NULL,
	year        INTEGER NOT NULL,
	month       INTEGER NOT NULL,
	code        VARCHAR(80) NOT NULL,
	level       VARCHAR(10) NOT NULL,
	message     TEXT NOT NULL,
	is_read     BOOLEAN NOT NULL DEFAULT FALSE,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_alerts_user ON alerts(user_id, is_read);
CREATE INDEX IF NOT EXISTS idx_alerts_code ON alerts(user_id, code, year, month);

CREATE TABLE IF NOT EXISTS suggestions (
	id         UUID PRIMARY KEY,
	user_id    UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	message    TEXT NOT NULL,
	status     VARCHAR(20) NOT NULL DEFAULT 'open',
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// Migrate creates the tables if they do not exist yet.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}
