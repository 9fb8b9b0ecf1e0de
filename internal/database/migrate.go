package database

import (
	"context"
	"fmt"
)

// Sources must exist before expenses because of the foreign key.
const postgresSchema = `
CREATE TABLE IF NOT EXISTS sources (
    id BIGSERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    type TEXT NOT NULL,
    CONSTRAINT sources_name_key UNIQUE (name)
);

CREATE TABLE IF NOT EXISTS expenses (
    id BIGSERIAL PRIMARY KEY,
    description TEXT NOT NULL,
    amount NUMERIC(12, 2) NOT NULL,
    date DATE NOT NULL,
    category TEXT,
    notes TEXT,
    source_id BIGINT NOT NULL REFERENCES sources(id),
    installment_count INTEGER,
    installment_number INTEGER,
    installment_amount NUMERIC(12, 2),
    CONSTRAINT expense_amount_positive CHECK (amount >= 0)
);

CREATE TABLE IF NOT EXISTS expense_splits (
    expense_id BIGINT NOT NULL REFERENCES expenses(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    amount NUMERIC(12, 2) NOT NULL,
    PRIMARY KEY (expense_id, position)
);

CREATE TABLE IF NOT EXISTS incomes (
    id BIGSERIAL PRIMARY KEY,
    source TEXT NOT NULL,
    amount NUMERIC(12, 2) NOT NULL,
    received_date DATE NOT NULL,
    category TEXT,
    notes TEXT,
    CONSTRAINT income_amount_positive CHECK (amount >= 0)
);

CREATE TABLE IF NOT EXISTS debts (
    id BIGSERIAL PRIMARY KEY,
    creditor TEXT NOT NULL,
    amount NUMERIC(12, 2) NOT NULL,
    due_date DATE,
    status TEXT,
    notes TEXT
);

CREATE INDEX IF NOT EXISTS idx_expenses_source_id ON expenses(source_id);
CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date);
CREATE INDEX IF NOT EXISTS idx_incomes_received_date ON incomes(received_date);
CREATE INDEX IF NOT EXISTS idx_debts_due_date ON debts(due_date);
`

// Dates are ISO text in SQLite so lexical order is chronological order.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS sources (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE,
    type TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS expenses (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    description TEXT NOT NULL,
    amount NUMERIC NOT NULL CONSTRAINT expense_amount_positive CHECK (amount >= 0),
    date TEXT NOT NULL,
    category TEXT,
    notes TEXT,
    source_id INTEGER NOT NULL REFERENCES sources(id),
    installment_count INTEGER,
    installment_number INTEGER,
    installment_amount NUMERIC
);

CREATE TABLE IF NOT EXISTS expense_splits (
    expense_id INTEGER NOT NULL REFERENCES expenses(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    amount NUMERIC NOT NULL,
    PRIMARY KEY (expense_id, position)
);

CREATE TABLE IF NOT EXISTS incomes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    source TEXT NOT NULL,
    amount NUMERIC NOT NULL CONSTRAINT income_amount_positive CHECK (amount >= 0),
    received_date TEXT NOT NULL,
    category TEXT,
    notes TEXT
);

CREATE TABLE IF NOT EXISTS debts (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    creditor TEXT NOT NULL,
    amount NUMERIC NOT NULL,
    due_date TEXT,
    status TEXT,
    notes TEXT
);

CREATE INDEX IF NOT EXISTS idx_expenses_source_id ON expenses(source_id);
CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date);
CREATE INDEX IF NOT EXISTS idx_incomes_received_date ON incomes(received_date);
CREATE INDEX IF NOT EXISTS idx_debts_due_date ON debts(due_date);
`

const dropSchema = `
DROP TABLE IF EXISTS expense_splits;
DROP TABLE IF EXISTS expenses;
DROP TABLE IF EXISTS incomes;
DROP TABLE IF EXISTS debts;
DROP TABLE IF EXISTS sources;
`

func (d Dialect) schema() string {
	if d == SQLite {
		return sqliteSchema
	}

	return postgresSchema
}

// Migrate creates any missing tables and indexes.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.DB.ExecContext(ctx, db.dialect.schema()); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}

	return nil
}

// Reset drops every table and recreates the schema.
func (db *DB) Reset(ctx context.Context) error {
	if _, err := db.DB.ExecContext(ctx, dropSchema); err != nil {
		return fmt.Errorf("dropping schema: %w", err)
	}

	return db.Migrate(ctx)
}
