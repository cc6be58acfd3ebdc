package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS bills (
    id          TEXT PRIMARY KEY,
    name        TEXT NOT NULL,
    amount      TEXT NOT NULL,
    due_date    TEXT NOT NULL,
    recurrence  TEXT NOT NULL DEFAULT 'none',
    notes       TEXT NOT NULL DEFAULT '',
    paid        INTEGER NOT NULL DEFAULT 0,
    created_at  TEXT NOT NULL,
    updated_at  TEXT NOT NULL,
    position    INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bills_due ON bills(due_date);
CREATE INDEX IF NOT EXISTS idx_bills_position ON bills(position);
`
