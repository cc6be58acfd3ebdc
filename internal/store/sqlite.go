package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // register sqlite driver

	"github.com/ARK-Community/AutoBillTracker/internal/model"
)

// SQLiteStore persists the collection in a single-table SQLite database.
// A position column preserves the ledger's insertion order across restarts.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the bill database at the given path.
func OpenSQLite(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening bill db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads all bills ordered by their stored position.
func (s *SQLiteStore) Load() ([]model.Bill, error) {
	rows, err := s.db.Query(`SELECT id, name, amount, due_date, recurrence, notes, paid, created_at, updated_at
		FROM bills ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var bills []model.Bill
	for rows.Next() {
		var b model.Bill
		var amount, createdAt, updatedAt string
		var paid int

		if err := rows.Scan(&b.ID, &b.Name, &amount, &b.DueDate, &b.Recurrence, &b.Notes, &paid, &createdAt, &updatedAt); err != nil {
			return nil, err
		}

		b.Paid = paid != 0
		b.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			b.Amount = decimal.Zero
		}
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			b.CreatedAt = t
		}
		if t, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
			b.UpdatedAt = t
		}
		bills = append(bills, b)
	}
	return bills, rows.Err()
}

// Save replaces the table contents with the given collection in one
// transaction.
func (s *SQLiteStore) Save(bills []model.Bill) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM bills"); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO bills
		(id, name, amount, due_date, recurrence, notes, paid, created_at, updated_at, position)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for i, b := range bills {
		paid := 0
		if b.Paid {
			paid = 1
		}
		_, err := stmt.Exec(
			b.ID, b.Name, b.Amount.String(), b.DueDate, string(b.Recurrence), b.Notes, paid,
			b.CreatedAt.UTC().Format(time.RFC3339Nano),
			b.UpdatedAt.UTC().Format(time.RFC3339Nano),
			i,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}
