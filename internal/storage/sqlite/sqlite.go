// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/godutch/internal/models"
	"github.com/mmynk/godutch/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveReceipt persists a receipt and its per-person totals in one
// transaction.
func (s *SQLiteStore) SaveReceipt(ctx context.Context, receipt *models.Receipt) error {
	if receipt.ID == "" {
		receipt.ID = uuid.New().String()
	}
	if receipt.CreatedAt == 0 {
		receipt.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO receipts (id, raw_text, tip, created_at) VALUES (?, ?, ?, ?)",
		receipt.ID, receipt.RawText, receipt.Tip, receipt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert receipt: %w", err)
	}

	for _, total := range receipt.Totals {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO person_totals (receipt_id, name, amount) VALUES (?, ?, ?)",
			receipt.ID, total.Name, total.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert person total: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetReceipt retrieves a receipt by ID, including all per-person totals.
func (s *SQLiteStore) GetReceipt(ctx context.Context, id string) (*models.Receipt, error) {
	receipt := &models.Receipt{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, raw_text, tip, created_at FROM receipts WHERE id = ?",
		id,
	).Scan(&receipt.ID, &receipt.RawText, &receipt.Tip, &receipt.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}

	totals, err := s.totalsFor(ctx, receipt.ID)
	if err != nil {
		return nil, err
	}
	receipt.Totals = totals

	return receipt, nil
}

// ListReceipts returns up to limit receipts, newest first.
func (s *SQLiteStore) ListReceipts(ctx context.Context, limit int) ([]*models.Receipt, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, raw_text, tip, created_at FROM receipts ORDER BY created_at DESC, id LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}
	defer rows.Close()

	var receipts []*models.Receipt
	for rows.Next() {
		receipt := &models.Receipt{}
		if err := rows.Scan(&receipt.ID, &receipt.RawText, &receipt.Tip, &receipt.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan receipt: %w", err)
		}
		receipts = append(receipts, receipt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate receipts: %w", err)
	}

	for _, receipt := range receipts {
		totals, err := s.totalsFor(ctx, receipt.ID)
		if err != nil {
			return nil, err
		}
		receipt.Totals = totals
	}

	return receipts, nil
}

func (s *SQLiteStore) totalsFor(ctx context.Context, receiptID string) ([]models.PersonTotal, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, amount FROM person_totals WHERE receipt_id = ? ORDER BY name",
		receiptID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get person totals: %w", err)
	}
	defer rows.Close()

	var totals []models.PersonTotal
	for rows.Next() {
		var total models.PersonTotal
		if err := rows.Scan(&total.Name, &total.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan person total: %w", err)
		}
		totals = append(totals, total)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate person totals: %w", err)
	}

	return totals, nil
}
