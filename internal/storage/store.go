// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/godutch/internal/models"
)

// ErrNotFound is returned when the requested receipt does not exist.
// Implementations wrap it so callers can match with errors.Is.
var ErrNotFound = errors.New("receipt not found")

// Store defines the interface for receipt storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer. The engine itself never touches
// storage; it hands its output here verbatim, keyed by person name.
type Store interface {
	// SaveReceipt persists a processed receipt and its per-person totals.
	// The receipt's ID and CreatedAt fields are populated by the store.
	SaveReceipt(ctx context.Context, receipt *models.Receipt) error

	// GetReceipt retrieves a receipt by its ID, including totals.
	GetReceipt(ctx context.Context, id string) (*models.Receipt, error)

	// ListReceipts returns the most recently processed receipts, newest
	// first, up to limit.
	ListReceipts(ctx context.Context, limit int) ([]*models.Receipt, error)

	// Close releases any resources held by the store.
	Close() error
}
