// Package service orchestrates the receipt pipeline: OCR, parsing,
// classification, allocation, and persistence.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mmynk/godutch/internal/calculator"
	"github.com/mmynk/godutch/internal/metrics"
	"github.com/mmynk/godutch/internal/models"
	"github.com/mmynk/godutch/internal/ocr"
	"github.com/mmynk/godutch/internal/receipt"
	"github.com/mmynk/godutch/internal/storage"
)

// ReceiptService runs the bill-splitting pipeline. Each call builds its own
// dictionaries and totals; nothing is shared between requests, so the
// service is safe to use from concurrent handlers.
type ReceiptService struct {
	store  storage.Store
	engine ocr.Engine
	cutoff float64
}

// NewReceiptService creates a ReceiptService with the given collaborators.
func NewReceiptService(store storage.Store, engine ocr.Engine, cutoff float64) *ReceiptService {
	return &ReceiptService{store: store, engine: engine, cutoff: cutoff}
}

// Process runs the full pipeline for an uploaded receipt image: extract
// text through the OCR collaborator, split the bill, and persist the
// result. The returned receipt carries the stored ID.
func (s *ReceiptService) Process(ctx context.Context, image []byte, filename string, tip float64, people []models.Person) (*models.Receipt, error) {
	lines, err := s.engine.ExtractLines(ctx, image, filename)
	if err != nil {
		slog.Error("OCR extraction failed", "filename", filename, "error", err)
		return nil, fmt.Errorf("extract text: %w", err)
	}
	slog.Debug("OCR text extracted", "filename", filename, "lines", len(lines))

	return s.Split(ctx, lines, tip, people)
}

// Split computes and persists the per-person split for already-extracted
// text lines.
func (s *ReceiptService) Split(ctx context.Context, lines []string, tip float64, people []models.Person) (*models.Receipt, error) {
	items, err := receipt.ParseLines(lines)
	if err != nil {
		slog.Error("Receipt parsing failed", "error", err)
		return nil, fmt.Errorf("parse receipt: %w", err)
	}
	metrics.LinesParsed.Add(float64(len(items)))
	metrics.LinesSkipped.Add(float64(len(lines) - len(items)))

	dishes, charges := receipt.Classify(items)
	slog.Debug("Receipt classified",
		"items", len(items),
		"dishes", len(dishes),
		"charges", len(charges),
	)

	alloc, err := calculator.AllocateWithCutoff(
		receipt.BuildPriceIndex(charges),
		receipt.BuildPriceIndex(dishes),
		tip,
		people,
		s.cutoff,
	)
	if err != nil {
		slog.Error("Allocation failed", "error", err)
		return nil, fmt.Errorf("allocate charges: %w", err)
	}
	if len(alloc.Unmatched) > 0 {
		metrics.DishesUnmatched.Add(float64(len(alloc.Unmatched)))
		slog.Warn("No close match for declared items", "items", alloc.Unmatched)
	}

	rec := &models.Receipt{
		RawText: strings.Join(lines, "\n"),
		Tip:     tip,
		Totals:  make([]models.PersonTotal, 0, len(alloc.Totals)),
	}
	// Keep the declared order so stored totals line up with the request.
	// A name declared twice collapses into one row, as in the totals map.
	seen := make(map[string]bool, len(people))
	for _, p := range people {
		if seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		rec.Totals = append(rec.Totals, models.PersonTotal{Name: p.Name, Amount: alloc.Totals[p.Name]})
	}

	if err := s.store.SaveReceipt(ctx, rec); err != nil {
		slog.Error("SaveReceipt failed", "error", err)
		return nil, fmt.Errorf("store receipt: %w", err)
	}

	metrics.ReceiptsProcessed.Inc()
	slog.Info("Receipt processed",
		"receipt_id", rec.ID,
		"people", len(people),
		"dishes", len(dishes),
		"unmatched", len(alloc.Unmatched),
	)
	return rec, nil
}

// Recent returns the most recently processed receipts, newest first.
func (s *ReceiptService) Recent(ctx context.Context, limit int) ([]*models.Receipt, error) {
	receipts, err := s.store.ListReceipts(ctx, limit)
	if err != nil {
		slog.Error("ListReceipts failed", "error", err)
		return nil, err
	}
	return receipts, nil
}

// Get retrieves a stored receipt by ID.
func (s *ReceiptService) Get(ctx context.Context, id string) (*models.Receipt, error) {
	rec, err := s.store.GetReceipt(ctx, id)
	if err != nil {
		slog.Error("GetReceipt failed", "receipt_id", id, "error", err)
		return nil, err
	}
	return rec, nil
}
