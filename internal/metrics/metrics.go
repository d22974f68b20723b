// Package metrics provides Prometheus metrics for the GoDutch service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ReceiptsProcessed counts receipts run through the full pipeline.
	ReceiptsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "godutch",
		Name:      "receipts_processed_total",
		Help:      "Receipts parsed, split, and stored.",
	})

	// LinesParsed counts OCR lines that yielded a line item.
	LinesParsed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "godutch",
		Name:      "lines_parsed_total",
		Help:      "OCR lines that produced a (name, price) item.",
	})

	// LinesSkipped counts OCR lines dropped as noise.
	LinesSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "godutch",
		Name:      "lines_skipped_total",
		Help:      "OCR lines without a usable trailing price.",
	})

	// DishesUnmatched counts declared items with no close match on the
	// receipt. A rising rate usually means OCR quality dropped.
	DishesUnmatched = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "godutch",
		Name:      "dishes_unmatched_total",
		Help:      "Declared items that matched no dish on the receipt.",
	})

	// HTTPRequests counts requests by method, path pattern, and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "godutch",
		Name:      "http_requests_total",
		Help:      "HTTP requests served.",
	}, []string{"method", "path", "status"})
)
