// Package server exposes the receipt pipeline over HTTP.
package server

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/godutch/internal/models"
	"github.com/mmynk/godutch/internal/service"
	"github.com/mmynk/godutch/internal/storage"
)

// maxUploadBytes caps receipt image uploads at 16 MB, matching the web
// front's limit.
const maxUploadBytes = 16 << 20

// Server holds the HTTP handlers for the receipt service.
type Server struct {
	svc *service.ReceiptService
}

// New creates a Server around the given service.
func New(svc *service.ReceiptService) *Server {
	return &Server{svc: svc}
}

// Handler returns the full route table wrapped in logging and CORS
// middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/receipts", s.handleUpload)
	mux.HandleFunc("POST /api/split", s.handleSplit)
	mux.HandleFunc("GET /api/receipts", s.handleListReceipts)
	mux.HandleFunc("GET /api/receipts/{id}", s.handleGetReceipt)
	mux.HandleFunc("GET /healthz", handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	return loggingMiddleware(corsMiddleware(mux))
}

// splitRequest is the body of POST /api/split: text lines already extracted
// from a receipt, plus the caller's declarations.
type splitRequest struct {
	Lines  []string      `json:"lines"`
	Tip    string        `json:"tip"`
	People []personInput `json:"people"`
}

type personInput struct {
	Name  string `json:"name"`
	Items string `json:"items"`
}

// splitResponse carries the stored receipt ID and the final amount per
// person, keyed by name.
type splitResponse struct {
	ReceiptID string             `json:"receipt_id"`
	Totals    map[string]float64 `json:"totals"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("receipt")
	if err != nil {
		writeError(w, http.StatusBadRequest, "receipt image not found")
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read receipt image")
		return
	}

	tip, err := parseTip(r.FormValue("tip"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	people, err := peopleFromForm(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := s.svc.Process(r.Context(), image, header.Filename, tip, people)
	if err != nil {
		// Collaborator and engine failures alike surface as a generic
		// processing error; details stay in the logs.
		writeError(w, http.StatusInternalServerError, "error processing receipt")
		return
	}

	writeJSON(w, http.StatusOK, toSplitResponse(rec))
}

func (s *Server) handleSplit(w http.ResponseWriter, r *http.Request) {
	var req splitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tip, err := parseTip(req.Tip)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	people := make([]models.Person, len(req.People))
	for i, p := range req.People {
		if strings.TrimSpace(p.Name) == "" {
			writeError(w, http.StatusBadRequest, "person name must not be empty")
			return
		}
		people[i] = models.Person{Name: p.Name, Items: p.Items}
	}

	rec, err := s.svc.Split(r.Context(), req.Lines, tip, people)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "error processing receipt")
		return
	}

	writeJSON(w, http.StatusOK, toSplitResponse(rec))
}

// receiptResponse is the stored result of a processed receipt.
type receiptResponse struct {
	ReceiptID string             `json:"receipt_id"`
	RawText   string             `json:"raw_text"`
	Tip       float64            `json:"tip"`
	Totals    map[string]float64 `json:"totals"`
	CreatedAt int64              `json:"created_at"`
}

func (s *Server) handleGetReceipt(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	rec, err := s.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "receipt not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load receipt")
		return
	}

	writeJSON(w, http.StatusOK, receiptResponse{
		ReceiptID: rec.ID,
		RawText:   rec.RawText,
		Tip:       rec.Tip,
		Totals:    totalsMap(rec),
		CreatedAt: rec.CreatedAt,
	})
}

// defaultListLimit bounds GET /api/receipts when no limit is given.
const defaultListLimit = 20

func (s *Server) handleListReceipts(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			writeError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	receipts, err := s.svc.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list receipts")
		return
	}

	out := make([]receiptResponse, len(receipts))
	for i, rec := range receipts {
		out[i] = receiptResponse{
			ReceiptID: rec.ID,
			RawText:   rec.RawText,
			Tip:       rec.Tip,
			Totals:    totalsMap(rec),
			CreatedAt: rec.CreatedAt,
		}
	}
	writeJSON(w, http.StatusOK, map[string][]receiptResponse{"receipts": out})
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// parseTip accepts a decimal tip amount with at most two fractional digits.
// An empty value means no tip.
func parseTip(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	tip, err := strconv.ParseFloat(s, 64)
	if err != nil || tip < 0 {
		return 0, fmt.Errorf("tip %q is not a valid amount", s)
	}
	if _, frac, ok := strings.Cut(s, "."); ok && len(frac) > 2 {
		return 0, fmt.Errorf("tip %q has more than two decimal places", s)
	}
	return tip, nil
}

// peopleFromForm reads person-1-name/person-1-items style fields, the
// format the capture form submits. num-people must match the fields
// present.
func peopleFromForm(r *http.Request) ([]models.Person, error) {
	num, err := strconv.Atoi(r.FormValue("num-people"))
	if err != nil || num < 0 {
		return nil, fmt.Errorf("num-people is not a valid count")
	}
	if r.FormValue(fmt.Sprintf("person-%d-name", num+1)) != "" {
		return nil, fmt.Errorf("number of people mismatched")
	}

	people := make([]models.Person, 0, num)
	for i := 1; i <= num; i++ {
		name := r.FormValue(fmt.Sprintf("person-%d-name", i))
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("number of people mismatched")
		}
		people = append(people, models.Person{
			Name:  name,
			Items: r.FormValue(fmt.Sprintf("person-%d-items", i)),
		})
	}
	return people, nil
}

func toSplitResponse(rec *models.Receipt) splitResponse {
	return splitResponse{ReceiptID: rec.ID, Totals: totalsMap(rec)}
}

func totalsMap(rec *models.Receipt) map[string]float64 {
	totals := make(map[string]float64, len(rec.Totals))
	for _, t := range rec.Totals {
		totals[t.Name] = t.Amount
	}
	return totals
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
