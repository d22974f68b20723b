// Package ocr defines the boundary to the text-recognition collaborator.
//
// Recognition itself is a black box: the engine receives an image and
// returns the receipt text one logical row per line, noise included. The
// default implementation posts the image to an external recognizer service
// over HTTP, mirroring the web-front/ML-client split this system runs in.
package ocr

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Engine extracts text lines from a receipt image.
type Engine interface {
	ExtractLines(ctx context.Context, image []byte, filename string) ([]string, error)
}

// HTTPEngine calls a remote recognizer service.
type HTTPEngine struct {
	url    string
	client *http.Client
}

// NewHTTPEngine creates an engine posting to the given endpoint, e.g.
// "http://ocr:4999/recognize".
func NewHTTPEngine(url string, timeout time.Duration) *HTTPEngine {
	return &HTTPEngine{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// recognizeResponse is the recognizer's reply: the full extracted text.
type recognizeResponse struct {
	Text string `json:"text"`
}

// ExtractLines uploads the image as multipart form data under the field
// name "receipt" and splits the returned text into lines.
func (e *HTTPEngine) ExtractLines(ctx context.Context, image []byte, filename string) ([]string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("receipt", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("recognizer unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("recognizer returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var rr recognizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return nil, fmt.Errorf("failed to decode recognizer response: %w", err)
	}

	return strings.Split(rr.Text, "\n"), nil
}
