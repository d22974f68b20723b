// Package config defines service configuration and its loading order.
package config

import "github.com/mmynk/godutch/internal/match"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBPath is the SQLite database file.
	DBPath string `koanf:"db_path"`

	// OCRURL is the endpoint of the external text recognizer.
	OCRURL string `koanf:"ocr_url"`

	// OCRTimeoutMS bounds a single recognizer call.
	OCRTimeoutMS int `koanf:"ocr_timeout_ms"`

	// MatchCutoff is the minimum similarity for a declared item to match
	// a receipt dish. Raising it trades missed matches for fewer wrong
	// ones.
	MatchCutoff float64 `koanf:"match_cutoff"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		Addr:         ":8080",
		DBPath:       "./data/receipts.db",
		OCRURL:       "http://127.0.0.1:4999/recognize",
		OCRTimeoutMS: 60_000,
		MatchCutoff:  match.DefaultCutoff,
	}
}
