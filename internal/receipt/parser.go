// Package receipt turns raw OCR text lines into classified line items.
//
// The pipeline is strictly forward: raw lines are parsed into (name, price)
// pairs, names are sanitized, items are classified into dishes vs. charges,
// and normalized names become lookup keys for the allocation step.
package receipt

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/mmynk/godutch/internal/models"
)

// ErrUnsanitizable is returned when a name contains nothing to keep after
// trimming, i.e. no alphanumeric rune at all or no alphabetic rune to stop
// the trailing trim at.
var ErrUnsanitizable = errors.New("name has no usable characters")

// pricePattern matches a trailing price token: one or more digits, a single
// comma or dot separator, exactly two digits, optional whitespace, end of
// line. OCR output from European receipts uses commas as often as dots.
var pricePattern = regexp.MustCompile(`([0-9]+[,.][0-9]{2})\s*$`)

// ParseLines extracts line items from raw OCR lines, preserving input order.
//
// Lines without a trailing price token, with an unparseable numeric, or with
// nothing before the price are treated as OCR noise and skipped silently.
// A name that survives trimming but cannot be sanitized (e.g. "***" or a
// digits-only label) is a malformed input rather than noise, and the error
// is returned to the caller.
func ParseLines(lines []string) ([]models.LineItem, error) {
	var items []models.LineItem
	for _, line := range lines {
		loc := pricePattern.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}

		priceStr := strings.Replace(line[loc[2]:loc[3]], ",", ".", 1)
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			continue
		}

		name := strings.TrimSpace(line[:loc[0]])
		if name == "" {
			// A bare price with no label is not actionable.
			continue
		}

		sanitized, err := SanitizeName(name)
		if err != nil {
			return nil, fmt.Errorf("line %q: %w", line, err)
		}

		items = append(items, models.LineItem{Name: sanitized, Price: price})
	}
	return items, nil
}

// SanitizeName strips stray punctuation around an item name: leading runes
// are dropped until the first alphanumeric, trailing runes until the first
// alphabetic one.
//
// The trailing scan deliberately stops at letters only, so trailing digits
// are trimmed too ("Combo 2" becomes "Combo"). Receipts print sizes and
// table numbers after the name and treating them as part of it produced
// worse matches; see the parser tests before changing this.
func SanitizeName(s string) (string, error) {
	runes := []rune(s)

	start := 0
	for start < len(runes) && !isAlnum(runes[start]) {
		start++
	}
	if start == len(runes) {
		return "", fmt.Errorf("%w: %q", ErrUnsanitizable, s)
	}

	end := len(runes) - 1
	for end >= 0 && !unicode.IsLetter(runes[end]) {
		end--
	}
	if end < start {
		return "", fmt.Errorf("%w: %q", ErrUnsanitizable, s)
	}

	// Nothing to trim at the end: keep the string through its last rune.
	if end == len(runes)-1 {
		return string(runes[start:]), nil
	}
	return string(runes[start : end+1]), nil
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
