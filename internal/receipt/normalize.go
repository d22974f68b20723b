package receipt

import (
	"regexp"
	"strings"

	"github.com/mmynk/godutch/internal/models"
)

var (
	namePunct  = regexp.MustCompile(`[-:,]`)
	whitespace = regexp.MustCompile(`\s+`)
)

// NormalizeName canonicalizes a name for case- and punctuation-insensitive
// lookup: lowercase, dashes/colons/commas removed, whitespace runs collapsed
// to a single space, surrounding whitespace trimmed.
//
// Total and idempotent; the empty string normalizes to itself.
func NormalizeName(s string) string {
	s = strings.ToLower(s)
	s = namePunct.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// BuildPriceIndex folds line items into a normalized-name -> price mapping.
// When two names normalize to the same key, the later item wins.
func BuildPriceIndex(items []models.LineItem) map[string]float64 {
	index := make(map[string]float64, len(items))
	for _, item := range items {
		index[NormalizeName(item.Name)] = item.Price
	}
	return index
}
