package receipt

import (
	"strings"

	"github.com/mmynk/godutch/internal/models"
)

// chargeKeywords marks entries that are not dishes: running totals, taxes,
// tips, and fees. Matching is by substring on the lowercased name.
var chargeKeywords = []string{
	"subtotal",
	"sub-total",
	"tax",
	"tip",
	"tips",
	"service",
	"charge",
	"card",
	"fee",
	"total",
}

// Classify splits parsed items into dishes and charges. Every input item
// lands in exactly one of the two lists, and each list preserves input
// order.
func Classify(items []models.LineItem) (dishes, charges []models.LineItem) {
	for _, item := range items {
		if isCharge(item.Name) {
			charges = append(charges, item)
		} else {
			dishes = append(dishes, item)
		}
	}
	return dishes, charges
}

func isCharge(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, keyword := range chargeKeywords {
		if strings.Contains(name, keyword) {
			return true
		}
	}
	return false
}
