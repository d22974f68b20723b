// Package calculator computes each person's share of a parsed receipt.
package calculator

import (
	"fmt"
	"math"
	"strings"

	"github.com/mmynk/godutch/internal/match"
	"github.com/mmynk/godutch/internal/models"
)

// Allocation is the result of splitting one receipt.
type Allocation struct {
	// Totals maps each person's name to their final amount, rounded to
	// cents. Every declared person appears, including those who owe 0.
	Totals map[string]float64

	// Unmatched lists declared items that matched no dish on the receipt.
	// These contribute nothing to anyone's total; the caller decides
	// whether to surface them.
	Unmatched []string
}

// Allocate splits the bill using the default match cutoff.
func Allocate(charges, dishPrices map[string]float64, tip float64, people []models.Person) (*Allocation, error) {
	return AllocateWithCutoff(charges, dishPrices, tip, people, match.DefaultCutoff)
}

// AllocateWithCutoff computes, per person, the base cost of their declared
// dishes plus a proportional share of tax and tip.
//
// Each declared item is fuzzy-matched against dishPrices and its price is
// divided evenly among everyone who declared it. Tax and tip are then
// distributed in proportion to each person's base share of the receipt's
// subtotal; when the charges index has no subtotal (or a non-positive one)
// both shares degrade to zero rather than failing. Amounts are rounded to
// two decimals, half away from zero, only at the very end.
//
// The result covers every declared person. An empty people slice yields an
// empty (non-nil) Totals map. The only validation error is a person with a
// blank name, which would silently merge totals.
func AllocateWithCutoff(charges, dishPrices map[string]float64, tip float64, people []models.Person, cutoff float64) (*Allocation, error) {
	totals := make(map[string]float64, len(people))
	alloc := &Allocation{Totals: totals}
	if len(people) == 0 {
		return alloc, nil
	}

	for _, p := range people {
		if strings.TrimSpace(p.Name) == "" {
			return nil, fmt.Errorf("person with empty name in input")
		}
	}

	subtotal, hasSubtotal := charges["subtotal"]
	tax := charges["tax"] // absent means no tax share, not an error

	// Map each declared item to the people who declared it, preserving the
	// order items first appear in.
	consumers := make(map[string][]string)
	var order []string
	base := make(map[string]float64, len(people))
	for _, p := range people {
		base[p.Name] = 0
		for _, raw := range strings.Split(p.Items, ",") {
			item := strings.ToLower(strings.TrimSpace(raw))
			if _, seen := consumers[item]; !seen {
				order = append(order, item)
			}
			consumers[item] = append(consumers[item], p.Name)
		}
	}

	for _, item := range order {
		key, ok := match.Best(item, dishPrices, cutoff)
		if !ok {
			alloc.Unmatched = append(alloc.Unmatched, item)
			continue
		}
		share := dishPrices[key] / float64(len(consumers[item]))
		for _, name := range consumers[item] {
			base[name] += share
		}
	}

	for name, b := range base {
		var tipShare, taxShare float64
		if hasSubtotal && subtotal > 0 {
			tipShare = (b / subtotal) * tip
			taxShare = (b / subtotal) * tax
		}
		totals[name] = round2(b + tipShare + taxShare)
	}

	return alloc, nil
}

// round2 rounds to two decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
