package calculator

import (
	"math"
	"testing"

	"github.com/mmynk/godutch/internal/models"
)

func TestAllocate(t *testing.T) {
	tests := []struct {
		name         string
		charges      map[string]float64
		dishPrices   map[string]float64
		tip          float64
		people       []models.Person
		wantErr      bool
		validateFunc func(t *testing.T, alloc *Allocation)
	}{
		{
			name:       "single person with proportional tip and tax",
			charges:    map[string]float64{"subtotal": 8.0, "tax": 0.7},
			dishPrices: map[string]float64{"bigmac": 5.0, "large coke": 3.0},
			tip:        1.0,
			people:     []models.Person{{Name: "Alice", Items: "BigMac, Large Coke"}},
			validateFunc: func(t *testing.T, alloc *Allocation) {
				// base = 8.0, tipShare = (8/8)*1 = 1.0, taxShare = 0.7
				if got := alloc.Totals["Alice"]; got != 9.70 {
					t.Errorf("Alice = %v, want 9.70", got)
				}
				if len(alloc.Unmatched) != 0 {
					t.Errorf("unexpected unmatched items: %v", alloc.Unmatched)
				}
			},
		},
		{
			name:       "shared dish splits evenly",
			charges:    map[string]float64{"subtotal": 30.0, "tax": 3.0},
			dishPrices: map[string]float64{"pizza": 20.0, "salad": 10.0},
			people: []models.Person{
				{Name: "Alice", Items: "Pizza, Salad"},
				{Name: "Bob", Items: "Pizza"},
			},
			validateFunc: func(t *testing.T, alloc *Allocation) {
				// Alice: base = 10 + 10 = 20, tax = 20 * (3/30) = 2
				// Bob: base = 10, tax = 1
				if got := alloc.Totals["Alice"]; got != 22.0 {
					t.Errorf("Alice = %v, want 22.0", got)
				}
				if got := alloc.Totals["Bob"]; got != 11.0 {
					t.Errorf("Bob = %v, want 11.0", got)
				}
			},
		},
		{
			name:       "fuzzy match credits the full price",
			charges:    map[string]float64{"subtotal": 10.0},
			dishPrices: map[string]float64{"al rainbow roll": 10.0},
			people:     []models.Person{{Name: "Cam", Items: "Rainbow Roll"}},
			validateFunc: func(t *testing.T, alloc *Allocation) {
				if got := alloc.Totals["Cam"]; got != 10.0 {
					t.Errorf("Cam = %v, want 10.0", got)
				}
			},
		},
		{
			name:       "unmatched dish contributes zero",
			charges:    map[string]float64{"subtotal": 10.0, "tax": 1.0},
			dishPrices: map[string]float64{"rainbow roll": 10.0},
			people:     []models.Person{{Name: "Dan", Items: "nonexistent dish"}},
			validateFunc: func(t *testing.T, alloc *Allocation) {
				if got := alloc.Totals["Dan"]; got != 0.0 {
					t.Errorf("Dan = %v, want 0.0", got)
				}
				if len(alloc.Unmatched) != 1 || alloc.Unmatched[0] != "nonexistent dish" {
					t.Errorf("unmatched = %v, want [nonexistent dish]", alloc.Unmatched)
				}
			},
		},
		{
			name:       "missing subtotal degrades to zero shares",
			charges:    map[string]float64{"tax": 2.0},
			dishPrices: map[string]float64{"burger": 12.0},
			tip:        5.0,
			people:     []models.Person{{Name: "Eve", Items: "burger"}},
			validateFunc: func(t *testing.T, alloc *Allocation) {
				// No subtotal: base only, no tip or tax share.
				if got := alloc.Totals["Eve"]; got != 12.0 {
					t.Errorf("Eve = %v, want 12.0", got)
				}
			},
		},
		{
			name:       "zero subtotal degrades to zero shares",
			charges:    map[string]float64{"subtotal": 0.0, "tax": 2.0},
			dishPrices: map[string]float64{"burger": 12.0},
			tip:        5.0,
			people:     []models.Person{{Name: "Eve", Items: "burger"}},
			validateFunc: func(t *testing.T, alloc *Allocation) {
				if got := alloc.Totals["Eve"]; got != 12.0 {
					t.Errorf("Eve = %v, want 12.0", got)
				}
			},
		},
		{
			name:       "missing tax is treated as zero",
			charges:    map[string]float64{"subtotal": 12.0},
			dishPrices: map[string]float64{"burger": 12.0},
			tip:        3.0,
			people:     []models.Person{{Name: "Fay", Items: "burger"}},
			validateFunc: func(t *testing.T, alloc *Allocation) {
				if got := alloc.Totals["Fay"]; got != 15.0 {
					t.Errorf("Fay = %v, want 15.0", got)
				}
			},
		},
		{
			name:       "person with no matched items still appears",
			charges:    map[string]float64{"subtotal": 5.0, "tax": 0.5},
			dishPrices: map[string]float64{"soup": 5.0},
			people: []models.Person{
				{Name: "Gil", Items: "soup"},
				{Name: "Hana", Items: ""},
			},
			validateFunc: func(t *testing.T, alloc *Allocation) {
				got, present := alloc.Totals["Hana"]
				if !present {
					t.Fatal("Hana missing from totals")
				}
				if got != 0.0 {
					t.Errorf("Hana = %v, want 0.0", got)
				}
			},
		},
		{
			name:       "empty people yields empty map",
			charges:    map[string]float64{"subtotal": 5.0},
			dishPrices: map[string]float64{"soup": 5.0},
			people:     nil,
			validateFunc: func(t *testing.T, alloc *Allocation) {
				if alloc.Totals == nil {
					t.Fatal("Totals is nil, want empty map")
				}
				if len(alloc.Totals) != 0 {
					t.Errorf("Totals = %v, want empty", alloc.Totals)
				}
			},
		},
		{
			name:       "blank person name is rejected",
			charges:    map[string]float64{"subtotal": 5.0},
			dishPrices: map[string]float64{"soup": 5.0},
			people:     []models.Person{{Name: "  ", Items: "soup"}},
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alloc, err := Allocate(tt.charges, tt.dishPrices, tt.tip, tt.people)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Allocate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && tt.validateFunc != nil {
				tt.validateFunc(t, alloc)
			}
		})
	}
}

// Shares of a dish must sum back to its price before rounding, regardless
// of how many people share it.
func TestAllocateSplitConservation(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7} {
		people := make([]models.Person, n)
		for i := range people {
			people[i] = models.Person{Name: string(rune('A' + i)), Items: "tasting menu"}
		}

		alloc, err := Allocate(nil, map[string]float64{"tasting menu": 100.0}, 0, people)
		if err != nil {
			t.Fatalf("n=%d: Allocate() error = %v", n, err)
		}

		sum := 0.0
		for _, amount := range alloc.Totals {
			sum += amount
		}
		// Rounding happens per person, so allow up to half a cent per head.
		if math.Abs(sum-100.0) > 0.005*float64(n) {
			t.Errorf("n=%d: shares sum to %v, want 100.0", n, sum)
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{9.704, 9.70},
		{9.706, 9.71},
		// .125 and .375 are exactly representable, so these pin the
		// half-away-from-zero behavior without float ambiguity.
		{0.125, 0.13},
		{0.375, 0.38},
		{-0.125, -0.13},
		{0, 0},
	}
	for _, tt := range tests {
		if got := round2(tt.in); got != tt.want {
			t.Errorf("round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
