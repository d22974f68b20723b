package models

// LineItem is a single (name, price) pair extracted from one receipt line.
// Price is always non-negative; it is parsed from the trailing numeric
// pattern on the line. Immutable once created.
type LineItem struct {
	// Name is the sanitized item name as printed on the receipt.
	Name string

	// Price is the amount on the line, in the receipt's currency.
	Price float64
}

// Person is one participant splitting the bill, as supplied by the caller.
type Person struct {
	// Name identifies the person within this receipt.
	Name string

	// Items is the comma-separated list of dishes this person declared,
	// e.g. "BigMac, Large Coke". Matching against the receipt is fuzzy,
	// so the spelling does not need to be exact.
	Items string
}

// PersonTotal is one person's final share of the bill, rounded to cents.
type PersonTotal struct {
	Name   string
	Amount float64
}

// Receipt represents a processed receipt together with its computed split.
type Receipt struct {
	// ID is the unique identifier for the receipt (UUID format).
	ID string

	// RawText is the full OCR output the split was computed from.
	// Kept verbatim so a split can be audited or recomputed later.
	RawText string

	// Tip is the absolute tip amount the caller supplied.
	Tip float64

	// Totals holds the final rounded amount per participant, including
	// participants who owe nothing.
	Totals []PersonTotal

	// CreatedAt is the Unix timestamp when the receipt was processed.
	CreatedAt int64
}

// TotalFor returns the stored amount for the named person and whether the
// person appears on the receipt.
func (r *Receipt) TotalFor(name string) (float64, bool) {
	for _, t := range r.Totals {
		if t.Name == name {
			return t.Amount, true
		}
	}
	return 0, false
}
