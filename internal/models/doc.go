// Package models defines the core domain models for GoDutch.
//
// # Models
//
//   - LineItem: A (name, price) pair parsed from one receipt line
//   - Person: A participant and the items they declared
//   - PersonTotal: One person's final rounded share of the bill
//   - Receipt: A processed receipt with its raw OCR text and per-person totals
//
// Participants are identified by name strings; there are no user accounts.
// The surrounding web front owns sessions and identity.
//
// # Design Principles
//
// 1. **Request-scoped**: engine entities are built fresh per invocation and
// never shared across requests
// 2. **Derived, not stored**: whether a LineItem is a dish or a charge is a
// pure function of its name and is never persisted
// 3. **Avoid circular references**: receipts hold totals by value, keyed by
// participant name
package models
