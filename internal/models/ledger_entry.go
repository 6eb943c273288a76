package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind classifies a ledger entry as money coming in or going out.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// Valid reports whether k is one of the two recognised kinds.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// LedgerEntry represents a single income or expense record owned by one account
type LedgerEntry struct {
	ID        string          `json:"id"`
	OwnerID   string          `json:"user_id"`
	Title     string          `json:"title"`
	Kind      Kind            `json:"type"`
	Amount    decimal.Decimal `json:"amount"` // two fractional digits
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// EntryPatch carries the fields of a partial update. Nil fields are left untouched.
type EntryPatch struct {
	Title  *string
	Kind   *Kind
	Amount *decimal.Decimal
}

// Empty reports whether the patch changes nothing besides updated_at.
func (p EntryPatch) Empty() bool {
	return p.Title == nil && p.Kind == nil && p.Amount == nil
}
