package events

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TypeEntryCreated = "transaction.created"
	TypeEntryUpdated = "transaction.updated"
	TypeEntryDeleted = "transaction.deleted"
)

// LedgerEntryChanged is published after an entry is created, updated or deleted.
type LedgerEntryChanged struct {
	Type          string          `json:"type"`
	TransactionID string          `json:"transaction_id"`
	UserID        string          `json:"user_id"`
	Kind          string          `json:"kind,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	OccurredAt    time.Time       `json:"occurred_at"`
}
