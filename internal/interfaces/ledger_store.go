package interfaces

import (
	"context"

	"github.com/sheikh-saqib/personal-ledger-service/internal/models"
	"github.com/shopspring/decimal"
)

// LedgerStore persists ledger entries. Every call is scoped by owner id, so an
// entry owned by another account behaves exactly like a missing one.
type LedgerStore interface {
	Insert(ctx context.Context, ownerID, title string, kind models.Kind, amount decimal.Decimal) (models.LedgerEntry, error)
	FindByID(ctx context.Context, ownerID, id string) (models.LedgerEntry, error)
	UpdatePartial(ctx context.Context, ownerID, id string, patch models.EntryPatch) (models.LedgerEntry, error)
	Delete(ctx context.Context, ownerID, id string) (bool, error)
	// List returns one page of entries and the count of all matching rows.
	List(ctx context.Context, ownerID string, q models.ListQuery) ([]models.LedgerEntry, int, error)
	// Totals sums amounts per kind for the owner.
	Totals(ctx context.Context, ownerID string) (income, expenses decimal.Decimal, err error)
}
