package ledger

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sheikh-saqib/personal-ledger-service/internal/apperror"
	interfaces "github.com/sheikh-saqib/personal-ledger-service/internal/interfaces"
	"github.com/sheikh-saqib/personal-ledger-service/internal/models"
	"github.com/sheikh-saqib/personal-ledger-service/internal/models/events"
)

const (
	maxTitleLength = 255
	amountPlaces   = 2
)

// maxAmount is the largest value a DECIMAL(10,2) column holds.
var maxAmount = decimal.RequireFromString("99999999.99")

// Ledger holds the storage layer plus the publisher that announces committed changes.
// Every method is scoped to the owning account resolved from the session.
type Ledger struct {
	store     interfaces.LedgerStore
	publisher interfaces.EventPublisher
	topic     string
	logger    *zap.Logger
	now       func() time.Time
}

// NewLedger creates a Ledger on top of any LedgerStore implementation (memory, postgres).
// A nil publisher disables change events.
func NewLedger(store interfaces.LedgerStore, publisher interfaces.EventPublisher, topic string, logger *zap.Logger) *Ledger {
	return &Ledger{
		store:     store,
		publisher: publisher,
		topic:     topic,
		logger:    logger,
		now:       time.Now,
	}
}

// normalizeAmount rounds to cents and enforces the positive, column-sized range.
func normalizeAmount(amount decimal.Decimal) (decimal.Decimal, error) {
	amount = amount.Round(amountPlaces)
	if !amount.IsPositive() {
		return decimal.Zero, apperror.Validation("amount", "Amount must be a positive number")
	}
	if amount.GreaterThan(maxAmount) {
		return decimal.Zero, apperror.Validation("amount", "Amount must not exceed 99999999.99")
	}
	return amount, nil
}

func checkTitle(title string) error {
	if strings.TrimSpace(title) == "" || len([]rune(title)) > maxTitleLength {
		return apperror.Validation("title", "Title must be between 1 and 255 characters")
	}
	return nil
}

func checkKind(kind models.Kind) error {
	if !kind.Valid() {
		return apperror.Validation("type", `Type must be either "income" or "expense"`)
	}
	return nil
}

// CreateEntry validates the entry and stores it for ownerID.
func (l *Ledger) CreateEntry(ctx context.Context, ownerID, title string, kind models.Kind, amount decimal.Decimal) (models.LedgerEntry, error) {
	if err := checkTitle(title); err != nil {
		return models.LedgerEntry{}, err
	}
	if err := checkKind(kind); err != nil {
		return models.LedgerEntry{}, err
	}
	amount, err := normalizeAmount(amount)
	if err != nil {
		return models.LedgerEntry{}, err
	}

	entry, err := l.store.Insert(ctx, ownerID, title, kind, amount)
	if err != nil {
		return models.LedgerEntry{}, err
	}

	l.publish(ctx, events.TypeEntryCreated, entry)
	return entry, nil
}

// GetEntry returns one of ownerID's entries.
func (l *Ledger) GetEntry(ctx context.Context, ownerID, id string) (models.LedgerEntry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return models.LedgerEntry{}, apperror.NotFound("Transaction")
	}
	return l.store.FindByID(ctx, ownerID, id)
}

// UpdateEntry applies the supplied fields only. Ids that are malformed, missing or
// owned by someone else all come back as NotFoundError.
func (l *Ledger) UpdateEntry(ctx context.Context, ownerID, id string, patch models.EntryPatch) (models.LedgerEntry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return models.LedgerEntry{}, apperror.NotFound("Transaction")
	}
	if patch.Title != nil {
		if err := checkTitle(*patch.Title); err != nil {
			return models.LedgerEntry{}, err
		}
	}
	if patch.Kind != nil {
		if err := checkKind(*patch.Kind); err != nil {
			return models.LedgerEntry{}, err
		}
	}
	if patch.Amount != nil {
		amount, err := normalizeAmount(*patch.Amount)
		if err != nil {
			return models.LedgerEntry{}, err
		}
		patch.Amount = &amount
	}

	entry, err := l.store.UpdatePartial(ctx, ownerID, id, patch)
	if err != nil {
		return models.LedgerEntry{}, err
	}

	l.publish(ctx, events.TypeEntryUpdated, entry)
	return entry, nil
}

// DeleteEntry hard-deletes one of ownerID's entries.
func (l *Ledger) DeleteEntry(ctx context.Context, ownerID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.NotFound("Transaction")
	}

	removed, err := l.store.Delete(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if !removed {
		return apperror.NotFound("Transaction")
	}

	l.publish(ctx, events.TypeEntryDeleted, models.LedgerEntry{ID: id, OwnerID: ownerID})
	return nil
}

// publish announces a committed change. The write has already succeeded, so a
// failure here is logged and swallowed.
func (l *Ledger) publish(ctx context.Context, eventType string, entry models.LedgerEntry) {
	if l.publisher == nil {
		return
	}

	event := events.LedgerEntryChanged{
		Type:          eventType,
		TransactionID: entry.ID,
		UserID:        entry.OwnerID,
		Kind:          string(entry.Kind),
		Amount:        entry.Amount,
		OccurredAt:    l.now().UTC(),
	}

	if err := l.publisher.Publish(ctx, l.topic, entry.OwnerID, event); err != nil {
		l.logger.Error("publish ledger event",
			zap.String("type", eventType),
			zap.String("transaction_id", entry.ID),
			zap.Error(err),
		)
	}
}
