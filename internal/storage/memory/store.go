package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/personal-ledger-service/internal/apperror"
	interfaces "github.com/sheikh-saqib/personal-ledger-service/internal/interfaces"
	"github.com/sheikh-saqib/personal-ledger-service/internal/models"
)

// MemoryLedgerStore is an in-memory implementation of interfaces.LedgerStore.
// Entries are keyed by id and guarded by a single mutex.
type MemoryLedgerStore struct {
	mu      sync.Mutex                    // protects entries
	entries map[string]models.LedgerEntry // all ledger entries, every owner
	now     func() time.Time
}

// NewMemoryLedgerStore creates and returns a new MemoryLedgerStore instance
func NewMemoryLedgerStore() *MemoryLedgerStore {
	return &MemoryLedgerStore{
		entries: make(map[string]models.LedgerEntry),
		now:     time.Now,
	}
}

// SetClock replaces the timestamp source. Used by tests that need equal created_at values.
func (m *MemoryLedgerStore) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

func (m *MemoryLedgerStore) Insert(ctx context.Context, ownerID, title string, kind models.Kind, amount decimal.Decimal) (models.LedgerEntry, error) {
	if err := ctx.Err(); err != nil {
		return models.LedgerEntry{}, apperror.Store("insert entry", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ts := m.now().UTC()
	entry := models.LedgerEntry{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Title:     title,
		Kind:      kind,
		Amount:    amount,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	m.entries[entry.ID] = entry
	return entry, nil
}

func (m *MemoryLedgerStore) FindByID(ctx context.Context, ownerID, id string) (models.LedgerEntry, error) {
	if err := ctx.Err(); err != nil {
		return models.LedgerEntry{}, apperror.Store("find entry", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[id]
	if !ok || entry.OwnerID != ownerID {
		return models.LedgerEntry{}, apperror.NotFound("Transaction")
	}
	return entry, nil
}

func (m *MemoryLedgerStore) UpdatePartial(ctx context.Context, ownerID, id string, patch models.EntryPatch) (models.LedgerEntry, error) {
	if err := ctx.Err(); err != nil {
		return models.LedgerEntry{}, apperror.Store("update entry", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[id]
	if !ok || entry.OwnerID != ownerID {
		return models.LedgerEntry{}, apperror.NotFound("Transaction")
	}

	if patch.Title != nil {
		entry.Title = *patch.Title
	}
	if patch.Kind != nil {
		entry.Kind = *patch.Kind
	}
	if patch.Amount != nil {
		entry.Amount = *patch.Amount
	}
	entry.UpdatedAt = m.now().UTC()

	m.entries[id] = entry
	return entry, nil
}

func (m *MemoryLedgerStore) Delete(ctx context.Context, ownerID, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, apperror.Store("delete entry", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[id]
	if !ok || entry.OwnerID != ownerID {
		return false, nil
	}
	delete(m.entries, id)
	return true, nil
}

// List filters by owner and kind, orders newest first with id as tie-break, then
// applies offset and limit to the sorted result.
func (m *MemoryLedgerStore) List(ctx context.Context, ownerID string, q models.ListQuery) ([]models.LedgerEntry, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, apperror.Store("list entries", err)
	}

	m.mu.Lock()
	var matched []models.LedgerEntry
	for _, e := range m.entries {
		if e.OwnerID != ownerID {
			continue
		}
		if q.Kind != nil && e.Kind != *q.Kind {
			continue
		}
		matched = append(matched, e)
	}
	m.mu.Unlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID < matched[j].ID
	})

	total := len(matched)
	offset := q.Offset()
	if offset < 0 || offset >= total {
		return []models.LedgerEntry{}, total, nil
	}
	end := total
	if q.Limit < total-offset {
		end = offset + q.Limit
	}

	// copy the window so callers can't alias internal state
	page := make([]models.LedgerEntry, end-offset)
	copy(page, matched[offset:end])
	return page, total, nil
}

func (m *MemoryLedgerStore) Totals(ctx context.Context, ownerID string) (decimal.Decimal, decimal.Decimal, error) {
	if err := ctx.Err(); err != nil {
		return decimal.Zero, decimal.Zero, apperror.Store("sum entries", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	income, expenses := decimal.Zero, decimal.Zero
	for _, e := range m.entries {
		if e.OwnerID != ownerID {
			continue
		}
		switch e.Kind {
		case models.KindIncome:
			income = income.Add(e.Amount)
		case models.KindExpense:
			expenses = expenses.Add(e.Amount)
		}
	}
	return income, expenses, nil
}

// Compile-time check: ensure MemoryLedgerStore implements LedgerStore interface
var _ interfaces.LedgerStore = (*MemoryLedgerStore)(nil)
