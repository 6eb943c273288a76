package postgres

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/sheikh-saqib/personal-ledger-service/internal/models"
)

func TestListEntriesQuery(t *testing.T) {
	expense := models.KindExpense

	tests := []struct {
		name     string
		query    models.ListQuery
		wantSQL  string
		wantArgs []any
	}{
		{
			name:  "no filter",
			query: models.ListQuery{Page: 1, Limit: 10},
			wantSQL: "SELECT id, owner_id, title, kind, amount, created_at, updated_at FROM ledger_entries" +
				" WHERE owner_id = $1 ORDER BY created_at DESC, id ASC LIMIT $2 OFFSET $3",
			wantArgs: []any{"owner", 10, 0},
		},
		{
			name:  "kind filter on page three",
			query: models.ListQuery{Page: 3, Limit: 25, Kind: &expense},
			wantSQL: "SELECT id, owner_id, title, kind, amount, created_at, updated_at FROM ledger_entries" +
				" WHERE owner_id = $1 AND kind = $2 ORDER BY created_at DESC, id ASC LIMIT $3 OFFSET $4",
			wantArgs: []any{"owner", "expense", 25, 50},
		},
		{
			name:  "offset past max int clamps",
			query: models.ListQuery{Page: math.MaxInt, Limit: 10},
			wantSQL: "SELECT id, owner_id, title, kind, amount, created_at, updated_at FROM ledger_entries" +
				" WHERE owner_id = $1 ORDER BY created_at DESC, id ASC LIMIT $2 OFFSET $3",
			wantArgs: []any{"owner", 10, math.MaxInt},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args := listEntriesQuery("owner", tt.query)
			assert.Equal(t, tt.wantSQL, sql)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestCountEntriesQueryMatchesListFilter(t *testing.T) {
	income := models.KindIncome
	sql, args := countEntriesQuery("owner", models.ListQuery{Page: 2, Limit: 5, Kind: &income})
	assert.Equal(t, "SELECT COUNT(*) FROM ledger_entries WHERE owner_id = $1 AND kind = $2", sql)
	assert.Equal(t, []any{"owner", "income"}, args)
}

func TestUpdateEntryQueryBindsOnlyPatchedFields(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	title := "'; DROP TABLE accounts; --"
	amount := decimal.RequireFromString("12.50")

	sql, args := updateEntryQuery("owner", "entry", models.EntryPatch{Title: &title, Amount: &amount}, now)

	assert.Equal(t, "UPDATE ledger_entries SET updated_at = $1, title = $2, amount = $3"+
		" WHERE id = $4 AND owner_id = $5"+
		" RETURNING id, owner_id, title, kind, amount, created_at, updated_at", sql)
	assert.Equal(t, []any{now, title, amount, "entry", "owner"}, args)
	assert.NotContains(t, sql, "DROP")
}

func TestUpdateEntryQueryEmptyPatchOnlyTouchesUpdatedAt(t *testing.T) {
	now := time.Now()
	sql, args := updateEntryQuery("owner", "entry", models.EntryPatch{}, now)
	assert.Contains(t, sql, "SET updated_at = $1 WHERE id = $2 AND owner_id = $3")
	assert.Len(t, args, 3)
}
