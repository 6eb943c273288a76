package postgres

import (
	"strconv"
	"strings"
	"time"

	"github.com/sheikh-saqib/personal-ledger-service/internal/models"
)

const entryColumns = `id, owner_id, title, kind, amount, created_at, updated_at`

// queryBuilder accumulates SQL text and its bound arguments. User supplied values
// only ever enter through bind, which emits a $n placeholder.
type queryBuilder struct {
	sql  strings.Builder
	args []any
}

func (b *queryBuilder) write(parts ...string) *queryBuilder {
	for _, p := range parts {
		b.sql.WriteString(p)
	}
	return b
}

func (b *queryBuilder) bind(v any) string {
	b.args = append(b.args, v)
	return "$" + strconv.Itoa(len(b.args))
}

func (b *queryBuilder) build() (string, []any) {
	return b.sql.String(), b.args
}

// whereOwner writes the owner and optional kind filter shared by list and count.
func (b *queryBuilder) whereOwner(ownerID string, kind *models.Kind) {
	b.write(" WHERE owner_id = ", b.bind(ownerID))
	if kind != nil {
		b.write(" AND kind = ", b.bind(string(*kind)))
	}
}

func listEntriesQuery(ownerID string, q models.ListQuery) (string, []any) {
	b := &queryBuilder{}
	b.write("SELECT ", entryColumns, " FROM ledger_entries")
	b.whereOwner(ownerID, q.Kind)
	b.write(" ORDER BY created_at DESC, id ASC")
	b.write(" LIMIT ", b.bind(q.Limit), " OFFSET ", b.bind(q.Offset()))
	return b.build()
}

func countEntriesQuery(ownerID string, q models.ListQuery) (string, []any) {
	b := &queryBuilder{}
	b.write("SELECT COUNT(*) FROM ledger_entries")
	b.whereOwner(ownerID, q.Kind)
	return b.build()
}

// updateEntryQuery sets only the patched columns. updated_at is always refreshed.
func updateEntryQuery(ownerID, id string, patch models.EntryPatch, now time.Time) (string, []any) {
	b := &queryBuilder{}
	b.write("UPDATE ledger_entries SET updated_at = ", b.bind(now))
	if patch.Title != nil {
		b.write(", title = ", b.bind(*patch.Title))
	}
	if patch.Kind != nil {
		b.write(", kind = ", b.bind(string(*patch.Kind)))
	}
	if patch.Amount != nil {
		b.write(", amount = ", b.bind(*patch.Amount))
	}
	b.write(" WHERE id = ", b.bind(id), " AND owner_id = ", b.bind(ownerID))
	b.write(" RETURNING ", entryColumns)
	return b.build()
}
