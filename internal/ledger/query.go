package ledger

import (
	"context"

	"github.com/sheikh-saqib/personal-ledger-service/internal/models"
)

// ListEntries returns one page of ownerID's entries, newest first. Absent page or
// limit values fall back to 1 and 10. No upper bound is placed on limit here.
func (l *Ledger) ListEntries(ctx context.Context, ownerID string, q models.ListQuery) (models.EntryPage, error) {
	q = q.Normalize()

	entries, total, err := l.store.List(ctx, ownerID, q)
	if err != nil {
		return models.EntryPage{}, err
	}

	return models.EntryPage{
		Entries:    entries,
		Pagination: models.NewPagination(q, total),
	}, nil
}
