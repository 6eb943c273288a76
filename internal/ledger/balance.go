package ledger

import (
	"context"

	"github.com/sheikh-saqib/personal-ledger-service/internal/models"
)

// Summarize totals ownerID's income and expenses. Sums stay in decimal so the
// balance carries no floating point drift.
func (l *Ledger) Summarize(ctx context.Context, ownerID string) (models.Summary, error) {
	income, expenses, err := l.store.Totals(ctx, ownerID)
	if err != nil {
		return models.Summary{}, err
	}

	return models.Summary{
		TotalIncome:   income,
		TotalExpenses: expenses,
		Balance:       income.Sub(expenses),
	}, nil
}
