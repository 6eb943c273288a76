package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/sheikh-saqib/personal-ledger-service/internal/apperror"
)

// classify maps driver errors onto the application taxonomy. Unique violations on
// the email constraint become conflicts; everything else is a StoreError.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" && pqErr.Constraint == "accounts_email_key" {
		return apperror.Conflict("Email is already taken")
	}

	return apperror.Store(op, err)
}

// validID reports whether id can be compared against a UUID column. Anything else
// can never match a row, so callers treat it as not found without a round trip.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// withTimeout bounds a store call, covering both pool acquisition and the query.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return context.WithCancel(ctx)
}
