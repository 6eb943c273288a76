package interfaces

import (
	"context"

	"github.com/sheikh-saqib/personal-ledger-service/internal/models"
)

// CredentialStore persists accounts and the single active session token of each.
// Lookups that find nothing return an *apperror.NotFoundError.
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (models.Account, error)
	// Create fails with *apperror.ConflictError when the email is taken.
	Create(ctx context.Context, email, passwordHash string) (models.Account, error)
	// SetActiveToken overwrites the account's active token and bumps updated_at in one write.
	SetActiveToken(ctx context.Context, accountID, token string) error
	// FindByEmailAndToken matches the stored token by exact equality.
	FindByEmailAndToken(ctx context.Context, email, token string) (models.Account, error)
}
