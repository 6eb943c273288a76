package session

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	interfaces "github.com/sheikh-saqib/personal-ledger-service/internal/interfaces"
	"github.com/sheikh-saqib/personal-ledger-service/internal/models"
)

type Issuer struct {
	store  interfaces.CredentialStore
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(store interfaces.CredentialStore, cfg Config) *Issuer {
	return &Issuer{
		store:  store,
		secret: cfg.Secret,
		ttl:    cfg.ttl(),
		now:    cfg.clock(),
	}
}

// Issue signs a new token for account and stores it as the account's only active
// token. Any token issued earlier stops validating once this write lands.
func (i *Issuer) Issue(ctx context.Context, account models.Account) (string, error) {
	now := i.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: account.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	if err := i.store.SetActiveToken(ctx, account.ID, signed); err != nil {
		return "", fmt.Errorf("store active token: %w", err)
	}

	return signed, nil
}
