package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sheikh-saqib/personal-ledger-service/internal/apperror"
	interfaces "github.com/sheikh-saqib/personal-ledger-service/internal/interfaces"
)

type Validator struct {
	store  interfaces.CredentialStore
	secret []byte
	now    func() time.Time
}

func NewValidator(store interfaces.CredentialStore, cfg Config) *Validator {
	return &Validator{
		store:  store,
		secret: cfg.Secret,
		now:    cfg.clock(),
	}
}

// Validate checks, in order: presence, signature and structure, expiry, and finally
// that the token is still the account's stored active token.
func (v *Validator) Validate(ctx context.Context, rawToken string) (Principal, error) {
	if strings.TrimSpace(rawToken) == "" {
		return Principal{}, apperror.Authentication(apperror.MissingToken, nil)
	}

	var c claims
	_, err := jwt.ParseWithClaims(rawToken, &c, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(v.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return Principal{}, apperror.Authentication(apperror.Expired, err)
	case err != nil:
		return Principal{}, apperror.Authentication(apperror.Malformed, err)
	case c.Email == "":
		return Principal{}, apperror.Authentication(apperror.Malformed, errors.New("token has no email claim"))
	}

	account, err := v.store.FindByEmailAndToken(ctx, c.Email, rawToken)
	if err != nil {
		var notFound *apperror.NotFoundError
		if errors.As(err, &notFound) {
			return Principal{}, apperror.Authentication(apperror.Stale, err)
		}
		return Principal{}, fmt.Errorf("resolve session: %w", err)
	}

	return Principal{AccountID: account.ID, Email: account.Email}, nil
}
