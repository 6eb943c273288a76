// Package accounts registers accounts and logs them in, issuing a fresh session
// token each time.
package accounts

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sheikh-saqib/personal-ledger-service/internal/apperror"
	interfaces "github.com/sheikh-saqib/personal-ledger-service/internal/interfaces"
	"github.com/sheikh-saqib/personal-ledger-service/internal/models"
	"github.com/sheikh-saqib/personal-ledger-service/internal/session"
)

// bcrypt ignores everything past 72 bytes.
const maxPasswordBytes = 72

// Result is an account together with the session token just issued for it.
type Result struct {
	Account models.Account
	Token   string
}

type Service struct {
	store  interfaces.CredentialStore
	issuer *session.Issuer
	cost   int
	logger *zap.Logger
}

func NewService(store interfaces.CredentialStore, issuer *session.Issuer, bcryptCost int, logger *zap.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		store:  store,
		issuer: issuer,
		cost:   bcryptCost,
		logger: logger,
	}
}

// Register creates an account and logs it in. The email pre-check gives a clean
// conflict in the common case; the store's uniqueness constraint settles races.
func (s *Service) Register(ctx context.Context, email, password string) (Result, error) {
	if len(password) > maxPasswordBytes {
		return Result{}, apperror.Validation("password", "Password must be at most 72 bytes long")
	}

	_, err := s.store.FindByEmail(ctx, email)
	if err == nil {
		return Result{}, apperror.Conflict("Email is already taken")
	}
	var notFound *apperror.NotFoundError
	if !errors.As(err, &notFound) {
		return Result{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return Result{}, fmt.Errorf("hash password: %w", err)
	}

	account, err := s.store.Create(ctx, email, string(hash))
	if err != nil {
		return Result{}, err
	}

	token, err := s.issuer.Issue(ctx, account)
	if err != nil {
		return Result{}, err
	}
	account.ActiveToken = token

	s.logger.Info("account registered", zap.String("account_id", account.ID))
	return Result{Account: account, Token: token}, nil
}

// Login verifies the password and replaces the account's active token. Unknown
// email and wrong password fail identically.
func (s *Service) Login(ctx context.Context, email, password string) (Result, error) {
	account, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		var notFound *apperror.NotFoundError
		if errors.As(err, &notFound) {
			return Result{}, apperror.Authentication(apperror.InvalidCredentials, nil)
		}
		return Result{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return Result{}, apperror.Authentication(apperror.InvalidCredentials, nil)
	}

	token, err := s.issuer.Issue(ctx, account)
	if err != nil {
		return Result{}, err
	}
	account.ActiveToken = token

	s.logger.Info("account logged in", zap.String("account_id", account.ID))
	return Result{Account: account, Token: token}, nil
}
