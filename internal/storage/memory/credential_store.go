package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sheikh-saqib/personal-ledger-service/internal/apperror"
	interfaces "github.com/sheikh-saqib/personal-ledger-service/internal/interfaces"
	"github.com/sheikh-saqib/personal-ledger-service/internal/models"
)

// MemoryCredentialStore keeps accounts in memory. The email index doubles as the
// uniqueness constraint, checked under the same lock as the insert.
type MemoryCredentialStore struct {
	mu       sync.Mutex
	accounts map[string]models.Account // by id
	byEmail  map[string]string         // email -> id
	now      func() time.Time
}

func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{
		accounts: make(map[string]models.Account),
		byEmail:  make(map[string]string),
		now:      time.Now,
	}
}

func (m *MemoryCredentialStore) FindByEmail(ctx context.Context, email string) (models.Account, error) {
	if err := ctx.Err(); err != nil {
		return models.Account{}, apperror.Store("find account", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.byEmail[email]
	if !ok {
		return models.Account{}, apperror.NotFound("Account")
	}
	return m.accounts[id], nil
}

func (m *MemoryCredentialStore) Create(ctx context.Context, email, passwordHash string) (models.Account, error) {
	if err := ctx.Err(); err != nil {
		return models.Account{}, apperror.Store("create account", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byEmail[email]; exists {
		return models.Account{}, apperror.Conflict("Email is already taken")
	}

	ts := m.now().UTC()
	account := models.Account{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	m.accounts[account.ID] = account
	m.byEmail[email] = account.ID
	return account, nil
}

func (m *MemoryCredentialStore) SetActiveToken(ctx context.Context, accountID, token string) error {
	if err := ctx.Err(); err != nil {
		return apperror.Store("set active token", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.accounts[accountID]
	if !ok {
		return apperror.NotFound("Account")
	}
	account.ActiveToken = token
	account.UpdatedAt = m.now().UTC()
	m.accounts[accountID] = account
	return nil
}

func (m *MemoryCredentialStore) FindByEmailAndToken(ctx context.Context, email, token string) (models.Account, error) {
	if err := ctx.Err(); err != nil {
		return models.Account{}, apperror.Store("find session", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.byEmail[email]
	if !ok {
		return models.Account{}, apperror.NotFound("Account")
	}
	account := m.accounts[id]
	if account.ActiveToken == "" || account.ActiveToken != token {
		return models.Account{}, apperror.NotFound("Account")
	}
	return account, nil
}

var _ interfaces.CredentialStore = (*MemoryCredentialStore)(nil)
