package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/sheikh-saqib/personal-ledger-service/internal/apperror"
	interfaces "github.com/sheikh-saqib/personal-ledger-service/internal/interfaces"
	"github.com/sheikh-saqib/personal-ledger-service/internal/models"
)

const accountColumns = `id, email, password_hash, COALESCE(active_token, ''), created_at, updated_at`

// PostgresCredentialStore keeps accounts in the accounts table. Email uniqueness
// is enforced by the accounts_email_key constraint.
type PostgresCredentialStore struct {
	db      *sql.DB
	timeout time.Duration
	now     func() time.Time
}

func NewPostgresCredentialStore(db *sql.DB, timeout time.Duration) *PostgresCredentialStore {
	return &PostgresCredentialStore{
		db:      db,
		timeout: timeout,
		now:     time.Now,
	}
}

func scanAccount(row rowScanner) (models.Account, error) {
	var a models.Account
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.ActiveToken, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (p *PostgresCredentialStore) FindByEmail(ctx context.Context, email string) (models.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`

	ctx, cancel := withTimeout(ctx, p.timeout)
	defer cancel()

	account, err := scanAccount(p.db.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, apperror.NotFound("Account")
	}
	if err != nil {
		return models.Account{}, classify("find account", err)
	}
	return account, nil
}

func (p *PostgresCredentialStore) Create(ctx context.Context, email, passwordHash string) (models.Account, error) {
	const query = `INSERT INTO accounts (id, email, password_hash, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $4)
	RETURNING ` + accountColumns

	ctx, cancel := withTimeout(ctx, p.timeout)
	defer cancel()

	now := p.now().UTC().Truncate(time.Microsecond)
	account, err := scanAccount(p.db.QueryRowContext(ctx, query, uuid.New().String(), email, passwordHash, now))
	if err != nil {
		return models.Account{}, classify("create account", err)
	}
	return account, nil
}

// SetActiveToken replaces the token in a single UPDATE, so readers see either the
// old or the new token and never a partial write.
func (p *PostgresCredentialStore) SetActiveToken(ctx context.Context, accountID, token string) error {
	const query = `UPDATE accounts SET active_token = $1, updated_at = $2 WHERE id = $3`

	if !validID(accountID) {
		return apperror.NotFound("Account")
	}

	ctx, cancel := withTimeout(ctx, p.timeout)
	defer cancel()

	res, err := p.db.ExecContext(ctx, query, token, p.now().UTC().Truncate(time.Microsecond), accountID)
	if err != nil {
		return classify("set active token", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return classify("set active token", err)
	}
	if n == 0 {
		return apperror.NotFound("Account")
	}
	return nil
}

func (p *PostgresCredentialStore) FindByEmailAndToken(ctx context.Context, email, token string) (models.Account, error) {
	const query = `SELECT ` + accountColumns + ` FROM accounts
	WHERE email = $1 AND active_token = $2`

	if token == "" {
		return models.Account{}, apperror.NotFound("Account")
	}

	ctx, cancel := withTimeout(ctx, p.timeout)
	defer cancel()

	account, err := scanAccount(p.db.QueryRowContext(ctx, query, email, token))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, apperror.NotFound("Account")
	}
	if err != nil {
		return models.Account{}, classify("find session", err)
	}
	return account, nil
}

var _ interfaces.CredentialStore = (*PostgresCredentialStore)(nil)
