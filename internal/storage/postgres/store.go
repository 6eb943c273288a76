package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/personal-ledger-service/internal/apperror"
	interfaces "github.com/sheikh-saqib/personal-ledger-service/internal/interfaces" // interface LedgerStore
	"github.com/sheikh-saqib/personal-ledger-service/internal/models"
)

type PostgresLedgerStore struct {
	db      *sql.DB
	timeout time.Duration
	now     func() time.Time
}

func NewPostgresLedgerStore(db *sql.DB, timeout time.Duration) *PostgresLedgerStore {
	return &PostgresLedgerStore{
		db:      db,
		timeout: timeout,
		now:     time.Now,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (models.LedgerEntry, error) {
	var (
		entry models.LedgerEntry
		kind  string
	)
	err := row.Scan(
		&entry.ID,
		&entry.OwnerID,
		&entry.Title,
		&kind,
		&entry.Amount,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	entry.Kind = models.Kind(kind)
	return entry, err
}

func (p *PostgresLedgerStore) timestamp() time.Time {
	return p.now().UTC().Truncate(time.Microsecond)
}

func (p *PostgresLedgerStore) Insert(ctx context.Context, ownerID, title string, kind models.Kind, amount decimal.Decimal) (models.LedgerEntry, error) {
	const query = `INSERT INTO ledger_entries (id, owner_id, title, kind, amount, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $6)
	RETURNING ` + entryColumns

	ctx, cancel := withTimeout(ctx, p.timeout)
	defer cancel()

	row := p.db.QueryRowContext(ctx, query, uuid.New().String(), ownerID, title, string(kind), amount, p.timestamp())
	entry, err := scanEntry(row)
	if err != nil {
		return models.LedgerEntry{}, classify("insert entry", err)
	}
	return entry, nil
}

func (p *PostgresLedgerStore) FindByID(ctx context.Context, ownerID, id string) (models.LedgerEntry, error) {
	const query = `SELECT ` + entryColumns + ` FROM ledger_entries
	WHERE id = $1 AND owner_id = $2`

	if !validID(id) {
		return models.LedgerEntry{}, apperror.NotFound("Transaction")
	}

	ctx, cancel := withTimeout(ctx, p.timeout)
	defer cancel()

	entry, err := scanEntry(p.db.QueryRowContext(ctx, query, id, ownerID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.LedgerEntry{}, apperror.NotFound("Transaction")
	}
	if err != nil {
		return models.LedgerEntry{}, classify("find entry", err)
	}
	return entry, nil
}

func (p *PostgresLedgerStore) UpdatePartial(ctx context.Context, ownerID, id string, patch models.EntryPatch) (models.LedgerEntry, error) {
	if !validID(id) {
		return models.LedgerEntry{}, apperror.NotFound("Transaction")
	}

	ctx, cancel := withTimeout(ctx, p.timeout)
	defer cancel()

	query, args := updateEntryQuery(ownerID, id, patch, p.timestamp())
	entry, err := scanEntry(p.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.LedgerEntry{}, apperror.NotFound("Transaction")
	}
	if err != nil {
		return models.LedgerEntry{}, classify("update entry", err)
	}
	return entry, nil
}

func (p *PostgresLedgerStore) Delete(ctx context.Context, ownerID, id string) (bool, error) {
	const query = `DELETE FROM ledger_entries WHERE id = $1 AND owner_id = $2`

	if !validID(id) {
		return false, nil
	}

	ctx, cancel := withTimeout(ctx, p.timeout)
	defer cancel()

	res, err := p.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return false, classify("delete entry", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, classify("delete entry", err)
	}
	return n > 0, nil
}

func (p *PostgresLedgerStore) List(ctx context.Context, ownerID string, q models.ListQuery) ([]models.LedgerEntry, int, error) {
	ctx, cancel := withTimeout(ctx, p.timeout)
	defer cancel()

	countSQL, countArgs := countEntriesQuery(ownerID, q)
	var total int
	if err := p.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, classify("count entries", err)
	}

	listSQL, listArgs := listEntriesQuery(ownerID, q)
	rows, err := p.db.QueryContext(ctx, listSQL, listArgs...)
	if err != nil {
		return nil, 0, classify("list entries", err)
	}

	defer rows.Close()

	entries := make([]models.LedgerEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, 0, classify("list entries", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, classify("list entries", err)
	}
	return entries, total, nil
}

func (p *PostgresLedgerStore) Totals(ctx context.Context, ownerID string) (decimal.Decimal, decimal.Decimal, error) {
	const query = `SELECT
		COALESCE(SUM(CASE WHEN kind = 'income' THEN amount END), 0),
		COALESCE(SUM(CASE WHEN kind = 'expense' THEN amount END), 0)
	FROM ledger_entries
	WHERE owner_id = $1`

	ctx, cancel := withTimeout(ctx, p.timeout)
	defer cancel()

	var income, expenses decimal.Decimal
	if err := p.db.QueryRowContext(ctx, query, ownerID).Scan(&income, &expenses); err != nil {
		return decimal.Zero, decimal.Zero, classify("sum entries", err)
	}
	return income, expenses, nil
}

var _ interfaces.LedgerStore = (*PostgresLedgerStore)(nil)
