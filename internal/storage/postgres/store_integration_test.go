//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/sheikh-saqib/personal-ledger-service/internal/apperror"
	"github.com/sheikh-saqib/personal-ledger-service/internal/models"
)

// setupPostgres starts a disposable PostgreSQL container, applies the migrations
// and returns an open pool. Everything is torn down through t.Cleanup.
func setupPostgres(t *testing.T) *PostgresCredentialStore {
	t.Helper()

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("finance_manager"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, container.Terminate(ctx)) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, Migrate(dsn))
	require.NoError(t, Migrate(dsn), "second run is a no-op")

	db, err := Open(ctx, Config{DSN: dsn, MaxOpenConns: 4, MaxIdleConns: 2, Timeout: 5 * time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewPostgresCredentialStore(db, 5*time.Second)
}

func TestIntegration_Postgres_SessionAndLedger(t *testing.T) {
	accounts := setupPostgres(t)
	entries := NewPostgresLedgerStore(accounts.db, 5*time.Second)
	ctx := context.Background()

	alice, err := accounts.Create(ctx, "alice@example.com", "hash")
	require.NoError(t, err)

	_, err = accounts.Create(ctx, "alice@example.com", "hash")
	var conflict *apperror.ConflictError
	require.ErrorAs(t, err, &conflict)

	require.NoError(t, accounts.SetActiveToken(ctx, alice.ID, "t1"))
	require.NoError(t, accounts.SetActiveToken(ctx, alice.ID, "t2"))

	var notFound *apperror.NotFoundError
	_, err = accounts.FindByEmailAndToken(ctx, "alice@example.com", "t1")
	assert.ErrorAs(t, err, &notFound)
	got, err := accounts.FindByEmailAndToken(ctx, "alice@example.com", "t2")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	bob, err := accounts.Create(ctx, "bob@example.com", "hash")
	require.NoError(t, err)

	pay, err := entries.Insert(ctx, alice.ID, "Pay", models.KindIncome, decimal.RequireFromString("1000.00"))
	require.NoError(t, err)
	_, err = entries.Insert(ctx, alice.ID, "Food", models.KindExpense, decimal.RequireFromString("25.10"))
	require.NoError(t, err)

	_, err = entries.FindByID(ctx, bob.ID, pay.ID)
	assert.ErrorAs(t, err, &notFound)

	income := models.KindIncome
	page, total, err := entries.List(ctx, alice.ID, models.ListQuery{Page: 1, Limit: 1, Kind: &income})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, page, 1)
	assert.Equal(t, pay.ID, page[0].ID)

	title := "Salary"
	updated, err := entries.UpdatePartial(ctx, alice.ID, pay.ID, models.EntryPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Salary", updated.Title)
	assert.Equal(t, "1000.00", updated.Amount.StringFixed(2))

	in, out, err := entries.Totals(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "1000.00", in.StringFixed(2))
	assert.Equal(t, "25.10", out.StringFixed(2))

	removed, err := entries.Delete(ctx, bob.ID, pay.ID)
	require.NoError(t, err)
	assert.False(t, removed)
	removed, err = entries.Delete(ctx, alice.ID, pay.ID)
	require.NoError(t, err)
	assert.True(t, removed)
}
