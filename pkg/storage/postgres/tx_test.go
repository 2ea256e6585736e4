package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"portal/pkg/storage"
	"portal/pkg/storage/postgres"
)

func TestPgSQL_Begin_SuccessAndAlreadyInTx(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	// Success: begin from *sql.DB
	txStorage, err := pg.Begin(ctx)
	require.NoError(t, err)
	require.NotNil(t, txStorage)

	// Should be a *postgres.PgSQL with underlying *sql.Tx
	inner, ok := txStorage.(*postgres.PgSQL)
	require.True(t, ok)
	_, isTx := inner.DB.(*sql.Tx)
	require.True(t, isTx)

	// Error: begin when already in tx
	_, err = inner.Begin(ctx)
	require.Error(t, err)
	require.ErrorIs(t, err, storage.ErrAlreadyInTx)

	// Cleanup the opened transaction
	require.NoError(t, inner.Rollback())
}

func TestPgSQL_CommitAndRollback_NotInTx(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	require.ErrorIs(t, pg.Commit(), storage.ErrNotInTx)
	require.ErrorIs(t, pg.Rollback(), storage.ErrNotInTx)
}

func TestPgSQL_CommitPersistsWrites(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	s := seedCatalog(t, pg.DB.(*sql.DB))
	ctx := context.Background()

	txStorage, err := pg.Begin(ctx)
	require.NoError(t, err)

	_, err = txStorage.StoreApplication(ctx, testApplication(s, 0))
	require.NoError(t, err)
	require.NoError(t, txStorage.Commit())

	apps, err := pg.ApplicationsByStudent(ctx, s.studentID)
	require.NoError(t, err)
	require.Len(t, apps, 1)
}

func TestPgSQL_RollbackDiscardsWrites(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	s := seedCatalog(t, pg.DB.(*sql.DB))
	ctx := context.Background()

	txStorage, err := pg.Begin(ctx)
	require.NoError(t, err)

	_, err = txStorage.StoreApplication(ctx, testApplication(s, 0))
	require.NoError(t, err)
	require.NoError(t, txStorage.Rollback())

	apps, err := pg.ApplicationsByStudent(ctx, s.studentID)
	require.NoError(t, err)
	require.Empty(t, apps)
}
