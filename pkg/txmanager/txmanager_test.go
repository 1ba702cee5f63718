package txmanager

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CharterService/pkg/dbmetrics"
)

func newManager(t *testing.T) (*TransactionManager, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewTransactionManager(&dbmetrics.SqlDBWrapper{DB: db}), mock
}

func TestDoSerializable_Commit(t *testing.T) {
	m, mock := newManager(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		assert.True(t, dbmetrics.IsInTransaction(ctx))
		return nil
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_RollbackOnError(t *testing.T) {
	m, mock := newManager(t)
	errBusiness := errors.New("slot taken")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return errBusiness
	})

	assert.ErrorIs(t, err, errBusiness)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDo_CommitErrorKeepsCause(t *testing.T) {
	m, mock := newManager(t)
	cause := errors.New("could not serialize access")

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(cause)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error { return nil })

	assert.ErrorIs(t, err, ErrCommit)
	assert.ErrorIs(t, err, cause)
}

func TestDo_NestedReusesTransaction(t *testing.T) {
	m, mock := newManager(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := m.Do(context.Background(), func(ctx context.Context) error {
		return m.DoSerializable(ctx, func(inner context.Context) error {
			assert.True(t, dbmetrics.IsInTransaction(inner))
			return nil
		})
	})

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
