package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestMigrate_InTransaction(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS users")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS rides")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE INDEX IF NOT EXISTS idx_rides_user_date_time ON rides (user_id, date_time DESC)")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := WithTx(context.Background(), db, func(tx *sql.Tx) error {
		return Migrate(context.Background(), tx)
	})
	require.NoError(t, err)
}

func TestMigrate_RollsBackOnFailure(t *testing.T) {
	db, mock := newMockDB(t)
	ddlErr := errors.New("permission denied")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS users")).WillReturnError(ddlErr)
	mock.ExpectRollback()

	err := WithTx(context.Background(), db, func(tx *sql.Tx) error {
		return Migrate(context.Background(), tx)
	})
	require.ErrorIs(t, err, ddlErr)
}
