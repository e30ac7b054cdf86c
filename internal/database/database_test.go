package database

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTableName(t *testing.T) {
	assert.NoError(t, ValidateTableName("quizhub_snapshots"))
	assert.Error(t, ValidateTableName(""))
	assert.Error(t, ValidateTableName("1table"))
	assert.Error(t, ValidateTableName("snap; DROP TABLE users"))
}

func TestNewSQLXDB_UnsupportedDriver(t *testing.T) {
	_, err := NewSQLXDB("postgres", "dsn")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported sql driver")
}

func TestRebindPlaceholders(t *testing.T) {
	assert.Equal(t, "SELECT a FROM t WHERE k = ?", sqlx.Rebind(sqlx.BindType(DriverSQLite), "SELECT a FROM t WHERE k = ?"))
	assert.Equal(t, "SELECT a FROM t WHERE k = :arg1", sqlx.Rebind(sqlx.BindType(DriverOracle), "SELECT a FROM t WHERE k = ?"))
}

func TestEnsureSnapshotTable(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	db := sqlx.NewDb(mockDB, "sqlmock")
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS snaps")).WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, EnsureSnapshotTable(context.Background(), db, DriverSQLite, "snaps"))

	mock.ExpectExec(regexp.QuoteMeta("EXECUTE IMMEDIATE 'CREATE TABLE snaps")).WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, EnsureSnapshotTable(context.Background(), db, DriverOracle, "snaps"))

	assert.Error(t, EnsureSnapshotTable(context.Background(), db, "mysql", "snaps"))
	assert.Error(t, EnsureSnapshotTable(context.Background(), db, DriverSQLite, "bad name"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
