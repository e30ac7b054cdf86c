package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/glebarez/go-sqlite" // registers "sqlite"
	_ "github.com/sijms/go-ora/v2"    // registers "oracle"
)

const (
	DriverSQLite = "sqlite"
	DriverOracle = "oracle"
)

func init() {
	// sqlx does not know these driver names; without a bind type Rebind
	// would leave "?" placeholders untouched for Oracle.
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
	sqlx.BindDriver(DriverOracle, sqlx.NAMED)
}

// NewSQLXDB opens and pings a database for the given driver.
func NewSQLXDB(driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case DriverSQLite, DriverOracle:
	default:
		return nil, fmt.Errorf("unsupported sql driver: %s", driver)
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}
	if driver == DriverSQLite {
		// One writer at a time; sqlite serializes anyway.
		db.SetMaxOpenConns(1)
	}
	return db, nil
}
