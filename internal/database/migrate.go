package database

import (
	"context"
	"fmt"
	"regexp"

	"github.com/jmoiron/sqlx"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,62}$`)

// ValidateTableName guards identifiers that are interpolated into DDL/DML.
func ValidateTableName(table string) error {
	if !tableNamePattern.MatchString(table) {
		return fmt.Errorf("invalid table name: %q", table)
	}
	return nil
}

// snapshotTableDDL returns the statement creating the single-row-per-key
// snapshot table for a driver.
func snapshotTableDDL(driver, table string) (string, error) {
	switch driver {
	case DriverOracle:
		// ORA-00955: name is already used by an existing object.
		return fmt.Sprintf(`BEGIN
  EXECUTE IMMEDIATE 'CREATE TABLE %s (SNAPSHOT_KEY VARCHAR2(255) PRIMARY KEY, PAYLOAD CLOB NOT NULL, UPDATED_AT TIMESTAMP NOT NULL)';
EXCEPTION
  WHEN OTHERS THEN
    IF SQLCODE != -955 THEN RAISE; END IF;
END;`, table), nil
	case DriverSQLite:
		return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (snapshot_key TEXT PRIMARY KEY, payload TEXT NOT NULL, updated_at TIMESTAMP NOT NULL)`, table), nil
	default:
		return "", fmt.Errorf("unsupported sql driver: %s", driver)
	}
}

// EnsureSnapshotTable creates the snapshot table when it does not exist.
func EnsureSnapshotTable(ctx context.Context, db *sqlx.DB, driver, table string) error {
	if err := ValidateTableName(table); err != nil {
		return err
	}
	ddl, err := snapshotTableDDL(driver, table)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("could not create snapshot table %s: %w", table, err)
	}
	return nil
}
