package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"quiz-hub/internal/database"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// SQLPersister stores the snapshot as one row keyed by the snapshot key.
type SQLPersister struct {
	logger *zap.Logger
	db     *sqlx.DB
	table  string
	key    string
}

// NewSQLPersister validates the table name; the table itself is created by
// database.EnsureSnapshotTable.
func NewSQLPersister(logger *zap.Logger, db *sqlx.DB, table, key string) (*SQLPersister, error) {
	if err := database.ValidateTableName(table); err != nil {
		return nil, err
	}
	return &SQLPersister{logger: logger, db: db, table: table, key: key}, nil
}

func (p *SQLPersister) Load(ctx context.Context) ([]byte, error) {
	query := p.db.Rebind(fmt.Sprintf(`SELECT payload FROM %s WHERE snapshot_key = ?`, p.table))

	var payload string
	if err := p.db.GetContext(ctx, &payload, query, p.key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load snapshot from %s: %w", p.table, err)
	}
	return []byte(payload), nil
}

// Save replaces the row inside one transaction. Delete-then-insert keeps the
// statement portable across sqlite and Oracle.
func (p *SQLPersister) Save(ctx context.Context, blob []byte) (err error) {
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				p.logger.Warn("Snapshot rollback failed", zap.Error(rollbackErr))
			}
		}
	}()

	deleteQuery := tx.Rebind(fmt.Sprintf(`DELETE FROM %s WHERE snapshot_key = ?`, p.table))
	if _, err = tx.ExecContext(ctx, deleteQuery, p.key); err != nil {
		return fmt.Errorf("failed to clear snapshot row: %w", err)
	}

	insertQuery := tx.Rebind(fmt.Sprintf(`INSERT INTO %s (snapshot_key, payload, updated_at) VALUES (?, ?, ?)`, p.table))
	if _, err = tx.ExecContext(ctx, insertQuery, p.key, string(blob), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to insert snapshot row: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

func (p *SQLPersister) Close() error {
	return p.db.Close()
}
