package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// sqliteSnapshotRepo implements SnapshotRepo over the bank_snapshots table.
type sqliteSnapshotRepo struct {
	db *sql.DB
}

func (r *sqliteSnapshotRepo) Load(ctx context.Context, profileID string) ([]byte, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM bank_snapshots WHERE profile_id = ?`, profileID,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load snapshot %q: %w", profileID, err)
	}
	return data, nil
}

func (r *sqliteSnapshotRepo) Save(ctx context.Context, profileID string, data []byte) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.ExecContext(ctx,
		`INSERT INTO bank_snapshots (profile_id, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(profile_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		profileID, data, time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save snapshot %q: %w", profileID, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot %q: %w", profileID, err)
	}
	return nil
}

func (r *sqliteSnapshotRepo) Delete(ctx context.Context, profileID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM bank_snapshots WHERE profile_id = ?`, profileID); err != nil {
		return fmt.Errorf("delete snapshot %q: %w", profileID, err)
	}
	return nil
}
