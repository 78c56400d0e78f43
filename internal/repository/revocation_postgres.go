package repository

import (
	"context"
	"time"
)

// PostgresRevocationStore keeps revoked token ids in the revoked_tokens table.
type PostgresRevocationStore struct {
	db DBTX
}

// NewPostgresRevocationStore constructs the store.
func NewPostgresRevocationStore(db DBTX) *PostgresRevocationStore {
	return &PostgresRevocationStore{db: db}
}

// Revoke inserts the token id; an existing row is left untouched.
func (s *PostgresRevocationStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	const query = `
        INSERT INTO revoked_tokens (token_id, expires_at)
        VALUES ($1,$2)
        ON CONFLICT (token_id) DO NOTHING`
	_, err := s.db.Exec(ctx, query, tokenID, expiresAt.UTC())
	return err
}

// IsRevoked reports whether a row exists for the token id.
func (s *PostgresRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE token_id=$1)`
	var exists bool
	if err := s.db.QueryRow(ctx, query, tokenID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Purge deletes rows whose token expired at or before now.
func (s *PostgresRevocationStore) Purge(ctx context.Context, now time.Time) (int, error) {
	const query = `DELETE FROM revoked_tokens WHERE expires_at <= $1`
	cmd, err := s.db.Exec(ctx, query, now.UTC())
	if err != nil {
		return 0, err
	}
	return int(cmd.RowsAffected()), nil
}
