package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/codecollab/server/internal/database"
	apperrors "github.com/codecollab/server/internal/errors"
	sessionDomain "github.com/codecollab/server/internal/session/domain"
	sessionService "github.com/codecollab/server/internal/session/service"
)

// MySQLRevocationStore implements the revocation store on the revoked_tokens table.
type MySQLRevocationStore struct {
	db     *sql.DB
	hasher sessionService.TokenHasher
	clock  sessionDomain.Clock
}

// Revoke upserts the token digest with expires_at = now + ttl.
func (m *MySQLRevocationStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	querier := database.GetTx(ctx, m.db)

	now := m.clock().UTC()
	query := `INSERT INTO revoked_tokens (token_hash, expires_at, created_at)
			  VALUES (?, ?, ?)
			  ON DUPLICATE KEY UPDATE expires_at = VALUES(expires_at)`

	_, err := querier.ExecContext(ctx, query, m.hasher.HashToken(token), now.Add(ttl), now)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke token")
	}
	return nil
}

// IsRevoked reports whether an unexpired record exists for token.
func (m *MySQLRevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE token_hash = ? AND expires_at > ?)`

	var revoked bool
	err := querier.QueryRowContext(ctx, query, m.hasher.HashToken(token), m.clock().UTC()).Scan(&revoked)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check token revocation")
	}
	return revoked, nil
}

// Ping checks the database connection.
func (m *MySQLRevocationStore) Ping(ctx context.Context) error {
	if err := m.db.PingContext(ctx); err != nil {
		return apperrors.Wrap(err, "failed to ping database")
	}
	return nil
}

// DeleteExpired removes records that expired before now, or counts them when dryRun is set.
func (m *MySQLRevocationStore) DeleteExpired(ctx context.Context, now time.Time, dryRun bool) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	if dryRun {
		var count int64
		query := `SELECT COUNT(*) FROM revoked_tokens WHERE expires_at <= ?`
		if err := querier.QueryRowContext(ctx, query, now.UTC()).Scan(&count); err != nil {
			return 0, apperrors.Wrap(err, "failed to count expired revocations")
		}
		return count, nil
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM revoked_tokens WHERE expires_at <= ?`, now.UTC())
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired revocations")
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get affected rows")
	}
	return count, nil
}

// NewMySQLRevocationStore creates a new MySQL revocation store.
func NewMySQLRevocationStore(
	db *sql.DB,
	hasher sessionService.TokenHasher,
	clock sessionDomain.Clock,
) *MySQLRevocationStore {
	if clock == nil {
		clock = time.Now
	}
	return &MySQLRevocationStore{db: db, hasher: hasher, clock: clock}
}
