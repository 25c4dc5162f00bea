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

// PostgreSQLRevocationStore implements the revocation store on the revoked_tokens table.
// Tokens are stored as SHA-256 digests with transaction support via database.GetTx().
type PostgreSQLRevocationStore struct {
	db     *sql.DB
	hasher sessionService.TokenHasher
	clock  sessionDomain.Clock
}

// Revoke upserts the token digest with expires_at = now + ttl.
func (p *PostgreSQLRevocationStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	querier := database.GetTx(ctx, p.db)

	now := p.clock().UTC()
	query := `INSERT INTO revoked_tokens (token_hash, expires_at, created_at)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (token_hash) DO UPDATE SET expires_at = EXCLUDED.expires_at`

	_, err := querier.ExecContext(ctx, query, p.hasher.HashToken(token), now.Add(ttl), now)
	if err != nil {
		return apperrors.Wrap(err, "failed to revoke token")
	}
	return nil
}

// IsRevoked reports whether an unexpired record exists for token.
func (p *PostgreSQLRevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE token_hash = $1 AND expires_at > $2)`

	var revoked bool
	err := querier.QueryRowContext(ctx, query, p.hasher.HashToken(token), p.clock().UTC()).Scan(&revoked)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check token revocation")
	}
	return revoked, nil
}

// Ping checks the database connection.
func (p *PostgreSQLRevocationStore) Ping(ctx context.Context) error {
	if err := p.db.PingContext(ctx); err != nil {
		return apperrors.Wrap(err, "failed to ping database")
	}
	return nil
}

// DeleteExpired removes records that expired before now, or counts them when dryRun is set.
func (p *PostgreSQLRevocationStore) DeleteExpired(ctx context.Context, now time.Time, dryRun bool) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	if dryRun {
		var count int64
		query := `SELECT COUNT(*) FROM revoked_tokens WHERE expires_at <= $1`
		if err := querier.QueryRowContext(ctx, query, now.UTC()).Scan(&count); err != nil {
			return 0, apperrors.Wrap(err, "failed to count expired revocations")
		}
		return count, nil
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM revoked_tokens WHERE expires_at <= $1`, now.UTC())
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired revocations")
	}
	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get affected rows")
	}
	return count, nil
}

// NewPostgreSQLRevocationStore creates a new PostgreSQL revocation store.
func NewPostgreSQLRevocationStore(
	db *sql.DB,
	hasher sessionService.TokenHasher,
	clock sessionDomain.Clock,
) *PostgreSQLRevocationStore {
	if clock == nil {
		clock = time.Now
	}
	return &PostgreSQLRevocationStore{db: db, hasher: hasher, clock: clock}
}
