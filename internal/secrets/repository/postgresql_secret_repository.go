// Package repository implements data persistence for shared secrets.
// Repositories support both PostgreSQL and MySQL; a secret row owns one
// removal key row and an optional decryption key row, removed by cascade.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/secretaryhq/secretary/internal/database"
	apperrors "github.com/secretaryhq/secretary/internal/errors"
	secretsDomain "github.com/secretaryhq/secretary/internal/secrets/domain"
)

const postgresSelectSecret = `SELECT s.id, s.body, s.shared_by_email, s.access_attempts_left, s.self_removal_allowed,
	       s.available_from_utc, s.available_until_utc, s.created_on_utc,
	       rk.id, COALESCE(dk.key, '')
	  FROM secrets s
	  JOIN removal_keys rk ON rk.secret_id = s.id
	  LEFT JOIN decryption_keys dk ON dk.secret_id = s.id`

// PostgreSQLSecretRepository implements Secret persistence for PostgreSQL databases.
type PostgreSQLSecretRepository struct {
	db *sql.DB
}

// Create inserts a new secret together with its removal key and, when present,
// its decryption key. Callers run it inside a transaction so the three rows
// appear atomically.
func (p *PostgreSQLSecretRepository) Create(ctx context.Context, secret *secretsDomain.Secret) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO secrets (id, body, shared_by_email, access_attempts_left, self_removal_allowed,
	                               available_from_utc, available_until_utc, created_on_utc)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := querier.ExecContext(
		ctx,
		query,
		secret.ID,
		secret.Body,
		nullableEmail(secret.SharedByEmail),
		secret.AccessAttemptsLeft,
		secret.SelfRemovalAllowed,
		secret.AvailableFromUTC,
		secret.AvailableUntilUTC,
		secret.CreatedOnUTC,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create secret")
	}

	query = `INSERT INTO removal_keys (id, secret_id) VALUES ($1, $2)`
	if _, err := querier.ExecContext(ctx, query, secret.RemovalKey, secret.ID); err != nil {
		return apperrors.Wrap(err, "failed to create removal key")
	}

	if secret.HasDecryptionKey() {
		query = `INSERT INTO decryption_keys (id, secret_id, key) VALUES ($1, $2, $3)`
		if _, err := querier.ExecContext(ctx, query, uuid.New(), secret.ID, secret.DecryptionKey); err != nil {
			return apperrors.Wrap(err, "failed to create decryption key")
		}
	}

	return nil
}

// GetByID retrieves a secret with its removal and decryption keys.
func (p *PostgreSQLSecretRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, p.db)

	query := postgresSelectSecret + ` WHERE s.id = $1 LIMIT 1`

	secret, err := scanSecret(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get secret by id")
	}

	return secret, nil
}

// GetByRemovalKey retrieves the secret owning the given removal key.
func (p *PostgreSQLSecretRepository) GetByRemovalKey(
	ctx context.Context,
	removalKey uuid.UUID,
) (*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, p.db)

	query := postgresSelectSecret + ` WHERE rk.id = $1 LIMIT 1`

	secret, err := scanSecret(querier.QueryRowContext(ctx, query, removalKey))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get secret by removal key")
	}

	return secret, nil
}

// ListBySharer returns one page of the sharer's secrets, newest first.
func (p *PostgreSQLSecretRepository) ListBySharer(
	ctx context.Context,
	email string,
	take, skip int,
) ([]*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, p.db)

	query := postgresSelectSecret + `
	  WHERE s.shared_by_email = $1
	  ORDER BY s.created_on_utc DESC
	  LIMIT $2 OFFSET $3`

	rows, err := querier.QueryContext(ctx, query, email, take, skip)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list secrets by sharer")
	}
	defer rows.Close()

	return scanSecrets(rows)
}

// CountBySharer returns the total number of secrets created by the sharer.
func (p *PostgreSQLSecretRepository) CountBySharer(ctx context.Context, email string) (int, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT COUNT(*) FROM secrets WHERE shared_by_email = $1`

	var count int
	if err := querier.QueryRowContext(ctx, query, email).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count secrets by sharer")
	}

	return count, nil
}

// ListExpired returns all secrets whose availability window closed before now.
func (p *PostgreSQLSecretRepository) ListExpired(
	ctx context.Context,
	now time.Time,
) ([]*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, p.db)

	query := postgresSelectSecret + ` WHERE s.available_until_utc < $1`

	rows, err := querier.QueryContext(ctx, query, now)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list expired secrets")
	}
	defer rows.Close()

	return scanSecrets(rows)
}

// DecrementAccessAttempts consumes one access attempt with a single conditional
// statement, so two concurrent reveals cannot both take the last one. Returns
// the remaining count, or ErrNotFound when the secret is gone or exhausted.
func (p *PostgreSQLSecretRepository) DecrementAccessAttempts(
	ctx context.Context,
	id uuid.UUID,
) (int, error) {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE secrets
	          SET access_attempts_left = access_attempts_left - 1
	          WHERE id = $1 AND access_attempts_left > 0
	          RETURNING access_attempts_left`

	var remaining int
	err := querier.QueryRowContext(ctx, query, id).Scan(&remaining)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, apperrors.ErrNotFound
		}
		return 0, apperrors.Wrap(err, "failed to decrement access attempts")
	}

	return remaining, nil
}

// Delete removes a secret; its removal and decryption keys go with it by
// cascade. Deleting an already-gone secret is a no-op.
func (p *PostgreSQLSecretRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM secrets WHERE id = $1`

	if _, err := querier.ExecContext(ctx, query, id); err != nil {
		return apperrors.Wrap(err, "failed to delete secret")
	}

	return nil
}

// NewPostgreSQLSecretRepository creates a new PostgreSQL Secret repository instance.
func NewPostgreSQLSecretRepository(db *sql.DB) *PostgreSQLSecretRepository {
	return &PostgreSQLSecretRepository{db: db}
}
