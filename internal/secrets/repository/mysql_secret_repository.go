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

const mysqlSelectSecret = "SELECT s.id, s.body, s.shared_by_email, s.access_attempts_left, s.self_removal_allowed," +
	" s.available_from_utc, s.available_until_utc, s.created_on_utc," +
	" rk.id, COALESCE(dk.`key`, '')" +
	" FROM secrets s" +
	" JOIN removal_keys rk ON rk.secret_id = s.id" +
	" LEFT JOIN decryption_keys dk ON dk.secret_id = s.id"

// MySQLSecretRepository implements Secret persistence for MySQL databases.
type MySQLSecretRepository struct {
	db *sql.DB
}

// Create inserts a new secret together with its removal key and, when present,
// its decryption key. Callers run it inside a transaction so the three rows
// appear atomically.
func (m *MySQLSecretRepository) Create(ctx context.Context, secret *secretsDomain.Secret) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO secrets (id, body, shared_by_email, access_attempts_left, self_removal_allowed,
	                               available_from_utc, available_until_utc, created_on_utc)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

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

	query = `INSERT INTO removal_keys (id, secret_id) VALUES (?, ?)`
	if _, err := querier.ExecContext(ctx, query, secret.RemovalKey, secret.ID); err != nil {
		return apperrors.Wrap(err, "failed to create removal key")
	}

	if secret.HasDecryptionKey() {
		query = "INSERT INTO decryption_keys (id, secret_id, `key`) VALUES (?, ?, ?)"
		if _, err := querier.ExecContext(ctx, query, uuid.New(), secret.ID, secret.DecryptionKey); err != nil {
			return apperrors.Wrap(err, "failed to create decryption key")
		}
	}

	return nil
}

// GetByID retrieves a secret with its removal and decryption keys.
func (m *MySQLSecretRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, m.db)

	query := mysqlSelectSecret + ` WHERE s.id = ? LIMIT 1`

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
func (m *MySQLSecretRepository) GetByRemovalKey(
	ctx context.Context,
	removalKey uuid.UUID,
) (*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, m.db)

	query := mysqlSelectSecret + ` WHERE rk.id = ? LIMIT 1`

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
func (m *MySQLSecretRepository) ListBySharer(
	ctx context.Context,
	email string,
	take, skip int,
) ([]*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, m.db)

	query := mysqlSelectSecret + `
	  WHERE s.shared_by_email = ?
	  ORDER BY s.created_on_utc DESC
	  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, email, take, skip)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list secrets by sharer")
	}
	defer rows.Close()

	return scanSecrets(rows)
}

// CountBySharer returns the total number of secrets created by the sharer.
func (m *MySQLSecretRepository) CountBySharer(ctx context.Context, email string) (int, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT COUNT(*) FROM secrets WHERE shared_by_email = ?`

	var count int
	if err := querier.QueryRowContext(ctx, query, email).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count secrets by sharer")
	}

	return count, nil
}

// ListExpired returns all secrets whose availability window closed before now.
func (m *MySQLSecretRepository) ListExpired(
	ctx context.Context,
	now time.Time,
) ([]*secretsDomain.Secret, error) {
	querier := database.GetTx(ctx, m.db)

	query := mysqlSelectSecret + ` WHERE s.available_until_utc < ?`

	rows, err := querier.QueryContext(ctx, query, now)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list expired secrets")
	}
	defer rows.Close()

	return scanSecrets(rows)
}

// DecrementAccessAttempts consumes one access attempt with a single conditional
// statement. MySQL has no RETURNING clause, so the remaining count is read back
// afterwards; callers run both statements inside one transaction.
func (m *MySQLSecretRepository) DecrementAccessAttempts(
	ctx context.Context,
	id uuid.UUID,
) (int, error) {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE secrets
	          SET access_attempts_left = access_attempts_left - 1
	          WHERE id = ? AND access_attempts_left > 0`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to decrement access attempts")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to decrement access attempts")
	}
	if affected == 0 {
		return 0, apperrors.ErrNotFound
	}

	query = `SELECT access_attempts_left FROM secrets WHERE id = ?`
	var remaining int
	if err := querier.QueryRowContext(ctx, query, id).Scan(&remaining); err != nil {
		if err == sql.ErrNoRows {
			return 0, apperrors.ErrNotFound
		}
		return 0, apperrors.Wrap(err, "failed to read remaining access attempts")
	}

	return remaining, nil
}

// Delete removes a secret; its removal and decryption keys go with it by
// cascade. Deleting an already-gone secret is a no-op.
func (m *MySQLSecretRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM secrets WHERE id = ?`

	if _, err := querier.ExecContext(ctx, query, id); err != nil {
		return apperrors.Wrap(err, "failed to delete secret")
	}

	return nil
}

// NewMySQLSecretRepository creates a new MySQL Secret repository instance.
func NewMySQLSecretRepository(db *sql.DB) *MySQLSecretRepository {
	return &MySQLSecretRepository{db: db}
}
