package repository

import (
	"database/sql"

	apperrors "github.com/secretaryhq/secretary/internal/errors"
	secretsDomain "github.com/secretaryhq/secretary/internal/secrets/domain"
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSecret(row rowScanner) (*secretsDomain.Secret, error) {
	var (
		secret secretsDomain.Secret
		email  sql.NullString
	)
	err := row.Scan(
		&secret.ID,
		&secret.Body,
		&email,
		&secret.AccessAttemptsLeft,
		&secret.SelfRemovalAllowed,
		&secret.AvailableFromUTC,
		&secret.AvailableUntilUTC,
		&secret.CreatedOnUTC,
		&secret.RemovalKey,
		&secret.DecryptionKey,
	)
	if err != nil {
		return nil, err
	}
	secret.SharedByEmail = email.String
	return &secret, nil
}

func scanSecrets(rows *sql.Rows) ([]*secretsDomain.Secret, error) {
	secrets := []*secretsDomain.Secret{}
	for rows.Next() {
		secret, err := scanSecret(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan secret")
		}
		secrets = append(secrets, secret)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate secrets")
	}
	return secrets, nil
}

// nullableEmail stores anonymous creators as NULL instead of an empty string.
func nullableEmail(email string) sql.NullString {
	return sql.NullString{String: email, Valid: email != ""}
}
