// Package repository provides persistence implementations for credential
// and goal storage using a PostgreSQL database.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/fitkeeper/fittrack/internal/models"
	"github.com/lib/pq"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// PostgresCredentialRepository implements credential operations using a PostgreSQL database.
type PostgresCredentialRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresCredentialRepository creates a new PostgresCredentialRepository with the
// given database connection. db must be a valid *sql.DB connected to a PostgreSQL instance.
func NewPostgresCredentialRepository(db *sql.DB) *PostgresCredentialRepository {
	return &PostgresCredentialRepository{DB: db}
}

// InsertUser stores a new credential record. The users table's primary key makes
// duplicate detection atomic: a second insert for the same username fails with
// models.ErrDuplicateUsername rather than relying on a read-then-write check.
func (r *PostgresCredentialRepository) InsertUser(ctx context.Context, user models.User) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO users (username, salt, hashed_password) VALUES ($1, $2, $3)`,
		user.Username, user.Salt, user.HashedPassword,
	)
	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return models.ErrDuplicateUsername
		}
		return fmt.Errorf("InsertUser: %w", err)
	}
	return nil
}

// GetUser fetches the credential record for the given username.
// Returns models.ErrUserNotFound when no record matches.
func (r *PostgresCredentialRepository) GetUser(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{Username: username}
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT salt, hashed_password FROM users WHERE username = $1`,
		username,
	).Scan(&user.Salt, &user.HashedPassword)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrUserNotFound
		}
		return nil, fmt.Errorf("GetUser: %w", err)
	}
	return user, nil
}

// UpdateCredentials replaces the salt and hashed password for the matching
// record in a single update. Returns models.ErrUserNotFound when zero rows
// were affected.
func (r *PostgresCredentialRepository) UpdateCredentials(ctx context.Context, username, salt, hashedPassword string) error {
	res, err := r.DB.ExecContext(
		ctx,
		`UPDATE users SET salt = $1, hashed_password = $2 WHERE username = $3`,
		salt, hashedPassword, username,
	)
	if err != nil {
		return fmt.Errorf("UpdateCredentials: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("UpdateCredentials: %w", err)
	}
	if rows == 0 {
		return models.ErrUserNotFound
	}
	return nil
}
