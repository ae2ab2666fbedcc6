// Package users provides a PostgreSQL-backed repository for account records.
package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stnkworkshop/auth-service/internal/common"
	"github.com/stnkworkshop/auth-service/internal/dbx"
	"github.com/stnkworkshop/auth-service/internal/server/models"
)

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `user_id, username, game_id, email, password_hash, activity, role, is_activated, activation_code, created_at, updated_at`

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.UserID, &user.Username, &user.GameID, &user.Email,
		&user.PasswordHash, &user.Activity, &user.Role,
		&user.IsActivated, &user.ActivationCode,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

// Create inserts a new, inactive account row.
func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query := `
		INSERT INTO users (user_id, username, game_id, email, password_hash, activity, role, is_activated, activation_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		user.UserID, user.Username, user.GameID, user.Email,
		user.PasswordHash, user.Activity, user.Role,
		user.IsActivated, user.ActivationCode,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

// FindByEmail returns the account with the given email, or common.ErrNotFound.
func (r *PostgresRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

// FindByUserID returns the account with the given user id, or common.ErrNotFound.
func (r *PostgresRepository) FindByUserID(ctx context.Context, userID int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, userID))
}

// MaxUserID returns the highest assigned user id, or 0 when the table is empty.
func (r *PostgresRepository) MaxUserID(ctx context.Context) (int64, error) {
	query := `SELECT COALESCE(MAX(user_id), 0) FROM users`

	var maxID int64
	if err := r.db.QueryRowContext(ctx, query).Scan(&maxID); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return maxID, nil
}

// DeleteByEmail removes the account with the given email. Deleting a missing
// row is not an error; the caller has already established existence.
func (r *PostgresRepository) DeleteByEmail(ctx context.Context, email string) error {
	query := `DELETE FROM users WHERE email = $1`
	if _, err := r.db.ExecContext(ctx, query, email); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Activate flips is_activated for the account with the given email.
func (r *PostgresRepository) Activate(ctx context.Context, email string) error {
	query := `UPDATE users SET is_activated = TRUE, updated_at = now() WHERE email = $1`

	res, err := r.db.ExecContext(ctx, query, email)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}
