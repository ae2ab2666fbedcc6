// Package tokens provides a PostgreSQL-backed repository for the per-account
// refresh-token ledger. The ledger is stored as a JSONB array so membership
// lookups and whole-array rewrites mirror its document heritage.
package tokens

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

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

// Create inserts a new token record whose ledger contains exactly refreshToken.
func (r *PostgresRepository) Create(ctx context.Context, userID int64, refreshToken string) (*models.TokenRecord, error) {
	record := &models.TokenRecord{
		ID:            uuid.NewString(),
		UserID:        userID,
		RefreshTokens: []string{refreshToken},
	}

	ledger, err := json.Marshal(record.RefreshTokens)
	if err != nil {
		return nil, fmt.Errorf("marshaling ledger: %w", err)
	}

	query := `
		INSERT INTO token_records (id, user_id, refresh_tokens)
		VALUES ($1, $2, $3)
	`
	if _, err := r.db.ExecContext(ctx, query, record.ID, record.UserID, ledger); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return record, nil
}

func scanRecord(row *sql.Row) (*models.TokenRecord, error) {
	record := &models.TokenRecord{}
	var ledger []byte

	if err := row.Scan(&record.ID, &record.UserID, &ledger); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if err := json.Unmarshal(ledger, &record.RefreshTokens); err != nil {
		return nil, fmt.Errorf("unmarshaling ledger: %w", err)
	}
	return record, nil
}

// FindByToken returns the record whose ledger contains the exact token string.
func (r *PostgresRepository) FindByToken(ctx context.Context, token string) (*models.TokenRecord, error) {
	query := `
		SELECT id, user_id, refresh_tokens
		FROM token_records
		WHERE refresh_tokens @> to_jsonb($1::text)
	`
	return scanRecord(r.db.QueryRowContext(ctx, query, token))
}

// FindByUserID returns the record owned by the given account.
func (r *PostgresRepository) FindByUserID(ctx context.Context, userID int64) (*models.TokenRecord, error) {
	query := `
		SELECT id, user_id, refresh_tokens
		FROM token_records
		WHERE user_id = $1
	`
	return scanRecord(r.db.QueryRowContext(ctx, query, userID))
}

func (r *PostgresRepository) saveLedger(ctx context.Context, id string, refreshTokens []string) error {
	ledger, err := json.Marshal(refreshTokens)
	if err != nil {
		return fmt.Errorf("marshaling ledger: %w", err)
	}

	query := `UPDATE token_records SET refresh_tokens = $1 WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, ledger, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// Rotate replaces the first occurrence of oldToken with newToken, keeping its
// position, and rewrites the ledger. The old value is invalid immediately.
func (r *PostgresRepository) Rotate(ctx context.Context, oldToken, newToken string) error {
	record, err := r.FindByToken(ctx, oldToken)
	if err != nil {
		return err
	}

	for i, t := range record.RefreshTokens {
		if t == oldToken {
			record.RefreshTokens[i] = newToken
			break
		}
	}

	return r.saveLedger(ctx, record.ID, record.RefreshTokens)
}

// Remove filters every occurrence of token out of its ledger. The record is
// kept even when the ledger becomes empty.
func (r *PostgresRepository) Remove(ctx context.Context, token string) error {
	record, err := r.FindByToken(ctx, token)
	if err != nil {
		return err
	}

	kept := make([]string, 0, len(record.RefreshTokens))
	for _, t := range record.RefreshTokens {
		if t != token {
			kept = append(kept, t)
		}
	}

	return r.saveLedger(ctx, record.ID, kept)
}
