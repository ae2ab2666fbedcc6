package tokens

import (
	"context"

	"github.com/stnkworkshop/auth-service/internal/server/models"
)

// Repository is the token store and rotation ledger: one record per account
// holding the ordered array of currently valid refresh tokens.
type Repository interface {
	// Create inserts a new record whose ledger contains exactly the one token.
	Create(ctx context.Context, userID int64, refreshToken string) (*models.TokenRecord, error)
	// FindByToken returns the record whose ledger contains the exact token
	// string, or common.ErrNotFound.
	FindByToken(ctx context.Context, token string) (*models.TokenRecord, error)
	FindByUserID(ctx context.Context, userID int64) (*models.TokenRecord, error)
	// Rotate replaces oldToken with newToken in place, keeping its position.
	// Returns common.ErrNotFound when no ledger contains oldToken.
	Rotate(ctx context.Context, oldToken, newToken string) error
	// Remove filters every occurrence of token out of its ledger, keeping the
	// record even when the ledger becomes empty. Returns common.ErrNotFound
	// when no ledger contains token.
	Remove(ctx context.Context, token string) error
}
