package users

import (
	"context"

	"github.com/stnkworkshop/auth-service/internal/server/models"
)

// Repository is the credential store: persisted account records with
// identity, password hash, and activation state.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUserID(ctx context.Context, userID int64) (*models.User, error)
	// MaxUserID returns the highest assigned user id, or 0 when no accounts exist.
	MaxUserID(ctx context.Context) (int64, error)
	DeleteByEmail(ctx context.Context, email string) error
	// Activate flips is_activated for the account with the given email.
	Activate(ctx context.Context, email string) error
}
