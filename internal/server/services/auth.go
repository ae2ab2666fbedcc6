// Package services contains the server-side business logic. AuthService
// implements registration with email-code activation, login, refresh-token
// rotation, and logout against the credential store and the token ledger.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/stnkworkshop/auth-service/internal/common"
	"github.com/stnkworkshop/auth-service/internal/dbx"
	"github.com/stnkworkshop/auth-service/internal/randx"
	"github.com/stnkworkshop/auth-service/internal/server/auth"
	"github.com/stnkworkshop/auth-service/internal/server/config"
	"github.com/stnkworkshop/auth-service/internal/server/mail"
	"github.com/stnkworkshop/auth-service/internal/server/models"
	"github.com/stnkworkshop/auth-service/internal/server/repositories/repomanager"
)

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// RegisterParams carries the signup payload into Register.
type RegisterParams struct {
	Username string
	GameID   int64
	Email    string
	Password string
	Activity string
}

// baseUserID seeds the sequential account id when no accounts exist yet.
const baseUserID int64 = 10000000

// Login failures are reported with one message whether the email is unknown
// or the password is wrong, so callers cannot probe for registered emails.
const incorrectCredentials = "incorrect email or password"

// AuthService provides the authentication operations:
//   - Register: create a pending account and mail its activation code
//   - VerifyCode: activate the account and issue the first token pair
//   - Login: verify credentials and rotate the current refresh token
//   - Refresh: exchange a valid refresh token for a fresh pair
//   - Logout: revoke a refresh token
type AuthService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	mailer                       mail.Mailer
	accessSecret                 []byte
	refreshSecret                []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	passwordHashCost             int
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, mailer mail.Mailer, cfg *config.Config) *AuthService {
	return &AuthService{
		db:                           db,
		repomanager:                  m,
		mailer:                       mailer,
		accessSecret:                 []byte(cfg.JWTAccessSecret),
		refreshSecret:                []byte(cfg.JWTRefreshSecret),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		passwordHashCost:             cfg.PasswordHashCost,
	}
}

// Register creates a new inactive account and mails its activation code.
// A pending account with the same email is replaced wholesale; an activated
// one makes the signup fail. A failed mail dispatch fails the whole request.
func (s *AuthService) Register(ctx context.Context, params RegisterParams) error {
	repo := s.repomanager.Users(s.db)

	candidate, err := repo.FindByEmail(ctx, params.Email)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("error searching account: %w", err)
	}
	if candidate != nil {
		if candidate.IsActivated {
			return common.NewBadRequest("a user with the same email already exists")
		}
		if err := repo.DeleteByEmail(ctx, params.Email); err != nil {
			return fmt.Errorf("error deleting pending account: %w", err)
		}
	}

	// Read-then-write id assignment; concurrent signups can collide.
	maxID, err := repo.MaxUserID(ctx)
	if err != nil {
		return fmt.Errorf("error reading last account id: %w", err)
	}
	userID := baseUserID
	if maxID != 0 {
		userID = maxID + 1
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), s.passwordHashCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	code, err := randx.ActivationCode()
	if err != nil {
		return fmt.Errorf("error generating activation code: %w", err)
	}

	user := &models.User{
		UserID:         userID,
		Username:       params.Username,
		GameID:         params.GameID,
		Email:          params.Email,
		PasswordHash:   string(hash),
		Activity:       params.Activity,
		Role:           models.DefaultRole,
		IsActivated:    false,
		ActivationCode: code,
	}
	if _, err := repo.Create(ctx, user); err != nil {
		return fmt.Errorf("error creating account: %w", err)
	}

	if err := s.mailer.SendActivationCode(ctx, params.Email, code, params.Username); err != nil {
		return fmt.Errorf("error sending activation code: %w", err)
	}

	return nil
}

// VerifyCode activates a pending account when the submitted code matches
// exactly, then issues the first token pair and opens the account's ledger
// with the refresh token.
func (s *AuthService) VerifyCode(ctx context.Context, email string, code int) (*TokenPair, error) {
	repo := s.repomanager.Users(s.db)

	candidate, err := repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewNotFound("incorrect email")
		}
		return nil, fmt.Errorf("error searching account: %w", err)
	}
	if candidate.IsActivated {
		return nil, common.NewBadRequest("already activated")
	}
	if code != candidate.ActivationCode {
		return nil, common.NewBadRequest("incorrect activation code")
	}

	if err := repo.Activate(ctx, email); err != nil {
		return nil, fmt.Errorf("error activating account: %w", err)
	}

	pair, err := s.generateTokenPair(candidate)
	if err != nil {
		return nil, err
	}

	if _, err := s.repomanager.Tokens(s.db).Create(ctx, candidate.UserID, pair.RefreshToken); err != nil {
		return nil, fmt.Errorf("error saving refresh token: %w", err)
	}

	return pair, nil
}

// Login verifies the credentials and rotates the account's most recently
// issued refresh token to a fresh pair. Unknown email and wrong password
// fail with the same message.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	repo := s.repomanager.Users(s.db)

	candidate, err := repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewBadRequest(incorrectCredentials)
		}
		return nil, fmt.Errorf("error searching account: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(candidate.PasswordHash), []byte(password)) != nil {
		return nil, common.NewBadRequest(incorrectCredentials)
	}

	record, err := s.repomanager.Tokens(s.db).FindByUserID(ctx, candidate.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewUnauthorized()
		}
		return nil, fmt.Errorf("error searching token record: %w", err)
	}
	if len(record.RefreshTokens) == 0 {
		return nil, common.NewUnauthorized()
	}
	current := record.RefreshTokens[len(record.RefreshTokens)-1]

	pair, err := s.generateTokenPair(candidate)
	if err != nil {
		return nil, err
	}
	if err := s.rotate(ctx, current, pair.RefreshToken); err != nil {
		return nil, err
	}

	return pair, nil
}

// Refresh exchanges a valid, still-ledgered refresh token for a fresh pair.
// The checks run in order: presence, signature and expiry, ledger membership.
// Any failure is terminal and reported as Unauthorized.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, common.NewUnauthorized()
	}

	claims, err := auth.ParseToken(refreshToken, s.refreshSecret)
	if err != nil {
		return nil, common.NewUnauthorized()
	}

	if _, err := s.repomanager.Tokens(s.db).FindByToken(ctx, refreshToken); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewUnauthorized()
		}
		return nil, fmt.Errorf("error searching token record: %w", err)
	}

	candidate, err := s.repomanager.Users(s.db).FindByUserID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewUnauthorized()
		}
		return nil, fmt.Errorf("error searching account: %w", err)
	}

	pair, err := s.generateTokenPair(candidate)
	if err != nil {
		return nil, err
	}
	if err := s.rotate(ctx, refreshToken, pair.RefreshToken); err != nil {
		return nil, err
	}

	return pair, nil
}

// Logout removes the refresh token from its ledger. A token present in no
// ledger fails with Unauthorized; the ledger record itself is kept.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return common.NewUnauthorized()
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Tokens(tx).Remove(ctx, refreshToken)
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NewUnauthorized()
		}
		return fmt.Errorf("error removing refresh token: %w", err)
	}
	return nil
}

// rotate swaps oldToken for newToken inside a transaction so concurrent
// ledger mutations for the same record are serialized.
func (s *AuthService) rotate(ctx context.Context, oldToken, newToken string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repomanager.Tokens(tx).Rotate(ctx, oldToken, newToken)
	})
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NewUnauthorized()
		}
		return fmt.Errorf("error rotating refresh token: %w", err)
	}
	return nil
}

func (s *AuthService) generateTokenPair(user *models.User) (*TokenPair, error) {
	access, err := auth.GenerateToken(user.UserID, user.Email, user.ActivationCode, s.accessSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("error generating access token: %w", err)
	}

	refresh, err := auth.GenerateToken(user.UserID, user.Email, user.ActivationCode, s.refreshSecret, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("error generating refresh token: %w", err)
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
