// Package services implements the application logic between the HTTP
// layer and the repositories.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dkaledin/teamtrack/internal/common"
	"github.com/dkaledin/teamtrack/internal/dbx"
	"github.com/dkaledin/teamtrack/internal/server/auth"
	"github.com/dkaledin/teamtrack/internal/server/config"
	"github.com/dkaledin/teamtrack/internal/server/models"
	"github.com/dkaledin/teamtrack/internal/server/repositories/refreshtokens"
	"github.com/dkaledin/teamtrack/internal/server/shared/db"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// IdentityService handles registration, login and the refresh token
// lifecycle.
type IdentityService struct {
	manager                      db.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

func NewIdentityService(m db.RepositoryManager, cfg *config.Config) *IdentityService {
	return &IdentityService{
		manager:                      m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

func (s *IdentityService) Register(ctx context.Context, email, password string) (*models.Principal, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	principal := &models.Principal{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
	}

	principal, err = s.manager.Principals().Create(ctx, principal)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating principal: %w", err)
	}

	return principal, nil
}

func (s *IdentityService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	principal, err := s.manager.Principals().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword(principal.PasswordHash, []byte(password)); err != nil {
		return nil, common.ErrorUnauthorized
	}

	return s.generateTokenPair(ctx, s.manager.RefreshTokens(), principal)
}

// Refresh rotates a refresh token: the presented token is consumed and a
// fresh pair is issued. An expired token maps to
// common.ErrRefreshTokenExpired so the client knows to log in again.
//
// On the SQL backend the consume and the insert of the replacement run on
// repositories bound to one transaction, so a failure after the consume
// rolls the token back instead of leaving the caller with nothing.
func (s *IdentityService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	token, err := s.manager.RefreshTokens().Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("error searching refresh token: %w", err)
	}

	if token.Expires.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	principal, err := s.manager.Principals().GetByID(ctx, token.PrincipalID)
	if err != nil {
		return nil, fmt.Errorf("error loading principal: %w", err)
	}

	var tokenPair *TokenPair

	rotate := func(ctx context.Context, repo refreshtokens.Repository) error {
		// Consume reports zero affected rows, so a token redeemed twice
		// concurrently fails the second rotation.
		if err := repo.Consume(ctx, refreshToken); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrInvalidToken
			}
			return fmt.Errorf("error consuming refresh token: %w", err)
		}
		tokenPair, err = s.generateTokenPair(ctx, repo, principal)
		return err
	}

	if conn := s.manager.Conn(); conn != nil {
		err = dbx.WithTx(ctx, conn, nil, func(ctx context.Context, tx dbx.DBTX) error {
			return rotate(ctx, refreshtokens.NewPostgresRepository(tx))
		})
	} else {
		err = rotate(ctx, s.manager.RefreshTokens())
	}
	if err != nil {
		return nil, err
	}

	return tokenPair, nil
}

// Logout discards the refresh token. Unknown tokens succeed, logging out
// twice is not an error.
func (s *IdentityService) Logout(ctx context.Context, refreshToken string) error {
	return s.manager.RefreshTokens().Delete(ctx, refreshToken)
}

func (s *IdentityService) generateTokenPair(ctx context.Context, repo refreshtokens.Repository, principal *models.Principal) (*TokenPair, error) {
	accessToken, err := auth.GenerateToken(principal.ID, principal.Email, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	refreshToken, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}

	err = repo.Create(ctx, principal.ID, refreshToken, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
