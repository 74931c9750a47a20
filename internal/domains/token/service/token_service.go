package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ecommerce-backend/internal/domains/token"
	"ecommerce-backend/internal/domains/user"
	"ecommerce-backend/internal/infrastructure/metrics"
	"ecommerce-backend/internal/shared/apperror"
	"ecommerce-backend/pkg/jwt"
	"ecommerce-backend/pkg/logger"
)

type tokenService struct {
	repo    token.Repository
	users   user.Repository
	jwt     *jwt.Manager
	metrics *metrics.Metrics
}

func NewTokenService(repo token.Repository, users user.Repository, manager *jwt.Manager, m *metrics.Metrics) token.Service {
	return &tokenService{
		repo:    repo,
		users:   users,
		jwt:     manager,
		metrics: m,
	}
}

// IssueLoginCredentials - tier theo role: admin → System, còn lại → Bearer
func (s *tokenService) IssueLoginCredentials(u *user.User) (*token.Credentials, error) {
	pair, err := s.jwt.GeneratePair(u.ID.String(), u.Role.String())
	if err != nil {
		return nil, fmt.Errorf("issue credentials: %w", err)
	}

	return &token.Credentials{
		Scheme:       pair.Scheme,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Decode: split header → verify (tier, type) → revoked? → load user → iat vs change_credentials_time
func (s *tokenService) Decode(ctx context.Context, authorization string, typ jwt.TokenType) (*user.User, *jwt.Claims, error) {
	if strings.TrimSpace(authorization) == "" {
		return nil, nil, token.ErrMissingAuthorization
	}

	// STEP 1: VERIFY SIGNATURE + TYPE
	claims, err := s.jwt.VerifyHeader(authorization, typ)
	if err != nil {
		return nil, nil, token.ErrInvalidToken.Wrap(err)
	}

	// STEP 2: REVOCATION
	if _, err := uuid.Parse(claims.ID); err != nil {
		return nil, nil, token.ErrInvalidToken.Wrap(err)
	}
	revoked, err := s.repo.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, nil, unauthorized(err)
	}
	if revoked {
		return nil, nil, token.ErrRevokedToken
	}

	// STEP 3: LOAD USER
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, nil, token.ErrInvalidToken.Wrap(err)
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, nil, token.ErrUnregisteredAccount
		}
		return nil, nil, unauthorized(err)
	}

	// STEP 4: CREDENTIALS CHANGED AFTER ISSUE
	if claims.IssuedAt == nil || u.IssuedBeforeCredentialChange(claims.IssuedAt.Time) {
		return nil, nil, token.ErrRevokedToken
	}

	return u, claims, nil
}

// Revoke - expires_at = iat + refresh lifetime để phủ cả refresh token cùng jti
func (s *tokenService) Revoke(ctx context.Context, claims *jwt.Claims) error {
	jti, err := uuid.Parse(claims.ID)
	if err != nil {
		return token.ErrInvalidToken.Wrap(err)
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return token.ErrInvalidToken.Wrap(err)
	}

	issuedAt := time.Now()
	if claims.IssuedAt != nil {
		issuedAt = claims.IssuedAt.Time
	}

	err = s.repo.Revoke(ctx, token.RevokedToken{
		JTI:       jti,
		ExpiresAt: issuedAt.Add(s.jwt.RefreshExpiry()),
		CreatedBy: userID,
	})
	if err != nil {
		return err
	}

	s.metrics.RecordRevocation()
	return nil
}

func (s *tokenService) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	deleted, err := s.repo.DeleteExpired(ctx, now)
	if err != nil {
		return 0, err
	}

	logger.Info("Revoked tokens swept", map[string]interface{}{"deleted": deleted})
	return deleted, nil
}

// unauthorized giữ nguyên timeout, các lỗi hạ tầng khác vẫn trả 401
func unauthorized(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	logger.Error("Token decode failed", err)
	return apperror.Unauthorized("Fail to authenticate request").Wrap(err)
}
