package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/adminhub/internal/auth/domain"
	"github.com/aussiebroadwan/adminhub/internal/auth/store"
	"github.com/aussiebroadwan/adminhub/pkg/cryptox"
	"github.com/aussiebroadwan/adminhub/pkg/idx"
	"github.com/aussiebroadwan/adminhub/pkg/jwtx"
	"github.com/aussiebroadwan/adminhub/pkg/metricsx"
	"github.com/aussiebroadwan/adminhub/pkg/slogx"
)

type TokenService struct {
	KeyManager *jwtx.KeyManager
	Store      store.Store
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	Metrics *metricsx.Metrics
	Audit   *AuditService
	Now     func() time.Time
}

// AccessTokenTTL is the lifetime of issued access tokens.
func (s *TokenService) AccessTokenTTL() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return jwtx.DefaultAccessTokenTTL
}

func (s *TokenService) refreshTTL() time.Duration {
	if s.RefreshTTL > 0 {
		return s.RefreshTTL
	}
	return jwtx.DefaultRefreshTokenTTL
}

// signAccess mints an access token carrying the user's roles and current
// MFA state.
func (s *TokenService) signAccess(u domain.User, now time.Time) (string, error) {
	claims := jwtx.NewAccessClaims(jwtx.Subject{
		UserID:      u.ID,
		UserName:    u.UserName,
		Roles:       u.Roles,
		MFAEnabled:  u.MFAState.Enabled,
		MFAEnforced: u.MFAState.Enforced,
		MFAVerified: u.MFAState.Verified,
	}, s.Issuer, s.AccessTokenTTL(), now)

	token, err := s.KeyManager.Sign(claims)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	s.Metrics.ObserveTokenIssued(metricsx.TokenAccess)
	return token, nil
}

// issuePair mints an access token and stores a fresh refresh token through
// repo, which may be bound to a transaction.
func (s *TokenService) issuePair(ctx context.Context, repo store.RefreshTokens, u domain.User) (domain.TokenPair, error) {
	now := clockNow(s.Now)

	access, err := s.signAccess(u, now)
	if err != nil {
		return domain.TokenPair{}, err
	}

	opaque, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("generate refresh token: %w", err)
	}

	err = repo.CreateRefreshToken(ctx, domain.RefreshToken{
		ID:        idx.New().String(),
		UserID:    u.ID,
		TokenHash: cryptox.FingerprintToken(opaque),
		ExpiresAt: now.Add(s.refreshTTL()),
	})
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("store refresh token: %w", err)
	}
	s.Metrics.ObserveTokenIssued(metricsx.TokenRefresh)

	return domain.TokenPair{
		AccessToken:  access,
		RefreshToken: opaque,
		ExpiresIn:    s.AccessTokenTTL(),
	}, nil
}

// CreateNewAccessToken exchanges a refresh token for a new access token
// built from the user's current roles and MFA state. The refresh token is
// not rotated.
func (s *TokenService) CreateNewAccessToken(ctx context.Context, refreshToken string) (string, error) {
	l := slogx.FromContext(ctx)

	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return "", ErrInvalidToken
	}

	rt, err := s.Store.RefreshTokens().GetRefreshTokenByHash(ctx, cryptox.FingerprintToken(refreshToken))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidToken
		}
		return "", err
	}

	now := clockNow(s.Now)
	if rt.Expired(now) {
		l.Info("refresh token expired", slog.String("user_id", rt.UserID))
		return "", ErrInvalidToken
	}

	user, err := s.Store.Users().GetUserByID(ctx, rt.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidToken
		}
		return "", err
	}
	if user.LoginBlocked() {
		l.Info("refresh denied for blocked account", slog.String("user_id", user.ID))
		return "", ErrInvalidToken
	}

	return s.signAccess(user, now)
}

// Logout deletes the refresh token and resets the user's MFA verification.
// Unknown tokens succeed.
func (s *TokenService) Logout(ctx context.Context, refreshToken string) error {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil
	}

	var userID string
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		hash := cryptox.FingerprintToken(refreshToken)
		rt, err := tx.RefreshTokens().GetRefreshTokenByHash(ctx, hash)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil
			}
			return err
		}
		if err := tx.RefreshTokens().DeleteRefreshToken(ctx, hash); err != nil {
			return err
		}

		user, err := tx.Users().GetUserByID(ctx, rt.UserID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil
			}
			return err
		}

		next, err := domain.ResumeSession(user).Next(domain.EventLogout)
		if err != nil {
			return err
		}
		userID = user.ID
		return tx.Users().SetMFAVerified(ctx, user.ID, next.MFA.Verified)
	})
	if err != nil {
		return err
	}

	if userID != "" {
		s.Audit.Record(ctx, domain.AuditEntry{EventType: domain.AuditLogout, UserID: userID})
	}
	return nil
}
