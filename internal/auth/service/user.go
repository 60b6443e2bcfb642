package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/adminhub/internal/auth/domain"
	"github.com/aussiebroadwan/adminhub/internal/auth/store"
	"github.com/aussiebroadwan/adminhub/pkg/cryptox"
	"github.com/aussiebroadwan/adminhub/pkg/slogx"
)

type UserService struct {
	Store store.Store
	Audit *AuditService
}

// GetUser fetches a user by id.
func (s *UserService) GetUser(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}

// DisableMFA turns MFA off for targetID. Users may disable their own MFA;
// admins may disable anyone's. Enforcement is left as is.
func (s *UserService) DisableMFA(ctx context.Context, targetID, execUserID string) error {
	if err := s.authorize(ctx, execUserID, targetID, true); err != nil {
		s.denied(ctx, domain.AuditMFADisabled, targetID, execUserID)
		return err
	}

	target, err := s.GetUser(ctx, targetID)
	if err != nil {
		return err
	}
	if !target.MFAState.Enabled && target.MFAToken == "" {
		return ErrMFANotEnabled
	}

	if _, err := domain.ResumeSession(target).Next(domain.EventMFADisabled); err != nil {
		return err
	}
	if err := s.Store.Users().DisableMFA(ctx, target.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to disable MFA: %w", err)
	}

	s.Audit.Record(ctx, domain.AuditEntry{
		EventType: domain.AuditMFADisabled,
		UserID:    target.ID,
		ActorID:   execUserID,
	})
	return nil
}

// SetAccountLocked locks or unlocks targetID. Admin only. Locking ends all
// sessions of the target.
func (s *UserService) SetAccountLocked(ctx context.Context, targetID, execUserID string, locked bool) error {
	event := domain.AuditAccountUnlocked
	if locked {
		event = domain.AuditAccountLocked
	}

	if err := s.authorize(ctx, execUserID, targetID, false); err != nil {
		s.denied(ctx, event, targetID, execUserID)
		return err
	}
	if locked && targetID == execUserID {
		s.denied(ctx, event, targetID, execUserID)
		return fmt.Errorf("%w: cannot lock your own account", ErrForbidden)
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().SetAccountLocked(ctx, targetID, locked); err != nil {
			return err
		}
		if !locked {
			return nil
		}
		_, err := tx.RefreshTokens().DeleteUserRefreshTokens(ctx, targetID)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	s.Audit.Record(ctx, domain.AuditEntry{EventType: event, UserID: targetID, ActorID: execUserID})
	return nil
}

// RequestPasswordReset sets a reset token on targetID and ends its sessions.
// Until the reset completes the account cannot log in. Admin only; the token
// is returned so the admin can hand it over.
func (s *UserService) RequestPasswordReset(ctx context.Context, targetID, execUserID string) (string, error) {
	if err := s.authorize(ctx, execUserID, targetID, false); err != nil {
		s.denied(ctx, domain.AuditPasswordResetRequest, targetID, execUserID)
		return "", err
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return "", fmt.Errorf("generate reset token: %w", err)
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().SetPwResetToken(ctx, targetID, token); err != nil {
			return err
		}
		_, err := tx.RefreshTokens().DeleteUserRefreshTokens(ctx, targetID)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	s.Audit.Record(ctx, domain.AuditEntry{
		EventType: domain.AuditPasswordResetRequest,
		UserID:    targetID,
		ActorID:   execUserID,
	})
	return token, nil
}

// authorize allows admins, and the target itself when allowSelf is set.
// Roles are read from the store, not from the caller's token.
func (s *UserService) authorize(ctx context.Context, execUserID, targetID string, allowSelf bool) error {
	if execUserID == "" {
		return ErrForbidden
	}
	if allowSelf && execUserID == targetID {
		return nil
	}

	exec, err := s.Store.Users().GetUserByID(ctx, execUserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrForbidden
		}
		return err
	}
	if exec.AccountLocked || !exec.HasRole(domain.RoleAdmin) {
		return ErrForbidden
	}
	return nil
}

func (s *UserService) denied(ctx context.Context, event, targetID, execUserID string) {
	slogx.FromContext(ctx).Warn("account operation denied",
		slog.String("event", event),
		slog.String("target_id", targetID),
		slog.String("exec_user_id", execUserID),
	)
	s.Audit.Record(ctx, domain.AuditEntry{
		EventType: event,
		Status:    domain.AuditDenied,
		UserID:    targetID,
		ActorID:   execUserID,
	})
}
