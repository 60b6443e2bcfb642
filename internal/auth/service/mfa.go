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
	"github.com/aussiebroadwan/adminhub/pkg/metricsx"
	"github.com/aussiebroadwan/adminhub/pkg/slogx"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	totpPeriod = 30
	totpSkew   = 1
)

type MFAService struct {
	Store  store.Store
	Issuer string // TOTP issuer shown in authenticator apps

	Limiter OTPLimiter // nil disables attempt limiting
	Audit   *AuditService
	Metrics *metricsx.Metrics
	Now     func() time.Time
}

// StartSetup issues a new TOTP secret and stores it as pending. Calling it
// again replaces the pending secret. MFA is not enabled until FinishSetup.
func (s *MFAService) StartSetup(ctx context.Context, userID string) (domain.MFASetup, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return domain.MFASetup{}, err
	}
	if user.MFAState.Enabled {
		return domain.MFASetup{}, ErrMFAAlreadyEnabled
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: user.UserName,
		Period:      totpPeriod,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return domain.MFASetup{}, fmt.Errorf("failed to generate TOTP key: %w", err)
	}

	if err := s.Store.Users().UpdateMFAToken(ctx, user.ID, key.Secret()); err != nil {
		return domain.MFASetup{}, fmt.Errorf("failed to store MFA secret: %w", err)
	}

	s.Audit.Record(ctx, domain.AuditEntry{EventType: domain.AuditMFASetupStarted, UserID: user.ID})
	return domain.MFASetup{Secret: key.Secret(), OTPURL: key.URL()}, nil
}

// FinishSetup enables MFA when code matches the pending secret. The update
// only applies while the secret is unchanged, so a StartSetup racing with
// this call yields ErrInvalidOTP.
func (s *MFAService) FinishSetup(ctx context.Context, userID, code string) error {
	if err := s.checkLimit(ctx, userID); err != nil {
		return err
	}

	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return err
	}
	if user.MFAState.Enabled {
		return ErrMFAAlreadyEnabled
	}
	if user.MFAToken == "" {
		return ErrMFASetupNotStarted
	}

	if !s.validCode(code, user.MFAToken) {
		return s.rejectCode(ctx, user.ID, domain.AuditMFASetupFinished)
	}

	next, err := domain.ResumeSession(user).Next(domain.EventMFASetupFinished)
	if err != nil {
		return err
	}
	if err := s.Store.Users().EnableMFA(ctx, user.ID, user.MFAToken, next.MFA); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slogx.FromContext(ctx).Info("MFA secret changed during setup", slog.String("user_id", user.ID))
			return ErrInvalidOTP
		}
		return fmt.Errorf("failed to enable MFA: %w", err)
	}

	s.acceptCode(ctx, user.ID, domain.AuditMFASetupFinished)
	return nil
}

// ValidateOTP is the second login step: a valid code marks the user as
// MFA verified. The caller then exchanges its refresh token for an access
// token carrying the new state.
func (s *MFAService) ValidateOTP(ctx context.Context, userID, code string) error {
	if err := s.checkLimit(ctx, userID); err != nil {
		return err
	}

	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return err
	}
	if !user.MFAState.Enabled || user.MFAToken == "" {
		return ErrMFANotEnabled
	}

	if !s.validCode(code, user.MFAToken) {
		return s.rejectCode(ctx, user.ID, domain.AuditOTPValidated)
	}

	if _, err := domain.ResumeSession(user).Next(domain.EventOTPValidated); err != nil {
		return err
	}
	if err := s.Store.Users().VerifyMFA(ctx, user.ID, user.MFAToken); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			slogx.FromContext(ctx).Info("MFA changed during validation", slog.String("user_id", user.ID))
			return ErrMFANotEnabled
		}
		return fmt.Errorf("failed to update MFA state: %w", err)
	}

	s.acceptCode(ctx, user.ID, domain.AuditOTPValidated)
	return nil
}

func (s *MFAService) loadUser(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// validCode checks code against secret with one period of skew either way.
func (s *MFAService) validCode(code, secret string) bool {
	ok, err := totp.ValidateCustom(strings.TrimSpace(code), secret, clockNow(s.Now).UTC(), totp.ValidateOpts{
		Period:    totpPeriod,
		Skew:      totpSkew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	return err == nil && ok
}

func (s *MFAService) checkLimit(ctx context.Context, userID string) error {
	if s.Limiter == nil {
		return nil
	}
	err := s.Limiter.Check(ctx, userID)
	if errors.Is(err, ErrTooManyAttempts) {
		s.Metrics.ObserveOTP(metricsx.ResultLimited)
		s.Audit.Record(ctx, domain.AuditEntry{
			EventType: domain.AuditOTPValidated,
			Status:    domain.AuditDenied,
			UserID:    userID,
			Message:   "too many attempts",
		})
	}
	return err
}

func (s *MFAService) rejectCode(ctx context.Context, userID, event string) error {
	if s.Limiter != nil {
		if err := s.Limiter.RecordFailure(ctx, userID); err != nil {
			slogx.FromContext(ctx).Error("failed to record OTP failure",
				slog.String("user_id", userID),
				slog.Any("error", err),
			)
		}
	}
	s.Metrics.ObserveOTP(metricsx.ResultFailure)
	s.Audit.Record(ctx, domain.AuditEntry{
		EventType: event,
		Status:    domain.AuditFailure,
		UserID:    userID,
		Message:   "invalid code",
	})
	return ErrInvalidOTP
}

func (s *MFAService) acceptCode(ctx context.Context, userID, event string) {
	if s.Limiter != nil {
		if err := s.Limiter.Reset(ctx, userID); err != nil {
			slogx.FromContext(ctx).Warn("failed to reset OTP attempts",
				slog.String("user_id", userID),
				slog.Any("error", err),
			)
		}
	}
	s.Metrics.ObserveOTP(metricsx.ResultSuccess)
	s.Audit.Record(ctx, domain.AuditEntry{EventType: event, UserID: userID})
}
