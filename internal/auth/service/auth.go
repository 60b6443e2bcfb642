package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/aussiebroadwan/adminhub/internal/auth/domain"
	"github.com/aussiebroadwan/adminhub/internal/auth/store"
	"github.com/aussiebroadwan/adminhub/pkg/cryptox"
	"github.com/aussiebroadwan/adminhub/pkg/httpx"
	"github.com/aussiebroadwan/adminhub/pkg/idx"
	"github.com/aussiebroadwan/adminhub/pkg/metricsx"
	"github.com/aussiebroadwan/adminhub/pkg/slogx"
)

const DefaultRole = "user"

type LoginCommand struct {
	UserName string
	Password string
}

type SignUpCommand struct {
	FirstName string
	LastName  string
	UserName  string
	Email     string
	Password  string
}

type AuthService struct {
	Store       store.Store
	Tokens      *TokenService
	Audit       *AuditService
	Metrics     *metricsx.Metrics
	DefaultRole string // role given to self-registered users
}

// Login checks the credentials and starts a new session. Every new login
// clears the MFA verification of the user, so accounts with MFA enabled or
// enforced must pass validateOtp or finishMfaSetup before full access.
func (s *AuthService) Login(ctx context.Context, cmd LoginCommand) (domain.LoginResult, error) {
	l := slogx.FromContext(ctx)

	userName := strings.TrimSpace(cmd.UserName)
	if userName == "" || cmd.Password == "" {
		return domain.LoginResult{}, &httpx.ValidationError{Message: "userName and password are required"}
	}

	user, err := s.Store.Users().GetUserByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Same bcrypt work as a known user.
			_ = verifyPassword(cmd.Password, dummyPasswordHash())
			return domain.LoginResult{}, s.loginFailed(ctx, "", ErrInvalidCredentials)
		}
		return domain.LoginResult{}, err
	}

	switch {
	case user.PwResetToken != "":
		return domain.LoginResult{}, s.loginFailed(ctx, user.ID, ErrPasswordResetPending)
	case user.AccountLocked:
		return domain.LoginResult{}, s.loginFailed(ctx, user.ID, ErrAccountLocked)
	}

	if err := verifyPassword(cmd.Password, user.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			l.Error("stored password hash unusable", slog.String("user_id", user.ID), slog.Any("error", err))
		}
		return domain.LoginResult{}, s.loginFailed(ctx, user.ID, ErrInvalidCredentials)
	}

	next, err := domain.NewSession(user).Next(domain.EventLogin)
	if err != nil {
		return domain.LoginResult{}, err
	}
	user.MFAState = next.MFA

	var pair domain.TokenPair
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().SetMFAVerified(ctx, user.ID, next.MFA.Verified); err != nil {
			return err
		}
		var err error
		pair, err = s.Tokens.issuePair(ctx, tx.RefreshTokens(), user)
		return err
	})
	if err != nil {
		return domain.LoginResult{}, fmt.Errorf("login: %w", err)
	}

	s.Metrics.ObserveLogin(metricsx.ResultSuccess)
	s.Audit.Record(ctx, domain.AuditEntry{EventType: domain.AuditLogin, UserID: user.ID})
	l.Info("user logged in",
		slog.String("user_id", user.ID),
		slog.Bool("full_access", next.FullAccess()),
	)

	return domain.LoginResult{User: user, Tokens: pair}, nil
}

var verifyPassword = cryptox.VerifyPassword

// dummyPasswordHash is compared against for unknown user names.
var dummyPasswordHash = sync.OnceValue(func() string {
	h, err := cryptox.HashPassword("adminhub-unknown-user")
	if err != nil {
		panic(err)
	}
	return h
})

func (s *AuthService) loginFailed(ctx context.Context, userID string, reason error) error {
	result, status := metricsx.ResultFailure, domain.AuditFailure
	if reason != ErrInvalidCredentials {
		result, status = metricsx.ResultDenied, domain.AuditDenied
	}
	s.Metrics.ObserveLogin(result)
	s.Audit.Record(ctx, domain.AuditEntry{
		EventType: domain.AuditLoginFailed,
		Status:    status,
		UserID:    userID,
		Message:   reason.Error(),
	})
	return reason
}

// SignUp registers a user with the default role and a pending email
// confirmation.
func (s *AuthService) SignUp(ctx context.Context, cmd SignUpCommand) (domain.User, error) {
	hash, err := cryptox.HashPassword(cmd.Password)
	if err != nil {
		if errors.Is(err, cryptox.ErrPasswordTooLong) {
			return domain.User{}, &httpx.ValidationError{Message: "password is too long"}
		}
		return domain.User{}, err
	}

	verifyToken, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return domain.User{}, fmt.Errorf("generate email token: %w", err)
	}

	role := s.DefaultRole
	if role == "" {
		role = DefaultRole
	}

	user := domain.User{
		ID:               idx.New().String(),
		UserName:         strings.TrimSpace(cmd.UserName),
		FirstName:        strings.TrimSpace(cmd.FirstName),
		LastName:         strings.TrimSpace(cmd.LastName),
		Email:            strings.TrimSpace(cmd.Email),
		PasswordHash:     hash,
		EmailVerifyToken: verifyToken,
		Roles:            domain.NormalizeRoles([]string{role}),
	}
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUserExists
		}
		return domain.User{}, err
	}

	s.Audit.Record(ctx, domain.AuditEntry{EventType: domain.AuditSignUp, UserID: user.ID})
	return user, nil
}

// ConfirmEmail marks the email verified when both email and token match.
// Confirming an already verified address again succeeds.
func (s *AuthService) ConfirmEmail(ctx context.Context, userID, email, token string) error {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !strings.EqualFold(strings.TrimSpace(email), user.Email) {
		return ErrInvalidEmailToken
	}
	if user.EmailVerified {
		return nil
	}
	if !cryptox.EqualTokens(strings.TrimSpace(token), user.EmailVerifyToken) {
		return ErrInvalidEmailToken
	}

	if err := s.Store.Users().ConfirmEmail(ctx, user.ID); err != nil {
		return err
	}
	s.Audit.Record(ctx, domain.AuditEntry{EventType: domain.AuditEmailConfirmed, UserID: user.ID})
	return nil
}

// ResetPassword completes a reset requested by an admin. All sessions of the
// user end.
func (s *AuthService) ResetPassword(ctx context.Context, userID, token, password string) error {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !cryptox.EqualTokens(strings.TrimSpace(token), user.PwResetToken) {
		s.Audit.Record(ctx, domain.AuditEntry{
			EventType: domain.AuditPasswordReset,
			Status:    domain.AuditFailure,
			UserID:    user.ID,
			Message:   "token mismatch",
		})
		return ErrInvalidResetToken
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		if errors.Is(err, cryptox.ErrPasswordTooLong) {
			return &httpx.ValidationError{Message: "password is too long"}
		}
		return err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdatePassword(ctx, user.ID, hash); err != nil {
			return err
		}
		_, err := tx.RefreshTokens().DeleteUserRefreshTokens(ctx, user.ID)
		return err
	})
	if err != nil {
		return err
	}

	s.Audit.Record(ctx, domain.AuditEntry{EventType: domain.AuditPasswordReset, UserID: user.ID})
	return nil
}
