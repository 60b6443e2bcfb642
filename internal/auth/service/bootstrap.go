package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aussiebroadwan/adminhub/internal/auth/domain"
	"github.com/aussiebroadwan/adminhub/internal/auth/store"
	"github.com/aussiebroadwan/adminhub/pkg/cryptox"
	"github.com/aussiebroadwan/adminhub/pkg/idx"
	"github.com/aussiebroadwan/adminhub/pkg/slogx"
)

var (
	ErrBootstrapAlready             = errors.New("system already bootstrapped")
	ErrBootstrapDisabled            = errors.New("bootstrap is disabled")
	ErrBootstrapUnauthorized        = errors.New("unauthorized bootstrap attempt")
	ErrBootstrapMissingAdminRole    = errors.New("bootstrap must define the admin role")
	ErrBootstrapFailedToCreateAdmin = errors.New("failed to create admin user")
)

// DefaultBootstrapRoles are created when the bootstrap payload names none.
var DefaultBootstrapRoles = []domain.RoleDefinition{
	{Name: domain.RoleAdmin, Description: "Manage users, roles and audit logs"},
	{Name: DefaultRole, Description: "Regular account"},
}

type BootstrapService struct {
	Store store.Store
	Token string // BOOTSTRAP_TOKEN; empty disables bootstrap
	Audit *AuditService
}

func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	return !empty, nil
}

// Bootstrap creates the roles and the first admin user in one transaction.
// It only works while the store holds no users.
func (s *BootstrapService) Bootstrap(ctx context.Context, token string, req domain.BootstrapData) (domain.BootstrapResult, error) {
	l := slogx.FromContext(ctx)

	if s.Token == "" {
		return domain.BootstrapResult{}, ErrBootstrapDisabled
	}
	if !cryptox.EqualTokens(token, s.Token) {
		l.Warn("unauthorized bootstrap attempt")
		return domain.BootstrapResult{}, ErrBootstrapUnauthorized
	}

	bootstrapped, err := s.IsBootstrapped(ctx)
	if err != nil {
		return domain.BootstrapResult{}, err
	}
	if bootstrapped {
		l.Warn("attempted bootstrap on already-bootstrapped system")
		return domain.BootstrapResult{}, ErrBootstrapAlready
	}

	roles := req.Roles
	if len(roles) == 0 {
		roles = DefaultBootstrapRoles
	}
	hasAdmin := false
	for _, r := range roles {
		if strings.EqualFold(strings.TrimSpace(r.Name), domain.RoleAdmin) {
			hasAdmin = true
		}
	}
	if !hasAdmin {
		return domain.BootstrapResult{}, ErrBootstrapMissingAdminRole
	}

	result := domain.BootstrapResult{AdminID: idx.New().String(), AdminUserName: req.AdminUserName}
	password := req.AdminPassword
	if password == "" {
		if password, err = cryptox.GeneratePassword(); err != nil {
			return domain.BootstrapResult{}, err
		}
		result.AdminPassword = password
	}

	passHash, err := cryptox.HashPassword(password)
	if err != nil {
		l.Error("failed to hash admin password", slog.Any("error", err))
		return domain.BootstrapResult{}, ErrBootstrapFailedToCreateAdmin
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		for _, def := range roles {
			err := tx.Roles().CreateRole(ctx, domain.Role{
				ID:          idx.New().String(),
				Name:        strings.ToLower(strings.TrimSpace(def.Name)),
				Description: def.Description,
			})
			if err != nil {
				l.Error("failed to create role", slog.String("role_name", def.Name), slog.Any("error", err))
				return fmt.Errorf("create role %q: %w", def.Name, err)
			}
		}

		err := tx.Users().CreateUser(ctx, domain.User{
			ID:            result.AdminID,
			UserName:      req.AdminUserName,
			FirstName:     req.AdminFirstName,
			LastName:      req.AdminLastName,
			Email:         req.AdminEmail,
			PasswordHash:  passHash,
			EmailVerified: true,
			Roles:         []string{domain.RoleAdmin},
		})
		if err != nil {
			l.Error("failed to create admin user",
				slog.String("admin_user_id", result.AdminID),
				slog.Any("error", err),
			)
			return ErrBootstrapFailedToCreateAdmin
		}
		return nil
	})
	if err != nil {
		return domain.BootstrapResult{}, err
	}

	s.Audit.Record(ctx, domain.AuditEntry{EventType: domain.AuditBootstrap, UserID: result.AdminID})
	l.Info("successfully bootstrapped system", slog.String("admin_user_id", result.AdminID))
	return result, nil
}
