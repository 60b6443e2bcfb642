package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/adminhub/internal/auth/domain"
	"github.com/stretchr/testify/require"
)

func TestBootstrap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	svc := &BootstrapService{Store: f.store, Token: "s3cret", Audit: f.audit}

	data := domain.BootstrapData{
		AdminUserName:  "root",
		AdminFirstName: "Root",
		AdminLastName:  "Admin",
		AdminEmail:     "root@example.com",
	}

	_, err := svc.Bootstrap(ctx, "wrong", data)
	require.ErrorIs(t, err, ErrBootstrapUnauthorized)

	res, err := svc.Bootstrap(ctx, "s3cret", data)
	require.NoError(t, err)
	require.NotEmpty(t, res.AdminID)
	require.Len(t, res.AdminPassword, 16, "password is generated when omitted")

	roles, err := f.store.Roles().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, roles, len(DefaultBootstrapRoles))

	admin := f.user(t, res.AdminID)
	require.True(t, admin.HasRole(domain.RoleAdmin))
	require.True(t, admin.EmailVerified)

	_, err = f.auth.Login(ctx, LoginCommand{UserName: "root", Password: res.AdminPassword})
	require.NoError(t, err)

	_, err = svc.Bootstrap(ctx, "s3cret", data)
	require.ErrorIs(t, err, ErrBootstrapAlready)
}

func TestBootstrap_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := (&BootstrapService{Store: f.store}).Bootstrap(ctx, "", domain.BootstrapData{})
	require.ErrorIs(t, err, ErrBootstrapDisabled)

	svc := &BootstrapService{Store: f.store, Token: "s3cret"}
	_, err = svc.Bootstrap(ctx, "s3cret", domain.BootstrapData{
		AdminUserName: "root",
		AdminEmail:    "root@example.com",
		AdminPassword: "given-password",
		Roles:         []domain.RoleDefinition{{Name: "user"}},
	})
	require.ErrorIs(t, err, ErrBootstrapMissingAdminRole)

	bootstrapped, err := svc.IsBootstrapped(ctx)
	require.NoError(t, err)
	require.False(t, bootstrapped)
}
