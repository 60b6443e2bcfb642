package http

import (
	"github.com/aussiebroadwan/adminhub/internal/auth/domain"
	"github.com/aussiebroadwan/adminhub/pkg/authsdk"
)

func toUser(u domain.User) authsdk.User {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}
	return authsdk.User{
		ID:            u.ID,
		UserName:      u.UserName,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Email:         u.Email,
		Roles:         roles,
		AccountLocked: u.AccountLocked,
		EmailVerified: u.EmailVerified,
		MFAEnabled:    u.Enabled,
		MFAEnforced:   u.Enforced,
		MFAVerified:   u.Verified,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func toRoles(in []domain.Role) []authsdk.Role {
	out := make([]authsdk.Role, 0, len(in))
	for _, r := range in {
		out = append(out, authsdk.Role{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			CreatedAt:   r.CreatedAt,
		})
	}
	return out
}

func toAuditLogs(in []domain.AuditEntry) []authsdk.AuditLog {
	out := make([]authsdk.AuditLog, 0, len(in))
	for _, e := range in {
		out = append(out, authsdk.AuditLog{
			ID:        e.ID,
			EventType: e.EventType,
			Status:    e.Status,
			UserID:    e.UserID,
			ActorID:   e.ActorID,
			IPAddress: e.IPAddress,
			Message:   e.Message,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}

func toBootstrapData(req authsdk.BootstrapRequest) domain.BootstrapData {
	data := domain.BootstrapData{
		AdminUserName:  req.AdminUserName,
		AdminFirstName: req.AdminFirstName,
		AdminLastName:  req.AdminLastName,
		AdminEmail:     req.AdminEmail,
		AdminPassword:  req.AdminPassword,
	}
	for _, r := range req.Roles {
		data.Roles = append(data.Roles, domain.RoleDefinition{Name: r.Name, Description: r.Description})
	}
	return data
}
