package domain

import "time"

// Audit event types.
const (
	AuditSignUp               = "auth.signup"
	AuditLogin                = "auth.login"
	AuditLoginFailed          = "auth.login_failed"
	AuditLogout               = "auth.logout"
	AuditEmailConfirmed       = "auth.email_confirmed"
	AuditMFASetupStarted      = "auth.mfa_setup_started"
	AuditMFASetupFinished     = "auth.mfa_setup_finished"
	AuditOTPValidated         = "auth.otp_validated"
	AuditMFADisabled          = "user.mfa_disabled"
	AuditAccountLocked        = "user.account_locked"
	AuditAccountUnlocked      = "user.account_unlocked"
	AuditPasswordResetRequest = "user.password_reset_requested"
	AuditPasswordReset        = "auth.password_reset"
	AuditBootstrap            = "system.bootstrap"
)

// Audit statuses.
const (
	AuditSuccess = "success"
	AuditFailure = "failure"
	AuditDenied  = "denied"
)

type AuditEntry struct {
	ID        string
	EventType string
	Status    string
	UserID    string // subject of the event
	ActorID   string // who performed it, when different from UserID
	IPAddress string
	Message   string
	CreatedAt time.Time
}

// AuditPage is one page of the audit log, newest first.
type AuditPage struct {
	Docs       []AuditEntry
	TotalDocs  int
	Page       int
	Limit      int
	TotalPages int
}
