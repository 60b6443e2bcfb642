package authsdk

import (
	"time"

	"github.com/aussiebroadwan/adminhub/pkg/jwtx"
)

// ============================================================================
// Envelope
// ============================================================================

// Envelope is embedded in every response body. Error is true when the call
// failed; Message then says why.
type Envelope struct {
	Error   bool   `json:"error" example:"false"`
	Message string `json:"message,omitempty" example:""`
}

// ============================================================================
// Auth Requests
// ============================================================================

type SignUpRequest struct {
	FirstName string `json:"firstName" validate:"required,max=64" example:"Alice"`
	LastName  string `json:"lastName" validate:"required,max=64" example:"Example"`
	UserName  string `json:"userName" validate:"required,username" example:"alice"`
	Email     string `json:"email" validate:"required,email,max=254" example:"alice@example.com"`
	Password  string `json:"password" validate:"required,min=8,max=72" example:"correct-horse"`
}

type LogInRequest struct {
	UserName string `json:"userName" validate:"required" example:"alice"`
	Password string `json:"password" validate:"required" example:"correct-horse"`
}

// MFASetupRequest starts TOTP enrollment for UserID, which must be the
// subject of the bearer token.
type MFASetupRequest struct {
	UserID string `json:"_id" validate:"required" example:"01J9Z8X7W6V5T4S3R2Q1P0N9M8"`
}

// OTPRequest carries a six digit TOTP code for finishMfaSetup and validateOtp.
type OTPRequest struct {
	UserID string `json:"_id" validate:"required" example:"01J9Z8X7W6V5T4S3R2Q1P0N9M8"`
	Token  string `json:"token" validate:"required,len=6,numeric" example:"123456"`
}

// RefreshTokenRequest is the body of createNewAccessToken and logout.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type ConfirmEmailRequest struct {
	UserID string `json:"_id" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Token  string `json:"token" validate:"required"`
}

type ResetPasswordRequest struct {
	UserID   string `json:"_id" validate:"required"`
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// ============================================================================
// User Administration Requests
// ============================================================================

// DisableMFARequest turns MFA off for UserID. ExecUserID must be the caller.
type DisableMFARequest struct {
	UserID     string `json:"_id" validate:"required"`
	ExecUserID string `json:"execUserId" validate:"required"`
}

type LockAccountRequest struct {
	UserID     string `json:"_id" validate:"required"`
	ExecUserID string `json:"execUserId" validate:"required"`
	Locked     *bool  `json:"locked" validate:"required" example:"true"`
}

type RequestPasswordResetRequest struct {
	UserID     string `json:"_id" validate:"required"`
	ExecUserID string `json:"execUserId" validate:"required"`
}

// ============================================================================
// Responses
// ============================================================================

// User is the public view of an account. Secrets and hashes never leave the
// server.
type User struct {
	ID            string    `json:"_id" example:"01J9Z8X7W6V5T4S3R2Q1P0N9M8"`
	UserName      string    `json:"userName" example:"alice"`
	FirstName     string    `json:"firstName" example:"Alice"`
	LastName      string    `json:"lastName" example:"Example"`
	Email         string    `json:"email" example:"alice@example.com"`
	Roles         []string  `json:"roles" example:"user"`
	AccountLocked bool      `json:"accountLocked"`
	EmailVerified bool      `json:"emailVerified"`
	MFAEnabled    bool      `json:"mfaEnabled"`
	MFAEnforced   bool      `json:"mfaEnforced"`
	MFAVerified   bool      `json:"mfaVerified"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type LogInResponse struct {
	Envelope
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`

	// ExpiresIn is the access token lifetime in seconds.
	ExpiresIn int  `json:"expiresIn" example:"60"`
	User      User `json:"user"`
}

type SignUpResponse struct {
	Envelope
	User User `json:"user"`

	// EmailVerifyToken is only returned by development deployments, which
	// send no mail.
	EmailVerifyToken string `json:"emailVerifyToken,omitempty"`
}

type MFASetupResponse struct {
	Envelope
	Base32 string `json:"base32" example:"JBSWY3DPEHPK3PXP"`
	OTPURL string `json:"otpUrl" example:"otpauth://totp/adminhub:alice?issuer=adminhub&secret=JBSWY3DPEHPK3PXP"`
}

type AccessTokenResponse struct {
	Envelope
	AccessToken string `json:"accessToken"`
	ExpiresIn   int    `json:"expiresIn" example:"60"`
}

type UserResponse struct {
	Envelope
	User User `json:"user"`
}

type PasswordResetResponse struct {
	Envelope
	PwResetToken string `json:"pwResetToken"`
}

type Role struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name" example:"admin"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type RolesResponse struct {
	Envelope
	Roles []Role `json:"roles"`
}

type AuditLog struct {
	ID        string    `json:"_id"`
	EventType string    `json:"eventType" example:"auth.login"`
	Status    string    `json:"status" example:"success"`
	UserID    string    `json:"userId,omitempty"`
	ActorID   string    `json:"actorId,omitempty"`
	IPAddress string    `json:"ipAddress,omitempty"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuditLogsResponse is one page of audit entries, newest first.
type AuditLogsResponse struct {
	Envelope
	Docs       []AuditLog `json:"docs"`
	TotalDocs  int        `json:"totalDocs" example:"42"`
	Page       int        `json:"page" example:"1"`
	Limit      int        `json:"limit" example:"10"`
	TotalPages int        `json:"totalPages" example:"5"`
}

// ============================================================================
// Bootstrap
// ============================================================================

// BootstrapRequest seeds an empty system. Roles defaults to admin and user;
// when given it must contain admin. AdminPassword is generated when empty.
type BootstrapRequest struct {
	AdminUserName  string           `json:"adminUserName" validate:"required,username" example:"root"`
	AdminFirstName string           `json:"adminFirstName" validate:"max=64"`
	AdminLastName  string           `json:"adminLastName" validate:"max=64"`
	AdminEmail     string           `json:"adminEmail" validate:"required,email" example:"root@example.com"`
	AdminPassword  string           `json:"adminPassword,omitempty" validate:"omitempty,min=8,max=72"`
	Roles          []RoleDefinition `json:"roles,omitempty" validate:"omitempty,dive"`
}

type RoleDefinition struct {
	Name        string `json:"name" validate:"required,max=64" example:"admin"`
	Description string `json:"description" validate:"max=256"`
}

type BootstrapResponse struct {
	Envelope
	AdminID       string `json:"adminId"`
	AdminUserName string `json:"adminUserName"`

	// AdminPassword is only set when the server generated it.
	AdminPassword string `json:"adminPassword,omitempty"`
}

// ============================================================================
// Health and JWKS
// ============================================================================

// HealthResponse is returned by /livez and /readyz (readyz adds Checks).
type HealthResponse struct {
	Status  string        `json:"status" example:"ok"`
	Uptime  string        `json:"uptime,omitempty" example:"1h23m45s"`
	Version string        `json:"version,omitempty" example:"1.0.0"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
	Cache    string `json:"cache,omitempty"`
}

// JWKSResponse holds the public keys that verify access tokens.
type JWKSResponse jwtx.JWKS
