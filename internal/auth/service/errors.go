package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrPasswordResetPending and ErrAccountLocked match ErrInvalidCredentials
	// with errors.Is but carry their own message.
	ErrPasswordResetPending error = &credentialError{msg: "open password reset request"}
	ErrAccountLocked        error = &credentialError{msg: "account locked"}

	ErrInvalidOTP         = errors.New("invalid OTP token")
	ErrMFAAlreadyEnabled  = errors.New("MFA already enabled for this user")
	ErrMFANotEnabled      = errors.New("MFA not enabled for this user")
	ErrMFASetupNotStarted = errors.New("MFA setup not started")
	ErrTooManyAttempts    = errors.New("too many attempts, try again later")

	ErrInvalidToken      = errors.New("invalid or expired token")
	ErrForbidden         = errors.New("forbidden")
	ErrUserNotFound      = errors.New("user not found")
	ErrUserExists        = errors.New("user name or email already in use")
	ErrInvalidEmailToken = errors.New("invalid email confirmation")
	ErrInvalidResetToken = errors.New("invalid password reset token")
)

type credentialError struct {
	msg string
}

func (e *credentialError) Error() string { return e.msg }

func (e *credentialError) Is(target error) bool { return target == ErrInvalidCredentials }
