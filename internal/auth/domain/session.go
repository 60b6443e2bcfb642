package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned by Session.Next for events that are not
// allowed in the current state.
var ErrInvalidTransition = errors.New("domain: invalid session transition")

// SessionState is where a login stands with respect to the second factor.
type SessionState int

const (
	StateAnonymous SessionState = iota
	StateAuthenticated
	StateFullAccess
)

func (s SessionState) String() string {
	switch s {
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	case StateFullAccess:
		return "full_access"
	default:
		return fmt.Sprintf("SessionState(%d)", int(s))
	}
}

type Event int

const (
	EventLogin Event = iota
	EventOTPValidated
	EventMFASetupFinished
	EventMFADisabled
	EventLogout
)

func (e Event) String() string {
	switch e {
	case EventLogin:
		return "login"
	case EventOTPValidated:
		return "otp_validated"
	case EventMFASetupFinished:
		return "mfa_setup_finished"
	case EventMFADisabled:
		return "mfa_disabled"
	case EventLogout:
		return "logout"
	default:
		return fmt.Sprintf("Event(%d)", int(e))
	}
}

// Session pairs a state with the MFA flags it was derived from. Every change
// to MFAState.Verified goes through Next; the caller persists MFA afterwards.
type Session struct {
	State SessionState
	MFA   MFAState
}

// NewSession is the session of a user who has not logged in.
func NewSession(u User) Session {
	return Session{State: StateAnonymous, MFA: u.MFAState}
}

// ResumeSession is the session of a user presenting a valid access token.
func ResumeSession(u User) Session {
	return Session{State: StateAuthenticated, MFA: u.MFAState}.settle()
}

// FullAccess reports whether the session may use the whole API.
func (s Session) FullAccess() bool {
	return s.State == StateFullAccess
}

// Next applies e and returns the resulting session.
func (s Session) Next(e Event) (Session, error) {
	switch e {
	case EventLogin:
		// A new login always owes the second factor again.
		s.MFA.Verified = false
		s.State = StateAuthenticated
		return s.settle(), nil

	case EventOTPValidated:
		if s.State == StateAnonymous || !s.MFA.Enabled {
			return s, fmt.Errorf("%w: %s in %s", ErrInvalidTransition, e, s.State)
		}
		s.MFA.Verified = true
		s.State = StateFullAccess
		return s, nil

	case EventMFASetupFinished:
		if s.State == StateAnonymous || s.MFA.Enabled {
			return s, fmt.Errorf("%w: %s in %s", ErrInvalidTransition, e, s.State)
		}
		s.MFA = MFAState{Enabled: true, Enforced: false, Verified: true}
		s.State = StateFullAccess
		return s, nil

	case EventMFADisabled:
		s.MFA.Enabled = false
		s.MFA.Verified = false
		if s.State != StateAnonymous {
			s.State = StateAuthenticated
		}
		return s.settle(), nil

	case EventLogout:
		s.MFA.Verified = false
		s.State = StateAnonymous
		return s, nil

	default:
		return s, fmt.Errorf("%w: unknown event %d", ErrInvalidTransition, int(e))
	}
}

// settle promotes an authenticated session that owes no second factor.
func (s Session) settle() Session {
	if s.State != StateAuthenticated {
		return s
	}
	if s.MFA.Verified || (!s.MFA.Enabled && !s.MFA.Enforced) {
		s.State = StateFullAccess
	}
	return s
}
