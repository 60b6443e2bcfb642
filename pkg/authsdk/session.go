package authsdk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// refreshBuffer is subtracted from the access token lifetime so the token
// is renewed before the server would reject it.
const refreshBuffer = 10 * time.Second

// Session holds the tokens of a logged in user and renews the access token
// through createNewAccessToken when it is about to expire.
type Session struct {
	client *SDKClient

	mu           sync.RWMutex
	user         User
	accessToken  string
	refreshToken string
	expiresAt    time.Time
}

func newSession(client *SDKClient, login *LogInResponse) *Session {
	return &Session{
		client:       client,
		user:         login.User,
		accessToken:  login.AccessToken,
		refreshToken: login.RefreshToken,
		expiresAt:    expiryFor(login.ExpiresIn),
	}
}

// NewSessionFromTokens resumes a session from stored tokens. The access
// token is renewed on first use.
func (c *SDKClient) NewSessionFromTokens(userID, accessToken, refreshToken string) *Session {
	return &Session{
		client:       c,
		user:         User{ID: userID},
		accessToken:  accessToken,
		refreshToken: refreshToken,
	}
}

func expiryFor(expiresIn int) time.Time {
	ttl := time.Duration(expiresIn) * time.Second
	return time.Now().Add(ttl - min(refreshBuffer, ttl/2))
}

// User returns the account as reported at login.
func (s *Session) User() User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.ID
}

// AccessToken returns the current access token without checking expiration.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// Refresh replaces the access token with a new one carrying the current
// roles and MFA state.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshLocked(ctx)
}

func (s *Session) refreshLocked(ctx context.Context) error {
	if s.refreshToken == "" {
		return fmt.Errorf("no refresh token available")
	}
	out, err := s.client.CreateNewAccessToken(ctx, s.refreshToken)
	if err != nil {
		return fmt.Errorf("failed to refresh token: %w", err)
	}
	s.accessToken = out.AccessToken
	s.expiresAt = expiryFor(out.ExpiresIn)
	return nil
}

// getValidToken returns a valid access token, refreshing it if needed.
func (s *Session) getValidToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	if time.Now().Before(s.expiresAt) {
		token := s.accessToken
		s.mu.RUnlock()
		return token, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another goroutine may have refreshed meanwhile.
	if time.Now().Before(s.expiresAt) {
		return s.accessToken, nil
	}
	if err := s.refreshLocked(ctx); err != nil {
		return "", err
	}
	return s.accessToken, nil
}

// doAuthRequest sends in with the session's bearer token.
func (s *Session) doAuthRequest(ctx context.Context, method, path string, in any) (*http.Response, error) {
	token, err := s.getValidToken(ctx)
	if err != nil {
		return nil, err
	}
	return s.client.doJSON(ctx, method, path, token, in)
}

// ============================================================================
// MFA
// ============================================================================

func (s *Session) StartMFASetup(ctx context.Context) (*MFASetupResponse, error) {
	token, err := s.getValidToken(ctx)
	if err != nil {
		return nil, err
	}
	return s.client.StartMFASetup(ctx, token, s.UserID())
}

// FinishMFASetup enables MFA and renews the access token so it carries
// full access.
func (s *Session) FinishMFASetup(ctx context.Context, code string) error {
	token, err := s.getValidToken(ctx)
	if err != nil {
		return err
	}
	if err := s.client.FinishMFASetup(ctx, token, s.UserID(), code); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// ValidateOTP completes a login of an MFA account and renews the access
// token so it carries full access.
func (s *Session) ValidateOTP(ctx context.Context, code string) error {
	token, err := s.getValidToken(ctx)
	if err != nil {
		return err
	}
	if err := s.client.ValidateOTP(ctx, token, s.UserID(), code); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// Logout ends the session on the server and forgets the tokens.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.refreshToken == "" {
		return fmt.Errorf("no refresh token to revoke")
	}
	if err := s.client.Logout(ctx, s.refreshToken); err != nil {
		return err
	}
	s.accessToken, s.refreshToken = "", ""
	s.expiresAt = time.Time{}
	return nil
}

// ============================================================================
// Users, roles, audit logs
// ============================================================================

func (s *Session) GetUser(ctx context.Context, userID string) (*User, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/users/"+url.PathEscape(userID), nil)
	if err != nil {
		return nil, err
	}

	var out UserResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// DisableMFA turns off MFA for userID, which may be the session user.
func (s *Session) DisableMFA(ctx context.Context, userID string) error {
	token, err := s.getValidToken(ctx)
	if err != nil {
		return err
	}
	return s.client.DisableMFA(ctx, token, DisableMFARequest{UserID: userID, ExecUserID: s.UserID()})
}

// LockAccount locks or unlocks userID. Admin only.
func (s *Session) LockAccount(ctx context.Context, userID string, locked bool) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPatch, "/v1/users/lockAccount", LockAccountRequest{
		UserID:     userID,
		ExecUserID: s.UserID(),
		Locked:     &locked,
	})
	if err != nil {
		return err
	}
	return decodeJSON(resp, nil, http.StatusOK)
}

// RequestPasswordReset blocks logins of userID until the returned token is
// used with ResetPassword. Admin only.
func (s *Session) RequestPasswordReset(ctx context.Context, userID string) (string, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodPatch, "/v1/users/requestPasswordReset", RequestPasswordResetRequest{
		UserID:     userID,
		ExecUserID: s.UserID(),
	})
	if err != nil {
		return "", err
	}

	var out PasswordResetResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return "", err
	}
	return out.PwResetToken, nil
}

func (s *Session) ListRoles(ctx context.Context) ([]Role, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/roles", nil)
	if err != nil {
		return nil, err
	}

	var out RolesResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Roles, nil
}

// ListAuditLogs returns one page of audit entries. Admin only.
func (s *Session) ListAuditLogs(ctx context.Context, page, limit int) (*AuditLogsResponse, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	path := "/v1/auditLogs"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var out AuditLogsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
