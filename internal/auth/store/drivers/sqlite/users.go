package sqlite

import (
	"context"
	"strings"

	"github.com/aussiebroadwan/adminhub/internal/auth/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, user_name, first_name, last_name, email, password_hash,
	account_locked, pw_reset_token, email_verified, email_verify_token,
	mfa_token, mfa_enabled, mfa_enforced, mfa_verified, roles, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u                    domain.User
		roles                string
		createdAt, updatedAt int64
	)
	err := row.Scan(
		&u.ID, &u.UserName, &u.FirstName, &u.LastName, &u.Email, &u.PasswordHash,
		&u.AccountLocked, &u.PwResetToken, &u.EmailVerified, &u.EmailVerifyToken,
		&u.MFAToken, &u.MFAState.Enabled, &u.MFAState.Enforced, &u.MFAState.Verified,
		&roles, &createdAt, &updatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Roles = strings.Fields(roles)
	u.CreatedAt = fromMillis(createdAt)
	u.UpdatedAt = fromMillis(updatedAt)
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (r *usersRepo) GetUserByUserName(ctx context.Context, userName string) (domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE user_name = ?`, userName))
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := nowMillis()
	_, err := r.db.ExecContext(ctx, `INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.UserName, u.FirstName, u.LastName, u.Email, u.PasswordHash,
		u.AccountLocked, u.PwResetToken, u.EmailVerified, u.EmailVerifyToken,
		u.MFAToken, u.MFAState.Enabled, u.MFAState.Enforced, u.MFAState.Verified,
		strings.Join(domain.NormalizeRoles(u.Roles), " "), now, now,
	)
	return mapConstraint(err)
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

func (r *usersRepo) UpdateMFAToken(ctx context.Context, userID, secret string) error {
	return expectRow(r.db.ExecContext(ctx,
		`UPDATE users SET mfa_token = ?, updated_at = ? WHERE id = ?`,
		secret, nowMillis(), userID))
}

func (r *usersRepo) EnableMFA(ctx context.Context, userID, secret string, st domain.MFAState) error {
	return expectRow(r.db.ExecContext(ctx,
		`UPDATE users SET mfa_enabled = ?, mfa_verified = ?, updated_at = ?
		 WHERE id = ? AND mfa_token = ? AND mfa_token <> ''`,
		st.Enabled, st.Verified, nowMillis(), userID, secret))
}

func (r *usersRepo) VerifyMFA(ctx context.Context, userID, secret string) error {
	return expectRow(r.db.ExecContext(ctx,
		`UPDATE users SET mfa_verified = 1, updated_at = ?
		 WHERE id = ? AND mfa_enabled = 1 AND mfa_token = ? AND mfa_token <> ''`,
		nowMillis(), userID, secret))
}

func (r *usersRepo) SetMFAVerified(ctx context.Context, userID string, verified bool) error {
	return expectRow(r.db.ExecContext(ctx,
		`UPDATE users SET mfa_verified = ?, updated_at = ? WHERE id = ?`,
		verified, nowMillis(), userID))
}

func (r *usersRepo) DisableMFA(ctx context.Context, userID string) error {
	return expectRow(r.db.ExecContext(ctx,
		`UPDATE users SET mfa_token = '', mfa_enabled = 0, mfa_verified = 0, updated_at = ?
		 WHERE id = ?`,
		nowMillis(), userID))
}

func (r *usersRepo) SetAccountLocked(ctx context.Context, userID string, locked bool) error {
	return expectRow(r.db.ExecContext(ctx,
		`UPDATE users SET account_locked = ?, updated_at = ? WHERE id = ?`,
		locked, nowMillis(), userID))
}

func (r *usersRepo) SetPwResetToken(ctx context.Context, userID, token string) error {
	return expectRow(r.db.ExecContext(ctx,
		`UPDATE users SET pw_reset_token = ?, updated_at = ? WHERE id = ?`,
		token, nowMillis(), userID))
}

func (r *usersRepo) UpdatePassword(ctx context.Context, userID, hash string) error {
	return expectRow(r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, pw_reset_token = '', updated_at = ? WHERE id = ?`,
		hash, nowMillis(), userID))
}

func (r *usersRepo) ConfirmEmail(ctx context.Context, userID string) error {
	return expectRow(r.db.ExecContext(ctx,
		`UPDATE users SET email_verified = 1, email_verify_token = '', updated_at = ? WHERE id = ?`,
		nowMillis(), userID))
}
