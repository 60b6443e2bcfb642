package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/adminhub/internal/auth/domain"
)

type auditLogsRepo struct {
	db dbtx
}

func (r *auditLogsRepo) CreateAuditEntry(ctx context.Context, e domain.AuditEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_logs (id, event_type, status, user_id, actor_id, ip_address, message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.EventType, e.Status, e.UserID, e.ActorID, e.IPAddress, e.Message, toMillis(e.CreatedAt))
	return mapConstraint(err)
}

func (r *auditLogsRepo) ListAuditEntries(ctx context.Context, limit, offset int) ([]domain.AuditEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, event_type, status, user_id, actor_id, ip_address, message, created_at
		 FROM audit_logs ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]domain.AuditEntry, 0, limit)
	for rows.Next() {
		var (
			e         domain.AuditEntry
			createdAt int64
		)
		if err := rows.Scan(&e.ID, &e.EventType, &e.Status, &e.UserID, &e.ActorID,
			&e.IPAddress, &e.Message, &createdAt); err != nil {
			return nil, err
		}
		e.CreatedAt = fromMillis(createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *auditLogsRepo) CountAuditEntries(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_logs`).Scan(&count)
	return count, err
}

func (r *auditLogsRepo) DeleteAuditEntriesBefore(ctx context.Context, before time.Time) (int64, error) {
	return rowsAffected(r.db.ExecContext(ctx,
		`DELETE FROM audit_logs WHERE created_at < ?`, toMillis(before)))
}
