package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/adminhub/internal/auth/domain"
	"github.com/aussiebroadwan/adminhub/internal/auth/store"
	"github.com/aussiebroadwan/adminhub/pkg/httpx"
	"github.com/aussiebroadwan/adminhub/pkg/idx"
	"github.com/aussiebroadwan/adminhub/pkg/slogx"
)

const (
	DefaultAuditPageLimit = 10
	MaxAuditPageLimit     = 100
)

type AuditService struct {
	Store store.Store
	Now   func() time.Time
}

// Record stores e. Failures are logged and swallowed so an audit outage
// never fails the operation being audited. A nil *AuditService is a no-op.
//
// Must not be called from inside a WithTx callback.
func (s *AuditService) Record(ctx context.Context, e domain.AuditEntry) {
	if s == nil || s.Store == nil {
		return
	}
	if e.ID == "" {
		e.ID = idx.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = clockNow(s.Now)
	}
	if e.IPAddress == "" {
		e.IPAddress = httpx.ClientIPFromContext(ctx)
	}
	if e.Status == "" {
		e.Status = domain.AuditSuccess
	}

	if err := s.Store.AuditLogs().CreateAuditEntry(ctx, e); err != nil {
		slogx.FromContext(ctx).Error("failed to record audit entry",
			slog.String("event_type", e.EventType),
			slog.String("user_id", e.UserID),
			slog.Any("error", err),
		)
	}
}

// List returns one page of audit entries, newest first. page starts at 1;
// out of range values fall back to the defaults.
func (s *AuditService) List(ctx context.Context, page, limit int) (domain.AuditPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultAuditPageLimit
	}
	limit = min(limit, MaxAuditPageLimit)

	total, err := s.Store.AuditLogs().CountAuditEntries(ctx)
	if err != nil {
		return domain.AuditPage{}, err
	}
	docs, err := s.Store.AuditLogs().ListAuditEntries(ctx, limit, (page-1)*limit)
	if err != nil {
		return domain.AuditPage{}, err
	}

	return domain.AuditPage{
		Docs:       docs,
		TotalDocs:  total,
		Page:       page,
		Limit:      limit,
		TotalPages: (total + limit - 1) / limit,
	}, nil
}

// clockNow returns clock() or time.Now when clock is unset.
func clockNow(clock func() time.Time) time.Time {
	if clock != nil {
		return clock()
	}
	return time.Now()
}
