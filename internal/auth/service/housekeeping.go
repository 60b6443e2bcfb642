package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/adminhub/internal/auth/store"
)

const DefaultAuditRetention = 90 * 24 * time.Hour

// HousekeepingService periodically deletes expired refresh tokens and audit
// entries older than the retention period.
type HousekeepingService struct {
	Store          store.Store
	Logger         *slog.Logger
	Interval       time.Duration
	AuditRetention time.Duration // zero keeps audit entries forever
	Now            func() time.Time

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a new housekeeping service with the given interval.
// If interval is 0 or negative, defaults to 1 hour.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval, auditRetention time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}

	return &HousekeepingService{
		Store:          store,
		Logger:         logger,
		Interval:       interval,
		AuditRetention: auditRetention,
		stopCh:         make(chan struct{}),
		doneCh:         make(chan struct{}),
	}
}

// Start runs cleanup once and then on every tick until Stop.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until an in-progress cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.cleanup(context.Background())

	for {
		select {
		case <-ticker.C:
			s.cleanup(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// cleanup deletes expired records. Each deletion is independent.
func (s *HousekeepingService) cleanup(ctx context.Context) (tokens, audits int64) {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	now := clockNow(s.Now)

	tokens, err := s.Store.RefreshTokens().DeleteExpiredRefreshTokens(ctx, now)
	if err != nil {
		s.Logger.Error("failed to delete expired refresh tokens", "error", err)
	}

	if s.AuditRetention > 0 {
		audits, err = s.Store.AuditLogs().DeleteAuditEntriesBefore(ctx, now.Add(-s.AuditRetention))
		if err != nil {
			s.Logger.Error("failed to delete old audit entries", "error", err)
		}
	}

	s.Logger.Info("housekeeping cleanup completed",
		"refresh_tokens_deleted", tokens,
		"audit_entries_deleted", audits,
	)
	return tokens, audits
}
