package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aussiebroadwan/adminhub/internal/auth/domain"
	"github.com/aussiebroadwan/adminhub/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestHousekeeping_Cleanup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	u := f.createUser(t, "alice", "correct-horse", nil)
	now := f.clock.Now()

	for _, exp := range []time.Time{now.Add(-time.Hour), now.Add(-time.Minute), now.Add(time.Hour)} {
		require.NoError(t, f.store.RefreshTokens().CreateRefreshToken(ctx, domain.RefreshToken{
			ID: idx.New().String(), UserID: u.ID, TokenHash: idx.New().String(), ExpiresAt: exp,
		}))
	}
	for _, at := range []time.Time{now.Add(-100 * 24 * time.Hour), now.Add(-time.Hour)} {
		f.audit.Record(ctx, domain.AuditEntry{EventType: domain.AuditLogin, CreatedAt: at})
	}

	hk := NewHousekeepingService(f.store, slog.New(slog.NewTextHandler(io.Discard, nil)), time.Hour, DefaultAuditRetention)
	hk.Now = f.clock.Now

	tokens, audits := hk.cleanup(ctx)
	require.EqualValues(t, 2, tokens)
	require.EqualValues(t, 1, audits)
	require.Len(t, f.auditEvents(t), 1)
}

func TestHousekeeping_StartStop(t *testing.T) {
	f := newFixture(t)
	hk := NewHousekeepingService(f.store, slog.New(slog.NewTextHandler(io.Discard, nil)), 0, 0)
	require.Equal(t, time.Hour, hk.Interval)

	hk.Start()
	hk.Stop()
}
