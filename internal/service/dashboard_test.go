package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sphenegem/gem-inventory-api/internal/domain"
)

type flakyDashboardRepo struct {
	failures int
	calls    int
}

func (r *flakyDashboardRepo) Stats(_ context.Context, now time.Time) (domain.DashboardStats, error) {
	r.calls++
	if r.calls <= r.failures {
		return domain.DashboardStats{}, errors.New("bad connection")
	}
	return domain.DashboardStats{TotalGemstones: 3, GeneratedAt: now}, nil
}

func TestDashboardService_GetStats(t *testing.T) {
	repo := &flakyDashboardRepo{failures: 1}
	svc := NewDashboardService(repo)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	stats, err := svc.GetStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
	assert.Equal(t, int64(3), stats.TotalGemstones)
	assert.Equal(t, fixed, stats.GeneratedAt)
}
