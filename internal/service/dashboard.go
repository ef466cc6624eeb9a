package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sphenegem/gem-inventory-api/internal/domain"
)

type DashboardRepository interface {
	Stats(ctx context.Context, now time.Time) (domain.DashboardStats, error)
}

type DashboardService struct {
	repo DashboardRepository
	now  func() time.Time
}

func NewDashboardService(repo DashboardRepository) *DashboardService {
	return &DashboardService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *DashboardService) GetStats(ctx context.Context) (domain.DashboardStats, error) {
	stats, err := withReadRetry(ctx, func(ctx context.Context) (domain.DashboardStats, error) {
		return s.repo.Stats(ctx, s.now())
	})
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("s.repo.Stats -> %w", err)
	}

	return stats, nil
}
