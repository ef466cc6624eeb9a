package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/sphenegem/gem-inventory-api/internal/domain"
	"github.com/sphenegem/gem-inventory-api/internal/repository/dao"
)

const topGemstones = 10

type DashboardDAO interface {
	StockTotals(ctx context.Context) (dao.StockTotals, error)
	SaleTotals(ctx context.Context) (dao.SaleTotals, error)
	GemstonesCreatedSince(ctx context.Context, since time.Time) ([]time.Time, error)
	SalesSince(ctx context.Context, since time.Time) ([]dao.Sale, error)
	TopRevenue(ctx context.Context, limit int) ([]dao.CodeRevenue, error)
}

type DashboardRepository struct {
	dao DashboardDAO
}

func NewDashboardRepository(dao DashboardDAO) *DashboardRepository {
	return &DashboardRepository{
		dao: dao,
	}
}

// Stats aggregates stock and sales as of now. Sums are rounded to their
// column scale because sqlite adds numerics as floats.
func (r *DashboardRepository) Stats(ctx context.Context, now time.Time) (domain.DashboardStats, error) {
	stock, err := r.dao.StockTotals(ctx)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("r.dao.StockTotals -> %w", err)
	}

	sales, err := r.dao.SaleTotals(ctx)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("r.dao.SaleTotals -> %w", err)
	}

	since := domain.DashboardWindowStart(now)

	created, err := r.dao.GemstonesCreatedSince(ctx, since)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("r.dao.GemstonesCreatedSince -> %w", err)
	}

	recent, err := r.dao.SalesSince(ctx, since)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("r.dao.SalesSince -> %w", err)
	}

	top, err := r.dao.TopRevenue(ctx, topGemstones)
	if err != nil {
		return domain.DashboardStats{}, fmt.Errorf("r.dao.TopRevenue -> %w", err)
	}

	facts := make([]domain.SaleFact, 0, len(recent))
	for _, s := range recent {
		facts = append(facts, domain.SaleFact{TotalAmount: s.TotalAmount, SoldAt: s.SoldAt})
	}

	revenue := make([]domain.GemstoneRevenue, 0, len(top))
	for _, t := range top {
		revenue = append(revenue, domain.GemstoneRevenue{
			Code:         t.Code,
			Name:         t.Name,
			TotalRevenue: t.TotalRevenue.Round(2),
		})
	}

	monthlySales := domain.MonthlyRevenue(facts, now)
	for i := range monthlySales {
		monthlySales[i].Revenue = monthlySales[i].Revenue.Round(2)
	}

	return domain.DashboardStats{
		TotalGemstones:    stock.Count,
		TotalCarat:        stock.Weight.Round(3),
		TotalStockValue:   stock.Value.Round(2),
		TotalSales:        sales.Count,
		TotalRevenue:      sales.Revenue.Round(2),
		MonthlyGemstones:  domain.MonthlyAdditions(created, now),
		MonthlySales:      monthlySales,
		RevenueByGemstone: revenue,
		GeneratedAt:       now,
	}, nil
}
