package dao

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StockTotals struct {
	Count  int64
	Weight decimal.Decimal
	Value  decimal.Decimal
}

type SaleTotals struct {
	Count   int64
	Revenue decimal.Decimal
}

type CodeRevenue struct {
	Code         string
	Name         string
	TotalRevenue decimal.Decimal
}

type DashboardDAO struct {
	db *gorm.DB
}

func NewDashboardDAO(db *gorm.DB) *DashboardDAO {
	return &DashboardDAO{
		db: db,
	}
}

func (d *DashboardDAO) StockTotals(ctx context.Context) (StockTotals, error) {
	var totals StockTotals

	result := d.db.WithContext(ctx).
		Model(&Gemstone{}).
		Select("COUNT(*) AS count, COALESCE(SUM(weight), 0) AS weight, COALESCE(SUM(total_price), 0) AS value").
		Scan(&totals)
	if result.Error != nil {
		return StockTotals{}, result.Error
	}

	return totals, nil
}

func (d *DashboardDAO) SaleTotals(ctx context.Context) (SaleTotals, error) {
	var totals SaleTotals

	result := d.db.WithContext(ctx).
		Model(&Sale{}).
		Select("COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS revenue").
		Scan(&totals)
	if result.Error != nil {
		return SaleTotals{}, result.Error
	}

	return totals, nil
}

// GemstonesCreatedSince returns creation times of live gemstones.
func (d *DashboardDAO) GemstonesCreatedSince(ctx context.Context, since time.Time) ([]time.Time, error) {
	var created []time.Time

	result := d.db.WithContext(ctx).
		Model(&Gemstone{}).
		Where("created_at >= ?", since).
		Pluck("created_at", &created)
	if result.Error != nil {
		return nil, result.Error
	}

	return created, nil
}

func (d *DashboardDAO) SalesSince(ctx context.Context, since time.Time) ([]Sale, error) {
	var sales []Sale

	result := d.db.WithContext(ctx).
		Select("id", "total_amount", "sold_at").
		Where("sold_at >= ?", since).
		Find(&sales)
	if result.Error != nil {
		return nil, result.Error
	}

	return sales, nil
}

// TopRevenue sums total_amount per gemstone code, largest first.
func (d *DashboardDAO) TopRevenue(ctx context.Context, limit int) ([]CodeRevenue, error) {
	var out []CodeRevenue

	result := d.db.WithContext(ctx).
		Model(&Sale{}).
		Select("code, MAX(name) AS name, SUM(total_amount) AS total_revenue").
		Group("code").
		Order("total_revenue DESC, code ASC").
		Limit(limit).
		Scan(&out)
	if result.Error != nil {
		return nil, result.Error
	}

	return out, nil
}
