package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	dashboardMonths = 12
	monthLayout     = "2006-01"
)

type DashboardStats struct {
	TotalGemstones    int64             `json:"total_gemstones"`
	TotalCarat        decimal.Decimal   `json:"total_carat"`
	TotalStockValue   decimal.Decimal   `json:"total_stock_value"`
	TotalSales        int64             `json:"total_sales"`
	TotalRevenue      decimal.Decimal   `json:"total_revenue"`
	MonthlyGemstones  []MonthlyCount    `json:"monthly_gemstones"`
	MonthlySales      []MonthlySales    `json:"monthly_sales"`
	RevenueByGemstone []GemstoneRevenue `json:"revenue_by_gemstone"`
	GeneratedAt       time.Time         `json:"generated_at"`
}

type MonthlyCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

type MonthlySales struct {
	Month   string          `json:"month"`
	Count   int64           `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

type GemstoneRevenue struct {
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// SaleFact is the minimal projection of a sale the dashboard buckets.
type SaleFact struct {
	TotalAmount decimal.Decimal
	SoldAt      time.Time
}

// DashboardWindowStart is the first instant of the oldest month shown.
func DashboardWindowStart(now time.Time) time.Time {
	now = now.UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	return first.AddDate(0, -(dashboardMonths - 1), 0)
}

// MonthlyAdditions buckets creation times into the trailing twelve months,
// oldest first. Months without additions are reported with a zero count.
func MonthlyAdditions(createdAt []time.Time, now time.Time) []MonthlyCount {
	start := DashboardWindowStart(now)
	out := make([]MonthlyCount, dashboardMonths)
	for i := range out {
		out[i].Month = start.AddDate(0, i, 0).Format(monthLayout)
	}

	for _, t := range createdAt {
		if i := monthIndex(start, t); i >= 0 {
			out[i].Count++
		}
	}

	return out
}

// MonthlyRevenue buckets sales into the trailing twelve months, oldest first.
func MonthlyRevenue(sales []SaleFact, now time.Time) []MonthlySales {
	start := DashboardWindowStart(now)
	out := make([]MonthlySales, dashboardMonths)
	for i := range out {
		out[i].Month = start.AddDate(0, i, 0).Format(monthLayout)
		out[i].Revenue = decimal.Zero
	}

	for _, s := range sales {
		if i := monthIndex(start, s.SoldAt); i >= 0 {
			out[i].Count++
			out[i].Revenue = out[i].Revenue.Add(s.TotalAmount)
		}
	}

	return out
}

func monthIndex(start, t time.Time) int {
	t = t.UTC()
	if t.Before(start) {
		return -1
	}
	i := (t.Year()-start.Year())*12 + int(t.Month()) - int(start.Month())
	if i >= dashboardMonths {
		return -1
	}

	return i
}
