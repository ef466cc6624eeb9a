package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyAdditions(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	got := MonthlyAdditions([]time.Time{
		time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 10, 31, 23, 59, 0, 0, time.UTC), // outside the window
	}, now)

	require.Len(t, got, 12)
	assert.Equal(t, "2025-11", got[0].Month)
	assert.Equal(t, int64(1), got[0].Count)
	assert.Equal(t, "2026-10", got[11].Month)
	assert.Equal(t, int64(2), got[11].Count)
	assert.Equal(t, int64(0), got[5].Count)
}

func TestMonthlyRevenue(t *testing.T) {
	now := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	got := MonthlyRevenue([]SaleFact{
		{TotalAmount: dec("10.50"), SoldAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		{TotalAmount: dec("4.50"), SoldAt: time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)},
		{TotalAmount: dec("1"), SoldAt: time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC)},
	}, now)

	require.Len(t, got, 12)
	assert.Equal(t, "2025-03", got[0].Month)
	assert.Equal(t, "2025-12", got[9].Month)
	assert.Equal(t, int64(1), got[9].Count)
	assert.Equal(t, int64(2), got[11].Count)
	assert.True(t, got[11].Revenue.Equal(dec("15")))
}

func TestPageQuery_Normalize(t *testing.T) {
	q := PageQuery{Page: 0, PageSize: 500, Query: "  sph "}.Normalize()
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, MaxPageSize, q.PageSize)
	assert.Equal(t, "sph", q.Query)
	assert.Equal(t, 0, q.Offset())

	q = PageQuery{Page: 3}.Normalize()
	assert.Equal(t, DefaultPageSize, q.PageSize)
	assert.Equal(t, 40, q.Offset())
}
