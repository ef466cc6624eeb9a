package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sphenegem/gem-inventory-api/internal/domain"
	"github.com/sphenegem/gem-inventory-api/internal/repository"
	"github.com/sphenegem/gem-inventory-api/internal/repository/dao"
	"github.com/sphenegem/gem-inventory-api/internal/testutil"
)

func newSaleRepository(t *testing.T) (*repository.SaleRepository, *repository.GemstoneRepository, func(code string, qty int, weight, ppc string) domain.Gemstone) {
	db := testutil.NewSQLiteDB(t)
	sales := repository.NewSaleRepository(dao.NewSaleDAO(db), dao.NewLedgerDAO(db))
	gems := repository.NewGemstoneRepository(dao.NewGemstoneDAO(db))

	seed := func(code string, qty int, weight, ppc string) domain.Gemstone {
		g := testutil.SeedGemstone(t, db, code, "", qty, weight, ppc)
		found, err := gems.FindByID(context.Background(), g.ID)
		require.NoError(t, err)
		return found
	}

	return sales, gems, seed
}

func sellWith(order domain.SellOrder) func(domain.Gemstone) (domain.Gemstone, domain.Sale, error) {
	return func(g domain.Gemstone) (domain.Gemstone, domain.Sale, error) {
		return g.Sell(order, time.Now())
	}
}

func TestSaleRepository_Sell(t *testing.T) {
	sales, gems, seed := newSaleRepository(t)
	ctx := context.Background()

	gem := seed("SPH-01", 5, "3.0", "100")

	order := domain.SellOrder{
		GemstoneID:   gem.ID,
		Quantity:     2,
		CaratSold:    decimal.RequireFromString("1.5"),
		SellingPrice: decimal.NewFromInt(100),
	}
	require.NoError(t, order.Validate())

	updated, sale, err := sales.Sell(ctx, gem.ID, sellWith(order))
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Quantity)
	assert.True(t, sale.TotalAmount.Equal(decimal.NewFromInt(150)))
	assert.True(t, sale.MarkingPrice.Equal(decimal.NewFromInt(300)))

	stored, err := gems.FindByID(ctx, gem.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Quantity)
	assert.True(t, stored.Weight.Equal(decimal.RequireFromString("1.5")))
	assert.True(t, stored.TotalPrice.Equal(decimal.NewFromInt(150)))

	found, err := sales.FindByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, "SPH-01", found.Code)
	assert.Equal(t, 2, found.Quantity)
}

func TestSaleRepository_OverSellLeavesStockUntouched(t *testing.T) {
	sales, gems, seed := newSaleRepository(t)
	ctx := context.Background()

	gem := seed("SPH-01", 5, "3.0", "100")

	tests := []struct {
		name  string
		order domain.SellOrder
	}{
		{
			name:  "quantity",
			order: domain.SellOrder{GemstoneID: gem.ID, Quantity: 6, CaratSold: decimal.NewFromInt(1), SellingPrice: decimal.NewFromInt(1)},
		},
		{
			name:  "weight",
			order: domain.SellOrder{GemstoneID: gem.ID, Quantity: 1, CaratSold: decimal.RequireFromString("3.5"), SellingPrice: decimal.NewFromInt(1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, err := gems.FindByID(ctx, gem.ID)
			require.NoError(t, err)

			_, _, err = sales.Sell(ctx, gem.ID, sellWith(tt.order))
			assert.ErrorIs(t, err, domain.ErrOverSell)

			after, err := gems.FindByID(ctx, gem.ID)
			require.NoError(t, err)
			assert.Equal(t, before.Quantity, after.Quantity)
			assert.True(t, before.Weight.Equal(after.Weight))
			assert.True(t, before.TotalPrice.Equal(after.TotalPrice))

			page, err := sales.List(ctx, domain.PageQuery{})
			require.NoError(t, err)
			assert.Zero(t, page.Total)
		})
	}
}

func TestSaleRepository_ConcurrentSell(t *testing.T) {
	sales, _, seed := newSaleRepository(t)
	ctx := context.Background()

	gem := seed("SPH-01", 1, "2.0", "100")
	order := domain.SellOrder{
		GemstoneID:   gem.ID,
		Quantity:     1,
		CaratSold:    decimal.NewFromInt(2),
		SellingPrice: decimal.NewFromInt(100),
	}

	const sellers = 4

	var (
		wg   sync.WaitGroup
		errs = make([]error, sellers)
	)
	for i := 0; i < sellers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = sales.Sell(ctx, gem.ID, sellWith(order))
		}(i)
	}
	wg.Wait()

	var ok, overSold int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrOverSell):
			overSold++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, sellers-1, overSold)
}

func TestSaleRepository_DeleteDoesNotRestoreStock(t *testing.T) {
	sales, gems, seed := newSaleRepository(t)
	ctx := context.Background()

	gem := seed("SPH-01", 5, "3.0", "100")
	order := domain.SellOrder{GemstoneID: gem.ID, Quantity: 2, CaratSold: decimal.NewFromInt(1), SellingPrice: decimal.NewFromInt(90)}

	_, sale, err := sales.Sell(ctx, gem.ID, sellWith(order))
	require.NoError(t, err)

	require.NoError(t, sales.Delete(ctx, sale.ID))

	stored, err := gems.FindByID(ctx, gem.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Quantity)
	assert.True(t, stored.Weight.Equal(decimal.NewFromInt(2)))

	err = sales.Delete(ctx, sale.ID)
	assert.ErrorIs(t, err, repository.ErrSaleNotFound)
}
