package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestTotalPrice(t *testing.T) {
	tests := []struct {
		name   string
		weight string
		ppc    string
		want   string
	}{
		{name: "exact", weight: "3.0", ppc: "100", want: "300"},
		{name: "rounds to cents", weight: "1.234", ppc: "333.33", want: "411.33"},
		{name: "half away from zero", weight: "1.005", ppc: "1", want: "1.01"},
		{name: "zero weight", weight: "0", ppc: "125.50", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TotalPrice(dec(tt.weight), dec(tt.ppc))
			assert.True(t, got.Equal(dec(tt.want)), "got %s want %s", got, tt.want)
		})
	}
}

func TestGemstone_Prepare(t *testing.T) {
	t.Run("trims and recomputes total price", func(t *testing.T) {
		g := Gemstone{
			Code:          "  SPH-01 ",
			Name:          " Sphene ",
			Quantity:      5,
			Weight:        dec("3.0"),
			PricePerCarat: dec("100"),
			TotalPrice:    dec("1"),
			Shape:         "oval",
		}

		require.NoError(t, g.Prepare())
		assert.Equal(t, "SPH-01", g.Code)
		assert.Equal(t, "Sphene", g.Name)
		assert.True(t, g.TotalPrice.Equal(dec("300")))
	})

	tests := []struct {
		name string
		gem  Gemstone
	}{
		{name: "missing code", gem: Gemstone{Shape: "oval", Weight: dec("1"), PricePerCarat: dec("1")}},
		{name: "missing shape", gem: Gemstone{Code: "A", Weight: dec("1"), PricePerCarat: dec("1")}},
		{name: "negative quantity", gem: Gemstone{Code: "A", Shape: "oval", Quantity: -1}},
		{name: "negative weight", gem: Gemstone{Code: "A", Shape: "oval", Weight: dec("-0.5")}},
		{name: "negative price", gem: Gemstone{Code: "A", Shape: "oval", PricePerCarat: dec("-1")}},
		{name: "too precise weight", gem: Gemstone{Code: "A", Shape: "oval", Weight: dec("1.2345"), PricePerCarat: dec("1")}},
		{name: "too precise price", gem: Gemstone{Code: "A", Shape: "oval", Weight: dec("1"), PricePerCarat: dec("10.005")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.gem.Prepare()
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGemstone_Sell(t *testing.T) {
	stock := Gemstone{
		ID:            7,
		Code:          "SPH-01",
		Name:          "Sphene",
		Quantity:      5,
		Weight:        dec("3.0"),
		PricePerCarat: dec("100"),
		TotalPrice:    dec("300"),
		Shape:         "oval",
	}
	at := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

	t.Run("partial sale", func(t *testing.T) {
		order := SellOrder{GemstoneID: 7, Quantity: 2, CaratSold: dec("1.5"), SellingPrice: dec("100")}
		require.NoError(t, order.Validate())

		updated, sale, err := stock.Sell(order, at)
		require.NoError(t, err)

		assert.Equal(t, 3, updated.Quantity)
		assert.True(t, updated.Weight.Equal(dec("1.5")))
		assert.True(t, updated.TotalPrice.Equal(dec("150")))

		assert.Equal(t, uint(7), sale.GemstoneID)
		assert.Equal(t, "SPH-01", sale.Code)
		assert.Equal(t, 2, sale.Quantity)
		assert.True(t, sale.MarkingPrice.Equal(dec("300")))
		assert.True(t, sale.TotalAmount.Equal(dec("150")))
		assert.Equal(t, at, sale.SoldAt)

		// the receiver is a value and stays untouched
		assert.Equal(t, 5, stock.Quantity)
	})

	t.Run("whole stock", func(t *testing.T) {
		order := SellOrder{GemstoneID: 7, Quantity: 5, CaratSold: dec("3.0"), SellingPrice: dec("90")}
		updated, sale, err := stock.Sell(order, at)
		require.NoError(t, err)
		assert.Equal(t, 0, updated.Quantity)
		assert.True(t, updated.Weight.IsZero())
		assert.False(t, updated.InStock())
		assert.True(t, sale.TotalAmount.Equal(dec("270")))
	})

	t.Run("over sell on quantity", func(t *testing.T) {
		order := SellOrder{GemstoneID: 7, Quantity: 6, CaratSold: dec("1"), SellingPrice: dec("100")}
		_, _, err := stock.Sell(order, at)
		assert.ErrorIs(t, err, ErrOverSell)
	})

	t.Run("over sell on weight", func(t *testing.T) {
		order := SellOrder{GemstoneID: 7, Quantity: 1, CaratSold: dec("3.001"), SellingPrice: dec("100")}
		_, _, err := stock.Sell(order, at)
		assert.ErrorIs(t, err, ErrOverSell)
	})
}

func TestGemstone_PrepareKeepsScale(t *testing.T) {
	g := Gemstone{Code: "A", Shape: "oval", Quantity: 1, Weight: dec("1.234"), PricePerCarat: dec("333.33")}

	require.NoError(t, g.Prepare())
	assert.True(t, g.Weight.Equal(dec("1.234")))
	assert.True(t, g.PricePerCarat.Equal(dec("333.33")))
	assert.True(t, g.TotalPrice.Equal(dec("411.33")))
}

func TestSellOrder_AmountMatchesStoredPrice(t *testing.T) {
	o := SellOrder{GemstoneID: 1, Quantity: 1, CaratSold: dec("2"), SellingPrice: dec("100.01")}
	require.NoError(t, o.Validate())

	// a valid price survives numeric(14,2) unchanged, so the stored row
	// recomputes to the same total
	stored := o.SellingPrice.Round(2)
	assert.True(t, o.SellingPrice.Equal(stored))
	assert.True(t, o.Amount().Equal(o.CaratSold.Mul(stored).Round(2)))
	assert.True(t, o.Amount().Equal(dec("200.02")))
}

func TestSellOrder_Validate(t *testing.T) {
	valid := func() SellOrder {
		return SellOrder{GemstoneID: 1, Quantity: 1, CaratSold: dec("1.25"), SellingPrice: dec("80")}
	}

	tests := []struct {
		name    string
		mutate  func(o *SellOrder)
		wantErr bool
	}{
		{name: "valid", mutate: func(o *SellOrder) {}},
		{name: "matching total", mutate: func(o *SellOrder) { o.TotalAmount = decimal.NewNullDecimal(dec("100.00")) }},
		{name: "total within a cent", mutate: func(o *SellOrder) { o.TotalAmount = decimal.NewNullDecimal(dec("100.01")) }},
		{name: "total off", mutate: func(o *SellOrder) { o.TotalAmount = decimal.NewNullDecimal(dec("120")) }, wantErr: true},
		{name: "zero total", mutate: func(o *SellOrder) { o.TotalAmount = decimal.NewNullDecimal(decimal.Zero) }, wantErr: true},
		{name: "zero quantity", mutate: func(o *SellOrder) { o.Quantity = 0 }, wantErr: true},
		{name: "negative quantity", mutate: func(o *SellOrder) { o.Quantity = -2 }, wantErr: true},
		{name: "zero carat", mutate: func(o *SellOrder) { o.CaratSold = decimal.Zero }, wantErr: true},
		{name: "too precise carat", mutate: func(o *SellOrder) { o.CaratSold = dec("1.2345") }, wantErr: true},
		{name: "zero price", mutate: func(o *SellOrder) { o.SellingPrice = decimal.Zero }, wantErr: true},
		{name: "price in cents", mutate: func(o *SellOrder) { o.SellingPrice = dec("80.25") }},
		{name: "too precise price", mutate: func(o *SellOrder) { o.CaratSold = dec("2"); o.SellingPrice = dec("100.004") }, wantErr: true},
		{name: "missing gemstone", mutate: func(o *SellOrder) { o.GemstoneID = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := valid()
			tt.mutate(&o)
			err := o.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
		})
	}
}
