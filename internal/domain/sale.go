package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"
)

// totalAmountTolerance is how far a client supplied total may drift from
// carat_sold x selling_price before the order is rejected.
var totalAmountTolerance = decimal.New(1, -priceScale)

type Sale struct {
	ID            uint            `json:"id"`
	GemstoneID    uint            `json:"gemstone_id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Quantity      int             `json:"quantity"`
	CaratSold     decimal.Decimal `json:"carat_sold"`
	PricePerCarat decimal.Decimal `json:"price_per_carat"`
	MarkingPrice  decimal.Decimal `json:"marking_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Remark        string          `json:"remark"`
	InvoiceKey    string          `json:"invoice_key,omitempty"`
	SoldAt        time.Time       `json:"sold_at"`
}

// SellOrder is a request to move stock out of a gemstone. SellingPrice is
// authoritative; TotalAmount, when present, only cross-checks it.
type SellOrder struct {
	GemstoneID   uint
	Quantity     int
	CaratSold    decimal.Decimal
	SellingPrice decimal.Decimal
	TotalAmount  decimal.NullDecimal
	Remark       string
}

// SaleReceipt is what a successful sell hands back. InvoiceWarning is set
// when the sale committed but the invoice could not be produced.
type SaleReceipt struct {
	Sale           Sale   `json:"sale"`
	InvoiceHandle  string `json:"invoice_handle,omitempty"`
	InvoiceWarning string `json:"invoice_warning,omitempty"`
}

func (o *SellOrder) Validate() error {
	o.Remark = strings.TrimSpace(o.Remark)

	err := validation.ValidateStruct(
		o,
		validation.Field(&o.GemstoneID, validation.Required),
		validation.Field(&o.Quantity, validation.Required, validation.Min(1)),
		validation.Field(&o.CaratSold, validation.By(positive), validation.By(maxPlaces(weightScale))),
		validation.Field(&o.SellingPrice, validation.By(positive), validation.By(maxPlaces(priceScale))),
		validation.Field(&o.Remark, validation.Length(0, 1000)),
	)
	if err != nil {
		return invalid(err)
	}

	if o.TotalAmount.Valid {
		if !o.TotalAmount.Decimal.IsPositive() {
			return invalid(errors.New("total_amount: must be greater than zero"))
		}
		if o.TotalAmount.Decimal.Sub(o.Amount()).Abs().GreaterThan(totalAmountTolerance) {
			return invalid(fmt.Errorf("total_amount: %s does not match carat_sold x selling_price = %s",
				o.TotalAmount.Decimal.StringFixed(priceScale), o.Amount().StringFixed(priceScale)))
		}
	}

	return nil
}

// Amount is the derived sale total.
func (o SellOrder) Amount() decimal.Decimal {
	return o.CaratSold.Mul(o.SellingPrice).Round(priceScale)
}

// Sell applies o to g and returns the decremented gemstone together with the
// sale snapshot. g is not modified. The order must already be valid.
func (g Gemstone) Sell(o SellOrder, at time.Time) (Gemstone, Sale, error) {
	if o.Quantity > g.Quantity {
		return Gemstone{}, Sale{}, fmt.Errorf("%w: quantity %d requested, %d on hand", ErrOverSell, o.Quantity, g.Quantity)
	}
	if o.CaratSold.GreaterThan(g.Weight) {
		return Gemstone{}, Sale{}, fmt.Errorf("%w: %s ct requested, %s ct on hand", ErrOverSell, o.CaratSold.String(), g.Weight.String())
	}

	sale := Sale{
		GemstoneID:    g.ID,
		Code:          g.Code,
		Name:          g.Name,
		Quantity:      o.Quantity,
		CaratSold:     o.CaratSold,
		PricePerCarat: g.PricePerCarat,
		MarkingPrice:  g.TotalPrice,
		SellingPrice:  o.SellingPrice,
		TotalAmount:   o.Amount(),
		Remark:        o.Remark,
		SoldAt:        at,
	}

	updated := g
	updated.Quantity -= o.Quantity
	updated.Weight = g.Weight.Sub(o.CaratSold)
	updated.TotalPrice = TotalPrice(updated.Weight, updated.PricePerCarat)

	return updated, sale, nil
}
