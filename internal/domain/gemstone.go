package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"
)

const (
	priceScale  = 2
	weightScale = 3
)

type Gemstone struct {
	ID            uint            `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Quantity      int             `json:"quantity"`
	Weight        decimal.Decimal `json:"weight"`
	PricePerCarat decimal.Decimal `json:"price_per_carat"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Shape         string          `json:"shape"`
	Remark        string          `json:"remark"`
	ImageKey      string          `json:"-"`
	ImageURL      string          `json:"image_url,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TotalPrice is the listed value of weight carats at pricePerCarat, rounded
// to cents.
func TotalPrice(weight, pricePerCarat decimal.Decimal) decimal.Decimal {
	return weight.Mul(pricePerCarat).Round(priceScale)
}

// Prepare trims text fields, validates the result and recomputes TotalPrice.
// Weight and PricePerCarat must already fit their storage scale.
func (g *Gemstone) Prepare() error {
	g.Code = strings.TrimSpace(g.Code)
	g.Name = strings.TrimSpace(g.Name)
	g.Shape = strings.TrimSpace(g.Shape)
	g.Remark = strings.TrimSpace(g.Remark)

	err := validation.ValidateStruct(
		g,
		validation.Field(&g.Code, validation.Required, validation.Length(1, 64)),
		validation.Field(&g.Name, validation.Length(0, 128)),
		validation.Field(&g.Quantity, validation.Min(0)),
		validation.Field(&g.Weight, validation.By(notNegative), validation.By(maxPlaces(weightScale))),
		validation.Field(&g.PricePerCarat, validation.By(notNegative), validation.By(maxPlaces(priceScale))),
		validation.Field(&g.Shape, validation.Required, validation.Length(1, 64)),
		validation.Field(&g.Remark, validation.Length(0, 1000)),
	)
	if err != nil {
		return invalid(err)
	}

	g.TotalPrice = TotalPrice(g.Weight, g.PricePerCarat)

	return nil
}

// InStock reports whether any quantity and weight remain.
func (g Gemstone) InStock() bool {
	return g.Quantity > 0 && g.Weight.IsPositive()
}

func notNegative(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok {
		return errors.New("must be a decimal number")
	}
	if d.IsNegative() {
		return errors.New("must not be negative")
	}

	return nil
}

func positive(value interface{}) error {
	d, ok := value.(decimal.Decimal)
	if !ok {
		return errors.New("must be a decimal number")
	}
	if !d.IsPositive() {
		return errors.New("must be greater than zero")
	}

	return nil
}

// maxPlaces rejects decimals the database column would have to round.
func maxPlaces(scale int32) validation.RuleFunc {
	return func(value interface{}) error {
		d, ok := value.(decimal.Decimal)
		if !ok {
			return errors.New("must be a decimal number")
		}
		if !d.Equal(d.Round(scale)) {
			return fmt.Errorf("at most %d decimal places", scale)
		}

		return nil
	}
}
