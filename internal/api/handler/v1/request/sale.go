package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"

	"github.com/sphenegem/gem-inventory-api/internal/domain"
)

type SellRequest struct {
	Quantity     int                 `json:"quantity"`
	CaratSold    decimal.Decimal     `json:"carat_sold"`
	SellingPrice decimal.Decimal     `json:"selling_price"`
	TotalAmount  decimal.NullDecimal `json:"total_amount" swaggertype:"string"`
	Remark       string              `json:"remark"`
}

func (req *SellRequest) ToDomain(gemstoneID uint) domain.SellOrder {
	return domain.SellOrder{
		GemstoneID:   gemstoneID,
		Quantity:     req.Quantity,
		CaratSold:    req.CaratSold,
		SellingPrice: req.SellingPrice,
		TotalAmount:  req.TotalAmount,
		Remark:       req.Remark,
	}
}

type PageRequest struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Query    string `form:"query"`
}

func (req *PageRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Page, validation.Min(0)),
		validation.Field(&req.PageSize, validation.Min(0), validation.Max(domain.MaxPageSize)),
		validation.Field(&req.Query, validation.Length(0, 128)),
	)
}

func (req *PageRequest) ToDomain() domain.PageQuery {
	return domain.PageQuery{
		Page:     req.Page,
		PageSize: req.PageSize,
		Query:    req.Query,
	}.Normalize()
}

type SearchRequest struct {
	Query string `form:"query"`
}

func (req *SearchRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Query, validation.Length(0, 128)),
	)
}
