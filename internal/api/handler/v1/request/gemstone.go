package request

import (
	"github.com/shopspring/decimal"

	"github.com/sphenegem/gem-inventory-api/internal/domain"
)

// GemstoneRequest is accepted both as JSON and as multipart form fields, the
// latter when an image file is attached under "image".
type GemstoneRequest struct {
	Code          string          `json:"code" form:"code"`
	Name          string          `json:"name" form:"name"`
	Quantity      int             `json:"quantity" form:"quantity"`
	Weight        decimal.Decimal `json:"weight" form:"weight"`
	PricePerCarat decimal.Decimal `json:"price_per_carat" form:"price_per_carat"`
	Shape         string          `json:"shape" form:"shape"`
	Remark        string          `json:"remark" form:"remark"`
}

// ToDomain leaves validation to domain.Gemstone.Prepare, which the service
// runs on every add and edit.
func (req *GemstoneRequest) ToDomain() domain.Gemstone {
	return domain.Gemstone{
		Code:          req.Code,
		Name:          req.Name,
		Quantity:      req.Quantity,
		Weight:        req.Weight,
		PricePerCarat: req.PricePerCarat,
		Shape:         req.Shape,
		Remark:        req.Remark,
	}
}
