package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sphenegem/gem-inventory-api/internal/api/handler/v1/request"
	"github.com/sphenegem/gem-inventory-api/internal/api/handler/v1/response"
	"github.com/sphenegem/gem-inventory-api/internal/domain"
	"github.com/sphenegem/gem-inventory-api/internal/invoice"
	"github.com/sphenegem/gem-inventory-api/internal/service"
)

type SaleService interface {
	Sell(ctx context.Context, order domain.SellOrder) (domain.SaleReceipt, error)
	GetSale(ctx context.Context, id uint) (domain.Sale, error)
	ListSales(ctx context.Context, q domain.PageQuery) (domain.Page[domain.Sale], error)
	DeleteSale(ctx context.Context, id uint) error
	Invoice(ctx context.Context, id uint) (domain.Sale, []byte, error)
}

type SaleHandler struct {
	svc SaleService
}

func NewSaleHandler(svc SaleService) *SaleHandler {
	return &SaleHandler{
		svc: svc,
	}
}

// HandleSellGemstone godoc
// @Summary      Sell part or all of a gemstone
// @Description  Decrements stock and records the sale in one transaction. selling_price is per carat and
// @Description  authoritative; total_amount, when sent, must equal round(carat_sold x selling_price, 2).
// @Description  An invoice failure does not undo the sale and is reported in invoice_warning.
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        gemstoneID  path      int                  true  "gemstone id"
// @Param        request     body      request.SellRequest  true  "sale"
// @Success      201  {object}  domain.SaleReceipt
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err  "OVER_SELL"
// @Failure      500  {object}  response.Err
// @Router       /gemstones/{gemstoneID}/sell [post]
// @Security BearerAuth
func (h *SaleHandler) HandleSellGemstone(ctx *gin.Context) {
	gemstoneID, respErr := parseID(ctx, "gemstoneID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.SellRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	receipt, err := h.svc.Sell(ctx.Request.Context(), req.ToDomain(gemstoneID))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrGemstoneNotFound):
			response.RenderErr(ctx, response.ErrNotFound("gemstone", "id", gemstoneID))
		case errors.Is(err, service.ErrOverSell):
			response.RenderErr(ctx, response.ErrOverSell(err))
		default:
			err = fmt.Errorf("v1.HandleSellGemstone -> h.svc.Sell -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, receipt)
}

// HandleListSales godoc
// @Summary      List sales
// @Description  Newest first. query filters by gemstone code or name.
// @Tags         sales
// @Produce      json
// @Param        page       query     int     false  "page, from 1"
// @Param        page_size  query     int     false  "items per page, up to 100"
// @Param        query      query     string  false  "code or name substring"
// @Success      200  {object}  domain.Page[domain.Sale]
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /sales [get]
// @Security BearerAuth
func (h *SaleHandler) HandleListSales(ctx *gin.Context) {
	var req request.PageRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	page, err := h.svc.ListSales(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		err = fmt.Errorf("v1.HandleListSales -> h.svc.ListSales -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, page)
}

// HandleGetSale godoc
// @Summary      Get a sale
// @Tags         sales
// @Produce      json
// @Param        saleID  path      int  true  "sale id"
// @Success      200  {object}  domain.Sale
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /sales/{saleID} [get]
// @Security BearerAuth
func (h *SaleHandler) HandleGetSale(ctx *gin.Context) {
	id, respErr := parseID(ctx, "saleID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	sale, err := h.svc.GetSale(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSaleNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("sale", "id", id))
			return
		}

		err = fmt.Errorf("v1.HandleGetSale -> h.svc.GetSale -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, sale)
}

// HandleDeleteSale godoc
// @Summary      Delete a sale
// @Description  Removes the record only. Sold stock is not returned to the gemstone.
// @Tags         sales
// @Produce      json
// @Param        saleID  path      int  true  "sale id"
// @Success      200  {object}  response.MessageResponse
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /sales/{saleID} [delete]
// @Security BearerAuth
func (h *SaleHandler) HandleDeleteSale(ctx *gin.Context) {
	id, respErr := parseID(ctx, "saleID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeleteSale(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrSaleNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("sale", "id", id))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteSale -> h.svc.DeleteSale -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "sale deleted"})
}

// HandleDownloadInvoice godoc
// @Summary      Download the invoice of a sale
// @Tags         sales
// @Produce      application/pdf
// @Param        saleID  path      int  true  "sale id"
// @Success      200  {file}    file
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /sales/{saleID}/invoice [get]
// @Security BearerAuth
func (h *SaleHandler) HandleDownloadInvoice(ctx *gin.Context) {
	id, respErr := parseID(ctx, "saleID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	sale, doc, err := h.svc.Invoice(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSaleNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("sale", "id", id))
			return
		}

		err = fmt.Errorf("v1.HandleDownloadInvoice -> h.svc.Invoice -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, invoice.FileName(sale.ID)))
	ctx.Data(http.StatusOK, "application/pdf", doc)
}
