package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sphenegem/gem-inventory-api/internal/api/handler/v1/response"
	"github.com/sphenegem/gem-inventory-api/internal/domain"
)

type DashboardService interface {
	GetStats(ctx context.Context) (domain.DashboardStats, error)
}

type DashboardHandler struct {
	svc DashboardService
}

func NewDashboardHandler(svc DashboardService) *DashboardHandler {
	return &DashboardHandler{
		svc: svc,
	}
}

// HandleGetDashboardStats godoc
// @Summary      Dashboard statistics
// @Description  Stock and sales totals, the last 12 months of additions and sales, and the top gemstones by revenue.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  domain.DashboardStats
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /dashboard/stats [get]
// @Security BearerAuth
func (h *DashboardHandler) HandleGetDashboardStats(ctx *gin.Context) {
	stats, err := h.svc.GetStats(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetDashboardStats -> h.svc.GetStats -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, stats)
}
