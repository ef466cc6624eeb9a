package v1

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sphenegem/gem-inventory-api/internal/api/handler/v1/response"
	"github.com/sphenegem/gem-inventory-api/internal/api/middleware"
)

var errMissingAdmin = errors.New("no authenticated admin on the request")

// HandleHealthcheck godoc
// @Summary      Healthcheck
// @Tags         health
// @Produce      json
// @Success      200  {object}  response.HealthResponse
// @Router       / [get]
func HandleHealthcheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, response.HealthResponse{Status: "ok"})
}

func parseID(ctx *gin.Context, param string) (uint, *response.Err) {
	id, err := strconv.ParseUint(ctx.Param(param), 10, 64)
	if err != nil || id == 0 {
		return 0, response.ErrBadRequest(fmt.Errorf("%s must be a positive integer", param))
	}

	return uint(id), nil
}

func getAdminIDFromContext(ctx *gin.Context) (uint, *response.Err) {
	id, ok := middleware.AdminID(ctx)
	if !ok {
		return 0, response.ErrInvalidToken(errMissingAdmin)
	}

	return id, nil
}
