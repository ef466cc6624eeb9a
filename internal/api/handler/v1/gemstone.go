package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/sphenegem/gem-inventory-api/internal/api/handler/v1/request"
	"github.com/sphenegem/gem-inventory-api/internal/api/handler/v1/response"
	"github.com/sphenegem/gem-inventory-api/internal/domain"
	"github.com/sphenegem/gem-inventory-api/internal/service"
)

const imageFormField = "image"

type GemstoneService interface {
	CreateGemstone(ctx context.Context, gem domain.Gemstone, img *service.ImageUpload) (domain.Gemstone, error)
	UpdateGemstone(ctx context.Context, id uint, gem domain.Gemstone, img *service.ImageUpload) (domain.Gemstone, error)
	DeleteGemstone(ctx context.Context, id uint) error
	GetGemstone(ctx context.Context, id uint) (domain.Gemstone, error)
	ListGemstones(ctx context.Context, q domain.PageQuery) (domain.Page[domain.Gemstone], error)
	SearchGemstones(ctx context.Context, query string) ([]domain.Gemstone, error)
}

type GemstoneHandler struct {
	svc GemstoneService
}

func NewGemstoneHandler(svc GemstoneService) *GemstoneHandler {
	return &GemstoneHandler{
		svc: svc,
	}
}

// HandleListGemstones godoc
// @Summary      List gemstones
// @Description  Newest first. query filters by code or name, case-insensitively.
// @Tags         gemstones
// @Produce      json
// @Param        page       query     int     false  "page, from 1"
// @Param        page_size  query     int     false  "items per page, up to 100"
// @Param        query      query     string  false  "code or name substring"
// @Success      200  {object}  domain.Page[domain.Gemstone]
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /gemstones [get]
// @Security BearerAuth
func (h *GemstoneHandler) HandleListGemstones(ctx *gin.Context) {
	var req request.PageRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	page, err := h.svc.ListGemstones(ctx.Request.Context(), req.ToDomain())
	if err != nil {
		err = fmt.Errorf("v1.HandleListGemstones -> h.svc.ListGemstones -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, page)
}

// HandleSearchGemstones godoc
// @Summary      Search gemstones by code or name
// @Tags         gemstones
// @Produce      json
// @Param        query  query     string  false  "code or name substring"
// @Success      200  {array}   domain.Gemstone
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /gemstones/search [get]
// @Security BearerAuth
func (h *GemstoneHandler) HandleSearchGemstones(ctx *gin.Context) {
	var req request.SearchRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	gems, err := h.svc.SearchGemstones(ctx.Request.Context(), req.Query)
	if err != nil {
		err = fmt.Errorf("v1.HandleSearchGemstones -> h.svc.SearchGemstones -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gems)
}

// HandleGetGemstone godoc
// @Summary      Get a gemstone
// @Tags         gemstones
// @Produce      json
// @Param        gemstoneID  path      int  true  "gemstone id"
// @Success      200  {object}  domain.Gemstone
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /gemstones/{gemstoneID} [get]
// @Security BearerAuth
func (h *GemstoneHandler) HandleGetGemstone(ctx *gin.Context) {
	id, respErr := parseID(ctx, "gemstoneID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	gem, err := h.svc.GetGemstone(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrGemstoneNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("gemstone", "id", id))
			return
		}

		err = fmt.Errorf("v1.HandleGetGemstone -> h.svc.GetGemstone -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gem)
}

// HandleCreateGemstone godoc
// @Summary      Add a gemstone
// @Description  Accepts JSON, or multipart form fields with an optional image file.
// @Tags         gemstones
// @Accept       json,mpfd
// @Produce      json
// @Param        request  body      request.GemstoneRequest  true   "gemstone"
// @Param        image    formData  file                     false  "png, jpg, jpeg or webp, up to 10MB"
// @Success      201  {object}  domain.Gemstone
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /gemstones [post]
// @Security BearerAuth
func (h *GemstoneHandler) HandleCreateGemstone(ctx *gin.Context) {
	var req request.GemstoneRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	img, closeImg, respErr := imageFromForm(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	defer closeImg()

	gem, err := h.svc.CreateGemstone(ctx.Request.Context(), req.ToDomain(), img)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrGemstoneCodeExists):
			response.RenderErr(ctx, response.ErrConflict(service.ErrGemstoneCodeExists))
		default:
			err = fmt.Errorf("v1.HandleCreateGemstone -> h.svc.CreateGemstone -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, gem)
}

// HandleUpdateGemstone godoc
// @Summary      Edit a gemstone
// @Description  Replaces every editable field. A new image replaces the old one.
// @Tags         gemstones
// @Accept       json,mpfd
// @Produce      json
// @Param        gemstoneID  path      int                      true   "gemstone id"
// @Param        request     body      request.GemstoneRequest  true   "gemstone"
// @Param        image       formData  file                     false  "png, jpg, jpeg or webp, up to 10MB"
// @Success      200  {object}  domain.Gemstone
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /gemstones/{gemstoneID} [put]
// @Security BearerAuth
func (h *GemstoneHandler) HandleUpdateGemstone(ctx *gin.Context) {
	id, respErr := parseID(ctx, "gemstoneID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.GemstoneRequest
	if err := ctx.ShouldBind(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	img, closeImg, respErr := imageFromForm(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	defer closeImg()

	gem, err := h.svc.UpdateGemstone(ctx.Request.Context(), id, req.ToDomain(), img)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrGemstoneNotFound):
			response.RenderErr(ctx, response.ErrNotFound("gemstone", "id", id))
		case errors.Is(err, service.ErrGemstoneCodeExists):
			response.RenderErr(ctx, response.ErrConflict(service.ErrGemstoneCodeExists))
		default:
			err = fmt.Errorf("v1.HandleUpdateGemstone -> h.svc.UpdateGemstone -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, gem)
}

// HandleDeleteGemstone godoc
// @Summary      Delete a gemstone
// @Description  Soft delete. Existing sales keep their snapshot of the gemstone.
// @Tags         gemstones
// @Produce      json
// @Param        gemstoneID  path      int  true  "gemstone id"
// @Success      200  {object}  response.MessageResponse
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /gemstones/{gemstoneID} [delete]
// @Security BearerAuth
func (h *GemstoneHandler) HandleDeleteGemstone(ctx *gin.Context) {
	id, respErr := parseID(ctx, "gemstoneID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeleteGemstone(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrGemstoneNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("gemstone", "id", id))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteGemstone -> h.svc.DeleteGemstone -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "gemstone deleted"})
}

// imageFromForm returns the optional image of a multipart request. The
// returned func closes the opened file and is always safe to call.
func imageFromForm(ctx *gin.Context) (*service.ImageUpload, func(), *response.Err) {
	noop := func() {}

	if ctx.ContentType() != binding.MIMEMultipartPOSTForm {
		return nil, noop, nil
	}

	fh, err := ctx.FormFile(imageFormField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, noop, nil
		}

		return nil, noop, response.ErrBadRequest(err)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, noop, response.ErrBadRequest(fmt.Errorf("fh.Open -> %w", err))
	}

	img := &service.ImageUpload{
		Filename: fh.Filename,
		Size:     fh.Size,
		Body:     f,
	}

	return img, func() { _ = f.Close() }, nil
}
