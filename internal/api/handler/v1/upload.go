package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sphenegem/gem-inventory-api/internal/api/handler/v1/response"
	"github.com/sphenegem/gem-inventory-api/internal/storage"
)

// UploadHandler serves gemstone images kept by the local store. With the s3
// driver image URLs are presigned and this route is not mounted.
type UploadHandler struct {
	store storage.ObjectStore
}

func NewUploadHandler(store storage.ObjectStore) *UploadHandler {
	return &UploadHandler{
		store: store,
	}
}

// HandleGetUpload godoc
// @Summary      Get an uploaded gemstone image
// @Tags         uploads
// @Produce      image/png,image/jpeg,image/webp
// @Param        filename  path      string  true  "image file name"
// @Success      200  {file}    file
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /uploads/{filename} [get]
func (h *UploadHandler) HandleGetUpload(ctx *gin.Context) {
	filename := ctx.Param("filename")
	if !storage.IsImageKey(filename) {
		response.RenderErr(ctx, response.ErrNotFound("image", "name", filename))
		return
	}

	body, err := h.store.Get(ctx.Request.Context(), filename)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("image", "name", filename))
			return
		}

		err = fmt.Errorf("v1.HandleGetUpload -> h.store.Get -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}
	defer body.Close()

	ctx.DataFromReader(http.StatusOK, -1, storage.ContentType(filename), body, map[string]string{
		"Cache-Control": "public, max-age=86400",
	})
}
