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
	"github.com/sphenegem/gem-inventory-api/internal/service"
)

type AuthService interface {
	Authenticate(ctx context.Context, creds domain.Credentials) (domain.Session, error)
	ChangePassword(ctx context.Context, adminID uint, current, next string) error
	GetAdmin(ctx context.Context, id uint) (domain.Admin, error)
}

type AuthHandler struct {
	svc AuthService
}

func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{
		svc: svc,
	}
}

// HandleLogin godoc
// @Summary      Login an admin
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request   body      request.LoginRequest true "request body"
// @Success      200      {object}   response.LoginResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	session, err := h.svc.Authenticate(ctx.Request.Context(), domain.Credentials{
		Username:  req.Username,
		Password:  req.Password,
		UserAgent: ctx.Request.UserAgent(),
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))

			return
		}

		err = fmt.Errorf("v1.HandleLogin -> h.svc.Authenticate -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
		Admin:     session.Admin,
	})
}

// HandleChangePassword godoc
// @Summary      Change the password of the logged in admin
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request   body      request.ChangePasswordRequest true "request body"
// @Success      200      {object}   response.MessageResponse
// @Failure      400      {object}   response.Err
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /auth/change-password [post]
// @Security BearerAuth
func (h *AuthHandler) HandleChangePassword(ctx *gin.Context) {
	adminID, respErr := getAdminIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	req := request.ChangePasswordRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	err := h.svc.ChangePassword(ctx.Request.Context(), adminID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWrongPassword):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrAdminNotFound):
			response.RenderErr(ctx, response.ErrInvalidToken(err))
		default:
			err = fmt.Errorf("v1.HandleChangePassword -> h.svc.ChangePassword -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.MessageResponse{Message: "password changed"})
}

// HandleGetCurrentAdmin godoc
// @Summary      Get the logged in admin
// @Tags         auth
// @Produce      json
// @Success      200      {object}   domain.Admin
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /admins/me [get]
// @Security BearerAuth
func (h *AuthHandler) HandleGetCurrentAdmin(ctx *gin.Context) {
	adminID, respErr := getAdminIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	admin, err := h.svc.GetAdmin(ctx.Request.Context(), adminID)
	if err != nil {
		if errors.Is(err, service.ErrAdminNotFound) {
			response.RenderErr(ctx, response.ErrInvalidToken(err))
			return
		}

		err = fmt.Errorf("v1.HandleGetCurrentAdmin -> h.svc.GetAdmin -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, admin)
}
