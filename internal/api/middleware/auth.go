package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sphenegem/gem-inventory-api/internal/api/handler/v1/response"
	"github.com/sphenegem/gem-inventory-api/internal/pkg/jwthelper"
)

// AdminIDKey is the gin context key holding the authenticated admin id.
const AdminIDKey = "adminID"

var errMissingBearer = errors.New("authorization header must be 'Bearer <token>'")

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT rejects the request before any handler runs unless it carries a
// valid bearer token.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			response.RenderErr(ctx, response.ErrInvalidToken(errMissingBearer))
			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, strings.TrimSpace(token))
		if err != nil {
			response.RenderErr(ctx, response.ErrInvalidToken(err))
			return
		}

		ctx.Set(AdminIDKey, claims.AdminID)
		ctx.Next()
	}
}

// AdminID returns the id stored by VerifyJWT.
func AdminID(ctx *gin.Context) (uint, bool) {
	id, ok := ctx.Get(AdminIDKey)
	if !ok {
		return 0, false
	}
	adminID, ok := id.(uint)

	return adminID, ok && adminID != 0
}
