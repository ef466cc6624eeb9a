package middleware

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

// Timeout puts a deadline on the request context. Handlers pass that
// context down to the database and object store, so a slow call fails
// instead of holding the connection.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if d <= 0 {
			ctx.Next()
			return
		}

		c, cancel := context.WithTimeout(ctx.Request.Context(), d)
		defer cancel()

		ctx.Request = ctx.Request.WithContext(c)
		ctx.Next()
	}
}
