package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeOverSell           = "OVER_SELL"
	CodeConflict           = "CONFLICT"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeInternal           = "INTERNAL_ERROR"
)

// Err is the body of every failed request.
type Err struct {
	Err            error  `json:"-"`
	HTTPStatusCode int    `json:"-"`
	Code           string `json:"code"`
	Message        string `json:"message"`
	RequestID      string `json:"request_id,omitempty"`
}

func (e *Err) Error() string {
	if e.Err == nil {
		return e.Message
	}

	return e.Err.Error()
}

// RenderErr aborts the request with e. Server errors are logged with the
// wrapped cause; the client only sees the opaque message.
func RenderErr(ctx *gin.Context, e *Err) {
	e.RequestID = requestid.Get(ctx)

	if e.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("request_id", e.RequestID),
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.FullPath()),
			zap.Error(e.Err),
		)
	}

	ctx.AbortWithStatusJSON(e.HTTPStatusCode, e)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		Code:           CodeValidation,
		Message:        err.Error(),
	}
}

func ErrNotFound(resource, field string, value any) *Err {
	return &Err{
		Err:            errors.New("not found"),
		HTTPStatusCode: http.StatusNotFound,
		Code:           CodeNotFound,
		Message:        fmt.Sprintf("%s with %s %v not found", resource, field, value),
	}
}

func ErrOverSell(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusConflict,
		Code:           CodeOverSell,
		Message:        err.Error(),
	}
}

func ErrConflict(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusConflict,
		Code:           CodeConflict,
		Message:        err.Error(),
	}
}

func ErrWrongCredentials(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusUnauthorized,
		Code:           CodeInvalidCredentials,
		Message:        "invalid username or password",
	}
}

func ErrInvalidToken(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusUnauthorized,
		Code:           CodeInvalidToken,
		Message:        "missing, invalid or expired token",
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		Code:           CodeInternal,
		Message:        "internal server error",
	}
}
