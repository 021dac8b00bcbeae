package response

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Err struct {
	statusCode int

	RequestID  string `json:"request_id"`
	ErrorCode  int    `json:"error_code"`
	ErrorMsg   string `json:"error_msg"`
	InnerError error  `json:"-"`
}

func (e *Err) Error() string {
	return fmt.Sprintf("error_code=%v, error_msg=%v", e.ErrorCode, e.ErrorMsg)
}

// RenderErr writes the error response. Server-side errors are logged
// with the request id; the client only sees the sanitized message.
func RenderErr(ctx *gin.Context, err *Err) {
	err.RequestID = requestid.Get(ctx)

	if err.statusCode >= http.StatusInternalServerError {
		zap.L().Error("server error",
			zap.String("request_id", err.RequestID),
			zap.Error(err.InnerError),
		)
	}

	ctx.AbortWithStatusJSON(err.statusCode, err)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		statusCode: http.StatusBadRequest,
		ErrorCode:  http.StatusBadRequest,
		ErrorMsg:   err.Error(),
		InnerError: err,
	}
}

func ErrUnauthorized(msg string) *Err {
	return &Err{
		statusCode: http.StatusUnauthorized,
		ErrorCode:  http.StatusUnauthorized,
		ErrorMsg:   msg,
	}
}

func ErrWrongCredentials(err error) *Err {
	return &Err{
		statusCode: http.StatusUnauthorized,
		ErrorCode:  http.StatusUnauthorized,
		ErrorMsg:   "wrong credentials",
		InnerError: err,
	}
}

func ErrForbidden(msg string) *Err {
	return &Err{
		statusCode: http.StatusForbidden,
		ErrorCode:  http.StatusForbidden,
		ErrorMsg:   msg,
	}
}

func ErrNotFound(resource, key string, value any) *Err {
	return &Err{
		statusCode: http.StatusNotFound,
		ErrorCode:  http.StatusNotFound,
		ErrorMsg:   fmt.Sprintf("%v not found by %v (%v)", resource, key, value),
	}
}

func ErrConflict(err error) *Err {
	return &Err{
		statusCode: http.StatusConflict,
		ErrorCode:  http.StatusConflict,
		ErrorMsg:   err.Error(),
		InnerError: err,
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		statusCode: http.StatusInternalServerError,
		ErrorCode:  http.StatusInternalServerError,
		ErrorMsg:   "internal server error",
		InnerError: err,
	}
}
