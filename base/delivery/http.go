package delivery

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/crossbind/goapi/domain"
	"github.com/crossbind/goapi/domain/binding"
)

// ErrorResponse is the body of every failed request: a stable machine
// readable kind plus a human readable message.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// MakeJsonResp writes data as the response body. When data is an error the
// status and error kind are derived from the error's taxonomy instead of the
// suggested status.
func MakeJsonResp(c echo.Context, status int, data interface{}) error {
	if err, ok := data.(error); ok {
		status, kind := classify(err, status)
		return c.JSON(status, ErrorResponse{
			Error:   kind,
			Message: err.Error(),
		})
	}
	return c.JSON(status, data)
}

func classify(err error, fallback int) (int, string) {
	var notOwner *binding.NotOwnerError
	switch {
	case errors.Is(err, domain.ErrMissingFields):
		return http.StatusBadRequest, "MissingFields"
	case errors.Is(err, domain.ErrUnsupportedChain):
		return http.StatusBadRequest, "UnsupportedChain"
	case errors.Is(err, domain.ErrInvalidEnsName):
		return http.StatusBadRequest, "InvalidEnsName"
	case errors.Is(err, domain.ErrInvalidSignature):
		return http.StatusBadRequest, "InvalidSignature"
	case errors.Is(err, domain.ErrInvalidNonce):
		return http.StatusBadRequest, "InvalidNonce"
	case errors.Is(err, domain.ErrEmptyAddress):
		return http.StatusBadRequest, "EmptyAddress"
	case errors.Is(err, domain.ErrEmptyChainId):
		return http.StatusBadRequest, "EmptyChainId"
	case errors.Is(err, domain.ErrBadParamInput):
		return http.StatusBadRequest, "BadRequest"
	case errors.As(err, &notOwner):
		return http.StatusForbidden, "NotOwner"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NotFound"
	}
	if fallback < 400 {
		fallback = http.StatusInternalServerError
	}
	return fallback, "InternalError"
}
