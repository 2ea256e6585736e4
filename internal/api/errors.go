package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"portal/pkg/logger"
	"portal/pkg/serrors"
)

// errorBody is the JSON error envelope returned by every failing endpoint.
type errorBody struct {
	Error  string                 `json:"error"`
	Fields []serrors.FieldProblem `json:"fields,omitempty"`
}

// httpStatus maps a semantic error kind to its HTTP status code.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, serrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, serrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, serrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, serrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, serrors.ErrCapacityExceeded), errors.Is(err, serrors.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, serrors.ErrPersistence):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// httpErrorHandler translates errors bubbling out of handlers into the JSON
// error envelope. Persistence and unknown failures are logged with their
// cause but surfaced as a generic try-again message.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		_ = c.JSON(httpErr.Code, errorBody{Error: http.StatusText(httpErr.Code)})

		return
	}

	status := httpStatus(err)
	body := errorBody{Error: err.Error(), Fields: serrors.FieldsOf(err)}

	if status >= http.StatusInternalServerError {
		logger.Error(c.Request().Context(), err.Error())
		body.Error = "temporary failure, please try again"
	}

	_ = c.JSON(status, body)
}
