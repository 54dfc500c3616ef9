package http

import (
	"errors"
	"net/http"

	"agrocredito/internal/domain"

	"github.com/labstack/echo/v4"
)

// statusFor maps the domain error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrConcurrentModification):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrPersistence):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// writeError renders err as ErrorResponse. Unknown errors are not echoed back to the client.
// Server-side failures are returned as *echo.HTTPError carrying err as the internal cause,
// so echo writes the same body and the request logger records the cause.
func writeError(c echo.Context, err error) error {
	code := statusFor(err)
	resp := ErrorResponse{Error: err.Error()}
	switch code {
	case http.StatusInternalServerError:
		resp.Error = "internal error"
		return echo.NewHTTPError(code, resp).SetInternal(err)
	case http.StatusServiceUnavailable:
		resp.Error = "storage unavailable, nothing was applied"
		resp.Retryable = true
		return echo.NewHTTPError(code, resp).SetInternal(err)
	}
	if errors.Is(err, domain.ErrConcurrentModification) {
		resp.Retryable = true
	}
	return c.JSON(code, resp)
}

func invalidBody(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
}

func validationFailed(c echo.Context, err error) error {
	return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation failed",
		Details: ToFieldErrors(err),
	})
}

// bindAndValidate is the Bind + Validate pair every mutating handler runs first.
// It writes the response itself and reports false when the request was rejected.
func bindAndValidate(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, invalidBody(c)
	}
	if err := c.Validate(req); err != nil {
		return false, validationFailed(c, err)
	}
	return true, nil
}
