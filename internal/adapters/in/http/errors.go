package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"orderflow/internal/pkg/errs"
)

// ErrorResponse is the uniform error body of the API.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// writeError maps core errors onto HTTP status codes. Validation errors
// are the caller's fault, conflicts signal a stale or illegal request,
// collaborator failures surface as a bad gateway.
func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrVersionIsInvalid):
		status = http.StatusBadRequest
	case errors.Is(err, errs.ErrPermissionDenied):
		status = http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrConflict),
		errors.Is(err, errs.ErrVersionConflict):
		status = http.StatusConflict
	case errors.Is(err, errs.ErrCollaboratorFailure):
		status = http.StatusBadGateway
	}

	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}
