package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"communityhub/internal/httperr"
)

// respondError translates a domain error at the boundary. Unexpected errors
// are logged server-side and surfaced as an opaque 500.
func respondError(c echo.Context, err error) error {
	status, body := httperr.MapToHTTP(err)
	if status == http.StatusInternalServerError {
		c.Logger().Error(err)
	}
	return c.JSON(status, body)
}

// bindAndValidate decodes the body and runs struct validation, writing the
// error response itself. Returns false when the request was rejected.
func bindAndValidate(c echo.Context, req interface{}) bool {
	if err := c.Bind(req); err != nil {
		_ = c.JSON(http.StatusBadRequest, httperr.Response{Msg: "invalid request body"})
		return false
	}
	if err := c.Validate(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
			}
			_ = c.JSON(http.StatusBadRequest, httperr.ValidationResponse{Errors: msgs})
			return false
		}
		_ = c.JSON(http.StatusBadRequest, httperr.Response{Msg: err.Error()})
		return false
	}
	return true
}

// parseFormUUID parses a form value as a UUID.
func parseFormUUID(c echo.Context, name string) (uuid.UUID, error) {
	return uuid.Parse(c.FormValue(name))
}

// paramUUID parses a path parameter as a UUID, writing the error response
// itself. Returns false when the parameter was malformed.
func paramUUID(c echo.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		_ = c.JSON(http.StatusBadRequest, httperr.Response{Msg: "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}
