package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"communityhub/internal/httperr"
)

// RequireAdmin rejects callers without the admin role. Attach it to route
// groups so the role rule lives on the route declaration instead of being
// repeated inside each handler.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ident, err := FromContext(c)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, httperr.Response{Msg: httperr.ErrUnauthenticated.Error()})
		}
		if !ident.IsAdmin() {
			return c.JSON(http.StatusForbidden, httperr.Response{Msg: "admin access required"})
		}
		return next(c)
	}
}
