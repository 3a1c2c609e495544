package auth

import (
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"communityhub/internal/httperr"
	"communityhub/internal/model"
)

// Identity is the authenticated caller derived from a verified token.
type Identity struct {
	UserID   uuid.UUID
	Username string
	Role     model.Role
}

// IsAdmin reports whether the caller carries the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == model.RoleAdmin
}

// CanModify is the single ownership-or-admin decision used before every
// mutating operation on an owned resource.
func CanModify(caller Identity, ownerID uuid.UUID) bool {
	return caller.IsAdmin() || caller.UserID == ownerID
}

// FromContext extracts the caller identity placed in the context by the JWT
// middleware.
func FromContext(c echo.Context) (Identity, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return Identity{}, httperr.ErrUnauthenticated
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return Identity{}, httperr.ErrUnauthenticated
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return Identity{}, httperr.ErrUnauthenticated
	}
	return Identity{
		UserID:   userID,
		Username: claims.Username,
		Role:     claims.Role,
	}, nil
}
