// Package authctx carries the authenticated principal through the request
// context. The gate middleware writes it; handlers and role checks read it.
package authctx

import (
	"github.com/labstack/echo/v4"

	"atelier/internal/model"
)

const userKey = "authctx.user"

// SetCurrentUser attaches the authenticated user to the request.
func SetCurrentUser(c echo.Context, user *model.User) {
	c.Set(userKey, user)
}

// CurrentUser returns the authenticated user. Calling it on a route that is
// not behind the authentication gate is a programming error and panics.
func CurrentUser(c echo.Context) *model.User {
	user, ok := c.Get(userKey).(*model.User)
	if !ok || user == nil {
		panic("authctx: CurrentUser called without the authentication gate")
	}
	return user
}
