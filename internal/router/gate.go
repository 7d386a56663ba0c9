package router

import (
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"atelier/internal/auth"
	"atelier/internal/authctx"
	apperrors "atelier/internal/errors"
	"atelier/internal/repository"
)

// Authenticate verifies the bearer token in the Authorization header. A
// missing, malformed, expired, or tampered token aborts with 401 before any
// handler runs.
func Authenticate(jwtService *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:  jwtService.Secret(),
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return &auth.Claims{}
		},
		ErrorHandler: func(c echo.Context, err error) error {
			he := apperrors.MapErrorToHTTP(apperrors.ErrUnauthenticated)
			return c.JSON(he.StatusCode, he.ToErrorResponse())
		},
	})
}

// LoadUser resolves the verified claims to the credential record (hash never
// serialized) and attaches it to the request context.
func LoadUser(users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return respondGateError(c, apperrors.ErrUnauthenticated)
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return respondGateError(c, apperrors.ErrUnauthenticated)
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil {
				return respondGateError(c, apperrors.ErrUnauthenticated)
			}

			authctx.SetCurrentUser(c, user)
			return next(c)
		}
	}
}

// RequireAdmin rejects non-admin principals. It must run after LoadUser;
// running it standalone is a programming error and panics via authctx.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !authctx.CurrentUser(c).IsAdmin() {
				return respondGateError(c, apperrors.ErrForbidden)
			}
			return next(c)
		}
	}
}

func respondGateError(c echo.Context, err error) error {
	he := apperrors.MapErrorToHTTP(err)
	return c.JSON(he.StatusCode, he.ToErrorResponse())
}
