package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/shieldsupport/backend/internal/errs"
	"github.com/shieldsupport/backend/internal/lib/token"
	"github.com/shieldsupport/backend/internal/server"
)

// AuthMiddleware validates bearer tokens and attaches the caller's identity
// to the Echo context under user_id, user_role and user_email.
type AuthMiddleware struct {
	server *server.Server
}

func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
	}
}

// RequireAuth rejects requests without a valid bearer token.
func (am *AuthMiddleware) RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := am.authenticate(c)
			if err != nil {
				return err
			}

			c.Set(UserIDKey, claims.Sub)
			c.Set(UserRoleKey, claims.Role)
			c.Set(UserEmailKey, claims.Email)

			return next(c)
		}
	}
}

// RequireAdmin rejects requests unless the token belongs to an admin.
func (am *AuthMiddleware) RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := am.authenticate(c)
			if err != nil {
				return err
			}

			if claims.Role != "admin" {
				return errs.NewForbiddenError("Administrator access required", true)
			}

			c.Set(UserIDKey, claims.Sub)
			c.Set(UserRoleKey, claims.Role)
			c.Set(UserEmailKey, claims.Email)

			return next(c)
		}
	}
}

// OptionalAuth attaches user context when a valid token is present but
// never rejects the request. Used on public routes whose responses widen
// for administrators.
func (am *AuthMiddleware) OptionalAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if claims, err := am.authenticate(c); err == nil {
				c.Set(UserIDKey, claims.Sub)
				c.Set(UserRoleKey, claims.Role)
				c.Set(UserEmailKey, claims.Email)
			}
			return next(c)
		}
	}
}

func (am *AuthMiddleware) authenticate(c echo.Context) (*token.Claims, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return nil, errs.NewUnauthorizedError("Missing authorization header", true)
	}

	tokenStr, found := strings.CutPrefix(header, "Bearer ")
	if !found || tokenStr == "" {
		return nil, errs.NewUnauthorizedError("Invalid authorization header", true)
	}

	claims, err := token.ParseValidate(am.server.Config.Auth.SecretKey, tokenStr)
	if err != nil {
		return nil, errs.NewUnauthorizedError("Invalid or expired token", true)
	}

	return claims, nil
}
