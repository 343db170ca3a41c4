package middleware

import (
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"geotrack/internal/auth"
)

// JWT returns bearer-token middleware that validates tokens with the given
// service and stores the resulting *auth.Claims under the "user" context key.
// Requests with a missing, malformed, expired or identity-less token are
// rejected with 401 before reaching a handler.
func JWT(jwtService *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			return jwtService.Validate(tokenString)
		},
		// A missing header is 401 like any other token failure, not the
		// library's default 400.
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid token")
		},
	})
}

// CurrentClaims extracts the claims stored by the JWT middleware.
func CurrentClaims(c echo.Context) (*auth.Claims, error) {
	claims, ok := c.Get("user").(*auth.Claims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return claims, nil
}

// AdminOnly rejects requests whose token does not carry the Admin role.
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := CurrentClaims(c)
		if err != nil {
			return err
		}
		if !claims.IsAdmin() {
			return echo.NewHTTPError(http.StatusForbidden, "access denied")
		}
		return next(c)
	}
}
