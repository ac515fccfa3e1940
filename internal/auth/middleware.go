package auth

import (
	"errors"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// identityContextKey is where the middleware stores the verified *Claims.
const identityContextKey = "identity"

// Identity returns middleware that authenticates every request on the
// group. A missing or non-Bearer Authorization header and a failed
// verification both terminate the request with 401; the expired vs
// tampered distinction stays in logs only.
func Identity(jwtService *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: identityContextKey,
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			claims, err := jwtService.Verify(tokenString)
			if err != nil {
				return nil, err
			}
			return claims, nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, ErrTokenExpired) || errors.Is(err, ErrTokenInvalid) {
				c.Logger().Infof("token rejected: %v", err)
				return echo.NewHTTPError(http.StatusUnauthorized, map[string]string{
					"error": "Unauthorized: Invalid token",
				})
			}
			return echo.NewHTTPError(http.StatusUnauthorized, map[string]string{
				"error": "Unauthorized: No token provided",
			})
		},
	})
}

// CurrentClaims returns the identity attached by Identity, or nil when
// the request was not authenticated.
func CurrentClaims(c echo.Context) *Claims {
	claims, _ := c.Get(identityContextKey).(*Claims)
	return claims
}
