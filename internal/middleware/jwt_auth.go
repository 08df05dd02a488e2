package middleware

import (
	"net/http"
	"strings"

	"github.com/flocknet/backend/internal/models"
	"github.com/flocknet/backend/internal/repositories"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const userContextKey = "user"

// JWTAuthMiddleware rejects requests without a valid, unrevoked JWT and
// stores the claims in the request context.
func JWTAuthMiddleware(secret string, tokens repositories.TokenRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := claimsFromRequest(c, secret, tokens)
			if err != nil {
				return err
			}
			if claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}
			c.Set(userContextKey, claims)
			return next(c)
		}
	}
}

// OptionalJWTAuthMiddleware resolves the caller's identity when a valid
// token is present but lets anonymous requests through. Used on public
// read routes so responses can carry caller-specific flags.
func OptionalJWTAuthMiddleware(secret string, tokens repositories.TokenRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := claimsFromRequest(c, secret, tokens)
			if err == nil && claims != nil {
				c.Set(userContextKey, claims)
			}
			return next(c)
		}
	}
}

// claimsFromRequest parses the bearer token if one is present. A nil
// result with nil error means no Authorization header was sent.
func claimsFromRequest(c echo.Context, secret string, tokens repositories.TokenRepository) (*models.JwtCustomClaims, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, nil
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
	}

	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	if claims.ID != "" {
		revoked, err := tokens.IsTokenRevoked(claims.ID)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if revoked {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "Token has been revoked")
		}
	}

	return claims, nil
}
