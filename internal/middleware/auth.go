package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/openpetition/petition-api/internal/utils"
)

// AccessTokenCookie is the cookie consulted when no Authorization header is
// present. It carries the same JWT the API clients send as a bearer token
// and exists only for the browser flow.
const AccessTokenCookie = "access_token"

// Auth returns an Echo middleware implementing the access guard: it
// extracts a token from the Authorization header or the access_token
// cookie, verifies it against the configured secret and algorithm, and
// injects the resulting principal into the request context. Handlers read
// the identity via c.Get("user_id"), c.Get("username") and c.Get("role").
// Requests without a verifiable token are rejected with 401; no session
// state is kept, every request re-verifies independently.
func Auth(secret, alg string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := ExtractToken(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			p, err := utils.VerifyAccessToken(secret, alg, raw)
			if err != nil {
				// All verification failures (bad signature, wrong
				// algorithm, expiry, missing claims) collapse to 401.
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			c.Set("user_id", p.UserID)
			c.Set("username", p.Username)
			c.Set("role", p.Role)
			return next(c)
		}
	}
}
