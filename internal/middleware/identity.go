package middleware

// identity.go defines helper functions shared across middleware files and
// handlers. ExtractToken implements the two-source token lookup (header
// first, cookie fallback) used by both the hard guard and the optional
// identity attached to public signature submissions.

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/openpetition/petition-api/internal/utils"
)

// ExtractToken returns the raw access token carried by the request, looking
// at the Authorization header first and the access_token cookie second. The
// second return value is false when neither source holds a token.
func ExtractToken(c echo.Context) (string, bool) {
	auth := c.Request().Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
		if raw != "" {
			return raw, true
		}
	}
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}
	return "", false
}

// OptionalPrincipal attempts to derive a principal from the request without
// rejecting it. Public endpoints (signature submission) use this to attach
// a signer id when the guest happens to be logged in. The second return
// value is false for anonymous or unverifiable requests.
func OptionalPrincipal(c echo.Context, secret, alg string) (utils.Principal, bool) {
	raw, ok := ExtractToken(c)
	if !ok {
		return utils.Principal{}, false
	}
	p, err := utils.VerifyAccessToken(secret, alg, raw)
	if err != nil {
		return utils.Principal{}, false
	}
	return p, true
}
