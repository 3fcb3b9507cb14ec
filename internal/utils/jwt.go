package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// Token verification failures are collapsed into three sentinel values so
// that callers never have to inspect library-specific error types. All
// three map to HTTP 401 at the edge; the distinction exists for logging
// and for tests that pin down the exact failure mode.
var (
	// ErrTokenExpired is returned when the token signature is valid but
	// the exp claim lies in the past.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid is returned when the signature does not verify,
	// including tokens signed with a different secret or a different
	// algorithm than the one configured.
	ErrTokenInvalid = errors.New("token invalid")
	// ErrTokenMalformed is returned when the token cannot be parsed or a
	// required claim (sub, uid, role) is absent.
	ErrTokenMalformed = errors.New("token malformed")
)

// Principal is the fixed-shape identity derived from a verified access
// token. Handlers receive it through the request context instead of a raw
// claims map, so a missing claim is caught once at verification time
// rather than at every usage site.
type Principal struct {
	UserID   uint64 // numeric id of the authenticated user
	Username string // login name carried in the sub claim
	Role     string // free-text role; "Admin" unlocks moderation routes
}

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the serialized JWT string. Exp stores the
// expiration timestamp as a time.Time. Access tokens are short-lived and
// presented in the Authorization header or the access_token cookie.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// signingMethod maps a configured algorithm name to its jwt implementation.
// Only the HMAC family is supported; config.Load rejects anything else.
func signingMethod(alg string) *jwt.SigningMethodHMAC {
	switch alg {
	case "HS384":
		return jwt.SigningMethodHS384
	case "HS512":
		return jwt.SigningMethodHS512
	default:
		return jwt.SigningMethodHS256
	}
}

// NewAccessToken builds and signs a JWT for a user. It takes the signing
// secret and algorithm, the username, the user's id and role, and a TTL in
// minutes. The JWT carries the subject (sub = username), the numeric user
// id (uid), the role, expiration (exp) and issued at (iat).
func NewAccessToken(secret, alg, username string, userID uint64, role string, ttlMin int) (AccessToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":  username,
		"uid":  userID,
		"role": role,
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(signingMethod(alg), claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// VerifyAccessToken parses and validates a serialized token and returns the
// embedded Principal. The parser is pinned to the configured algorithm, so
// a token signed with any other method fails with ErrTokenInvalid even if
// its signature would verify under that other method.
func VerifyAccessToken(secret, alg, raw string) (Principal, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{signingMethod(alg).Alg()}))
	tok, err := parser.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Principal{}, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Principal{}, ErrTokenMalformed
		default:
			return Principal{}, ErrTokenInvalid
		}
	}
	if !tok.Valid {
		return Principal{}, ErrTokenInvalid
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, ErrTokenMalformed
	}
	username, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	uidFloat, uidOK := claims["uid"].(float64)
	if username == "" || role == "" || !uidOK {
		return Principal{}, ErrTokenMalformed
	}
	return Principal{UserID: uint64(uidFloat), Username: username, Role: role}, nil
}
