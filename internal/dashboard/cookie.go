package dashboard

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// The session cookie value is "username|expiryUnix|hexmac" where the mac
// covers the first two fields. The dashboard keeps no session state; the
// cookie is the whole session.

var errBadCookie = errors.New("invalid session cookie")

func mac(key, payload string) string {
	m := hmac.New(sha256.New, []byte(key))
	m.Write([]byte(payload))
	return hex.EncodeToString(m.Sum(nil))
}

// SignCookie builds a signed session value for the given username that
// expires after expiryDays.
func SignCookie(key, username string, expiryDays int) (value string, expires time.Time) {
	expires = time.Now().UTC().Add(time.Duration(expiryDays) * 24 * time.Hour)
	payload := fmt.Sprintf("%s|%d", username, expires.Unix())
	return payload + "|" + mac(key, payload), expires
}

// VerifyCookie checks the signature and expiry of a session value and
// returns the embedded username.
func VerifyCookie(key, value string) (string, error) {
	parts := strings.Split(value, "|")
	if len(parts) != 3 {
		return "", errBadCookie
	}
	username, expStr, sig := parts[0], parts[1], parts[2]
	payload := username + "|" + expStr
	if !hmac.Equal([]byte(mac(key, payload)), []byte(sig)) {
		return "", errBadCookie
	}
	exp, err := strconv.ParseInt(expStr, 10, 64)
	if err != nil {
		return "", errBadCookie
	}
	if time.Now().UTC().Unix() > exp {
		return "", errBadCookie
	}
	return username, nil
}
