package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// expiryLeeway treats a token expiring imminently as already expired so a
// call made with it does not race the server-side cutoff.
const expiryLeeway = 30 * time.Second

// tokenExpired inspects the access token's exp claim without verifying the
// signature; the client never validates server tokens, it only decides
// whether a refresh is needed. Undecodable tokens count as expired. A token
// without an exp claim never expires client-side.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return true
	}
	if exp == nil {
		return false
	}
	return !now.Add(expiryLeeway).Before(exp.Time)
}
