package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// peekClaims reads role and expiry out of the stored session token
// without verifying the signature. Only the backend can verify; the
// client uses the claims purely to skip probes that cannot succeed.
func peekClaims(token string) (role string, expired bool, readable bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return "", false, false
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", false, false
	}
	role, _ = claims["role"].(string)
	if exp, expErr := claims.GetExpirationTime(); expErr == nil && exp != nil {
		expired = exp.Before(time.Now())
	}
	return role, expired, true
}
