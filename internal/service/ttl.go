package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainauth "github.com/target/storefront-admin/internal/domain/auth"
)

// expiredGrace is how long a credential whose token already expired is kept,
// so the next authorized call can still observe the 401.
const expiredGrace = time.Minute

// TTLFunc derives the lifetime of a write from the values being written.
// A non-positive result means no expiry.
type TTLFunc func(values map[string]string) time.Duration

// FixedTTL returns a TTLFunc that always yields d.
func FixedTTL(d time.Duration) TTLFunc {
	return func(map[string]string) time.Duration { return d }
}

// TokenTTL bounds persisted credentials by the token's own expiry when the
// token is a JWT carrying exp, and by maxTTL otherwise. The signature is not
// verified; only the backend can do that.
func TokenTTL(maxTTL time.Duration, now func() time.Time) TTLFunc {
	if now == nil {
		now = time.Now
	}
	parser := jwt.NewParser()
	return func(values map[string]string) time.Duration {
		token := values[domainauth.TokenKey]
		if token == "" {
			return maxTTL
		}
		claims := jwt.MapClaims{}
		if _, _, err := parser.ParseUnverified(token, claims); err != nil {
			return maxTTL
		}
		exp, err := claims.GetExpirationTime()
		if err != nil || exp == nil {
			return maxTTL
		}
		left := exp.Sub(now())
		switch {
		case left <= 0:
			return expiredGrace
		case maxTTL > 0 && left > maxTTL:
			return maxTTL
		default:
			return left
		}
	}
}
