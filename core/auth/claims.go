package auth

import (
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/ucvirtual/horario/core"
)

// Claims is the payload of the backend's access tokens:
// {sub, user_id, rol, exp, type}.
type Claims struct {
	jwt.StandardClaims
	UserID int    `json:"user_id"`
	Role   string `json:"rol"`
	Type   string `json:"type"` // access | refresh
}

func (c *Claims) Expiry() time.Time {
	if c.ExpiresAt == 0 {
		return time.Time{}
	}
	return time.Unix(c.ExpiresAt, 0)
}

// DecodeToken recovers the claims from an access token. The client holds no
// signing key, so the signature is not verified here; the backend rejects
// forged tokens on every call anyway.
func DecodeToken(token string) (*Claims, error) {
	claims := new(Claims)
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return nil, core.ErrMalformedToken
	}
	if claims.Subject == "" && claims.UserID == 0 {
		return nil, core.ErrMalformedToken
	}
	return claims, nil
}
