package session

import (
	"time"

	"github.com/ucvirtual/horario/core/user"
)

// Session is the authenticated state of the app: the bearer token and the
// identity decoded from it. It is owned by the Store; everything else reads it.
type Session struct {
	Token  string    `json:"token"`
	UserID int       `json:"user_id"`
	Email  string    `json:"email"`
	Role   user.Role `json:"role"`
	Expiry time.Time `json:"expiry"`
}

func (s Session) Expired(now time.Time) bool {
	return !s.Expiry.IsZero() && now.After(s.Expiry)
}
