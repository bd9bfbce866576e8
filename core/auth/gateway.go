package auth

import (
	"context"
	"errors"
	"time"

	"github.com/ucvirtual/horario/core"
	"github.com/ucvirtual/horario/core/session"
	"github.com/ucvirtual/horario/core/user"
)

type (
	// Repository is the backend auth surface.
	Repository interface {
		// Login exchanges credentials for an access token.
		Login(ctx context.Context, email, password string) (string, error)
		// Logout invalidates the server-side session, if the backend tracks one.
		Logout(ctx context.Context) error
		// Me returns the authenticated user for the current token.
		Me(ctx context.Context) (user.User, error)
	}

	// Gateway performs login/logout/validate and owns all writes to the
	// session store.
	Gateway struct {
		repo  Repository
		store *session.Store
		log   core.Logger
	}
)

func NewGateway(repo Repository, store *session.Store, log core.Logger) *Gateway {
	return &Gateway{repo: repo, store: store, log: log}
}

// Credentials is the login form.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"contrasena" validate:"required"`
}

func (c *Credentials) Validate() error {
	c.Email = core.CleanString(c.Email, true /* lower */)
	return core.TranslateError(core.Validate.Struct(c))
}

// Login authenticates against the backend, decodes the returned token and
// stores the resulting session. The store is left untouched on any failure.
func (g *Gateway) Login(ctx context.Context, email, password string) (session.Session, error) {
	creds := Credentials{Email: email, Password: password}
	if err := creds.Validate(); err != nil {
		return session.Session{}, err
	}

	token, err := g.repo.Login(ctx, creds.Email, creds.Password)
	if err != nil {
		if errors.Is(err, core.ErrNetworkUnavailable) {
			return session.Session{}, err
		}
		var vErr *core.ValidationError
		if errors.As(err, &vErr) || errors.Is(err, core.ErrSessionExpired) || errors.Is(err, core.ErrNotFound) {
			// any 4xx on login means the credentials were not accepted
			return session.Session{}, core.ErrInvalidCredentials
		}
		return session.Session{}, err
	}

	claims, err := DecodeToken(token)
	if err != nil {
		return session.Session{}, err
	}
	role, known := user.NormalizeRole(claims.Role)
	if !known {
		g.log.Warn("login: unknown role in token", claims.Role)
	}

	sess := session.Session{
		Token:  token,
		UserID: claims.UserID,
		Email:  claims.Subject,
		Role:   role,
		Expiry: claims.Expiry(),
	}
	if err := g.store.Set(sess); err != nil {
		return session.Session{}, err
	}
	return sess, nil
}

// Logout clears the local session. The backend is notified best-effort; local
// clearing succeeds even when the network call fails.
func (g *Gateway) Logout(ctx context.Context) {
	g.store.Clear()
	if err := g.repo.Logout(ctx); err != nil {
		g.log.Debug("logout: backend notification failed", err)
	}
}

// Validate asks the backend who the stored token belongs to. An expired or
// rejected token clears the store so the caller can redirect to login.
func (g *Gateway) Validate(ctx context.Context) (user.User, error) {
	sess, ok := g.store.Get()
	if !ok {
		return user.User{}, core.ErrSessionExpired
	}
	if sess.Expired(time.Now()) {
		g.store.Clear()
		return user.User{}, core.ErrSessionExpired
	}

	usr, err := g.repo.Me(ctx)
	if err != nil {
		if errors.Is(err, core.ErrNetworkUnavailable) {
			// cannot tell whether the token is still good; keep the session
			return user.User{}, err
		}
		g.store.Clear()
		return user.User{}, core.ErrSessionExpired
	}
	return usr, nil
}

// Session exposes the current session read-only.
func (g *Gateway) Session() (session.Session, bool) {
	return g.store.Get()
}
