// Package guard decides, per navigation, whether the current session may view
// a page and where to redirect otherwise.
package guard

import (
	"context"
	"errors"
	"sync"

	"github.com/ucvirtual/horario/core"
	"github.com/ucvirtual/horario/core/session"
	"github.com/ucvirtual/horario/core/user"
)

// State is the outcome of a navigation check.
type State int

const (
	Checking State = iota // session present, validation still in flight
	Allowed
	Denied
	RedirectToLogin
)

func (s State) String() string {
	switch s {
	case Checking:
		return "checking"
	case Allowed:
		return "allowed"
	case Denied:
		return "denied"
	case RedirectToLogin:
		return "redirect-to-login"
	}
	return "?"
}

const (
	LoginPath        = "/login"
	UnauthorizedPath = "/unauthorized"
)

// landing is the default page per role after login.
var landing = map[user.Role]string{
	user.RoleAdmin:   "/admin",
	user.RoleTeacher: "/docente",
	user.RoleStudent: "/home",
}

// Landing returns the post-login landing page for a role.
func Landing(role user.Role) string {
	if path, ok := landing[role]; ok {
		return path
	}
	return "/home"
}

type Decision struct {
	State    State
	Redirect string // target page for Denied / RedirectToLogin
	Reason   string
}

// Route declares a page and the roles allowed to view it. An empty role set
// admits any authenticated user.
type Route struct {
	Path  string
	Roles []user.Role
}

func (r Route) allows(role user.Role) bool {
	if len(r.Roles) == 0 {
		return true
	}
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// DefaultRoutes is the app's static route table.
var DefaultRoutes = []Route{
	{Path: "/home"},
	{Path: "/horario"},
	{Path: "/eventos"},
	{Path: "/docente", Roles: []user.Role{user.RoleTeacher, user.RoleAdmin}},
	{Path: "/docente/restricciones", Roles: []user.Role{user.RoleTeacher, user.RoleAdmin}},
	{Path: "/admin", Roles: []user.Role{user.RoleAdmin}},
	{Path: "/admin/users", Roles: []user.Role{user.RoleAdmin}},
	{Path: "/admin/restricciones", Roles: []user.Role{user.RoleAdmin}},
}

// SessionValidator confirms the stored token with the backend; the auth
// gateway implements it.
type SessionValidator interface {
	Validate(ctx context.Context) (user.User, error)
}

// Guard checks navigations against the route table. The backend round-trip
// runs at most once per token (single-flight); navigations arriving while it
// is in flight see Checking so protected content never flashes unvalidated.
type Guard struct {
	store  *session.Store
	auth   SessionValidator
	routes map[string]Route

	mutex  sync.Mutex
	checks map[string]*check // keyed by token
}

type check struct {
	done chan struct{}
	err  error
}

func New(store *session.Store, auth SessionValidator, routes []Route) *Guard {
	table := make(map[string]Route, len(routes))
	for _, r := range routes {
		table[r.Path] = r
	}
	return &Guard{
		store:  store,
		auth:   auth,
		routes: table,
		checks: make(map[string]*check),
	}
}

// Resolve answers a navigation request without blocking. If the session has
// not been validated yet it kicks off the round-trip and reports Checking.
func (g *Guard) Resolve(path string) Decision {
	sess, ok := g.store.Get()
	if !ok {
		return Decision{State: RedirectToLogin, Redirect: LoginPath}
	}

	route, ok := g.routes[path]
	if !ok {
		return Decision{State: Denied, Redirect: UnauthorizedPath, Reason: "unknown route"}
	}

	c := g.ensureCheck(sess.Token)
	select {
	case <-c.done:
	default:
		return Decision{State: Checking}
	}
	return g.decide(sess, route, c.err)
}

// ResolveWait behaves like Resolve but blocks until validation settles.
func (g *Guard) ResolveWait(ctx context.Context, path string) Decision {
	sess, ok := g.store.Get()
	if !ok {
		return Decision{State: RedirectToLogin, Redirect: LoginPath}
	}

	route, ok := g.routes[path]
	if !ok {
		return Decision{State: Denied, Redirect: UnauthorizedPath, Reason: "unknown route"}
	}

	c := g.ensureCheck(sess.Token)
	select {
	case <-c.done:
	case <-ctx.Done():
		return Decision{State: Checking}
	}
	return g.decide(sess, route, c.err)
}

// ResolvePublic is the inverse check for pages like /login: an authenticated
// user is sent to their role's landing page instead.
func (g *Guard) ResolvePublic() Decision {
	if sess, ok := g.store.Get(); ok {
		return Decision{State: Denied, Redirect: Landing(sess.Role), Reason: "already authenticated"}
	}
	return Decision{State: Allowed}
}

func (g *Guard) decide(sess session.Session, route Route, checkErr error) Decision {
	if checkErr != nil {
		if errors.Is(checkErr, core.ErrSessionExpired) {
			return Decision{State: RedirectToLogin, Redirect: LoginPath}
		}
		return Decision{State: Denied, Redirect: UnauthorizedPath, Reason: "session validation unavailable"}
	}
	if !route.allows(sess.Role) {
		return Decision{State: Denied, Redirect: UnauthorizedPath, Reason: "role not permitted"}
	}
	return Decision{State: Allowed}
}

// ensureCheck returns the validation outcome holder for a token, starting the
// round-trip on first sight.
func (g *Guard) ensureCheck(token string) *check {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	if c, ok := g.checks[token]; ok {
		return c
	}
	c := &check{done: make(chan struct{})}
	g.checks[token] = c
	go g.runCheck(token, c)
	return c
}

func (g *Guard) runCheck(token string, c *check) {
	_, err := g.auth.Validate(context.Background())
	c.err = err
	close(c.done)

	// A transient failure must not pin the token as bad: forget it so the
	// next navigation retries. Same when the session changed mid-flight;
	// the stale result is simply discarded.
	if errors.Is(err, core.ErrNetworkUnavailable) {
		g.forget(token)
		return
	}
	if sess, ok := g.store.Get(); !ok || sess.Token != token {
		g.forget(token)
	}
}

func (g *Guard) forget(token string) {
	g.mutex.Lock()
	delete(g.checks, token)
	g.mutex.Unlock()
}
