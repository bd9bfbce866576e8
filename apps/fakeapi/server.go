// fakeapi is a local stand-in for the scheduling backend, close enough for
// offline development and integration tests: same endpoints, same token
// format, same inconsistent field naming across resources.
package main

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/ucvirtual/horario/core"
)

type (
	Options struct {
		Address        string
		SecretKey      []byte
		TokenLifetime  time.Duration
		DisableReqLogs bool
	}

	Server interface {
		http.Handler
		Start() error
		Stop(ctx context.Context) error
	}

	server struct {
		opts  *Options
		app   *echo.Echo
		store *store
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options, st *store) Server {
	if opts.TokenLifetime == 0 {
		opts.TokenLifetime = time.Hour
	}
	s := &server{opts: opts, app: echo.New(), store: st}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	s.app.HTTPErrorHandler = appHTTPErrorHandler
	s.app.HideBanner = true

	api := s.app.Group("/api")
	api.POST("/auth/login", s.login)

	authed := api.Group("", s.requireAuth)
	authed.POST("/auth/logout", s.logout)
	authed.GET("/auth/me", s.me)

	authed.GET("/eventos", s.listEvents)
	authed.POST("/eventos", s.createEvent)
	authed.GET("/eventos/:id", s.getEvent)
	authed.PUT("/eventos/:id", s.updateEvent)
	authed.DELETE("/eventos/:id", s.deleteEvent)

	docente := authed.Group("/restricciones-horario/docente/mis-restricciones", s.requireRol("docente", "profesor"))
	docente.GET("", s.listMyRestrictions)
	docente.POST("", s.createMyRestriction)
	docente.PATCH("/:id", s.updateMyRestriction)
	docente.DELETE("/:id", s.deleteMyRestriction)

	admin := authed.Group("", s.requireRol("administrador", "admin"))
	admin.GET("/restricciones-horario", s.listAllRestrictions)
	admin.GET("/restricciones-horario/docente/:id", s.listDocenteRestrictions)
	admin.GET("/users", s.listUsers)
	admin.POST("/users", s.registerUser)
}

// claims matches the real backend's token payload.
type claims struct {
	jwt.StandardClaims
	UserID int    `json:"user_id"`
	Rol    string `json:"rol"`
	Type   string `json:"type"`
}

func (s *server) signToken(usr *fakeUser) (string, error) {
	now := time.Now()
	return jwt.NewWithClaims(jwt.SigningMethodHS256, &claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   usr.Email,
			ExpiresAt: now.Add(s.opts.TokenLifetime).Unix(),
			IssuedAt:  now.Unix(),
		},
		UserID: usr.ID,
		Rol:    usr.Rol,
		Type:   "access",
	}).SignedString(s.opts.SecretKey)
}

const contextUserKey = "user"

// requireAuth parses and verifies the bearer token and loads the user.
func (s *server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return errUnauthorized
		}
		cl := new(claims)
		_, err := jwt.ParseWithClaims(strings.TrimPrefix(header, "Bearer "), cl, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errUnauthorized
			}
			return s.opts.SecretKey, nil
		})
		if err != nil {
			return errUnauthorized
		}
		usr, ok := s.store.userByID(cl.UserID)
		if !ok || !usr.IsActive {
			return errUnauthorized
		}
		c.Set(contextUserKey, usr)
		return next(c)
	}
}

func (s *server) requireRol(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			usr := contextUser(c)
			for _, rol := range roles {
				if usr.Rol == rol {
					return next(c)
				}
			}
			return errForbidden
		}
	}
}

func contextUser(c echo.Context) *fakeUser {
	usr, _ := c.Get(contextUserKey).(*fakeUser)
	return usr
}

func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, errNotFound
	}
	return id, nil
}

func validateStruct(obj interface{}) error {
	return core.TranslateError(core.Validate.Struct(obj))
}

func (s *server) Start() error {
	return s.app.Start(s.opts.Address)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}
