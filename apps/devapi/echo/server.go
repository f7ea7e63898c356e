// Package echoapi is an in-memory Learn Hub backend for local development and tests.
package echoapi

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/Rodert/learn-hub/core"
)

// BasePath is where the API is mounted.
const BasePath = "/api"

type (
	Options struct {
		Address            string
		Debug              bool
		DisableReqLogs     bool
		SecretKey          string
		JWTExpirationDelta time.Duration
		Store              *Store
		Logger             core.Logger
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts Options
		app  *echo.Echo
		auth *authenticator
	}
)

var _ Server = (*server)(nil)

func NewServer(opts Options) Server {
	if opts.Store == nil {
		opts.Store = NewStore()
	}
	if opts.Logger == nil {
		opts.Logger = core.NopLogger{}
	}
	if opts.JWTExpirationDelta <= 0 {
		opts.JWTExpirationDelta = 24 * time.Hour
	}
	s := &server{
		opts: opts,
		app:  echo.New(),
		auth: newAuthenticator([]byte(opts.SecretKey), opts.JWTExpirationDelta),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV mode
	if !s.opts.Debug {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger)
	s.app.Debug = s.opts.Debug

	s.app.GET("/", home)

	api := s.app.Group(BasePath)
	api.POST("/auth/login", s.login)

	authed := api.Group("", middleware.JWTWithConfig(s.auth.jwtConfig()))
	registerUserAPI(authed, s.opts.Store)
	registerRoleAPI(authed, s.opts.Store)
	registerMaterialAPI(authed, s.opts.Store)
	registerQuestionAPI(authed, s.opts.Store)
	registerExamAPI(authed, s.opts.Store)
	registerCourseAPI(authed, s.opts.Store)
	registerProgressAPI(authed, s.opts.Store)
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

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Learn Hub dev API")
}
