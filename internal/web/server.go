// Package web serves the roster page over HTTP. Each page request mounts a
// fresh view: one backend fetch, rendered into one of three states.
package web

import (
	"context"
	"net/http"

	"studentroster/internal/diag"
	"studentroster/internal/roster"
	"studentroster/internal/student"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

type (
	// Fetcher lists the roster. *student.Client implements it.
	Fetcher interface {
		List(ctx context.Context) ([]student.Student, error)
	}

	Options struct {
		Address        string
		AdminURL       string
		Fetcher        Fetcher
		Logger         diag.Logger
		Debug          bool
		DisableReqLogs bool
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	if opts.Logger == nil {
		opts.Logger = diag.Nop{}
	}
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.HideBanner = true
	s.app.Debug = s.opts.Debug
	s.app.Renderer = NewRenderer()
	if g, ok := s.opts.Logger.(*diag.GommonLogger); ok {
		s.app.Logger = g.Gommon()
	}

	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in debug mode
	if !s.opts.Debug {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.GET("/", s.home)
	s.app.GET("/healthz", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })
}

// home mounts one roster view for the request.
func (s *server) home(c echo.Context) error {
	ctx := c.Request().Context()

	var state roster.State
	students, err := s.opts.Fetcher.List(ctx)
	if ctx.Err() != nil {
		// client went away; nobody is left to render for
		return nil
	}
	if err != nil {
		s.opts.Logger.Error("roster fetch failed", err, "remote", c.RealIP())
	} else {
		state.Set(students)
	}

	return c.Render(http.StatusOK, "roster.html", page{
		Content:       roster.Render(state, s.opts.AdminURL),
		AdminLinkText: roster.AdminLinkText,
	})
}

func (s *server) Start() error {
	if err := s.app.Start(s.opts.Address); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}
