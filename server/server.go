package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/portal-gate/gatekeeper"
	"github.com/jrsteele09/portal-gate/internal/config"
	apperrors "github.com/jrsteele09/portal-gate/internal/errors"
	"github.com/jrsteele09/portal-gate/token"
)

type Server struct {
	env      string // Environment (e.g., "DEV", "PROD")
	mux      *http.ServeMux
	handler  http.HandlerFunc
	routes   []string
	config   config.Config
	codec    *token.Codec
	gate     *gatekeeper.Gatekeeper
	provider LoginProvider
	metrics  *Metrics
	now      func() time.Time
}

type Option func(*Server)

// WithClock replaces time.Now for session minting and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// WithRegisterer registers the server metrics with reg instead of leaving them unregistered.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(s *Server) {
		s.metrics = NewMetrics(reg)
	}
}

func New(c config.Config, provider LoginProvider, opts ...Option) (*Server, error) {
	secret := c.GetSessionSecret()
	if len(secret) == 0 {
		return nil, fmt.Errorf("[Server New] %w: session secret is empty", apperrors.ErrInvalidConfig)
	}

	s := &Server{
		env:      c.GetEnv(),
		mux:      http.NewServeMux(),
		config:   c,
		codec:    token.NewCodec(secret),
		provider: provider,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = NewMetrics(nil)
	}

	s.gate = gatekeeper.New(s.codec, gatekeeper.Options{
		Policy:        gatekeeper.NewPolicy(gatekeeper.DefaultAllowlist...),
		LoginPath:     RouteLoginPage,
		AllowedDomain: c.GetAllowedEmailDomain(),
		Now:           func() time.Time { return s.now() },
	})

	s.initRoutes()
	s.logRoutes()
	s.handler = ChainMiddleware(s.mux.ServeHTTP, s.StandardMiddleware(s.GateMiddleware)...)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		method, path, found := strings.Cut(route, " ")
		if !found {
			method, path = "", route
		}
		log.Debug().Msgf("route %-16s %s", colourMethod(method), path)
	}
}
