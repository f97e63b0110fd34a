package server

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteIndex+"{$}", s.IndexHandler())

	// LOGIN
	s.RegisterRouteFunc("GET "+RouteAuthLogin, s.LoginHandler())
	s.RegisterRouteFunc("GET "+RouteCallback, s.OAuthCallbackHandler())
	s.RegisterRouteFunc("GET "+RouteAuthLogout, s.LogoutHandler())

	// API routes
	s.RegisterRouteFunc("GET "+RouteAPISession, ChainMiddleware(s.SessionInfoHandler(), s.NoStoreMiddleware))

	s.RegisterRouteFunc("GET "+RouteHealth, s.HealthHandler())

	// Static pages and assets
	s.RegisterRouteFunc("GET "+RouteLoginPage, ChainMiddleware(s.serveFileHandler(), s.NoStoreMiddleware))
	s.RegisterRouteFunc("GET "+RouteRobots, s.serveFileHandler())
	s.RegisterRouteFunc("GET "+RouteStaticAssets, ChainMiddleware(s.serveFileHandler(), s.CacheMiddleware))
	s.RegisterRouteFunc("GET "+RoutePortalFiles, ChainMiddleware(s.serveFileHandler(), s.NoStoreMiddleware))
}

// IndexHandler sends the site root to the portal landing page
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, RoutePortal, http.StatusFound)
	}
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	}
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filePath := strings.TrimPrefix(r.URL.Path, "/")
		if filePath == "" || strings.HasSuffix(filePath, "/") {
			filePath += "index.html"
		}
		if err := StreamFile(w, r, filePath); err != nil {
			zerolog.Ctx(r.Context()).Debug().Err(err).Str("path", r.URL.Path).Msg("static file not found")
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
	}
}
