package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes - Login & Logout
	RouteLoginPage  = "/login.html"
	RouteAuthLogin  = "/auth/login"
	RouteAuthLogout = "/auth/logout"
	RouteCallback   = "/auth/callback"

	// Portal
	RouteIndex  = "/"
	RoutePortal = "/portal/"

	// API Routes
	RouteAPISession = "/api/session"

	// Operational
	RouteHealth  = "/healthz"
	RouteMetrics = "/metrics"

	// Static Asset Routes (patterns)
	RouteStaticAssets = "/assets/{file...}"
	RoutePortalFiles  = "/portal/{file...}"
	RouteRobots       = "/robots.txt"
)
