package server

import (
	"context"
	"net/http"
	"time"

	"github.com/hongminglow/cost-manager/internal/config"
	"github.com/hongminglow/cost-manager/internal/http/handlers"
	"github.com/hongminglow/cost-manager/internal/middleware"
)

// Deps are the services the HTTP layer is built on.
type Deps struct {
	Costs   handlers.CostAdder
	Reports handlers.ReportBuilder
	Users   handlers.UserResolver
	Store   handlers.Pinger
}

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, deps Deps) *Server {
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           Handler(cfg, deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Handler builds the routed mux wrapped in the middleware chain. The request
// id is assigned first so every later log line carries it, and CORS headers
// are set before the limiter so 429 responses stay readable to browsers.
func Handler(cfg config.Config, deps Deps) http.Handler {
	mux := http.NewServeMux()
	handlers.NewHealthHandler(time.Now(), deps.Store).Register(mux)
	handlers.NewCostHandler(deps.Costs).Register(mux)
	handlers.NewReportHandler(deps.Reports).Register(mux)
	handlers.NewUserHandler(deps.Users).Register(mux)
	handlers.NewAboutHandler(cfg.Team).Register(mux)

	var handler http.Handler = mux
	handler = middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, handler)
	handler = middleware.CORS(cfg.CORSOrigins, handler)
	handler = middleware.Recover(handler)
	handler = middleware.Logging(handler)
	return middleware.RequestID(handler)
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
