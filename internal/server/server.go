package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/tin229oo/nadias-lending/internal/auth"
	"github.com/tin229oo/nadias-lending/internal/config"
	"github.com/tin229oo/nadias-lending/internal/http/handlers"
	"github.com/tin229oo/nadias-lending/internal/identity"
	"github.com/tin229oo/nadias-lending/internal/lending"
	"github.com/tin229oo/nadias-lending/internal/middleware"
)

// Deps are the collaborators the HTTP surface exposes.
type Deps struct {
	Identity *identity.Manager
	Loans    *lending.Manager
	Tokens   *auth.TokenManager
	Log      *zap.Logger
}

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, deps Deps) *Server {
	mux := http.NewServeMux()
	handlers.NewHealthHandler(time.Now()).Register(mux)
	handlers.NewAuthHandler(deps.Identity, deps.Tokens).Register(mux)
	handlers.NewLoanHandler(deps.Identity, deps.Loans).Register(mux)
	handlers.NewAdminHandler(deps.Loans).Register(mux)

	handler := middleware.CORS(cfg.CORSOrigins,
		middleware.Logging(deps.Log,
			middleware.Session(deps.Tokens, mux)))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
