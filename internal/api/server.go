// Package api provides the HTTP API server and handlers for the DevFlow application.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/devflowhq/devflow-server/internal/auth"
	"github.com/devflowhq/devflow-server/internal/config"
	"github.com/devflowhq/devflow-server/internal/ratelimit"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	services     *Services
	tokenService *auth.TokenService
	router       *chi.Mux
	api          huma.API
	logger       *slog.Logger
	rateLimiter  *ratelimit.KeyedRateLimiter
	startedAt    time.Time
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(cfg *config.Config, services *Services, tokenService *auth.TokenService, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	humaConfig := huma.DefaultConfig("DevFlow API", "1.0.0")
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "PASETO",
		},
	}

	s := &Server{
		services:     services,
		tokenService: tokenService,
		router:       router,
		logger:       logger,
		rateLimiter:  ratelimit.New(cfg.Server.RateLimit, cfg.Server.RateBurst),
		startedAt:    time.Now(),
	}

	s.setupMiddleware(cfg)

	s.api = humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerAuthRoutes()
	s.registerQuestionRoutes()
	s.registerAnswerRoutes()
	s.registerVoteRoutes()
	s.registerCollectionRoutes()
	s.registerTagRoutes()
	s.registerUserRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases background resources held by the server.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware(cfg *config.Config) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	s.router.Use(RateLimitMiddleware(s.rateLimiter, s.logger))
}
