package api

import (
	"log/slog"

	"github.com/brokerdesk/lead-portal/internal/api/handlers"
	"github.com/brokerdesk/lead-portal/internal/api/middleware"
	"github.com/brokerdesk/lead-portal/internal/auth"
	"github.com/brokerdesk/lead-portal/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"gorm.io/gorm"
)

type Router struct {
	chi.Router
}

type RouterConfig struct {
	DB             *gorm.DB
	Logger         *slog.Logger
	JWTService     *auth.JWTService
	AuthService    *auth.Service
	UserStore      store.UserStore
	LeadStore      store.LeadStore
	AllowedOrigin  string // CORS allowed web origin
	UploadMaxBytes int64
	Development    bool
	RateLimitReqs  int // Rate limit requests per window
	RateLimitSecs  int // Rate limit window in seconds
}

func NewRouter(cfg RouterConfig) *Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))

	if cfg.RateLimitReqs > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitReqs, cfg.RateLimitSecs))
	}

	allowedOrigin := cfg.AllowedOrigin
	if allowedOrigin == "" {
		allowedOrigin = "http://localhost:3000"
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{allowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.DB)
	authHandler := handlers.NewAuthHandler(cfg.AuthService)
	userHandler := handlers.NewUserHandler(cfg.UserStore, cfg.Logger)
	leadHandler := handlers.NewLeadHandler(cfg.LeadStore, cfg.Logger)
	brokerHandler := handlers.NewBrokerHandler(cfg.LeadStore, cfg.Logger)
	timelineHandler := handlers.NewTimelineHandler(cfg.LeadStore, cfg.Logger)
	uploadHandler := handlers.NewUploadHandler(cfg.LeadStore, cfg.UploadMaxBytes, cfg.Development, cfg.Logger)

	// Health endpoint (no auth required)
	r.Get("/health", healthHandler.Health)

	r.Route("/api", func(r chi.Router) {
		// Public auth endpoint
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTService))

			r.Get("/auth/me", authHandler.Me)

			r.Route("/leads", func(r chi.Router) {
				r.Get("/", leadHandler.List)
				r.Get("/{id}", leadHandler.Get)
				r.With(middleware.AdminOnly).Put("/{id}", leadHandler.Update)
				r.With(middleware.AdminOnly).Delete("/{id}", leadHandler.Delete)
			})

			r.Route("/broker", func(r chi.Router) {
				r.Get("/leads", brokerHandler.Leads)
				r.Get("/leads/{id}", brokerHandler.Lead)
				r.Get("/stats", brokerHandler.Stats)
			})

			r.Get("/timeline/{leadId}", timelineHandler.Get)

			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", userHandler.List)
				r.Post("/", userHandler.Create)
				r.Get("/{id}", userHandler.Get)
				r.Put("/{id}", userHandler.Update)
				r.Delete("/{id}", userHandler.Delete)
			})

			r.With(middleware.AdminOnly).Post("/upload/excel", uploadHandler.Excel)
		})
	})

	return &Router{r}
}
