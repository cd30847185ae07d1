package httpapi

import (
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"github.com/vladamisici/food-analyzer-sub001/internal/goals"
	"github.com/vladamisici/food-analyzer-sub001/internal/history"
)

// RouterConfig holds the facade's dependencies.
type RouterConfig struct {
	Version   string
	Logger    zerolog.Logger
	Auth      AuthService
	Food      FoodAnalyzer
	History   history.Repository
	Goals     goals.Repository
	Session   SessionResolver
	Metrics   *Metrics
	RateLimit int
}

// NewRouter builds the chi router with middleware and all facade routes.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	rateLimit := cfg.RateLimit
	if rateLimit <= 0 {
		rateLimit = 120
	}

	// Order matters: the request id must exist before logging and recovery
	// reference it.
	r.Use(RequestID)
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware())
	}
	r.Use(Logger(cfg.Logger))
	r.Use(Recovery(cfg.Logger))
	r.Use(chimiddleware.RealIP)
	r.Use(httprate.Limit(rateLimit, time.Minute, httprate.WithKeyFuncs(httprate.KeyByRealIP)))

	opsHandler := NewOpsHandler(cfg.Version)
	authHandler := NewAuthHandler(cfg.Auth)
	analyzeHandler := NewAnalyzeHandler(cfg.Food)
	historyHandler := NewHistoryHandler(cfg.History, cfg.Session)
	goalsHandler := NewGoalsHandler(cfg.Goals, cfg.Session)
	progressHandler := NewProgressHandler(cfg.History, cfg.Goals, cfg.Session)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/ops/health", opsHandler.Health)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)
		})

		r.Post("/analyze", analyzeHandler.Analyze)

		r.Route("/history", func(r chi.Router) {
			r.Get("/", historyHandler.List)
			r.Post("/", historyHandler.Save)
			r.Patch("/{id}", historyHandler.Rename)
			r.Delete("/{id}", historyHandler.Delete)
		})

		r.Route("/goal", func(r chi.Router) {
			r.Get("/", goalsHandler.Get)
			r.Put("/", goalsHandler.Upsert)
		})

		r.Route("/progress", func(r chi.Router) {
			r.Get("/daily", progressHandler.Daily)
			r.Get("/weekly", progressHandler.Weekly)
		})
	})

	return r
}
