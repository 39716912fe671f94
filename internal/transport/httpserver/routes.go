package httpserver

import (
	"net/http"
	"time"

	"chore-coin-go/internal/config"
	"chore-coin-go/internal/transport/httpserver/handler"
	appmw "chore-coin-go/internal/transport/httpserver/middleware"
	"chore-coin-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, tokens appmw.TokenParser, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(appmw.NewCORS(cfg.CORS.AllowedOrigins))
	r.Use(appmw.Metrics)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		loginLimiter := appmw.NewRateLimiter(float64(cfg.Login.RatePerSecond), cfg.Login.Burst, log)
		r.With(loginLimiter.Handler).Post("/auth/google", handlers.GoogleLogin)

		session := appmw.NewSessionAuth(tokens, log)
		r.Group(func(r chi.Router) {
			r.Use(session.Middleware)

			r.Get("/users/me", handlers.GetMe)
			r.Patch("/users/me", handlers.ChangeRole)
			r.Put("/users/me/passcode", handlers.SetPasscode)

			r.Get("/chores", handlers.ListChores)
			r.Post("/chores", handlers.CreateChore)
			r.Put("/chores/{id}", handlers.UpdateChore)
			r.Delete("/chores/{id}", handlers.DeleteChore)
			r.Post("/chores/{id}/complete", handlers.CompleteChore)

			r.Get("/rewards", handlers.ListRewards)
			r.Post("/rewards", handlers.CreateReward)
			r.Put("/rewards/{id}", handlers.UpdateReward)
			r.Delete("/rewards/{id}", handlers.DeleteReward)
			r.Post("/rewards/{id}/claim", handlers.ClaimReward)

			r.Get("/history", handlers.ListHistory)
			r.Get("/history/points", handlers.GetPoints)
		})
	})

	return r
}
