package httpserver

import (
	"net/http"
	"time"

	"chore-coin-go/internal/config"
)

// New wraps the router in a server. WriteTimeout stays above the 30s
// request timeout set in NewRouter so handlers can still write their error.
func New(cfg config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      35 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
