package httpapi

import (
	"net/http"
	"time"

	"surfsup-api/internal/config"
)

func NewServer(cfg config.Config, mux *http.ServeMux) *http.Server {
	var handler http.Handler = mux
	if cfg.RateLimitRPS > 0 {
		handler = rateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst)(handler)
	}
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           requestLogger(handler),
		ReadHeaderTimeout: 5 * time.Second,
	}
}
