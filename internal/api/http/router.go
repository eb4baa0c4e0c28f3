package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/justinas/alice"
	"github.com/rs/cors"
	"golang.org/x/time/rate"
)

type RouterConfig struct {
	AllowedOrigins     []string
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// NewRouter wires the rental routes behind the middleware chain. A
// non-positive RateLimitPerSecond disables rate limiting.
func NewRouter(svc RentalService, db Pinger, cfg RouterConfig) http.Handler {
	h := NewRentalHandler(svc)

	r := mux.NewRouter()
	r.HandleFunc("/health", HealthHandler(db)).Methods(http.MethodGet)
	r.HandleFunc("/rentals", h.List).Methods(http.MethodGet)
	r.HandleFunc("/rentals", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/rentals/{id}/return", h.Return).Methods(http.MethodPost)
	r.HandleFunc("/rentals/{id}", h.Delete).Methods(http.MethodDelete)

	chain := alice.New(Recover, RequestID, RequestLogger)
	if cfg.RateLimitPerSecond > 0 {
		burst := cfg.RateLimitBurst
		if burst < 1 {
			burst = 1
		}
		chain = chain.Append(RateLimit(rate.NewLimiter(rate.Limit(cfg.RateLimitPerSecond), burst)))
	}

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	})

	return c.Handler(chain.Then(r))
}
