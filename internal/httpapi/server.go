// Package httpapi exposes the driver workflow over a JSON HTTP API.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"delivery-tracking/internal/auth"
	"delivery-tracking/internal/config"
	"delivery-tracking/internal/order"
	"delivery-tracking/models"
	"delivery-tracking/repository"
)

// Suggester is the autocomplete side of the address resolver.
type Suggester interface {
	Suggest(ctx context.Context, input string) ([]models.AddressSuggestion, error)
	PlaceDetails(ctx context.Context, placeID string) (string, models.LatLng, error)
}

// Server bundles dependencies and implements the HTTP handlers.
type Server struct {
	log       *zap.Logger
	svc       *order.Service
	suggester Suggester
	drivers   *repository.DriverRepository
	locations *repository.LocationRepository
	jwtSecret string
}

func NewServer(log *zap.Logger, svc *order.Service, suggester Suggester, drivers *repository.DriverRepository, locations *repository.LocationRepository, jwtSecret string) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{log: log, svc: svc, suggester: suggester, drivers: drivers, locations: locations, jwtSecret: jwtSecret}
}

// Handler builds the full middleware chain and routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /api/v1/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/v1/auth/login", s.handleLogin)
	mux.HandleFunc("GET /api/v1/suggestions", s.handleSuggestions)
	mux.HandleFunc("POST /api/v1/suggestions/resolve", s.handleResolveSuggestion)
	mux.HandleFunc("POST /api/v1/estimate", s.handleEstimate)
	mux.HandleFunc("POST /api/v1/orders", s.handleStartOrder)
	mux.HandleFunc("GET /api/v1/orders", s.handleListOrders)
	mux.HandleFunc("GET /api/v1/orders/{order_no}", s.handleGetOrder)
	mux.HandleFunc("POST /api/v1/orders/{order_no}/complete", s.handleCompleteOrder)
	mux.HandleFunc("GET /api/v1/navigate", s.handleNavigate)
	mux.HandleFunc("POST /api/v1/locations", s.handleRecordLocation)

	authMW := auth.Middleware(s.jwtSecret, "/healthz", "/api/v1/auth/register", "/api/v1/auth/login")
	limiter := NewRateLimiter(10, 20)

	// Request flow: logging -> auth -> rate limit -> routes, so the limiter can
	// key authenticated requests by driver id.
	var h http.Handler = mux
	h = limiter.Middleware(h)
	h = authMW(h)
	h = s.logRequests(h)
	return h
}

// Start runs the HTTP server on the configured address and returns a shutdown
// function.
func Start(cfg *config.Config, s *Server) (func(context.Context) error, error) {
	if cfg == nil {
		panic("config is required")
	}
	addr := cfg.HTTP.Address
	if addr == "" {
		addr = ":8080"
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()
	// Surface immediate listen failures.
	select {
	case err := <-errc:
		return nil, err
	case <-time.After(50 * time.Millisecond):
	}

	return srv.Shutdown, nil
}
