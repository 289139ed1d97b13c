package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"github.com/stayware/priceflow/internal/pricing"
	"github.com/stayware/priceflow/internal/store"
	"github.com/stayware/priceflow/internal/telemetry"
)

// Server wires the pricing service and rule store into the HTTP surface.
type Server struct {
	pricing     *pricing.Service
	store       store.Store
	adminAPIKey string
	ratePerIP   int
	logger      zerolog.Logger
}

func NewServer(svc *pricing.Service, st store.Store, adminKey string, ratePerIP int, logger zerolog.Logger) *Server {
	if ratePerIP <= 0 {
		ratePerIP = 100
	}
	return &Server{
		pricing:     svc,
		store:       st,
		adminAPIKey: adminKey,
		ratePerIP:   ratePerIP,
		logger:      logger,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(telemetry.Middleware)
	r.Use(httprate.LimitByIP(s.ratePerIP, time.Minute))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Quote path: no timeout middleware — the engine is CPU-bound and the
	// pricing contract guarantees a response.
	r.Post("/v1/price/quote", s.handleQuote)

	r.Route("/v1/rules", func(r chi.Router) {
		r.Use(middleware.Timeout(5 * time.Second))

		r.Get("/", s.handleListRules)
		r.Get("/snapshot", s.handleSnapshot)
		r.Get("/stream", s.handleStream)
		r.Get("/{id}", s.handleGetRule)

		// mutations require the admin key
		r.Post("/", s.authAdmin(s.handleUpsertRule))
		r.Delete("/{id}", s.authAdmin(s.handleDeleteRule))
	})

	return r
}

// authAdmin guards mutating endpoints with a constant-time bearer-token
// comparison against the configured admin key.
func (s *Server) authAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r.Header.Get("Authorization"))
		if token == "" {
			writeErrorCode(w, r, http.StatusUnauthorized, ErrCodeUnauthorized, "missing bearer token")
			return
		}
		if subtle.ConstantTimeCompare([]byte(token), []byte(s.adminAPIKey)) != 1 {
			writeErrorCode(w, r, http.StatusForbidden, ErrCodeForbidden, "invalid API key")
			return
		}
		next(w, r)
	}
}

func extractBearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
