package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dealradar/dealradar/pkg/domain/interfaces"
	"github.com/dealradar/dealradar/pkg/usecase"
	"github.com/dealradar/dealradar/pkg/utils/errutil"
	"github.com/dealradar/dealradar/pkg/utils/logging"
	"github.com/dealradar/dealradar/pkg/utils/safe"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
)

// DigestPoster posts the risk radar digest on demand
type DigestPoster interface {
	Post(ctx context.Context) error
}

type Server struct {
	router    *chi.Mux
	uc        *usecase.UseCases
	generator interfaces.StrategyGenerator
	digest    DigestPoster
}

type Options func(*Server)

// WithStrategyGenerator serves the generator contract on POST /api/generate-strategies
func WithStrategyGenerator(generator interfaces.StrategyGenerator) Options {
	return func(s *Server) {
		s.generator = generator
	}
}

// WithDigest enables POST /api/risk-radar/digest
func WithDigest(digest DigestPoster) Options {
	return func(s *Server) {
		s.digest = digest
	}
}

func New(uc *usecase.UseCases, opts ...Options) (*Server, error) {
	if uc == nil {
		return nil, goerr.New("use cases are required")
	}

	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/risk-radar", s.riskRadarHandler)
		r.Post("/risk-radar/digest", s.digestHandler)
		r.Get("/opportunities/{id}/risk", s.opportunityRiskHandler)
		r.Get("/risk-categories", s.riskCategoriesHandler)
		r.Get("/risk-categories/{category}/mitigations", s.mitigationsHandler)
		r.Get("/risk-dashboard", s.riskDashboardHandler)
		r.Post("/generate-strategies", s.generateStrategiesHandler)
	})

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON encodes v as the response body with the given status
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}
