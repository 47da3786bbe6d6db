// Package server exposes the motion generator over HTTP: motion
// generation, statistics lookup, health and metrics endpoints.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hazzler78/sd-motion-generator/internal/config"
	"github.com/hazzler78/sd-motion-generator/internal/kolada"
	"github.com/hazzler78/sd-motion-generator/internal/logger"
	"github.com/hazzler78/sd-motion-generator/internal/motion"
	"github.com/hazzler78/sd-motion-generator/internal/statistics"
)

// statsService is the slice of the statistics service the server needs.
type statsService interface {
	FetchStatistic(ctx context.Context, t statistics.Type, year int, municipality string) statistics.Statistic
	Registry() *statistics.Registry
}

// motionGenerator is the slice of the motion pipeline the server needs.
type motionGenerator interface {
	Generate(ctx context.Context, topic string, stats []statistics.Statistic) (motion.Result, error)
	Probe(ctx context.Context) error
}

// koladaProbe checks upstream reachability for the health endpoint.
type koladaProbe interface {
	MunicipalityData(ctx context.Context, kpiID, municipalityID string, year int) (kolada.KPIDataPoint, error)
}

// Options holds the server's dependencies.
type Options struct {
	Config     config.ServerConfig
	Statistics statsService
	Motions    motionGenerator
	Kolada     koladaProbe
	Clock      clockwork.Clock
}

// Server is the HTTP API.
type Server struct {
	cfg      config.ServerConfig
	stats    statsService
	motions  motionGenerator
	kolada   koladaProbe
	clock    clockwork.Clock
	validate *validator.Validate
	httpSrv  *http.Server
}

// New assembles a server. The municipality and statistic_type validations
// are bound to the statistics registry so request validation and lookup
// cannot drift apart.
func New(opts Options) (*Server, error) {
	if opts.Statistics == nil {
		return nil, errors.New("server requires a statistics service")
	}
	if opts.Motions == nil {
		return nil, errors.New("server requires a motion generator")
	}
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	s := &Server{
		cfg:     opts.Config,
		stats:   opts.Statistics,
		motions: opts.Motions,
		kolada:  opts.Kolada,
		clock:   clock,
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.RegisterValidation("municipality", func(fl validator.FieldLevel) bool {
		_, ok := statistics.MunicipalityID(fl.Field().String())
		return ok
	}); err != nil {
		return nil, err
	}
	if err := validate.RegisterValidation("statistic_type", func(fl validator.FieldLevel) bool {
		_, ok := s.stats.Registry().Config(statistics.Type(fl.Field().String()))
		return ok
	}); err != nil {
		return nil, err
	}
	s.validate = validate

	return s, nil
}

// Router builds the route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/", s.handleRoot)
	r.Post("/api/generate-motion", s.handleGenerateMotion)
	r.Get("/api/statistics", s.handleStatistics)
	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}

// ListenAndServe runs the server until the context is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Router(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "addr", s.cfg.Addr)
		errCh <- s.httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	logger.Info("shutting down HTTP server")
	return s.httpSrv.Shutdown(shutdownCtx)
}
