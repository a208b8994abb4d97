package issues

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"IssueStore/pkg/kit"
)

const writeLimitWindow = 60 * time.Second

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string

	Tokens           *kit.TokenMaker
	WriteLimitPerMin int
}

func NewHandler(s *Server, deps HTTPDeps) http.Handler {
	r := chi.NewRouter()

	setupMiddleware(r, deps)
	setupMetrics(r, s, deps)

	routes := s.Routes()
	if deps.Tokens == nil {
		if deps.Log != nil {
			deps.Log.Warn("no loader token maker configured, write routes disabled")
		}
		r.Mount("/", routes)
		return r
	}

	routes.Group(func(wr chi.Router) {
		wr.Use(kit.NewIPRateLimiter(deps.WriteLimitPerMin, writeLimitWindow).Middleware)
		wr.Use(kit.RequireRole(deps.Tokens, kit.RoleLoader))
		s.WriteRoutes(wr)
	})

	r.Mount("/", routes)
	return r
}

func setupMiddleware(r *chi.Mux, deps HTTPDeps) {
	r.Use(chimw.RequestID)
	r.Use(kit.Recoverer)
	r.Use(kit.Logging(deps.Log))
}

func setupMetrics(r *chi.Mux, s *Server, deps HTTPDeps) {
	if deps.Registry == nil {
		return
	}

	metrics := kit.NewMetrics(deps.Registry)
	r.Use(metrics.Middleware(deps.Service, kit.ChiRoutePatternOrPath))

	if s.Metrics == nil {
		s.Metrics = RegisterMetrics(deps.Registry, s.Store)
	}

	if !deps.MetricsEnabled {
		return
	}

	r.With(kit.MetricsAuth(deps.MetricsToken)).
		Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
}
