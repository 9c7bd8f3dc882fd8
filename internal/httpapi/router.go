package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"whatsupp/internal/api"
	"whatsupp/internal/supplement"
	"whatsupp/pkg/config"
)

type Dependencies struct {
	Cfg         config.Config
	Log         *zap.Logger
	Origins     api.OriginRegistry
	Supplements supplement.Store
	Metrics     *api.Metrics

	// Now is overridable for tests.
	Now func() time.Time
}

func NewRouter(deps Dependencies) http.Handler {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.Metrics == nil {
		deps.Metrics = api.NewMetrics()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	r := chi.NewRouter()

	// The gate runs last so rejected and preflight requests are still
	// logged, counted and carry a request id.
	r.Use(
		api.RequestID,
		api.SecurityHeaders,
		api.AccessLog(deps.Log),
		deps.Metrics.Middleware,
		api.Recovery(deps.Log),
		api.CORSGate(api.CORSOptions{Origins: deps.Origins}, deps.Log),
		// HEAD on any GET route is answered by that route; uptime checkers use it.
		middleware.GetHead,
	)

	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	h := Handlers{
		Cfg:         deps.Cfg,
		Log:         deps.Log,
		Supplements: deps.Supplements,
		Now:         deps.Now,
	}

	r.Get("/", h.Root)
	r.Get("/health", h.Health)
	r.Get("/health/ready", h.Ready)
	r.Get("/version", h.Version)
	r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/filters", h.Filters)
		r.Get("/search", h.Search)
		r.Post("/chat", h.Chat)
		r.HandleFunc("/test-db", h.TestDB)
	})

	return r
}

func notFound(w http.ResponseWriter, r *http.Request) {
	api.WriteError(w, http.StatusNotFound, api.MsgNotFound)
}
