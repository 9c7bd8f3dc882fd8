package httpapi

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"go.uber.org/zap"

	"whatsupp/internal/api"
	"whatsupp/internal/supplement"
	"whatsupp/pkg/config"
)

const readyTimeout = 2 * time.Second

type Handlers struct {
	Cfg         config.Config
	Log         *zap.Logger
	Supplements supplement.Store
	Now         func() time.Time
}

func (h Handlers) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Backend is running"))
}

type HealthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Time    string `json:"time"`
}

func (h Handlers) Health(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, HealthResponse{
		OK:      true,
		Service: h.Cfg.ServiceName,
		Time:    h.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
}

// Ready reports whether the datastore answers. Liveness stays on /health.
func (h Handlers) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := h.Supplements.Ping(ctx); err != nil {
		h.Log.Error("readiness ping failed",
			zap.String("request_id", api.RequestIDFromContext(r.Context())),
			zap.Error(err),
		)
		api.WriteJSON(w, http.StatusServiceUnavailable, map[string]any{
			"ok":        false,
			"error":     api.MsgDatastore,
			"requestId": api.RequestIDFromContext(r.Context()),
		})
		return
	}
	api.WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
}

type VersionResponse struct {
	Commit *string `json:"commit"`
	// Node is the runtime version; the key name is kept for existing clients.
	Node string `json:"node"`
}

func (h Handlers) Version(w http.ResponseWriter, r *http.Request) {
	resp := VersionResponse{Node: runtime.Version()}
	if h.Cfg.Commit != "" {
		commit := h.Cfg.Commit
		resp.Commit = &commit
	}
	api.WriteJSON(w, http.StatusOK, resp)
}

type FiltersResponse struct {
	supplement.Taxonomy
	Backend BackendStatus `json:"backend"`
}

type BackendStatus struct {
	Connected bool `json:"connected"`
}

// Filters serves the static search vocabulary. It does not touch the datastore.
func (h Handlers) Filters(w http.ResponseWriter, r *http.Request) {
	api.WriteJSON(w, http.StatusOK, FiltersResponse{
		Taxonomy: supplement.DefaultTaxonomy(),
		Backend:  BackendStatus{Connected: true},
	})
}

// datastoreFailed logs the cause with the request id and answers with an
// opaque 500.
func (h Handlers) datastoreFailed(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.Log.Error("datastore query failed",
		zap.String("request_id", api.RequestIDFromContext(r.Context())),
		zap.String("op", op),
		zap.Error(err),
	)
	api.WriteOpaqueError(w, r, http.StatusInternalServerError, api.MsgDatastore)
}
