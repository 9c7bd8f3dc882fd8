package api

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

const originNotAllowed = "CORS: Origin not allowed"

var (
	defaultAllowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	defaultAllowedHeaders = []string{"Content-Type", "Authorization"}
)

type CORSOptions struct {
	Origins        OriginRegistry
	AllowedMethods []string
	AllowedHeaders []string
}

// Decision is the gate's verdict for one request. A zero Status means the
// request continues to the router.
type Decision struct {
	AttachHeaders bool
	Status        int
}

// Decide classifies a request by method, Origin header and allow-list membership.
//
//	OPTIONS, no origin        -> 204
//	OPTIONS, allowed origin   -> headers + 204
//	OPTIONS, other origin     -> 403
//	other,   no origin        -> continue (server-to-server caller)
//	other,   allowed origin   -> headers + continue
//	other,   other origin     -> 403
func Decide(method, origin string, origins OriginRegistry) Decision {
	preflight := method == http.MethodOptions

	switch {
	case origin == "" && preflight:
		return Decision{Status: http.StatusNoContent}
	case origin == "":
		return Decision{}
	case origins.Allowed(origin) && preflight:
		return Decision{AttachHeaders: true, Status: http.StatusNoContent}
	case origins.Allowed(origin):
		return Decision{AttachHeaders: true}
	default:
		return Decision{Status: http.StatusForbidden}
	}
}

// CORSGate runs before routing. Credentials are allowed, so the request origin
// is echoed back verbatim and never replaced with "*".
func CORSGate(opts CORSOptions, log *zap.Logger) func(http.Handler) http.Handler {
	allowedMethods := opts.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = defaultAllowedMethods
	}
	allowedHeaders := opts.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = defaultAllowedHeaders
	}
	methods := strings.Join(allowedMethods, ",")
	headers := strings.Join(allowedHeaders, ", ")

	if log == nil {
		log = zap.NewNop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			d := Decide(r.Method, origin, opts.Origins)

			if d.AttachHeaders {
				h := w.Header()
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
				h.Set("Access-Control-Allow-Credentials", "true")
				h.Set("Access-Control-Allow-Methods", methods)
				h.Set("Access-Control-Allow-Headers", headers)
			}

			switch d.Status {
			case 0:
				next.ServeHTTP(w, r)
			case http.StatusForbidden:
				log.Debug("cors origin rejected",
					zap.String("origin", origin),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.String("request_id", RequestIDFromContext(r.Context())),
				)
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				WriteError(w, http.StatusForbidden, originNotAllowed)
			default:
				w.WriteHeader(d.Status)
			}
		})
	}
}
