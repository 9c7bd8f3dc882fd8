package api

import (
	"encoding/json"
	"net/http"
)

const (
	MsgNotFound     = "Not found"
	MsgInternal     = "Internal server error"
	MsgDatastore    = "datastore query failed"
	MsgInvalidJSON  = "invalid json"
	MsgBodyTooLarge = "request body too large"
)

// ErrorBody is the uniform error payload. RequestID is only set on server-side
// failures so callers can quote it when reporting a problem.
type ErrorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorBody{Error: message})
}

// WriteOpaqueError hides the cause behind a fixed message and the request id.
// The caller is expected to have logged the cause.
func WriteOpaqueError(w http.ResponseWriter, r *http.Request, status int, message string) {
	WriteJSON(w, status, ErrorBody{Error: message, RequestID: RequestIDFromContext(r.Context())})
}
