package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey ContextKey = "dryRun"
)

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

const (
	ContentTypeJSON    = "application/json"
	ContentTypeMsgpack = "application/msgpack"
)

// WantsMsgpack reports whether the client asked for a MessagePack body.
func WantsMsgpack(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, ContentTypeMsgpack) || strings.Contains(accept, "application/x-msgpack")
}

// WriteResponse encodes v as JSON, or as MessagePack when the client asks for it.
func WriteResponse(w http.ResponseWriter, r *http.Request, status int, v any) {
	if WantsMsgpack(r) {
		body, err := msgpack.Marshal(v)
		if err != nil {
			log.Error("Failed to encode response as msgpack", "error", err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", ContentTypeMsgpack)
		w.WriteHeader(status)
		if _, err := w.Write(body); err != nil {
			log.Error("Failed to write response", "error", err)
		}
		return
	}

	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response to JSON", "error", err)
	}
}

// WriteError sends a JSON error body.
func WriteError(w http.ResponseWriter, status int, format string, args ...any) {
	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(status)
	body := map[string]string{"error": fmt.Sprintf(format, args...)}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("Failed to write error response", "error", err)
	}
}
