package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/wesworld/site/internal/repository"
)

// InternalErrorMessage is returned for any unexpected failure. Details are
// logged, never sent to the client.
const InternalErrorMessage = "Something went wrong on our side. Please try again soon."

// apiResponse is the common JSON envelope for API results.
type apiResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

type Handler struct {
	db         repository.DB
	corsOrigin string
}

// New returns a Handler. corsOrigin may be empty, in which case CORS headers
// are not sent and the site is same-origin only.
func New(db repository.DB, corsOrigin string) *Handler {
	return &Handler{db: db, corsOrigin: corsOrigin}
}

func (h *Handler) CORS(next http.Handler) http.Handler {
	if h.corsOrigin == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", h.corsOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Add("Vary", "Origin")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to write response", "error", err)
	}
}
