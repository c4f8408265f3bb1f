package handler

import (
	"io/fs"
	"net/http"

	"github.com/wesworld/site/internal/repository"
	"github.com/wesworld/site/internal/service"
	"github.com/wesworld/site/pkg/auth"
)

// RouterConfig holds everything NewRouter wires together.
type RouterConfig struct {
	Site           fs.FS
	ContactService service.ContactService
	Store          repository.DB
	Allowlist      *auth.Allowlist
	// RateLimiter guards POST /contact. Nil disables limiting.
	RateLimiter *RateLimiter
	CORSOrigin  string
}

// NewRouter returns the site's complete HTTP handler with middleware applied.
func NewRouter(cfg RouterConfig) http.Handler {
	h := New(cfg.Store, cfg.CORSOrigin)
	pages := NewPageHandler(cfg.Site, Pages)
	contactHandler := NewContactHandler(cfg.ContactService)
	messageHandler := NewMessageHandler(cfg.ContactService)

	adminOnly := auth.RequireAllowlisted(cfg.Allowlist)

	submit := http.Handler(http.HandlerFunc(contactHandler.Submit))
	if cfg.RateLimiter != nil {
		submit = cfg.RateLimiter.Middleware(submit)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)
	mux.Handle("POST /contact", submit)

	// Admin routes (allowlisted IPs only)
	mux.Handle("GET /api/messages", adminOnly(http.HandlerFunc(messageHandler.List)))
	mux.Handle("DELETE /api/messages/{id}", adminOnly(http.HandlerFunc(messageHandler.Delete)))
	mux.Handle("POST /api/messages/delete", adminOnly(http.HandlerFunc(messageHandler.DeleteFromBody)))
	mux.Handle("/api/messages", adminOnly(http.HandlerFunc(pages.NotFound)))
	mux.Handle("/api/messages/", adminOnly(http.HandlerFunc(pages.NotFound)))
	mux.Handle("/admin", adminOnly(pages))
	mux.Handle("/admin/", adminOnly(pages))
	mux.Handle("/admin.html", adminOnly(pages))

	mux.Handle("/", pages)

	return RequestLogger(Recoverer(SecurityHeaders(h.CORS(mux))))
}
