package handler

import (
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
)

// NotFoundPage is served with a 404 status for any unknown path.
const NotFoundPage = "404.html"

// Pages maps clean URLs to page files under the static root.
var Pages = map[string]string{
	"/":                          "index.html",
	"/about":                     "about.html",
	"/services":                  "services.html",
	"/portfolio":                 "portfolio.html",
	"/blog":                      "blog.html",
	"/blog-15-ways":              "blog-15-ways.html",
	"/blog-local-seo":            "blog-local-seo.html",
	"/blog-landing-pages":        "blog-landing-pages.html",
	"/blog-automation-playbooks": "blog-automation-playbooks.html",
	"/blog-wordpress-migration":  "blog-wordpress-migration.html",
	"/blog-malware":              "blog-malware.html",
	"/blog-website-design":       "blog-website-design.html",
	"/blog-design-trends":        "blog-design-trends.html",
	"/blog-redesign-checklist":   "blog-redesign-checklist.html",
	"/blog-social-platforms":     "blog-social-platforms.html",
	"/blog-social-media-tips":    "blog-social-media-tips.html",
	"/blog-link-building":        "blog-link-building.html",
	"/admin":                     "admin.html",
	"/contact":                   "contact.html",
	"/privacy":                   "privacy.html",
	"/website-services":          "website-services.html",
	"/webapp-development":        "webapp-development.html",
	"/marketing-services":        "marketing-services.html",
	"/ecommerce-website":         "ecommerce-website.html",
}

// PageHandler serves the static site: mapped clean URLs first, then any
// file under the root by its own path, else the 404 page.
type PageHandler struct {
	root  fs.FS
	pages map[string]string
}

// NewPageHandler creates a PageHandler serving files from root.
func NewPageHandler(root fs.FS, pages map[string]string) *PageHandler {
	return &PageHandler{root: root, pages: pages}
}

func (h *PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		h.NotFound(w, r)
		return
	}

	name, ok := h.pages[r.URL.Path]
	if !ok {
		name = strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	}
	if !h.isFile(name) {
		h.NotFound(w, r)
		return
	}
	http.ServeFileFS(w, r, h.root, name)
}

// NotFound writes the 404 page.
func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	body, err := fs.ReadFile(h.root, NotFoundPage)
	if err != nil {
		slog.Warn("404 page missing", "error", err)
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	if r.Method != http.MethodHead {
		_, _ = w.Write(body)
	}
}

func (h *PageHandler) isFile(name string) bool {
	if name == "" || name == "." || !fs.ValidPath(name) {
		return false
	}
	// Dotfiles and editor leftovers are never served.
	for _, part := range strings.Split(name, "/") {
		if strings.HasPrefix(part, ".") {
			return false
		}
	}
	info, err := fs.Stat(h.root, name)
	return err == nil && info.Mode().IsRegular()
}
