package auth

import (
	"log/slog"
	"net/http"
)

// AccessDeniedMessage is the fixed body returned to non-allowlisted clients.
const AccessDeniedMessage = "Access denied."

// RequireAllowlisted は許可リストにない IP からのリクエストを 403 で拒否するミドルウェア
func RequireAllowlisted(list *Allowlist) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := ClientIP(r)
			if !list.Allows(ip) {
				slog.Warn("admin access denied", "client_ip", ip, "path", r.URL.Path)
				w.Header().Set("Content-Type", "text/plain; charset=utf-8")
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(AccessDeniedMessage))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
