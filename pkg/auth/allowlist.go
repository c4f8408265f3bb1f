package auth

import (
	"net"
	"net/http"
	"strings"
)

const ipv4MappedPrefix = "::ffff:"

// NormalizeIP trims ip and strips the IPv4-mapped IPv6 prefix, so
// "::ffff:127.0.0.1" and "127.0.0.1" compare equal.
func NormalizeIP(ip string) string {
	ip = strings.TrimSpace(ip)
	return strings.TrimPrefix(ip, ipv4MappedPrefix)
}

// ClientIP returns the normalized originating address of r: the first
// X-Forwarded-For entry when the header is present, else the connection's
// remote host.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return NormalizeIP(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return NormalizeIP(r.RemoteAddr)
	}
	return NormalizeIP(host)
}

// Allowlist is a fixed set of normalized IP addresses. It is not modified
// after construction.
type Allowlist struct {
	ips map[string]struct{}
}

// NewAllowlist normalizes entries and drops blanks.
func NewAllowlist(entries []string) *Allowlist {
	a := &Allowlist{ips: make(map[string]struct{}, len(entries))}
	for _, e := range entries {
		if ip := NormalizeIP(e); ip != "" {
			a.ips[ip] = struct{}{}
		}
	}
	return a
}

// Allows reports whether the normalized ip is in the list.
func (a *Allowlist) Allows(ip string) bool {
	_, ok := a.ips[NormalizeIP(ip)]
	return ok
}

// Len returns the number of distinct addresses.
func (a *Allowlist) Len() int { return len(a.ips) }
