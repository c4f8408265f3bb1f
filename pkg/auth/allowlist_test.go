package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeIP(t *testing.T) {
	cases := map[string]string{
		"::ffff:127.0.0.1": "127.0.0.1",
		" 10.0.0.5 ":       "10.0.0.5",
		"::1":              "::1",
		"":                 "",
	}
	for in, want := range cases {
		require.Equal(t, want, NormalizeIP(in), "input %q", in)
	}
}

func TestClientIP_PrefersFirstForwardedEntry(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/messages", nil)
	req.RemoteAddr = "10.0.0.1:4444"
	req.Header.Set("X-Forwarded-For", " ::ffff:203.0.113.9 , 10.0.0.1")

	require.Equal(t, "203.0.113.9", ClientIP(req))
}

func TestClientIP_RemoteAddr(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "[::1]:51234"
	require.Equal(t, "::1", ClientIP(req))

	req.RemoteAddr = "[::ffff:127.0.0.1]:51234"
	require.Equal(t, "127.0.0.1", ClientIP(req))

	req.RemoteAddr = "192.0.2.7"
	require.Equal(t, "192.0.2.7", ClientIP(req))
}

func TestAllowlist(t *testing.T) {
	list := NewAllowlist([]string{"127.0.0.1", " ::1 ", "", "::ffff:10.1.1.1"})

	require.Equal(t, 3, list.Len())
	require.True(t, list.Allows("127.0.0.1"))
	require.True(t, list.Allows("::ffff:127.0.0.1"))
	require.True(t, list.Allows("::1"))
	require.True(t, list.Allows("10.1.1.1"))
	require.False(t, list.Allows("192.0.2.1"))
	require.False(t, list.Allows(""))
}
