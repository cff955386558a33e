package clientip_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/ibankit/pkg/clientip"
)

func TestFromRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{"remote addr", "192.0.2.10:4711", nil, false, "192.0.2.10"},
		{"remote addr without port", "192.0.2.10", nil, false, "192.0.2.10"},
		{"ipv6 remote addr", "[2001:db8::1]:4711", nil, false, "2001:db8::1"},
		{"ipv4 mapped ipv6", "[::ffff:192.0.2.10]:4711", nil, false, "192.0.2.10"},
		{"garbage remote addr", "not-an-ip", nil, false, ""},
		{
			"headers ignored without trust", "192.0.2.10:4711",
			map[string]string{"X-Forwarded-For": "198.51.100.7"}, false, "192.0.2.10",
		},
		{
			"forwarded for first valid entry", "192.0.2.10:4711",
			map[string]string{"X-Forwarded-For": "bogus, 198.51.100.7, 203.0.113.1"}, true, "198.51.100.7",
		},
		{
			"cloudflare header wins", "192.0.2.10:4711",
			map[string]string{"CF-Connecting-IP": "203.0.113.5", "X-Forwarded-For": "198.51.100.7"}, true, "203.0.113.5",
		},
		{
			"real ip", "192.0.2.10:4711",
			map[string]string{"X-Real-IP": " 203.0.113.9 "}, true, "203.0.113.9",
		},
		{
			"invalid headers fall back", "192.0.2.10:4711",
			map[string]string{"X-Real-IP": "nope", "X-Forwarded-For": "also, nope"}, true, "192.0.2.10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientip.FromRequest(r, tt.trustProxy))
		})
	}
}
