package clientip

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLimitKey(t *testing.T) {
	tests := []struct {
		remote string
		want   string
	}{
		{"203.0.113.7:5050", "203.0.113.7"},
		{"[::ffff:203.0.113.7]:5050", "203.0.113.7"},
		{"[2001:db8:1:2:aaaa::1]:443", "2001:db8:1:2::/64"},
		{"[2001:db8:1:2:bbbb::9]:443", "2001:db8:1:2::/64"},
		{"garbage", "garbage"},
	}
	for _, tc := range tests {
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = tc.remote
		assert.Equal(t, tc.want, LimitKey(r), tc.remote)
	}
}

func TestRealClientIPIgnoresForwardedHeaders(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "198.51.100.2:1234"
	r.Header.Set("X-Forwarded-For", "10.0.0.1")
	assert.Equal(t, "198.51.100.2", RealClientIP(r))
}
