// Package clientip derives the client address used for rate limiting.
package clientip

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// RealClientIP returns the peer address of r. Proxy headers are ignored, so
// the server must face clients directly or sit behind a proxy that rewrites
// RemoteAddr.
func RealClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return strings.TrimSpace(host)
}

// LimitKey groups clients for rate limiting: an IPv4 address stands alone,
// while IPv6 addresses are grouped by their /64 prefix because one host
// usually controls the whole block.
func LimitKey(r *http.Request) string {
	ip := RealClientIP(r)
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return ip
	}
	addr = addr.Unmap()
	if addr.Is4() {
		return addr.String()
	}
	prefix, err := addr.Prefix(64)
	if err != nil {
		return addr.String()
	}
	return prefix.String()
}
