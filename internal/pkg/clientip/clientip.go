package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Proxy headers checked in order of trust. X-Forwarded-For style headers
// may carry a comma-separated chain; only the first hop is the client.
var headerPriority = []string{
	"X-Real-IP",
	"X-Forwarded-For",
	"X-Forwarded",
	"Forwarded",
}

// Resolve extracts the client IP address from proxy headers, falling back
// to the connection's remote address. Loopback values found in headers are
// skipped so that a local reverse proxy does not mask the real client.
// Returns an empty string when nothing resolvable is found.
func Resolve(header http.Header, remoteAddr string) string {
	for _, name := range headerPriority {
		value := header.Get(name)
		if value == "" {
			continue
		}
		ip := firstHop(value)
		if ip == "" || IsLoopback(ip) {
			continue
		}
		return ip
	}

	host := stripPort(remoteAddr)
	if host == "" {
		return ""
	}
	return host
}

// firstHop returns the first element of a comma-separated header value.
func firstHop(value string) string {
	if idx := strings.Index(value, ","); idx >= 0 {
		value = value[:idx]
	}
	return strings.TrimSpace(value)
}

// stripPort removes the port from a host:port pair, tolerating bare hosts
// and bracketed IPv6 literals.
func stripPort(addr string) string {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return ""
	}
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return strings.Trim(addr, "[]")
}

// IsLoopback reports whether the value parses as a loopback IP.
func IsLoopback(value string) bool {
	ip := net.ParseIP(stripPort(value))
	return ip != nil && ip.IsLoopback()
}
